// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package phys2

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Tuning is the set of solver parameters a World can be configured
// with, loadable from a small YAML document so a host application can
// ship stacking/stability presets without recompiling.
type Tuning struct {
	VelocityIterations int     `yaml:"velocityIterations"`
	PositionIterations int     `yaml:"positionIterations"`
	Beta               float64 `yaml:"beta"`
	Slop               float64 `yaml:"slop"`
}

// defaultTuning mirrors the spec's single chosen default, exposed as
// configuration rather than picked ad-hoc per call site.
var defaultTuning = Tuning{
	VelocityIterations: 8,
	PositionIterations: 3,
	Beta:               0.2,
	Slop:               0.01,
}

// LoadTuning reads a yaml-encoded Tuning document. Any field left
// unset in the document keeps the corresponding defaultTuning value.
func LoadTuning(data []byte) (Tuning, error) {
	cfg := defaultTuning
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Tuning{}, fmt.Errorf("LoadTuning: yaml %w", err)
	}
	return cfg, nil
}
