// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package phys2

// Island is a connected component of the body-joint-contact
// interaction graph: a set of dynamic bodies (plus any static bodies
// touching them as non-propagating boundary nodes), its contacts, and
// its joints, solved independently per spec.md §4.6.
type Island struct {
	Bodies   []BodyHandle
	Contacts []*Contact
	Joints   []Joint
}

// buildIslands partitions the current contacts and joints into
// islands. Every unvisited dynamic body starts a new island; traversal
// follows joints and persistent contacts to every reachable dynamic
// body. Static bodies are added to an island's body list as boundary
// nodes but never propagate the traversal further, matching spec.md
// §4.6 exactly.
//
// Implemented with union-find rather than literal BFS: unioning is
// restricted to dynamic-dynamic edges, so two dynamic bodies connected
// only through a shared static body (e.g. both resting on the same
// floor) land in separate islands, exactly as a BFS that refuses to
// continue through statics would produce. Grounded on the teacher's
// physics/broad.go uf_find/uf_union/uf_collect_all, adapted from
// "skip fixed bodies from the island body list" (the teacher's
// behavior) to "include but don't traverse through" — see DESIGN.md.
func buildIslands(bodies map[uint32]*Body, contacts []*Contact, joints []Joint) []*Island {
	parent := map[uint32]uint32{}
	for idx, b := range bodies {
		if !b.static {
			parent[idx] = idx
		}
	}

	link := func(a, b BodyHandle) {
		ba, bb := bodies[a.index], bodies[b.index]
		if ba == nil || bb == nil {
			return
		}
		if !ba.static && !bb.static {
			ufUnion(parent, a.index, b.index)
		}
	}
	for _, c := range contacts {
		link(c.A, c.B)
	}
	for _, j := range joints {
		a, b := j.Bodies()
		link(a, b)
	}

	islandOf := map[uint32]*Island{}
	rootOf := func(idx uint32) uint32 {
		if _, ok := parent[idx]; ok {
			return ufFind(parent, idx)
		}
		return idx // static bodies are never roots of a shared island by themselves
	}

	islandFor := func(root uint32) *Island {
		isl, ok := islandOf[root]
		if !ok {
			isl = &Island{}
			islandOf[root] = isl
		}
		return isl
	}

	seenBody := map[uint32]map[uint32]bool{}
	addBody := func(root uint32, idx uint32) {
		isl := islandFor(root)
		if seenBody[root] == nil {
			seenBody[root] = map[uint32]bool{}
		}
		if !seenBody[root][idx] {
			seenBody[root][idx] = true
			isl.Bodies = append(isl.Bodies, bodies[idx].handle)
		}
	}

	for _, c := range contacts {
		ba, bb := bodies[c.A.index], bodies[c.B.index]
		if ba == nil || bb == nil {
			continue
		}
		var root uint32
		switch {
		case !ba.static:
			root = rootOf(ba.handle.index)
		case !bb.static:
			root = rootOf(bb.handle.index)
		default:
			continue // static-static contact carries no dynamic work
		}
		addBody(root, ba.handle.index)
		addBody(root, bb.handle.index)
		islandFor(root).Contacts = append(islandFor(root).Contacts, c)
	}
	for _, j := range joints {
		ha, hb := j.Bodies()
		ba, bb := bodies[ha.index], bodies[hb.index]
		if ba == nil || bb == nil {
			continue
		}
		var root uint32
		switch {
		case !ba.static:
			root = rootOf(ba.handle.index)
		case !bb.static:
			root = rootOf(bb.handle.index)
		default:
			continue
		}
		addBody(root, ha.index)
		addBody(root, hb.index)
		islandFor(root).Joints = append(islandFor(root).Joints, j)
	}

	// Every dynamic body that touches nothing this step still needs to
	// integrate on its own, single-body island.
	for idx, b := range bodies {
		if b.static {
			continue
		}
		root := ufFind(parent, idx)
		if _, ok := islandOf[root]; !ok {
			addBody(root, idx)
		}
	}

	islands := make([]*Island, 0, len(islandOf))
	for _, isl := range islandOf {
		islands = append(islands, isl)
	}
	return islands
}
