package meshdesc

import (
	"slices"
)

// SetPolygonVertexInstance replaces perimeter corner index of polygon p
// with vi and updates every triangle of p that used the old corner. Both
// instances must belong to the same vertex.
func (md *MeshDescription) SetPolygonVertexInstance(p PolygonID, index int, vi VertexInstanceID) {
	poly := md.polygons.Get(p)
	md.check(poly != nil, "SetPolygonVertexInstance", "invalid polygon %d", p)
	if poly == nil {
		return
	}
	md.check(index >= 0 && index < len(poly.perimeter), "SetPolygonVertexInstance",
		"corner %d out of range [0, %d)", index, len(poly.perimeter))
	md.check(md.vertexInstances.IsValid(vi), "SetPolygonVertexInstance", "invalid vertex instance %d", vi)

	old := poly.perimeter[index]
	if old == vi {
		return
	}
	md.check(md.GetVertexInstanceVertex(old) == md.GetVertexInstanceVertex(vi), "SetPolygonVertexInstance",
		"vertex instances %d and %d belong to different vertices", old, vi)
	poly.perimeter[index] = vi

	oldInst := md.vertexInstances.Get(old)
	newInst := md.vertexInstances.Get(vi)
	for _, tid := range poly.triangles {
		t := md.triangles.Get(tid)
		if !slices.Contains(t.corners[:], old) {
			continue
		}
		for k, c := range t.corners {
			if c == old {
				t.corners[k] = vi
			}
		}
		if oldInst != nil {
			var ok bool
			oldInst.triangles, ok = removeSingle(oldInst.triangles, tid)
			md.check(ok, "SetPolygonVertexInstance", "vertex instance %d does not reference triangle %d", old, tid)
		}
		newInst.triangles = addUnique(newInst.triangles, tid)
	}
}

// SetPolygonPolygonGroup moves polygon p to group g.
func (md *MeshDescription) SetPolygonPolygonGroup(p PolygonID, g PolygonGroupID) {
	poly := md.polygons.Get(p)
	md.check(poly != nil, "SetPolygonPolygonGroup", "invalid polygon %d", p)
	md.check(md.polygonGroups.IsValid(g), "SetPolygonPolygonGroup", "invalid polygon group %d", g)
	if poly == nil || poly.group == g {
		return
	}
	if old := md.polygonGroups.Get(poly.group); old != nil {
		var ok bool
		old.polygons, ok = removeSingle(old.polygons, p)
		md.check(ok, "SetPolygonPolygonGroup", "polygon group %d does not reference polygon %d", poly.group, p)
	}
	poly.group = g
	if grp := md.polygonGroups.Get(g); grp != nil {
		grp.polygons = append(grp.polygons, p)
	}
}

// ReversePolygonFacing reverses the winding of polygon p and its triangles.
func (md *MeshDescription) ReversePolygonFacing(p PolygonID) {
	poly := md.polygons.Get(p)
	md.check(poly != nil, "ReversePolygonFacing", "invalid polygon %d", p)
	if poly == nil {
		return
	}
	slices.Reverse(poly.perimeter)
	for _, tid := range poly.triangles {
		t := md.triangles.Get(tid)
		t.corners[0], t.corners[2] = t.corners[2], t.corners[0]
	}
}

// ReverseAllPolygonFacing reverses the winding of every polygon.
func (md *MeshDescription) ReverseAllPolygonFacing() {
	for p := range md.polygons.All() {
		md.ReversePolygonFacing(p)
	}
}

// RemapPolygonGroups moves the polygons of every group g with remap[g] != g
// into group remap[g], deleting g. Target groups that do not exist are
// created with that ID. Several groups mapping onto one target are merged;
// the target takes the material slot name of the last group merged into it.
func (md *MeshDescription) RemapPolygonGroups(remap map[PolygonGroupID]PolygonGroupID) {
	type movedGroup struct {
		target   PolygonGroupID
		name     string
		polygons []PolygonID
	}

	names := md.PolygonGroupMaterialSlotNames()
	var moved []movedGroup
	for _, g := range md.polygonGroups.IDs() {
		target, ok := remap[g]
		if !ok || target == g {
			continue
		}
		grp := md.polygonGroups.Get(g)
		m := movedGroup{target: target, polygons: grp.polygons}
		if names.IsValid() {
			m.name = names.Get(g)
		}
		moved = append(moved, m)
		grp.polygons = nil
		md.DeletePolygonGroup(g)
	}

	for _, m := range moved {
		if !md.polygonGroups.IsValid(m.target) {
			md.CreatePolygonGroupWithID(m.target)
		}
		grp := md.polygonGroups.Get(m.target)
		grp.polygons = append(grp.polygons, m.polygons...)
		if names.IsValid() {
			names.Set(m.target, m.name)
		}
		for _, p := range m.polygons {
			md.polygons.Get(p).group = m.target
		}
	}
}
