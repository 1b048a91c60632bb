// Package attribute provides typed, multi-channel attribute columns for mesh
// elements and the name-keyed sets that hold them.
//
// A column stores one value per element per channel for a value type drawn
// from a closed set (float32, int32, bool, 2/3/4-component vectors and
// names). A Set erases the value type so columns of different types can live
// side by side, while typed access goes through a Ref obtained with GetRef:
//
//	set := attribute.NewSet[core.VertexID]()
//	pos := attribute.Register(set, "Position", 1, geom.Vector3{}, attribute.FlagLerpable)
//	pos.Set(id, geom.Vec3(0, 1, 0))
//
//	uvs := attribute.GetRef[geom.Vector2](set, "UV")
//	if !uvs.IsValid() {
//		// not registered, or registered with another type
//	}
//
// Operations that must run for every column regardless of its type (growth,
// remapping, serialization, visiting) dispatch through tables indexed by the
// column's Type tag, so no reflection or open-ended type switches are needed
// on those paths.
package attribute
