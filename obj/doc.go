// Package obj reads and writes Wavefront OBJ geometry.
//
// Import builds polygons in a MeshDescription from v, vt, vn, f and usemtl
// statements. Each usemtl name maps to one polygon group whose
// ImportedMaterialSlotName is set to that name. Corners that repeat the same
// v/vt/vn triple share one vertex instance.
//
// Export writes the mesh back out, one usemtl block per polygon group and one
// f statement per polygon perimeter.
package obj
