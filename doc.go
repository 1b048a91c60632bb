// Package meshdesc provides an in-memory polygonal mesh topology store with
// typed, per-element attribute columns.
//
// A MeshDescription holds six element collections: vertices, vertex
// instances (per-corner split-vertices), edges, triangles, polygons and
// polygon groups. Every creation and deletion keeps the back-references
// between them consistent. Attributes such as positions, normals or UVs are
// registered by name on the attribute set of a kind and stored as dense
// multi-channel columns.
//
// # Quick Start
//
//	md := meshdesc.New()
//	positions := md.VertexPositions()
//
//	g := md.CreatePolygonGroup()
//	var corners []meshdesc.VertexInstanceID
//	for _, p := range []geom.Vector3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}} {
//	    v := md.CreateVertex()
//	    positions.Set(v, p)
//	    corners = append(corners, md.CreateVertexInstance(v))
//	}
//	quad := md.CreatePolygon(g, corners, nil) // triangulated into two triangles
//
// # Element IDs
//
// IDs are plain indices into per-kind sparse arrays. Deleting an element
// leaves a hole that the next creation may reuse. Compact renumbers every
// collection densely and returns the old-to-new tables so callers can fix up
// IDs they hold outside the mesh.
//
// # Contracts
//
// Topology preconditions (deleting a vertex that still has edges, creating a
// duplicate edge, ...) are programmer errors. By default they panic with a
// *ContractError; WithAssertions(false) disables the checks. Queries given an
// invalid ID return an invalid ID or an empty slice instead.
//
// # Persistence
//
// Save and Load use a little-endian archive with a CRC32 trailer. Adjacency
// back-references are not stored; they are rebuilt on load. The legacy layout
// without a triangle array is still readable and can be written with
// WithFormatVersion.
//
// A MeshDescription is not safe for concurrent use.
package meshdesc
