package main

import (
	"github.com/hupe1980/meshdesc"
	"github.com/hupe1980/meshdesc/bulkdata"
	"github.com/hupe1980/meshdesc/geom"
)

type summary struct {
	Vertices        int      `json:"vertices"`
	VertexInstances int      `json:"vertex_instances"`
	Edges           int      `json:"edges"`
	Triangles       int      `json:"triangles"`
	Polygons        int      `json:"polygons"`
	PolygonGroups   int      `json:"polygon_groups"`
	Materials       []string `json:"materials,omitempty"`
	Charts          int      `json:"charts"`
	Bounds          *bounds  `json:"bounds,omitempty"`
}

type bounds struct {
	Origin [3]float32 `json:"origin"`
	Extent [3]float32 `json:"extent"`
	Radius float32    `json:"radius"`
}

func vec3(v geom.Vector3) [3]float32 { return [3]float32{v.X, v.Y, v.Z} }

func summarize(md *meshdesc.MeshDescription) summary {
	s := summary{
		Vertices:        md.NumVertices(),
		VertexInstances: md.NumVertexInstances(),
		Edges:           md.NumEdges(),
		Triangles:       md.NumTriangles(),
		Polygons:        md.NumPolygons(),
		PolygonGroups:   md.NumPolygonGroups(),
		Charts:          len(md.GetAllCharts()),
	}

	if names := md.PolygonGroupMaterialSlotNames(); names.IsValid() {
		for _, g := range md.PolygonGroupIDs() {
			if n := names.Get(g); n != "" {
				s.Materials = append(s.Materials, n)
			}
		}
	}

	if !md.IsEmpty() {
		b := md.GetBounds()
		s.Bounds = &bounds{
			Origin: vec3(b.Origin),
			Extent: vec3(b.BoxExtent),
			Radius: b.SphereRadius,
		}
	}
	return s
}

// report is the JSON record printed per asset by import and inspect.
type report struct {
	Asset   string        `json:"asset"`
	Version uint64        `json:"version"`
	ID      string        `json:"id"`
	Ref     bulkdata.Ref  `json:"ref"`
	Import  *importReport `json:"import,omitempty"`
	Mesh    summary       `json:"mesh"`
}

type importReport struct {
	Source             string `json:"source"`
	Skipped            int    `json:"skipped_faces,omitempty"`
	ForcedEars         int    `json:"forced_ears,omitempty"`
	DegeneratePolygons int    `json:"degenerate_polygons,omitempty"`
	Compacted          bool   `json:"compacted,omitempty"`
}
