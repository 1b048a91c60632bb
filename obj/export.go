package obj

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/hupe1980/meshdesc"
	"github.com/hupe1980/meshdesc/attribute"
	"github.com/hupe1980/meshdesc/geom"
)

type exporter struct {
	w    *bufio.Writer
	buf  []byte
	opts options

	vertexIndex map[meshdesc.VertexID]int
	uvIndex     map[geom.Vector2]int
	normalIndex map[geom.Vector3]int
}

// Export writes md as OBJ text. Vertices are written in ID order and
// texture coordinates and normals are deduplicated by value. Polygons of a
// group are preceded by a usemtl statement when the group has a material
// slot name.
func Export(w io.Writer, md *meshdesc.MeshDescription, optFns ...Option) error {
	ex := &exporter{
		w:           bufio.NewWriter(w),
		opts:        applyOptions(optFns),
		vertexIndex: make(map[meshdesc.VertexID]int, md.NumVertices()),
		uvIndex:     make(map[geom.Vector2]int),
		normalIndex: make(map[geom.Vector3]int),
	}

	fmt.Fprintf(ex.w, "# meshdesc: %d vertices, %d polygons\n", md.NumVertices(), md.NumPolygons())

	positions := md.VertexPositions()
	for _, v := range md.VertexIDs() {
		p := positions.Get(v)
		ex.vector("v", p.X, p.Y, p.Z)
		ex.vertexIndex[v] = len(ex.vertexIndex) + 1
	}

	uvs := md.VertexInstanceUVs()
	normals := md.VertexInstanceNormals()
	if !ex.opts.writeNormals {
		normals = attribute.Ref[meshdesc.VertexInstanceID, geom.Vector3]{}
	}
	for _, vi := range md.VertexInstanceIDs() {
		if uvs.IsValid() {
			uv := uvs.Get(vi)
			if ex.opts.flipV {
				uv.Y = 1 - uv.Y
			}
			if _, ok := ex.uvIndex[uv]; !ok {
				ex.vector("vt", uv.X, uv.Y)
				ex.uvIndex[uv] = len(ex.uvIndex) + 1
			}
		}
		if normals.IsValid() {
			n := normals.Get(vi)
			if _, ok := ex.normalIndex[n]; !ok {
				ex.vector("vn", n.X, n.Y, n.Z)
				ex.normalIndex[n] = len(ex.normalIndex) + 1
			}
		}
	}

	names := md.PolygonGroupMaterialSlotNames()
	for _, g := range md.PolygonGroupIDs() {
		polys := md.GetPolygonGroupPolygons(g)
		if len(polys) == 0 {
			continue
		}
		if names.IsValid() && names.Get(g) != "" {
			fmt.Fprintf(ex.w, "usemtl %s\n", names.Get(g))
		}
		for _, p := range polys {
			ex.w.WriteString("f")
			for _, vi := range md.GetPolygonVertexInstances(p) {
				ex.corner(md, vi, uvs, normals)
			}
			ex.w.WriteByte('\n')
		}
	}

	if err := ex.w.Flush(); err != nil {
		return fmt.Errorf("obj: write: %w", err)
	}
	return nil
}

func (ex *exporter) vector(kind string, c ...float32) {
	ex.buf = append(ex.buf[:0], kind...)
	for _, f := range c {
		ex.buf = append(ex.buf, ' ')
		ex.buf = strconv.AppendFloat(ex.buf, float64(f), 'g', -1, 32)
	}
	ex.buf = append(ex.buf, '\n')
	ex.w.Write(ex.buf)
}

func (ex *exporter) corner(
	md *meshdesc.MeshDescription,
	vi meshdesc.VertexInstanceID,
	uvs attribute.Ref[meshdesc.VertexInstanceID, geom.Vector2],
	normals attribute.Ref[meshdesc.VertexInstanceID, geom.Vector3],
) {
	ex.buf = append(ex.buf[:0], ' ')
	ex.buf = strconv.AppendInt(ex.buf, int64(ex.vertexIndex[md.GetVertexInstanceVertex(vi)]), 10)

	if uvs.IsValid() || normals.IsValid() {
		ex.buf = append(ex.buf, '/')
	}
	if uvs.IsValid() {
		uv := uvs.Get(vi)
		if ex.opts.flipV {
			uv.Y = 1 - uv.Y
		}
		ex.buf = strconv.AppendInt(ex.buf, int64(ex.uvIndex[uv]), 10)
	}
	if normals.IsValid() {
		ex.buf = append(ex.buf, '/')
		ex.buf = strconv.AppendInt(ex.buf, int64(ex.normalIndex[normals.Get(vi)]), 10)
	}
	ex.w.Write(ex.buf)
}
