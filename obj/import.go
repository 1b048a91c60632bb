package obj

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/meshdesc"
	"github.com/hupe1980/meshdesc/geom"
)

var (
	// ErrSyntax is returned for malformed statements.
	ErrSyntax = errors.New("obj: syntax error")
	// ErrIndexOutOfRange is returned for face indices that reference
	// elements not yet defined.
	ErrIndexOutOfRange = errors.New("obj: index out of range")
)

// Stats summarizes an import.
type Stats struct {
	Vertices        int
	VertexInstances int
	Polygons        int
	PolygonGroups   int
	// Skipped counts faces left with fewer than three distinct corners
	// after collapsing repeated vertices.
	Skipped   int
	Triangles int
}

type corner struct {
	v, vt, vn int
}

type importer struct {
	md   *meshdesc.MeshDescription
	opts options

	vertices []meshdesc.VertexID
	uvs      []geom.Vector2
	normals  []geom.Vector3

	instances map[corner]meshdesc.VertexInstanceID
	groups    map[string]meshdesc.PolygonGroupID
	group     meshdesc.PolygonGroupID
	material  string

	stats Stats
}

// Import reads OBJ statements from r and appends their geometry to md.
// The standard attributes are registered on md first. Unsupported
// statements (o, g, s, mtllib, l, p, ...) are ignored.
func Import(ctx context.Context, r io.Reader, md *meshdesc.MeshDescription, optFns ...Option) (Stats, error) {
	meshdesc.RegisterStandardAttributes(md, 1)

	im := &importer{
		md:        md,
		opts:      applyOptions(optFns),
		instances: make(map[corner]meshdesc.VertexInstanceID),
		groups:    make(map[string]meshdesc.PolygonGroupID),
		group:     meshdesc.InvalidPolygonGroupID,
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for sc.Scan() {
		line++
		if line%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return im.stats, err
			}
		}
		if err := im.statement(sc.Text()); err != nil {
			return im.stats, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return im.stats, fmt.Errorf("obj: read: %w", err)
	}

	md.Logger().DebugContext(ctx, "obj import completed",
		"vertices", im.stats.Vertices,
		"polygons", im.stats.Polygons,
		"groups", im.stats.PolygonGroups,
		"skipped", im.stats.Skipped,
	)
	return im.stats, nil
}

func (im *importer) statement(text string) error {
	if i := strings.IndexByte(text, '#'); i >= 0 {
		text = text[:i]
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}

	switch args := fields[1:]; fields[0] {
	case "v":
		p, err := parseFloats(args, 3)
		if err != nil {
			return err
		}
		v := im.md.CreateVertex()
		im.md.VertexPositions().Set(v, geom.Vec3(p[0], p[1], p[2]))
		im.vertices = append(im.vertices, v)
		im.stats.Vertices++

	case "vt":
		// The optional w coordinate is dropped.
		p, err := parseFloats(args, 2)
		if err != nil {
			return err
		}
		if im.opts.flipV {
			p[1] = 1 - p[1]
		}
		im.uvs = append(im.uvs, geom.Vec2(p[0], p[1]))

	case "vn":
		p, err := parseFloats(args, 3)
		if err != nil {
			return err
		}
		im.normals = append(im.normals, geom.Vec3(p[0], p[1], p[2]))

	case "usemtl":
		if len(args) == 0 {
			return fmt.Errorf("%w: usemtl without a name", ErrSyntax)
		}
		im.material = strings.Join(args, " ")
		im.group = meshdesc.InvalidPolygonGroupID

	case "f":
		return im.face(args)
	}
	return nil
}

func (im *importer) face(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("%w: face with %d corners", ErrSyntax, len(args))
	}

	corners := make([]corner, 0, len(args))
	for _, a := range args {
		c, err := im.parseCorner(a)
		if err != nil {
			return err
		}
		// Collapse repeated positions so the perimeter has no zero-length edges.
		if n := len(corners); n > 0 && corners[n-1].v == c.v {
			continue
		}
		corners = append(corners, c)
	}
	for len(corners) > 1 && corners[0].v == corners[len(corners)-1].v {
		corners = corners[:len(corners)-1]
	}
	if len(corners) < 3 {
		im.stats.Skipped++
		return nil
	}

	perimeter := make([]meshdesc.VertexInstanceID, len(corners))
	for i, c := range corners {
		perimeter[i] = im.instance(c)
	}

	p := im.md.CreatePolygon(im.currentGroup(), perimeter, nil)
	im.stats.Polygons++
	im.stats.Triangles += im.md.NumPolygonTriangles(p)
	return nil
}

func (im *importer) instance(c corner) meshdesc.VertexInstanceID {
	if im.opts.weld {
		if vi, ok := im.instances[c]; ok {
			return vi
		}
	}

	vi := im.md.CreateVertexInstance(im.vertices[c.v])
	if c.vt >= 0 {
		im.md.VertexInstanceUVs().Set(vi, im.uvs[c.vt])
	}
	if c.vn >= 0 {
		im.md.VertexInstanceNormals().Set(vi, im.normals[c.vn])
	}
	im.stats.VertexInstances++

	if im.opts.weld {
		im.instances[c] = vi
	}
	return vi
}

func (im *importer) currentGroup() meshdesc.PolygonGroupID {
	if im.group != meshdesc.InvalidPolygonGroupID {
		return im.group
	}
	g, ok := im.groups[im.material]
	if !ok {
		g = im.md.CreatePolygonGroup()
		im.md.PolygonGroupMaterialSlotNames().Set(g, im.material)
		im.groups[im.material] = g
		im.stats.PolygonGroups++
	}
	im.group = g
	return g
}

// parseCorner parses v, v/vt, v//vn or v/vt/vn into zero-based indices,
// with -1 for absent components.
func (im *importer) parseCorner(s string) (corner, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 || parts[0] == "" {
		return corner{}, fmt.Errorf("%w: face corner %q", ErrSyntax, s)
	}

	c := corner{v: -1, vt: -1, vn: -1}
	var err error
	if c.v, err = resolveIndex(parts[0], len(im.vertices)); err != nil {
		return corner{}, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.vt, err = resolveIndex(parts[1], len(im.uvs)); err != nil {
			return corner{}, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.vn, err = resolveIndex(parts[2], len(im.normals)); err != nil {
			return corner{}, err
		}
	}
	return c, nil
}

// resolveIndex turns a one-based or negative (relative) OBJ index into a
// zero-based index into a list of n elements.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: index %q", ErrSyntax, s)
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	}
	return 0, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, n)
}

func parseFloats(args []string, n int) ([]float32, error) {
	if len(args) < n {
		return nil, fmt.Errorf("%w: want %d coordinates, got %d", ErrSyntax, n, len(args))
	}
	out := make([]float32, n)
	for i := range n {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return nil, fmt.Errorf("%w: coordinate %q", ErrSyntax, args[i])
		}
		out[i] = float32(f)
	}
	return out, nil
}
