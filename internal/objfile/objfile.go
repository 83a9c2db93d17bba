// Package objfile reads and writes Wavefront OBJ meshes as meshcache buffer sets.
//
// Polygons are fan-triangulated on read. Face indices may be absolute
// (1-based) or relative (negative). Edge visibility is not representable in
// OBJ: faces read back with every edge visible.
package objfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	meshcore "github.com/meigma/meshcache/core"
)

// ErrSyntax is returned for lines that cannot be parsed.
var ErrSyntax = errors.New("objfile: syntax error")

// Mesh is one OBJ object.
type Mesh struct {
	Name   string
	Buffer *meshcore.BufferSet
}

type corner struct {
	v, t, n int // zero-based; -1 when absent
}

type parser struct {
	name    string
	mesh    meshcore.BufferSet
	smGroup uint32
	line    int
}

// Read parses an OBJ stream. Objects are merged into one mesh named after
// the first "o" or "g" statement, or "untitled".
func Read(r io.Reader) (*Mesh, error) {
	p := &parser{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), 1<<20)
	for sc.Scan() {
		p.line++
		if err := p.parseLine(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("objfile: read: %w", err)
	}
	if p.name == "" {
		p.name = "untitled"
	}
	return &Mesh{Name: p.name, Buffer: &p.mesh}, nil
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrSyntax, p.line, fmt.Sprintf(format, args...))
}

func (p *parser) parseLine(line string) error {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	ident, args := fields[0], fields[1:]

	switch ident {
	case "o", "g":
		if p.name == "" && len(args) > 0 {
			p.name = strings.Join(args, " ")
		}
	case "v", "vn":
		f, err := p.floats(args, 3, 3)
		if err != nil {
			return err
		}
		v := meshcore.Point3{X: f[0], Y: f[1], Z: f[2]}
		if ident == "v" {
			p.mesh.Vertices = append(p.mesh.Vertices, v)
		} else {
			p.mesh.Normals = append(p.mesh.Normals, v)
		}
	case "vt":
		f, err := p.floats(args, 1, 3)
		if err != nil {
			return err
		}
		p.mesh.UVs = append(p.mesh.UVs, meshcore.UVVert{U: f[0], V: f[1], W: f[2]})
	case "s":
		if len(args) != 1 {
			return p.errorf("s wants one argument")
		}
		if args[0] == "off" {
			p.smGroup = 0
			return nil
		}
		n, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return p.errorf("smoothing group %q", args[0])
		}
		p.smGroup = smoothingBit(uint32(n))
	case "f":
		return p.face(args)
	}
	return nil
}

// smoothingBit maps an OBJ smoothing group number to a group bit.
func smoothingBit(n uint32) uint32 {
	if n == 0 || n > 32 {
		return 0
	}
	return 1 << (n - 1)
}

// floats parses between lo and hi float arguments, zero filling up to hi.
func (p *parser) floats(args []string, lo, hi int) ([]float32, error) {
	if len(args) < lo {
		return nil, p.errorf("want at least %d values, got %d", lo, len(args))
	}
	out := make([]float32, hi)
	for i := 0; i < hi && i < len(args); i++ {
		v, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return nil, p.errorf("bad number %q", args[i])
		}
		out[i] = float32(v)
	}
	return out, nil
}

func (p *parser) face(args []string) error {
	if len(args) < 3 {
		return p.errorf("face needs at least 3 vertices")
	}
	corners := make([]corner, len(args))
	for i, a := range args {
		c, err := p.corner(a)
		if err != nil {
			return err
		}
		corners[i] = c
	}
	for i := 1; i+1 < len(corners); i++ {
		p.triangle(corners[0], corners[i], corners[i+1])
	}
	return nil
}

func (p *parser) triangle(a, b, c corner) {
	tri := [3]corner{a, b, c}
	var (
		face meshcore.Face
		tv   meshcore.TVFace
		nf   meshcore.NormalFace
	)
	hasNormals := true
	for i, k := range tri {
		face.V[i] = uint32(k.v) //nolint:gosec // resolved against the vertex count
		if k.t >= 0 {
			tv.T[i] = uint32(k.t) //nolint:gosec // resolved against the uv count
		}
		if k.n >= 0 {
			nf.N[i] = uint32(k.n) //nolint:gosec // resolved against the normal count
		} else {
			hasNormals = false
		}
	}
	if hasNormals {
		nf.Specified = 1
	}
	face.SmGroup = p.smGroup
	face.Flags = meshcore.EdgeAll

	p.mesh.Faces = append(p.mesh.Faces, face)
	p.mesh.UVFaces = append(p.mesh.UVFaces, tv)
	p.mesh.NormalFaces = append(p.mesh.NormalFaces, nf)
}

// corner parses "v", "v/t", "v//n" or "v/t/n".
func (p *parser) corner(s string) (corner, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return corner{}, p.errorf("bad face vertex %q", s)
	}
	c := corner{v: -1, t: -1, n: -1}
	var err error
	if c.v, err = p.index(parts[0], len(p.mesh.Vertices)); err != nil {
		return corner{}, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.t, err = p.index(parts[1], len(p.mesh.UVs)); err != nil {
			return corner{}, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.n, err = p.index(parts[2], len(p.mesh.Normals)); err != nil {
			return corner{}, err
		}
	}
	return c, nil
}

// index resolves a 1-based or negative relative index against n elements.
func (p *parser) index(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, p.errorf("bad index %q", s)
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	default:
		return 0, p.errorf("index %d out of range (%d elements)", i, n)
	}
}

// Write emits m as a single OBJ object. Every face is written with its
// texture and normal indices when those arrays are non-empty.
func Write(w io.Writer, m *Mesh) error {
	if m == nil || m.Buffer == nil {
		return errors.New("objfile: nil mesh")
	}
	b := m.Buffer
	if err := b.Validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "o %s\n", m.Name)
	for _, v := range b.Vertices {
		fmt.Fprintf(bw, "v %s %s %s\n", ftoa(v.X), ftoa(v.Y), ftoa(v.Z))
	}
	for _, t := range b.UVs {
		fmt.Fprintf(bw, "vt %s %s %s\n", ftoa(t.U), ftoa(t.V), ftoa(t.W))
	}
	for _, n := range b.Normals {
		fmt.Fprintf(bw, "vn %s %s %s\n", ftoa(n.X), ftoa(n.Y), ftoa(n.Z))
	}

	withUV := len(b.UVs) > 0
	withNormals := len(b.Normals) > 0
	group := ^uint32(0)
	for i, f := range b.Faces {
		if g := lowestGroup(f.SmGroup); g != group {
			group = g
			if g == 0 {
				bw.WriteString("s off\n")
			} else {
				fmt.Fprintf(bw, "s %d\n", g)
			}
		}
		bw.WriteString("f")
		for k := range 3 {
			fmt.Fprintf(bw, " %d", f.V[k]+1)
			switch {
			case withUV && withNormals:
				fmt.Fprintf(bw, "/%d/%d", b.UVFaces[i].T[k]+1, b.NormalFaces[i].N[k]+1)
			case withUV:
				fmt.Fprintf(bw, "/%d", b.UVFaces[i].T[k]+1)
			case withNormals:
				fmt.Fprintf(bw, "//%d", b.NormalFaces[i].N[k]+1)
			}
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// lowestGroup returns the OBJ number of the lowest set smoothing bit, or 0.
func lowestGroup(bits uint32) uint32 {
	for i := range uint32(32) {
		if bits&(1<<i) != 0 {
			return i + 1
		}
	}
	return 0
}

func ftoa(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
