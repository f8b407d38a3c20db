package morph

import (
	"math"
	"sort"
)

// Face is a triangle expressed as three indices into a point array.
// The same face indexes the left, right and interpolated points alike.
type Face [3]int

// key returns the face indices in ascending order.
func (f Face) key() Face {
	k := f
	sort.Ints(k[:])
	return k
}

type edge struct {
	a, b int
}

func newEdge(a, b int) edge {
	if a > b {
		a, b = b, a
	}
	return edge{a, b}
}

// Delaunay grows a triangulation outwards from a seed edge. For every edge
// taken from the queue it looks for at most two points which, together with
// the edge, form a triangle whose circumcircle holds no other point and whose
// new edges do not cross an existing one.
//
// It is meant for a few hundred feature points; the search is quadratic in
// the number of points for every processed edge.
type Delaunay struct {
	points []Point // unique points
	order  []int   // unique point -> first index in the input
	used   map[edge]struct{}
	edges  []edge
	queue  []edge
	seen   map[Face]struct{}
	faces  []Face
}

// Init resets the triangulator.
func (d *Delaunay) Init() *Delaunay {
	d.points = nil
	d.order = nil
	d.used = make(map[edge]struct{})
	d.edges = nil
	d.queue = nil
	d.seen = make(map[Face]struct{})
	d.faces = nil

	return d
}

// Insert triangulates the points. Repeated points are folded onto their
// first occurrence, so the resulting faces only reference first occurrences.
func (d *Delaunay) Insert(points []Point) *Delaunay {
	if d.used == nil {
		d.Init()
	}
	log := componentLogger("delaunay")

	index := make(map[Point]int, len(points))
	for i, p := range points {
		if _, ok := index[p]; ok {
			continue
		}
		index[p] = len(d.points)
		d.points = append(d.points, p)
		d.order = append(d.order, i)
	}
	if len(d.points) < 3 {
		log.Warn().Err(ErrInsufficientPoints).
			Int("points", len(d.points)).
			Msg("triangulation skipped")
		return d
	}

	seed := d.nearest(0)
	if seed < 0 {
		return d
	}
	d.markUsed(0, seed)
	for len(d.queue) > 0 {
		e := d.queue[0]
		d.queue = d.queue[1:]
		d.expand(e.a, e.b)
	}
	log.Debug().
		Int("points", len(d.points)).
		Int("edges", len(d.edges)).
		Int("triangles", len(d.faces)).
		Msg("triangulation done")

	return d
}

// GetTriangles returns the faces, indexed against the input points.
func (d *Delaunay) GetTriangles() []Face {
	faces := make([]Face, len(d.faces))
	for i, f := range d.faces {
		faces[i] = Face{d.order[f[0]], d.order[f[1]], d.order[f[2]]}
	}
	return faces
}

// expand searches the third corner of the triangles built on edge (i1, i2).
func (d *Delaunay) expand(i1, i2 int) {
	var count int

	for k := range d.points {
		if k == i1 || k == i2 {
			continue
		}
		cx, cy, radius, ok := circumcircle(d.points[i1], d.points[i2], d.points[k])
		if !ok {
			continue
		}
		if !d.isEmpty(cx, cy, radius, i1, i2, k) {
			continue
		}
		if d.crossesUsed(i1, k) || d.crossesUsed(i2, k) {
			continue
		}
		d.addFace(Face{i1, i2, k})
		d.markUsed(i1, k)
		d.markUsed(i2, k)

		// A third match would mean a non planar configuration.
		if count++; count == 2 {
			return
		}
	}
}

// markUsed records the edge and queues it for expansion if it is new.
func (d *Delaunay) markUsed(a, b int) {
	e := newEdge(a, b)
	if _, ok := d.used[e]; ok {
		return
	}
	d.used[e] = struct{}{}
	d.edges = append(d.edges, e)
	d.queue = append(d.queue, edge{a, b})
}

func (d *Delaunay) addFace(f Face) {
	k := f.key()
	if _, ok := d.seen[k]; ok {
		return
	}
	d.seen[k] = struct{}{}
	d.faces = append(d.faces, f)
}

// isEmpty reports whether no point other than the three corners lies
// strictly inside the circle.
func (d *Delaunay) isEmpty(cx, cy, radius float64, i1, i2, k int) bool {
	const eps = 1e-9

	for j, p := range d.points {
		if j == i1 || j == i2 || j == k {
			continue
		}
		dx, dy := float64(p.X)-cx, float64(p.Y)-cy
		if math.Sqrt(dx*dx+dy*dy) < radius-eps {
			return false
		}
	}
	return true
}

func (d *Delaunay) crossesUsed(a, b int) bool {
	l := Line{d.points[a], d.points[b]}
	for _, e := range d.edges {
		if l.Crosses(Line{d.points[e.a], d.points[e.b]}) {
			return true
		}
	}
	return false
}

// nearest returns the closest distinct point to point i, or -1.
func (d *Delaunay) nearest(i int) int {
	best, dist := -1, math.MaxFloat64
	for j, p := range d.points {
		if j == i {
			continue
		}
		if dd := p.Dist(d.points[i]); dd < dist && dd > 0 {
			best, dist = j, dd
		}
	}
	return best
}

// circumcircle intersects the perpendicular bisectors of (p1, pn) and
// (p2, pn). It fails when the three points are collinear.
func circumcircle(p1, p2, pn Point) (cx, cy, radius float64, ok bool) {
	var (
		x1 = float64(p1.X+pn.X) / 2
		y1 = float64(p1.Y+pn.Y) / 2
		x3 = float64(p2.X+pn.X) / 2
		y3 = float64(p2.Y+pn.Y) / 2
		x2 = float64(pn.X)
		y2 = float64(pn.Y)
	)
	q := (y2-y1)*(y3-y1) - (x1-x2)*(x3-x1)
	n := (y2-y3)*(x1-x2) - (x3-x2)*(y2-y1)
	if n == 0 {
		return 0, 0, 0, false
	}
	q /= n
	cx = x3 + q*(y2-y3)
	cy = y3 + q*(x3-x2)
	dx, dy := float64(p1.X)-cx, float64(p1.Y)-cy

	return cx, cy, math.Sqrt(dx*dx + dy*dy), true
}

// Mesh is the shared triangulation of a morph run: one face table and the
// per-side coordinates it indexes. Corner i of a face refers to the same
// feature point in Left, Right and Mid.
type Mesh struct {
	Left  []Point
	Right []Point
	Mid   []Point
	Faces []Face
}

// BuildMesh derives the face table for two control grids of the same shape.
// The Delaunay topology triangulates the averaged grid; the grid topology
// splits each cell in two.
func BuildMesh(left, right *ControlGrid, topology Topology) (*Mesh, error) {
	if err := SameShape(left, right); err != nil {
		return nil, err
	}
	m := &Mesh{
		Left:  append([]Point(nil), left.Points...),
		Right: append([]Point(nil), right.Points...),
		Mid:   make([]Point, left.Len()),
	}
	for i := range m.Mid {
		m.Mid[i] = mid(m.Left[i], m.Right[i])
	}

	switch topology {
	case TopologyGrid:
		m.Faces = cellFaces(left.Rows, left.Cols)
	default:
		m.Faces = (&Delaunay{}).Init().Insert(m.Mid).GetTriangles()
	}
	log := componentLogger("mesh")
	log.Debug().
		Str("topology", string(topology)).
		Int("points", len(m.Mid)).
		Int("faces", len(m.Faces)).
		Msg("mesh built")

	return m, nil
}

// Interpolate returns the control points at ratio t between left and right.
func (m *Mesh) Interpolate(t float64) []Point {
	pts := make([]Point, len(m.Left))
	for i := range pts {
		pts[i] = Lerp(m.Left[i], m.Right[i], t)
	}
	return pts
}

// Corners resolves face f against the given point array.
func (m *Mesh) Corners(f Face, pts []Point) [3]Point {
	return [3]Point{pts[f[0]], pts[f[1]], pts[f[2]]}
}

// Triangles returns one triangle per face over the given point array.
func (m *Mesh) Triangles(pts []Point) []*Triangle {
	tris := make([]*Triangle, len(m.Faces))
	for i, f := range m.Faces {
		c := m.Corners(f, pts)
		tris[i] = NewTriangle(c[0], c[1], c[2])
	}
	return tris
}
