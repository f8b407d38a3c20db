package morph

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangulate(points []Point) []Face {
	return (&Delaunay{}).Init().Insert(points).GetTriangles()
}

func TestDelaunay_Counts(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		want   int
	}{
		{"triangle", []Point{{0, 0}, {10, 0}, {0, 10}}, 1},
		{"square", []Point{{0, 0}, {10, 0}, {0, 10}, {10, 10}}, 2},
		{"square with centre", []Point{{0, 0}, {10, 0}, {0, 10}, {10, 10}, {5, 5}}, 4},
		{"two points", []Point{{0, 0}, {10, 0}}, 0},
		{"no points", nil, 0},
		{"repeated points", []Point{{3, 3}, {3, 3}, {8, 1}}, 0},
		{"collinear", []Point{{0, 0}, {5, 5}, {10, 10}, {20, 20}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, triangulate(tt.points), tt.want)
		})
	}
}

func TestDelaunay_CentreSharedByAllFaces(t *testing.T) {
	faces := triangulate([]Point{{0, 0}, {10, 0}, {0, 10}, {10, 10}, {5, 5}})
	require.Len(t, faces, 4)
	for _, f := range faces {
		assert.Contains(t, f[:], 4)
	}
}

func TestDelaunay_RepeatedPointsUseFirstIndex(t *testing.T) {
	faces := triangulate([]Point{{0, 0}, {10, 0}, {0, 0}, {0, 10}})
	require.Len(t, faces, 1)
	assert.ElementsMatch(t, []int{0, 1, 3}, faces[0][:])
}

func TestDelaunay_Planar(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	seen := make(map[Point]bool)
	var points []Point
	for len(points) < 30 {
		p := Pt(rnd.Intn(200), rnd.Intn(200))
		if seen[p] {
			continue
		}
		seen[p] = true
		points = append(points, p)
	}

	faces := triangulate(points)
	require.NotEmpty(t, faces)
	assert.LessOrEqual(t, len(faces), 2*len(points)-5)

	keys := make(map[Face]bool)
	var lines []Line
	for _, f := range faces {
		for _, i := range f {
			require.True(t, i >= 0 && i < len(points))
		}
		k := f.key()
		assert.False(t, keys[k], "face %v listed twice", f)
		keys[k] = true

		c := [3]Point{points[f[0]], points[f[1]], points[f[2]]}
		assert.NotZero(t, signedArea(c))
		lines = append(lines, Line{c[0], c[1]}, Line{c[1], c[2]}, Line{c[0], c[2]})
	}
	for i := range lines {
		for j := i + 1; j < len(lines); j++ {
			assert.False(t, lines[i].Crosses(lines[j]), "%v crosses %v", lines[i], lines[j])
		}
	}
}

func TestBuildMesh(t *testing.T) {
	left := DefaultGrid(1, 1, 20, 20)
	right := DefaultGrid(1, 1, 40, 40)

	m, err := BuildMesh(left, right, TopologyDelaunay)
	require.NoError(t, err)
	assert.Len(t, m.Faces, 2)
	assert.Equal(t, []Point{{0, 0}, {29, 0}, {0, 29}, {29, 29}}, m.Mid)
	assert.Equal(t, m.Left, m.Interpolate(0))
	assert.Equal(t, m.Right, m.Interpolate(1))

	// Caller grids are copied, not shared.
	left.Set(0, 0, Pt(7, 7))
	assert.Equal(t, Pt(0, 0), m.Left[0])
}

func TestBuildMesh_GridTopology(t *testing.T) {
	g := DefaultGrid(2, 3, 31, 21)

	m, err := BuildMesh(g, g, TopologyGrid)
	require.NoError(t, err)
	require.Len(t, m.Faces, 12)
	for _, f := range m.Faces {
		for _, i := range f {
			assert.True(t, i >= 0 && i < g.Len())
		}
		assert.NotZero(t, signedArea(m.Corners(f, m.Mid)))
	}
}

func TestBuildMesh_Mismatched(t *testing.T) {
	_, err := BuildMesh(NewGrid(2, 2), NewGrid(2, 3), TopologyDelaunay)
	assert.ErrorIs(t, err, ErrMismatchedGrids)

	_, err = BuildMesh(nil, NewGrid(2, 3), TopologyDelaunay)
	assert.ErrorIs(t, err, ErrMismatchedGrids)
}
