// Package shapes remaps the vertices of a fixed-topology sphere onto target
// silhouettes. Every generator reads the sphere's own vertices as unit
// directions and writes one output vertex per input vertex, in the same
// order, so mesh adjacency survives any morph.
package shapes

import "github.com/Garsondee/Neural-Entity/internal/vmath"

// Shape names a morph target silhouette.
type Shape int

const (
	ShapeHeart Shape = iota
	ShapeHuman
	ShapeDNA
	ShapeCube
	ShapeGalaxy
	ShapeInfinity
	ShapeSmallSphere
	ShapeTree
	shapeCount
)

// pointFunc maps one unit direction to an output position at unit scale.
type pointFunc func(nx, ny, nz float64) (x, y, z float64)

type shapeDef struct {
	name  string
	scale float64 // default output scale
	fn    pointFunc
}

var shapeDefs = [shapeCount]shapeDef{
	ShapeHeart:       {name: "heart", scale: 1.2, fn: heartPoint},
	ShapeHuman:       {name: "human", scale: 1.1, fn: humanPoint},
	ShapeDNA:         {name: "dna", scale: 1.2, fn: helixPoint},
	ShapeCube:        {name: "cube", scale: 1.2, fn: cubePoint},
	ShapeGalaxy:      {name: "galaxy", scale: 1.5, fn: galaxyPoint},
	ShapeInfinity:    {name: "infinity", scale: 1.3, fn: infinityPoint},
	ShapeSmallSphere: {name: "smallSphere", scale: 0.5, fn: smallSpherePoint},
	ShapeTree:        {name: "tree", scale: 1.3, fn: treePoint},
}

var shapeByName = func() map[string]Shape {
	m := make(map[string]Shape, shapeCount)
	for s := Shape(0); s < shapeCount; s++ {
		m[shapeDefs[s].name] = s
	}
	return m
}()

func (s Shape) String() string {
	if s < 0 || s >= shapeCount {
		return "unknown"
	}
	return shapeDefs[s].name
}

// DefaultScale returns the scale Generate applies for s.
func (s Shape) DefaultScale() float64 {
	if s < 0 || s >= shapeCount {
		return 1
	}
	return shapeDefs[s].scale
}

// Parse looks a shape up by name. ok is false for unknown names.
func Parse(name string) (Shape, bool) {
	s, ok := shapeByName[name]
	return s, ok
}

// All returns every shape in declaration order.
func All() []Shape {
	out := make([]Shape, 0, shapeCount)
	for s := Shape(0); s < shapeCount; s++ {
		out = append(out, s)
	}
	return out
}

// Generate maps src (flat xyz sphere positions) onto s at its default scale.
// The result always has len(src)/3 vertices. An unknown shape returns nil.
func Generate(s Shape, src []float32) []float32 {
	return GenerateScaled(s, src, s.DefaultScale())
}

// GenerateScaled is Generate with an explicit output scale.
func GenerateScaled(s Shape, src []float32, scale float64) []float32 {
	if s < 0 || s >= shapeCount {
		return nil
	}
	out := make([]float32, (len(src)/3)*3)
	GenerateInto(out, s, src, scale)
	return out
}

// GenerateInto overwrites every vertex of dst with the mapping of src onto s.
// dst and src must hold the same number of whole vertices; extra trailing
// floats in either buffer are left alone.
func GenerateInto(dst []float32, s Shape, src []float32, scale float64) {
	if s < 0 || s >= shapeCount {
		return
	}
	fn := shapeDefs[s].fn
	count := min(len(src), len(dst)) / 3
	for i := 0; i < count; i++ {
		i3 := i * 3
		nx, ny, nz := unitDir(float64(src[i3]), float64(src[i3+1]), float64(src[i3+2]))
		x, y, z := fn(nx, ny, nz)
		dst[i3] = float32(x * scale)
		dst[i3+1] = float32(y * scale)
		dst[i3+2] = float32(z * scale)
	}
}

func unitDir(x, y, z float64) (float64, float64, float64) {
	return vmath.Direction(x, y, z)
}
