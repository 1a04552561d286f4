package field

import (
	"math"
	"math/rand"

	"github.com/Garsondee/Neural-Entity/internal/vmath"
)

// Edge joins two network nodes. Alpha is 1 − Distance/threshold.
type Edge struct {
	From, To int
	Distance float64
	Alpha    float64
}

// samplePoint draws a point uniformly over directions at a radius uniform in
// [r0, r1). The polar angle uses acos(2u−1) so the poles do not cluster.
func samplePoint(rng *rand.Rand, r0, r1 float64) vmath.Vec3 {
	r := r0 + rng.Float64()*(r1-r0)
	theta := rng.Float64() * math.Pi * 2
	phi := math.Acos(2*rng.Float64() - 1)
	return vmath.V3FromSpherical(r, theta, phi)
}

// BuildEdges checks every unordered node pair once and keeps those strictly
// closer than threshold, ordered by (From, To) with From < To.
func BuildEdges(nodes []vmath.Vec3, threshold float64) []Edge {
	var edges []Edge
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			d := vmath.V3Dist(nodes[i], nodes[j])
			if d < threshold {
				edges = append(edges, Edge{From: i, To: j, Distance: d, Alpha: 1 - d/threshold})
			}
		}
	}
	return edges
}
