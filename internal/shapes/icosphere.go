package shapes

import "math"

// icosahedron corner positions (unnormalised) and face winding.
var (
	icoT = (1 + math.Sqrt(5)) / 2

	icoCorners = [12][3]float64{
		{-1, icoT, 0}, {1, icoT, 0}, {-1, -icoT, 0}, {1, -icoT, 0},
		{0, -1, icoT}, {0, 1, icoT}, {0, -1, -icoT}, {0, 1, -icoT},
		{icoT, 0, -1}, {icoT, 0, 1}, {-icoT, 0, -1}, {-icoT, 0, 1},
	}

	icoFaces = [20][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
)

// IcosphereVertexCount is the number of vertices Icosphere emits for detail.
// Triangles are not indexed: every face owns its three corners.
func IcosphereVertexCount(detail int) int {
	if detail < 0 {
		detail = 0
	}
	cols := detail + 1
	return len(icoFaces) * cols * cols * 3
}

// Icosphere tessellates a sphere of the given radius by subdividing each of
// the 20 icosahedron faces into (detail+1)² triangles and projecting every
// vertex onto the sphere. The buffer is flat xyz, length 3×vertexCount.
// Vertex order is fixed for a given detail, so wireframe adjacency is stable.
func Icosphere(radius float64, detail int) []float32 {
	if detail < 0 {
		detail = 0
	}
	cols := detail + 1
	out := make([]float32, 0, IcosphereVertexCount(detail)*3)

	push := func(p [3]float64) {
		nx, ny, nz := unitDir(p[0], p[1], p[2])
		out = append(out, float32(nx*radius), float32(ny*radius), float32(nz*radius))
	}

	grid := make([][][3]float64, cols+1)
	for _, f := range icoFaces {
		a, b, c := icoCorners[f[0]], icoCorners[f[1]], icoCorners[f[2]]

		for i := 0; i <= cols; i++ {
			fi := float64(i) / float64(cols)
			aj := lerp3(a, c, fi)
			bj := lerp3(b, c, fi)
			rows := cols - i
			grid[i] = grid[i][:0]
			for j := 0; j <= rows; j++ {
				if j == 0 && i == cols {
					grid[i] = append(grid[i], aj)
					continue
				}
				grid[i] = append(grid[i], lerp3(aj, bj, float64(j)/float64(rows)))
			}
		}

		for i := 0; i < cols; i++ {
			for j := 0; j < 2*(cols-i)-1; j++ {
				k := j / 2
				if j%2 == 0 {
					push(grid[i][k+1])
					push(grid[i+1][k])
					push(grid[i][k])
				} else {
					push(grid[i][k+1])
					push(grid[i+1][k+1])
					push(grid[i+1][k])
				}
			}
		}
	}
	return out
}

func lerp3(a, b [3]float64, t float64) [3]float64 {
	return [3]float64{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}
