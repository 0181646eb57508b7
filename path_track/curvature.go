package path_track

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultCurvatureHorizon is the number of waypoints inspected ahead of the vehicle.
const DefaultCurvatureHorizon = 10

// minCurvatureArc is the shortest arc length that yields a curvature estimate.
const minCurvatureArc = 0.1

// EstimateCurvature approximates path curvature ahead of nearest as total
// absolute heading change per unit arc length. Sensitive to waypoint spacing.
func EstimateCurvature(path Path, nearest, horizon int) float64 {
	if nearest < 0 || nearest >= len(path) || horizon <= 0 {
		return 0
	}
	end := min(nearest+horizon, len(path))
	pts := path[nearest:end]
	if len(pts) < 3 {
		return 0
	}

	segs := len(pts) - 1
	headings := make([]float64, segs)
	lengths := make([]float64, segs)
	for i := 0; i < segs; i++ {
		dx := pts[i+1].Position.X - pts[i].Position.X
		dy := pts[i+1].Position.Y - pts[i].Position.Y
		headings[i] = math.Atan2(dy, dx)
		lengths[i] = math.Hypot(dx, dy)
	}

	turns := make([]float64, segs-1)
	for i := range turns {
		turns[i] = math.Abs(WrapAngle(math.Abs(headings[i+1] - headings[i])))
	}

	// The last segment has no following heading, so it is left out of the arc.
	arc := floats.Sum(lengths[:segs-1])
	if arc <= minCurvatureArc {
		return 0
	}
	return floats.Sum(turns) / arc
}
