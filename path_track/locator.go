package path_track

import (
	"math"

	"github.com/golang/geo/r3"
)

const (
	// lookaheadHorizon bounds the forward search for a lookahead target.
	lookaheadHorizon = 50
	// lookaheadFallbackOffset is used when no waypoint in the horizon is far enough.
	lookaheadFallbackOffset = 30
)

// Nearest returns the index of and distance to the waypoint closest to the vehicle.
// Ties resolve to the lowest index.
func Nearest(pose Pose, path Path) (int, float64, error) {
	if len(path) == 0 {
		return 0, 0, ErrInvalidPath
	}
	best := 0
	bestDist := math.Inf(1)
	for i, wp := range path {
		d := pose.Position.Distance(wp.Position)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best, bestDist, nil
}

// Lookahead returns the first waypoint at or beyond lookaheadDistance from the
// vehicle, searching at most lookaheadHorizon points forward from nearest.
func Lookahead(pose Pose, path Path, nearest int, lookaheadDistance float64) r3.Vector {
	end := min(nearest+lookaheadHorizon, len(path))
	for i := nearest; i < end; i++ {
		if pose.Position.Distance(path[i].Position) >= lookaheadDistance {
			return path[i].Position
		}
	}
	if nearest+lookaheadFallbackOffset < len(path) {
		return path[nearest+lookaheadFallbackOffset].Position
	}
	return path[len(path)-1].Position
}
