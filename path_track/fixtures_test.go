package path_track

import (
	"math"

	"github.com/golang/geo/r3"
)

// straightPath returns n waypoints along +x, spacing meters apart, from x=0.
func straightPath(n int, spacing float64) Path {
	path := make(Path, n)
	for i := range path {
		path[i] = Waypoint{Position: r3.Vector{X: float64(i) * spacing}}
	}
	return path
}

// turnPath returns n waypoints whose heading changes by turn radians after
// every segment, so the estimated curvature is turn/spacing.
func turnPath(n int, spacing, startHeading, turn float64) Path {
	path := make(Path, n)
	pos := r3.Vector{}
	h := startHeading
	for i := range path {
		path[i] = Waypoint{Position: pos, Heading: h}
		pos = pos.Add(r3.Vector{X: spacing * math.Cos(h), Y: spacing * math.Sin(h)})
		h += turn
	}
	return path
}

// poseAt places the vehicle on waypoint i, aligned with it.
func poseAt(path Path, i int) Pose {
	return Pose{Position: path[i].Position, Heading: WrapAngle(path[i].Heading)}
}

// forward returns a velocity of speed m/s along heading.
func forward(speed, heading float64) Velocity {
	return r3.Vector{X: speed * math.Cos(heading), Y: speed * math.Sin(heading)}
}
