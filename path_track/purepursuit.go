package path_track

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// minLookaheadSq is the squared target distance below which no curvature is commanded.
const minLookaheadSq = 0.01

// PurePursuitConfig holds the geometric tracker parameters.
type PurePursuitConfig struct {
	LookaheadDistance float64 `json:"lookahead_distance"` // meters
	Wheelbase         float64 `json:"wheelbase"`          // meters
	TargetSpeed       float64 `json:"target_speed"`       // km/h
}

// PurePursuit steers along the arc that reaches a lookahead point on the path.
type PurePursuit struct {
	Cfg PurePursuitConfig
}

// NewPurePursuit constructs a tracker with the given configuration.
func NewPurePursuit(cfg PurePursuitConfig) *PurePursuit {
	return &PurePursuit{Cfg: cfg}
}

// PurePursuitSteer returns the normalized steering command that drives the
// vehicle along the arc through target.
func PurePursuitSteer(pose Pose, target r3.Vector, wheelbase float64) float64 {
	dx := target.X - pose.Position.X
	dy := target.Y - pose.Position.Y
	sin, cos := math.Sincos(pose.Heading)

	localX := dx*cos + dy*sin
	localY := -dx*sin + dy*cos

	ldSq := localX*localX + localY*localY
	curvature := 0.0
	if ldSq > minLookaheadSq {
		curvature = 2 * localY / ldSq
	}
	return NormalizeSteer(math.Atan(curvature * wheelbase))
}

// steer computes the steering command for an explicit lookahead distance.
func (pp *PurePursuit) steer(pose Pose, path Path, lookahead float64) (float64, error) {
	nearest, _, err := Nearest(pose, path)
	if err != nil {
		return 0, fmt.Errorf("pure pursuit: %w", err)
	}
	target := Lookahead(pose, path, nearest, lookahead)
	return PurePursuitSteer(pose, target, pp.Cfg.Wheelbase), nil
}

// RunStep computes the command for one tick using the configured lookahead.
func (pp *PurePursuit) RunStep(pose Pose, vel Velocity, path Path) (ControlCommand, error) {
	steer, err := pp.steer(pose, path, pp.Cfg.LookaheadDistance)
	if err != nil {
		return ControlCommand{}, err
	}
	return assembleCommand(steer, Speed(vel), pp.Cfg.TargetSpeed), nil
}
