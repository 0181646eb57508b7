package path_track

import (
	"fmt"
	"math"
)

// minStanleySpeed keeps the cross-track term finite at standstill.
const minStanleySpeed = 0.1

// StanleyConfig holds the error-based tracker parameters.
type StanleyConfig struct {
	K           float64 `json:"k"`            // cross-track gain
	Wheelbase   float64 `json:"wheelbase"`    // meters
	TargetSpeed float64 `json:"target_speed"` // km/h
}

// Stanley steers on heading error plus a speed-scaled cross-track correction.
type Stanley struct {
	Cfg StanleyConfig
}

// NewStanley constructs a tracker with the given configuration.
func NewStanley(cfg StanleyConfig) *Stanley {
	return &Stanley{Cfg: cfg}
}

// PathHeading is the path direction at index i: toward the next waypoint when
// there is one, otherwise the waypoint's own heading.
func PathHeading(path Path, i int) float64 {
	if i+1 < len(path) {
		d := path[i+1].Position.Sub(path[i].Position)
		return math.Atan2(d.Y, d.X)
	}
	return path[i].Heading
}

// CrossTrackError projects the vehicle-to-waypoint vector on the vehicle's
// lateral axis.
func CrossTrackError(pose Pose, wp Waypoint) float64 {
	dx := wp.Position.X - pose.Position.X
	dy := wp.Position.Y - pose.Position.Y
	sin, cos := math.Sincos(pose.Heading)
	return -dx*sin + dy*cos
}

// StanleySteer returns the normalized Stanley steering command.
func StanleySteer(pose Pose, speed float64, path Path, k float64) (float64, error) {
	nearest, _, err := Nearest(pose, path)
	if err != nil {
		return 0, err
	}
	headingErr := WrapAngle(PathHeading(path, nearest) - pose.Heading)
	cte := CrossTrackError(pose, path[nearest])

	delta := headingErr + math.Atan(k*cte/math.Max(speed, minStanleySpeed))
	return NormalizeSteer(delta), nil
}

// steer computes the steering command for an explicit gain.
func (s *Stanley) steer(pose Pose, speed float64, path Path, k float64) (float64, error) {
	steer, err := StanleySteer(pose, speed, path, k)
	if err != nil {
		return 0, fmt.Errorf("stanley: %w", err)
	}
	return steer, nil
}

// RunStep computes the command for one tick using the configured gain.
func (s *Stanley) RunStep(pose Pose, vel Velocity, path Path) (ControlCommand, error) {
	speed := Speed(vel)
	steer, err := s.steer(pose, speed, path, s.Cfg.K)
	if err != nil {
		return ControlCommand{}, err
	}
	return assembleCommand(steer, speed, s.Cfg.TargetSpeed), nil
}
