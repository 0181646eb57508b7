package path_track

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// ErrInvalidPath is returned when a tracker is handed an empty path.
var ErrInvalidPath = errors.New("invalid path: no waypoints")

// Pose is the vehicle pose supplied by the platform for one tick.
//
// Conventions:
//   - Position in meters, world frame.
//   - Heading in radians, wrapped to (-pi, pi].
type Pose struct {
	Position r3.Vector
	Heading  float64
}

// Velocity is the vehicle velocity vector in m/s.
type Velocity = r3.Vector

// Speed returns the Euclidean norm of v.
func Speed(v Velocity) float64 {
	return v.Norm()
}

// Waypoint is a single reference point on the path.
type Waypoint struct {
	Position r3.Vector `json:"position"`
	Heading  float64   `json:"heading"` // radians
}

// Path is the ordered reference path; index order is the travel direction.
// Consumers never mutate a Path.
type Path []Waypoint

// ControlCommand is the actuator command returned once per tick.
type ControlCommand struct {
	Steer           float64 // [-1, 1]
	Throttle        float64 // [0, 1]
	Brake           float64 // [0, 1]
	HandBrake       bool
	ManualGearShift bool
}

// StopCommand is issued when no usable vehicle state is available.
func StopCommand() ControlCommand {
	return ControlCommand{Brake: 1}
}

// Controller produces one command per control tick.
type Controller interface {
	RunStep(pose Pose, vel Velocity, path Path) (ControlCommand, error)
}

// InfoProvider exposes the telemetry snapshot of the last tick.
type InfoProvider interface {
	Info() Telemetry
}

// Mode selects how the arbitrator combines the two trackers.
type Mode int

const (
	ModeSwitching Mode = iota + 1
	ModeBlending
	ModeAdaptive
)

func (m Mode) String() string {
	switch m {
	case ModeSwitching:
		return "switching"
	case ModeBlending:
		return "blending"
	case ModeAdaptive:
		return "adaptive"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Policy labels which tracker produced the last command.
type Policy int

const (
	PolicyHybrid Policy = iota
	PolicyPurePursuit
	PolicyStanley
	PolicyBlendPurePursuit
	PolicyBlendStanley
	PolicyBlendEven
)

func (p Policy) String() string {
	switch p {
	case PolicyHybrid:
		return "Hybrid"
	case PolicyPurePursuit:
		return "Pure Pursuit"
	case PolicyStanley:
		return "Stanley"
	case PolicyBlendPurePursuit:
		return "Pure Pursuit (blended)"
	case PolicyBlendStanley:
		return "Stanley (blended)"
	case PolicyBlendEven:
		return "Hybrid (50/50)"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Telemetry is the read-only snapshot published after each tick.
type Telemetry struct {
	ActiveController string  `json:"active_controller"`
	BlendWeight      float64 `json:"blend_weight"`
	Curvature        float64 `json:"curvature"`
	Lookahead        float64 `json:"lookahead"`
	Gain             float64 `json:"gain"`
}

// WrapAngle maps an angle in radians into (-pi, pi].
func WrapAngle(a float64) float64 {
	w := math.Atan2(math.Sin(a), math.Cos(a))
	if w <= -math.Pi {
		return math.Pi
	}
	return w
}
