package path_track

import (
	"math"

	"github.com/samber/lo"
)

// MaxSteerAngle is the steering angle that maps to a full-lock command.
var MaxSteerAngle = 70 * math.Pi / 180

const (
	cruiseThrottle = 0.5
	cruiseBrake    = 0.3
)

// ClipSteer keeps a normalized steering value inside [-1, 1].
func ClipSteer(steer float64) float64 {
	return lo.Clamp(steer, -1, 1)
}

// NormalizeSteer converts a steering angle in radians to a clipped command.
func NormalizeSteer(angle float64) float64 {
	return ClipSteer(angle / MaxSteerAngle)
}

// SpeedCommand is a bang-bang speed keeper: full cruise throttle below the
// target speed (km/h), fixed brake at or above it.
func SpeedCommand(speed, targetKmh float64) (throttle, brake float64) {
	if speed < targetKmh/3.6 {
		return cruiseThrottle, 0
	}
	return 0, cruiseBrake
}

// assembleCommand builds the actuator command for a steering value.
func assembleCommand(steer, speed, targetKmh float64) ControlCommand {
	throttle, brake := SpeedCommand(speed, targetKmh)
	return ControlCommand{
		Steer:    ClipSteer(steer),
		Throttle: throttle,
		Brake:    brake,
	}
}
