package path_track

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TrackingMetrics accumulates per-tick tracking quality for one episode.
// It keeps everything in memory; nothing is written out.
type TrackingMetrics struct {
	LateralErrors []float64
	HeadingErrors []float64 // degrees
	Steering      []float64
	Speeds        []float64
	Curvatures    []float64
	Active        []string
	BlendWeights  []float64
}

// MetricsSummary condenses an episode into scalar indicators.
type MetricsSummary struct {
	MeanLateralError    float64 `json:"mean_lateral_error"`
	MaxLateralError     float64 `json:"max_lateral_error"`
	StdLateralError     float64 `json:"std_lateral_error"`
	MeanAbsHeadingError float64 `json:"mean_abs_heading_error"`
	MaxAbsHeadingError  float64 `json:"max_abs_heading_error"`
	SteeringSmoothness  float64 `json:"steering_smoothness"`
	MeanSpeed           float64 `json:"mean_speed"`
	MeanCurvature       float64 `json:"mean_curvature"`
	TotalSteps          int     `json:"total_steps"`
}

// Record adds one tick. Lateral error is the distance to the nearest waypoint
// and heading error is taken against that waypoint's stored heading.
// A nil info records the controller as label with no curvature or blend.
func (m *TrackingMetrics) Record(pose Pose, vel Velocity, path Path, cmd ControlCommand, label string, info *Telemetry) error {
	nearest, dist, err := Nearest(pose, path)
	if err != nil {
		return err
	}
	headingErr := WrapAngle(path[nearest].Heading - pose.Heading)

	m.LateralErrors = append(m.LateralErrors, dist)
	m.HeadingErrors = append(m.HeadingErrors, headingErr*180/math.Pi)
	m.Steering = append(m.Steering, cmd.Steer)
	m.Speeds = append(m.Speeds, Speed(vel))
	if info != nil {
		m.Curvatures = append(m.Curvatures, info.Curvature)
		m.Active = append(m.Active, info.ActiveController)
		m.BlendWeights = append(m.BlendWeights, info.BlendWeight)
	} else {
		m.Curvatures = append(m.Curvatures, 0)
		m.Active = append(m.Active, label)
		m.BlendWeights = append(m.BlendWeights, 0)
	}
	return nil
}

// Steps returns the number of recorded ticks.
func (m *TrackingMetrics) Steps() int {
	return len(m.LateralErrors)
}

// Summary computes the episode indicators. Steering smoothness is the
// population standard deviation of successive steering changes.
func (m *TrackingMetrics) Summary() MetricsSummary {
	n := m.Steps()
	if n == 0 {
		return MetricsSummary{}
	}

	absHeading := make([]float64, n)
	for i, h := range m.HeadingErrors {
		absHeading[i] = math.Abs(h)
	}

	var smooth float64
	if len(m.Steering) > 1 {
		diffs := make([]float64, len(m.Steering)-1)
		for i := range diffs {
			diffs[i] = m.Steering[i+1] - m.Steering[i]
		}
		smooth = stat.PopStdDev(diffs, nil)
	}

	return MetricsSummary{
		MeanLateralError:    stat.Mean(m.LateralErrors, nil),
		MaxLateralError:     floats.Max(m.LateralErrors),
		StdLateralError:     stat.PopStdDev(m.LateralErrors, nil),
		MeanAbsHeadingError: stat.Mean(absHeading, nil),
		MaxAbsHeadingError:  floats.Max(absHeading),
		SteeringSmoothness:  smooth,
		MeanSpeed:           stat.Mean(m.Speeds, nil),
		MeanCurvature:       stat.Mean(m.Curvatures, nil),
		TotalSteps:          n,
	}
}

// Reset drops all recorded ticks.
func (m *TrackingMetrics) Reset() {
	*m = TrackingMetrics{}
}
