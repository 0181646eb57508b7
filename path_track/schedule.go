package path_track

import "math"

const (
	baseLookahead   = 2.0
	lookaheadPerMPS = 0.3
	maxLookahead    = 6.0
	lowSpeedGainMPS = 5.0
	midSpeedGainMPS = 10.0
	lowSpeedGain    = 1.0
	midSpeedGain    = 0.7
	highSpeedGain   = 0.5
)

// Schedule is the per-tick tracker parameter set.
type Schedule struct {
	Lookahead float64
	Gain      float64
}

// ScheduleLookahead grows the pure pursuit lookahead with speed, capped at 6 m.
func ScheduleLookahead(speed float64) float64 {
	return math.Min(baseLookahead+lookaheadPerMPS*speed, maxLookahead)
}

// ScheduleGain lowers the Stanley gain in steps as speed rises.
func ScheduleGain(speed float64) float64 {
	switch {
	case speed < lowSpeedGainMPS:
		return lowSpeedGain
	case speed < midSpeedGainMPS:
		return midSpeedGain
	default:
		return highSpeedGain
	}
}

// ScheduleFor returns the speed-scheduled parameters for this tick.
func ScheduleFor(speed float64) Schedule {
	return Schedule{Lookahead: ScheduleLookahead(speed), Gain: ScheduleGain(speed)}
}
