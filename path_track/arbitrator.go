package path_track

import (
	"fmt"

	"github.com/samber/lo"
)

const (
	// adaptiveLowSpeed is the speed below which moderate curvature already
	// hands control to Stanley in adaptive mode.
	adaptiveLowSpeed = 8.0
	// blendSpeedRef is the speed at which the Stanley weight reduction saturates.
	blendSpeedRef = 15.0
	// blendSpeedBias is the largest fraction removed from the Stanley weight.
	blendSpeedBias = 0.3

	blendLowLabel  = 0.3
	blendHighLabel = 0.7
)

// ArbitratorConfig bundles the hybrid controller parameters.
type ArbitratorConfig struct {
	PPLookahead        float64 `json:"pp_lookahead"`
	StanleyK           float64 `json:"stanley_k"`
	CurvatureThreshold float64 `json:"curvature_threshold"`
	BlendZone          float64 `json:"blend_zone"`
	Mode               Mode    `json:"mode"`
	SpeedAdaptive      bool    `json:"speed_adaptive"`
	Wheelbase          float64 `json:"wheelbase"`
	TargetSpeed        float64 `json:"target_speed"`
	CurvatureHorizon   int     `json:"curvature_horizon"`
}

// ArbitrationState is the mutable controller state carried across ticks.
// The caller owns it and hands it to Arbitrator.Step by pointer.
type ArbitrationState struct {
	Active      Policy
	BlendWeight float64
	Curvature   float64
	Lookahead   float64
	Gain        float64
}

// NewArbitrationState returns the state of a controller that has not ticked yet.
func NewArbitrationState(cfg ArbitratorConfig) ArbitrationState {
	return ArbitrationState{
		Active:      PolicyHybrid,
		BlendWeight: 0.5,
		Lookahead:   cfg.PPLookahead,
		Gain:        cfg.StanleyK,
	}
}

// Telemetry returns a snapshot of the state.
func (s ArbitrationState) Telemetry() Telemetry {
	return Telemetry{
		ActiveController: s.Active.String(),
		BlendWeight:      s.BlendWeight,
		Curvature:        s.Curvature,
		Lookahead:        s.Lookahead,
		Gain:             s.Gain,
	}
}

// Arbitrator selects or blends the pure pursuit and Stanley trackers.
// It holds no per-tick state of its own.
type Arbitrator struct {
	Cfg     ArbitratorConfig
	pp      *PurePursuit
	stanley *Stanley
}

// NewArbitrator constructs an arbitrator and its two trackers. A zero
// Wheelbase or CurvatureHorizon takes the package default.
func NewArbitrator(cfg ArbitratorConfig) *Arbitrator {
	if cfg.Wheelbase == 0 {
		cfg.Wheelbase = DefaultWheelbase
	}
	if cfg.CurvatureHorizon == 0 {
		cfg.CurvatureHorizon = DefaultCurvatureHorizon
	}
	return &Arbitrator{
		Cfg: cfg,
		pp: NewPurePursuit(PurePursuitConfig{
			LookaheadDistance: cfg.PPLookahead,
			Wheelbase:         cfg.Wheelbase,
			TargetSpeed:       cfg.TargetSpeed,
		}),
		stanley: NewStanley(StanleyConfig{
			K:           cfg.StanleyK,
			Wheelbase:   cfg.Wheelbase,
			TargetSpeed: cfg.TargetSpeed,
		}),
	}
}

// Step computes the command for one tick and updates state in place.
func (a *Arbitrator) Step(state *ArbitrationState, pose Pose, vel Velocity, path Path) (ControlCommand, error) {
	nearest, _, err := Nearest(pose, path)
	if err != nil {
		return ControlCommand{}, fmt.Errorf("arbitrator: %w", err)
	}
	speed := Speed(vel)
	curvature := EstimateCurvature(path, nearest, a.Cfg.CurvatureHorizon)
	sched := a.schedule(speed)

	state.Curvature = curvature
	state.Lookahead = sched.Lookahead
	state.Gain = sched.Gain

	switch a.Cfg.Mode {
	case ModeSwitching:
		policy := a.Select(curvature, speed)
		state.Active = policy
		return a.commandFor(policy, pose, speed, path, sched)
	case ModeAdaptive:
		policy := a.Select(curvature, speed)
		state.Active = policy
		if policy == PolicyStanley {
			state.BlendWeight = 1
		} else {
			state.BlendWeight = 0
		}
		return a.commandFor(policy, pose, speed, path, sched)
	case ModeBlending:
		return a.blend(state, pose, speed, path, sched)
	default:
		return ControlCommand{}, fmt.Errorf("arbitrator: unsupported mode %v", a.Cfg.Mode)
	}
}

// Select returns the policy chosen for a curvature and speed. It depends on
// nothing but its inputs and the configuration.
func (a *Arbitrator) Select(curvature, speed float64) Policy {
	thr := a.Cfg.CurvatureThreshold
	switch a.Cfg.Mode {
	case ModeSwitching:
		// No hysteresis: the command can jump when curvature crosses thr.
		if curvature > thr {
			return PolicyStanley
		}
	case ModeAdaptive:
		if curvature > thr+a.Cfg.BlendZone || (curvature > thr && speed < adaptiveLowSpeed) {
			return PolicyStanley
		}
	case ModeBlending:
		return blendPolicy(a.BlendWeight(curvature, speed))
	}
	return PolicyPurePursuit
}

// BlendWeight is the Stanley share of the blended command: 0 below the blend
// band, 1 above it, linear inside. With speed adaptation it is reduced by up
// to 30% as speed approaches 15 m/s.
func (a *Arbitrator) BlendWeight(curvature, speed float64) float64 {
	low := a.Cfg.CurvatureThreshold - a.Cfg.BlendZone
	high := a.Cfg.CurvatureThreshold + a.Cfg.BlendZone

	var w float64
	switch {
	case curvature < low:
		w = 0
	case curvature > high:
		w = 1
	case a.Cfg.BlendZone <= 0:
		w = 0
	default:
		w = lo.Clamp((curvature-low)/(2*a.Cfg.BlendZone), 0, 1)
	}

	if a.Cfg.SpeedAdaptive {
		w *= 1 - blendSpeedBias*lo.Clamp(speed/blendSpeedRef, 0, 1)
	}
	return w
}

// schedule returns this tick's tracker parameters.
func (a *Arbitrator) schedule(speed float64) Schedule {
	if a.Cfg.SpeedAdaptive {
		return ScheduleFor(speed)
	}
	return Schedule{Lookahead: a.pp.Cfg.LookaheadDistance, Gain: a.stanley.Cfg.K}
}

// commandFor runs a single tracker with the scheduled parameters.
func (a *Arbitrator) commandFor(policy Policy, pose Pose, speed float64, path Path, sched Schedule) (ControlCommand, error) {
	if policy == PolicyStanley {
		steer, err := a.stanley.steer(pose, speed, path, sched.Gain)
		if err != nil {
			return ControlCommand{}, err
		}
		return assembleCommand(steer, speed, a.stanley.Cfg.TargetSpeed), nil
	}
	steer, err := a.pp.steer(pose, path, sched.Lookahead)
	if err != nil {
		return ControlCommand{}, err
	}
	return assembleCommand(steer, speed, a.pp.Cfg.TargetSpeed), nil
}

// blend mixes both trackers' steering. Throttle and brake come from the pure
// pursuit speed keeper only; the Stanley speed command is discarded.
func (a *Arbitrator) blend(state *ArbitrationState, pose Pose, speed float64, path Path, sched Schedule) (ControlCommand, error) {
	ppSteer, err := a.pp.steer(pose, path, sched.Lookahead)
	if err != nil {
		return ControlCommand{}, err
	}
	stSteer, err := a.stanley.steer(pose, speed, path, sched.Gain)
	if err != nil {
		return ControlCommand{}, err
	}

	w := a.BlendWeight(state.Curvature, speed)
	state.BlendWeight = w
	state.Active = blendPolicy(w)

	return assembleCommand((1-w)*ppSteer+w*stSteer, speed, a.pp.Cfg.TargetSpeed), nil
}

// blendPolicy labels a blend weight for telemetry.
func blendPolicy(w float64) Policy {
	switch {
	case w < blendLowLabel:
		return PolicyBlendPurePursuit
	case w > blendHighLabel:
		return PolicyBlendStanley
	default:
		return PolicyBlendEven
	}
}

// Hybrid couples an Arbitrator with its own state, for callers that want a
// single Controller value.
type Hybrid struct {
	arb   *Arbitrator
	state ArbitrationState
}

// NewHybrid constructs a hybrid controller with fresh state.
func NewHybrid(cfg ArbitratorConfig) *Hybrid {
	return &Hybrid{arb: NewArbitrator(cfg), state: NewArbitrationState(cfg)}
}

// RunStep computes the command for one tick.
func (h *Hybrid) RunStep(pose Pose, vel Velocity, path Path) (ControlCommand, error) {
	return h.arb.Step(&h.state, pose, vel, path)
}

// Info returns the telemetry snapshot of the last tick.
func (h *Hybrid) Info() Telemetry {
	return h.state.Telemetry()
}

// Arbitrator exposes the underlying arbitrator.
func (h *Hybrid) Arbitrator() *Arbitrator {
	return h.arb
}
