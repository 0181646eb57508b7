package path_track

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/multierr"
)

// Controller kinds accepted in ControllerConfig.Type.
const (
	KindPurePursuit = "pure_pursuit"
	KindStanley     = "stanley"
	KindHybrid      = "hybrid"
)

// Vehicle defaults shared by both trackers.
const (
	DefaultWheelbase   = 2.875 // meters
	DefaultTargetSpeed = 30.0  // km/h
)

// LiveConfig controls UDP input settings for vehicle state samples.
type LiveConfig struct {
	UDPAddr    string `json:"udp_addr"`
	ReadBuffer int    `json:"read_buffer"`
}

// OutputConfig controls UDP output settings for control commands.
type OutputConfig struct {
	UDPAddr string `json:"udp_addr"`
}

// LogConfig controls console logging.
type LogConfig struct {
	Enabled bool   `json:"enabled"`
	Level   string `json:"level"`
}

// ControllerConfig selects a controller and holds the parameters of each kind.
type ControllerConfig struct {
	Type        string            `json:"type"`
	PurePursuit PurePursuitConfig `json:"pure_pursuit"`
	Stanley     StanleyConfig     `json:"stanley"`
	Hybrid      ArbitratorConfig  `json:"hybrid"`
}

// AppConfig aggregates all configuration sections.
type AppConfig struct {
	Hz         float64          `json:"hz"`
	Controller ControllerConfig `json:"controller"`
	State      StateConfig      `json:"state"`
	Path       Path             `json:"path"`
	Live       LiveConfig       `json:"live"`
	Output     OutputConfig     `json:"output"`
	Telemetry  TelemetryConfig  `json:"telemetry"`
	Log        LogConfig        `json:"log"`
}

// DefaultPurePursuitConfig returns the stock geometric tracker parameters.
func DefaultPurePursuitConfig() PurePursuitConfig {
	return PurePursuitConfig{LookaheadDistance: 3.0, Wheelbase: DefaultWheelbase, TargetSpeed: DefaultTargetSpeed}
}

// DefaultStanleyConfig returns the stock Stanley parameters.
func DefaultStanleyConfig() StanleyConfig {
	return StanleyConfig{K: 1.0, Wheelbase: DefaultWheelbase, TargetSpeed: DefaultTargetSpeed}
}

// DefaultArbitratorConfig returns the stock hybrid parameters.
func DefaultArbitratorConfig() ArbitratorConfig {
	return ArbitratorConfig{
		PPLookahead:        3.0,
		StanleyK:           0.5,
		CurvatureThreshold: 0.05,
		BlendZone:          0.02,
		Mode:               ModeAdaptive,
		SpeedAdaptive:      true,
		Wheelbase:          DefaultWheelbase,
		TargetSpeed:        DefaultTargetSpeed,
		CurvatureHorizon:   DefaultCurvatureHorizon,
	}
}

// DefaultAppConfig returns the configuration used for fields a file omits.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Hz: 20,
		Controller: ControllerConfig{
			Type:        KindHybrid,
			PurePursuit: DefaultPurePursuitConfig(),
			Stanley:     DefaultStanleyConfig(),
			Hybrid:      DefaultArbitratorConfig(),
		},
		State: StateConfig{HoldSeconds: 0.5},
		Live:  LiveConfig{ReadBuffer: 2048},
		Log:   LogConfig{Level: "info"},
	}
}

// LoadConfig reads the JSON config from disk on top of DefaultAppConfig.
func LoadConfig(path string) (AppConfig, error) {
	cfg := DefaultAppConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate reports every invalid field, not just the first.
func (c AppConfig) Validate() error {
	var err error
	if c.Hz <= 0 {
		err = multierr.Append(err, errors.New("hz must be > 0"))
	}
	err = multierr.Append(err, c.Controller.Validate())
	if c.State.HoldSeconds < 0 {
		err = multierr.Append(err, errors.New("state.hold_seconds must be >= 0"))
	}
	return err
}

// Validate checks the selected controller kind and every parameter set.
func (c ControllerConfig) Validate() error {
	var err error
	switch c.Type {
	case KindPurePursuit, KindStanley, KindHybrid:
	default:
		err = multierr.Append(err, fmt.Errorf("unknown controller type %q", c.Type))
	}
	return multierr.Combine(err, c.PurePursuit.Validate(), c.Stanley.Validate(), c.Hybrid.Validate())
}

// Validate checks the geometric tracker parameters.
func (c PurePursuitConfig) Validate() error {
	var err error
	if c.LookaheadDistance <= 0 {
		err = multierr.Append(err, errors.New("pure_pursuit.lookahead_distance must be > 0"))
	}
	if c.Wheelbase <= 0 {
		err = multierr.Append(err, errors.New("pure_pursuit.wheelbase must be > 0"))
	}
	return err
}

// Validate checks the Stanley parameters.
func (c StanleyConfig) Validate() error {
	var err error
	if c.K < 0 {
		err = multierr.Append(err, errors.New("stanley.k must be >= 0"))
	}
	if c.Wheelbase <= 0 {
		err = multierr.Append(err, errors.New("stanley.wheelbase must be > 0"))
	}
	return err
}

// Validate checks the hybrid parameters.
func (c ArbitratorConfig) Validate() error {
	var err error
	if c.PPLookahead <= 0 {
		err = multierr.Append(err, errors.New("hybrid.pp_lookahead must be > 0"))
	}
	if c.StanleyK < 0 {
		err = multierr.Append(err, errors.New("hybrid.stanley_k must be >= 0"))
	}
	if c.BlendZone < 0 {
		err = multierr.Append(err, errors.New("hybrid.blend_zone must be >= 0"))
	}
	if c.Wheelbase <= 0 {
		err = multierr.Append(err, errors.New("hybrid.wheelbase must be > 0"))
	}
	if c.CurvatureHorizon < 3 {
		err = multierr.Append(err, errors.New("hybrid.curvature_horizon must be >= 3"))
	}
	switch c.Mode {
	case ModeSwitching, ModeBlending, ModeAdaptive:
	default:
		err = multierr.Append(err, fmt.Errorf("hybrid.mode %v is not supported", c.Mode))
	}
	return err
}

// NewController builds the controller selected by cfg.Type.
func NewController(cfg ControllerConfig) (Controller, error) {
	switch cfg.Type {
	case KindPurePursuit:
		return NewPurePursuit(cfg.PurePursuit), nil
	case KindStanley:
		return NewStanley(cfg.Stanley), nil
	case KindHybrid:
		return NewHybrid(cfg.Hybrid), nil
	default:
		return nil, fmt.Errorf("unknown controller type %q", cfg.Type)
	}
}

// ParseMode converts a mode name into a Mode enum.
func ParseMode(value string) (Mode, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "switching":
		return ModeSwitching, nil
	case "blending":
		return ModeBlending, nil
	case "adaptive":
		return ModeAdaptive, nil
	default:
		return ModeAdaptive, fmt.Errorf("unknown mode %q", value)
	}
}

// UnmarshalJSON allows modes to be loaded from JSON strings.
func (m *Mode) UnmarshalJSON(b []byte) error {
	var raw *string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil {
		return nil
	}
	parsed, err := ParseMode(*raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalJSON writes modes as their names.
func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}
