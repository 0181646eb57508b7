package path_track

import (
	"expvar"
	"net/http"

	"path-tracking/internal/log"
)

// TelemetryConfig controls the optional expvar endpoint exposing controller state.
type TelemetryConfig struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr"`
}

// TelemetryMetrics exposes live state, command and arbitration values via expvar.
type TelemetryMetrics struct {
	state   *expvar.Map
	command *expvar.Map
	info    *expvar.Map
	episode *expvar.String
	active  *expvar.String
}

// StartTelemetry starts an HTTP server exposing /debug/vars.
func StartTelemetry(cfg TelemetryConfig) (*TelemetryMetrics, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:7070"
	}

	metrics := newTelemetryMetrics()

	server := &http.Server{Addr: cfg.Addr, Handler: http.DefaultServeMux}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("telemetry server error", "addr", cfg.Addr, "err", err)
		}
	}()

	return metrics, nil
}

// newTelemetryMetrics registers the published variables. expvar names are
// process-global, so this runs at most once per process.
func newTelemetryMetrics() *TelemetryMetrics {
	m := &TelemetryMetrics{
		state:   expvar.NewMap("vehicle"),
		command: expvar.NewMap("command"),
		info:    expvar.NewMap("arbitration"),
		episode: expvar.NewString("episode"),
		active:  expvar.NewString("active_controller"),
	}
	for _, k := range []string{"x", "y", "heading", "speed", "age"} {
		m.state.Set(k, new(expvar.Float))
	}
	for _, k := range []string{"steer", "throttle", "brake"} {
		m.command.Set(k, new(expvar.Float))
	}
	for _, k := range []string{"blend_weight", "curvature", "lookahead", "gain"} {
		m.info.Set(k, new(expvar.Float))
	}
	return m
}

// SetEpisode publishes the current episode id.
func (v *TelemetryMetrics) SetEpisode(id string) {
	if v == nil {
		return
	}
	v.episode.Set(id)
}

// UpdateState publishes the vehicle state used this tick.
func (v *TelemetryMetrics) UpdateState(st VehicleState) {
	if v == nil {
		return
	}
	setFloat(v.state, "x", st.Pose.Position.X)
	setFloat(v.state, "y", st.Pose.Position.Y)
	setFloat(v.state, "heading", st.Pose.Heading)
	setFloat(v.state, "speed", Speed(st.Velocity))
	setFloat(v.state, "age", st.Age)
}

// UpdateCommand publishes the command and, when available, arbitration telemetry.
func (v *TelemetryMetrics) UpdateCommand(cmd ControlCommand, info *Telemetry) {
	if v == nil {
		return
	}
	setFloat(v.command, "steer", cmd.Steer)
	setFloat(v.command, "throttle", cmd.Throttle)
	setFloat(v.command, "brake", cmd.Brake)
	if info == nil {
		return
	}
	v.active.Set(info.ActiveController)
	setFloat(v.info, "blend_weight", info.BlendWeight)
	setFloat(v.info, "curvature", info.Curvature)
	setFloat(v.info, "lookahead", info.Lookahead)
	setFloat(v.info, "gain", info.Gain)
}

// setFloat updates an expvar.Float stored inside a map.
func setFloat(m *expvar.Map, key string, value float64) {
	if v := m.Get(key); v != nil {
		if f, ok := v.(*expvar.Float); ok {
			f.Set(value)
			return
		}
	}
	f := new(expvar.Float)
	f.Set(value)
	m.Set(key, f)
}
