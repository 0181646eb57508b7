package path_track

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"hz": 10,
		"controller": {"type": "hybrid", "hybrid": {"mode": "blending", "blend_zone": 0.01}},
		"path": [{"position": {"X": 0, "Y": 0, "Z": 0}}, {"position": {"X": 2, "Y": 0, "Z": 0}}],
		"live": {"udp_addr": "127.0.0.1:5005"}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 10.0, cfg.Hz)
	assert.Equal(t, ModeBlending, cfg.Controller.Hybrid.Mode)
	assert.Equal(t, 0.01, cfg.Controller.Hybrid.BlendZone)
	assert.Equal(t, 0.05, cfg.Controller.Hybrid.CurvatureThreshold)
	assert.True(t, cfg.Controller.Hybrid.SpeedAdaptive)
	assert.Equal(t, DefaultPurePursuitConfig(), cfg.Controller.PurePursuit)
	assert.Equal(t, DefaultStanleyConfig(), cfg.Controller.Stanley)
	assert.Equal(t, 2048, cfg.Live.ReadBuffer)
	require.Len(t, cfg.Path, 2)
	assert.Equal(t, 2.0, cfg.Path[1].Position.X)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("bad mode", func(t *testing.T) {
		path := writeConfig(t, `{"controller": {"hybrid": {"mode": "wobbly"}}}`)
		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "unknown mode")
	})

	t.Run("invalid values are all reported", func(t *testing.T) {
		path := writeConfig(t, `{"hz": 0, "controller": {"type": "mpc", "stanley": {"k": -1}}}`)
		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.ErrorContains(t, err, "hz must be > 0")
		assert.ErrorContains(t, err, `unknown controller type "mpc"`)
		assert.ErrorContains(t, err, "stanley.k must be >= 0")
	})
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := DefaultArbitratorConfig()
	cfg.PPLookahead = 0
	cfg.BlendZone = -1
	cfg.Mode = Mode(9)

	err := cfg.Validate()
	assert.Len(t, multierr.Errors(err), 3)
	assert.NoError(t, DefaultAppConfig().Validate())
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"switching", ModeSwitching, false},
		{" Blending ", ModeBlending, false},
		{"ADAPTIVE", ModeAdaptive, false},
		{"hybrid", ModeAdaptive, true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestModeJSON(t *testing.T) {
	var cfg ArbitratorConfig
	require.NoError(t, json.Unmarshal([]byte(`{"mode": "switching"}`), &cfg))
	assert.Equal(t, ModeSwitching, cfg.Mode)

	cfg.Mode = ModeBlending
	require.NoError(t, json.Unmarshal([]byte(`{"mode": null}`), &cfg))
	assert.Equal(t, ModeBlending, cfg.Mode)

	b, err := json.Marshal(ModeAdaptive)
	require.NoError(t, err)
	assert.Equal(t, `"adaptive"`, string(b))

	assert.Equal(t, "Mode(7)", Mode(7).String())
}

func TestNewController(t *testing.T) {
	cfg := DefaultAppConfig().Controller

	for kind, want := range map[string]any{
		KindPurePursuit: &PurePursuit{},
		KindStanley:     &Stanley{},
		KindHybrid:      &Hybrid{},
	} {
		cfg.Type = kind
		c, err := NewController(cfg)
		require.NoError(t, err, kind)
		assert.IsType(t, want, c, kind)
	}

	cfg.Type = "lqr"
	_, err := NewController(cfg)
	assert.Error(t, err)
}
