package path_track

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateCurvature(t *testing.T) {
	tests := []struct {
		name    string
		path    Path
		nearest int
		want    float64
		delta   float64
	}{
		{"single point", straightPath(1, 2), 0, 0, 0},
		{"two points", straightPath(2, 2), 0, 0, 0},
		{"collinear evenly spaced", straightPath(20, 2), 0, 0, 1e-6},
		{"constant turn 0.1", turnPath(20, 2, 0, 0.2), 0, 0.1, 1e-9},
		{"constant turn 0.01", turnPath(20, 2, 0, 0.02), 0, 0.01, 1e-9},
		{"right turn is positive", turnPath(20, 2, 0, -0.2), 0, 0.1, 1e-9},
		{"turn across the pi boundary", turnPath(20, 2, math.Pi-0.3, 0.2), 0, 0.1, 1e-9},
		{"near coincident points", straightPath(10, 0.01), 0, 0, 0},
		{"truncated at path end", turnPath(12, 2, 0, 0.2), 10, 0, 0},
		// The window runs through the final waypoint instead of stopping one
		// short of it, so three points remain and a turn is still measured.
		{"window includes final waypoint", turnPath(12, 2, 0, 0.2), 9, 0.1, 1e-9},
		{"nearest out of range", straightPath(5, 2), 7, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateCurvature(tt.path, tt.nearest, DefaultCurvatureHorizon)
			if tt.delta == 0 {
				assert.Equal(t, tt.want, got)
				return
			}
			assert.InDelta(t, tt.want, got, tt.delta)
		})
	}
}

func TestEstimateCurvatureUsesHorizon(t *testing.T) {
	// Straight for the first 10 points, turning afterwards.
	path := append(straightPath(10, 2), turnPath(10, 2, 0, 0.3)[1:]...)
	for i := 10; i < len(path); i++ {
		path[i].Position = path[i].Position.Add(path[9].Position)
	}

	assert.InDelta(t, 0, EstimateCurvature(path, 0, 5), 1e-9)
	assert.Greater(t, EstimateCurvature(path, 6, 10), 0.05)
}

func TestEstimateCurvatureDoesNotMutatePath(t *testing.T) {
	path := turnPath(15, 2, 0, 0.1)
	before := append(Path(nil), path...)
	EstimateCurvature(path, 2, DefaultCurvatureHorizon)
	assert.Equal(t, before, path)
}

func TestEstimateCurvatureNonPositiveHorizon(t *testing.T) {
	path := turnPath(15, 2, 0, 0.2)
	assert.NotPanics(t, func() {
		assert.Equal(t, 0.0, EstimateCurvature(path, 5, 0))
		assert.Equal(t, 0.0, EstimateCurvature(path, 5, -1))
	})
}
