package path_track

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
)

func TestStateTracker(t *testing.T) {
	tr := NewStateTracker(StateConfig{HoldSeconds: 0.5})

	st := tr.Update(0, VehicleSample{})
	assert.False(t, st.Valid, "no sample yet")
	assert.Equal(t, float64(neverSeenAge), st.Age)

	pose := Pose{Position: r3.Vector{X: 3, Y: 1}, Heading: 0.2}
	vel := r3.Vector{X: 4}
	st = tr.Update(1, VehicleSample{T: 1, Received: true, Pose: pose, Velocity: vel})
	assert.True(t, st.Valid)
	assert.Equal(t, 0.0, st.Age)
	assert.Equal(t, pose, st.Pose)

	st = tr.Update(1.4, VehicleSample{})
	assert.True(t, st.Valid, "held within hold time")
	assert.InDelta(t, 0.4, st.Age, 1e-12)
	assert.Equal(t, pose, st.Pose)
	assert.Equal(t, vel, st.Velocity)

	st = tr.Update(1.6, VehicleSample{})
	assert.False(t, st.Valid, "stale after hold time")
	assert.Equal(t, pose, st.Pose)
}

func TestStateTrackerIgnoresPlatformClock(t *testing.T) {
	tests := []struct {
		name      string
		platformT float64
	}{
		{"platform ahead", 1000},
		{"platform behind", -1000},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := NewStateTracker(StateConfig{HoldSeconds: 0.5})

			st := tr.Update(0, VehicleSample{T: tc.platformT, Received: true})
			assert.True(t, st.Valid)
			assert.Equal(t, tc.platformT, st.SampleT)

			st = tr.Update(0.2, VehicleSample{})
			assert.True(t, st.Valid, "between packets the sample is still held")
			assert.InDelta(t, 0.2, st.Age, 1e-12)
			assert.Equal(t, tc.platformT, st.SampleT)

			st = tr.Update(60, VehicleSample{})
			assert.False(t, st.Valid, "stale on the local clock")
			assert.Equal(t, 60.0, st.Age)
		})
	}
}
