package path_track

import (
	"errors"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearest(t *testing.T) {
	path := straightPath(10, 2)

	t.Run("closest waypoint", func(t *testing.T) {
		idx, dist, err := Nearest(Pose{Position: r3.Vector{X: 6.4, Y: 0.3}}, path)
		require.NoError(t, err)
		assert.Equal(t, 3, idx)
		assert.InDelta(t, 0.5, dist, 1e-9)
	})

	t.Run("ties resolve to first index", func(t *testing.T) {
		idx, _, err := Nearest(Pose{Position: r3.Vector{X: 3}}, path)
		require.NoError(t, err)
		assert.Equal(t, 1, idx)
	})

	t.Run("uses all three axes", func(t *testing.T) {
		p := Path{
			{Position: r3.Vector{X: 0, Z: 5}},
			{Position: r3.Vector{X: 1}},
		}
		idx, _, err := Nearest(Pose{}, p)
		require.NoError(t, err)
		assert.Equal(t, 1, idx)
	})

	t.Run("empty path", func(t *testing.T) {
		_, _, err := Nearest(Pose{}, nil)
		assert.True(t, errors.Is(err, ErrInvalidPath))
	})
}

func TestLookahead(t *testing.T) {
	t.Run("first waypoint at or beyond distance", func(t *testing.T) {
		path := straightPath(20, 2)
		got := Lookahead(Pose{}, path, 0, 3.0)
		assert.Equal(t, r3.Vector{X: 4}, got)
	})

	t.Run("exact distance matches", func(t *testing.T) {
		path := straightPath(20, 2)
		got := Lookahead(Pose{}, path, 0, 4.0)
		assert.Equal(t, r3.Vector{X: 4}, got)
	})

	t.Run("searches forward from nearest only", func(t *testing.T) {
		path := straightPath(20, 2)
		pose := Pose{Position: r3.Vector{X: 10}}
		got := Lookahead(pose, path, 5, 3.0)
		assert.Equal(t, r3.Vector{X: 14}, got)
	})

	t.Run("falls back to fixed offset beyond horizon", func(t *testing.T) {
		path := straightPath(100, 0.01)
		got := Lookahead(Pose{}, path, 0, 3.0)
		assert.Equal(t, path[30].Position, got)
	})

	t.Run("falls back to last waypoint on short path", func(t *testing.T) {
		path := straightPath(10, 0.1)
		got := Lookahead(Pose{}, path, 0, 3.0)
		assert.Equal(t, path[9].Position, got)
	})
}
