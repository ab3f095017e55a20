package scrollbar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDragSession(t *testing.T) {
	track := NewTrack(0, 40)
	s := NewDragSession()
	require.False(t, s.Active())
	assert.True(t, math.IsNaN(s.Pointer()))
	assert.True(t, math.IsNaN(s.Travel()))

	assert.Equal(t, 0.25, s.Start(track, 10))
	assert.True(t, s.Active())

	travel, ok := s.Move(track, 20, 8)
	require.True(t, ok)
	assert.InDelta(t, 0.5, travel, 1e-9)
	assert.Equal(t, 20.0, s.Pointer())

	s.End()
	assert.False(t, s.Active())
	assert.True(t, math.IsNaN(s.Travel()))
}

func TestDragSessionMalformed(t *testing.T) {
	track := NewTrack(0, 40)
	s := NewDragSession()

	// Move and end without a start leave the session inactive.
	_, ok := s.Move(track, 12, 8)
	assert.False(t, ok)
	s.End()
	assert.False(t, s.Active())

	s.Start(track, math.NaN())
	assert.False(t, s.Active())
}
