package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/chess-backend/uci-arbiter/pkg/timecontrol"
)

func TestInfiniteNeverFlags(t *testing.T) {
	s := NewInfinite()
	next, flagged := s.Update(10 * time.Hour)
	assert.False(t, flagged)
	assert.Equal(t, s, next)
}

func TestMoveTimeFlagsWhenExceeded(t *testing.T) {
	s := NewMoveTime(time.Second)
	_, flagged := s.Update(2 * time.Second)
	assert.True(t, flagged)
}

func TestMoveTimeDoesNotFlagWithinBudget(t *testing.T) {
	s := NewMoveTime(time.Second)
	_, flagged := s.Update(500 * time.Millisecond)
	assert.False(t, flagged)
}

func TestClockCreditsIncrementBeforeDeducting(t *testing.T) {
	tc := timecontrol.TimeControl{Time: 10 * time.Second, Increment: 2 * time.Second}
	s := NewClock(tc)
	next, flagged := s.Update(5 * time.Second)
	assert.False(t, flagged)
	assert.Equal(t, 7*time.Second, next.TimeControl.Time)
}

func TestClockFlagsWhenTimeExhausted(t *testing.T) {
	tc := timecontrol.TimeControl{Time: 2 * time.Second, Increment: 0}
	s := NewClock(tc)
	next, flagged := s.Update(5 * time.Second)
	assert.True(t, flagged)
	assert.Equal(t, time.Duration(0), next.TimeControl.Time)
}

func TestClockSaturatesRatherThanGoingNegative(t *testing.T) {
	tc := timecontrol.TimeControl{Time: time.Second, Increment: time.Second}
	s := NewClock(tc)
	next, flagged := s.Update(10 * time.Second)
	assert.True(t, flagged)
	assert.Equal(t, time.Duration(0), next.TimeControl.Time)
}
