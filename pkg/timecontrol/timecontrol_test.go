package timecontrol

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasicSeconds(t *testing.T) {
	tc, err := Parse("60+0")
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, tc.Time)
	assert.Equal(t, time.Duration(0), tc.Increment)
}

func TestParseMinutesAndSeconds(t *testing.T) {
	tc, err := Parse("3m+2s")
	require.NoError(t, err)
	assert.Equal(t, 180*time.Second, tc.Time)
	assert.Equal(t, 2*time.Second, tc.Increment)
}

func TestParseMilliseconds(t *testing.T) {
	tc, err := Parse("500ms+250ms")
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, tc.Time)
	assert.Equal(t, 250*time.Millisecond, tc.Increment)
}

func TestParseFractionalSeconds(t *testing.T) {
	tc, err := Parse("60+0.5")
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, tc.Time)
	assert.Equal(t, 500*time.Millisecond, tc.Increment)
}

func TestParseMissingPlusRejected(t *testing.T) {
	_, err := Parse("60")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParseNegativeRejected(t *testing.T) {
	_, err := Parse("-1+0")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParseEmptyComponentRejected(t *testing.T) {
	_, err := Parse("+0")
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = Parse("0+")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParseNonFiniteRejected(t *testing.T) {
	_, err := Parse("Inf+0")
	assert.ErrorIs(t, err, ErrInvalid)
}
