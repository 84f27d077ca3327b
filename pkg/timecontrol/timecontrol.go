// Package timecontrol parses the "<time>+<increment>" textual time
// control grammar into a pair of durations. Grounded on
// original_source/cozy-matches/src/time_control.rs.
package timecontrol

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimeControl is a base time plus a per-move increment.
type TimeControl struct {
	Time      time.Duration
	Increment time.Duration
}

// ErrInvalid is returned for any textual time control that does not
// match the grammar: empty components, missing '+', non-finite or
// negative numbers, or magnitudes too large to represent.
var ErrInvalid = errors.New("timecontrol: invalid time control")

// Parse parses "<time>+<increment>", where each component is a
// nonnegative decimal number optionally suffixed with ms|s|m|h (no
// suffix means seconds). Examples: "60+0.5", "3m+2s", "500ms+0".
func Parse(s string) (TimeControl, error) {
	time1, time2, ok := strings.Cut(s, "+")
	if !ok {
		return TimeControl{}, fmt.Errorf("%w: %q: missing '+'", ErrInvalid, s)
	}
	t, err := parseDuration(time1)
	if err != nil {
		return TimeControl{}, fmt.Errorf("%w: %q: %v", ErrInvalid, s, err)
	}
	inc, err := parseDuration(time2)
	if err != nil {
		return TimeControl{}, fmt.Errorf("%w: %q: %v", ErrInvalid, s, err)
	}
	return TimeControl{Time: t, Increment: inc}, nil
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("empty time component")
	}
	switch {
	case strings.HasSuffix(s, "ms"):
		secs, err := parseSeconds(strings.TrimSuffix(s, "ms"))
		if err != nil {
			return 0, err
		}
		return secs / 1000, nil
	case strings.HasSuffix(s, "s"):
		return parseSeconds(strings.TrimSuffix(s, "s"))
	case strings.HasSuffix(s, "m"):
		secs, err := parseSeconds(strings.TrimSuffix(s, "m"))
		if err != nil {
			return 0, err
		}
		if secs > time.Duration(math.MaxInt64)/60 {
			return 0, fmt.Errorf("magnitude too large: %q", s)
		}
		return secs * 60, nil
	case strings.HasSuffix(s, "h"):
		secs, err := parseSeconds(strings.TrimSuffix(s, "h"))
		if err != nil {
			return 0, err
		}
		if secs > time.Duration(math.MaxInt64)/(60*60) {
			return 0, fmt.Errorf("magnitude too large: %q", s)
		}
		return secs * 60 * 60, nil
	default:
		return parseSeconds(s)
	}
}

// maxSeconds bounds parsed magnitudes to keep them representable as a
// time.Duration (max ~292 years in nanoseconds) well short of the
// grammar's 2^64-second ceiling.
const maxSeconds = float64(math.MaxInt64) / float64(time.Second)

func parseSeconds(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("empty time component")
	}
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if math.Signbit(secs) || math.IsInf(secs, 0) || math.IsNaN(secs) {
		return 0, fmt.Errorf("negative or non-finite magnitude: %q", s)
	}
	if secs > maxSeconds {
		return 0, fmt.Errorf("magnitude too large: %q", s)
	}
	return time.Duration(secs * float64(time.Second)), nil
}
