package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrEndBeforeStart = errors.New("end time must be after start time")
var ErrTimeInFuture = errors.New("time must not be in the future")

// Duration is the result of computing a work-log span: the raw span in
// minutes and the client-facing adjusted span.
type Duration struct {
	RawMin      float64
	AdjustedMin float64
}

// EffectiveMultiplier resolves the duration multiplier for a task: module
// override, then project, then client, first non-nil wins, 1.0 when all are
// nil.
func EffectiveMultiplier(module, project, client *float64) float64 {
	for _, m := range []*float64{module, project, client} {
		if m != nil {
			return *m
		}
	}
	return 1.0
}

// ComputeDuration validates a start/end pair against now and returns the raw
// and multiplier-adjusted spans in minutes. Pure; the same function is used
// at work-log creation and never re-derived elsewhere.
func ComputeDuration(start, end, now time.Time, multiplier float64) (Duration, error) {
	if !end.After(start) {
		return Duration{}, ErrEndBeforeStart
	}
	if start.After(now) || end.After(now) {
		return Duration{}, ErrTimeInFuture
	}
	raw := end.Sub(start).Minutes()
	return Duration{RawMin: raw, AdjustedMin: raw * multiplier}, nil
}

// FormatDurationMin renders minutes as "Xh Ym", omitting zero components.
// Zero minutes renders as the empty string.
func FormatDurationMin(minutes float64) string {
	total := int(minutes + 0.5)
	h := total / 60
	m := total % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return ""
	}
}
