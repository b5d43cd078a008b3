package trigger

import (
	"time"

	"github.com/google/uuid"
)

// Clock abstracts time so date triggers are deterministic under test.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// RealClock returns the wall clock.
func RealClock() Clock { return realClock{} }

// FixedClock always reports t.
type FixedClock time.Time

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return time.Time(c) }

// BuiltinOptions controls the formats used by the built-in triggers.
type BuiltinOptions struct {
	Clock      Clock
	DateFormat string
	TimeFormat string
	// NewID produces identifiers for the uuid trigger.
	NewID func() string
}

// DefaultBuiltinOptions returns US-style date and 24h time formats.
func DefaultBuiltinOptions() BuiltinOptions {
	return BuiltinOptions{
		Clock:      RealClock(),
		DateFormat: "01/02/2006",
		TimeFormat: "15:04",
		NewID:      uuid.NewString,
	}
}

func (o BuiltinOptions) withDefaults() BuiltinOptions {
	def := DefaultBuiltinOptions()
	if o.Clock == nil {
		o.Clock = def.Clock
	}
	if o.DateFormat == "" {
		o.DateFormat = def.DateFormat
	}
	if o.TimeFormat == "" {
		o.TimeFormat = def.TimeFormat
	}
	if o.NewID == nil {
		o.NewID = def.NewID
	}
	return o
}

// RegisterBuiltins adds the date, time and identifier triggers.
func RegisterBuiltins(r *Registry, opts BuiltinOptions) error {
	opts = opts.withDefaults()
	now := opts.Clock.Now

	format := func(layout string, shiftDays int) func() (string, bool) {
		return func() (string, bool) {
			return now().AddDate(0, 0, shiftDays).Format(layout), true
		}
	}

	builtins := []struct {
		names []string
		fn    func() (string, bool)
		desc  string
	}{
		{[]string{"today", "date"}, format(opts.DateFormat, 0), "Current date"},
		{[]string{"yesterday"}, format(opts.DateFormat, -1), "Yesterday's date"},
		{[]string{"tomorrow"}, format(opts.DateFormat, 1), "Tomorrow's date"},
		{[]string{"time"}, format(opts.TimeFormat, 0), "Current time"},
		{[]string{"now", "datetime"}, format(opts.DateFormat+" "+opts.TimeFormat, 0), "Current date and time"},
		{[]string{"weekday", "day"}, format("Monday", 0), "Name of the current weekday"},
		{[]string{"month"}, format("January", 0), "Name of the current month"},
		{[]string{"year"}, format("2006", 0), "Current year"},
		{[]string{"iso", "timestamp"}, format(time.RFC3339, 0), "Current time in RFC 3339"},
		{[]string{"uuid", "guid"}, func() (string, bool) { return opts.NewID(), true }, "A fresh random UUID"},
	}
	for _, b := range builtins {
		if err := r.RegisterFunc(b.names, b.fn, b.desc); err != nil {
			return err
		}
	}
	return nil
}
