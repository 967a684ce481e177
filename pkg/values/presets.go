package values

import (
	"sort"
	"strings"
	"time"

	"github.com/matzehuels/clockblocks/pkg/errors"
	"github.com/matzehuels/clockblocks/pkg/theme"
)

// Preset names accepted by [Preset].
const (
	PresetClock = "clock"
	PresetHour  = "hour"
	PresetDay   = "day"
)

var presets = map[string]func(time.Time) []Value{
	PresetClock: Clock,
	PresetHour:  HourProgress,
	PresetDay:   DayProgress,
}

// Presets returns the preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset builds the named preset for t.
func Preset(name string, t time.Time) ([]Value, error) {
	fn, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"unknown preset %q (available: %s)", name, strings.Join(Presets(), ", "))
	}
	return fn(t), nil
}

// Clock reads the wall clock as two blocks: the hour and the minute.
// At midnight both weights are zero, which Normalize rejects.
func Clock(t time.Time) []Value {
	return []Value{
		{Name: "hour", Role: theme.RoleHour, Weight: float64(t.Hour())},
		{Name: "minute", Role: theme.RoleMinute, Weight: float64(t.Minute())},
	}
}

// HourProgress splits the current hour into elapsed and remaining minutes.
func HourProgress(t time.Time) []Value {
	elapsed := float64(t.Minute()) + float64(t.Second())/60
	return []Value{
		{Name: "elapsed", Role: theme.RoleMinute, Weight: elapsed},
		{Name: "remaining", Role: theme.RoleBoth, Weight: 60 - elapsed},
	}
}

// DayProgress splits the current day into elapsed and remaining hours.
func DayProgress(t time.Time) []Value {
	elapsed := float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
	return []Value{
		{Name: "elapsed", Role: theme.RoleHour, Weight: elapsed},
		{Name: "remaining", Role: theme.RoleBoth, Weight: 24 - elapsed},
	}
}

// ParseClock parses "HH:MM" or "HH:MM:SS" as a time on the zero date.
func ParseClock(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New(errors.ErrCodeInvalidInput, "time %q is not HH:MM or HH:MM:SS", s)
}
