package pipeline

import (
	"time"

	"github.com/matzehuels/clockblocks/pkg/session"
	"github.com/matzehuels/clockblocks/pkg/values"
)

// ResolveValues returns the readings described by opts: the explicit list
// when one is set, otherwise the preset evaluated at opts.At or now.
func ResolveValues(opts Options) ([]values.Value, error) {
	if opts.Values != "" {
		return values.Parse(opts.Values)
	}
	preset := opts.Preset
	if preset == "" {
		preset = DefaultPreset
	}
	at, err := presetTime(opts)
	if err != nil {
		return nil, err
	}
	return values.Preset(preset, at)
}

func presetTime(opts Options) (time.Time, error) {
	if opts.At != "" {
		return values.ParseClock(opts.At)
	}
	if opts.Now != nil {
		return opts.Now(), nil
	}
	return time.Now(), nil
}

// BuildInput assembles a session input from resolved readings.
func BuildInput(vals []values.Value, opts Options) session.Input {
	return session.Input{
		Values: vals,
		Width:  opts.Width,
		Height: opts.Height,
		Theme:  opts.Theme,
	}
}
