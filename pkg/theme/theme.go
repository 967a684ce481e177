// Package theme maps layout blocks to visual styles.
//
// A [Theme] carries one [StyleRef] per semantic [Role]: the hour unit, the
// minute unit, and the combined "both" state. A [Themes] value is an
// immutable, validated mapping from theme [Name] to [Theme]; lookups return
// an UNKNOWN_THEME error instead of a zero value, so a typo in a theme name
// fails loudly instead of rendering blank blocks.
//
// # Usage
//
//	themes := theme.Builtin()
//	style, err := theme.Resolve(themes, "ocean", theme.RoleMinute)
//	if errors.IsUnknownTheme(err) {
//	    // fall back or report
//	}
//
// Themes are usually loaded from a TOML, YAML or JSON file with [Load] and
// published through a [Store], which swaps the whole mapping atomically so a
// concurrent reader never observes a half-updated theme.
package theme

import (
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/clockblocks/pkg/errors"
)

// StyleRef is an opaque visual-style identifier, usually a color token such
// as "#1e3a5f" or an ANSI color index such as "12".
type StyleRef string

// Role is the semantic role of a block, selecting a sub-style of a theme.
type Role int

const (
	RoleHour Role = iota
	RoleMinute
	RoleBoth
)

var roleNames = [...]string{
	RoleHour:   "hour",
	RoleMinute: "minute",
	RoleBoth:   "both",
}

// Roles lists every role in declaration order.
func Roles() []Role { return []Role{RoleHour, RoleMinute, RoleBoth} }

// String returns the role's configuration key.
func (r Role) String() string {
	if r.Valid() {
		return roleNames[r]
	}
	return "unknown"
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool { return r >= RoleHour && r <= RoleBoth }

// MarshalText encodes the role by name.
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid role: %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText decodes a role name.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseRole parses "hour", "minute" or "both" (case-insensitive).
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hour", "hours":
		return RoleHour, nil
	case "minute", "minutes":
		return RoleMinute, nil
	case "both":
		return RoleBoth, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown role %q (must be hour, minute, or both)", s)
}

// Theme is a named set of styles for the three semantic roles.
// A theme is only valid when all three styles are set.
type Theme struct {
	Hour   StyleRef `json:"hour" toml:"hour" yaml:"hour"`
	Minute StyleRef `json:"minute" toml:"minute" yaml:"minute"`
	Both   StyleRef `json:"both" toml:"both" yaml:"both"`
}

// Style returns the style for role r.
func (t Theme) Style(r Role) (StyleRef, error) {
	switch r {
	case RoleHour:
		return t.Hour, nil
	case RoleMinute:
		return t.Minute, nil
	case RoleBoth:
		return t.Both, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "invalid role: %d", int(r))
}

// Validate checks that every role has a non-empty style.
func (t Theme) Validate() error {
	for _, r := range Roles() {
		s, _ := t.Style(r)
		if strings.TrimSpace(string(s)) == "" {
			return errors.New(errors.ErrCodeInvalidTheme, "missing %s style", r)
		}
	}
	return nil
}

// Name is a validated theme key.
type Name string

// ParseName validates s as a theme name.
func ParseName(s string) (Name, error) {
	if err := errors.ValidateThemeName(s); err != nil {
		return "", err
	}
	return Name(s), nil
}

// Themes is an immutable mapping from theme name to theme.
// The zero value is an empty mapping; use [NewThemes] to build one.
type Themes struct {
	m map[Name]Theme
}

// NewThemes validates and copies src into a new mapping.
// Every name must pass [ParseName] and every theme must be fully specified.
func NewThemes(src map[string]Theme) (*Themes, error) {
	m := make(map[Name]Theme, len(src))
	keys := make([]string, 0, len(src))
	for key := range src {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		name, err := ParseName(key)
		if err != nil {
			return nil, err
		}
		t := src[key]
		if err := t.Validate(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTheme, err, "theme %q", key)
		}
		m[name] = t
	}
	return &Themes{m: m}, nil
}

// Lookup returns the theme registered under name.
func (ts *Themes) Lookup(name string) (Theme, error) {
	if ts != nil {
		if t, ok := ts.m[Name(name)]; ok {
			return t, nil
		}
	}
	return Theme{}, errors.New(errors.ErrCodeUnknownTheme, "unknown theme %q", name)
}

// Has reports whether name is registered.
func (ts *Themes) Has(name string) bool {
	_, err := ts.Lookup(name)
	return err == nil
}

// Names returns the registered names in sorted order.
func (ts *Themes) Names() []string {
	if ts == nil {
		return nil
	}
	names := make([]string, 0, len(ts.m))
	for n := range ts.m {
		names = append(names, string(n))
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered themes.
func (ts *Themes) Len() int {
	if ts == nil {
		return 0
	}
	return len(ts.m)
}

// Map returns a copy of the mapping keyed by plain strings.
func (ts *Themes) Map() map[string]Theme {
	out := make(map[string]Theme, ts.Len())
	if ts != nil {
		for n, t := range ts.m {
			out[string(n)] = t
		}
	}
	return out
}

// Merge returns a new mapping holding base's themes overridden by overlay's.
// Neither input is modified.
func Merge(base, overlay *Themes) *Themes {
	m := make(map[Name]Theme, base.Len()+overlay.Len())
	for _, ts := range []*Themes{base, overlay} {
		if ts == nil {
			continue
		}
		maps.Copy(m, ts.m)
	}
	return &Themes{m: m}
}

// Resolve returns the style for role in the theme called name.
func Resolve(themes *Themes, name string, role Role) (StyleRef, error) {
	t, err := themes.Lookup(name)
	if err != nil {
		return "", err
	}
	return t.Style(role)
}
