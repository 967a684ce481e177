// Package values turns raw time readings into validated layout weights.
//
// A [Value] is one named input such as "hour=7" together with the semantic
// [theme.Role] its block will be styled with. [Normalize] checks a sequence
// of values and returns the bare weights in input order; it never clamps or
// drops anything, so a negative reading surfaces as INVALID_INPUT instead of
// silently becoming an empty block.
package values

import (
	stderrors "errors"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/clockblocks/pkg/errors"
	"github.com/matzehuels/clockblocks/pkg/theme"
)

// Value is a single named weight.
type Value struct {
	Name   string     `json:"name"`
	Role   theme.Role `json:"role"`
	Weight float64    `json:"weight"`
}

// New returns a value whose role is taken from its name.
// Names that are not role names default to [theme.RoleBoth].
func New(name string, weight float64) Value {
	role, err := theme.ParseRole(name)
	if err != nil {
		role = theme.RoleBoth
	}
	return Value{Name: name, Role: role, Weight: weight}
}

// Validate checks a bare weight sequence.
// It fails with INVALID_INPUT when the sequence is empty, when any weight is
// negative or non-finite, or when the weights sum to zero.
func Validate(weights []float64) error {
	if len(weights) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no values to lay out")
	}
	for i, w := range weights {
		if err := errors.ValidateWeight("#"+strconv.Itoa(i), w); err != nil {
			return err
		}
	}
	return checkTotal(Total(weights))
}

// Normalize validates vals and returns their weights in input order.
func Normalize(vals []Value) ([]float64, error) {
	if len(vals) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no values to lay out")
	}
	weights := make([]float64, len(vals))
	for i, v := range vals {
		if !v.Role.Valid() {
			return nil, errors.New(errors.ErrCodeInvalidInput, "value %s has invalid role %d", v.label(i), int(v.Role))
		}
		if err := errors.ValidateWeight(v.label(i), v.Weight); err != nil {
			return nil, err
		}
		weights[i] = v.Weight
	}
	if err := checkTotal(Total(weights)); err != nil {
		return nil, err
	}
	return weights, nil
}

// Total sums weights in order. The summation order is fixed so repeated
// calls on the same input are bit-identical.
func Total(weights []float64) float64 {
	var total float64
	for _, w := range weights {
		total += w
	}
	return total
}

// ErrZeroTotal is the cause attached to the INVALID_INPUT error returned when
// every weight is zero. Callers that want a placeholder layout instead of a
// failure test for it with errors.Is.
var ErrZeroTotal = stderrors.New("zero total weight")

func checkTotal(total float64) error {
	if math.IsInf(total, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "values overflow when summed")
	}
	if total == 0 {
		return errors.Wrap(errors.ErrCodeInvalidInput, ErrZeroTotal, "values sum to zero, nothing to allocate")
	}
	return nil
}

func (v Value) label(i int) string {
	if v.Name != "" {
		return strconv.Quote(v.Name)
	}
	return "#" + strconv.Itoa(i)
}

// Parse reads a comma-separated list such as "hour=7,minute=42".
//
// A name that is a role name takes that role. Any other name must carry an
// explicit role: "elapsed@minute=12".
func Parse(s string) ([]Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no values given")
	}
	parts := strings.Split(s, ",")
	vals := make([]Value, 0, len(parts))
	for _, part := range parts {
		v, err := parseOne(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func parseOne(s string) (Value, error) {
	key, num, ok := strings.Cut(s, "=")
	if !ok {
		return Value{}, errors.New(errors.ErrCodeInvalidInput, "value %q is not name=number", s)
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return Value{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "value %q", s)
	}

	key = strings.TrimSpace(key)
	name, roleName, explicit := strings.Cut(key, "@")
	if !explicit {
		roleName = name
	}
	if name == "" {
		return Value{}, errors.New(errors.ErrCodeInvalidInput, "value %q has no name", s)
	}
	role, err := theme.ParseRole(roleName)
	if err != nil {
		return Value{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "value %q needs a role (name@hour|minute|both)", s)
	}
	return Value{Name: name, Role: role, Weight: w}, nil
}

// Format renders vals in the syntax accepted by [Parse].
func Format(vals []Value) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		key := v.Name
		if r, err := theme.ParseRole(v.Name); err != nil || r != v.Role {
			key += "@" + v.Role.String()
		}
		parts[i] = key + "=" + strconv.FormatFloat(v.Weight, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}
