package values

import (
	stderrors "errors"
	"math"
	"testing"
	"time"

	"github.com/matzehuels/clockblocks/pkg/errors"
	"github.com/matzehuels/clockblocks/pkg/theme"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		weights []float64
		wantErr bool
	}{
		{"simple", []float64{1, 3}, false},
		{"single", []float64{5}, false},
		{"zero among positive", []float64{0, 2, 0}, false},
		{"empty", nil, true},
		{"all zero", []float64{0, 0}, true},
		{"negative", []float64{1, -1}, true},
		{"nan", []float64{math.NaN()}, true},
		{"inf", []float64{1, math.Inf(1)}, true},
		{"overflow", []float64{math.MaxFloat64, math.MaxFloat64}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.weights)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%v) error = %v, wantErr %v", tt.weights, err, tt.wantErr)
			}
			if err != nil && !errors.IsInvalidInput(err) {
				t.Errorf("Validate(%v) code = %v, want INVALID_INPUT", tt.weights, errors.GetCode(err))
			}
		})
	}
}

func TestNormalizeKeepsOrder(t *testing.T) {
	vals := []Value{New("minute", 42), New("hour", 7), New("rest", 0)}
	got, err := Normalize(vals)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	want := []float64{42, 7, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("weight[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNormalizeZeroTotal(t *testing.T) {
	_, err := Normalize([]Value{New("hour", 0), New("minute", 0)})
	if !errors.IsInvalidInput(err) {
		t.Fatalf("Normalize() error = %v, want INVALID_INPUT", err)
	}
	if !stderrors.Is(err, ErrZeroTotal) {
		t.Errorf("zero-total error should wrap ErrZeroTotal: %v", err)
	}

	_, err = Normalize([]Value{New("hour", -1), New("minute", 1)})
	if stderrors.Is(err, ErrZeroTotal) {
		t.Error("negative weight error should not wrap ErrZeroTotal")
	}
}

func TestNormalizeRejectsBadRole(t *testing.T) {
	_, err := Normalize([]Value{{Name: "x", Role: theme.Role(9), Weight: 1}})
	if !errors.IsInvalidInput(err) {
		t.Errorf("Normalize() error = %v, want INVALID_INPUT", err)
	}
}

func TestNewRole(t *testing.T) {
	if v := New("Hours", 1); v.Role != theme.RoleHour {
		t.Errorf("New(Hours).Role = %v, want hour", v.Role)
	}
	if v := New("elapsed", 1); v.Role != theme.RoleBoth {
		t.Errorf("New(elapsed).Role = %v, want both", v.Role)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    []Value
		wantErr bool
	}{
		{
			input: "hour=7,minute=42",
			want: []Value{
				{Name: "hour", Role: theme.RoleHour, Weight: 7},
				{Name: "minute", Role: theme.RoleMinute, Weight: 42},
			},
		},
		{
			input: " elapsed@minute = 12.5 , remaining@both=47.5 ",
			want: []Value{
				{Name: "elapsed", Role: theme.RoleMinute, Weight: 12.5},
				{Name: "remaining", Role: theme.RoleBoth, Weight: 47.5},
			},
		},
		{input: "", wantErr: true},
		{input: "hour", wantErr: true},
		{input: "hour=abc", wantErr: true},
		{input: "elapsed=3", wantErr: true},
		{input: "@hour=3", wantErr: true},
		{input: "x@second=3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !errors.IsInvalidInput(err) {
					t.Errorf("Parse(%q) code = %v, want INVALID_INPUT", tt.input, errors.GetCode(err))
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Parse(%q)[%d] = %+v, want %+v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFormatParses(t *testing.T) {
	vals := []Value{
		{Name: "hour", Role: theme.RoleHour, Weight: 7},
		{Name: "elapsed", Role: theme.RoleMinute, Weight: 1.25},
		{Name: "minute", Role: theme.RoleBoth, Weight: 3},
	}
	s := Format(vals)
	if s != "hour=7,elapsed@minute=1.25,minute@both=3" {
		t.Errorf("Format() = %q", s)
	}
	back, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(Format()) error: %v", err)
	}
	for i := range vals {
		if back[i] != vals[i] {
			t.Errorf("value %d = %+v, want %+v", i, back[i], vals[i])
		}
	}
}

func TestPresets(t *testing.T) {
	at := time.Date(2024, 3, 1, 7, 45, 30, 0, time.UTC)
	tests := []struct {
		name string
		want []float64
	}{
		{PresetClock, []float64{7, 45}},
		{PresetHour, []float64{45.5, 14.5}},
		{PresetDay, []float64{7 + 45.0/60 + 30.0/3600, 24 - (7 + 45.0/60 + 30.0/3600)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vals, err := Preset(tt.name, at)
			if err != nil {
				t.Fatalf("Preset() error: %v", err)
			}
			got, err := Normalize(vals)
			if err != nil {
				t.Fatalf("Normalize() error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("weights = %v, want %v", got, tt.want)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("weight[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPresetUnknown(t *testing.T) {
	if _, err := Preset("week", time.Now()); !errors.IsInvalidInput(err) {
		t.Errorf("Preset(week) error = %v, want INVALID_INPUT", err)
	}
}

func TestClockAtMidnightIsZeroTotal(t *testing.T) {
	_, err := Normalize(Clock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	if !stderrors.Is(err, ErrZeroTotal) {
		t.Errorf("Normalize(midnight) error = %v, want ErrZeroTotal", err)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		h, m, s int
		wantErr bool
	}{
		{"07:45", 7, 45, 0, false},
		{"23:59:59", 23, 59, 59, false},
		{"24:00", 0, 0, 0, true},
		{"noon", 0, 0, 0, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClock(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && (got.Hour() != tt.h || got.Minute() != tt.m || got.Second() != tt.s) {
			t.Errorf("ParseClock(%q) = %v", tt.in, got)
		}
	}
}
