package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateThemeName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "ocean", false},
		{"valid with dash", "dark-ocean", false},
		{"valid with underscore", "dark_ocean", false},
		{"valid with digits", "mono2", false},
		{"valid leading digit", "80s", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 65), true},
		{"uppercase", "Ocean", true},
		{"space", "dark ocean", true},
		{"leading dash", "-ocean", true},
		{"dot", "ocean.v2", true},
		{"slash", "a/b", true},
		{"null byte", "a\x00b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateThemeName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateThemeName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidTheme) {
				t.Errorf("ValidateThemeName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidTheme)
			}
		})
	}
}

func TestValidateWeight(t *testing.T) {
	tests := []struct {
		name    string
		w       float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"positive", 42, false},
		{"fraction", 0.25, false},
		{"negative", -1, true},
		{"tiny negative", -1e-12, true},
		{"NaN", math.NaN(), true},
		{"+Inf", math.Inf(1), true},
		{"-Inf", math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWeight("hour", tt.w)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWeight(%v) error = %v, wantErr %v", tt.w, err, tt.wantErr)
			}
			if err != nil && !IsInvalidInput(err) {
				t.Errorf("ValidateWeight(%v) code = %v, want %v", tt.w, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateExtent(t *testing.T) {
	tests := []struct {
		v       float64
		wantErr bool
	}{
		{0, false},
		{400, false},
		{-1, true},
		{math.NaN(), true},
		{math.Inf(1), true},
	}

	for _, tt := range tests {
		err := ValidateExtent("width", tt.v)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateExtent(%v) error = %v, wantErr %v", tt.v, err, tt.wantErr)
		}
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out/clock.svg", false},
		{"absolute", "/tmp/clock.svg", false},
		{"home style", "themes.toml", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"trailing space", "clock.svg ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
