package textutil

import (
	"errors"
	"math"
	"testing"
)

func TestParseReal(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"0", 0},
		{"1.5", 1.5},
		{"-2.25", -2.25},
		{"+3", 3},
		{".5", 0.5},
		{"5.", 5},
		{"1e3", 1000},
		{"-1.5E-2", -0.015},
		{"  42  ", 42},
		{"\t7\n", 7},
		{"inf", math.Inf(1)},
		{"INF", math.Inf(1)},
		{"+inf", math.Inf(1)},
		{"-Inf", math.Inf(-1)},
		{"infinity", math.Inf(1)},
		{"+INFINITY", math.Inf(1)},
		{"-INFINITY", math.Inf(-1)},
		{"-infinity", math.Inf(-1)},
		{"1.#INF", math.Inf(1)},
		{"-1.#inf", math.Inf(-1)},
		{"  -inf ", math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseReal[float64](tt.in)
			if err != nil {
				t.Fatalf("ParseReal(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseReal(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseRealNaN(t *testing.T) {
	for _, in := range []string{"nan", "NaN", "+nan", "-NAN", "1.#QNAN", "-1.#qnan"} {
		got, err := ParseFloat64(in)
		if err != nil {
			t.Errorf("ParseFloat64(%q) error: %v", in, err)
			continue
		}
		if !math.IsNaN(got) {
			t.Errorf("ParseFloat64(%q) = %v, want NaN", in, got)
		}

		got32, err := ParseFloat32(in)
		if err != nil {
			t.Errorf("ParseFloat32(%q) error: %v", in, err)
			continue
		}
		if !math.IsNaN(float64(got32)) {
			t.Errorf("ParseFloat32(%q) = %v, want NaN", in, got32)
		}
	}
}

func TestParseRealFloat32(t *testing.T) {
	got, err := ParseFloat32("0.1")
	if err != nil {
		t.Fatal(err)
	}
	if got != float32(0.1) {
		t.Errorf("ParseFloat32(0.1) = %v", got)
	}

	inf, err := ParseFloat32("-INFINITY")
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(float64(inf), -1) {
		t.Errorf("ParseFloat32(-INFINITY) = %v, want -Inf", inf)
	}

	// Fits in float64 but overflows float32.
	if _, err := ParseFloat32("1e39"); err == nil {
		t.Error("ParseFloat32(1e39) should fail")
	}
	if v, err := ParseFloat64("1e39"); err != nil || v != 1e39 {
		t.Errorf("ParseFloat64(1e39) = %v, %v", v, err)
	}
}

func TestParseRealErrors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"", ErrEmpty},
		{"   ", ErrEmpty},
		{"12 34", ErrMultipleTokens},
		{"1.5 abc", ErrMultipleTokens},
		{"inf inf", ErrMultipleTokens},
		{"abc", ErrInvalidReal},
		{"1.5abc", ErrInvalidReal},
		{"infin", ErrInvalidReal},
		{"#INF", ErrInvalidReal},
		{"0x1p3", ErrInvalidReal},
		{"1_000", ErrInvalidReal},
		{"1e", ErrInvalidReal},
		{".", ErrInvalidReal},
		{"1e999", ErrInvalidReal},
		{"1,5", ErrInvalidReal},
		{"ınf", ErrInvalidReal}, // dotless i is not ASCII
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := ParseReal[float64](tt.in)
			if err == nil {
				t.Fatalf("ParseReal(%q) should fail", tt.in)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseReal(%q) error = %v, want %v", tt.in, err, tt.want)
			}
			var pe *ParseError
			if !errors.As(err, &pe) || pe.Input != tt.in {
				t.Errorf("ParseReal(%q) error %v is not a *ParseError for the input", tt.in, err)
			}
		})
	}
}

func TestParseRealNamedType(t *testing.T) {
	type score float32
	got, err := ParseReal[score]("-1.#INF")
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(float64(got), -1) {
		t.Errorf("got %v, want -Inf", got)
	}

	// The width follows the underlying type.
	if _, err := ParseReal[score]("1e39"); !errors.Is(err, ErrInvalidReal) {
		t.Errorf("ParseReal[score](1e39) error = %v, want ErrInvalidReal", err)
	}
	type seconds float64
	if v, err := ParseReal[seconds]("1e39"); err != nil || v != 1e39 {
		t.Errorf("ParseReal[seconds](1e39) = %v, %v", v, err)
	}
}

func TestParseReals(t *testing.T) {
	got, err := ParseReals[float64]("1, 2.5,-inf", ",", false)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 2.5, math.Inf(-1)}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	got32, err := ParseReals[float32]("0.5 0.25  1", " ", true)
	if err != nil {
		t.Fatal(err)
	}
	if len(got32) != 3 || got32[0] != 0.5 || got32[1] != 0.25 || got32[2] != 1 {
		t.Errorf("got %v", got32)
	}
}

func TestParseRealsEmpty(t *testing.T) {
	got, err := ParseReals[float64]("", ",", false)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("ParseReals(\"\") = %#v, want empty slice", got)
	}
}

func TestParseRealsFailure(t *testing.T) {
	tests := []struct {
		name      string
		full      string
		omitEmpty bool
	}{
		{"bad_middle", "1,abc,3", false},
		{"empty_fragment", "1,,3", false},
		{"trailing_delim", "1,2,", false},
		{"bad_last", "1,2,x", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReals[float64](tt.full, ",", tt.omitEmpty)
			if err == nil {
				t.Fatalf("ParseReals(%q) should fail", tt.full)
			}
			if got != nil {
				t.Errorf("ParseReals(%q) returned partial result %v", tt.full, got)
			}
		})
	}

	if got, err := ParseReals[float64]("1,,3,", ",", true); err != nil || len(got) != 2 {
		t.Errorf("omit empty: got %v, %v", got, err)
	}
}
