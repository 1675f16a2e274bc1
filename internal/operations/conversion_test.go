package operations

import (
	"math"
	"testing"

	"github.com/thegreatercurve/glyn-sub000/internal/runtime"
)

func TestToNumberPrimitives(t *testing.T) {
	a := runtime.NewAgent()
	tests := []struct {
		name string
		v    runtime.Value
		want float64
	}{
		{"undefined is NaN", runtime.Undefined, math.NaN()},
		{"null is zero", runtime.Null, 0},
		{"true is one", runtime.True, 1},
		{"string digits", runtime.String("42"), 42},
		{"whitespace-only string is zero", runtime.String("   "), 0},
		{"non-numeric string is NaN", runtime.String("abc"), math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, tc := ToNumber(a, tt.v)
			if tc != nil {
				t.Fatalf("unexpected throw: %v", tc)
			}
			got := n.AsNumber()
			if math.IsNaN(tt.want) {
				if !math.IsNaN(got) {
					t.Fatalf("got %v, want NaN", got)
				}
				return
			}
			if got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToNumberSymbolThrows(t *testing.T) {
	a := runtime.NewAgent()
	sym := runtime.SymbolValue(&runtime.Symbol{Description: "s"})
	_, tc := ToNumber(a, sym)
	if tc == nil {
		t.Fatal("expected ToNumber(Symbol) to throw a TypeError")
	}
}

func TestToStringRoundTrip(t *testing.T) {
	a := runtime.NewAgent()
	tests := []struct {
		v    runtime.Value
		want string
	}{
		{runtime.Undefined, "undefined"},
		{runtime.Null, "null"},
		{runtime.True, "true"},
		{runtime.Number(0), "0"},
		{runtime.Number(math.NaN()), "NaN"},
		{runtime.Number(math.Inf(1)), "Infinity"},
		{runtime.String("hi"), "hi"},
	}
	for _, tt := range tests {
		s, tc := ToString(a, tt.v)
		if tc != nil {
			t.Fatalf("unexpected throw for %v: %v", tt.v, tc)
		}
		if s != tt.want {
			t.Fatalf("ToString(%v) = %q, want %q", tt.v, s, tt.want)
		}
	}
}

func TestToBooleanFalsyAndTruthy(t *testing.T) {
	falsy := []runtime.Value{runtime.Undefined, runtime.Null, runtime.False, runtime.Number(0), runtime.Number(math.NaN()), runtime.String("")}
	for _, v := range falsy {
		if ToBoolean(v) {
			t.Fatalf("ToBoolean(%v) = true, want false", v)
		}
	}
	truthy := []runtime.Value{runtime.True, runtime.Number(1), runtime.Number(-1), runtime.String("0"), runtime.String("false")}
	for _, v := range truthy {
		if !ToBoolean(v) {
			t.Fatalf("ToBoolean(%v) = false, want true", v)
		}
	}
}

func TestToInt32WrapsModulo2To32(t *testing.T) {
	a := runtime.NewAgent()
	got, tc := ToInt32(a, runtime.Number(4294967296+5))
	if tc != nil {
		t.Fatalf("unexpected throw: %v", tc)
	}
	if got != 5 {
		t.Fatalf("ToInt32(2^32+5) = %d, want 5", got)
	}
}

func TestToInt32NegativeWraps(t *testing.T) {
	a := runtime.NewAgent()
	got, tc := ToInt32(a, runtime.Number(-1))
	if tc != nil {
		t.Fatalf("unexpected throw: %v", tc)
	}
	if got != -1 {
		t.Fatalf("ToInt32(-1) = %d, want -1", got)
	}
}

func TestToUint32OfNegativeOne(t *testing.T) {
	a := runtime.NewAgent()
	got, tc := ToUint32(a, runtime.Number(-1))
	if tc != nil {
		t.Fatalf("unexpected throw: %v", tc)
	}
	if got != 0xFFFFFFFF {
		t.Fatalf("ToUint32(-1) = %d, want 0xFFFFFFFF", got)
	}
}

func TestToIndexRejectsNegative(t *testing.T) {
	a := runtime.NewAgent()
	_, tc := ToIndex(a, runtime.Number(-1))
	if tc == nil {
		t.Fatal("expected a RangeError for a negative index")
	}
}

func TestToLengthClampsToMaxSafeInteger(t *testing.T) {
	a := runtime.NewAgent()
	got, tc := ToLength(a, runtime.Number(math.Inf(1)))
	if tc != nil {
		t.Fatalf("unexpected throw: %v", tc)
	}
	if got != 9007199254740991 {
		t.Fatalf("ToLength(Infinity) = %v, want 2^53-1", got)
	}
}
