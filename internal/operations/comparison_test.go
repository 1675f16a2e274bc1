package operations

import (
	"math"
	"testing"

	"github.com/thegreatercurve/glyn-sub000/internal/runtime"
)

func TestIsStrictlyEqualNaNIsNeverEqual(t *testing.T) {
	if IsStrictlyEqual(runtime.Number(math.NaN()), runtime.Number(math.NaN())) {
		t.Fatal("NaN === NaN must be false")
	}
}

func TestIsStrictlyEqualNegativeZeroEqualsPositiveZero(t *testing.T) {
	if !IsStrictlyEqual(runtime.Number(math.Copysign(0, -1)), runtime.Number(0)) {
		t.Fatal("-0 === +0 must be true per Number::equal")
	}
}

func TestIsStrictlyEqualRejectsDifferentKinds(t *testing.T) {
	if IsStrictlyEqual(runtime.Number(1), runtime.String("1")) {
		t.Fatal("1 === \"1\" must be false: different kinds")
	}
}

func TestIsLooselyEqualNumberAndString(t *testing.T) {
	a := runtime.NewAgent()
	eq, tc := IsLooselyEqual(a, runtime.Number(1), runtime.String("1"))
	if tc != nil {
		t.Fatalf("unexpected throw: %v", tc)
	}
	if !eq {
		t.Fatal("1 == \"1\" must be true")
	}
}

func TestIsLooselyEqualNullAndUndefined(t *testing.T) {
	a := runtime.NewAgent()
	eq, tc := IsLooselyEqual(a, runtime.Null, runtime.Undefined)
	if tc != nil {
		t.Fatalf("unexpected throw: %v", tc)
	}
	if !eq {
		t.Fatal("null == undefined must be true")
	}
}

func TestIsLooselyEqualNullNotEqualZero(t *testing.T) {
	a := runtime.NewAgent()
	eq, tc := IsLooselyEqual(a, runtime.Null, runtime.Number(0))
	if tc != nil {
		t.Fatalf("unexpected throw: %v", tc)
	}
	if eq {
		t.Fatal("null == 0 must be false")
	}
}

func TestIsLessThanNumeric(t *testing.T) {
	a := runtime.NewAgent()
	r, tc := IsLessThan(a, runtime.Number(1), runtime.Number(2))
	if tc != nil {
		t.Fatalf("unexpected throw: %v", tc)
	}
	if !r.IsTrue() {
		t.Fatal("1 < 2 must be true")
	}
}

func TestIsLessThanNaNIsUndefined(t *testing.T) {
	a := runtime.NewAgent()
	r, tc := IsLessThan(a, runtime.Number(math.NaN()), runtime.Number(1))
	if tc != nil {
		t.Fatalf("unexpected throw: %v", tc)
	}
	if !r.IsUndefined() {
		t.Fatal("NaN < 1 must report the undefined (neither) outcome")
	}
	if r.IsTrue() {
		t.Fatal("the undefined outcome must not report IsTrue")
	}
}

func TestIsLessThanStringLexicographic(t *testing.T) {
	a := runtime.NewAgent()
	r, tc := IsLessThan(a, runtime.String("abc"), runtime.String("abd"))
	if tc != nil {
		t.Fatalf("unexpected throw: %v", tc)
	}
	if !r.IsTrue() {
		t.Fatal(`"abc" < "abd" must be true`)
	}
}
