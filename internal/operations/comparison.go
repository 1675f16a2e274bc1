package operations

import (
	"math"

	"github.com/thegreatercurve/glyn-sub000/internal/runtime"
)

// IsCallable reports whether v is an object with a [[Call]] internal
// method.
func IsCallable(a *runtime.Agent, v runtime.Value) bool {
	if !v.IsObject() {
		return false
	}
	return a.Object(v.AsObject()).Methods.Call != nil
}

// IsConstructor reports whether v is an object with a [[Construct]]
// internal method.
func IsConstructor(a *runtime.Agent, v runtime.Value) bool {
	if !v.IsObject() {
		return false
	}
	return a.Object(v.AsObject()).Methods.Construct != nil
}

// IsExtensible implements the IsExtensible(O) abstract operation by
// delegating to O's internal method.
func IsExtensible(a *runtime.Agent, addr runtime.ObjectAddr) (bool, *runtime.ThrowCompletion) {
	return a.Object(addr).Methods.IsExtensible(a, addr)
}

// IsPropertyKey reports whether v is a value ToPropertyKey could accept
// without coercion — i.e. it is already a string or symbol.
func IsPropertyKey(v runtime.Value) bool {
	return v.IsString() || v.IsSymbol()
}

// IsIntegralNumber reports whether v is a finite Number with no
// fractional part.
func IsIntegralNumber(v runtime.Value) bool {
	if !v.IsNumber() {
		return false
	}
	n := v.AsNumber()
	return !math.IsNaN(n) && !math.IsInf(n, 0) && math.Trunc(n) == n
}

// IsStrictlyEqual implements the Strict Equality Comparison algorithm
// (ECMA-262 §7.2.16): SameType + SameValueNonNumber for non-numbers, and
// Number::equal (NaN != NaN, +0 == -0) for numbers.
func IsStrictlyEqual(x, y runtime.Value) bool {
	if x.Kind() != y.Kind() {
		return false
	}
	if x.IsNumber() {
		return numberEqual(x.AsNumber(), y.AsNumber())
	}
	return runtime.SameValueNonNumber(x, y)
}

func numberEqual(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	return a == b
}

// IsLooselyEqual implements the (simplified, object-coercion-aware)
// Abstract Equality Comparison algorithm (ECMA-262 §7.2.15): same-type
// values defer to strict equality; otherwise apply the standard
// null/undefined, number/string, boolean, and object coercion rules.
func IsLooselyEqual(a *runtime.Agent, x, y runtime.Value) (bool, *runtime.ThrowCompletion) {
	if x.Kind() == y.Kind() {
		return IsStrictlyEqual(x, y), nil
	}
	if x.IsNullish() && y.IsNullish() {
		return true, nil
	}
	if x.IsNullish() || y.IsNullish() {
		return false, nil
	}
	if x.IsNumber() && y.IsString() {
		yn, tc := ToNumber(a, y)
		if tc != nil {
			return false, tc
		}
		return IsLooselyEqual(a, x, yn)
	}
	if x.IsString() && y.IsNumber() {
		xn, tc := ToNumber(a, x)
		if tc != nil {
			return false, tc
		}
		return IsLooselyEqual(a, xn, y)
	}
	if x.IsBoolean() {
		xn, tc := ToNumber(a, x)
		if tc != nil {
			return false, tc
		}
		return IsLooselyEqual(a, xn, y)
	}
	if y.IsBoolean() {
		yn, tc := ToNumber(a, y)
		if tc != nil {
			return false, tc
		}
		return IsLooselyEqual(a, x, yn)
	}
	if (x.IsNumber() || x.IsString() || x.IsBigInt()) && y.IsObject() {
		yp, tc := ToPrimitive(a, y, "")
		if tc != nil {
			return false, tc
		}
		return IsLooselyEqual(a, x, yp)
	}
	if x.IsObject() && (y.IsNumber() || y.IsString() || y.IsBigInt()) {
		xp, tc := ToPrimitive(a, x, "")
		if tc != nil {
			return false, tc
		}
		return IsLooselyEqual(a, xp, y)
	}
	return false, nil
}

// relationalResult models IsLessThan's three-valued result: true, false,
// or undefined (NaN involved).
type relationalResult int

const (
	relFalse relationalResult = iota
	relTrue
	relUndefined
)

// IsTrue reports whether the comparison result is the boolean true
// outcome (as opposed to false or the NaN-induced undefined outcome).
func (r relationalResult) IsTrue() bool { return r == relTrue }

// IsUndefined reports whether the comparison involved NaN, per
// ECMA-262's IsLessThan returning undefined in that case (relational
// operators treat undefined as false per ECMA-262 §13.10).
func (r relationalResult) IsUndefined() bool { return r == relUndefined }

// IsLessThan implements the ECMA-262 IsLessThan(x, y, leftFirst)
// abstract relational comparison. Two strings are compared with Go's
// byte-wise string ordering (code-point order), which matches ECMA's
// UTF-16 code-unit ordering only when neither string holds a character
// outside the BMP.
func IsLessThan(a *runtime.Agent, x, y runtime.Value) (relationalResult, *runtime.ThrowCompletion) {
	px, tc := ToPrimitive(a, x, "number")
	if tc != nil {
		return relFalse, tc
	}
	py, tc := ToPrimitive(a, y, "number")
	if tc != nil {
		return relFalse, tc
	}
	if px.IsString() && py.IsString() {
		if px.AsString() < py.AsString() {
			return relTrue, nil
		}
		return relFalse, nil
	}
	nx, tc := ToNumeric(a, px)
	if tc != nil {
		return relFalse, tc
	}
	ny, tc := ToNumeric(a, py)
	if tc != nil {
		return relFalse, tc
	}
	if !runtime.SameType(nx, ny) {
		return relFalse, runtime.Throw(a.NewTypeError("cannot compare BigInt and Number"))
	}
	if nx.IsBigInt() {
		if nx.AsBigInt().Value < ny.AsBigInt().Value {
			return relTrue, nil
		}
		return relFalse, nil
	}
	fx, fy := nx.AsNumber(), ny.AsNumber()
	if math.IsNaN(fx) || math.IsNaN(fy) {
		return relUndefined, nil
	}
	if fx < fy {
		return relTrue, nil
	}
	return relFalse, nil
}
