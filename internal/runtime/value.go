// Package runtime implements the ECMAScript runtime substrate: the tagged
// value universe, objects and property descriptors, environment records,
// realms, the execution-context stack, reference records, and the Agent
// that owns them all. This is the teacher's `interp` package reworked
// around ECMAScript's object/environment/realm model instead of
// DWScript's.
package runtime

import "math"

// ValueKind tags the variant of a JSValue (ECMA-262 §6.1 Language Types).
type ValueKind byte

const (
	KindUndefined ValueKind = iota
	KindNull
	KindBoolean
	KindNumber
	KindBigInt
	KindString
	KindSymbol
	KindObject
)

func (k ValueKind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindBigInt:
		return "bigint"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindObject:
		return "object"
	}
	return "unknown"
}

// Value is the tagged sum type described in ECMA-262 §6.1. Values are
// immutable at the variant level; the Object variant carries a stable
// handle into the Agent's object heap rather than the object data itself.
type Value struct {
	kind   ValueKind
	number float64
	str    string
	bigint *BigInt
	symbol *Symbol
	obj    ObjectAddr
}

// BigInt is a minimal arbitrary-precision-flavored placeholder:
// BigInt's literal syntax (ECMA-262 §12.9.3's BigIntLiteralSuffix) is
// out of scope here, but the value kind and its abstract operations
// (ToNumeric, SameValue) must exist, so BigInt values are carried as
// int64 here — sufficient to satisfy SameValue/ToString/typeof without
// claiming arbitrary precision.
type BigInt struct {
	Value int64
}

// Symbol is a unique, optionally-described value (ECMA-262 §6.1.5).
type Symbol struct {
	Description string
}

var (
	Undefined = Value{kind: KindUndefined}
	Null      = Value{kind: KindNull}
	True      = Value{kind: KindBoolean, number: 1}
	False     = Value{kind: KindBoolean, number: 0}
)

func Boolean(b bool) Value {
	if b {
		return True
	}
	return False
}

func Number(n float64) Value {
	return Value{kind: KindNumber, number: n}
}

func BigIntValue(b *BigInt) Value {
	return Value{kind: KindBigInt, bigint: b}
}

func String(s string) Value {
	return Value{kind: KindString, str: s}
}

func SymbolValue(s *Symbol) Value {
	return Value{kind: KindSymbol, symbol: s}
}

func Object(addr ObjectAddr) Value {
	return Value{kind: KindObject, obj: addr}
}

func (v Value) Kind() ValueKind        { return v.kind }
func (v Value) IsUndefined() bool      { return v.kind == KindUndefined }
func (v Value) IsNull() bool           { return v.kind == KindNull }
func (v Value) IsNullish() bool        { return v.kind == KindUndefined || v.kind == KindNull }
func (v Value) IsBoolean() bool        { return v.kind == KindBoolean }
func (v Value) IsNumber() bool         { return v.kind == KindNumber }
func (v Value) IsBigInt() bool         { return v.kind == KindBigInt }
func (v Value) IsString() bool         { return v.kind == KindString }
func (v Value) IsSymbol() bool         { return v.kind == KindSymbol }
func (v Value) IsObject() bool         { return v.kind == KindObject }

func (v Value) AsBoolean() bool { return v.number != 0 }
func (v Value) AsNumber() float64 { return v.number }
func (v Value) AsBigInt() *BigInt { return v.bigint }
func (v Value) AsString() string  { return v.str }
func (v Value) AsSymbol() *Symbol { return v.symbol }
func (v Value) AsObject() ObjectAddr { return v.obj }

// SameValue implements the ECMA-262 §7.2.11 SameValue algorithm: NaN
// equals itself, but +0 and -0 are distinguished.
func SameValue(x, y Value) bool {
	if x.kind != y.kind {
		return false
	}
	switch x.kind {
	case KindUndefined, KindNull:
		return true
	case KindBoolean:
		return x.number == y.number
	case KindNumber:
		if math.IsNaN(x.number) && math.IsNaN(y.number) {
			return true
		}
		if x.number == 0 && y.number == 0 {
			return math.Signbit(x.number) == math.Signbit(y.number)
		}
		return x.number == y.number
	case KindBigInt:
		return x.bigint.Value == y.bigint.Value
	case KindString:
		return x.str == y.str
	case KindSymbol:
		return x.symbol == y.symbol
	case KindObject:
		return x.obj == y.obj
	}
	return false
}

// SameValueNonNumber implements the ECMA-262 §7.2.13 SameValueNonNumber
// algorithm, used where +0/-0 are NOT distinguished (e.g. loose/strict
// equality's numeric path instead calls Number::equal). It differs from
// SameValue only in its number handling, which callers
// must special-case before reaching here; for non-number kinds the two
// algorithms agree, so this simply forwards to SameValue.
func SameValueNonNumber(x, y Value) bool {
	return SameValue(x, y)
}

// SameType reports whether x and y share a ValueKind (used by
// ApplyStringOrNumericBinaryOperator's BigInt/Number type check).
func SameType(x, y Value) bool {
	return x.kind == y.kind
}
