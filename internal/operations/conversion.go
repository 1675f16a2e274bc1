// Package operations implements the abstract operations sitting between
// the VM and the runtime substrate (ECMA-262 §7): type conversion,
// testing/comparison, object operations, and realm/script scaffolding.
package operations

import (
	"math"
	"strconv"
	"strings"

	"github.com/thegreatercurve/glyn-sub000/internal/runtime"
)

func init() {
	// Wires runtime's narrow ToObjectValue (used by Reference operations)
	// to the full ToObject implementation below, avoiding an import cycle
	// (runtime cannot import operations, which depends on runtime).
	runtime.ToObjectHook = ToObject
}

// ToPrimitive implements ToPrimitive(input, hint): consults @@toPrimitive
// when present, else OrdinaryToPrimitive.
func ToPrimitive(a *runtime.Agent, v runtime.Value, hint string) (runtime.Value, *runtime.ThrowCompletion) {
	if !v.IsObject() {
		return v, nil
	}
	o := a.Object(v.AsObject())
	exotic, tc := o.Methods.Get(a, v.AsObject(), runtime.SymbolKey(a.WellKnownSymbols.ToPrimitive), v)
	if tc != nil {
		return runtime.Undefined, tc
	}
	if exotic.IsObject() || (!exotic.IsUndefined() && !exotic.IsNull()) {
		if exotic.IsObject() {
			result, tc := a.CallValue(exotic, v, []runtime.Value{runtime.String(hintOrDefault(hint))})
			if tc != nil {
				return runtime.Undefined, tc
			}
			if result.IsObject() {
				return runtime.Undefined, runtime.Throw(a.NewTypeError("@@toPrimitive returned an object"))
			}
			return result, nil
		}
	}
	return OrdinaryToPrimitive(a, v, hintOrDefault(hint))
}

func hintOrDefault(hint string) string {
	if hint == "" {
		return "default"
	}
	return hint
}

// OrdinaryToPrimitive calls valueOf/toString in hint-determined order.
func OrdinaryToPrimitive(a *runtime.Agent, v runtime.Value, hint string) (runtime.Value, *runtime.ThrowCompletion) {
	methodNames := []string{"valueOf", "toString"}
	if hint == "string" {
		methodNames = []string{"toString", "valueOf"}
	}
	obj := v.AsObject()
	o := a.Object(obj)
	for _, name := range methodNames {
		method, tc := o.Methods.Get(a, obj, runtime.StringKey(name), v)
		if tc != nil {
			return runtime.Undefined, tc
		}
		if IsCallable(a, method) {
			result, tc := a.CallValue(method, v, nil)
			if tc != nil {
				return runtime.Undefined, tc
			}
			if !result.IsObject() {
				return result, nil
			}
		}
	}
	return runtime.Undefined, runtime.Throw(a.NewTypeError("cannot convert object to primitive value"))
}

// ToBoolean: undefined/null/NaN/±0/""/0n -> false; else true.
func ToBoolean(v runtime.Value) bool {
	switch v.Kind() {
	case runtime.KindUndefined, runtime.KindNull:
		return false
	case runtime.KindBoolean:
		return v.AsBoolean()
	case runtime.KindNumber:
		n := v.AsNumber()
		return n != 0 && !math.IsNaN(n)
	case runtime.KindBigInt:
		return v.AsBigInt().Value != 0
	case runtime.KindString:
		return v.AsString() != ""
	default:
		return true
	}
}

// ToNumeric implements ToNumeric: ToPrimitive(value, number), then
// BigInt passthrough else ToNumber.
func ToNumeric(a *runtime.Agent, v runtime.Value) (runtime.Value, *runtime.ThrowCompletion) {
	prim, tc := ToPrimitive(a, v, "number")
	if tc != nil {
		return runtime.Undefined, tc
	}
	if prim.IsBigInt() {
		return prim, nil
	}
	n, tc := ToNumber(a, prim)
	if tc != nil {
		return runtime.Undefined, tc
	}
	return n, nil
}

// ToNumber converts v per ECMA-262 §7.1.4.
func ToNumber(a *runtime.Agent, v runtime.Value) (runtime.Value, *runtime.ThrowCompletion) {
	switch v.Kind() {
	case runtime.KindUndefined:
		return runtime.Number(math.NaN()), nil
	case runtime.KindNull:
		return runtime.Number(0), nil
	case runtime.KindBoolean:
		if v.AsBoolean() {
			return runtime.Number(1), nil
		}
		return runtime.Number(0), nil
	case runtime.KindNumber:
		return v, nil
	case runtime.KindBigInt:
		return runtime.Undefined, runtime.Throw(a.NewTypeError("cannot convert BigInt to number"))
	case runtime.KindString:
		return runtime.Number(stringToNumber(v.AsString())), nil
	case runtime.KindSymbol:
		return runtime.Undefined, runtime.Throw(a.NewTypeError("cannot convert Symbol to number"))
	case runtime.KindObject:
		prim, tc := ToPrimitive(a, v, "number")
		if tc != nil {
			return runtime.Undefined, tc
		}
		return ToNumber(a, prim)
	}
	return runtime.Number(math.NaN()), nil
}

// stringToNumber implements the StringNumericLiteral grammar closely
// enough for the numeric literals the lexer/parser actually produce
// (decimal integer/float, optional surrounding whitespace); the empty
// (or all-whitespace) string converts to +0.
func stringToNumber(s string) float64 {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0
	}
	n, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return math.NaN()
	}
	return n
}

// ToString converts v per ECMA-262 §7.1.17; Symbol throws TypeError.
func ToString(a *runtime.Agent, v runtime.Value) (string, *runtime.ThrowCompletion) {
	switch v.Kind() {
	case runtime.KindUndefined:
		return "undefined", nil
	case runtime.KindNull:
		return "null", nil
	case runtime.KindBoolean:
		if v.AsBoolean() {
			return "true", nil
		}
		return "false", nil
	case runtime.KindNumber:
		return NumberToString(v.AsNumber()), nil
	case runtime.KindBigInt:
		return strconv.FormatInt(v.AsBigInt().Value, 10), nil
	case runtime.KindString:
		return v.AsString(), nil
	case runtime.KindSymbol:
		return "", runtime.Throw(a.NewTypeError("cannot convert Symbol to string"))
	case runtime.KindObject:
		prim, tc := ToPrimitive(a, v, "string")
		if tc != nil {
			return "", tc
		}
		return ToString(a, prim)
	}
	return "", nil
}

// NumberToString implements Number::toString(x, 10) (ECMA-262 §6.1.6.1.20):
// the round-trip property it requires (−0 -> "0"; NaN -> "NaN"; Infinity ->
// "Infinity").
func NumberToString(n float64) string {
	if math.IsNaN(n) {
		return "NaN"
	}
	if math.IsInf(n, 1) {
		return "Infinity"
	}
	if math.IsInf(n, -1) {
		return "-Infinity"
	}
	if n == 0 {
		return "0"
	}
	if abs := math.Abs(n); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return strings.Replace(strconv.FormatFloat(n, 'e', -1, 64), "e-0", "e-", 1)
}

// ToObject wraps primitives in Boolean/Number/String/Symbol/BigInt
// wrapper objects; null/undefined throw TypeError (ECMA-262 §7.1.18).
// Wrapper objects here carry their primitive in slot "PrimitiveValue"
// rather than a dedicated exotic subtype — sufficient for typeof/
// valueOf round-tripping without a full Boolean/Number/String exotic
// object family (out of scope; see DESIGN.md).
func ToObject(a *runtime.Agent, v runtime.Value) (runtime.ObjectAddr, *runtime.ThrowCompletion) {
	switch v.Kind() {
	case runtime.KindUndefined, runtime.KindNull:
		return runtime.NoObject, runtime.Throw(a.NewTypeError("cannot convert undefined or null to object"))
	case runtime.KindObject:
		return v.AsObject(), nil
	default:
		realm := a.CurrentRealm()
		proto := realm.Intrinsics["ObjectPrototype"]
		addr := a.AllocateObject(runtime.Object(proto))
		o := a.Object(addr)
		o.Slots["PrimitiveValue"] = v
		return addr, nil
	}
}

// ToPropertyKey implements ToPropertyKey(argument): ToPrimitive(hint
// string); symbol passthrough else ToString.
func ToPropertyKey(a *runtime.Agent, v runtime.Value) (runtime.PropertyKey, *runtime.ThrowCompletion) {
	prim, tc := ToPrimitive(a, v, "string")
	if tc != nil {
		return runtime.PropertyKey{}, tc
	}
	if prim.IsSymbol() {
		return runtime.SymbolKey(prim.AsSymbol()), nil
	}
	s, tc := ToString(a, prim)
	if tc != nil {
		return runtime.PropertyKey{}, tc
	}
	return runtime.StringKey(s), nil
}

// ToInt32 / ToUint32 implement standard bit-truncation (ECMA-262 §7.1.6/7.1.7).
func ToInt32(a *runtime.Agent, v runtime.Value) (int32, *runtime.ThrowCompletion) {
	n, tc := ToNumber(a, v)
	if tc != nil {
		return 0, tc
	}
	return numberToInt32(n.AsNumber()), nil
}

func ToUint32(a *runtime.Agent, v runtime.Value) (uint32, *runtime.ThrowCompletion) {
	n, tc := ToNumber(a, v)
	if tc != nil {
		return 0, tc
	}
	return uint32(numberToInt32(n.AsNumber())), nil
}

func numberToInt32(n float64) int32 {
	if math.IsNaN(n) || math.IsInf(n, 0) || n == 0 {
		return 0
	}
	m := math.Trunc(n)
	m = math.Mod(m, 4294967296)
	if m < 0 {
		m += 4294967296
	}
	if m >= 2147483648 {
		m -= 4294967296
	}
	return int32(m)
}

// ToIntegerOrInfinity implements ECMA-262 §7.1.5.
func ToIntegerOrInfinity(a *runtime.Agent, v runtime.Value) (float64, *runtime.ThrowCompletion) {
	n, tc := ToNumber(a, v)
	if tc != nil {
		return 0, tc
	}
	f := n.AsNumber()
	if math.IsNaN(f) {
		return 0, nil
	}
	if math.IsInf(f, 0) {
		return f, nil
	}
	return math.Trunc(f), nil
}

// ToLength clamps ToIntegerOrInfinity into [0, 2^53-1].
func ToLength(a *runtime.Agent, v runtime.Value) (float64, *runtime.ThrowCompletion) {
	n, tc := ToIntegerOrInfinity(a, v)
	if tc != nil {
		return 0, tc
	}
	if n <= 0 {
		return 0, nil
	}
	const maxLength = 9007199254740991 // 2^53 - 1
	if n > maxLength {
		return maxLength, nil
	}
	return n, nil
}

// ToIndex clamps ToIntegerOrInfinity into [0, 2^53-1], rejecting
// negative values with a RangeError (ECMA-262 §7.1.22).
func ToIndex(a *runtime.Agent, v runtime.Value) (float64, *runtime.ThrowCompletion) {
	n, tc := ToIntegerOrInfinity(a, v)
	if tc != nil {
		return 0, tc
	}
	if n < 0 {
		return 0, runtime.Throw(a.NewRangeError("index must be non-negative"))
	}
	const maxIndex = 9007199254740991
	if n > maxIndex {
		return 0, runtime.Throw(a.NewRangeError("index out of range"))
	}
	return n, nil
}
