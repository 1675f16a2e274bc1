package operations

import (
	"math"

	"github.com/thegreatercurve/glyn-sub000/internal/runtime"
)

// BinaryOp names the operator ApplyStringOrNumericBinaryOperator
// dispatches on (ECMA-262 §13.15.3).
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
	OpExponent
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShiftLeft
	OpShiftRight
	OpShiftRightUnsigned
)

// ApplyStringOrNumericBinaryOperator implements ECMA-262 §13.15.3's
// ApplyStringOrNumericBinaryOperator(l, op, r): for Add, string-concat if
// either ToPrimitive is a string, else delegate to the numeric path; for
// every other operator, ToNumeric both sides, check SameType, and
// dispatch to Number/BigInt arithmetic.
func ApplyStringOrNumericBinaryOperator(a *runtime.Agent, l runtime.Value, op BinaryOp, r runtime.Value) (runtime.Value, *runtime.ThrowCompletion) {
	if op == OpAdd {
		lp, tc := ToPrimitive(a, l, "")
		if tc != nil {
			return runtime.Undefined, tc
		}
		rp, tc := ToPrimitive(a, r, "")
		if tc != nil {
			return runtime.Undefined, tc
		}
		if lp.IsString() || rp.IsString() {
			ls, tc := ToString(a, lp)
			if tc != nil {
				return runtime.Undefined, tc
			}
			rs, tc := ToString(a, rp)
			if tc != nil {
				return runtime.Undefined, tc
			}
			return runtime.String(ls + rs), nil
		}
		return numericBinaryOperator(a, lp, op, rp)
	}
	return numericBinaryOperator(a, l, op, r)
}

func numericBinaryOperator(a *runtime.Agent, l runtime.Value, op BinaryOp, r runtime.Value) (runtime.Value, *runtime.ThrowCompletion) {
	ln, tc := ToNumeric(a, l)
	if tc != nil {
		return runtime.Undefined, tc
	}
	rn, tc := ToNumeric(a, r)
	if tc != nil {
		return runtime.Undefined, tc
	}
	if !runtime.SameType(ln, rn) {
		return runtime.Undefined, runtime.Throw(a.NewTypeError("cannot mix BigInt and other types"))
	}
	if ln.IsBigInt() {
		return bigIntBinaryOperator(a, ln.AsBigInt().Value, op, rn.AsBigInt().Value)
	}
	return runtime.Number(numberBinaryOperator(ln.AsNumber(), op, rn.AsNumber())), nil
}

func numberBinaryOperator(x float64, op BinaryOp, y float64) float64 {
	switch op {
	case OpAdd:
		return x + y
	case OpSubtract:
		return x - y
	case OpMultiply:
		return x * y
	case OpDivide:
		return x / y
	case OpModulo:
		return math.Mod(x, y)
	case OpExponent:
		return math.Pow(x, y)
	case OpBitAnd:
		return float64(numberToInt32(x) & numberToInt32(y))
	case OpBitOr:
		return float64(numberToInt32(x) | numberToInt32(y))
	case OpBitXor:
		return float64(numberToInt32(x) ^ numberToInt32(y))
	case OpShiftLeft:
		shift := uint32(numberToInt32(y)) & 31
		return float64(numberToInt32(x) << shift)
	case OpShiftRight:
		shift := uint32(numberToInt32(y)) & 31
		return float64(numberToInt32(x) >> shift)
	case OpShiftRightUnsigned:
		shift := uint32(numberToInt32(y)) & 31
		return float64(uint32(numberToInt32(x)) >> shift)
	}
	return math.NaN()
}

func bigIntBinaryOperator(a *runtime.Agent, x int64, op BinaryOp, y int64) (runtime.Value, *runtime.ThrowCompletion) {
	switch op {
	case OpAdd:
		return runtime.BigIntValue(&runtime.BigInt{Value: x + y}), nil
	case OpSubtract:
		return runtime.BigIntValue(&runtime.BigInt{Value: x - y}), nil
	case OpMultiply:
		return runtime.BigIntValue(&runtime.BigInt{Value: x * y}), nil
	case OpDivide:
		if y == 0 {
			return runtime.Undefined, runtime.Throw(a.NewRangeError("division by zero"))
		}
		return runtime.BigIntValue(&runtime.BigInt{Value: x / y}), nil
	case OpModulo:
		if y == 0 {
			return runtime.Undefined, runtime.Throw(a.NewRangeError("division by zero"))
		}
		return runtime.BigIntValue(&runtime.BigInt{Value: x % y}), nil
	case OpBitAnd:
		return runtime.BigIntValue(&runtime.BigInt{Value: x & y}), nil
	case OpBitOr:
		return runtime.BigIntValue(&runtime.BigInt{Value: x | y}), nil
	case OpBitXor:
		return runtime.BigIntValue(&runtime.BigInt{Value: x ^ y}), nil
	}
	return runtime.Undefined, runtime.Throw(a.NewTypeError("unsupported BigInt operator"))
}

// UnaryMinus implements Number::unaryMinus (ECMA-262 §6.1.6.1.3): NaN
// stays NaN; 0 and -0 flip sign.
func UnaryMinus(n float64) float64 {
	if math.IsNaN(n) {
		return n
	}
	return -n
}
