package vm

import (
	"github.com/thegreatercurve/glyn-sub000/internal/bytecode"
	"github.com/thegreatercurve/glyn-sub000/internal/operations"
	"github.com/thegreatercurve/glyn-sub000/internal/runtime"
)

// execute dispatches every opcode except the three (Halt/Return/Throw)
// that end the run loop directly, which v.run handles inline.
func (v *VM) execute(op bytecode.OpCode, width int) *runtime.ThrowCompletion {
	switch op {
	case bytecode.Const:
		idx := v.readOperand(width)
		v.pushValue(v.program.Constants[idx])
	case bytecode.True:
		v.pushValue(runtime.True)
	case bytecode.False:
		v.pushValue(runtime.False)
	case bytecode.Null:
		v.pushValue(runtime.Null)
	case bytecode.Undefined:
		v.pushValue(runtime.Undefined)
	case bytecode.Pop:
		v.pop()
	case bytecode.Print:
		val, tc := v.popValue()
		if tc != nil {
			return tc
		}
		return v.print(val)

	case bytecode.Add, bytecode.Subtract, bytecode.Multiply, bytecode.Divide,
		bytecode.Modulo, bytecode.Exponent, bytecode.BitAnd, bytecode.BitOr,
		bytecode.BitXor, bytecode.BitShiftLeft, bytecode.BitShiftRight,
		bytecode.BitShiftRightUnsigned:
		return v.binaryArith(op)

	case bytecode.Equal, bytecode.NotEqual, bytecode.StrictEqual, bytecode.StrictNotEqual,
		bytecode.Less, bytecode.Greater, bytecode.LessOrEqual, bytecode.GreaterOrEqual:
		return v.comparison(op)

	case bytecode.LogicalAnd, bytecode.LogicalOr:
		return v.logical(op)

	case bytecode.Not:
		val, tc := v.popValue()
		if tc != nil {
			return tc
		}
		v.pushValue(runtime.Boolean(!operations.ToBoolean(val)))
	case bytecode.Plus:
		val, tc := v.popValue()
		if tc != nil {
			return tc
		}
		n, tc := operations.ToNumber(v.a, val)
		if tc != nil {
			return tc
		}
		v.pushValue(n)
	case bytecode.Minus:
		return v.unaryMinus()
	case bytecode.TypeOf:
		val, tc := v.popTypeofOperand()
		if tc != nil {
			return tc
		}
		v.pushValue(runtime.String(typeOf(v.a, val)))
	case bytecode.Void:
		if _, tc := v.popValue(); tc != nil {
			return tc
		}
		v.pushValue(runtime.Undefined)
	case bytecode.Delete:
		return v.delete_()
	case bytecode.Increment:
		return v.incrDecr(1)
	case bytecode.Decrement:
		return v.incrDecr(-1)

	// Jump* operands are always a 2-byte relative offset (Builder.EmitJump
	// reserves exactly 2 bytes and never routes through the Wide-widening
	// path), independent of the Wide prefix that governs every other
	// opcode's operand width — so these read a fixed width of 2 rather
	// than the dispatch loop's `width`.
	case bytecode.Jump:
		offset := v.readJumpOffset(2)
		v.ip += offset
	case bytecode.JumpIfTrue:
		offset := v.readJumpOffset(2)
		val, tc := v.popValue()
		if tc != nil {
			return tc
		}
		if operations.ToBoolean(val) {
			v.ip += offset
		}
	case bytecode.JumpIfFalse:
		offset := v.readJumpOffset(2)
		val, tc := v.popValue()
		if tc != nil {
			return tc
		}
		if !operations.ToBoolean(val) {
			v.ip += offset
		}

	case bytecode.SetLocal:
		idx := v.readOperand(width)
		val, tc := v.popValue()
		if tc != nil {
			return tc
		}
		v.setLocal(idx, val)
	case bytecode.GetLocal:
		idx := v.readOperand(width)
		v.pushValue(v.getLocal(idx))

	case bytecode.ResolveBinding:
		idx := v.readOperand(width)
		name := v.program.Identifiers[idx].Name
		ref, tc := runtime.ResolveBinding(v.a, v.lexicalEnv(), name)
		if tc != nil {
			return tc
		}
		v.pushRef(ref)
	case bytecode.InitializeReferencedBinding:
		idx := v.readOperand(width)
		name := v.program.Identifiers[idx].Name
		val, tc := v.popValue()
		if tc != nil {
			return tc
		}
		env := v.a.Env(v.lexicalEnv())
		return env.InitializeBinding(v.a, name, val)

	case bytecode.Call:
		argc := v.readOperand(width)
		return v.call(argc)

	default:
		return runtime.Throw(v.a.NewTypeError("unimplemented opcode"))
	}
	return nil
}

func (v *VM) binaryArith(op bytecode.OpCode) *runtime.ThrowCompletion {
	r, tc := v.popValue()
	if tc != nil {
		return tc
	}
	l, tc := v.popValue()
	if tc != nil {
		return tc
	}
	result, tc := operations.ApplyStringOrNumericBinaryOperator(v.a, l, binOpFor(op), r)
	if tc != nil {
		return tc
	}
	v.pushValue(result)
	return nil
}

func binOpFor(op bytecode.OpCode) operations.BinaryOp {
	switch op {
	case bytecode.Subtract:
		return operations.OpSubtract
	case bytecode.Multiply:
		return operations.OpMultiply
	case bytecode.Divide:
		return operations.OpDivide
	case bytecode.Modulo:
		return operations.OpModulo
	case bytecode.Exponent:
		return operations.OpExponent
	case bytecode.BitAnd:
		return operations.OpBitAnd
	case bytecode.BitOr:
		return operations.OpBitOr
	case bytecode.BitXor:
		return operations.OpBitXor
	case bytecode.BitShiftLeft:
		return operations.OpShiftLeft
	case bytecode.BitShiftRight:
		return operations.OpShiftRight
	case bytecode.BitShiftRightUnsigned:
		return operations.OpShiftRightUnsigned
	default:
		return operations.OpAdd
	}
}

func (v *VM) comparison(op bytecode.OpCode) *runtime.ThrowCompletion {
	r, tc := v.popValue()
	if tc != nil {
		return tc
	}
	l, tc := v.popValue()
	if tc != nil {
		return tc
	}
	switch op {
	case bytecode.Equal:
		eq, tc := operations.IsLooselyEqual(v.a, l, r)
		if tc != nil {
			return tc
		}
		v.pushValue(runtime.Boolean(eq))
	case bytecode.NotEqual:
		eq, tc := operations.IsLooselyEqual(v.a, l, r)
		if tc != nil {
			return tc
		}
		v.pushValue(runtime.Boolean(!eq))
	case bytecode.StrictEqual:
		v.pushValue(runtime.Boolean(operations.IsStrictlyEqual(l, r)))
	case bytecode.StrictNotEqual:
		v.pushValue(runtime.Boolean(!operations.IsStrictlyEqual(l, r)))
	case bytecode.Less:
		res, tc := operations.IsLessThan(v.a, l, r)
		if tc != nil {
			return tc
		}
		v.pushValue(runtime.Boolean(res.IsTrue()))
	case bytecode.Greater:
		res, tc := operations.IsLessThan(v.a, r, l)
		if tc != nil {
			return tc
		}
		v.pushValue(runtime.Boolean(res.IsTrue()))
	case bytecode.LessOrEqual:
		res, tc := operations.IsLessThan(v.a, r, l)
		if tc != nil {
			return tc
		}
		v.pushValue(runtime.Boolean(!res.IsUndefined() && !res.IsTrue()))
	case bytecode.GreaterOrEqual:
		res, tc := operations.IsLessThan(v.a, l, r)
		if tc != nil {
			return tc
		}
		v.pushValue(runtime.Boolean(!res.IsUndefined() && !res.IsTrue()))
	}
	return nil
}

// logical implements the simplified (eager, non-short-circuiting)
// LogicalAnd/LogicalOr opcodes, both zero-operand: both sides are always
// evaluated and the boolean AND/OR of their truthiness is pushed. This
// does not preserve the original operand or the short-circuit
// evaluation order ECMA-262 §13.13 specifies for real && / || — a
// documented deviation; see DESIGN.md.
func (v *VM) logical(op bytecode.OpCode) *runtime.ThrowCompletion {
	r, tc := v.popValue()
	if tc != nil {
		return tc
	}
	l, tc := v.popValue()
	if tc != nil {
		return tc
	}
	lb, rb := operations.ToBoolean(l), operations.ToBoolean(r)
	if op == bytecode.LogicalAnd {
		v.pushValue(runtime.Boolean(lb && rb))
	} else {
		v.pushValue(runtime.Boolean(lb || rb))
	}
	return nil
}

func (v *VM) unaryMinus() *runtime.ThrowCompletion {
	val, tc := v.popValue()
	if tc != nil {
		return tc
	}
	n, tc := operations.ToNumeric(v.a, val)
	if tc != nil {
		return tc
	}
	if n.IsBigInt() {
		v.pushValue(runtime.BigIntValue(&runtime.BigInt{Value: -n.AsBigInt().Value}))
		return nil
	}
	v.pushValue(runtime.Number(operations.UnaryMinus(n.AsNumber())))
	return nil
}

func (v *VM) delete_() *runtime.ThrowCompletion {
	ref, isRef := v.popReference()
	if !isRef {
		// delete of a non-reference expression always succeeds without
		// side effects (ECMA-262 §13.5.1.1 UnaryExpression : delete
		// UnaryExpression, step for a non-Reference).
		v.pushValue(runtime.True)
		return nil
	}
	if ref.IsUnresolvableReference() {
		v.pushValue(runtime.True)
		return nil
	}
	if ref.IsPropertyReference() {
		addr, tc := v.a.ToObjectValue(ref.BaseValue)
		if tc != nil {
			return tc
		}
		o := v.a.Object(addr)
		ok, tc := o.Methods.Delete(v.a, addr, runtime.StringKey(ref.ReferencedName))
		if tc != nil {
			return tc
		}
		v.pushValue(runtime.Boolean(ok))
		return nil
	}
	env := v.a.Env(ref.BaseEnv)
	ok, tc := env.DeleteBinding(v.a, ref.ReferencedName)
	if tc != nil {
		return tc
	}
	v.pushValue(runtime.Boolean(ok))
	return nil
}

// incrDecr implements prefix ++/-- (ECMA-262 §13.4.4/§13.4.5): GetValue,
// ToNumeric, add delta, PutValue, push the new value.
func (v *VM) incrDecr(delta float64) *runtime.ThrowCompletion {
	ref, isRef := v.popReference()
	if !isRef {
		return runtime.Throw(v.a.NewReferenceError("invalid left-hand side expression"))
	}
	old, tc := runtime.GetValue(v.a, ref)
	if tc != nil {
		return tc
	}
	n, tc := operations.ToNumeric(v.a, old)
	if tc != nil {
		return tc
	}
	var next runtime.Value
	if n.IsBigInt() {
		next = runtime.BigIntValue(&runtime.BigInt{Value: n.AsBigInt().Value + int64(delta)})
	} else {
		next = runtime.Number(n.AsNumber() + delta)
	}
	if tc := runtime.PutValue(v.a, ref, next); tc != nil {
		return tc
	}
	v.pushValue(next)
	return nil
}

func (v *VM) call(argc int) *runtime.ThrowCompletion {
	args := make([]runtime.Value, argc)
	for i := argc - 1; i >= 0; i-- {
		val, tc := v.popValue()
		if tc != nil {
			return tc
		}
		args[i] = val
	}
	callee, tc := v.popValue()
	if tc != nil {
		return tc
	}
	result, tc := operations.Call(v.a, callee, runtime.Undefined, args)
	if tc != nil {
		return tc
	}
	v.pushValue(result)
	return nil
}

func (v *VM) setLocal(idx int, val runtime.Value) {
	for idx >= len(v.locals) {
		v.locals = append(v.locals, runtime.Undefined)
	}
	v.locals[idx] = val
}

func (v *VM) getLocal(idx int) runtime.Value {
	if idx >= len(v.locals) {
		return runtime.Undefined
	}
	return v.locals[idx]
}

// typeOf implements the typeof operator (ECMA-262 §13.5.3): functions
// (objects with a [[Call]] internal method) report "function"; null
// reports "object", matching the ECMAScript historical quirk.
func typeOf(a *runtime.Agent, v runtime.Value) string {
	switch v.Kind() {
	case runtime.KindUndefined:
		return "undefined"
	case runtime.KindNull:
		return "object"
	case runtime.KindBoolean:
		return "boolean"
	case runtime.KindNumber:
		return "number"
	case runtime.KindBigInt:
		return "bigint"
	case runtime.KindString:
		return "string"
	case runtime.KindSymbol:
		return "symbol"
	case runtime.KindObject:
		if operations.IsCallable(a, v) {
			return "function"
		}
		return "object"
	}
	return "undefined"
}
