package runtime

// ReferenceBaseKind tags a Reference Record's base (ECMA-262 §6.2.5).
type ReferenceBaseKind byte

const (
	BaseUnresolvable ReferenceBaseKind = iota
	BaseValue
	BaseEnvironment
)

// Reference is the Reference Record produced by ResolveBinding and
// consumed by assignment, property access, delete, and
// InitializeReferencedBinding (ECMA-262 §6.2.5).
type Reference struct {
	BaseKind       ReferenceBaseKind
	BaseValue      Value
	BaseEnv        EnvAddr
	ReferencedName string
	Strict         bool
	ThisValue      Value
	HasThisValue   bool
}

// IsUnresolvableReference implements IsUnresolvableReference, always
// true for BaseUnresolvable references (Invariant 6).
func (r Reference) IsUnresolvableReference() bool {
	return r.BaseKind == BaseUnresolvable
}

// IsPropertyReference reports whether the base is a value (so property
// lookup, not environment binding lookup, applies).
func (r Reference) IsPropertyReference() bool {
	return r.BaseKind == BaseValue
}

// GetValue implements GetValue(V) for reference V.
func GetValue(a *Agent, ref Reference) (Value, *ThrowCompletion) {
	if ref.IsUnresolvableReference() {
		return Undefined, Throw(a.NewReferenceError(ref.ReferencedName + " is not defined"))
	}
	if ref.IsPropertyReference() {
		obj, tc := a.ToObjectValue(ref.BaseValue)
		if tc != nil {
			return Undefined, tc
		}
		o := a.Object(obj)
		return o.Methods.Get(a, obj, StringKey(ref.ReferencedName), ref.BaseValue)
	}
	env := a.Env(ref.BaseEnv)
	return env.GetBindingValue(a, ref.ReferencedName, ref.Strict)
}

// PutValue implements PutValue(V, W).
func PutValue(a *Agent, ref Reference, w Value) *ThrowCompletion {
	if ref.IsUnresolvableReference() {
		if ref.Strict {
			return Throw(a.NewReferenceError(ref.ReferencedName + " is not defined"))
		}
		return a.GlobalObjectSet(ref.ReferencedName, w)
	}
	if ref.IsPropertyReference() {
		obj, tc := a.ToObjectValue(ref.BaseValue)
		if tc != nil {
			return tc
		}
		o := a.Object(obj)
		ok, tc := o.Methods.Set(a, obj, StringKey(ref.ReferencedName), w, ref.BaseValue)
		if tc != nil {
			return tc
		}
		if !ok && ref.Strict {
			return Throw(a.NewTypeError("cannot assign to property " + ref.ReferencedName))
		}
		return nil
	}
	env := a.Env(ref.BaseEnv)
	return env.SetMutableBinding(a, ref.ReferencedName, w, ref.Strict)
}

// InitializeReferencedBinding implements ECMA-262 §6.2.5.3's
// InitializeReferencedBinding(V, W): asserts the reference is not
// unresolvable and its base is an environment.
func InitializeReferencedBinding(a *Agent, ref Reference, w Value) *ThrowCompletion {
	env := a.Env(ref.BaseEnv)
	return env.InitializeBinding(a, ref.ReferencedName, w)
}

// ResolveBinding implements ECMA-262 §9.4.2's ResolveBinding(name): walk
// the lexical environment chain from env outward looking for a binding
// named name; strict=true is assumed unconditionally (an acknowledged
// Open Question — see DESIGN.md).
func ResolveBinding(a *Agent, env EnvAddr, name string) (Reference, *ThrowCompletion) {
	const strict = true // Open Question resolved unconditionally true; see DESIGN.md
	cur := env
	for cur != NoEnv {
		e := a.Env(cur)
		has, tc := e.HasBinding(a, name)
		if tc != nil {
			return Reference{}, tc
		}
		if has {
			return Reference{
				BaseKind: BaseEnvironment, BaseEnv: cur,
				ReferencedName: name, Strict: strict,
			}, nil
		}
		if !e.HasOuter {
			break
		}
		cur = e.Outer
	}
	return Reference{BaseKind: BaseUnresolvable, ReferencedName: name, Strict: strict}, nil
}
