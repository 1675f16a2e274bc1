package runtime

// WellKnownSymbols is the per-agent table of realm-independent
// well-known symbols (ECMA-262 §6.1.5.1). Unscopables is consulted by
// Object Environment Records' HasBinding and ToPrimitive by the
// ToPrimitive conversion; no implemented operation reads the others.
type WellKnownSymbols struct {
	Iterator      *Symbol
	ToPrimitive   *Symbol
	ToStringTag   *Symbol
	HasInstance   *Symbol
	Unscopables   *Symbol
}

func newWellKnownSymbols() WellKnownSymbols {
	return WellKnownSymbols{
		Iterator:    &Symbol{Description: "Symbol.iterator"},
		ToPrimitive: &Symbol{Description: "Symbol.toPrimitive"},
		ToStringTag: &Symbol{Description: "Symbol.toStringTag"},
		HasInstance: &Symbol{Description: "Symbol.hasInstance"},
		Unscopables: &Symbol{Description: "Symbol.unscopables"},
	}
}

// Agent is the process-wide evaluator state described in ECMA-262
// §9.7: it owns the execution-context stack, the object heap, the
// environment arena, and the well-known-symbols table. Every abstract
// operation takes an *Agent explicitly — there is no package-level
// global evaluator state — so the running context is reached only via
// RunningExecutionContext.
type Agent struct {
	contexts         []*ExecutionContext
	objects          []*Object
	envs             []*Environment
	WellKnownSymbols WellKnownSymbols
}

// NewAgent creates an Agent with empty heaps and a fresh symbol table.
func NewAgent() *Agent {
	return &Agent{
		objects:          []*Object{nil}, // index 0 = NoObject sentinel
		envs:             []*Environment{nil}, // index 0 = NoEnv sentinel
		WellKnownSymbols: newWellKnownSymbols(),
	}
}

// PushExecutionContext pushes ctx onto the agent's LIFO context stack.
func (a *Agent) PushExecutionContext(ctx *ExecutionContext) {
	a.contexts = append(a.contexts, ctx)
}

// PopExecutionContext pops the top context. Panics if the stack is
// empty — Invariant 4 says the stack is never empty during evaluation,
// so an empty pop is a programmer bug, not a recoverable condition.
func (a *Agent) PopExecutionContext() {
	if len(a.contexts) == 0 {
		panic("runtime: PopExecutionContext on empty context stack")
	}
	a.contexts = a.contexts[:len(a.contexts)-1]
}

// RunningExecutionContext returns the top of the context stack
// (Invariant 4: asserts non-empty).
func (a *Agent) RunningExecutionContext() *ExecutionContext {
	if len(a.contexts) == 0 {
		panic("runtime: RunningExecutionContext on empty context stack")
	}
	return a.contexts[len(a.contexts)-1]
}

// CurrentRealm returns the running context's realm.
func (a *Agent) CurrentRealm() *Realm {
	return a.RunningExecutionContext().Realm
}

// AllocateObject allocates a fresh ordinary object with the given
// prototype and returns its handle.
func (a *Agent) AllocateObject(proto Value) ObjectAddr {
	o := newObject(proto)
	a.objects = append(a.objects, o)
	return ObjectAddr(len(a.objects) - 1)
}

// AllocateExoticObject allocates a fresh object and immediately replaces
// its internal-methods vtable (used for immutable-prototype and function
// exotic objects, ECMA-262 §10.1/§10.3).
func (a *Agent) AllocateExoticObject(proto Value, methods *InternalMethods) ObjectAddr {
	addr := a.AllocateObject(proto)
	a.objects[addr].Methods = methods
	return addr
}

// Object dereferences an ObjectAddr. Panics on NoObject/out-of-range —
// both are invariant violations, not recoverable runtime errors.
func (a *Agent) Object(addr ObjectAddr) *Object {
	if addr == NoObject || int(addr) >= len(a.objects) {
		panic("runtime: dereference of invalid ObjectAddr")
	}
	return a.objects[addr]
}

// AllocateEnvironment stores env in the arena and returns its handle.
func (a *Agent) AllocateEnvironment(env *Environment) EnvAddr {
	a.envs = append(a.envs, env)
	return EnvAddr(len(a.envs) - 1)
}

// Env dereferences an EnvAddr.
func (a *Agent) Env(addr EnvAddr) *Environment {
	if addr == NoEnv || int(addr) >= len(a.envs) {
		panic("runtime: dereference of invalid EnvAddr")
	}
	return a.envs[addr]
}

// CallValue implements the Call(F, V, args) abstract operation's core:
// check IsCallable, then invoke F.[[Call]].
func (a *Agent) CallValue(f Value, this Value, args []Value) (Value, *ThrowCompletion) {
	if !f.IsObject() {
		return Undefined, Throw(a.NewTypeError("value is not a function"))
	}
	o := a.Object(f.AsObject())
	if o.Methods.Call == nil {
		return Undefined, Throw(a.NewTypeError("value is not callable"))
	}
	return o.Methods.Call(a, f.AsObject(), this, args)
}

// ConstructValue implements Construct(F, args, newTarget=F).
func (a *Agent) ConstructValue(f Value, args []Value, newTarget ObjectAddr) (Value, *ThrowCompletion) {
	if !f.IsObject() {
		return Undefined, Throw(a.NewTypeError("value is not a constructor"))
	}
	o := a.Object(f.AsObject())
	if o.Methods.Construct == nil {
		return Undefined, Throw(a.NewTypeError("value is not a constructor"))
	}
	return o.Methods.Construct(a, f.AsObject(), args, newTarget)
}

// GlobalObjectSet implements the non-strict unresolvable-reference
// fallback of PutValue: create the property on the running realm's
// global object.
func (a *Agent) GlobalObjectSet(name string, v Value) *ThrowCompletion {
	realm := a.CurrentRealm()
	o := a.Object(realm.GlobalObject)
	_, tc := o.Methods.Set(a, realm.GlobalObject, StringKey(name), v, Object(realm.GlobalObject))
	return tc
}

// ToObjectValue is the narrow ToObject(Value) surface Reference
// operations need; the full abstract operation (with primitive wrapper
// objects) lives in package operations to avoid an import cycle, and is
// installed here via this function variable, which the operations
// package's init() sets.
var ToObjectHook func(a *Agent, v Value) (ObjectAddr, *ThrowCompletion)

func (a *Agent) ToObjectValue(v Value) (ObjectAddr, *ThrowCompletion) {
	if v.IsObject() {
		return v.AsObject(), nil
	}
	if ToObjectHook != nil {
		return ToObjectHook(a, v)
	}
	return NoObject, Throw(a.NewTypeError("cannot convert value to object"))
}

// --- Error raisers (ECMA-262 §21.5, native error constructors) ---
//
// Each constructs the abstract error object (name + message own
// properties, prototype chained to the matching %XError.prototype%
// intrinsic when a realm is current) and returns it wrapped in a throw
// completion's Value — callers do `return Throw(a.NewTypeError(...))`.
// The teacher's interpreter uses process-terminating panics for the
// equivalent failures; this design always returns a throw completion
// instead, so host errors surface as catchable ECMAScript exceptions
// (see DESIGN.md).

func (a *Agent) newErrorObject(kind, message string) Value {
	var proto Value = Null
	if len(a.contexts) > 0 {
		realm := a.CurrentRealm()
		if p, ok := realm.Intrinsics[kind+"Prototype"]; ok {
			proto = Object(p)
		} else if p, ok := realm.Intrinsics["ErrorPrototype"]; ok {
			proto = Object(p)
		}
	}
	addr := a.AllocateObject(proto)
	o := a.Object(addr)
	o.setOwn(StringKey("name"), NewDataPropertyDescriptor(String(kind), true, false, true))
	o.setOwn(StringKey("message"), NewDataPropertyDescriptor(String(message), true, false, true))
	return Object(addr)
}

func (a *Agent) NewTypeError(message string) Value      { return a.newErrorObject("TypeError", message) }
func (a *Agent) NewReferenceError(message string) Value { return a.newErrorObject("ReferenceError", message) }
func (a *Agent) NewSyntaxError(message string) Value     { return a.newErrorObject("SyntaxError", message) }
func (a *Agent) NewRangeError(message string) Value      { return a.newErrorObject("RangeError", message) }
