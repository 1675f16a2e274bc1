package runtime

import "math"

// Realm is a self-contained ECMAScript universe: its intrinsics, global
// object, and global environment (ECMA-262 §9.3, Realm Record).
type Realm struct {
	Intrinsics  map[string]ObjectAddr
	GlobalObject ObjectAddr
	HasGlobalObject bool
	GlobalEnv    EnvAddr
	HasGlobalEnv bool
}

// immutablePrototypeMethods is %Object.prototype%'s vtable: ordinary in
// every respect except [[SetPrototypeOf]] (ECMA-262 §10.4.7).
var immutablePrototypeMethods = buildImmutablePrototypeMethods()

func buildImmutablePrototypeMethods() *InternalMethods {
	m := OrdinaryInternalMethods
	m.SetPrototypeOf = SetImmutablePrototype
	return &m
}

// CreateRealm implements ECMA-262 §9.3.1's CreateRealm: allocate the
// intrinsics bag, starting with %Object.prototype% (immutable-prototype,
// prototype=null) then %Function.prototype% (prototype=%Object.prototype%),
// then the rest of the stub intrinsics this engine exposes (see DESIGN.md).
func (a *Agent) CreateRealm() *Realm {
	r := &Realm{Intrinsics: map[string]ObjectAddr{}}

	objectProto := a.AllocateExoticObject(Null, immutablePrototypeMethods)
	r.Intrinsics["ObjectPrototype"] = objectProto

	functionProto := a.AllocateObject(Object(objectProto))
	r.Intrinsics["FunctionPrototype"] = functionProto

	// Unpopulated intrinsic slots: the built-in realm is a stub with
	// intrinsic slots defined but most intrinsics unimplemented.
	for _, name := range []string{
		"Array", "Promise", "Symbol", "String", "Number", "Boolean",
	} {
		r.Intrinsics[name] = a.AllocateObject(Object(functionProto))
	}

	// Native error constructors + prototypes (ECMA-262 §21.5): implemented
	// minimally because the error raisers in
	// agent.go need a [[Prototype]]-bearing object, not a bare string.
	for _, kind := range []string{"Error", "TypeError", "RangeError", "ReferenceError", "SyntaxError"} {
		protoParent := objectProto
		if kind != "Error" {
			protoParent = r.Intrinsics["ErrorPrototype"]
		}
		proto := a.AllocateObject(Object(protoParent))
		proto0 := a.Object(proto)
		proto0.setOwn(StringKey("name"), NewDataPropertyDescriptor(String(kind), true, false, true))
		r.Intrinsics[kind+"Prototype"] = proto

		ctor := a.allocateErrorConstructor(kind, proto, functionProto)
		r.Intrinsics[kind] = ctor
	}

	return r
}

// allocateErrorConstructor builds a minimal native-function object whose
// [[Call]] and [[Construct]] both build a plain object carrying
// name/message own properties, chained to proto.
func (a *Agent) allocateErrorConstructor(kind string, proto ObjectAddr, functionProto ObjectAddr) ObjectAddr {
	addr := a.AllocateObject(Object(functionProto))
	o := a.Object(addr)
	o.InitialName = kind
	behaviour := func(agent *Agent, this Value, args []Value) (Value, *ThrowCompletion) {
		msg := ""
		if len(args) > 0 && args[0].IsString() {
			msg = args[0].AsString()
		}
		instAddr := agent.AllocateObject(Object(proto))
		inst := agent.Object(instAddr)
		inst.setOwn(StringKey("message"), NewDataPropertyDescriptor(String(msg), true, false, true))
		return Object(instAddr), nil
	}
	o.Behaviour = behaviour
	methods := OrdinaryInternalMethods
	methods.Call = func(ag *Agent, fn ObjectAddr, this Value, args []Value) (Value, *ThrowCompletion) {
		return ag.Object(fn).Behaviour(ag, this, args)
	}
	methods.Construct = func(ag *Agent, fn ObjectAddr, args []Value, newTarget ObjectAddr) (Value, *ThrowCompletion) {
		return ag.Object(fn).Behaviour(ag, Undefined, args)
	}
	o.Methods = &methods
	o.setOwn(StringKey("prototype"), NewDataPropertyDescriptor(Object(proto), false, false, false))
	return addr
}

// SetRealmGlobalObject implements ECMA-262 §9.3.3's SetRealmGlobalObject.
// global and thisValue may be the zero Value; pass hasGlobal/hasThis
// false to request the defaults (a fresh OrdinaryObject, and thisValue =
// global, respectively).
func (a *Agent) SetRealmGlobalObject(r *Realm, global Value, hasGlobal bool, thisValue Value, hasThis bool) {
	if !hasGlobal {
		addr := a.AllocateObject(Object(r.Intrinsics["ObjectPrototype"]))
		global = Object(addr)
	}
	if !hasThis {
		thisValue = global
	}
	r.GlobalObject = global.AsObject()
	r.HasGlobalObject = true
	env := NewGlobalEnvironment(r.GlobalObject, thisValue)
	r.GlobalEnv = a.AllocateEnvironment(env)
	r.HasGlobalEnv = true
}

// SetDefaultGlobalBindings installs the standard global properties
// (ECMA-262 §9.3.4); this engine's realm is a stub, so only the one
// slice of it the language surface actually needs is implemented:
// `undefined`, `NaN`, and `Infinity` as non-writable, non-configurable
// data properties, per ECMA-262 §19.1 — needed indirectly through
// literal evaluation (literals bypass the global object, but a script
// referencing the bare identifiers must resolve).
func (a *Agent) SetDefaultGlobalBindings(r *Realm) *ThrowCompletion {
	o := a.Object(r.GlobalObject)
	o.setOwn(StringKey("undefined"), NewDataPropertyDescriptor(Undefined, false, false, false))
	o.setOwn(StringKey("NaN"), NewDataPropertyDescriptor(Number(math.NaN()), false, false, false))
	o.setOwn(StringKey("Infinity"), NewDataPropertyDescriptor(Number(math.Inf(1)), false, false, false))
	for name, addr := range r.Intrinsics {
		if name == "ObjectPrototype" || name == "FunctionPrototype" {
			continue
		}
		if _, ok := o.findOwn(StringKey(name)); ok {
			continue
		}
		o.setOwn(StringKey(name), NewDataPropertyDescriptor(Object(addr), true, false, true))
	}
	return nil
}

// InitializeHostDefinedRealm implements ECMA-262 §9.6's
// InitializeHostDefinedRealm: CreateRealm, push a fresh execution
// context with no function/script, SetRealmGlobalObject,
// SetDefaultGlobalBindings.
func (a *Agent) InitializeHostDefinedRealm() (*Realm, *ThrowCompletion) {
	r := a.CreateRealm()
	ctx := &ExecutionContext{Realm: r}
	a.PushExecutionContext(ctx)
	a.SetRealmGlobalObject(r, Value{}, false, Value{}, false)
	ctx.LexicalEnvironment = r.GlobalEnv
	ctx.VariableEnvironment = r.GlobalEnv
	if tc := a.SetDefaultGlobalBindings(r); tc != nil {
		return r, tc
	}
	return r, nil
}
