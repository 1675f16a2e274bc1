package runtime

// EnvAddr is a stable handle into the Agent's environment arena,
// mirroring ObjectAddr for the object heap.
type EnvAddr uint32

// NoEnv is the null handle: the global environment's outer chain
// terminates here (Invariant 3).
const NoEnv EnvAddr = 0

// EnvKind distinguishes the four environment-record variants of
// ECMA-262 §9.1.1.
type EnvKind byte

const (
	EnvDeclarative EnvKind = iota
	EnvObject
	EnvFunction
	EnvGlobal
)

type binding struct {
	value     Value
	hasValue  bool // false = uninitialized (the "∅" sentinel in ECMA-262 §9.1.1.1)
	mutable   bool
	deletable bool
	strict    bool
}

// ThisBindingStatus enumerates a Function Environment Record's
// thisBindingStatus field (ECMA-262 §9.1.1.3).
type ThisBindingStatus byte

const (
	ThisLexical ThisBindingStatus = iota
	ThisInitialized
	ThisUninitialized
)

// Environment is the polymorphic Environment Record of ECMA-262 §9.1:
// a Declarative/Object/Function/Global variant sharing one outer-chain
// field and one binding-operations surface.
type Environment struct {
	Kind  EnvKind
	Outer EnvAddr
	HasOuter bool

	// Declarative (and the declarative half of Function/Global).
	bindings map[string]*binding
	order    []string

	// Object.
	BindingObject      ObjectAddr
	IsWithEnvironment  bool

	// Function (embeds a declarative record via bindings/order above).
	ThisValue         Value
	ThisBindingStatus ThisBindingStatus
	FunctionObject    ObjectAddr
	HasFunctionObject bool
	NewTarget         ObjectAddr
	HasNewTarget      bool

	// Global: composite of a declarative sub-record (bindings/order) and
	// an object sub-record (GlobalObject).
	GlobalObject     ObjectAddr
	GlobalThisValue  Value
	varNames         map[string]bool
}

func newDeclarativeEnv(kind EnvKind, outer EnvAddr, hasOuter bool) *Environment {
	return &Environment{
		Kind: kind, Outer: outer, HasOuter: hasOuter,
		bindings: map[string]*binding{},
	}
}

// NewDeclarativeEnvironment creates a fresh Declarative Environment
// Record whose outer is the given environment.
func NewDeclarativeEnvironment(outer EnvAddr) *Environment {
	return newDeclarativeEnv(EnvDeclarative, outer, true)
}

// NewFunctionEnvironment creates a Function Environment Record.
func NewFunctionEnvironment(outer EnvAddr, fn ObjectAddr, status ThisBindingStatus, newTarget ObjectAddr, hasNewTarget bool) *Environment {
	e := newDeclarativeEnv(EnvFunction, outer, true)
	e.FunctionObject, e.HasFunctionObject = fn, true
	e.ThisBindingStatus = status
	e.NewTarget, e.HasNewTarget = newTarget, hasNewTarget
	return e
}

// NewObjectEnvironment creates an Object Environment Record backed by
// bindingObject.
func NewObjectEnvironment(bindingObject ObjectAddr, isWith bool, outer EnvAddr) *Environment {
	e := &Environment{Kind: EnvObject, Outer: outer, HasOuter: true}
	e.BindingObject = bindingObject
	e.IsWithEnvironment = isWith
	return e
}

// NewGlobalEnvironment creates a Global Environment Record: a
// declarative sub-record plus the object sub-record (globalObject).
func NewGlobalEnvironment(globalObject ObjectAddr, thisValue Value) *Environment {
	e := newDeclarativeEnv(EnvGlobal, NoEnv, false)
	e.GlobalObject = globalObject
	e.GlobalThisValue = thisValue
	e.varNames = map[string]bool{}
	return e
}

func (e *Environment) declBinding(name string) (*binding, bool) {
	b, ok := e.bindings[name]
	return b, ok
}

func (e *Environment) createDeclBinding(name string, mutable bool) {
	if _, ok := e.bindings[name]; !ok {
		e.order = append(e.order, name)
	}
	e.bindings[name] = &binding{mutable: mutable, strict: !mutable}
}

// HasBinding implements the common HasBinding operation for all four
// variants (ECMA-262 §9.1.1).
func (e *Environment) HasBinding(a *Agent, name string) (bool, *ThrowCompletion) {
	switch e.Kind {
	case EnvObject:
		hasProp, tc := objHasProperty(a, e.BindingObject, StringKey(name))
		if tc != nil || !hasProp {
			return hasProp, tc
		}
		if !e.IsWithEnvironment {
			return true, nil
		}
		return a.checkUnscopables(e.BindingObject, name)
	case EnvGlobal:
		if _, ok := e.declBinding(name); ok {
			return true, nil
		}
		return objHasProperty(a, e.GlobalObject, StringKey(name))
	default:
		_, ok := e.declBinding(name)
		return ok, nil
	}
}

// CreateMutableBinding inserts {mutable, deletable, value=∅}. For a
// Global Environment Record this creates the binding in the declarative
// sub-record (used for `let`); `var`-scoped bindings instead go through
// CreateGlobalVarBinding onto the object sub-record, per ECMA-262
// §9.1.1.4 (var-scoped bindings live on the object record).
func (e *Environment) CreateMutableBinding(a *Agent, name string, deletable bool) *ThrowCompletion {
	if e.Kind == EnvObject {
		return objDefineVarBinding(a, e.BindingObject, name, deletable)
	}
	e.createDeclBinding(name, true)
	e.bindings[name].deletable = deletable
	return nil
}

// CreateGlobalVarBinding implements CreateGlobalVarBinding(N, D) for a
// Global Environment Record: the var-scoped counterpart to
// CreateMutableBinding, targeting the object sub-record (global object)
// instead of the declarative one.
func (e *Environment) CreateGlobalVarBinding(a *Agent, name string, deletable bool) *ThrowCompletion {
	if _, ok := e.declBinding(name); ok {
		return nil
	}
	if e.varNames != nil {
		e.varNames[name] = true
	}
	return objDefineVarBinding(a, e.GlobalObject, name, deletable)
}

// CreateImmutableBinding inserts {mutable=false, deletable=false,
// strict, value=∅}.
func (e *Environment) CreateImmutableBinding(name string, strict bool) {
	e.createDeclBinding(name, false)
	e.bindings[name].strict = strict
}

// InitializeBinding requires value=∅ then stores v.
func (e *Environment) InitializeBinding(a *Agent, name string, v Value) *ThrowCompletion {
	switch e.Kind {
	case EnvObject:
		return objSetMutableBinding(a, e.BindingObject, name, v, false)
	case EnvGlobal:
		if b, ok := e.declBinding(name); ok {
			b.value, b.hasValue = v, true
			return nil
		}
		return objSetMutableBinding(a, e.GlobalObject, name, v, false)
	default:
		b := e.bindings[name]
		b.value, b.hasValue = v, true
		return nil
	}
}

// SetMutableBinding requires mutable or fails with TypeError in strict
// mode (ECMA-262 §9.1.1).
func (e *Environment) SetMutableBinding(a *Agent, name string, v Value, strict bool) *ThrowCompletion {
	switch e.Kind {
	case EnvObject:
		return objSetMutableBinding(a, e.BindingObject, name, v, strict)
	case EnvGlobal:
		if b, ok := e.declBinding(name); ok {
			return setDeclBinding(a, b, name, v, strict)
		}
		return objSetMutableBinding(a, e.GlobalObject, name, v, strict)
	default:
		b, ok := e.declBinding(name)
		if !ok {
			if strict {
				return Throw(a.NewReferenceError(name + " is not defined"))
			}
			e.createDeclBinding(name, true)
			e.bindings[name].value, e.bindings[name].hasValue = v, true
			return nil
		}
		return setDeclBinding(a, b, name, v, strict)
	}
}

func setDeclBinding(a *Agent, b *binding, name string, v Value, strict bool) *ThrowCompletion {
	if !b.hasValue {
		return Throw(a.NewReferenceError(name + " has not been initialized"))
	}
	if !b.mutable {
		if strict || b.strict {
			return Throw(a.NewTypeError("Assignment to constant variable " + name))
		}
		return nil
	}
	b.value = v
	return nil
}

// GetBindingValue fails with ReferenceError if value=∅.
func (e *Environment) GetBindingValue(a *Agent, name string, strict bool) (Value, *ThrowCompletion) {
	switch e.Kind {
	case EnvObject:
		return objGetBindingValue(a, e.BindingObject, name, strict)
	case EnvGlobal:
		if b, ok := e.declBinding(name); ok {
			if !b.hasValue {
				return Undefined, Throw(a.NewReferenceError(name + " has not been initialized"))
			}
			return b.value, nil
		}
		return objGetBindingValue(a, e.GlobalObject, name, strict)
	default:
		b, ok := e.declBinding(name)
		if !ok || !b.hasValue {
			return Undefined, Throw(a.NewReferenceError(name + " is not defined"))
		}
		return b.value, nil
	}
}

// DeleteBinding removes a binding if deletable.
func (e *Environment) DeleteBinding(a *Agent, name string) (bool, *ThrowCompletion) {
	switch e.Kind {
	case EnvObject:
		return objDeleteBinding(a, e.BindingObject, name)
	case EnvGlobal:
		if b, ok := e.declBinding(name); ok {
			if !b.deletable {
				return false, nil
			}
			delete(e.bindings, name)
			return true, nil
		}
		return objDeleteBinding(a, e.GlobalObject, name)
	default:
		b, ok := e.declBinding(name)
		if !ok {
			return true, nil
		}
		if !b.deletable {
			return false, nil
		}
		delete(e.bindings, name)
		return true, nil
	}
}

// HasThisBinding reports whether this record binds `this` (ECMA-262
// §9.1.1): Function records do unless lexical; Global records always do;
// Declarative/Object records never do.
func (e *Environment) HasThisBinding() bool {
	switch e.Kind {
	case EnvFunction:
		return e.ThisBindingStatus != ThisLexical
	case EnvGlobal:
		return true
	}
	return false
}

// HasSuperBinding reports whether a Function record has a bound
// [[HomeObject]] (not modeled: methods/classes' [[HomeObject]] is out of
// scope, so this always reports false).
func (e *Environment) HasSuperBinding() bool {
	return false
}

// WithBaseObject returns the with-object for Object records flagged
// isWithEnvironment, else the undefined sentinel (no base object).
func (e *Environment) WithBaseObject() (ObjectAddr, bool) {
	if e.Kind == EnvObject && e.IsWithEnvironment {
		return e.BindingObject, true
	}
	return NoObject, false
}

// GetThisBinding returns the bound `this` value for Function/Global
// records.
func (e *Environment) GetThisBinding(a *Agent) (Value, *ThrowCompletion) {
	switch e.Kind {
	case EnvFunction:
		if e.ThisBindingStatus == ThisUninitialized {
			return Undefined, Throw(a.NewReferenceError("must call super constructor before accessing 'this'"))
		}
		return e.ThisValue, nil
	case EnvGlobal:
		return e.GlobalThisValue, nil
	}
	return Undefined, nil
}

// BindThisValue sets a Function Environment Record's bound this value.
func (e *Environment) BindThisValue(v Value) {
	e.ThisValue = v
	e.ThisBindingStatus = ThisInitialized
}

func objHasProperty(a *Agent, addr ObjectAddr, key PropertyKey) (bool, *ThrowCompletion) {
	o := a.Object(addr)
	return o.Methods.HasProperty(a, addr, key)
}

func objDefineVarBinding(a *Agent, addr ObjectAddr, name string, deletable bool) *ThrowCompletion {
	o := a.Object(addr)
	key := StringKey(name)
	existing, tc := o.Methods.GetOwnProperty(a, addr, key)
	if tc != nil {
		return tc
	}
	if existing == nil {
		ext, tc := o.Methods.IsExtensible(a, addr)
		if tc != nil {
			return tc
		}
		if !ext {
			return Throw(a.NewTypeError("cannot declare global var on non-extensible object"))
		}
		_, tc = o.Methods.DefineOwnProperty(a, addr, key, NewDataPropertyDescriptor(Undefined, true, true, deletable))
		return tc
	}
	return nil
}

func objSetMutableBinding(a *Agent, addr ObjectAddr, name string, v Value, strict bool) *ThrowCompletion {
	o := a.Object(addr)
	key := StringKey(name)
	hasProp, tc := o.Methods.HasProperty(a, addr, key)
	if tc != nil {
		return tc
	}
	if !hasProp && strict {
		return Throw(a.NewReferenceError(name + " is not defined"))
	}
	ok, tc := o.Methods.Set(a, addr, key, v, Object(addr))
	if tc != nil {
		return tc
	}
	if !ok && strict {
		return Throw(a.NewTypeError("cannot assign to " + name))
	}
	return nil
}

func objGetBindingValue(a *Agent, addr ObjectAddr, name string, strict bool) (Value, *ThrowCompletion) {
	o := a.Object(addr)
	key := StringKey(name)
	hasProp, tc := o.Methods.HasProperty(a, addr, key)
	if tc != nil {
		return Undefined, tc
	}
	if !hasProp {
		if strict {
			return Undefined, Throw(a.NewReferenceError(name + " is not defined"))
		}
		return Undefined, nil
	}
	return o.Methods.Get(a, addr, key, Object(addr))
}

func objDeleteBinding(a *Agent, addr ObjectAddr, name string) (bool, *ThrowCompletion) {
	o := a.Object(addr)
	return o.Methods.Delete(a, addr, StringKey(name))
}

// checkUnscopables consults @@unscopables for with-environments
// (ECMA-262 §9.1.1.2.1).
func (a *Agent) checkUnscopables(addr ObjectAddr, name string) (bool, *ThrowCompletion) {
	o := a.Object(addr)
	unscopablesKey := SymbolKey(a.WellKnownSymbols.Unscopables)
	blockerDesc, tc := o.Methods.Get(a, addr, unscopablesKey, Object(addr))
	if tc != nil {
		return false, tc
	}
	if !blockerDesc.IsObject() {
		return true, nil
	}
	blocker := a.Object(blockerDesc.AsObject())
	blocked, tc := blocker.Methods.Get(a, blockerDesc.AsObject(), StringKey(name), blockerDesc)
	if tc != nil {
		return false, tc
	}
	return !ToBooleanValue(blocked), nil
}

// ToBooleanValue is a forward declaration shim: runtime cannot import
// operations (which depends on runtime), so environment's one ToBoolean
// need (checking @@unscopables) is implemented locally rather than by
// importing the full ToBoolean abstract operation.
func ToBooleanValue(v Value) bool {
	switch v.Kind() {
	case KindUndefined, KindNull:
		return false
	case KindBoolean:
		return v.AsBoolean()
	case KindNumber:
		n := v.AsNumber()
		return n != 0 && n == n // n==n excludes NaN
	case KindString:
		return v.AsString() != ""
	case KindBigInt:
		return v.AsBigInt().Value != 0
	default:
		return true
	}
}
