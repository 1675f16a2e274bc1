package runtime

// ObjectAddr is a stable handle into the Agent's object heap. The zero
// value never denotes a live object; it is used as the "no prototype" /
// "no such object" sentinel.
type ObjectAddr uint32

// NoObject is the null handle.
const NoObject ObjectAddr = 0

// InternalMethods is the essential + optional internal-methods vtable
// every object carries a pointer to (ECMA-262 §6.1.7.2). Essential
// methods are always present; Call/Construct are nil on non-callable
// objects, and their presence is exactly what IsCallable/IsConstructor
// test.
type InternalMethods struct {
	GetPrototypeOf    func(a *Agent, o ObjectAddr) (Value, *ThrowCompletion)
	SetPrototypeOf    func(a *Agent, o ObjectAddr, v Value) (bool, *ThrowCompletion)
	IsExtensible      func(a *Agent, o ObjectAddr) (bool, *ThrowCompletion)
	PreventExtensions func(a *Agent, o ObjectAddr) (bool, *ThrowCompletion)
	GetOwnProperty    func(a *Agent, o ObjectAddr, key PropertyKey) (*PropertyDescriptor, *ThrowCompletion)
	DefineOwnProperty func(a *Agent, o ObjectAddr, key PropertyKey, desc PropertyDescriptor) (bool, *ThrowCompletion)
	HasProperty       func(a *Agent, o ObjectAddr, key PropertyKey) (bool, *ThrowCompletion)
	Get               func(a *Agent, o ObjectAddr, key PropertyKey, receiver Value) (Value, *ThrowCompletion)
	Set               func(a *Agent, o ObjectAddr, key PropertyKey, v Value, receiver Value) (bool, *ThrowCompletion)
	Delete            func(a *Agent, o ObjectAddr, key PropertyKey) (bool, *ThrowCompletion)
	OwnPropertyKeys   func(a *Agent, o ObjectAddr) ([]PropertyKey, *ThrowCompletion)

	// Optional essential methods; nil when absent.
	Call      func(a *Agent, o ObjectAddr, this Value, args []Value) (Value, *ThrowCompletion)
	Construct func(a *Agent, o ObjectAddr, args []Value, newTarget ObjectAddr) (Value, *ThrowCompletion)
}

// OrdinaryInternalMethods is the default "ordinary object" vtable
// (ECMA-262 §10.1); exotic objects override individual entries while
// copying the rest, e.g. immutable-prototype objects only replace
// SetPrototypeOf (see realm.go).
var OrdinaryInternalMethods = InternalMethods{
	GetPrototypeOf:    OrdinaryGetPrototypeOf,
	SetPrototypeOf:    OrdinarySetPrototypeOf,
	IsExtensible:      OrdinaryIsExtensible,
	PreventExtensions: OrdinaryPreventExtensions,
	GetOwnProperty:    OrdinaryGetOwnProperty,
	DefineOwnProperty: OrdinaryDefineOwnProperty,
	HasProperty:       OrdinaryHasProperty,
	Get:               OrdinaryGet,
	Set:               OrdinarySet,
	Delete:            OrdinaryDelete,
	OwnPropertyKeys:   OrdinaryOwnPropertyKeys,
}

// Object is the open, dynamically-typed record described in ECMA-262
// §6.1.7: internal slots, an ordered own-property sequence, and a
// pointer to an internal-methods vtable.
type Object struct {
	Methods    *InternalMethods
	Slots      map[string]Value // [[Prototype]], [[Extensible]] surfaced via slots too for uniformity
	Prototype  Value            // object or null; mirrors Slots["Prototype"] for fast access
	Extensible bool
	props      []property // ordered; ECMA-262 §6.1.7.1 requires insertion-order enumeration
	propIndex  map[PropertyKey]int

	// Function-exotic slots (ECMA-262 §10.3's "Function" example).
	InitialName string
	Behaviour   NativeFunction
}

// NativeFunction is a host-defined Call implementation, used by the
// stubbed intrinsics (error constructors); see DESIGN.md.
type NativeFunction func(a *Agent, this Value, args []Value) (Value, *ThrowCompletion)

func newObject(proto Value) *Object {
	return &Object{
		Methods:    &OrdinaryInternalMethods,
		Slots:      map[string]Value{},
		Prototype:  proto,
		Extensible: true,
		propIndex:  map[PropertyKey]int{},
	}
}

func (o *Object) findOwn(key PropertyKey) (*property, bool) {
	idx, ok := o.propIndex[key]
	if !ok {
		return nil, false
	}
	return &o.props[idx], true
}

// setOwn inserts or overwrites the descriptor for key, preserving
// insertion order (Invariant 1: new keys are appended; re-inserts do not
// move).
func (o *Object) setOwn(key PropertyKey, desc PropertyDescriptor) {
	if idx, ok := o.propIndex[key]; ok {
		o.props[idx].desc = desc
		return
	}
	o.propIndex[key] = len(o.props)
	o.props = append(o.props, property{key: key, desc: desc})
}

func (o *Object) deleteOwn(key PropertyKey) {
	idx, ok := o.propIndex[key]
	if !ok {
		return
	}
	o.props = append(o.props[:idx], o.props[idx+1:]...)
	delete(o.propIndex, key)
	for k, i := range o.propIndex {
		if i > idx {
			o.propIndex[k] = i - 1
		}
	}
}

// orderedKeys returns own keys in the order Invariant 1 requires:
// ascending integer-index keys, then string keys in insertion order,
// then symbol keys in insertion order.
func (o *Object) orderedKeys() []PropertyKey {
	var indices []PropertyKey
	var strs []PropertyKey
	var syms []PropertyKey
	for _, p := range o.props {
		switch {
		case p.key.IsIndex():
			indices = append(indices, p.key)
		case p.key.IsSymbol():
			syms = append(syms, p.key)
		default:
			strs = append(strs, p.key)
		}
	}
	// ascending numeric order
	for i := 1; i < len(indices); i++ {
		j := i
		for j > 0 && indices[j-1].Index() > indices[j].Index() {
			indices[j-1], indices[j] = indices[j], indices[j-1]
			j--
		}
	}
	out := make([]PropertyKey, 0, len(indices)+len(strs)+len(syms))
	out = append(out, indices...)
	out = append(out, strs...)
	out = append(out, syms...)
	return out
}
