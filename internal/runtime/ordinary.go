package runtime

// This file implements the ordinary-object internal methods, grounded
// in ECMA-262 §10.1. ValidateAndApplyPropertyDescriptor (here
// OrdinaryDefineOwnProperty) is the most intricate algorithm in the
// substrate.

// OrdinaryGetPrototypeOf returns [[Prototype]].
func OrdinaryGetPrototypeOf(a *Agent, addr ObjectAddr) (Value, *ThrowCompletion) {
	return a.Object(addr).Prototype, nil
}

// OrdinarySetPrototypeOf implements OrdinarySetPrototypeOf(V): accept if
// V is already the current prototype; reject if non-extensible; walk V's
// prototype chain looking for a cycle back to this object (reject) or a
// non-ordinary GetPrototypeOf (stop walking, accept).
func OrdinarySetPrototypeOf(a *Agent, addr ObjectAddr, v Value) (bool, *ThrowCompletion) {
	o := a.Object(addr)
	if SameValue(v, o.Prototype) {
		return true, nil
	}
	if !o.Extensible {
		return false, nil
	}
	p := v
	for {
		if p.IsNull() {
			break
		}
		if !p.IsObject() {
			break
		}
		if p.AsObject() == addr {
			return false, nil
		}
		target := a.Object(p.AsObject())
		if target.Methods.GetPrototypeOf == nil {
			break
		}
		// Stop early for exotic GetPrototypeOf implementations (ECMA-262
		// §10.1.2.1): only continue walking ordinary chains.
		isOrdinary := target.Methods == &OrdinaryInternalMethods || target.Methods.GetPrototypeOf == nil
		if !isOrdinary {
			break
		}
		next, tc := target.Methods.GetPrototypeOf(a, p.AsObject())
		if tc != nil {
			return false, tc
		}
		p = next
	}
	o.Prototype = v
	return true, nil
}

func OrdinaryIsExtensible(a *Agent, addr ObjectAddr) (bool, *ThrowCompletion) {
	return a.Object(addr).Extensible, nil
}

func OrdinaryPreventExtensions(a *Agent, addr ObjectAddr) (bool, *ThrowCompletion) {
	a.Object(addr).Extensible = false
	return true, nil
}

// OrdinaryGetOwnProperty locates an own property and returns a fresh
// descriptor snapshot (data or accessor shape), or nil if absent.
func OrdinaryGetOwnProperty(a *Agent, addr ObjectAddr, key PropertyKey) (*PropertyDescriptor, *ThrowCompletion) {
	p, ok := a.Object(addr).findOwn(key)
	if !ok {
		return nil, nil
	}
	d := p.desc
	return &d, nil
}

// OrdinaryDefineOwnProperty = ValidateAndApplyPropertyDescriptor applied
// to an own property of addr.
func OrdinaryDefineOwnProperty(a *Agent, addr ObjectAddr, key PropertyKey, desc PropertyDescriptor) (bool, *ThrowCompletion) {
	current, tc := OrdinaryGetOwnProperty(a, addr, key)
	if tc != nil {
		return false, tc
	}
	extensible := a.Object(addr).Extensible
	ok := ValidateAndApplyPropertyDescriptor(a, addr, key, extensible, desc, current)
	return ok, nil
}

// ValidateAndApplyPropertyDescriptor is ECMA-262's
// ValidateAndApplyPropertyDescriptor (§10.1.6.3), the gate every
// property mutation passes through. addr may be
// NoObject when only validating without applying (not used in this
// implementation, but kept for fidelity with the algorithm's signature).
func ValidateAndApplyPropertyDescriptor(a *Agent, addr ObjectAddr, key PropertyKey, extensible bool, desc PropertyDescriptor, current *PropertyDescriptor) bool {
	if current == nil {
		if !extensible {
			return false
		}
		if addr == NoObject {
			return true
		}
		fresh := desc
		if fresh.IsGenericDescriptor() || fresh.IsDataDescriptor() {
			if !fresh.HasValue {
				fresh.Value = Undefined
				fresh.HasValue = true
			}
			if !fresh.HasWritable {
				fresh.HasWritable = true
			}
		} else {
			if !fresh.HasGet {
				fresh.Get = Undefined
				fresh.HasGet = true
			}
			if !fresh.HasSet {
				fresh.Set = Undefined
				fresh.HasSet = true
			}
		}
		if !fresh.HasEnumerable {
			fresh.HasEnumerable = true
		}
		if !fresh.HasConfigurable {
			fresh.HasConfigurable = true
		}
		a.Object(addr).setOwn(key, fresh)
		return true
	}

	if !desc.HasValue && !desc.HasWritable && !desc.HasGet && !desc.HasSet &&
		!desc.HasEnumerable && !desc.HasConfigurable {
		return true // no fields present: nothing to validate
	}

	if !current.Configurable {
		if desc.HasConfigurable && desc.Configurable {
			return false
		}
		if desc.HasEnumerable && desc.Enumerable != current.Enumerable {
			return false
		}
		if !desc.IsGenericDescriptor() {
			if desc.IsAccessorDescriptor() != current.IsAccessorDescriptor() {
				return false
			}
			if current.IsAccessorDescriptor() {
				if desc.HasGet && !sameValueOrUndefined(desc.Get, desc.HasGet, current.Get) {
					return false
				}
				if desc.HasSet && !sameValueOrUndefined(desc.Set, desc.HasSet, current.Set) {
					return false
				}
			} else {
				if !current.Writable {
					if desc.HasWritable && desc.Writable {
						return false
					}
					if desc.HasValue && !SameValue(desc.Value, current.Value) {
						return false
					}
				}
			}
		}
	}

	if addr == NoObject {
		return true
	}

	merged := *current
	if current.IsDataDescriptor() && desc.IsAccessorDescriptor() {
		merged = PropertyDescriptor{
			HasGet: true, Get: Undefined,
			HasSet: true, Set: Undefined,
			HasEnumerable: true, Enumerable: current.Enumerable,
			HasConfigurable: true, Configurable: current.Configurable,
		}
	} else if current.IsAccessorDescriptor() && desc.IsDataDescriptor() {
		merged = PropertyDescriptor{
			HasValue: true, Value: Undefined,
			HasWritable: true, Writable: false,
			HasEnumerable: true, Enumerable: current.Enumerable,
			HasConfigurable: true, Configurable: current.Configurable,
		}
	}
	if desc.HasValue {
		merged.Value, merged.HasValue = desc.Value, true
	}
	if desc.HasWritable {
		merged.Writable, merged.HasWritable = desc.Writable, true
	}
	if desc.HasGet {
		merged.Get, merged.HasGet = desc.Get, true
	}
	if desc.HasSet {
		merged.Set, merged.HasSet = desc.Set, true
	}
	if desc.HasEnumerable {
		merged.Enumerable, merged.HasEnumerable = desc.Enumerable, true
	}
	if desc.HasConfigurable {
		merged.Configurable, merged.HasConfigurable = desc.Configurable, true
	}
	a.Object(addr).setOwn(key, merged)
	return true
}

func sameValueOrUndefined(v Value, has bool, cur Value) bool {
	if !has {
		return true
	}
	return SameValue(v, cur)
}

// OrdinaryHasProperty walks own-then-prototype chain.
func OrdinaryHasProperty(a *Agent, addr ObjectAddr, key PropertyKey) (bool, *ThrowCompletion) {
	o := a.Object(addr)
	if _, ok := o.findOwn(key); ok {
		return true, nil
	}
	protoVal := o.Prototype
	if protoVal.IsNull() {
		return false, nil
	}
	proto := a.Object(protoVal.AsObject())
	return proto.Methods.HasProperty(a, protoVal.AsObject(), key)
}

// OrdinaryGet reads own descriptor: data returns its value; accessor
// calls the getter with Receiver; otherwise walks the prototype.
func OrdinaryGet(a *Agent, addr ObjectAddr, key PropertyKey, receiver Value) (Value, *ThrowCompletion) {
	o := a.Object(addr)
	if p, ok := o.findOwn(key); ok {
		if p.desc.IsAccessorDescriptor() {
			if p.desc.Get.IsUndefined() {
				return Undefined, nil
			}
			return a.CallValue(p.desc.Get, receiver, nil)
		}
		return p.desc.Value, nil
	}
	if o.Prototype.IsNull() {
		return Undefined, nil
	}
	protoAddr := o.Prototype.AsObject()
	proto := a.Object(protoAddr)
	return proto.Methods.Get(a, protoAddr, key, receiver)
}

// OrdinarySet implements OrdinarySet / OrdinarySetWithOwnDescriptor: the
// data-on-receiver vs accessor vs create-on-receiver flow from
// ECMA-262 §10.1.9.
func OrdinarySet(a *Agent, addr ObjectAddr, key PropertyKey, v Value, receiver Value) (bool, *ThrowCompletion) {
	o := a.Object(addr)
	own, ok := o.findOwn(key)
	if !ok {
		if !o.Prototype.IsNull() {
			protoAddr := o.Prototype.AsObject()
			proto := a.Object(protoAddr)
			return proto.Methods.Set(a, protoAddr, key, v, receiver)
		}
		own = &property{key: key, desc: NewDataPropertyDescriptor(Undefined, true, true, true)}
	}
	desc := own.desc
	if desc.IsDataDescriptor() {
		if !desc.Writable {
			return false, nil
		}
		if !receiver.IsObject() {
			return false, nil
		}
		recvAddr := receiver.AsObject()
		existing, tc := a.Object(recvAddr).Methods.GetOwnProperty(a, recvAddr, key)
		if tc != nil {
			return false, tc
		}
		if existing != nil {
			if existing.IsAccessorDescriptor() {
				return false, nil
			}
			if !existing.Writable {
				return false, nil
			}
			valueDesc := PropertyDescriptor{Value: v, HasValue: true}
			return a.Object(recvAddr).Methods.DefineOwnProperty(a, recvAddr, key, valueDesc)
		}
		return a.Object(recvAddr).Methods.DefineOwnProperty(a, recvAddr, key, NewDataPropertyDescriptor(v, true, true, true))
	}
	if desc.Set.IsUndefined() {
		return false, nil
	}
	_, tc := a.CallValue(desc.Set, receiver, []Value{v})
	if tc != nil {
		return false, tc
	}
	return true, nil
}

// OrdinaryDelete fails if the property is non-configurable; otherwise
// removes it.
func OrdinaryDelete(a *Agent, addr ObjectAddr, key PropertyKey) (bool, *ThrowCompletion) {
	o := a.Object(addr)
	p, ok := o.findOwn(key)
	if !ok {
		return true, nil
	}
	if !p.desc.Configurable {
		return false, nil
	}
	o.deleteOwn(key)
	return true, nil
}

// OrdinaryOwnPropertyKeys returns keys ordered per Invariant 1.
func OrdinaryOwnPropertyKeys(a *Agent, addr ObjectAddr) ([]PropertyKey, *ThrowCompletion) {
	return a.Object(addr).orderedKeys(), nil
}

// SetImmutablePrototype is the [[SetPrototypeOf]] override for
// immutable-prototype exotic objects (ECMA-262 §10.4.7.2): succeeds
// only if v is already the current prototype.
func SetImmutablePrototype(a *Agent, addr ObjectAddr, v Value) (bool, *ThrowCompletion) {
	return SameValue(v, a.Object(addr).Prototype), nil
}
