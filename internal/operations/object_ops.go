package operations

import "github.com/thegreatercurve/glyn-sub000/internal/runtime"

// Get implements Get(O, P).
func Get(a *runtime.Agent, addr runtime.ObjectAddr, key runtime.PropertyKey) (runtime.Value, *runtime.ThrowCompletion) {
	o := a.Object(addr)
	return o.Methods.Get(a, addr, key, runtime.Object(addr))
}

// Set implements Set(O, P, V, Throw).
func Set(a *runtime.Agent, addr runtime.ObjectAddr, key runtime.PropertyKey, v runtime.Value, throwOnFailure bool) *runtime.ThrowCompletion {
	o := a.Object(addr)
	ok, tc := o.Methods.Set(a, addr, key, v, runtime.Object(addr))
	if tc != nil {
		return tc
	}
	if !ok && throwOnFailure {
		return runtime.Throw(a.NewTypeError("cannot set property"))
	}
	return nil
}

// CreateDataProperty implements CreateDataProperty(O, P, V): a new
// writable/enumerable/configurable own data property.
func CreateDataProperty(a *runtime.Agent, addr runtime.ObjectAddr, key runtime.PropertyKey, v runtime.Value) (bool, *runtime.ThrowCompletion) {
	o := a.Object(addr)
	return o.Methods.DefineOwnProperty(a, addr, key, runtime.NewDataPropertyDescriptor(v, true, true, true))
}

// DefinePropertyOrThrow implements DefinePropertyOrThrow(O, P, desc).
func DefinePropertyOrThrow(a *runtime.Agent, addr runtime.ObjectAddr, key runtime.PropertyKey, desc runtime.PropertyDescriptor) *runtime.ThrowCompletion {
	o := a.Object(addr)
	ok, tc := o.Methods.DefineOwnProperty(a, addr, key, desc)
	if tc != nil {
		return tc
	}
	if !ok {
		return runtime.Throw(a.NewTypeError("cannot define property"))
	}
	return nil
}

// HasProperty implements HasProperty(O, P).
func HasProperty(a *runtime.Agent, addr runtime.ObjectAddr, key runtime.PropertyKey) (bool, *runtime.ThrowCompletion) {
	o := a.Object(addr)
	return o.Methods.HasProperty(a, addr, key)
}

// Call implements Call(F, V, argumentsList): IsCallable check then
// F.[[Call]](V, args).
func Call(a *runtime.Agent, f runtime.Value, this runtime.Value, args []runtime.Value) (runtime.Value, *runtime.ThrowCompletion) {
	if !IsCallable(a, f) {
		return runtime.Undefined, runtime.Throw(a.NewTypeError("value is not callable"))
	}
	return a.CallValue(f, this, args)
}

// Construct implements Construct(F, argumentsList, newTarget=F).
func Construct(a *runtime.Agent, f runtime.Value, args []runtime.Value, newTarget runtime.ObjectAddr) (runtime.Value, *runtime.ThrowCompletion) {
	if !IsConstructor(a, f) {
		return runtime.Undefined, runtime.Throw(a.NewTypeError("value is not a constructor"))
	}
	return a.ConstructValue(f, args, newTarget)
}

// SetIntegrityLevel implements SetIntegrityLevel(O, level) for
// level ∈ {"sealed", "frozen"} (ECMA-262 §7.3.16): sealed objects become
// non-extensible with every own property non-configurable; frozen
// objects additionally make data properties non-writable.
func SetIntegrityLevel(a *runtime.Agent, addr runtime.ObjectAddr, frozen bool) (bool, *runtime.ThrowCompletion) {
	o := a.Object(addr)
	if ok, tc := o.Methods.PreventExtensions(a, addr); tc != nil || !ok {
		return ok, tc
	}
	keys, tc := o.Methods.OwnPropertyKeys(a, addr)
	if tc != nil {
		return false, tc
	}
	for _, key := range keys {
		current, tc := o.Methods.GetOwnProperty(a, addr, key)
		if tc != nil {
			return false, tc
		}
		if current == nil {
			continue
		}
		desc := runtime.PropertyDescriptor{Configurable: false, HasConfigurable: true}
		if frozen && current.IsDataDescriptor() {
			desc.Writable, desc.HasWritable = false, true
		}
		ok, tc := o.Methods.DefineOwnProperty(a, addr, key, desc)
		if tc != nil {
			return false, tc
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// TestIntegrityLevel implements TestIntegrityLevel(O, level): the
// read-only counterpart to SetIntegrityLevel.
func TestIntegrityLevel(a *runtime.Agent, addr runtime.ObjectAddr, frozen bool) (bool, *runtime.ThrowCompletion) {
	o := a.Object(addr)
	ext, tc := o.Methods.IsExtensible(a, addr)
	if tc != nil {
		return false, tc
	}
	if ext {
		return false, nil
	}
	keys, tc := o.Methods.OwnPropertyKeys(a, addr)
	if tc != nil {
		return false, tc
	}
	for _, key := range keys {
		current, tc := o.Methods.GetOwnProperty(a, addr, key)
		if tc != nil {
			return false, tc
		}
		if current == nil || current.Configurable {
			return false, nil
		}
		if frozen && current.IsDataDescriptor() && current.Writable {
			return false, nil
		}
	}
	return true, nil
}
