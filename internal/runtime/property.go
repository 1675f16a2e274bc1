package runtime

// PropertyKey is either a string, a symbol, or an array-index form
// derived from a canonical numeric string (ECMA-262 §6.1.7).
type PropertyKey struct {
	isSymbol bool
	isIndex  bool
	str      string
	sym      *Symbol
	index    uint32
}

func StringKey(s string) PropertyKey {
	if idx, ok := CanonicalNumericIndexString(s); ok {
		return PropertyKey{isIndex: true, index: idx, str: s}
	}
	return PropertyKey{str: s}
}

func SymbolKey(s *Symbol) PropertyKey {
	return PropertyKey{isSymbol: true, sym: s}
}

func (k PropertyKey) IsSymbol() bool  { return k.isSymbol }
func (k PropertyKey) IsIndex() bool   { return !k.isSymbol && k.isIndex }
func (k PropertyKey) String() string  { return k.str }
func (k PropertyKey) Symbol() *Symbol { return k.sym }
func (k PropertyKey) Index() uint32   { return k.index }

// Equal reports whether two property keys refer to the same slot.
func (k PropertyKey) Equal(o PropertyKey) bool {
	if k.isSymbol != o.isSymbol {
		return false
	}
	if k.isSymbol {
		return k.sym == o.sym
	}
	return k.str == o.str
}

// CanonicalNumericIndexString implements the ECMA-262
// CanonicalNumericIndexString abstract operation, reporting whether s is
// the canonical decimal string form of a non-negative array index (no
// leading zeros except "0" itself, no sign, no fraction).
func CanonicalNumericIndexString(s string) (uint32, bool) {
	if s == "" {
		return 0, false
	}
	if s == "0" {
		return 0, true
	}
	if s[0] < '1' || s[0] > '9' {
		return 0, false
	}
	var n uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + uint64(c-'0')
		if n > 0xFFFFFFFF {
			return 0, false
		}
	}
	return uint32(n), true
}

// PropertyDescriptor models all six optional fields exactly, preserving
// the "field presence vs explicit undefined" distinction ECMA-262
// §6.2.6 calls out as governing ValidateAndApplyPropertyDescriptor.
type PropertyDescriptor struct {
	Value        Value
	HasValue     bool
	Get          Value
	HasGet       bool
	Set          Value
	HasSet       bool
	Writable     bool
	HasWritable  bool
	Enumerable   bool
	HasEnumerable bool
	Configurable bool
	HasConfigurable bool
}

// IsAccessorDescriptor reports whether Get or Set is present.
func (d PropertyDescriptor) IsAccessorDescriptor() bool {
	return d.HasGet || d.HasSet
}

// IsDataDescriptor reports whether Value or Writable is present.
func (d PropertyDescriptor) IsDataDescriptor() bool {
	return d.HasValue || d.HasWritable
}

// IsGenericDescriptor reports whether neither accessor nor data fields
// are present.
func (d PropertyDescriptor) IsGenericDescriptor() bool {
	return !d.IsAccessorDescriptor() && !d.IsDataDescriptor()
}

// NewDataPropertyDescriptor builds a complete data descriptor — the
// common case used by CreateDataProperty / DefinePropertyOrThrow.
func NewDataPropertyDescriptor(value Value, writable, enumerable, configurable bool) PropertyDescriptor {
	return PropertyDescriptor{
		Value: value, HasValue: true,
		Writable: writable, HasWritable: true,
		Enumerable: enumerable, HasEnumerable: true,
		Configurable: configurable, HasConfigurable: true,
	}
}

// property is a single own-property slot: a key plus its descriptor.
type property struct {
	key  PropertyKey
	desc PropertyDescriptor
}
