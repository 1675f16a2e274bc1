package runtime

// ThrowCompletion is the abrupt half of a CompletionRecord (ECMA-262
// §6.2.4): every abstract operation that can fail returns one as an
// additional return value (nil on success) — an explicit
// result-carrying return type in place of panics, with one shortcut
// propagation idiom (every caller forwards throws immediately). Normal completions need no wrapper
// type: a function's ordinary return value already carries them, with
// the "empty" sentinel represented by Go's zero Value plus a bool where
// the distinction matters (see ScriptEvaluation).
type ThrowCompletion struct {
	Value Value
}

// Throw constructs a ThrowCompletion carrying v.
func Throw(v Value) *ThrowCompletion {
	return &ThrowCompletion{Value: v}
}

// Error implements the error interface so a *ThrowCompletion can be
// returned and checked the way Go errors are, while still carrying the
// full thrown JSValue for catch semantics (when added).
func (t *ThrowCompletion) Error() string {
	if t == nil {
		return "<nil throw completion>"
	}
	return "uncaught exception"
}
