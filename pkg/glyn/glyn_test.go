package glyn

import (
	"testing"

	"github.com/thegreatercurve/glyn-sub000/internal/operations"
	"github.com/thegreatercurve/glyn-sub000/internal/runtime"
)

func runScript(t *testing.T, source string) (runtime.Value, error) {
	t.Helper()
	m, err := NewMachine()
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	return m.Run(source, "<test>")
}

func TestEndToEndScenarios(t *testing.T) {
	numberTests := []struct {
		name   string
		source string
		want   float64
	}{
		{"addition", "5 + 5", 10},
		{"precedence", "5 + 4 * 6", 29},
		{"right-associative exponent", "2 ** 2 ** 3", 256},
		{"unsigned right shift", "5 >>> 1", 2},
		{"shift chain", "3 << 4 >> 3", 6},
		{"identifier resolution completion value", "let x = 10; x + 5;", 15},
		{"unary-op composition", "-+-523", 523},
		{"bitwise and/or", "2 & 3 | 4", 6},
	}
	for _, tt := range numberTests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := runScript(t, tt.source)
			if err != nil {
				t.Fatalf("%q: unexpected error: %v", tt.source, err)
			}
			if !v.IsNumber() || v.AsNumber() != tt.want {
				t.Fatalf("%q: got %v, want Number %v", tt.source, v, tt.want)
			}
		})
	}

	boolTests := []struct {
		name   string
		source string
		want   bool
	}{
		{"negative zero strict equals positive zero", "-0 === +0", true},
		{"strict not-equal", "1 !== 2", true},
		{"loose equal", "1 == 1", true},
		{"typeof undefined", `typeof undefined === "undefined"`, true},
		{"logical not of zero", "!0 === true", true},
	}
	for _, tt := range boolTests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := runScript(t, tt.source)
			if err != nil {
				t.Fatalf("%q: unexpected error: %v", tt.source, err)
			}
			if !v.IsBoolean() || v.AsBoolean() != tt.want {
				t.Fatalf("%q: got %v, want Boolean %v", tt.source, v, tt.want)
			}
		})
	}
}

func TestTypeofUndefinedIdentifier(t *testing.T) {
	v, err := runScript(t, "typeof undefinedGlobal")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.IsString() || v.AsString() != "undefined" {
		t.Fatalf("got %v, want String \"undefined\"", v)
	}
}

func TestReadingUndeclaredIdentifierThrowsReferenceError(t *testing.T) {
	// Unlike typeof (above), a direct read of an unresolvable reference
	// must throw ReferenceError rather than silently yield undefined.
	_, err := runScript(t, "someUndeclared")
	if err == nil {
		t.Fatal("expected a ReferenceError for reading an undeclared identifier")
	}
	re, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("expected *RuntimeError, got %T", err)
	}
	if !re.Completion.Value.IsObject() {
		t.Fatalf("expected the thrown value to be an Error object, got %v", re.Completion.Value)
	}
	name, tc := operations.Get(re.Agent, re.Completion.Value.AsObject(), runtime.StringKey("name"))
	if tc != nil {
		t.Fatalf("unexpected throw reading .name: %v", tc)
	}
	if !name.IsString() || name.AsString() != "ReferenceError" {
		t.Fatalf("got error name %v, want \"ReferenceError\"", name)
	}
}

func TestUncaughtThrowOfNonErrorValue(t *testing.T) {
	_, err := runScript(t, "throw 1")
	if err == nil {
		t.Fatal("expected an error from an uncaught throw")
	}
	re, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("expected *RuntimeError, got %T", err)
	}
	if !re.Completion.Value.IsNumber() || re.Completion.Value.AsNumber() != 1 {
		t.Fatalf("expected thrown Number 1, got %v", re.Completion.Value)
	}
	// A non-Error-shaped thrown value must not be formatted as "Kind: msg".
	msg := FormatThrown(newMachine(t).agent, re.Completion.Value)
	if msg != "1" {
		t.Fatalf("expected the uncaught value's ToString, got %q", msg)
	}
}

func TestSyntaxErrorOnMalformedSource(t *testing.T) {
	_, err := runScript(t, "let = 1;")
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	if _, ok := err.(*SyntaxError); !ok {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}
}

func TestReferenceErrorOnUnresolvableAssignmentTarget(t *testing.T) {
	// ++ requires a Reference; a literal operand is an invalid
	// assignment target.
	_, err := runScript(t, "++5")
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	if _, ok := err.(*RuntimeError); !ok {
		t.Fatalf("expected *RuntimeError, got %T", err)
	}
}

func TestBindingsPersistAcrossRunsOnSameMachine(t *testing.T) {
	m, err := NewMachine()
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	if _, err := m.Run("let counter = 1;", "<test>"); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	v, err := m.Run("counter + 1;", "<test>")
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if !v.IsNumber() || v.AsNumber() != 2 {
		t.Fatalf("got %v, want Number 2", v)
	}
}

func newMachine(t *testing.T) *Machine {
	t.Helper()
	mm, err := NewMachine()
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	return mm
}
