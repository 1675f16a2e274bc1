// Package glyn is the embeddable public API: it wires
// internal/parser's lexer-fed, single-pass parser through
// internal/operations's ParseScript/ScriptEvaluation abstract
// operations and internal/vm's bytecode dispatch loop into one
// Run/Eval call, the way cmd/dwscript/cmd/run.go wires go-dws's
// lexer/parser/semantic/interp pipeline inline rather than through a
// separate facade package (this repo's retrieval pack carries no
// pkg/dwscript implementation to port directly).
package glyn

import (
	"fmt"
	"io"

	"github.com/thegreatercurve/glyn-sub000/internal/operations"
	"github.com/thegreatercurve/glyn-sub000/internal/runtime"
	"github.com/thegreatercurve/glyn-sub000/internal/vm"
)

// Machine is one embeddable engine instance: an Agent plus the host
// realm it was initialized with. Scripts run against the same Machine
// share globals, mirroring one Agent/Realm per process the way
// cmd/dwscript's interpreter is constructed once per run invocation.
type Machine struct {
	agent *runtime.Agent
	realm *runtime.Realm
}

// NewMachine allocates an Agent and initializes its host-defined realm
// (ECMA-262 §9.6's InitializeHostDefinedRealm): a global object, a
// global environment, and the minimal default global bindings
// (undefined/NaN/Infinity plus the realm's intrinsics).
func NewMachine() (*Machine, error) {
	a := runtime.NewAgent()
	realm, tc := a.InitializeHostDefinedRealm()
	if tc != nil {
		return nil, &RuntimeError{Agent: a, Completion: tc}
	}
	return &Machine{agent: a, realm: realm}, nil
}

// SetOutput redirects where the non-standard `print(expr)` debug
// statement writes (internal/vm.Output), mirroring the teacher VM's
// injectable io.Writer (internal/bytecode/vm.go's NewVMWithOutput).
func SetOutput(w io.Writer) {
	vm.Output = w
}

// Run parses and evaluates source as a Script (ECMA-262 §16.1) against
// m's realm, returning its completion value (the value of the last
// evaluated expression statement) or a *SyntaxError / *RuntimeError.
func (m *Machine) Run(source, filename string) (runtime.Value, error) {
	record, err := operations.ParseScript(source, m.realm, filename)
	if err != nil {
		return runtime.Value{}, &SyntaxError{Err: err}
	}
	value, tc := operations.ScriptEvaluation(m.agent, record)
	if tc != nil {
		return runtime.Value{}, &RuntimeError{Agent: m.agent, Completion: tc}
	}
	return value, nil
}

// Agent exposes the underlying Agent for callers that need direct
// abstract-operation access (e.g. printing a completion value).
func (m *Machine) Agent() *runtime.Agent {
	return m.agent
}

// SyntaxError wraps a script's accumulated lex/parse failures
// (internal/operations.ParseScript's []string error messages, each
// already source-position-prefixed by internal/parser's errorf).
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string { return e.Err.Error() }
func (e *SyntaxError) Unwrap() error { return e.Err }

// RuntimeError wraps an uncaught ThrowCompletion escaping
// ScriptEvaluation, formatted the way a JS engine's CLI reports an
// uncaught exception: "<Name>: <message>" when the thrown value is an
// Error-shaped object, otherwise its ToString.
type RuntimeError struct {
	Agent      *runtime.Agent
	Completion *runtime.ThrowCompletion
}

func (e *RuntimeError) Error() string {
	return FormatThrown(e.Agent, e.Completion.Value)
}

// FormatValue renders a successful completion value for display
// (REPL echo, `glyn run`'s printed result): ToString, the same
// coercion the non-standard `print(expr)` statement uses.
func FormatValue(a *runtime.Agent, v runtime.Value) (string, error) {
	s, tc := operations.ToString(a, v)
	if tc != nil {
		return "", &RuntimeError{Agent: a, Completion: tc}
	}
	return s, nil
}

// FormatThrown renders a thrown value as a CLI would report an
// uncaught exception: Error-shaped objects (those with own `name` and
// `message` string properties) print as "Name: message"; everything
// else falls back to ToString, with a conversion failure itself
// reported rather than swallowed.
func FormatThrown(a *runtime.Agent, v runtime.Value) string {
	if v.IsObject() {
		addr := v.AsObject()
		name, nameTC := operations.Get(a, addr, runtime.StringKey("name"))
		message, msgTC := operations.Get(a, addr, runtime.StringKey("message"))
		if nameTC == nil && msgTC == nil && name.IsString() {
			msg := ""
			if message.IsString() {
				msg = message.AsString()
			}
			return fmt.Sprintf("%s: %s", name.AsString(), msg)
		}
	}
	s, tc := operations.ToString(a, v)
	if tc != nil {
		return "uncaught exception (and it could not be stringified)"
	}
	return s
}
