package operations

import (
	"strings"

	"github.com/thegreatercurve/glyn-sub000/internal/bytecode"
	"github.com/thegreatercurve/glyn-sub000/internal/parser"
	"github.com/thegreatercurve/glyn-sub000/internal/runtime"
)

// RunProgramHook runs program within ctx's realm/environment and returns
// its completion value. It is installed by package vm's init (operations
// cannot import vm directly: vm imports operations for the arithmetic/
// comparison/conversion helpers its dispatch loop needs, so the
// dependency must run the other way — the same function-variable
// wiring runtime.ToObjectHook uses to break its own cycle with this
// package).
var RunProgramHook func(a *runtime.Agent, program *bytecode.ExecutableProgram, ctx *runtime.ExecutionContext) (runtime.Value, bool, *runtime.ThrowCompletion)

// ParseText implements ParseText(sourceText): lex + parse into an
// ExecutableProgram, or the parser's accumulated syntax errors.
func ParseText(source string) (*bytecode.ExecutableProgram, []string) {
	p := parser.New(source)
	program := p.ParseScript()
	return program, p.Errors()
}

// ScriptRecord is the ParseScript result (ECMA-262 §16.1.5).
type ScriptRecord struct {
	Realm          *runtime.Realm
	EcmascriptCode *bytecode.ExecutableProgram
	HostDefined    string
}

// ParseScript implements ParseScript(sourceText, realm, hostDefined):
// ParseText, then wrap in a ScriptRecord, or return the formatted syntax
// error.
func ParseScript(source string, realm *runtime.Realm, hostDefined string) (*ScriptRecord, error) {
	program, errs := ParseText(source)
	if len(errs) > 0 {
		return nil, &syntaxErrors{messages: errs}
	}
	return &ScriptRecord{Realm: realm, EcmascriptCode: program, HostDefined: hostDefined}, nil
}

type syntaxErrors struct {
	messages []string
}

func (e *syntaxErrors) Error() string {
	return "SyntaxError: " + strings.Join(e.messages, "; ")
}

// ScriptEvaluation implements ScriptEvaluation(scriptRecord): build a
// script execution context (lexicalEnv = variableEnv = globalEnv), push
// it, run GlobalDeclarationInstantiation, then run the VM over the
// bytecode; pop the context; return the completion value (default
// undefined).
func ScriptEvaluation(a *runtime.Agent, record *ScriptRecord) (runtime.Value, *runtime.ThrowCompletion) {
	realm := record.Realm
	ctx := &runtime.ExecutionContext{
		Realm:               realm,
		ScriptOrModule:      record.HostDefined,
		LexicalEnvironment:  realm.GlobalEnv,
		VariableEnvironment: realm.GlobalEnv,
	}
	a.PushExecutionContext(ctx)
	defer a.PopExecutionContext()

	globalEnv := a.Env(realm.GlobalEnv)
	if tc := GlobalDeclarationInstantiation(a, record.EcmascriptCode, globalEnv); tc != nil {
		return runtime.Undefined, tc
	}

	if RunProgramHook == nil {
		return runtime.Undefined, runtime.Throw(a.NewTypeError("no VM installed"))
	}
	value, hasValue, tc := RunProgramHook(a, record.EcmascriptCode, ctx)
	if tc != nil {
		return runtime.Undefined, tc
	}
	if !hasValue {
		return runtime.Undefined, nil
	}
	return value, nil
}

// GlobalDeclarationInstantiation implements ECMA-262 §16.1.7's
// GlobalDeclarationInstantiation(script, env): scan the identifier pool;
// reject duplicate lexical declarations with SyntaxError; create an
// immutable binding per const name (strict=true) and a mutable,
// non-deletable binding per let name; var/function declarations mirror
// this via the global object record.
func GlobalDeclarationInstantiation(a *runtime.Agent, program *bytecode.ExecutableProgram, env *runtime.Environment) *runtime.ThrowCompletion {
	declaredLexical := map[string]bool{}
	for _, id := range program.Identifiers {
		if id.Kind == bytecode.DeclVar || id.Kind == bytecode.RefIdentifier {
			continue
		}
		if declaredLexical[id.Name] {
			return runtime.Throw(a.NewSyntaxError("Identifier '" + id.Name + "' has already been declared"))
		}
		has, tc := env.HasBinding(a, id.Name)
		if tc != nil {
			return tc
		}
		if has {
			return runtime.Throw(a.NewSyntaxError("Identifier '" + id.Name + "' has already been declared"))
		}
		declaredLexical[id.Name] = true
	}
	for _, id := range program.Identifiers {
		switch id.Kind {
		case bytecode.DeclConst:
			env.CreateImmutableBinding(id.Name, true)
		case bytecode.DeclLet:
			if err := env.CreateMutableBinding(a, id.Name, false); err != nil {
				return err
			}
		case bytecode.DeclVar:
			if err := env.CreateGlobalVarBinding(a, id.Name, false); err != nil {
				return err
			}
		}
	}
	return nil
}
