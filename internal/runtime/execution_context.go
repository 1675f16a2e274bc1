package runtime

// ExecutionContext is a runtime frame (ECMA-262 §9.4): realm,
// script-or-module marker, and lexical/variable/private environments
// plus the currently running function.
type ExecutionContext struct {
	Realm               *Realm
	Function            ObjectAddr
	HasFunction         bool
	ScriptOrModule      string // source filename/"<eval>"/"<repl>"
	LexicalEnvironment  EnvAddr
	VariableEnvironment EnvAddr
	PrivateEnvironment  EnvAddr
	HasPrivateEnv       bool
}
