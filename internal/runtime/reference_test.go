package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBindingWalksOuterChain(t *testing.T) {
	a := NewAgent()
	outerAddr := a.AllocateEnvironment(NewDeclarativeEnvironment(NoEnv))
	outer := a.Env(outerAddr)
	outer.CreateMutableBinding(a, "x", false)
	require.Nil(t, outer.InitializeBinding(a, "x", Number(99)))

	innerAddr := a.AllocateEnvironment(NewDeclarativeEnvironment(outerAddr))

	ref, tc := ResolveBinding(a, innerAddr, "x")
	require.Nil(t, tc)
	assert.False(t, ref.IsUnresolvableReference())

	v, tc := GetValue(a, ref)
	require.Nil(t, tc)
	assert.Equal(t, float64(99), v.AsNumber())
}

func TestResolveBindingUnresolvableForUnknownName(t *testing.T) {
	a := NewAgent()
	envAddr := a.AllocateEnvironment(NewDeclarativeEnvironment(NoEnv))

	ref, tc := ResolveBinding(a, envAddr, "neverDeclared")
	require.Nil(t, tc)
	assert.True(t, ref.IsUnresolvableReference())

	_, tc = GetValue(a, ref)
	require.NotNil(t, tc, "GetValue on an unresolvable reference must throw ReferenceError")
}

func TestPutValueOnUnresolvableNonStrictReferenceCreatesGlobalProperty(t *testing.T) {
	a := NewAgent()
	realm, tc := a.InitializeHostDefinedRealm() // already pushes the realm's execution context
	require.Nil(t, tc)

	ref := Reference{BaseKind: BaseUnresolvable, ReferencedName: "implicitGlobal", Strict: false}
	require.Nil(t, PutValue(a, ref, Number(5)))

	env := a.Env(realm.GlobalEnv)
	v, tc := env.GetBindingValue(a, "implicitGlobal", false)
	require.Nil(t, tc)
	assert.Equal(t, float64(5), v.AsNumber())
}

func TestInitializeReferencedBindingStoresValueOnEnvironmentBase(t *testing.T) {
	a := NewAgent()
	envAddr := a.AllocateEnvironment(NewDeclarativeEnvironment(NoEnv))
	env := a.Env(envAddr)
	env.CreateMutableBinding(a, "x", false)

	ref := Reference{BaseKind: BaseEnvironment, BaseEnv: envAddr, ReferencedName: "x", Strict: true}
	require.Nil(t, InitializeReferencedBinding(a, ref, Number(3)))

	v, tc := env.GetBindingValue(a, "x", true)
	require.Nil(t, tc)
	assert.Equal(t, float64(3), v.AsNumber())
}
