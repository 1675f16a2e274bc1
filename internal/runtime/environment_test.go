package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclarativeEnvironmentBindingLifecycle(t *testing.T) {
	a := NewAgent()
	outer := a.AllocateEnvironment(NewDeclarativeEnvironment(NoEnv))
	envAddr := a.AllocateEnvironment(NewDeclarativeEnvironment(outer))
	env := a.Env(envAddr)

	has, tc := env.HasBinding(a, "x")
	require.Nil(t, tc)
	assert.False(t, has, "binding must not exist before it is created")

	env.CreateMutableBinding(a, "x", false)
	has, tc = env.HasBinding(a, "x")
	require.Nil(t, tc)
	assert.True(t, has)

	// Reading before InitializeBinding must fail: value is still ∅.
	_, tc = env.GetBindingValue(a, "x", true)
	require.NotNil(t, tc, "uninitialized binding must throw a ReferenceError on read")

	require.Nil(t, env.InitializeBinding(a, "x", Number(7)))
	v, tc := env.GetBindingValue(a, "x", true)
	require.Nil(t, tc)
	assert.True(t, v.IsNumber())
	assert.Equal(t, float64(7), v.AsNumber())
}

func TestDeclarativeEnvironmentImmutableBindingRejectsAssignment(t *testing.T) {
	a := NewAgent()
	envAddr := a.AllocateEnvironment(NewDeclarativeEnvironment(NoEnv))
	env := a.Env(envAddr)

	env.CreateImmutableBinding("x", true)
	require.Nil(t, env.InitializeBinding(a, "x", Number(1)))

	tc := env.SetMutableBinding(a, "x", Number(2), true)
	require.NotNil(t, tc, "assigning to a const binding in strict mode must throw TypeError")
}

func TestSetMutableBindingOnUndeclaredNameCreatesBindingOutsideStrict(t *testing.T) {
	a := NewAgent()
	envAddr := a.AllocateEnvironment(NewDeclarativeEnvironment(NoEnv))
	env := a.Env(envAddr)

	require.Nil(t, env.SetMutableBinding(a, "y", Number(1), false))
	v, tc := env.GetBindingValue(a, "y", false)
	require.Nil(t, tc)
	assert.Equal(t, float64(1), v.AsNumber())
}

func TestSetMutableBindingOnUndeclaredNameThrowsInStrictMode(t *testing.T) {
	a := NewAgent()
	envAddr := a.AllocateEnvironment(NewDeclarativeEnvironment(NoEnv))
	env := a.Env(envAddr)

	tc := env.SetMutableBinding(a, "y", Number(1), true)
	require.NotNil(t, tc)
}

func TestDeleteBindingHonorsDeletableFlag(t *testing.T) {
	a := NewAgent()
	envAddr := a.AllocateEnvironment(NewDeclarativeEnvironment(NoEnv))
	env := a.Env(envAddr)

	env.CreateMutableBinding(a, "x", false) // deletable=false
	ok, tc := env.DeleteBinding(a, "x")
	require.Nil(t, tc)
	assert.False(t, ok, "a non-deletable binding must refuse deletion")

	env.CreateMutableBinding(a, "z", true) // deletable=true
	ok, tc = env.DeleteBinding(a, "z")
	require.Nil(t, tc)
	assert.True(t, ok)
	has, _ := env.HasBinding(a, "z")
	assert.False(t, has)
}
