package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureInterning(t *testing.T) {
	sig := NewSignature()
	a, err := sig.AddComponent("client")
	require.NoError(t, err)
	b, err := sig.AddComponent("server")
	require.NoError(t, err)
	again, err := sig.AddComponent("client")
	require.NoError(t, err)

	assert.Equal(t, a, again)
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, sig.NumComponents())
	assert.Equal(t, []string{"client", "server"}, sig.ComponentNames())

	id, ok := sig.ComponentID("server")
	require.True(t, ok)
	assert.Equal(t, b, id)
}

func TestSignatureNormalizesNames(t *testing.T) {
	sig := NewSignature()
	// "é" composed (U+00E9) vs decomposed (e followed by U+0301).
	composed, err := sig.AddComponent("caf\u00e9")
	require.NoError(t, err)
	decomposed, err := sig.AddComponent("cafe\u0301")
	require.NoError(t, err)
	assert.Equal(t, composed, decomposed)
	assert.Equal(t, 1, sig.NumComponents())
}

func TestSignatureRejectsEmptyNames(t *testing.T) {
	sig := NewSignature()
	_, err := sig.AddComponent("   ")
	assert.Error(t, err)
	_, err = sig.AddMessage("")
	assert.Error(t, err)
}

func TestFormatMultiaction(t *testing.T) {
	sig := NewSignature()
	a, _ := sig.AddComponent("a")
	b, _ := sig.AddComponent("b")
	m := Mult(
		Action{Component: b, Direction: Reception},
		Action{Component: a, Direction: Emission},
	)
	assert.Equal(t, "{a!,b?}", sig.FormatMultiaction(m))
}

func TestComponentNamePlaceholder(t *testing.T) {
	sig := NewSignature()
	assert.Equal(t, "c7", sig.ComponentName(7))
}
