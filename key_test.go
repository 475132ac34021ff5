package ambient

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyIdentity(t *testing.T) {
	t.Run("same name and type are equal", func(t *testing.T) {
		assert.True(t, NamedKey[int]("a").Equal(NamedKey[int]("a")))
		assert.True(t, NewKey[int]().Equal(NewKey[int]()))
	})

	t.Run("different names are distinct", func(t *testing.T) {
		assert.False(t, NamedKey[int]("a").Equal(NamedKey[int]("b")))
	})

	t.Run("named and unnamed are distinct", func(t *testing.T) {
		assert.False(t, NewKey[int]().Equal(NamedKey[int]("a")))
	})

	t.Run("empty name is the unnamed key", func(t *testing.T) {
		assert.True(t, NamedKey[int]("").Equal(NewKey[int]()))
	})

	t.Run("zero value is the unnamed key", func(t *testing.T) {
		var zero Key[int]
		assert.True(t, zero.Equal(NewKey[int]()))
		assert.Equal(t, reflect.TypeOf(0), zero.Type())
	})
}

func TestKeyAccessors(t *testing.T) {
	k := NamedKey[string]("region")
	assert.Equal(t, "region", k.Name())
	assert.Equal(t, reflect.TypeOf(""), k.Type())
	assert.Equal(t, "region<string>", k.String())

	u := NewKey[string]()
	assert.Empty(t, u.Name())
	assert.Equal(t, "<string>", u.String())
}

func TestKeyErasedIdentity(t *testing.T) {
	// Keys of different Go types never share an erased identity, even under
	// the same name.
	a := NamedKey[int]("a").normalized()
	b := NamedKey[string]("a").normalized()
	require.NotEqual(t, a, b)
}
