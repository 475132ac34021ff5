package ambientctx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/ambient"
	"github.com/vk/ambient/ambientctx"
)

func TestWithScope(t *testing.T) {
	scope := ambient.NewScope()
	ctx := ambientctx.WithScope(context.Background(), scope)

	got, ok := ambientctx.FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, scope, got)
	assert.Same(t, scope, ambientctx.Scope(ctx))
}

func TestFromContextMissing(t *testing.T) {
	_, ok := ambientctx.FromContext(context.Background())
	assert.False(t, ok)
	assert.Nil(t, ambientctx.Scope(context.Background()))
}

func TestResolveThroughContext(t *testing.T) {
	reg := ambient.NewRegistry()
	ambient.MustRegisterDefault(reg, func() int { return 8 })
	scope := ambient.NewScope(ambient.WithRegistry(reg))
	ctx := ambientctx.WithScope(context.Background(), scope)
	key := ambient.NamedKey[int]("workers")

	v, err := ambientctx.Resolve(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 8, v, "default applies when unbound")

	err = ambient.With(scope, key, 2, func() error {
		v, err := ambientctx.Resolve(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, 2, v)
		return nil
	})
	require.NoError(t, err)
}

func TestWith(t *testing.T) {
	key := ambient.NamedKey[string]("region")

	t.Run("installs a scope when none is attached", func(t *testing.T) {
		err := ambientctx.With(context.Background(), key, "eu-west-1", func(ctx context.Context) error {
			require.NotNil(t, ambientctx.Scope(ctx))
			v, err := ambientctx.Resolve(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, "eu-west-1", v)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("reuses and restores an attached scope", func(t *testing.T) {
		scope := ambient.NewScope(ambient.WithRegistry(ambient.NewRegistry()))
		ctx := ambientctx.WithScope(context.Background(), scope)

		err := ambientctx.With(ctx, key, "us-east-1", func(ctx context.Context) error {
			assert.Same(t, scope, ambientctx.Scope(ctx))

			return ambientctx.With(ctx, key, "eu-west-1", func(ctx context.Context) error {
				v, err := ambientctx.Resolve(ctx, key)
				require.NoError(t, err)
				assert.Equal(t, "eu-west-1", v, "inner binding shadows outer")
				return nil
			})
		})
		require.NoError(t, err)

		assert.Equal(t, 0, scope.Len(), "no binding survives the calls that created it")
		_, err = ambientctx.Resolve(ctx, key)
		var missing *ambient.MissingParameterError
		assert.ErrorAs(t, err, &missing)
	})

	t.Run("releases on panic", func(t *testing.T) {
		scope := ambient.NewScope(ambient.WithRegistry(ambient.NewRegistry()))
		ctx := ambientctx.WithScope(context.Background(), scope)

		require.Panics(t, func() {
			_ = ambientctx.With(ctx, key, "eu-west-1", func(ctx context.Context) error {
				panic("boom")
			})
		})
		assert.Equal(t, 0, scope.Len())
	})
}
