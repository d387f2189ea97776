package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/focusdo/internal/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profile struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

func TestService_RoundTrip(t *testing.T) {
	svc := NewService(kv.NewMemoryStore(), nil)
	ctx := context.Background()

	in := profile{Name: "ada", Level: 7}
	require.NoError(t, svc.SetItem(ctx, KeyUserProfile, in))

	var out profile
	ok, err := svc.GetItem(ctx, KeyUserProfile, &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, in, out)
}

func TestService_MissingKeyLeavesDefault(t *testing.T) {
	svc := NewService(kv.NewMemoryStore(), nil)
	ctx := context.Background()

	out := profile{Name: "default"}
	ok, err := svc.GetItem(ctx, KeyUserProfile, &out)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "default", out.Name, "caller default must stand")
}

func TestService_CorruptValueDegradesToDefault(t *testing.T) {
	store := kv.NewMemoryStore()
	svc := NewService(store, nil)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, string(KeyTodos), "{not json"))

	out := map[string]int{"seed": 1}
	ok, err := svc.GetItem(ctx, KeyTodos, &out)
	require.NoError(t, err, "corrupt JSON must never surface as an error")
	assert.False(t, ok)
	assert.Equal(t, 1, out["seed"])
}

func TestService_WriteFailurePropagates(t *testing.T) {
	store := kv.NewMemoryStore()
	store.SetErr = errors.New("disk full")
	svc := NewService(store, nil)

	err := svc.SetItem(context.Background(), KeyTodos, map[string]string{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "disk full")
}

func TestService_RemoveAndIntrospection(t *testing.T) {
	svc := NewService(kv.NewMemoryStore(), nil)
	ctx := context.Background()

	require.NoError(t, svc.SetItem(ctx, KeyAuthToken, "tok"))
	has, err := svc.HasKey(ctx, KeyAuthToken)
	require.NoError(t, err)
	assert.True(t, has)

	keys, err := svc.AllKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{string(KeyAuthToken)}, keys)

	require.NoError(t, svc.RemoveItem(ctx, KeyAuthToken))
	has, err = svc.HasKey(ctx, KeyAuthToken)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, svc.SetItem(ctx, KeyAuthToken, "tok"))
	require.NoError(t, svc.ClearAll(ctx))
	keys, err = svc.AllKeys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}
