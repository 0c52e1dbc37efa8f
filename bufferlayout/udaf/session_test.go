package udaf_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasmati/buffer-layout-go/bufferlayout"
	"github.com/wasmati/buffer-layout-go/bufferlayout/udaf"
)

func TestSession_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := udaf.NewSession(udaf.DefaultRegistry(nil))

	id, err := s.Open(bufferLocationMap)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err, "handles are UUIDs")
	assert.Equal(t, 1, s.Len())

	name, ok := s.Function(id)
	assert.True(t, ok)
	assert.Equal(t, bufferLocationMap, name)

	for _, v := range []any{16, 32, nil, 96, 160} {
		require.NoError(t, s.Update(ctx, id, v))
	}
	got, err := s.Finalize(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, bufferlayout.Layout{"@0": 16, "@16": 16, "@32": 64, "@96": 64}, got)
	assert.Zero(t, s.Len())

	assert.ErrorIs(t, s.Update(ctx, id, 1), udaf.ErrUnknownInstance)
	_, err = s.Finalize(ctx, id)
	assert.ErrorIs(t, err, udaf.ErrUnknownInstance)
}

func TestSession_OpenUnknownFunction(t *testing.T) {
	s := udaf.NewSession(udaf.NewRegistry(nil))
	_, err := s.Open(bufferLocationMap)
	assert.ErrorIs(t, err, udaf.ErrUnknownFunction)
	assert.Zero(t, s.Len())
}

func TestSession_Discard(t *testing.T) {
	s := udaf.NewSession(udaf.DefaultRegistry(nil))
	id, err := s.Open(bufferLocationMap)
	require.NoError(t, err)

	assert.True(t, s.Discard(id))
	assert.False(t, s.Discard(id))
	_, ok := s.Function(id)
	assert.False(t, ok)
}

func TestSession_IndependentHandles(t *testing.T) {
	ctx := context.Background()
	s := udaf.NewSession(udaf.DefaultRegistry(nil))

	const n = 16
	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := s.Open(bufferLocationMap)
			if !assert.NoError(t, err) {
				return
			}
			ids[i] = id
			for _, v := range []any{int64(i + 1), int64(2 * (i + 1))} {
				assert.NoError(t, s.Update(ctx, id, v))
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, n, s.Len())

	for i, id := range ids {
		got, err := s.Finalize(ctx, id)
		require.NoError(t, err)
		step := int64(i + 1)
		assert.Equal(t, bufferlayout.Layout{"@0": step, bufferlayout.Key(step): step}, got)
	}
	assert.Zero(t, s.Len())
}
