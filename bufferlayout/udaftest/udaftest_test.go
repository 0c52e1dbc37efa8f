package udaftest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasmati/buffer-layout-go/bufferlayout"
	"github.com/wasmati/buffer-layout-go/bufferlayout/udaf"
)

func TestInstanceStub_PanicsWhenUnset(t *testing.T) {
	stub := &InstanceStub{}
	assert.PanicsWithValue(t, "InstanceStub.Update not implemented", func() {
		_ = stub.Update(context.Background(), 1)
	})
	assert.PanicsWithValue(t, "InstanceStub.Result not implemented", func() {
		_, _ = stub.Result(context.Background())
	})
}

func TestRecordingInstance(t *testing.T) {
	ctx := context.Background()
	rec := NewRecordingInstance(udaf.BufferLocationMap(nil).New())

	require.NoError(t, rec.Update(ctx, 16))
	require.Error(t, rec.Update(ctx, "x"))
	got, err := rec.Result(ctx)
	require.NoError(t, err)
	assert.Equal(t, bufferlayout.Layout{"@0": 16}, got)

	calls := rec.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "Update", calls[0].Method)
	assert.Equal(t, []any{16}, calls[0].Args)
	assert.NoError(t, calls[0].Err)
	assert.ErrorIs(t, calls[1].Err, udaf.ErrHostType)
	assert.Equal(t, "Result", calls[2].Method)
	assert.Nil(t, calls[2].Args)
	assert.False(t, calls[2].At.Before(calls[0].At))

	assert.Equal(t, 2, rec.CallCount("Update"))
	assert.Equal(t, 1, rec.CallCount("Result"))

	rec.Reset()
	assert.Empty(t, rec.Calls())
}

func TestRecordingInstance_CallsIsACopy(t *testing.T) {
	boom := errors.New("boom")
	rec := NewRecordingInstance(&InstanceStub{
		UpdateFunc: func(context.Context, ...any) error { return boom },
	})
	_ = rec.Update(context.Background(), 1)

	calls := rec.Calls()
	calls[0].Method = "changed"
	assert.Equal(t, "Update", rec.Calls()[0].Method)
	assert.Same(t, boom, rec.Calls()[0].Err)
}

func TestMiddleware(t *testing.T) {
	var got []*RecordingInstance
	reg := udaf.DefaultRegistry(&udaf.RegistryOptions{
		Middleware: []udaf.Middleware{Middleware(func(name string, rec *RecordingInstance) {
			assert.Equal(t, "wasmati.getBufferLocationMap", name)
			got = append(got, rec)
		})},
	})

	_, err := reg.AggregateColumn(context.Background(), "wasmati.getBufferLocationMap", []any{1, 2})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].CallCount("Update"))
}
