// Package udaftest provides test helpers for code that drives udaf
// instances.
//
// The main helpers are:
//
//   - InstanceStub: a configurable stub Instance for unit tests
//   - RecordingInstance: a decorator that records all Instance method calls
//
// Example usage:
//
//	stub := &udaftest.InstanceStub{
//		ResultFunc: func(ctx context.Context) (any, error) {
//			return bufferlayout.Layout{"@0": 16}, nil
//		},
//	}
//	fn := udaf.Function{Name: "stub", New: func() udaf.Instance { return stub }}
package udaftest

import (
	"context"
	"sync"
	"time"

	"github.com/wasmati/buffer-layout-go/bufferlayout/udaf"
)

// InstanceStub is a test double for udaf.Instance.
//
// Set the function fields to control behavior. Unset methods panic with
// a "not implemented" message, making it easy to identify which methods
// your tests need to stub.
type InstanceStub struct {
	UpdateFunc func(ctx context.Context, args ...any) error
	ResultFunc func(ctx context.Context) (any, error)
}

// Update delegates to UpdateFunc or panics if not set.
func (s *InstanceStub) Update(ctx context.Context, args ...any) error {
	if s.UpdateFunc == nil {
		panic("InstanceStub.Update not implemented")
	}
	return s.UpdateFunc(ctx, args...)
}

// Result delegates to ResultFunc or panics if not set.
func (s *InstanceStub) Result(ctx context.Context) (any, error) {
	if s.ResultFunc == nil {
		panic("InstanceStub.Result not implemented")
	}
	return s.ResultFunc(ctx)
}

// RecordingInstance wraps an Instance and records all method calls.
//
// It is useful for checking that a host drives the lifecycle in the
// expected order with the expected arguments.
type RecordingInstance struct {
	inner udaf.Instance
	calls []Call
	mu    sync.Mutex
}

// Call represents a recorded method call.
type Call struct {
	Method string // "Update" or "Result"
	Args   []any  // Update arguments; nil for Result
	Err    error  // error returned by the wrapped instance
	At     time.Time
}

// NewRecordingInstance creates a RecordingInstance that wraps inner.
func NewRecordingInstance(inner udaf.Instance) *RecordingInstance {
	return &RecordingInstance{inner: inner}
}

// Middleware returns a udaf.Middleware that wraps every instance in a
// RecordingInstance and hands it to collect.
func Middleware(collect func(name string, rec *RecordingInstance)) udaf.Middleware {
	return func(name string, next udaf.Instance) udaf.Instance {
		rec := NewRecordingInstance(next)
		collect(name, rec)
		return rec
	}
}

func (r *RecordingInstance) record(method string, args []any, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{
		Method: method,
		Args:   args,
		Err:    err,
		At:     time.Now(),
	})
}

// Update delegates to inner and records the call.
func (r *RecordingInstance) Update(ctx context.Context, args ...any) error {
	err := r.inner.Update(ctx, args...)
	r.record("Update", append([]any(nil), args...), err)
	return err
}

// Result delegates to inner and records the call.
func (r *RecordingInstance) Result(ctx context.Context) (any, error) {
	res, err := r.inner.Result(ctx)
	r.record("Result", nil, err)
	return res, err
}

// Calls returns a copy of all recorded calls.
func (r *RecordingInstance) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]Call, len(r.calls))
	copy(result, r.calls)
	return result
}

// Reset clears all recorded calls.
func (r *RecordingInstance) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

// CallCount returns the number of times the specified method was called.
func (r *RecordingInstance) CallCount(method string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, call := range r.calls {
		if call.Method == method {
			count++
		}
	}
	return count
}
