package udaf

import (
	"context"
	"fmt"

	"github.com/go4org/hashtriemap"
	"github.com/google/uuid"
)

// Session tracks open instances by handle for hosts that drive the
// lifecycle across a process boundary and cannot hold Go values.
// It is safe for concurrent use, but each handle must be driven by one
// caller at a time.
type Session struct {
	registry *Registry
	open     hashtriemap.HashTrieMap[string, *handle]
}

type handle struct {
	function string
	inst     Instance
}

// NewSession creates a session resolving functions in r.
func NewSession(r *Registry) *Session {
	return &Session{registry: r}
}

// Open creates an instance of the named function and returns its handle.
func (s *Session) Open(name string) (string, error) {
	inst, err := s.registry.New(name)
	if err != nil {
		return "", err
	}
	h := &handle{function: name, inst: inst}
	for {
		id := uuid.NewString()
		if _, loaded := s.open.LoadOrStore(id, h); !loaded {
			return id, nil
		}
	}
}

// Update feeds one row of arguments to the instance behind id.
func (s *Session) Update(ctx context.Context, id string, args ...any) error {
	h, ok := s.open.Load(id)
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrUnknownInstance)
	}
	return h.inst.Update(ctx, args...)
}

// Finalize returns the result of the instance behind id and releases the
// handle; later calls with the same id fail with ErrUnknownInstance.
func (s *Session) Finalize(ctx context.Context, id string) (any, error) {
	h, ok := s.open.LoadAndDelete(id)
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrUnknownInstance)
	}
	return h.inst.Result(ctx)
}

// Discard releases id without producing a result. It reports whether the
// handle was open.
func (s *Session) Discard(id string) bool {
	_, ok := s.open.LoadAndDelete(id)
	return ok
}

// Function returns the qualified name the handle was opened with.
func (s *Session) Function(id string) (string, bool) {
	h, ok := s.open.Load(id)
	if !ok {
		return "", false
	}
	return h.function, true
}

// Len returns the number of open handles.
func (s *Session) Len() int {
	n := 0
	s.open.Range(func(string, *handle) bool {
		n++
		return true
	})
	return n
}
