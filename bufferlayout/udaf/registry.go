package udaf

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/go4org/hashtriemap"
)

// RegistryOptions configures a Registry.
type RegistryOptions struct {
	// Logger receives registration events. If nil, uses slog.Default().
	Logger *slog.Logger

	// Middleware wraps every Instance created by the registry. The first
	// entry is the outermost wrapper.
	Middleware []Middleware
}

// Registry maps qualified names to aggregation functions.
// It is safe for concurrent use; the instances it creates are not.
type Registry struct {
	funcs      hashtriemap.HashTrieMap[string, Function]
	logger     *slog.Logger
	middleware []Middleware
}

// NewRegistry creates an empty registry. A nil opts uses defaults.
func NewRegistry(opts *RegistryOptions) *Registry {
	r := &Registry{logger: slog.Default()}
	if opts != nil {
		if opts.Logger != nil {
			r.logger = opts.Logger
		}
		r.middleware = slices.Clone(opts.Middleware)
	}
	return r
}

// DefaultRegistry returns a registry with wasmati.getBufferLocationMap
// registered using default binding options.
func DefaultRegistry(opts *RegistryOptions) *Registry {
	r := NewRegistry(opts)
	if err := r.Register(BufferLocationMap(nil)); err != nil {
		panic(err) // empty registry, cannot collide
	}
	return r
}

// Register adds fn under its qualified name.
func (r *Registry) Register(fn Function) error {
	name := fn.QualifiedName()
	if fn.Name == "" || fn.New == nil {
		return fmt.Errorf("%q: name and constructor are required: %w", name, ErrInvalidFunction)
	}
	if _, loaded := r.funcs.LoadOrStore(name, fn); loaded {
		return fmt.Errorf("%s: %w", name, ErrDuplicateFunction)
	}
	r.logger.Debug("registered aggregation function", "function", name, "signature", fn.Signature())
	return nil
}

// Lookup returns the function registered under the qualified name.
func (r *Registry) Lookup(name string) (Function, error) {
	fn, ok := r.funcs.Load(name)
	if !ok {
		return Function{}, fmt.Errorf("%s: %w", name, ErrUnknownFunction)
	}
	return fn, nil
}

// Functions returns all registered functions ordered by qualified name.
func (r *Registry) Functions() []Function {
	var out []Function
	r.funcs.Range(func(_ string, fn Function) bool {
		out = append(out, fn)
		return true
	})
	slices.SortFunc(out, func(a, b Function) int {
		return cmp.Compare(a.QualifiedName(), b.QualifiedName())
	})
	return out
}

// New creates an instance of the named function with the registry's
// middleware applied.
func (r *Registry) New(name string) (Instance, error) {
	fn, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	inst := fn.New()
	for i := len(r.middleware) - 1; i >= 0; i-- {
		inst = r.middleware[i](name, inst)
	}
	return inst, nil
}

// Aggregate runs one complete invocation of the named function: one Update
// per row, then Result. Cancellation is checked between rows.
func (r *Registry) Aggregate(ctx context.Context, name string, rows [][]any) (any, error) {
	inst, err := r.New(name)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := inst.Update(ctx, row...); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return inst.Result(ctx)
}

// AggregateColumn is Aggregate for single-parameter functions, with one
// value per row.
func (r *Registry) AggregateColumn(ctx context.Context, name string, values []any) (any, error) {
	rows := make([][]any, len(values))
	for i := range values {
		rows[i] = values[i : i+1 : i+1]
	}
	return r.Aggregate(ctx, name, rows)
}
