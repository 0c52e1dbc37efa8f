package udaf

import (
	"context"
	"fmt"

	"github.com/wasmati/buffer-layout-go/bufferlayout"
)

// Registration of the buffer location aggregation.
const (
	BufferLocationMapNamespace = "wasmati"
	BufferLocationMapName      = "getBufferLocationMap"

	// BufferLocationMapQualifiedName is the name hosts look the function up by.
	BufferLocationMapQualifiedName = BufferLocationMapNamespace + "." + BufferLocationMapName
)

// BufferLocationMap returns the descriptor of
// wasmati.getBufferLocationMap(value :: INTEGER?) :: MAP.
// A nil opts uses the zero BindingOptions.
func BufferLocationMap(opts *BindingOptions) Function {
	var o BindingOptions
	if opts != nil {
		o = *opts
	}
	fn := Function{
		Namespace:   BufferLocationMapNamespace,
		Name:        BufferLocationMapName,
		Description: "wasmati.getBufferLocationMap(value)",
		Params:      []Param{{Name: "value", Type: TypeInteger, Nullable: true}},
		Returns:     TypeMap,
	}
	name, params := fn.QualifiedName(), fn.Params
	fn.New = func() Instance {
		return &bufferLocationMap{
			name:   name,
			params: params,
			opts:   o,
			agg:    bufferlayout.New(),
		}
	}
	return fn
}

type bufferLocationMap struct {
	name   string
	params []Param
	opts   BindingOptions
	agg    *bufferlayout.Aggregator
}

func (b *bufferLocationMap) Update(_ context.Context, args ...any) error {
	if err := checkArity(b.name, b.params, args); err != nil {
		return err
	}
	v, err := BindInt64(b.params[0], args[0])
	if err != nil {
		return err
	}
	if v != nil && *v < 0 && b.opts.RejectNegative {
		return fmt.Errorf("%s = %d: %w", b.params[0].Name, *v, ErrNegativeOffset)
	}
	return b.agg.UpdateNullable(v)
}

// Result returns the bufferlayout.Layout of all bound offsets.
func (b *bufferLocationMap) Result(context.Context) (any, error) {
	layout, err := b.agg.Finalize()
	if err != nil {
		return nil, err
	}
	return layout, nil
}
