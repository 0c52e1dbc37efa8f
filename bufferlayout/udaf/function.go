// Package udaf binds aggregators to a host query engine as user-defined
// aggregation functions.
//
// A host discovers functions by qualified name in a Registry, creates one
// Instance per aggregation, feeds it one row of arguments per Update and
// publishes whatever Result returns. Values arrive untyped (as decoded by
// the host) and are bound to the declared parameter types here, so the
// aggregators themselves only ever see well-typed, present values.
package udaf

import (
	"context"
	"strings"
)

// Type is a host-visible value type.
type Type int

const (
	TypeInteger Type = iota + 1 // signed 64-bit integer
	TypeMap                     // string keys to signed 64-bit integers
)

func (t Type) String() string {
	switch t {
	case TypeInteger:
		return "INTEGER"
	case TypeMap:
		return "MAP"
	default:
		return "ANY"
	}
}

// Param declares one positional argument.
type Param struct {
	Name     string
	Type     Type
	Nullable bool
}

func (p Param) String() string {
	s := p.Name + " :: " + p.Type.String()
	if p.Nullable {
		s += "?"
	}
	return s
}

// Instance is a single aggregation invocation. The host calls Update once
// per input row and Result exactly once. Instances are not safe for
// concurrent use.
type Instance interface {
	Update(ctx context.Context, args ...any) error
	Result(ctx context.Context) (any, error)
}

// Function describes an aggregation function the host can discover.
type Function struct {
	Namespace   string
	Name        string
	Description string
	Params      []Param
	Returns     Type

	// New creates a fresh Instance. Required.
	New func() Instance
}

// QualifiedName returns "namespace.name", the key hosts look functions up by.
func (f Function) QualifiedName() string {
	if f.Namespace == "" {
		return f.Name
	}
	return f.Namespace + "." + f.Name
}

// Signature renders the function the way query engines list procedures,
// e.g. "wasmati.getBufferLocationMap(value :: INTEGER?) :: MAP".
func (f Function) Signature() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	return f.QualifiedName() + "(" + strings.Join(params, ", ") + ") :: " + f.Returns.String()
}
