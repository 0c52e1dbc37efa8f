package udaf

import (
	"encoding/json"
	"fmt"
	"math"
)

// BindingOptions configures how host values are bound to offsets.
type BindingOptions struct {
	// RejectNegative fails Update with ErrNegativeOffset for values below
	// zero. Default: false, negative offsets are accepted and sort before
	// the anchor.
	RejectNegative bool
}

// BindInt64 converts a host value to a nullable int64 for parameter p.
//
// nil (and a nil *int64) bind to absent, which is only allowed when p is
// nullable. Every Go integer kind binds when it fits in int64. float64 and
// json.Number bind when they hold an integral value in range, since that is
// how JSON-speaking hosts deliver integers. Anything else is a *TypeError.
func BindInt64(p Param, v any) (*int64, error) {
	var n int64
	switch x := v.(type) {
	case nil:
		return bindNull(p)
	case *int64:
		if x == nil {
			return bindNull(p)
		}
		n = *x
	case int64:
		n = x
	case int:
		n = int64(x)
	case int32:
		n = int64(x)
	case int16:
		n = int64(x)
	case int8:
		n = int64(x)
	case uint8:
		n = int64(x)
	case uint16:
		n = int64(x)
	case uint32:
		n = int64(x)
	case uint:
		if uint64(x) > math.MaxInt64 {
			return nil, typeError(p, v, "out of range")
		}
		n = int64(x)
	case uint64:
		if x > math.MaxInt64 {
			return nil, typeError(p, v, "out of range")
		}
		n = int64(x)
	case float64:
		// 2^63 is exactly representable; everything at or above it is not an int64.
		if x != math.Trunc(x) || x < math.MinInt64 || x >= math.MaxInt64 {
			return nil, typeError(p, v, "not an integer in range")
		}
		n = int64(x)
	case json.Number:
		i, err := x.Int64()
		if err != nil {
			return nil, typeError(p, v, "not an integer in range")
		}
		n = i
	default:
		return nil, typeError(p, v, "")
	}
	return &n, nil
}

func bindNull(p Param) (*int64, error) {
	if !p.Nullable {
		return nil, &TypeError{Param: p.Name, Want: p.Type, Got: "null", Reason: "parameter is not nullable"}
	}
	return nil, nil
}

func typeError(p Param, v any, reason string) *TypeError {
	return &TypeError{Param: p.Name, Want: p.Type, Got: fmt.Sprintf("%T", v), Reason: reason}
}

// checkArity verifies the host passed one value per declared parameter.
func checkArity(name string, params []Param, args []any) error {
	if len(args) != len(params) {
		return fmt.Errorf("%s: got %d, want %d: %w", name, len(args), len(params), ErrArity)
	}
	return nil
}
