package udaf_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasmati/buffer-layout-go/bufferlayout/udaf"
)

func TestBindInt64(t *testing.T) {
	nullable := udaf.Param{Name: "value", Type: udaf.TypeInteger, Nullable: true}
	var nilPtr *int64
	seven := int64(7)

	tests := []struct {
		name    string
		v       any
		want    *int64
		wantErr bool
	}{
		{name: "nil", v: nil, want: nil},
		{name: "nil pointer", v: nilPtr, want: nil},
		{name: "pointer", v: &seven, want: &seven},
		{name: "int64", v: int64(16), want: ptr(16)},
		{name: "int", v: 32, want: ptr(32)},
		{name: "int32", v: int32(-4), want: ptr(-4)},
		{name: "int16", v: int16(300), want: ptr(300)},
		{name: "int8", v: int8(8), want: ptr(8)},
		{name: "uint8", v: uint8(255), want: ptr(255)},
		{name: "uint16", v: uint16(65535), want: ptr(65535)},
		{name: "uint32", v: uint32(1 << 31), want: ptr(1 << 31)},
		{name: "uint", v: uint(96), want: ptr(96)},
		{name: "uint64 max int64", v: uint64(math.MaxInt64), want: ptr(math.MaxInt64)},
		{name: "uint64 out of range", v: uint64(math.MaxInt64) + 1, wantErr: true},
		{name: "integral float", v: float64(160), want: ptr(160)},
		{name: "fractional float", v: 1.5, wantErr: true},
		{name: "float 2^63", v: math.Ldexp(1, 63), wantErr: true},
		{name: "NaN", v: math.NaN(), wantErr: true},
		{name: "json number", v: json.Number("96"), want: ptr(96)},
		{name: "json number fraction", v: json.Number("9.5"), wantErr: true},
		{name: "string", v: "16", wantErr: true},
		{name: "bool", v: true, wantErr: true},
		{name: "float32", v: float32(1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := udaf.BindInt64(nullable, tt.v)
			if tt.wantErr {
				require.ErrorIs(t, err, udaf.ErrHostType)
				var te *udaf.TypeError
				require.ErrorAs(t, err, &te)
				assert.Equal(t, "value", te.Param)
				assert.Equal(t, udaf.TypeInteger, te.Want)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBindInt64_NotNullable(t *testing.T) {
	p := udaf.Param{Name: "size", Type: udaf.TypeInteger}

	_, err := udaf.BindInt64(p, nil)
	require.ErrorIs(t, err, udaf.ErrHostType)
	assert.Contains(t, err.Error(), "not nullable")

	got, err := udaf.BindInt64(p, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), *got)
}

func TestTypeError_Error(t *testing.T) {
	err := &udaf.TypeError{Param: "value", Want: udaf.TypeInteger, Got: "string"}
	assert.Equal(t, `parameter "value": cannot bind string to INTEGER`, err.Error())

	err.Reason = "out of range"
	assert.Equal(t, `parameter "value": cannot bind string to INTEGER: out of range`, err.Error())
}

func ptr(v int64) *int64 { return &v }
