package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestUint128_AddCarries(t *testing.T) {
	sum := U128(math.MaxUint64).Add(U128(1))
	assert.Equal(t, Uint128{Hi: 1, Lo: 0}, sum)
	assert.Equal(t, "18446744073709551616", sum.String())
}

func TestUint128_String(t *testing.T) {
	assert.Equal(t, "0", Uint128{}.String())
	assert.Equal(t, "42", U128(42).String())
	assert.Equal(t, "36893488147419103231", Uint128{Hi: 1, Lo: math.MaxUint64}.String())
}

func TestUint128_Cmp(t *testing.T) {
	tests := []struct {
		a, b Uint128
		want int
	}{
		{U128(1), U128(2), -1},
		{U128(2), U128(1), 1},
		{U128(7), U128(7), 0},
		{Uint128{Hi: 1}, U128(math.MaxUint64), 1},
		{U128(math.MaxUint64), Uint128{Hi: 1}, -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.a.Cmp(tt.b), "%s vs %s", tt.a, tt.b)
	}
}

func TestUint128_MarshalYAML(t *testing.T) {
	out, err := yaml.Marshal(map[string]Uint128{"n": {Hi: 1}})
	require.NoError(t, err)
	assert.Equal(t, "n: 18446744073709551616\n", string(out))
}

func TestMeasurement_Add(t *testing.T) {
	a := Measurement{Lines: U128(3), Bytes: U128(6)}
	b := Measurement{Lines: U128(1), Bytes: U128(3), Tokens: U128(2)}

	got := a.Add(b)
	assert.Equal(t, Measurement{Lines: U128(4), Bytes: U128(9), Tokens: U128(2)}, got)
	// Add must not modify its operands.
	assert.Equal(t, U128(3), a.Lines)
}
