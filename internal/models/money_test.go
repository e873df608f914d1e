package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestValidAmount(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{name: "integer", value: "120", valid: true},
		{name: "four_decimals", value: "51.0001", valid: true},
		{name: "trailing_zeros_beyond_scale", value: "1.500000", valid: true},
		{name: "zero", value: "0", valid: true},
		{name: "sixteen_integer_digits", value: "9999999999999999.9999", valid: true},
		{name: "five_decimals", value: "51.00001", valid: false},
		{name: "seventeen_integer_digits", value: "10000000000000000", valid: false},
		{name: "huge_exponent", value: "1e3000000", valid: false},
		{name: "tiny_exponent", value: "1e-3000000", valid: false},
		{name: "exponent_within_range", value: "1e15", valid: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.valid, ValidAmount(decimal.RequireFromString(tc.value)))
		})
	}
}
