package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		cents int64
		mode  SignMode
		want  string
	}{
		{400, SignAlways, "+$4.00"},
		{400, SignNegative, "$4.00"},
		{-2500, SignAlways, "-$25.00"},
		{-2500, SignNegative, "-$25.00"},
		{0, SignAlways, "$0.00"},
		{0, SignNegative, "$0.00"},
		{123456, SignAlways, "+$1,234.56"},
		{100000000, SignNegative, "$1,000,000.00"},
		{5, SignNegative, "$0.05"},
		{-5, SignAlways, "-$0.05"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.cents, tt.mode), "cents=%d", tt.cents)
	}
}

func TestParseCents(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"20", 2000},
		{"20.5", 2050},
		{"20.50", 2050},
		{"0", 0},
		{"0.01", 1},
		{"1234.56", 123456},
		{" 3.00 ", 300},
		{"-25.00", -2500},
	}
	for _, tt := range tests {
		got, err := ParseCents(tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseCents_Errors(t *testing.T) {
	badInputs := []string{
		"",
		"abc",
		"20.505",
		"1.2.3",
		"$20",
	}
	for _, input := range badInputs {
		_, err := ParseCents(input)
		assert.Error(t, err, "expected error for input: %s", input)
	}
}

func TestParseRate(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"10.525", 10525},
		{"10", 10000},
		{"0.001", 1},
		{"1.5", 1500},
	}
	for _, tt := range tests {
		got, err := ParseRate(tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseRate_Errors(t *testing.T) {
	badInputs := []string{"", "x", "0.0005"}
	for _, input := range badInputs {
		_, err := ParseRate(input)
		assert.Error(t, err, "expected error for input: %s", input)
	}
}

func TestFormatRate(t *testing.T) {
	tests := []struct {
		rate int64
		want string
	}{
		{10525, "10.525%"},
		{10000, "10.000%"},
		{1, "0.001%"},
		{-1500, "-1.500%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRate(tt.rate))
	}
}
