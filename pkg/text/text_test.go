package text

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPreview(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		length int
		want   string
	}{
		{"short", "Steel kettle", 20, "Steel kettle"},
		{"tags and links", "<p>Pots &amp; <b>pans</b></p> see https://stonepay.example/k", 40, "Pots & pans see"},
		{"word boundary", "A sturdy steel kettle for the kitchen", 16, "A sturdy steel…"},
		{"long word", "Supercalifragilistic", 6, "Super…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Preview(tt.input, tt.length))
		})
	}
}

func TestReduceToLength(t *testing.T) {
	assert.Equal(t, "one two", ReduceToLength("one two three", 9))
	assert.Equal(t, "", ReduceToLength("lengthy", 3))
}

func TestNaira(t *testing.T) {
	assert.Equal(t, "₦1,234.50", Naira(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "₦0.00", Naira(decimal.Zero))
	assert.Equal(t, "₦999.99", Naira(decimal.RequireFromString("999.985")))
	assert.Equal(t, "-₦1,000.00", Naira(decimal.NewFromInt(-1000)))
	// beyond float64 precision
	assert.Equal(t, "₦12,345,678,901,234,567.89", Naira(decimal.RequireFromString("12345678901234567.89")))
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "12,345", Number(12345))
	assert.Equal(t, "7", Number(7))
}
