package dinheiro

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestArredondar(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"10.005", "10.01"},
		{"10.004", "10"},
		{"0.125", "0.13"},
		{"-0.125", "-0.13"},
		{"350", "350"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Arredondar(d(tt.in))
			assert.True(t, got.Equal(d(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestArredondarIdempotente(t *testing.T) {
	for _, s := range []string{"1.005", "2.675", "1234.56789", "-7.335", "0.004999"} {
		uma := Arredondar(d(s))
		assert.True(t, Arredondar(uma).Equal(uma), s)
	}
}

func TestEhZero(t *testing.T) {
	assert.True(t, EhZero(d("0.009")))
	assert.True(t, EhZero(d("-0.009")))
	assert.False(t, EhZero(d("0.01")))
}

func TestResidual(t *testing.T) {
	assert.True(t, Residual(d("0.07")))
	assert.True(t, Residual(d("0.10")))
	assert.False(t, Residual(d("0.50")))
	assert.False(t, Residual(decimal.Zero))
}

func TestPercentual(t *testing.T) {
	assert.True(t, Percentual(d("1234.50"), d("5")).Equal(d("61.73")))
}

func TestFormatarBRL(t *testing.T) {
	assert.Equal(t, "R$ 0,07", FormatarBRL(d("0.07")))
	assert.Equal(t, "R$ 350,00", FormatarBRL(d("350")))
	assert.Equal(t, "R$ 1.234,56", FormatarBRL(d("1234.555")))
	assert.Equal(t, "R$ 1.000.000,00", FormatarBRL(d("1000000")))
	assert.Equal(t, "-R$ 50,00", FormatarBRL(d("-50")))
}
