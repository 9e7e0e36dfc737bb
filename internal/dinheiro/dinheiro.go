// Package dinheiro concentra a aritmética monetária usada em liquidações e comissões.
package dinheiro

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// Centavo é o menor valor considerado diferente de zero.
	Centavo = decimal.RequireFromString("0.01")

	// ToleranciaResidual é o saldo máximo que a varredura considera quitado.
	ToleranciaResidual = decimal.RequireFromString("0.10")

	Cem = decimal.NewFromInt(100)
)

// Arredondar arredonda para 2 casas (meio para cima, afastando do zero).
// Todo valor monetário persistido passa por aqui.
func Arredondar(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}

// EhZero trata magnitudes abaixo de um centavo como zero.
func EhZero(v decimal.Decimal) bool {
	return v.Abs().LessThan(Centavo)
}

// Positivo indica valor maior ou igual a um centavo.
func Positivo(v decimal.Decimal) bool {
	return v.GreaterThanOrEqual(Centavo)
}

// Min retorna o menor de dois valores.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// NaoNegativo devolve zero para valores negativos.
func NaoNegativo(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}

func Soma(valores ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range valores {
		total = total.Add(v)
	}
	return total
}

// Residual indica saldo pequeno o bastante para ser varrido como quitado.
func Residual(saldo decimal.Decimal) bool {
	return saldo.IsPositive() && saldo.LessThanOrEqual(ToleranciaResidual)
}

// Percentual calcula base * pct / 100 arredondado.
func Percentual(base, pct decimal.Decimal) decimal.Decimal {
	return Arredondar(base.Mul(pct).Div(Cem))
}

// FormatarBRL formata no padrão "R$ 1.234,56".
func FormatarBRL(v decimal.Decimal) string {
	s := Arredondar(v).StringFixed(2)
	sinal := ""
	if strings.HasPrefix(s, "-") {
		sinal = "-"
		s = s[1:]
	}
	inteiro, centavos, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, c := range inteiro {
		if i > 0 && (len(inteiro)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	return sinal + "R$ " + b.String() + "," + centavos
}
