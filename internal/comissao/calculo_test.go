package comissao

import (
	"testing"
	"time"

	"github.com/distribuidora/api-financeiro/internal/pedido"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertValor(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, got.Equal(d(want)), append([]interface{}{"want %s got %s", want, got.String()}, msgAndArgs...)...)
}

func TestValidarMes(t *testing.T) {
	for _, ok := range []string{"2026-01", "2026-12", "1999-07"} {
		assert.NoError(t, ValidarMes(ok), ok)
	}
	for _, ruim := range []string{"", "2026-13", "2026-1", "26-01", "2026/01", "2026-01-01"} {
		assert.ErrorIs(t, ValidarMes(ruim), ErrMesInvalido, ruim)
	}
}

func TestProximoMes(t *testing.T) {
	casos := map[string]string{
		"2026-01": "2026-02",
		"2026-11": "2026-12",
		"2026-12": "2027-01",
	}
	for de, para := range casos {
		got, err := ProximoMes(de)
		require.NoError(t, err)
		assert.Equal(t, para, got)
	}
	_, err := ProximoMes("xx")
	assert.ErrorIs(t, err, ErrMesInvalido)
}

func TestNovoLancamento(t *testing.T) {
	quitado := time.Date(2026, 3, 31, 23, 0, 0, 0, time.UTC)
	p := pedido.Pedido{
		ID:                  9,
		Numero:              "PV-9",
		ClienteCodigo:       "C1",
		RepresentanteCodigo: "R01",
		RepresentanteNome:   "João",
		PercentualComissao:  d("5"),
		ValorPedido:         d("1000"),
		DescontoDado:        d("100"),
		ValorDevolvido:      d("33.33"),
		Status:              pedido.StatusPago,
		DataQuitacao:        &quitado,
		UpdatedAt:           quitado.AddDate(0, 1, 0),
	}
	l := NovoLancamento(p)

	assert.Equal(t, "2026-03", l.MesCompetencia)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), l.DataReferencia)
	assert.Equal(t, uint(9), l.PedidoID)
	assert.Equal(t, StatusAberto, l.Status)
	assertValor(t, "866.67", l.ValorBase)
	assertValor(t, "43.33", l.ValorComissao)
}

func TestNovoLancamento_SemDataQuitacaoUsaAtualizacao(t *testing.T) {
	p := pedido.Pedido{
		ID:                 1,
		PercentualComissao: d("3"),
		ValorPedido:        d("200"),
		UpdatedAt:          time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC),
	}
	l := NovoLancamento(p)
	assert.Equal(t, "2025-12", l.MesCompetencia)
	assert.Nil(t, l.DataPagamento)
	assertValor(t, "6", l.ValorComissao)
}

func TestBaseComissao_NuncaNegativa(t *testing.T) {
	p := pedido.Pedido{ValorPedido: d("100"), DescontoDado: d("80"), ValorDevolvido: d("40")}
	assertValor(t, "0", BaseComissao(p))
}

func TestCalcularFechamento(t *testing.T) {
	f := &FechamentoComissao{Adiantamentos: d("30"), Descontos: d("5.50")}
	calcularFechamento(f, []LancamentoComissao{
		{ID: 1, RepresentanteNome: "João", ValorBase: d("1000"), ValorComissao: d("50")},
		{ID: 2, ValorBase: d("300"), ValorComissao: d("15")},
	})
	assertValor(t, "1300", f.TotalVendas)
	assertValor(t, "65", f.TotalComissaoBruta)
	assertValor(t, "29.5", f.ValorLiquido)
	assert.Equal(t, "João", f.RepresentanteNome)
	assert.Len(t, f.Itens, 2)

	f.Adiantamentos = d("100")
	calcularFechamento(f, nil)
	assertValor(t, "0", f.ValorLiquido)
	assert.Empty(t, f.Itens)
}
