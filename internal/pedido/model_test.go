package pedido

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/distribuidora/api-financeiro/internal/alocacao"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var agora = time.Date(2026, 4, 15, 10, 30, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(v decimal.Decimal) *decimal.Decimal { return &v }

func TestSaldoAtual(t *testing.T) {
	p := Pedido{ValorPedido: d("100"), TotalPago: d("30"), DescontoDado: d("5"), ValorDevolvido: d("10")}
	assert.True(t, p.SaldoAtual().Equal(d("55")))

	p.SaldoRestante = ptr(d("12.34"))
	assert.True(t, p.SaldoAtual().Equal(d("12.34")))

	p.SaldoRestante = ptr(d("-1"))
	assert.True(t, p.SaldoAtual().IsZero())
}

func TestAplicarLiquidacao_Parcial(t *testing.T) {
	p := Pedido{Numero: "PV-1", ValorPedido: d("300"), SaldoRestante: ptr(d("300")), Status: StatusAberto}
	p.AplicarLiquidacao(alocacao.Aplicacao{Desconto: d("20"), Dinheiro: d("100"), SaldoFinal: d("180")}, 7, agora, "fin@x.com")

	assert.Equal(t, StatusParcial, p.Status)
	assert.True(t, p.TotalPago.Equal(d("100")))
	assert.True(t, p.DescontoDado.Equal(d("20")))
	assert.True(t, p.SaldoRestante.Equal(d("180")))
	assert.Equal(t, int64(7), *p.BorderoNumero)
	assert.Nil(t, p.DataQuitacao)
	assert.Contains(t, p.Observacoes, "Borderô 7")
	assert.Contains(t, p.Observacoes, "fin@x.com")
}

func TestAplicarLiquidacao_Quitado(t *testing.T) {
	p := Pedido{ValorPedido: d("100"), SaldoRestante: ptr(d("100")), Status: StatusParcial, Observacoes: "linha antiga"}
	p.AplicarLiquidacao(alocacao.Aplicacao{Devolucao: d("40"), Credito: d("60"), SaldoFinal: d("0.004")}, 8, agora, "fin")

	assert.Equal(t, StatusPago, p.Status)
	assert.True(t, p.SaldoRestante.IsZero())
	assert.True(t, p.ValorDevolvido.Equal(d("40")))
	require.NotNil(t, p.DataQuitacao)
	assert.Equal(t, agora, *p.DataQuitacao)
	assert.Contains(t, p.Observacoes, "linha antiga\n[15/04/2026 10:30]")
}

func TestAplicarLiquidacao_SemAplicacaoNaoMexe(t *testing.T) {
	p := Pedido{ValorPedido: d("100"), Status: StatusAberto}
	p.AplicarLiquidacao(alocacao.Aplicacao{SaldoFinal: d("100")}, 9, agora, "fin")
	assert.Equal(t, StatusAberto, p.Status)
	assert.Nil(t, p.BorderoNumero)
	assert.Empty(t, p.Observacoes)
}

func TestQuitarResidual(t *testing.T) {
	casos := []struct {
		nome   string
		saldo  string
		status string
		quita  bool
	}{
		{"sete centavos", "0.07", StatusParcial, true},
		{"no limite", "0.10", StatusParcial, true},
		{"cinquenta centavos", "0.50", StatusParcial, false},
		{"zerado", "0", StatusParcial, false},
		{"cancelado", "0.05", StatusCancelado, false},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			p := Pedido{ValorPedido: d("100"), TotalPago: d("100").Sub(d(c.saldo)), SaldoRestante: ptr(d(c.saldo)), Status: c.status}
			assert.Equal(t, c.quita, p.QuitarResidual(agora))
			if c.quita {
				assert.Equal(t, StatusPago, p.Status)
				assert.True(t, p.TotalPago.Equal(d("100")))
				assert.True(t, p.SaldoRestante.IsZero())
				assert.Contains(t, p.Observacoes, "resíduo de "+d(c.saldo).StringFixed(2))
			}
		})
	}
}

type repoVarreduraFake struct {
	pedidos     []Pedido
	atualizados []Pedido
	err         error
}

func (r *repoVarreduraFake) ListarEmAberto(context.Context) ([]Pedido, error) {
	var out []Pedido
	for _, p := range r.pedidos {
		if p.Liquidavel() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *repoVarreduraFake) Atualizar(_ context.Context, p *Pedido) error {
	if r.err != nil {
		return r.err
	}
	r.atualizados = append(r.atualizados, *p)
	return nil
}

func TestVarrerResiduais(t *testing.T) {
	repo := &repoVarreduraFake{pedidos: []Pedido{
		{ID: 1, Numero: "PV-1", ValorPedido: d("10"), TotalPago: d("9.93"), Status: StatusParcial},
		{ID: 2, Numero: "PV-2", ValorPedido: d("10"), TotalPago: d("9.50"), Status: StatusParcial},
		{ID: 3, Numero: "PV-3", ValorPedido: d("10"), TotalPago: d("10"), SaldoRestante: ptr(decimal.Zero), Status: StatusPago},
	}}

	quitados, err := VarrerResiduais(context.Background(), repo, agora, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, quitados, 1)
	assert.Equal(t, "PV-1", quitados[0].Numero)
	assert.Len(t, repo.atualizados, 1)
	assert.Equal(t, StatusPago, repo.atualizados[0].Status)
}

func TestVarrerResiduais_FalhaAoGravar(t *testing.T) {
	repo := &repoVarreduraFake{
		pedidos: []Pedido{{ID: 1, Numero: "PV-1", ValorPedido: d("10"), TotalPago: d("9.95"), Status: StatusParcial}},
		err:     errors.New("conexão perdida"),
	}
	_, err := VarrerResiduais(context.Background(), repo, agora, zap.NewNop())
	assert.ErrorContains(t, err, "PV-1")
}
