package comissao

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/distribuidora/api-financeiro/internal/auditoria"
	"github.com/distribuidora/api-financeiro/internal/auth"
	"github.com/distribuidora/api-financeiro/internal/contapagar"
	"github.com/distribuidora/api-financeiro/internal/pedido"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	agoraFixo  = time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)
	financeiro = auth.Usuario{ID: 1, Email: "financeiro@distribuidora.com", IsAdmin: true}
)

type auditorFake struct {
	eventos []auditoria.Evento
	err     error
}

func (a *auditorFake) Registrar(_ context.Context, e auditoria.Evento) error {
	a.eventos = append(a.eventos, e)
	return a.err
}

type ambiente struct {
	repo *memRepo
	aud  *auditorFake
	svc  *Service
}

func novoAmbiente() *ambiente {
	a := &ambiente{repo: novoMemRepo(), aud: &auditorFake{}}
	a.svc = NewService(a.repo, a.aud, zap.NewNop())
	a.svc.Agora = func() time.Time { return agoraFixo }
	return a
}

// pago cadastra um pedido quitado no dia 10 do mês informado.
func (a *ambiente) pago(id uint, rep, mes, valor, pct string) {
	inicio, err := PrimeiroDia(mes)
	if err != nil {
		panic(err)
	}
	quitado := inicio.AddDate(0, 0, 9)
	a.repo.pedidos = append(a.repo.pedidos, pedido.Pedido{
		ID:                  id,
		Numero:              fmt.Sprintf("PV-%d", id),
		ClienteCodigo:       "C1",
		ClienteNome:         "Mercado Central",
		RepresentanteCodigo: rep,
		RepresentanteNome:   "Rep " + rep,
		PercentualComissao:  d(pct),
		ValorPedido:         d(valor),
		TotalPago:           d(valor),
		Status:              pedido.StatusPago,
		DataQuitacao:        &quitado,
	})
}

func (a *ambiente) sincronizar(t *testing.T) {
	t.Helper()
	_, err := a.svc.Sincronizar(context.Background())
	require.NoError(t, err)
}

func (a *ambiente) lancamentoDoPedido(t *testing.T, pedidoID uint) LancamentoComissao {
	t.Helper()
	for _, l := range a.repo.lancamentos {
		if l.PedidoID == pedidoID {
			return l
		}
	}
	t.Fatalf("pedido %d sem lançamento", pedidoID)
	return LancamentoComissao{}
}

func TestSincronizar_CriaUmPorPedidoEIdempotente(t *testing.T) {
	a := novoAmbiente()
	a.pago(1, "R01", "2026-04", "1000", "5")
	a.pago(2, "R01", "2026-04", "200", "2.5")
	a.pago(3, "", "2026-04", "300", "5")
	a.repo.pedidos = append(a.repo.pedidos, pedido.Pedido{ID: 4, RepresentanteCodigo: "R01", Status: pedido.StatusAberto})

	n, err := a.svc.Sincronizar(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = a.svc.Sincronizar(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, a.repo.lancamentos, 2)

	l := a.lancamentoDoPedido(t, 2)
	assert.Equal(t, "2026-04", l.MesCompetencia)
	assertValor(t, "5", l.ValorComissao)
}

func TestSincronizar_MesFechadoVaiParaProximoAberto(t *testing.T) {
	a := novoAmbiente()
	a.repo.fechamentos[chave("R01", "2026-03")] = FechamentoComissao{ID: 90, RepresentanteCodigo: "R01", Mes: "2026-03", Status: StatusFechado}
	a.repo.fechamentos[chave("R01", "2026-04")] = FechamentoComissao{ID: 91, RepresentanteCodigo: "R01", Mes: "2026-04", Status: StatusFechado}
	a.pago(1, "R01", "2026-03", "100", "10")

	a.sincronizar(t)

	l := a.lancamentoDoPedido(t, 1)
	assert.Equal(t, "2026-05", l.MesCompetencia)
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), l.DataReferencia)
	require.Len(t, l.Movimentacoes, 2)
	assert.Equal(t, "2026-03", l.Movimentacoes[0].De)
	assert.Equal(t, "2026-05", l.Movimentacoes[1].Para)
	assert.Equal(t, "sistema", l.Movimentacoes[0].Ator)
}

func TestSincronizar_FalhaNaoGravaLancamento(t *testing.T) {
	a := novoAmbiente()
	a.pago(1, "R01", "2026-04", "100", "10")
	a.repo.falharEm = "CriarLancamento"

	_, err := a.svc.Sincronizar(context.Background())
	assert.ErrorIs(t, err, errFalhaSimulada)
	assert.Empty(t, a.repo.lancamentos)
	assert.Empty(t, a.repo.fechamentos)
}

func TestAntecipar(t *testing.T) {
	a := novoAmbiente()
	a.pago(1, "R01", "2026-05", "100", "10")
	a.sincronizar(t)
	id := a.lancamentoDoPedido(t, 1).ID

	l, err := a.svc.Antecipar(context.Background(), id, "2026-04", financeiro, "pedido de adiantamento")
	require.NoError(t, err)
	assert.Equal(t, "2026-04", l.MesCompetencia)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), l.DataReferencia)
	require.Len(t, l.Movimentacoes, 1)
	assert.Equal(t, Movimentacao{De: "2026-05", Para: "2026-04", Ator: financeiro.Email, Motivo: "pedido de adiantamento", Em: agoraFixo}, l.Movimentacoes[0])
	assert.Equal(t, "2026-04", a.repo.lancamentos[id].MesCompetencia)

	require.Len(t, a.aud.eventos, 1)
	assert.Equal(t, auditoria.EventoMovimentoComissao, a.aud.eventos[0].Tipo)
}

func TestAntecipar_Erros(t *testing.T) {
	a := novoAmbiente()
	a.pago(1, "R01", "2026-05", "100", "10")
	a.sincronizar(t)
	id := a.lancamentoDoPedido(t, 1).ID
	ctx := context.Background()

	_, err := a.svc.Antecipar(ctx, id, "2026-5", financeiro, "")
	assert.ErrorIs(t, err, ErrMesInvalido)

	_, err = a.svc.Antecipar(ctx, id, "2026-05", financeiro, "")
	assert.ErrorIs(t, err, ErrMesmoMes)

	_, err = a.svc.Antecipar(ctx, 999, "2026-04", financeiro, "")
	assert.ErrorIs(t, err, ErrLancamentoNaoEncontrado)

	a.repo.fechamentos[chave("R01", "2026-04")] = FechamentoComissao{ID: 50, RepresentanteCodigo: "R01", Mes: "2026-04", Status: StatusFechado}
	_, err = a.svc.Antecipar(ctx, id, "2026-04", financeiro, "")
	assert.ErrorIs(t, err, ErrMesFechado)
	assert.Equal(t, "2026-05", a.repo.lancamentos[id].MesCompetencia)
	assert.Empty(t, a.aud.eventos)
}

func TestAdiar(t *testing.T) {
	a := novoAmbiente()
	a.pago(1, "R01", "2026-12", "100", "10")
	a.sincronizar(t)
	id := a.lancamentoDoPedido(t, 1).ID

	l, err := a.svc.Adiar(context.Background(), id, financeiro, "cliente pagou com cheque pré")
	require.NoError(t, err)
	assert.Equal(t, "2027-01", l.MesCompetencia)
	assert.Equal(t, "2026-12", l.Movimentacoes[0].De)
}

func TestAdiar_LancamentoFechado(t *testing.T) {
	a := novoAmbiente()
	a.pago(1, "R01", "2026-04", "100", "10")
	a.sincronizar(t)
	_, err := a.svc.FecharMes(context.Background(), "R01", "2026-04", Ajustes{}, financeiro)
	require.NoError(t, err)

	_, err = a.svc.Adiar(context.Background(), a.lancamentoDoPedido(t, 1).ID, financeiro, "")
	assert.ErrorIs(t, err, ErrLancamentoFechado)
}

func TestAdiar_DestinoFechado(t *testing.T) {
	a := novoAmbiente()
	a.pago(1, "R01", "2026-04", "100", "10")
	a.sincronizar(t)
	a.repo.fechamentos[chave("R01", "2026-05")] = FechamentoComissao{ID: 50, RepresentanteCodigo: "R01", Mes: "2026-05", Status: StatusFechado}

	_, err := a.svc.Adiar(context.Background(), a.lancamentoDoPedido(t, 1).ID, financeiro, "")
	assert.ErrorIs(t, err, ErrMesFechado)
}

func TestFecharMes(t *testing.T) {
	a := novoAmbiente()
	a.pago(1, "R01", "2026-04", "1000", "5")
	a.pago(2, "R01", "2026-04", "400", "5")
	a.pago(3, "R01", "2026-05", "999", "5")
	a.pago(4, "R02", "2026-04", "500", "5")
	a.sincronizar(t)

	f, err := a.svc.FecharMes(context.Background(), "R01", "2026-04", Ajustes{Adiantamentos: d("20"), Descontos: d("5"), Observacao: "vale"}, financeiro)
	require.NoError(t, err)

	assert.Equal(t, StatusFechado, f.Status)
	assertValor(t, "1400", f.TotalVendas)
	assertValor(t, "70", f.TotalComissaoBruta)
	assertValor(t, "45", f.ValorLiquido)
	assert.Len(t, f.Itens, 2)
	assert.Equal(t, financeiro.Email, f.FechadoPor)
	assert.Equal(t, "Rep R01", f.RepresentanteNome)

	require.NotNil(t, f.ContaPagarID)
	conta := a.repo.contas[*f.ContaPagarID]
	assertValor(t, "45", conta.Valor)
	assert.Equal(t, contapagar.OrigemComissao, conta.Origem)
	assert.Equal(t, f.ID, conta.OrigemID)
	assert.Equal(t, time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC), conta.Vencimento)
	assert.Equal(t, "R01", conta.FavorecidoCodigo)

	assert.Equal(t, StatusFechado, a.lancamentoDoPedido(t, 1).Status)
	assert.Equal(t, StatusFechado, a.lancamentoDoPedido(t, 2).Status)
	assert.Equal(t, StatusAberto, a.lancamentoDoPedido(t, 3).Status)
	assert.Equal(t, StatusAberto, a.lancamentoDoPedido(t, 4).Status)

	_, err = a.svc.FecharMes(context.Background(), "R01", "2026-04", Ajustes{}, financeiro)
	assert.ErrorIs(t, err, ErrMesFechado)

	require.Len(t, a.aud.eventos, 1)
	assert.Equal(t, auditoria.EventoFechamento, a.aud.eventos[0].Tipo)
	assert.Equal(t, "R01/2026-04", a.aud.eventos[0].Referencia)
}

func TestFecharMes_LiquidoZeroNaoGeraConta(t *testing.T) {
	a := novoAmbiente()
	a.pago(1, "R01", "2026-04", "100", "10")
	a.sincronizar(t)

	f, err := a.svc.FecharMes(context.Background(), "R01", "2026-04", Ajustes{Adiantamentos: d("50")}, financeiro)
	require.NoError(t, err)
	assertValor(t, "0", f.ValorLiquido)
	assert.Nil(t, f.ContaPagarID)
	assert.Empty(t, a.repo.contas)
}

func TestFecharMes_Validacao(t *testing.T) {
	a := novoAmbiente()
	ctx := context.Background()

	_, err := a.svc.FecharMes(ctx, "", "2026-04", Ajustes{}, financeiro)
	assert.ErrorIs(t, err, ErrRepresentanteObrigatorio)
	_, err = a.svc.FecharMes(ctx, "R01", "abril", Ajustes{}, financeiro)
	assert.ErrorIs(t, err, ErrMesInvalido)
	_, err = a.svc.FecharMes(ctx, "R01", "2026-04", Ajustes{Descontos: d("-1")}, financeiro)
	assert.ErrorIs(t, err, ErrAjusteNegativo)
}

func TestFecharMes_FalhaDesfazTudo(t *testing.T) {
	for _, op := range []string{"AtualizarLancamento", "CriarContaPagar", "SalvarFechamento"} {
		t.Run(op, func(t *testing.T) {
			a := novoAmbiente()
			a.pago(1, "R01", "2026-04", "100", "10")
			a.sincronizar(t)
			a.repo.falharEm = op

			_, err := a.svc.FecharMes(context.Background(), "R01", "2026-04", Ajustes{}, financeiro)
			assert.ErrorIs(t, err, errFalhaSimulada)
			assert.Equal(t, StatusAberto, a.lancamentoDoPedido(t, 1).Status)
			assert.Empty(t, a.repo.contas)
			assert.Equal(t, StatusAberto, a.repo.fechamentos[chave("R01", "2026-04")].Status)
			assert.Empty(t, a.aud.eventos)
		})
	}
}

func TestFecharMes_AuditoriaFalhaNaoDesfaz(t *testing.T) {
	a := novoAmbiente()
	a.aud.err = errors.New("mongo fora")
	a.pago(1, "R01", "2026-04", "100", "10")
	a.sincronizar(t)

	f, err := a.svc.FecharMes(context.Background(), "R01", "2026-04", Ajustes{}, financeiro)
	require.NoError(t, err)
	assert.True(t, f.Fechado())
}

func TestFecharMesTodos(t *testing.T) {
	a := novoAmbiente()
	a.pago(1, "R01", "2026-04", "100", "10")
	a.pago(2, "R02", "2026-04", "200", "10")
	a.pago(3, "R03", "2026-05", "300", "10")
	a.sincronizar(t)

	res, err := a.svc.FecharMesTodos(context.Background(), "2026-04", financeiro)
	require.NoError(t, err)
	require.Len(t, res.Fechados, 2)
	assert.Equal(t, "R01", res.Fechados[0].RepresentanteCodigo)
	assert.Equal(t, "R02", res.Fechados[1].RepresentanteCodigo)
	assert.Len(t, a.repo.contas, 2)
	assert.Equal(t, StatusAberto, a.lancamentoDoPedido(t, 3).Status)

	res, err = a.svc.FecharMesTodos(context.Background(), "2026-04", financeiro)
	require.NoError(t, err)
	assert.Empty(t, res.Fechados)
}

func TestFecharMesTodos_FalhaParcial(t *testing.T) {
	a := novoAmbiente()
	a.pago(1, "R01", "2026-04", "100", "10")
	a.pago(2, "R02", "2026-04", "200", "10")
	a.sincronizar(t)
	a.repo.falharEm = "CriarContaPagar"

	res, err := a.svc.FecharMesTodos(context.Background(), "2026-04", financeiro)
	assert.ErrorIs(t, err, errFalhaSimulada)
	assert.Empty(t, res.Fechados)
	assert.Len(t, res.Falhas, 2)
	assert.Contains(t, res.Falhas, "R01")
}

func TestRecalcularRascunho(t *testing.T) {
	a := novoAmbiente()
	a.pago(1, "R01", "2026-04", "100", "10")
	a.sincronizar(t)
	ctx := context.Background()

	f, err := a.svc.RecalcularRascunho(ctx, "R01", "2026-04", &Ajustes{Adiantamentos: d("3")})
	require.NoError(t, err)
	assertValor(t, "10", f.TotalComissaoBruta)
	assertValor(t, "7", f.ValorLiquido)
	assert.Equal(t, StatusAberto, f.Status)

	a.pago(2, "R01", "2026-04", "50", "10")
	a.sincronizar(t)
	f, err = a.svc.RecalcularRascunho(ctx, "R01", "2026-04", nil)
	require.NoError(t, err)
	assertValor(t, "15", f.TotalComissaoBruta)
	assertValor(t, "12", f.ValorLiquido)

	_, err = a.svc.FecharMes(ctx, "R01", "2026-04", Ajustes{}, financeiro)
	require.NoError(t, err)
	_, err = a.svc.RecalcularRascunho(ctx, "R01", "2026-04", nil)
	assert.ErrorIs(t, err, ErrMesFechado)
}

func TestFechamento_RascunhoNaoGrava(t *testing.T) {
	a := novoAmbiente()
	a.pago(1, "R01", "2026-06", "100", "10")
	a.sincronizar(t)
	antes := len(a.repo.fechamentos)

	f, err := a.svc.Fechamento(context.Background(), "R01", "2026-06")
	require.NoError(t, err)
	assert.Equal(t, StatusAberto, f.Status)
	assertValor(t, "10", f.ValorLiquido)
	assert.Len(t, a.repo.fechamentos, antes)

	vazio, err := a.svc.Fechamento(context.Background(), "R09", "2026-06")
	require.NoError(t, err)
	assertValor(t, "0", vazio.TotalComissaoBruta)
}

func TestFechamento_FechadoVemComoGravado(t *testing.T) {
	a := novoAmbiente()
	a.pago(1, "R01", "2026-04", "100", "10")
	a.sincronizar(t)
	fechado, err := a.svc.FecharMes(context.Background(), "R01", "2026-04", Ajustes{}, financeiro)
	require.NoError(t, err)

	f, err := a.svc.Fechamento(context.Background(), "R01", "2026-04")
	require.NoError(t, err)
	assert.Equal(t, fechado.ID, f.ID)
	assert.Len(t, f.Itens, 1)
}

func TestTotalMes_IncluiFechados(t *testing.T) {
	a := novoAmbiente()
	a.pago(1, "R01", "2026-04", "100", "10")
	a.sincronizar(t)
	_, err := a.svc.FecharMes(context.Background(), "R01", "2026-04", Ajustes{}, financeiro)
	require.NoError(t, err)
	a.pago(2, "R01", "2026-04", "40", "10")
	a.sincronizar(t)

	// o segundo pedido caiu no mês seguinte porque abril já fechou
	total, err := a.svc.TotalMes(context.Background(), "R01", "2026-04")
	require.NoError(t, err)
	assertValor(t, "10", total)

	total, err = a.svc.TotalMes(context.Background(), "R01", "2026-05")
	require.NoError(t, err)
	assertValor(t, "4", total)
}
