package comissao

import (
	"github.com/distribuidora/api-financeiro/internal/dinheiro"
	"github.com/distribuidora/api-financeiro/internal/pedido"
	"github.com/shopspring/decimal"
)

// BaseComissao é o valor vendido descontado do que não foi recebido por
// desconto ou devolução.
func BaseComissao(p pedido.Pedido) decimal.Decimal {
	return dinheiro.NaoNegativo(dinheiro.Arredondar(p.ValorPedido.Sub(p.DescontoDado).Sub(p.ValorDevolvido)))
}

// NovoLancamento deriva o lançamento de um pedido pago. O mês de competência
// sai da data de quitação; pedidos antigos sem ela usam a última atualização.
func NovoLancamento(p pedido.Pedido) LancamentoComissao {
	ref := p.UpdatedAt
	if p.DataQuitacao != nil {
		ref = *p.DataQuitacao
	}
	base := BaseComissao(p)
	mes := MesDe(ref)
	inicio, _ := PrimeiroDia(mes)
	return LancamentoComissao{
		MesCompetencia:      mes,
		DataPagamento:       p.DataQuitacao,
		DataReferencia:      inicio,
		PedidoID:            p.ID,
		PedidoNumero:        p.Numero,
		ClienteCodigo:       p.ClienteCodigo,
		ClienteNome:         p.ClienteNome,
		RepresentanteCodigo: p.RepresentanteCodigo,
		RepresentanteNome:   p.RepresentanteNome,
		ValorBase:           base,
		Percentual:          p.PercentualComissao,
		ValorComissao:       dinheiro.Percentual(base, p.PercentualComissao),
		Status:              StatusAberto,
	}
}

// Totais do extrato; o líquido nunca fica negativo.
func calcularFechamento(f *FechamentoComissao, lancamentos []LancamentoComissao) {
	f.TotalVendas = decimal.Zero
	f.TotalComissaoBruta = decimal.Zero
	f.Itens = make([]ItemFechamento, 0, len(lancamentos))
	for _, l := range lancamentos {
		f.TotalVendas = f.TotalVendas.Add(l.ValorBase)
		f.TotalComissaoBruta = f.TotalComissaoBruta.Add(l.ValorComissao)
		f.Itens = append(f.Itens, ItemFechamento{
			LancamentoID:  l.ID,
			PedidoID:      l.PedidoID,
			PedidoNumero:  l.PedidoNumero,
			ClienteNome:   l.ClienteNome,
			DataPagamento: l.DataPagamento,
			ValorBase:     l.ValorBase,
			Percentual:    l.Percentual,
			ValorComissao: l.ValorComissao,
		})
		if f.RepresentanteNome == "" {
			f.RepresentanteNome = l.RepresentanteNome
		}
	}
	f.Adiantamentos = dinheiro.NaoNegativo(dinheiro.Arredondar(f.Adiantamentos))
	f.Descontos = dinheiro.NaoNegativo(dinheiro.Arredondar(f.Descontos))
	f.ValorLiquido = dinheiro.NaoNegativo(f.TotalComissaoBruta.Sub(f.Adiantamentos).Sub(f.Descontos))
}
