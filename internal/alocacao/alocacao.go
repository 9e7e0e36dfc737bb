// Package alocacao distribui um pagamento entre pedidos em cascata.
//
// Os fundos são consumidos sempre na mesma ordem, pedido a pedido, na ordem
// em que o chamador os selecionou:
//
//	devolução -> desconto -> depósito vinculado -> crédito -> dinheiro
//
// Cada aplicação é min(saldo do pedido, saldo do fundo), então nenhum pedido
// nem fundo fica negativo. O pacote não conhece banco de dados.
package alocacao

import (
	"github.com/distribuidora/api-financeiro/internal/dinheiro"
	"github.com/shopspring/decimal"
)

// PedidoSaldo é o recorte do pedido que a alocação precisa.
type PedidoSaldo struct {
	PedidoID uint
	Saldo    decimal.Decimal
}

// Deposito é um depósito (PORT/caução) do cliente vinculado a pedidos específicos.
type Deposito struct {
	ID        uint
	Saldo     decimal.Decimal
	PedidoIDs []uint
}

func (d Deposito) vinculado(pedidoID uint) bool {
	for _, id := range d.PedidoIDs {
		if id == pedidoID {
			return true
		}
	}
	return false
}

// Fundos são os valores disponíveis para a liquidação. Zero quando não usado.
type Fundos struct {
	Devolucao decimal.Decimal
	Desconto  decimal.Decimal
	Depositos []Deposito
	Credito   decimal.Decimal
	Dinheiro  decimal.Decimal
}

// TotalDepositos soma o saldo de todos os depósitos informados.
func (f Fundos) TotalDepositos() decimal.Decimal {
	total := decimal.Zero
	for _, d := range f.Depositos {
		total = total.Add(dinheiro.NaoNegativo(d.Saldo))
	}
	return total
}

// Total soma todos os fundos.
func (f Fundos) Total() decimal.Decimal {
	return dinheiro.Soma(f.Devolucao, f.Desconto, f.TotalDepositos(), f.Credito, f.Dinheiro)
}

// Aplicacao registra quanto de cada fundo foi aplicado em um pedido.
type Aplicacao struct {
	PedidoID      uint
	SaldoAnterior decimal.Decimal
	Devolucao     decimal.Decimal
	Desconto      decimal.Decimal
	Deposito      decimal.Decimal
	PorDeposito   map[uint]decimal.Decimal
	Credito       decimal.Decimal
	Dinheiro      decimal.Decimal
	SaldoFinal    decimal.Decimal
}

// Total é tudo que abateu o saldo do pedido.
func (a Aplicacao) Total() decimal.Decimal {
	return dinheiro.Soma(a.Devolucao, a.Desconto, a.Deposito, a.Credito, a.Dinheiro)
}

// Recebido exclui desconto e devolução, que reduzem a dívida mas não entram em caixa.
func (a Aplicacao) Recebido() decimal.Decimal {
	return dinheiro.Soma(a.Deposito, a.Credito, a.Dinheiro)
}

// Quitado indica saldo final zerado.
func (a Aplicacao) Quitado() bool {
	return dinheiro.EhZero(a.SaldoFinal)
}

// Resultado é a saída da alocação.
type Resultado struct {
	Aplicacoes []Aplicacao

	// Falta é a soma dos saldos que ficaram em aberto.
	Falta decimal.Decimal
	// Sobra é o dinheiro que restou depois de zerar todos os pedidos.
	Sobra decimal.Decimal

	SobraDevolucao decimal.Decimal
	SobraDesconto  decimal.Decimal
	SobraCredito   decimal.Decimal

	ConsumoDepositos map[uint]decimal.Decimal
	SaldoDepositos   map[uint]decimal.Decimal
}

// Parcial indica pagamento parcial (falta de pelo menos um centavo).
func (r Resultado) Parcial() bool {
	return dinheiro.Positivo(r.Falta)
}

// Excedente é o valor que deve virar crédito do cliente: sobra de dinheiro
// mais a parte do crédito selecionado que não foi usada, já que créditos são
// consumidos por inteiro.
func (r Resultado) Excedente() decimal.Decimal {
	return r.Sobra.Add(r.SobraCredito)
}

// TemExcedente indica excedente de pelo menos um centavo.
func (r Resultado) TemExcedente() bool {
	return dinheiro.Positivo(r.Excedente())
}

// TotalAplicado soma tudo que foi aplicado em todos os pedidos.
func (r Resultado) TotalAplicado() decimal.Decimal {
	total := decimal.Zero
	for _, a := range r.Aplicacoes {
		total = total.Add(a.Total())
	}
	return total
}

// Totais agrega as aplicações por fundo.
func (r Resultado) Totais() Aplicacao {
	var t Aplicacao
	for _, a := range r.Aplicacoes {
		t.SaldoAnterior = t.SaldoAnterior.Add(a.SaldoAnterior)
		t.Devolucao = t.Devolucao.Add(a.Devolucao)
		t.Desconto = t.Desconto.Add(a.Desconto)
		t.Deposito = t.Deposito.Add(a.Deposito)
		t.Credito = t.Credito.Add(a.Credito)
		t.Dinheiro = t.Dinheiro.Add(a.Dinheiro)
		t.SaldoFinal = t.SaldoFinal.Add(a.SaldoFinal)
	}
	return t
}

// aplicar consome min(restante, fundo) e decrementa os dois.
func aplicar(restante, fundo *decimal.Decimal) decimal.Decimal {
	if !restante.IsPositive() || !fundo.IsPositive() {
		return decimal.Zero
	}
	v := dinheiro.Min(*restante, *fundo)
	*restante = restante.Sub(v)
	*fundo = fundo.Sub(v)
	return v
}

func normalizar(v decimal.Decimal) decimal.Decimal {
	return dinheiro.NaoNegativo(dinheiro.Arredondar(v))
}

// Alocar executa a cascata. Os valores de entrada são arredondados para 2
// casas antes do cálculo; fundos negativos contam como zero.
func Alocar(pedidos []PedidoSaldo, fundos Fundos) Resultado {
	devolucao := normalizar(fundos.Devolucao)
	desconto := normalizar(fundos.Desconto)
	credito := normalizar(fundos.Credito)
	caixa := normalizar(fundos.Dinheiro)

	depositos := make([]Deposito, len(fundos.Depositos))
	res := Resultado{
		Aplicacoes:       make([]Aplicacao, 0, len(pedidos)),
		ConsumoDepositos: make(map[uint]decimal.Decimal, len(fundos.Depositos)),
		SaldoDepositos:   make(map[uint]decimal.Decimal, len(fundos.Depositos)),
	}
	for i, d := range fundos.Depositos {
		d.Saldo = normalizar(d.Saldo)
		depositos[i] = d
		res.ConsumoDepositos[d.ID] = decimal.Zero
	}

	for _, p := range pedidos {
		restante := normalizar(p.Saldo)
		ap := Aplicacao{
			PedidoID:      p.PedidoID,
			SaldoAnterior: restante,
			PorDeposito:   map[uint]decimal.Decimal{},
		}

		ap.Devolucao = aplicar(&restante, &devolucao)
		ap.Desconto = aplicar(&restante, &desconto)
		for i := range depositos {
			if !depositos[i].vinculado(p.PedidoID) {
				continue
			}
			v := aplicar(&restante, &depositos[i].Saldo)
			if v.IsPositive() {
				ap.PorDeposito[depositos[i].ID] = ap.PorDeposito[depositos[i].ID].Add(v)
				ap.Deposito = ap.Deposito.Add(v)
				res.ConsumoDepositos[depositos[i].ID] = res.ConsumoDepositos[depositos[i].ID].Add(v)
			}
		}
		ap.Credito = aplicar(&restante, &credito)
		ap.Dinheiro = aplicar(&restante, &caixa)
		ap.SaldoFinal = restante

		res.Falta = res.Falta.Add(restante)
		res.Aplicacoes = append(res.Aplicacoes, ap)
	}

	for _, d := range depositos {
		res.SaldoDepositos[d.ID] = d.Saldo
	}
	res.Sobra = caixa
	res.SobraDevolucao = devolucao
	res.SobraDesconto = desconto
	res.SobraCredito = credito
	return res
}
