package alocacao

import (
	"github.com/distribuidora/api-financeiro/internal/dinheiro"
	"github.com/shopspring/decimal"
)

// Previa são os totais exibidos enquanto o operador preenche a liquidação.
type Previa struct {
	ValorOriginal decimal.Decimal `json:"valorOriginal"`
	Devolucao     decimal.Decimal `json:"devolucao"`
	Desconto      decimal.Decimal `json:"desconto"`
	Deposito      decimal.Decimal `json:"deposito"`
	Credito       decimal.Decimal `json:"credito"`
	Dinheiro      decimal.Decimal `json:"dinheiro"`
	APagar        decimal.Decimal `json:"aPagar"`
	Pago          decimal.Decimal `json:"pago"`
	Falta         decimal.Decimal `json:"falta"`
	Sobra         decimal.Decimal `json:"sobra"`
	Excedente     decimal.Decimal `json:"excedente"`
	Parcial       bool            `json:"parcial"`
}

// CalcularPrevia deriva os totais da tela a partir dos pedidos e fundos.
// Não tem efeito colateral; pode ser chamada a cada alteração do formulário.
func CalcularPrevia(pedidos []PedidoSaldo, fundos Fundos) Previa {
	res := Alocar(pedidos, fundos)
	t := res.Totais()

	original := decimal.Zero
	for _, p := range pedidos {
		original = original.Add(normalizar(p.Saldo))
	}

	aPagar := original.Sub(normalizar(fundos.Devolucao)).
		Sub(normalizar(fundos.Desconto)).
		Sub(t.Deposito).
		Sub(normalizar(fundos.Credito))

	return Previa{
		ValorOriginal: original,
		Devolucao:     normalizar(fundos.Devolucao),
		Desconto:      normalizar(fundos.Desconto),
		Deposito:      t.Deposito,
		Credito:       normalizar(fundos.Credito),
		Dinheiro:      normalizar(fundos.Dinheiro),
		APagar:        dinheiro.NaoNegativo(aPagar),
		Pago:          dinheiro.Soma(t.Deposito, normalizar(fundos.Credito), normalizar(fundos.Dinheiro)),
		Falta:         res.Falta,
		Sobra:         res.Sobra,
		Excedente:     res.Excedente(),
		Parcial:       res.Parcial(),
	}
}
