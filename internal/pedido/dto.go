package pedido

import (
	"time"

	"github.com/shopspring/decimal"
)

// CriarPedidoDTO é o corpo do POST /pedidos.
type CriarPedidoDTO struct {
	Numero              string          `json:"numero" validate:"required,max=50"`
	ClienteCodigo       string          `json:"clienteCodigo" validate:"required,max=50"`
	ClienteNome         string          `json:"clienteNome"`
	RepresentanteCodigo string          `json:"representanteCodigo" validate:"max=50"`
	RepresentanteNome   string          `json:"representanteNome"`
	PercentualComissao  decimal.Decimal `json:"percentualComissao"`
	ValorPedido         decimal.Decimal `json:"valorPedido"`
	DataEntrega         *time.Time      `json:"dataEntrega"`
}

// AtualizarPedidoDTO é o corpo do PUT /pedidos/{id}. Valores financeiros só
// mudam por liquidação; aqui entram dados cadastrais e status operacionais.
type AtualizarPedidoDTO struct {
	ClienteNome       string     `json:"clienteNome"`
	RepresentanteNome string     `json:"representanteNome"`
	DataEntrega       *time.Time `json:"dataEntrega"`
	Status            string     `json:"status" validate:"omitempty,oneof=aberto aguardando_transito devolucao representante_recebe cancelado"`
	Observacao        string     `json:"observacao"`
}
