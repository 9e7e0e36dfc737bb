package deposito

import "github.com/shopspring/decimal"

type CriarDepositoDTO struct {
	ClienteCodigo string          `json:"clienteCodigo" validate:"required,max=50"`
	ClienteNome   string          `json:"clienteNome"`
	Descricao     string          `json:"descricao"`
	Valor         decimal.Decimal `json:"valor"`
	PedidoIDs     []uint          `json:"pedidoIds" validate:"required,min=1,dive,gt=0"`
}
