// Package bordero guarda os comprovantes de liquidação e suas linhas de pagamento.
// Um borderô não é alterado depois de criado.
package bordero

import (
	"fmt"
	"strings"
	"time"

	"github.com/distribuidora/api-financeiro/internal/dinheiro"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TipoMassa            = "massa"
	TipoPendenteAprovada = "pendente_aprovada"
	TipoRepresentante    = "representante"
)

// Tipos de linha. Os seis primeiros são meios de pagamento que o operador
// digita e somam no fundo de dinheiro; os demais são gerados pela liquidação.
const (
	LinhaDinheiro      = "dinheiro"
	LinhaPix           = "pix"
	LinhaCheque        = "cheque"
	LinhaCartaoCredito = "cartao_credito"
	LinhaCartaoDebito  = "cartao_debito"
	LinhaServico       = "servico"
	LinhaDesconto      = "desconto"
	LinhaDevolucao     = "devolucao"
	LinhaCredito       = "credito"
	LinhaDeposito      = "deposito"
)

var rotulos = map[string]string{
	LinhaDinheiro:      "Dinheiro",
	LinhaPix:           "PIX",
	LinhaCheque:        "Cheque",
	LinhaCartaoCredito: "Cartão de crédito",
	LinhaCartaoDebito:  "Cartão de débito",
	LinhaServico:       "Serviço",
	LinhaDesconto:      "Desconto",
	LinhaDevolucao:     "Devolução",
	LinhaCredito:       "Crédito",
	LinhaDeposito:      "Depósito",
}

// MeioDePagamento indica linha que entra no fundo de dinheiro.
func MeioDePagamento(tipo string) bool {
	switch tipo {
	case LinhaDinheiro, LinhaPix, LinhaCheque, LinhaCartaoCredito, LinhaCartaoDebito, LinhaServico:
		return true
	}
	return false
}

type Cheque struct {
	Numero   string `gorm:"size:30" json:"numero"`
	Banco    string `gorm:"size:100" json:"banco"`
	Agencia  string `gorm:"size:20" json:"agencia"`
	Conta    string `gorm:"size:30" json:"conta"`
	Emitente string `gorm:"size:255" json:"emitente"`
}

type LinhaPagamento struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	BorderoID uint            `gorm:"not null;index" json:"borderoId"`
	Tipo      string          `gorm:"size:30;not null" json:"tipo"`
	Valor     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"valor"`
	Parcelas  int             `gorm:"not null;default:0" json:"parcelas,omitempty"`
	AnexoURL  string          `gorm:"type:text" json:"anexoUrl,omitempty"`
	Cheque    *Cheque         `gorm:"embedded;embeddedPrefix:cheque_" json:"cheque,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (LinhaPagamento) TableName() string { return "linhas_pagamento" }

// Descrever monta o texto da linha no resumo do borderô.
func (l LinhaPagamento) Descrever() string {
	rotulo, ok := rotulos[l.Tipo]
	if !ok {
		rotulo = l.Tipo
	}
	switch {
	case l.Tipo == LinhaCheque && l.Cheque != nil && l.Cheque.Numero != "":
		rotulo = "Cheque " + l.Cheque.Numero
		if l.Cheque.Banco != "" {
			rotulo += " (" + l.Cheque.Banco + ")"
		}
	case l.Tipo == LinhaCartaoCredito && l.Parcelas > 1:
		rotulo = fmt.Sprintf("%s %dx", rotulo, l.Parcelas)
	}
	return rotulo + ": " + dinheiro.FormatarBRL(l.Valor)
}

// Bordero é o comprovante de uma liquidação.
type Bordero struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Numero        int64  `gorm:"not null;uniqueIndex" json:"numero"`
	Tipo          string `gorm:"size:30;not null" json:"tipo"`
	ClienteCodigo string `gorm:"size:50;index" json:"clienteCodigo"`
	ClienteNome   string `gorm:"size:255" json:"clienteNome"`
	PedidoIDs     []uint `gorm:"type:jsonb;serializer:json" json:"pedidoIds"`

	ValorDinheiro  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"valorDinheiro"`
	ValorCredito   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"valorCredito"`
	ValorDeposito  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"valorDeposito"`
	ValorDesconto  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"valorDesconto"`
	ValorDevolucao decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"valorDevolucao"`
	ValorTotal     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"valorTotal"`
	CreditoGerado  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"creditoGerado"`

	FormaPagamento    string           `gorm:"type:text" json:"formaPagamento"`
	Anexos            []string         `gorm:"type:jsonb;serializer:json" json:"anexos"`
	Observacao        string           `gorm:"type:text" json:"observacao"`
	LiquidadoPor      string           `gorm:"size:255" json:"liquidadoPor"`
	ChaveIdempotencia string           `gorm:"size:64;not null;uniqueIndex" json:"chaveIdempotencia"`
	Linhas            []LinhaPagamento `gorm:"foreignKey:BorderoID" json:"linhas"`

	CreatedAt time.Time `json:"createdAt"`
}

// ResumoFormaPagamento junta as linhas em "Dinheiro: R$ 100,00 | PIX: R$ 50,00".
func ResumoFormaPagamento(linhas []LinhaPagamento) string {
	partes := make([]string, 0, len(linhas))
	for _, l := range linhas {
		if !dinheiro.Positivo(l.Valor) {
			continue
		}
		partes = append(partes, l.Descrever())
	}
	return strings.Join(partes, " | ")
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Bordero{}, &LinhaPagamento{})
}
