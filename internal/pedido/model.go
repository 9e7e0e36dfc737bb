package pedido

import (
	"fmt"
	"strings"
	"time"

	"github.com/distribuidora/api-financeiro/internal/alocacao"
	"github.com/distribuidora/api-financeiro/internal/dinheiro"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusAberto              = "aberto"
	StatusParcial             = "parcial"
	StatusPago                = "pago"
	StatusAguardandoTransito  = "aguardando_transito"
	StatusDevolucao           = "devolucao"
	StatusRepresentanteRecebe = "representante_recebe"
	StatusCancelado           = "cancelado"
)

// Pedido representa uma venda e o quanto dela já foi liquidado.
type Pedido struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Numero string `gorm:"size:50;not null;uniqueIndex" json:"numero"`

	ClienteCodigo       string          `gorm:"size:50;not null;index" json:"clienteCodigo"`
	ClienteNome         string          `gorm:"size:255" json:"clienteNome"`
	RepresentanteCodigo string          `gorm:"size:50;index" json:"representanteCodigo"`
	RepresentanteNome   string          `gorm:"size:255" json:"representanteNome"`
	PercentualComissao  decimal.Decimal `gorm:"type:numeric(7,4);not null;default:0" json:"percentualComissao"`

	ValorPedido    decimal.Decimal  `gorm:"type:numeric(14,2);not null;default:0" json:"valorPedido"`
	TotalPago      decimal.Decimal  `gorm:"type:numeric(14,2);not null;default:0" json:"totalPago"`
	DescontoDado   decimal.Decimal  `gorm:"type:numeric(14,2);not null;default:0" json:"descontoDado"`
	ValorDevolvido decimal.Decimal  `gorm:"type:numeric(14,2);not null;default:0" json:"valorDevolvido"`
	SaldoRestante  *decimal.Decimal `gorm:"type:numeric(14,2)" json:"saldoRestante"`

	Status        string     `gorm:"size:30;not null;default:'aberto';index" json:"status"`
	DataEntrega   *time.Time `json:"dataEntrega"`
	DataQuitacao  *time.Time `json:"dataQuitacao"`
	BorderoNumero *int64     `gorm:"index" json:"borderoNumero"`
	Observacoes   string     `gorm:"type:text" json:"observacoes"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

// SaldoAtual usa o saldo gravado e, na falta dele, valor - pago - desconto - devolvido.
func (p *Pedido) SaldoAtual() decimal.Decimal {
	if p.SaldoRestante != nil {
		return dinheiro.NaoNegativo(*p.SaldoRestante)
	}
	return dinheiro.NaoNegativo(p.ValorPedido.Sub(p.TotalPago).Sub(p.DescontoDado).Sub(p.ValorDevolvido))
}

// Liquidavel indica se o pedido ainda aceita pagamento.
func (p *Pedido) Liquidavel() bool {
	return p.Status != StatusPago && p.Status != StatusCancelado
}

// Anotar acrescenta uma linha à trilha de observações do pedido.
func (p *Pedido) Anotar(quando time.Time, texto string) {
	linha := fmt.Sprintf("[%s] %s", quando.Format("02/01/2006 15:04"), strings.TrimSpace(texto))
	if p.Observacoes == "" {
		p.Observacoes = linha
		return
	}
	p.Observacoes += "\n" + linha
}

// AplicarLiquidacao grava no pedido o resultado da alocação.
// Pedidos sem nenhuma aplicação ficam como estavam.
func (p *Pedido) AplicarLiquidacao(a alocacao.Aplicacao, borderoNumero int64, quando time.Time, por string) {
	if !a.Total().IsPositive() {
		return
	}
	p.TotalPago = dinheiro.Arredondar(p.TotalPago.Add(a.Recebido()))
	p.DescontoDado = dinheiro.Arredondar(p.DescontoDado.Add(a.Desconto))
	p.ValorDevolvido = dinheiro.Arredondar(p.ValorDevolvido.Add(a.Devolucao))

	saldo := dinheiro.Arredondar(a.SaldoFinal)
	if dinheiro.EhZero(saldo) {
		saldo = decimal.Zero
	}
	p.SaldoRestante = &saldo
	p.BorderoNumero = &borderoNumero

	if saldo.IsZero() {
		p.Status = StatusPago
		q := quando
		p.DataQuitacao = &q
	} else {
		p.Status = StatusParcial
	}

	p.Anotar(quando, fmt.Sprintf("Borderô %d: aplicado %s (recebido %s, desconto %s, devolução %s), saldo %s, por %s",
		borderoNumero, a.Total().StringFixed(2), a.Recebido().StringFixed(2),
		a.Desconto.StringFixed(2), a.Devolucao.StringFixed(2), saldo.StringFixed(2), por))
}

// QuitarResidual fecha um pedido cujo saldo está dentro da tolerância,
// incorporando o resíduo ao total pago.
func (p *Pedido) QuitarResidual(quando time.Time) bool {
	saldo := p.SaldoAtual()
	if !p.Liquidavel() || !dinheiro.Residual(saldo) {
		return false
	}
	p.TotalPago = dinheiro.Arredondar(p.TotalPago.Add(saldo))
	zero := decimal.Zero
	p.SaldoRestante = &zero
	p.Status = StatusPago
	if p.DataQuitacao == nil {
		q := quando
		p.DataQuitacao = &q
	}
	p.Anotar(quando, "Quitado automaticamente: resíduo de "+saldo.StringFixed(2)+" incorporado ao total pago")
	return true
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Pedido{})
}
