package deposito

import (
	"fmt"
	"time"

	"github.com/distribuidora/api-financeiro/internal/alocacao"
	"github.com/distribuidora/api-financeiro/internal/dinheiro"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Deposito é um valor que o cliente deixou antecipado (PORT/caução) para
// pedidos específicos. Diferente do crédito, pode ser consumido aos poucos.
type Deposito struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	ClienteCodigo   string          `gorm:"size:50;not null;index" json:"clienteCodigo"`
	ClienteNome     string          `gorm:"size:255" json:"clienteNome"`
	Descricao       string          `gorm:"type:text" json:"descricao"`
	Valor           decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"valor"`
	SaldoDisponivel decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"saldoDisponivel"`
	PedidoIDs       []uint          `gorm:"type:jsonb;serializer:json" json:"pedidoIds"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ParaAlocacao é o recorte usado pelo motor de alocação.
func (d *Deposito) ParaAlocacao() alocacao.Deposito {
	return alocacao.Deposito{ID: d.ID, Saldo: d.SaldoDisponivel, PedidoIDs: d.PedidoIDs}
}

// Consumir abate v do saldo disponível.
func (d *Deposito) Consumir(v decimal.Decimal) error {
	v = dinheiro.Arredondar(v)
	if v.IsNegative() {
		return fmt.Errorf("depósito %d: consumo negativo", d.ID)
	}
	if v.GreaterThan(d.SaldoDisponivel) {
		return fmt.Errorf("depósito %d: consumo %s maior que o saldo %s", d.ID, v.StringFixed(2), d.SaldoDisponivel.StringFixed(2))
	}
	d.SaldoDisponivel = d.SaldoDisponivel.Sub(v)
	return nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Deposito{})
}
