package credito

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusDisponivel = "disponivel"
	StatusUsado      = "usado"
)

// Credito é um saldo a favor do cliente. É sempre consumido por inteiro.
type Credito struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Numero        int64           `gorm:"not null;uniqueIndex" json:"numero"`
	ClienteCodigo string          `gorm:"size:50;not null;index" json:"clienteCodigo"`
	ClienteNome   string          `gorm:"size:255" json:"clienteNome"`
	Valor         decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"valor"`
	Status        string          `gorm:"size:20;not null;default:'disponivel';index" json:"status"`
	Origem        string          `gorm:"type:text" json:"origem"`

	BorderoNumeroOrigem *int64     `json:"borderoNumeroOrigem"`
	PedidoUsoID         *uint      `json:"pedidoUsoId"`
	BorderoNumeroUso    *int64     `json:"borderoNumeroUso"`
	UsadoEm             *time.Time `json:"usadoEm"`
	UsadoPor            string     `gorm:"size:255" json:"usadoPor"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Credito) Disponivel() bool {
	return c.Status == StatusDisponivel
}

// MarcarUsado consome o crédito. pedidoID pode ser nil quando o crédito
// inteiro virou excedente de novo.
func (c *Credito) MarcarUsado(pedidoID *uint, borderoNumero int64, quando time.Time, por string) error {
	if !c.Disponivel() {
		return fmt.Errorf("crédito %d já utilizado", c.Numero)
	}
	c.Status = StatusUsado
	c.PedidoUsoID = pedidoID
	c.BorderoNumeroUso = &borderoNumero
	q := quando
	c.UsadoEm = &q
	c.UsadoPor = por
	return nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Credito{})
}
