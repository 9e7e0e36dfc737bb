package contapagar

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusAberta = "aberta"
	StatusPaga   = "paga"

	OrigemComissao = "comissao"
)

// ContaPagar é um título a pagar. Hoje só nasce do fechamento de comissão.
type ContaPagar struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	Descricao        string          `gorm:"size:255;not null" json:"descricao"`
	Favorecido       string          `gorm:"size:255" json:"favorecido"`
	FavorecidoCodigo string          `gorm:"size:50;index" json:"favorecidoCodigo"`
	Valor            decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"valor"`
	Vencimento       time.Time       `json:"vencimento"`
	Origem           string          `gorm:"size:30;not null" json:"origem"`
	OrigemID         uint            `gorm:"index" json:"origemId"`
	Status           string          `gorm:"size:20;not null;default:'aberta'" json:"status"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

func (ContaPagar) TableName() string { return "contas_pagar" }

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&ContaPagar{})
}
