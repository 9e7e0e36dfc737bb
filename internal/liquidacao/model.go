package liquidacao

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusPendente  = "pendente"
	StatusAprovada  = "aprovada"
	StatusRejeitada = "rejeitada"
)

// LiquidacaoPendente é a liquidação proposta por um representante, aguardando
// o financeiro. Só gera borderô quando aprovada.
type LiquidacaoPendente struct {
	ID                  uint   `gorm:"primaryKey" json:"id"`
	Numero              int64  `gorm:"not null;uniqueIndex" json:"numero"`
	ChaveIdempotencia   string `gorm:"size:64;not null;uniqueIndex" json:"chaveIdempotencia"`
	RepresentanteCodigo string `gorm:"size:50;index" json:"representanteCodigo"`
	ClienteCodigo       string `gorm:"size:50;index" json:"clienteCodigo"`
	ClienteNome         string `gorm:"size:255" json:"clienteNome"`
	PedidoIDs           []uint `gorm:"type:jsonb;serializer:json" json:"pedidoIds"`

	Proposta       Requisicao      `gorm:"type:jsonb;serializer:json" json:"proposta"`
	ValorInformado decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"valorInformado"`
	Parcial        bool            `gorm:"not null;default:false" json:"parcial"`

	Status         string     `gorm:"size:20;not null;default:'pendente';index" json:"status"`
	MotivoRejeicao string     `gorm:"type:text" json:"motivoRejeicao,omitempty"`
	BorderoNumero  *int64     `json:"borderoNumero,omitempty"`
	SolicitadoPor  string     `gorm:"size:255" json:"solicitadoPor"`
	AnalisadoPor   string     `gorm:"size:255" json:"analisadoPor,omitempty"`
	AnalisadoEm    *time.Time `json:"analisadoEm,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (LiquidacaoPendente) TableName() string { return "liquidacoes_pendentes" }

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&LiquidacaoPendente{})
}
