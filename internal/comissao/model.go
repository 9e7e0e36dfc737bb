package comissao

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusAberto  = "aberto"
	StatusFechado = "fechado"
)

// Movimentacao registra a troca de mês de competência de um lançamento.
type Movimentacao struct {
	De     string    `json:"de"`
	Para   string    `json:"para"`
	Ator   string    `json:"ator"`
	Motivo string    `json:"motivo"`
	Em     time.Time `json:"em"`
}

// LancamentoComissao é a comissão de um pedido pago. Existe no máximo um por pedido.
type LancamentoComissao struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	MesCompetencia string     `gorm:"size:7;not null;index:idx_lancamento_rep_mes,priority:2" json:"mesCompetencia"`
	DataPagamento  *time.Time `json:"dataPagamento"`
	DataReferencia time.Time  `json:"dataReferencia"`

	PedidoID            uint   `gorm:"not null;uniqueIndex" json:"pedidoId"`
	PedidoNumero        string `gorm:"size:50" json:"pedidoNumero"`
	ClienteCodigo       string `gorm:"size:50" json:"clienteCodigo"`
	ClienteNome         string `gorm:"size:255" json:"clienteNome"`
	RepresentanteCodigo string `gorm:"size:50;not null;index:idx_lancamento_rep_mes,priority:1" json:"representanteCodigo"`
	RepresentanteNome   string `gorm:"size:255" json:"representanteNome"`

	ValorBase     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"valorBase"`
	Percentual    decimal.Decimal `gorm:"type:numeric(7,4);not null" json:"percentual"`
	ValorComissao decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"valorComissao"`

	Status         string         `gorm:"size:20;not null;default:'aberto';index" json:"status"`
	DataFechamento *time.Time     `json:"dataFechamento"`
	Movimentacoes  []Movimentacao `gorm:"type:jsonb;serializer:json" json:"movimentacoes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (LancamentoComissao) TableName() string { return "lancamentos_comissao" }

// ItemFechamento é a cópia de um lançamento no momento do fechamento.
type ItemFechamento struct {
	LancamentoID  uint            `json:"lancamentoId"`
	PedidoID      uint            `json:"pedidoId"`
	PedidoNumero  string          `json:"pedidoNumero"`
	ClienteNome   string          `json:"clienteNome"`
	DataPagamento *time.Time      `json:"dataPagamento"`
	ValorBase     decimal.Decimal `json:"valorBase"`
	Percentual    decimal.Decimal `json:"percentual"`
	ValorComissao decimal.Decimal `json:"valorComissao"`
}

// FechamentoComissao é o extrato do mês de um representante. Aberto é
// rascunho; fechado é definitivo.
type FechamentoComissao struct {
	ID                  uint   `gorm:"primaryKey" json:"id"`
	RepresentanteCodigo string `gorm:"size:50;not null;uniqueIndex:idx_fechamento_rep_mes" json:"representanteCodigo"`
	RepresentanteNome   string `gorm:"size:255" json:"representanteNome"`
	Mes                 string `gorm:"size:7;not null;uniqueIndex:idx_fechamento_rep_mes" json:"mes"`
	Status              string `gorm:"size:20;not null;default:'aberto'" json:"status"`

	TotalVendas        decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"totalVendas"`
	TotalComissaoBruta decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"totalComissaoBruta"`
	Adiantamentos      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"adiantamentos"`
	Descontos          decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"descontos"`
	ValorLiquido       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"valorLiquido"`
	Observacao         string          `gorm:"type:text" json:"observacao"`

	Itens        []ItemFechamento `gorm:"type:jsonb;serializer:json" json:"itens"`
	ContaPagarID *uint            `json:"contaPagarId"`
	FechadoPor   string           `gorm:"size:255" json:"fechadoPor"`
	FechadoEm    *time.Time       `json:"fechadoEm"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (FechamentoComissao) TableName() string { return "fechamentos_comissao" }

func (f *FechamentoComissao) Fechado() bool {
	return f != nil && f.Status == StatusFechado
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&LancamentoComissao{}, &FechamentoComissao{})
}
