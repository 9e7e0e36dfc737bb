// Package sequencia gera números de documento (borderô, crédito, solicitação)
// a partir de contadores gravados no banco, dentro da transação de quem pede.
package sequencia

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	Bordero     = "bordero"
	Credito     = "credito"
	Solicitacao = "solicitacao"
)

// Contador guarda o último número emitido de uma sequência.
type Contador struct {
	Nome  string `gorm:"primaryKey;size:50"`
	Valor int64  `gorm:"not null;default:0"`
}

func (Contador) TableName() string { return "contadores" }

// Proximo incrementa e devolve o contador. A linha fica travada até o fim da
// transação, então dois commits concorrentes nunca recebem o mesmo número.
func Proximo(ctx context.Context, tx *gorm.DB, nome string) (int64, error) {
	db := tx.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&Contador{Nome: nome}).Error; err != nil {
		return 0, fmt.Errorf("sequencia %s: %w", nome, err)
	}

	var c Contador
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&c, "nome = ?", nome).Error; err != nil {
		return 0, fmt.Errorf("sequencia %s: %w", nome, err)
	}
	c.Valor++
	if err := db.Model(&Contador{}).Where("nome = ?", nome).
		Update("valor", c.Valor).Error; err != nil {
		return 0, fmt.Errorf("sequencia %s: %w", nome, err)
	}
	return c.Valor, nil
}

// Semear alinha o contador ao maior número já gravado em tabela.coluna,
// para bases que vieram do sistema antigo com numeração própria.
func Semear(ctx context.Context, db *gorm.DB, nome, tabela, coluna string) error {
	var maior int64
	err := db.WithContext(ctx).Table(tabela).
		Select(fmt.Sprintf("COALESCE(MAX(%s), 0)", coluna)).
		Scan(&maior).Error
	if err != nil {
		return fmt.Errorf("semear %s: %w", nome, err)
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "nome"}},
		DoUpdates: clause.Assignments(map[string]any{"valor": gorm.Expr("GREATEST(contadores.valor, ?)", maior)}),
	}).Create(&Contador{Nome: nome, Valor: maior}).Error
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Contador{})
}
