package db

import (
	"context"

	"github.com/distribuidora/api-financeiro/internal/bordero"
	"github.com/distribuidora/api-financeiro/internal/comissao"
	"github.com/distribuidora/api-financeiro/internal/contapagar"
	"github.com/distribuidora/api-financeiro/internal/credito"
	"github.com/distribuidora/api-financeiro/internal/deposito"
	"github.com/distribuidora/api-financeiro/internal/liquidacao"
	"github.com/distribuidora/api-financeiro/internal/pedido"
	"github.com/distribuidora/api-financeiro/internal/sequencia"
	"gorm.io/gorm"
)

// Migrate roda o AutoMigrate de cada pacote e semeia os contadores a partir
// dos números já gravados.
func Migrate(ctx context.Context, database *gorm.DB) error {
	for _, m := range []func(*gorm.DB) error{
		pedido.Migrate,
		credito.Migrate,
		deposito.Migrate,
		bordero.Migrate,
		liquidacao.Migrate,
		comissao.Migrate,
		contapagar.Migrate,
		sequencia.Migrate,
	} {
		if err := m(database); err != nil {
			return err
		}
	}
	sementes := []struct{ nome, tabela string }{
		{sequencia.Bordero, "borderos"},
		{sequencia.Credito, "creditos"},
		{sequencia.Solicitacao, "liquidacoes_pendentes"},
	}
	for _, s := range sementes {
		if err := sequencia.Semear(ctx, database, s.nome, s.tabela, "numero"); err != nil {
			return err
		}
	}
	return nil
}
