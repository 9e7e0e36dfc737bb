package db

import (
	"context"
	"fmt"

	"github.com/distribuidora/api-financeiro/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDataBase abre o Postgres com as credenciais do ambiente ou do
// Secrets Manager.
func ConnectDataBase(ctx context.Context, cfg config.DB) (*gorm.DB, error) {
	username, password, err := retrieveCredentials(ctx, cfg, nil)
	if err != nil {
		return nil, err
	}
	database, err := gorm.Open(postgres.Open(dsn(cfg, username, password)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, fmt.Errorf("conectar postgres %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return database, nil
}

func dsn(cfg config.DB, username, password string) string {
	var sslMode string
	if cfg.SSLDisable {
		sslMode = " sslmode=disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s", cfg.Host, username, password, cfg.Name, cfg.Port, sslMode)
}
