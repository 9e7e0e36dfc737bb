// Package auditoria grava a trilha de eventos financeiros (liquidações,
// aprovações, fechamentos) no MongoDB. É só escrita: nada aqui é lido pelo
// fluxo de liquidação.
package auditoria

import (
	"context"
	"errors"
	"time"

	"github.com/distribuidora/api-financeiro/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// Conectar abre o cliente e faz ping no primário.
func Conectar(ctx context.Context, cfg config.Mongo) (*Mongo, error) {
	if cfg.URI == "" {
		return nil, errors.New("MONGO_URI não configurada")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &Mongo{Client: client, Database: client.Database(cfg.DB)}, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	if m != nil && m.Client != nil {
		return m.Client.Disconnect(ctx)
	}
	return nil
}
