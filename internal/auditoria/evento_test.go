package auditoria

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func campo(doc bson.D, chave string) any {
	for _, e := range doc {
		if e.Key == chave {
			return e.Value
		}
	}
	return nil
}

func TestDocumento(t *testing.T) {
	quando := time.Date(2026, 5, 2, 14, 0, 0, 0, time.UTC)
	doc := documento(Evento{
		Tipo:       EventoLiquidacao,
		Entidade:   "bordero",
		Referencia: "42",
		Usuario:    "ana@empresa.com",
		Dados:      map[string]any{"valorTotal": "350.00"},
		CriadoEm:   quando,
	})

	assert.Equal(t, EventoLiquidacao, campo(doc, "tipo"))
	assert.Equal(t, "42", campo(doc, "referencia"))
	assert.Equal(t, quando, campo(doc, "criado_em"))
}

func TestDocumento_PreencheData(t *testing.T) {
	doc := documento(Evento{Tipo: EventoRejeicao})
	criado, ok := campo(doc, "criado_em").(time.Time)
	assert.True(t, ok)
	assert.False(t, criado.IsZero())
}

func TestRegistrar_SemConexao(t *testing.T) {
	var m *Mongo
	assert.ErrorIs(t, m.Registrar(context.Background(), Evento{}), mongo.ErrClientDisconnected)
	assert.NoError(t, Nop{}.Registrar(context.Background(), Evento{}))
}
