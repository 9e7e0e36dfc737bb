package auditoria

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ColecaoEventos = "eventos_financeiros"

const (
	EventoLiquidacao        = "liquidacao"
	EventoSolicitacao       = "solicitacao_liquidacao"
	EventoAprovacao         = "aprovacao_liquidacao"
	EventoRejeicao          = "rejeicao_liquidacao"
	EventoMovimentoComissao = "movimento_comissao"
	EventoFechamento        = "fechamento_comissao"
)

type Evento struct {
	Tipo       string         `bson:"tipo" json:"tipo"`
	Entidade   string         `bson:"entidade" json:"entidade"`
	Referencia string         `bson:"referencia" json:"referencia"`
	Usuario    string         `bson:"usuario,omitempty" json:"usuario,omitempty"`
	Dados      map[string]any `bson:"dados,omitempty" json:"dados,omitempty"`
	CriadoEm   time.Time      `bson:"criado_em" json:"criadoEm"`
}

// Registrador é implementado pelo Mongo e pelo Nop.
type Registrador interface {
	Registrar(ctx context.Context, e Evento) error
}

func documento(e Evento) bson.D {
	if e.CriadoEm.IsZero() {
		e.CriadoEm = time.Now().UTC()
	}
	return bson.D{
		{Key: "tipo", Value: e.Tipo},
		{Key: "entidade", Value: e.Entidade},
		{Key: "referencia", Value: e.Referencia},
		{Key: "usuario", Value: e.Usuario},
		{Key: "dados", Value: e.Dados},
		{Key: "criado_em", Value: e.CriadoEm},
	}
}

func (m *Mongo) Registrar(ctx context.Context, e Evento) error {
	if m == nil || m.Client == nil || m.Database == nil {
		return mongo.ErrClientDisconnected
	}
	_, err := m.Database.Collection(ColecaoEventos).InsertOne(ctx, documento(e), options.InsertOne())
	return err
}

// Nop descarta os eventos. Usado quando MONGO_URI não está configurada.
type Nop struct{}

func (Nop) Registrar(context.Context, Evento) error { return nil }
