package notificacao

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSolicitacaoCriada_EnviaAviso(t *testing.T) {
	var recebido Aviso
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&recebido))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, zap.NewNop())
	wh.SolicitacaoCriada(context.Background(), Aviso{
		NumeroSolicitacao:   7,
		RepresentanteCodigo: "R01",
		PedidoIDs:           []uint{1, 2},
		ValorInformado:      decimal.NewFromInt(250),
	})

	assert.Equal(t, int64(7), recebido.NumeroSolicitacao)
	assert.Equal(t, "R01", recebido.RepresentanteCodigo)
	assert.Contains(t, recebido.Mensagem, "nº 7")
	assert.True(t, recebido.ValorInformado.Equal(decimal.NewFromInt(250)))
}

func TestEnviar_StatusDeErro(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, zap.NewNop())
	assert.Error(t, wh.enviar(context.Background(), Aviso{}))
}

func TestSolicitacaoCriada_SemURL(t *testing.T) {
	var nilHook *Webhook
	nilHook.SolicitacaoCriada(context.Background(), Aviso{})
	NewWebhook("", zap.NewNop()).SolicitacaoCriada(context.Background(), Aviso{})
}
