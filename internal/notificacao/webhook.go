package notificacao

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Aviso é o corpo enviado quando um representante pede uma liquidação.
type Aviso struct {
	Mensagem            string          `json:"mensagem"`
	SolicitacaoID       uint            `json:"solicitacaoId"`
	NumeroSolicitacao   int64           `json:"numeroSolicitacao"`
	RepresentanteCodigo string          `json:"representanteCodigo"`
	ClienteCodigo       string          `json:"clienteCodigo"`
	ClienteNome         string          `json:"clienteNome"`
	PedidoIDs           []uint          `json:"pedidoIds"`
	ValorInformado      decimal.Decimal `json:"valorInformado"`
	Parcial             bool            `json:"parcial"`
}

type Webhook struct {
	URL    string
	Client *http.Client
	Log    *zap.Logger
}

func NewWebhook(url string, log *zap.Logger) *Webhook {
	return &Webhook{URL: url, Client: &http.Client{Timeout: 10 * time.Second}, Log: log}
}

// SolicitacaoCriada avisa o financeiro. Falha de envio só é logada; a
// solicitação já está gravada.
func (w *Webhook) SolicitacaoCriada(ctx context.Context, a Aviso) {
	if w == nil || w.URL == "" {
		return
	}
	if a.Mensagem == "" {
		a.Mensagem = fmt.Sprintf("Nova solicitação de liquidação nº %d aguardando aprovação", a.NumeroSolicitacao)
	}
	if err := w.enviar(ctx, a); err != nil {
		w.Log.Warn("erro ao enviar webhook", zap.Int64("solicitacao", a.NumeroSolicitacao), zap.Error(err))
	}
}

func (w *Webhook) enviar(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook respondeu %d", resp.StatusCode)
	}
	return nil
}
