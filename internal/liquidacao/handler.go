package liquidacao

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/distribuidora/api-financeiro/internal/auth"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	Service *Service
	Log     *zap.Logger
}

func NewHandler(s *Service, log *zap.Logger) *Handler {
	return &Handler{Service: s, Log: log}
}

// StatusHTTP traduz os erros do pacote para o código de resposta.
func StatusHTTP(err error) int {
	var ev *ErroValidacao
	switch {
	case errors.As(err, &ev):
		return http.StatusBadRequest
	case errors.Is(err, ErrPedidoNaoEncontrado),
		errors.Is(err, ErrCreditoNaoEncontrado),
		errors.Is(err, ErrDepositoNaoEncontrado),
		errors.Is(err, ErrSolicitacaoNaoEncontrada),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConfirmacaoCredito),
		errors.Is(err, ErrConfirmacaoParcial):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrPedidoDeOutroRepresentante):
		return http.StatusForbidden
	case errors.Is(err, ErrPedidoNaoLiquidavel),
		errors.Is(err, ErrCreditoIndisponivel),
		errors.Is(err, ErrCreditoDeOutroCliente),
		errors.Is(err, ErrDepositoDeOutroCliente),
		errors.Is(err, ErrExcedenteMultiCliente),
		errors.Is(err, ErrSolicitacaoNaoPendente):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (h *Handler) erro(w http.ResponseWriter, err error, msg500 string) {
	status := StatusHTTP(err)
	if status == http.StatusInternalServerError {
		h.Log.Error(msg500, zap.Error(err))
		http.Error(w, msg500, status)
		return
	}
	http.Error(w, err.Error(), status)
}

func responder(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func lerRequisicao(w http.ResponseWriter, r *http.Request) (Requisicao, bool) {
	var req Requisicao
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func idDaRota(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		http.Error(w, "ID da solicitação inválido", http.StatusBadRequest)
		return 0, false
	}
	return uint(id), true
}

// POST /liquidacoes/previa
func (h *Handler) Previa(w http.ResponseWriter, r *http.Request) {
	req, ok := lerRequisicao(w, r)
	if !ok {
		return
	}
	u, _ := auth.UsuarioDe(r.Context())
	p, err := h.Service.Previa(r.Context(), req, u)
	if err != nil {
		h.erro(w, err, "Erro ao calcular prévia")
		return
	}
	responder(w, http.StatusOK, p)
}

// POST /liquidacoes
func (h *Handler) Liquidar(w http.ResponseWriter, r *http.Request) {
	req, ok := lerRequisicao(w, r)
	if !ok {
		return
	}
	if k := r.Header.Get("Idempotency-Key"); k != "" && req.ChaveIdempotencia == "" {
		req.ChaveIdempotencia = k
	}
	u, _ := auth.UsuarioDe(r.Context())
	comp, err := h.Service.Liquidar(r.Context(), req, u)
	if err != nil {
		h.erro(w, err, "Erro ao liquidar")
		return
	}
	status := http.StatusCreated
	if comp.Repetido {
		status = http.StatusOK
	}
	responder(w, status, comp)
}

// POST /liquidacoes/solicitacoes
func (h *Handler) Solicitar(w http.ResponseWriter, r *http.Request) {
	req, ok := lerRequisicao(w, r)
	if !ok {
		return
	}
	if k := r.Header.Get("Idempotency-Key"); k != "" && req.ChaveIdempotencia == "" {
		req.ChaveIdempotencia = k
	}
	u, _ := auth.UsuarioDe(r.Context())
	sol, err := h.Service.Solicitar(r.Context(), req, u)
	if err != nil {
		h.erro(w, err, "Erro ao registrar solicitação")
		return
	}
	responder(w, http.StatusCreated, sol)
}

// GET /liquidacoes/solicitacoes?status=pendente
func (h *Handler) ListarSolicitacoes(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	switch status {
	case "", StatusPendente, StatusAprovada, StatusRejeitada:
	default:
		http.Error(w, "Status inválido", http.StatusBadRequest)
		return
	}
	u, _ := auth.UsuarioDe(r.Context())
	list, err := h.Service.ListarSolicitacoes(r.Context(), FiltroSolicitacao{
		Status:              status,
		RepresentanteCodigo: r.URL.Query().Get("representante"),
	}, u)
	if err != nil {
		h.erro(w, err, "Erro ao listar solicitações")
		return
	}
	responder(w, http.StatusOK, list)
}

// POST /liquidacoes/solicitacoes/{id}/aprovar
func (h *Handler) Aprovar(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(w, r)
	if !ok {
		return
	}
	var in AprovarDTO
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "JSON mal formado", http.StatusBadRequest)
			return
		}
	}
	u, _ := auth.UsuarioDe(r.Context())
	comp, err := h.Service.Aprovar(r.Context(), id, in.Ajustes, u)
	if err != nil {
		h.erro(w, err, "Erro ao aprovar solicitação")
		return
	}
	responder(w, http.StatusOK, comp)
}

// POST /liquidacoes/solicitacoes/{id}/rejeitar
func (h *Handler) Rejeitar(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(w, r)
	if !ok {
		return
	}
	var in RejeitarDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	u, _ := auth.UsuarioDe(r.Context())
	sol, err := h.Service.Rejeitar(r.Context(), id, in.Motivo, u)
	if err != nil {
		h.erro(w, err, "Erro ao rejeitar solicitação")
		return
	}
	responder(w, http.StatusOK, sol)
}
