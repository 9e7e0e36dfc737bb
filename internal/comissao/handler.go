package comissao

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/distribuidora/api-financeiro/internal/auth"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	Service *Service
	Log     *zap.Logger
}

func NewHandler(s *Service, log *zap.Logger) *Handler {
	return &Handler{Service: s, Log: log}
}

func StatusHTTP(err error) int {
	switch {
	case errors.Is(err, ErrMesInvalido),
		errors.Is(err, ErrRepresentanteObrigatorio),
		errors.Is(err, ErrAjusteNegativo),
		errors.Is(err, ErrMesmoMes):
		return http.StatusBadRequest
	case errors.Is(err, ErrLancamentoNaoEncontrado):
		return http.StatusNotFound
	case errors.Is(err, ErrLancamentoFechado),
		errors.Is(err, ErrMesFechado):
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

// representante resolve de quem são os dados pedidos; representante só vê os próprios.
func representante(r *http.Request, pedido string) (string, bool) {
	u, _ := auth.UsuarioDe(r.Context())
	if u.Representante() {
		if pedido != "" && pedido != u.RepresentanteCodigo {
			return "", false
		}
		return u.RepresentanteCodigo, true
	}
	return pedido, true
}

func lancamentoID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		http.Error(w, "ID do lançamento inválido", http.StatusBadRequest)
		return 0, false
	}
	return uint(id), true
}

// POST /comissoes/sincronizar
func (h *Handler) Sincronizar(w http.ResponseWriter, r *http.Request) {
	n, err := h.Service.Sincronizar(r.Context())
	if err != nil {
		h.erro(w, err, "Erro ao sincronizar comissões")
		return
	}
	responder(w, http.StatusOK, map[string]int{"criados": n})
}

// GET /comissoes?representante=&mes=&status=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rep, ok := representante(r, q.Get("representante"))
	if !ok {
		http.Error(w, "Acesso negado", http.StatusForbidden)
		return
	}
	status := q.Get("status")
	switch status {
	case "", StatusAberto, StatusFechado:
	default:
		http.Error(w, "Status inválido", http.StatusBadRequest)
		return
	}
	list, err := h.Service.Listar(r.Context(), Filtro{RepresentanteCodigo: rep, Mes: q.Get("mes"), Status: status})
	if err != nil {
		h.erro(w, err, "Erro ao listar comissões")
		return
	}
	responder(w, http.StatusOK, list)
}

// GET /comissoes/total?representante=&mes=
func (h *Handler) Total(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rep, ok := representante(r, q.Get("representante"))
	if !ok {
		http.Error(w, "Acesso negado", http.StatusForbidden)
		return
	}
	if rep == "" {
		http.Error(w, ErrRepresentanteObrigatorio.Error(), http.StatusBadRequest)
		return
	}
	total, err := h.Service.TotalMes(r.Context(), rep, q.Get("mes"))
	if err != nil {
		h.erro(w, err, "Erro ao totalizar comissões")
		return
	}
	responder(w, http.StatusOK, map[string]any{"representanteCodigo": rep, "mes": q.Get("mes"), "total": total})
}

// POST /comissoes/{id}/antecipar
func (h *Handler) Antecipar(w http.ResponseWriter, r *http.Request) {
	id, ok := lancamentoID(w, r)
	if !ok {
		return
	}
	var in AntecipacaoDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	u, _ := auth.UsuarioDe(r.Context())
	l, err := h.Service.Antecipar(r.Context(), id, in.MesDestino, u, in.Motivo)
	if err != nil {
		h.erro(w, err, "Erro ao antecipar comissão")
		return
	}
	responder(w, http.StatusOK, l)
}

// POST /comissoes/{id}/adiar
func (h *Handler) Adiar(w http.ResponseWriter, r *http.Request) {
	id, ok := lancamentoID(w, r)
	if !ok {
		return
	}
	var in AdiamentoDTO
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "JSON mal formado", http.StatusBadRequest)
			return
		}
	}
	u, _ := auth.UsuarioDe(r.Context())
	l, err := h.Service.Adiar(r.Context(), id, u, in.Motivo)
	if err != nil {
		h.erro(w, err, "Erro ao adiar comissão")
		return
	}
	responder(w, http.StatusOK, l)
}

// POST /comissoes/fechamentos
func (h *Handler) FecharMes(w http.ResponseWriter, r *http.Request) {
	var in FecharMesDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	u, _ := auth.UsuarioDe(r.Context())
	f, err := h.Service.FecharMes(r.Context(), in.RepresentanteCodigo, in.Mes, in.Ajustes, u)
	if err != nil {
		h.erro(w, err, "Erro ao fechar comissão")
		return
	}
	responder(w, http.StatusCreated, f)
}

// POST /comissoes/fechamentos/lote
func (h *Handler) FecharLote(w http.ResponseWriter, r *http.Request) {
	var in FecharLoteDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	u, _ := auth.UsuarioDe(r.Context())
	res, err := h.Service.FecharMesTodos(r.Context(), in.Mes, u)
	if errors.Is(err, ErrMesInvalido) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil && len(res.Falhas) == 0 {
		h.erro(w, err, "Erro ao fechar comissões")
		return
	}
	if err != nil {
		h.Log.Warn("fechamento em lote com falhas", zap.String("mes", in.Mes), zap.Error(err))
	}
	responder(w, http.StatusOK, res)
}

// GET /comissoes/fechamentos/{representante}/{mes}
func (h *Handler) Fechamento(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	rep, ok := representante(r, vars["representante"])
	if !ok {
		http.Error(w, "Acesso negado", http.StatusForbidden)
		return
	}
	f, err := h.Service.Fechamento(r.Context(), rep, vars["mes"])
	if err != nil {
		h.erro(w, err, "Erro ao buscar fechamento")
		return
	}
	responder(w, http.StatusOK, f)
}

// POST /comissoes/fechamentos/{representante}/{mes}/recalcular
func (h *Handler) Recalcular(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var aj *Ajustes
	if r.ContentLength != 0 {
		aj = &Ajustes{}
		if err := json.NewDecoder(r.Body).Decode(aj); err != nil {
			http.Error(w, "JSON mal formado", http.StatusBadRequest)
			return
		}
	}
	f, err := h.Service.RecalcularRascunho(r.Context(), vars["representante"], vars["mes"], aj)
	if err != nil {
		h.erro(w, err, "Erro ao recalcular fechamento")
		return
	}
	responder(w, http.StatusOK, f)
}
