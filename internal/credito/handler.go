package credito

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/distribuidora/api-financeiro/internal/auth"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Carteira responde se o representante atende o cliente.
type Carteira interface {
	AtendeCliente(ctx context.Context, representante, cliente string) (bool, error)
}

type Handler struct {
	Repo     *Repository
	Carteira Carteira
	Log      *zap.Logger
}

func NewHandler(repo *Repository, carteira Carteira, log *zap.Logger) *Handler {
	return &Handler{Repo: repo, Carteira: carteira, Log: log}
}

// permitido barra o representante fora da carteira do cliente e já responde o erro.
func (h *Handler) permitido(w http.ResponseWriter, r *http.Request, cliente string) bool {
	u, ok := auth.UsuarioDe(r.Context())
	if !ok || !u.Representante() {
		return true
	}
	atende, err := h.Carteira.AtendeCliente(r.Context(), u.RepresentanteCodigo, cliente)
	if err != nil {
		h.Log.Error("erro ao conferir carteira", zap.String("cliente", cliente), zap.Error(err))
		http.Error(w, "Erro ao listar créditos", http.StatusInternalServerError)
		return false
	}
	if !atende {
		http.Error(w, "Acesso negado", http.StatusForbidden)
		return false
	}
	return true
}

// GET /clientes/{codigo}/creditos?status=disponivel
func (h *Handler) ListarPorCliente(w http.ResponseWriter, r *http.Request) {
	codigo := mux.Vars(r)["codigo"]
	status := r.URL.Query().Get("status")
	if status != "" && status != StatusDisponivel && status != StatusUsado {
		http.Error(w, "Status de crédito inválido", http.StatusBadRequest)
		return
	}
	if !h.permitido(w, r, codigo) {
		return
	}

	list, err := h.Repo.ListarPorCliente(r.Context(), codigo, status)
	if err != nil {
		h.Log.Error("erro ao listar créditos", zap.String("cliente", codigo), zap.Error(err))
		http.Error(w, "Erro ao listar créditos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}
