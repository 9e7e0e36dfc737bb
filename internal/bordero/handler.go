package bordero

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/distribuidora/api-financeiro/internal/auth"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type leitor interface {
	BuscarPorNumero(ctx context.Context, numero int64) (*Bordero, error)
}

// Carteira responde se os pedidos de um borderô são do representante.
type Carteira interface {
	SaoDoRepresentante(ctx context.Context, representante string, ids []uint) (bool, error)
}

type Handler struct {
	Repo     leitor
	Carteira Carteira
}

func NewHandler(repo *Repository, carteira Carteira) *Handler {
	return &Handler{Repo: repo, Carteira: carteira}
}

// GET /borderos/{numero}
// Representante só enxerga borderô cujos pedidos são todos dele.
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	numero, err := strconv.ParseInt(mux.Vars(r)["numero"], 10, 64)
	if err != nil || numero <= 0 {
		http.Error(w, "Número do borderô inválido", http.StatusBadRequest)
		return
	}
	b, err := h.Repo.BuscarPorNumero(r.Context(), numero)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Borderô não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao buscar borderô", http.StatusInternalServerError)
		return
	}
	if u, ok := auth.UsuarioDe(r.Context()); ok && u.Representante() {
		dele, err := h.Carteira.SaoDoRepresentante(r.Context(), u.RepresentanteCodigo, b.PedidoIDs)
		if err != nil {
			http.Error(w, "Erro ao buscar borderô", http.StatusInternalServerError)
			return
		}
		if !dele {
			http.Error(w, "Acesso negado", http.StatusForbidden)
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(b)
}
