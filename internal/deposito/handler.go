package deposito

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/distribuidora/api-financeiro/internal/auth"
	"github.com/distribuidora/api-financeiro/internal/dinheiro"
	"github.com/go-playground/validator/v10"
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
	Validate *validator.Validate
	Log      *zap.Logger
}

func NewHandler(repo *Repository, carteira Carteira, v *validator.Validate, log *zap.Logger) *Handler {
	return &Handler{Repo: repo, Carteira: carteira, Validate: v, Log: log}
}

// POST /depositos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var in CriarDepositoDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(in); err != nil {
		http.Error(w, "Dados inválidos: "+err.Error(), http.StatusBadRequest)
		return
	}
	valor := dinheiro.Arredondar(in.Valor)
	if !dinheiro.Positivo(valor) {
		http.Error(w, "O valor do depósito deve ser positivo", http.StatusBadRequest)
		return
	}

	d := &Deposito{
		ClienteCodigo:   strings.TrimSpace(in.ClienteCodigo),
		ClienteNome:     in.ClienteNome,
		Descricao:       in.Descricao,
		Valor:           valor,
		SaldoDisponivel: valor,
		PedidoIDs:       in.PedidoIDs,
	}
	if err := h.Repo.Criar(r.Context(), d); err != nil {
		h.Log.Error("erro ao criar depósito", zap.String("cliente", d.ClienteCodigo), zap.Error(err))
		http.Error(w, "Erro ao criar depósito", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(d)
}

// GET /clientes/{codigo}/depositos?saldo=1
func (h *Handler) ListarPorCliente(w http.ResponseWriter, r *http.Request) {
	codigo := mux.Vars(r)["codigo"]
	if u, ok := auth.UsuarioDe(r.Context()); ok && u.Representante() {
		atende, err := h.Carteira.AtendeCliente(r.Context(), u.RepresentanteCodigo, codigo)
		if err != nil {
			h.Log.Error("erro ao conferir carteira", zap.String("cliente", codigo), zap.Error(err))
			http.Error(w, "Erro ao listar depósitos", http.StatusInternalServerError)
			return
		}
		if !atende {
			http.Error(w, "Acesso negado", http.StatusForbidden)
			return
		}
	}
	list, err := h.Repo.ListarPorCliente(r.Context(), codigo, r.URL.Query().Get("saldo") == "1")
	if err != nil {
		http.Error(w, "Erro ao listar depósitos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}
