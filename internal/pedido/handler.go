package pedido

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/distribuidora/api-financeiro/internal/auth"
	"github.com/distribuidora/api-financeiro/internal/dinheiro"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	Repo     *Repository
	Validate *validator.Validate
	Log      *zap.Logger
}

func NewHandler(repo *Repository, v *validator.Validate, log *zap.Logger) *Handler {
	return &Handler{Repo: repo, Validate: v, Log: log}
}

// POST /pedidos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var in CriarPedidoDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(in); err != nil {
		http.Error(w, "Dados inválidos: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !in.ValorPedido.IsPositive() {
		http.Error(w, "O valor do pedido deve ser positivo", http.StatusBadRequest)
		return
	}

	p := &Pedido{
		Numero:              strings.TrimSpace(in.Numero),
		ClienteCodigo:       strings.TrimSpace(in.ClienteCodigo),
		ClienteNome:         in.ClienteNome,
		RepresentanteCodigo: strings.TrimSpace(in.RepresentanteCodigo),
		RepresentanteNome:   in.RepresentanteNome,
		PercentualComissao:  in.PercentualComissao,
		ValorPedido:         dinheiro.Arredondar(in.ValorPedido),
		Status:              StatusAberto,
		DataEntrega:         in.DataEntrega,
	}
	saldo := p.ValorPedido
	p.SaldoRestante = &saldo

	if err := h.Repo.Criar(r.Context(), p); err != nil {
		h.Log.Error("erro ao criar pedido", zap.String("numero", p.Numero), zap.Error(err))
		http.Error(w, "Erro ao criar pedido", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(p)
}

// GET /pedidos?cliente=&representante=&status=aberto,parcial
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := Filtro{
		ClienteCodigo:       q.Get("cliente"),
		RepresentanteCodigo: q.Get("representante"),
	}
	if s := q.Get("status"); s != "" {
		f.Status = strings.Split(s, ",")
	}

	// representante só enxerga a própria carteira
	if u, ok := auth.UsuarioDe(r.Context()); ok && !u.IsAdmin && u.RepresentanteCodigo != "" {
		f.RepresentanteCodigo = u.RepresentanteCodigo
	}

	list, err := h.Repo.Listar(r.Context(), f)
	if err != nil {
		http.Error(w, "Erro ao listar pedidos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// GET /pedidos/{id}
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID do pedido inválido", http.StatusBadRequest)
		return
	}
	p, err := h.Repo.BuscarPorID(r.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Pedido não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao buscar pedido", http.StatusInternalServerError)
		return
	}
	if u, ok := auth.UsuarioDe(r.Context()); ok && u.Representante() && p.RepresentanteCodigo != u.RepresentanteCodigo {
		http.Error(w, "Acesso negado", http.StatusForbidden)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// PUT /pedidos/{id}
// Regra: não permite mexer no status de pedido já pago.
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID do pedido inválido", http.StatusBadRequest)
		return
	}

	var in AtualizarPedidoDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(in); err != nil {
		http.Error(w, "Dados inválidos: "+err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.Repo.BuscarPorID(r.Context(), uint(id))
	if err != nil {
		http.Error(w, "Pedido não encontrado", http.StatusNotFound)
		return
	}
	if in.Status != "" && in.Status != p.Status && !p.Liquidavel() {
		http.Error(w, "Não é permitido alterar o status de um pedido pago ou cancelado", http.StatusConflict)
		return
	}

	if in.ClienteNome != "" {
		p.ClienteNome = in.ClienteNome
	}
	if in.RepresentanteNome != "" {
		p.RepresentanteNome = in.RepresentanteNome
	}
	if in.DataEntrega != nil {
		p.DataEntrega = in.DataEntrega
	}
	u, _ := auth.UsuarioDe(r.Context())
	if in.Status != "" && in.Status != p.Status {
		p.Anotar(time.Now(), "Status alterado de "+p.Status+" para "+in.Status+" por "+u.Email)
		p.Status = in.Status
	}
	if obs := strings.TrimSpace(in.Observacao); obs != "" {
		p.Anotar(time.Now(), obs+" ("+u.Email+")")
	}

	if err := h.Repo.Atualizar(r.Context(), p); err != nil {
		http.Error(w, "Erro ao atualizar pedido", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// POST /pedidos/varrer-residuais
func (h *Handler) VarrerResiduais(w http.ResponseWriter, r *http.Request) {
	quitados, err := VarrerResiduais(r.Context(), h.Repo, time.Now(), h.Log)
	if err != nil {
		h.Log.Error("erro na varredura de resíduos", zap.Error(err))
		http.Error(w, "Erro ao varrer resíduos", http.StatusInternalServerError)
		return
	}
	numeros := make([]string, 0, len(quitados))
	for _, p := range quitados {
		numeros = append(numeros, p.Numero)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"quitados": numeros, "total": len(numeros)})
}
