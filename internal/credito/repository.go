package credito

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) WithDB(db *gorm.DB) *Repository {
	if db == nil {
		db = r.DB
	}
	return &Repository{DB: db}
}

func (r *Repository) Criar(ctx context.Context, c *Credito) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

// BuscarPorIDs carrega créditos sem lock, na ordem dos ids. Use
// BuscarParaAtualizar dentro de transação.
func (r *Repository) BuscarPorIDs(ctx context.Context, ids []uint) ([]Credito, error) {
	return r.buscar(r.DB.WithContext(ctx), ids)
}

func (r *Repository) BuscarParaAtualizar(ctx context.Context, ids []uint) ([]Credito, error) {
	return r.buscar(r.DB.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), ids)
}

func (r *Repository) buscar(q *gorm.DB, ids []uint) ([]Credito, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []Credito
	if err := q.Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, err
	}
	porID := make(map[uint]Credito, len(list))
	for _, c := range list {
		porID[c.ID] = c
	}
	out := make([]Credito, 0, len(ids))
	for _, id := range ids {
		c, ok := porID[id]
		if !ok {
			return nil, gorm.ErrRecordNotFound
		}
		out = append(out, c)
	}
	return out, nil
}

// ListarPorCliente lista os créditos do cliente; status vazio traz todos.
func (r *Repository) ListarPorCliente(ctx context.Context, clienteCodigo, status string) ([]Credito, error) {
	q := r.DB.WithContext(ctx).Where("cliente_codigo = ?", clienteCodigo)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []Credito
	err := q.Order("numero ASC").Find(&list).Error
	return list, err
}

func (r *Repository) Atualizar(ctx context.Context, c *Credito) error {
	return r.DB.WithContext(ctx).Save(c).Error
}
