package deposito

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

func (r *Repository) Criar(ctx context.Context, d *Deposito) error {
	return r.DB.WithContext(ctx).Create(d).Error
}

func (r *Repository) BuscarPorIDs(ctx context.Context, ids []uint) ([]Deposito, error) {
	return r.buscar(r.DB.WithContext(ctx), ids)
}

// BuscarParaAtualizar trava os depósitos até o fim da transação.
func (r *Repository) BuscarParaAtualizar(ctx context.Context, ids []uint) ([]Deposito, error) {
	return r.buscar(r.DB.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), ids)
}

func (r *Repository) buscar(q *gorm.DB, ids []uint) ([]Deposito, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []Deposito
	if err := q.Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, err
	}
	porID := make(map[uint]Deposito, len(list))
	for _, d := range list {
		porID[d.ID] = d
	}
	out := make([]Deposito, 0, len(ids))
	for _, id := range ids {
		d, ok := porID[id]
		if !ok {
			return nil, gorm.ErrRecordNotFound
		}
		out = append(out, d)
	}
	return out, nil
}

// ListarPorCliente traz os depósitos do cliente; comSaldo filtra os que ainda têm valor.
func (r *Repository) ListarPorCliente(ctx context.Context, clienteCodigo string, comSaldo bool) ([]Deposito, error) {
	q := r.DB.WithContext(ctx).Where("cliente_codigo = ?", clienteCodigo)
	if comSaldo {
		q = q.Where("saldo_disponivel > 0")
	}
	var list []Deposito
	err := q.Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *Repository) Atualizar(ctx context.Context, d *Deposito) error {
	return r.DB.WithContext(ctx).Save(d).Error
}
