package liquidacao

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persiste as solicitações de liquidação.
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

func (r *Repository) Criar(ctx context.Context, s *LiquidacaoPendente) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *Repository) BuscarPorID(ctx context.Context, id uint) (*LiquidacaoPendente, error) {
	var s LiquidacaoPendente
	if err := r.DB.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) BuscarParaAtualizar(ctx context.Context, id uint) (*LiquidacaoPendente, error) {
	var s LiquidacaoPendente
	err := r.DB.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) BuscarPorChave(ctx context.Context, chave string) (*LiquidacaoPendente, error) {
	var s LiquidacaoPendente
	err := r.DB.WithContext(ctx).Where("chave_idempotencia = ?", chave).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) Listar(ctx context.Context, f FiltroSolicitacao) ([]LiquidacaoPendente, error) {
	q := r.DB.WithContext(ctx).Model(&LiquidacaoPendente{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.RepresentanteCodigo != "" {
		q = q.Where("representante_codigo = ?", f.RepresentanteCodigo)
	}
	var list []LiquidacaoPendente
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *Repository) Atualizar(ctx context.Context, s *LiquidacaoPendente) error {
	return r.DB.WithContext(ctx).Save(s).Error
}
