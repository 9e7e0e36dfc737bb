package bordero

import (
	"context"
	"errors"

	"gorm.io/gorm"
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

// Criar grava o borderô junto com as linhas.
func (r *Repository) Criar(ctx context.Context, b *Bordero) error {
	return r.DB.WithContext(ctx).Create(b).Error
}

func (r *Repository) BuscarPorNumero(ctx context.Context, numero int64) (*Bordero, error) {
	var b Bordero
	err := r.DB.WithContext(ctx).Preload("Linhas").Where("numero = ?", numero).First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// BuscarPorChave devolve nil, nil quando a chave ainda não foi usada.
func (r *Repository) BuscarPorChave(ctx context.Context, chave string) (*Bordero, error) {
	var b Bordero
	err := r.DB.WithContext(ctx).Preload("Linhas").Where("chave_idempotencia = ?", chave).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
