package contapagar

import (
	"context"

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

func (r *Repository) Criar(ctx context.Context, c *ContaPagar) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *Repository) BuscarPorID(ctx context.Context, id uint) (*ContaPagar, error) {
	var c ContaPagar
	if err := r.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}
