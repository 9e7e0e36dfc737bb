// internal/pedido/repository.go
package pedido

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Filtro restringe a listagem de pedidos. Campos vazios não filtram.
type Filtro struct {
	ClienteCodigo       string
	RepresentanteCodigo string
	Status              []string
}

// Repository encapsula o acesso a dados de pedidos.
type Repository struct {
	DB *gorm.DB
}

// NewRepository instancia um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// WithDB retorna uma cópia do repo usando um *gorm.DB específico (ex.: tx).
func (r *Repository) WithDB(db *gorm.DB) *Repository {
	if db == nil {
		db = r.DB
	}
	return &Repository{DB: db}
}

func (r *Repository) Criar(ctx context.Context, p *Pedido) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

// BuscarPorID busca um pedido; retorna gorm.ErrRecordNotFound se não existir.
func (r *Repository) BuscarPorID(ctx context.Context, id uint) (*Pedido, error) {
	var p Pedido
	if err := r.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// BuscarPorIDs carrega os pedidos sem lock, na ordem dos ids informados.
func (r *Repository) BuscarPorIDs(ctx context.Context, ids []uint) ([]Pedido, error) {
	return r.buscar(r.DB.WithContext(ctx), ids)
}

// BuscarParaAtualizar carrega os pedidos com lock de linha, na ordem dos ids informados.
// Deve ser chamado dentro de transação.
func (r *Repository) BuscarParaAtualizar(ctx context.Context, ids []uint) ([]Pedido, error) {
	return r.buscar(r.DB.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), ids)
}

func (r *Repository) buscar(q *gorm.DB, ids []uint) ([]Pedido, error) {
	var list []Pedido
	if err := q.Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, err
	}
	porID := make(map[uint]Pedido, len(list))
	for _, p := range list {
		porID[p.ID] = p
	}
	ordenados := make([]Pedido, 0, len(ids))
	for _, id := range ids {
		p, ok := porID[id]
		if !ok {
			return nil, gorm.ErrRecordNotFound
		}
		ordenados = append(ordenados, p)
	}
	return ordenados, nil
}

// Listar retorna os pedidos que atendem ao filtro, mais recentes primeiro.
func (r *Repository) Listar(ctx context.Context, f Filtro) ([]Pedido, error) {
	q := r.DB.WithContext(ctx).Model(&Pedido{})
	if f.ClienteCodigo != "" {
		q = q.Where("cliente_codigo = ?", f.ClienteCodigo)
	}
	if f.RepresentanteCodigo != "" {
		q = q.Where("representante_codigo = ?", f.RepresentanteCodigo)
	}
	if len(f.Status) > 0 {
		q = q.Where("status IN ?", f.Status)
	}
	var list []Pedido
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

// ListarEmAberto retorna pedidos que ainda aceitam pagamento.
func (r *Repository) ListarEmAberto(ctx context.Context) ([]Pedido, error) {
	var list []Pedido
	err := r.DB.WithContext(ctx).
		Where("status NOT IN ?", []string{StatusPago, StatusCancelado}).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

// ListarPagosSemComissao retorna pedidos pagos que ainda não têm lançamento de comissão.
func (r *Repository) ListarPagosSemComissao(ctx context.Context) ([]Pedido, error) {
	var list []Pedido
	err := r.DB.WithContext(ctx).
		Where("status = ?", StatusPago).
		Where("representante_codigo <> ''").
		Where("NOT EXISTS (SELECT 1 FROM lancamentos_comissao lc WHERE lc.pedido_id = pedidos.id)").
		Order("id ASC").
		Find(&list).Error
	return list, err
}

// Atualizar salva todos os campos do pedido (Save exige PK).
func (r *Repository) Atualizar(ctx context.Context, p *Pedido) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

// AtendeCliente informa se o representante tem algum pedido do cliente.
func (r *Repository) AtendeCliente(ctx context.Context, representante, cliente string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&Pedido{}).
		Where("cliente_codigo = ? AND representante_codigo = ?", cliente, representante).
		Count(&n).Error
	return n > 0, err
}

// SaoDoRepresentante informa se todos os pedidos pertencem ao representante.
func (r *Repository) SaoDoRepresentante(ctx context.Context, representante string, ids []uint) (bool, error) {
	if len(ids) == 0 {
		return false, nil
	}
	var n int64
	err := r.DB.WithContext(ctx).Model(&Pedido{}).
		Where("id IN ? AND representante_codigo = ?", ids, representante).
		Count(&n).Error
	return n == int64(len(ids)), err
}
