// internal/comissao/repository.go
package comissao

import (
	"context"
	"errors"

	"github.com/distribuidora/api-financeiro/internal/contapagar"
	"github.com/distribuidora/api-financeiro/internal/pedido"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Filtro restringe a listagem de lançamentos. Campos vazios não filtram.
type Filtro struct {
	RepresentanteCodigo string
	Mes                 string
	Status              string
}

// Repositorio é o acesso a dados do razão de comissões. Os métodos
// "ParaAtualizar" e TravarMes travam linhas e só fazem sentido dentro de
// Transacao.
type Repositorio interface {
	Transacao(ctx context.Context, fn func(r Repositorio) error) error

	PedidosPagosSemLancamento(ctx context.Context) ([]pedido.Pedido, error)
	// CriarLancamento devolve false quando o pedido já tinha lançamento.
	CriarLancamento(ctx context.Context, l *LancamentoComissao) (bool, error)
	Lancamentos(ctx context.Context, f Filtro) ([]LancamentoComissao, error)
	LancamentoParaAtualizar(ctx context.Context, id uint) (*LancamentoComissao, error)
	LancamentosAbertosParaAtualizar(ctx context.Context, representante, mes string) ([]LancamentoComissao, error)
	AtualizarLancamento(ctx context.Context, l *LancamentoComissao) error

	// Fechamento devolve nil, nil quando o mês nunca foi tocado.
	Fechamento(ctx context.Context, representante, mes string) (*FechamentoComissao, error)
	// TravarMes garante a linha de fechamento (rascunho) e trava para atualização.
	TravarMes(ctx context.Context, representante, mes string) (*FechamentoComissao, error)
	SalvarFechamento(ctx context.Context, f *FechamentoComissao) error
	RepresentantesComAbertos(ctx context.Context, mes string) ([]string, error)

	CriarContaPagar(ctx context.Context, c *contapagar.ContaPagar) error
}

// Repository implementa Repositorio sobre gorm.
type Repository struct {
	DB      *gorm.DB
	pedidos *pedido.Repository
	contas  *contapagar.Repository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db, pedidos: pedido.NewRepository(db), contas: contapagar.NewRepository(db)}
}

// WithDB retorna uma cópia do repo usando um *gorm.DB específico (ex.: tx).
func (r *Repository) WithDB(db *gorm.DB) *Repository {
	if db == nil {
		db = r.DB
	}
	return NewRepository(db)
}

func (r *Repository) Transacao(ctx context.Context, fn func(Repositorio) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithDB(tx))
	})
}

func (r *Repository) PedidosPagosSemLancamento(ctx context.Context) ([]pedido.Pedido, error) {
	return r.pedidos.ListarPagosSemComissao(ctx)
}

func (r *Repository) CriarLancamento(ctx context.Context, l *LancamentoComissao) (bool, error) {
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "pedido_id"}}, DoNothing: true}).
		Create(l)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *Repository) Lancamentos(ctx context.Context, f Filtro) ([]LancamentoComissao, error) {
	q := r.DB.WithContext(ctx).Model(&LancamentoComissao{})
	if f.RepresentanteCodigo != "" {
		q = q.Where("representante_codigo = ?", f.RepresentanteCodigo)
	}
	if f.Mes != "" {
		q = q.Where("mes_competencia = ?", f.Mes)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var list []LancamentoComissao
	err := q.Order("mes_competencia ASC, id ASC").Find(&list).Error
	return list, err
}

func (r *Repository) LancamentoParaAtualizar(ctx context.Context, id uint) (*LancamentoComissao, error) {
	var l LancamentoComissao
	err := r.DB.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&l, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLancamentoNaoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Repository) LancamentosAbertosParaAtualizar(ctx context.Context, representante, mes string) ([]LancamentoComissao, error) {
	var list []LancamentoComissao
	err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("representante_codigo = ? AND mes_competencia = ? AND status = ?", representante, mes, StatusAberto).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *Repository) AtualizarLancamento(ctx context.Context, l *LancamentoComissao) error {
	return r.DB.WithContext(ctx).Save(l).Error
}

func (r *Repository) Fechamento(ctx context.Context, representante, mes string) (*FechamentoComissao, error) {
	var f FechamentoComissao
	err := r.DB.WithContext(ctx).
		Where("representante_codigo = ? AND mes = ?", representante, mes).
		First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *Repository) TravarMes(ctx context.Context, representante, mes string) (*FechamentoComissao, error) {
	db := r.DB.WithContext(ctx)
	rascunho := FechamentoComissao{RepresentanteCodigo: representante, Mes: mes, Status: StatusAberto}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "representante_codigo"}, {Name: "mes"}},
		DoNothing: true,
	}).Create(&rascunho).Error
	if err != nil {
		return nil, err
	}
	var f FechamentoComissao
	err = db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("representante_codigo = ? AND mes = ?", representante, mes).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *Repository) SalvarFechamento(ctx context.Context, f *FechamentoComissao) error {
	return r.DB.WithContext(ctx).Save(f).Error
}

func (r *Repository) RepresentantesComAbertos(ctx context.Context, mes string) ([]string, error) {
	var codigos []string
	err := r.DB.WithContext(ctx).Model(&LancamentoComissao{}).
		Where("mes_competencia = ? AND status = ?", mes, StatusAberto).
		Distinct().
		Order("representante_codigo ASC").
		Pluck("representante_codigo", &codigos).Error
	return codigos, err
}

func (r *Repository) CriarContaPagar(ctx context.Context, c *contapagar.ContaPagar) error {
	return r.contas.Criar(ctx, c)
}
