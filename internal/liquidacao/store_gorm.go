package liquidacao

import (
	"context"

	"github.com/distribuidora/api-financeiro/internal/bordero"
	"github.com/distribuidora/api-financeiro/internal/credito"
	"github.com/distribuidora/api-financeiro/internal/deposito"
	"github.com/distribuidora/api-financeiro/internal/pedido"
	"github.com/distribuidora/api-financeiro/internal/sequencia"
	"gorm.io/gorm"
)

// GormStore implementa Store sobre os repositórios de cada pacote.
type GormStore struct {
	DB *gorm.DB

	pedidos      *pedido.Repository
	creditos     *credito.Repository
	depositos    *deposito.Repository
	borderos     *bordero.Repository
	solicitacoes *Repository
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		DB:           db,
		pedidos:      pedido.NewRepository(db),
		creditos:     credito.NewRepository(db),
		depositos:    deposito.NewRepository(db),
		borderos:     bordero.NewRepository(db),
		solicitacoes: NewRepository(db),
	}
}

func (s *GormStore) Pedidos(ctx context.Context, ids []uint) ([]pedido.Pedido, error) {
	return s.pedidos.BuscarPorIDs(ctx, ids)
}

func (s *GormStore) Creditos(ctx context.Context, ids []uint) ([]credito.Credito, error) {
	return s.creditos.BuscarPorIDs(ctx, ids)
}

func (s *GormStore) Depositos(ctx context.Context, ids []uint) ([]deposito.Deposito, error) {
	return s.depositos.BuscarPorIDs(ctx, ids)
}

func (s *GormStore) BorderoPorNumero(ctx context.Context, numero int64) (*bordero.Bordero, error) {
	return s.borderos.BuscarPorNumero(ctx, numero)
}

func (s *GormStore) BorderoPorChave(ctx context.Context, chave string) (*bordero.Bordero, error) {
	return s.borderos.BuscarPorChave(ctx, chave)
}

func (s *GormStore) SolicitacaoPorChave(ctx context.Context, chave string) (*LiquidacaoPendente, error) {
	return s.solicitacoes.BuscarPorChave(ctx, chave)
}

func (s *GormStore) Solicitacao(ctx context.Context, id uint) (*LiquidacaoPendente, error) {
	return s.solicitacoes.BuscarPorID(ctx, id)
}

func (s *GormStore) ListarSolicitacoes(ctx context.Context, f FiltroSolicitacao) ([]LiquidacaoPendente, error) {
	return s.solicitacoes.Listar(ctx, f)
}

func (s *GormStore) Transacao(ctx context.Context, fn func(tx Tx) error) error {
	return s.DB.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		return fn(&gormTx{
			db:           db,
			pedidos:      s.pedidos.WithDB(db),
			creditos:     s.creditos.WithDB(db),
			depositos:    s.depositos.WithDB(db),
			borderos:     s.borderos.WithDB(db),
			solicitacoes: s.solicitacoes.WithDB(db),
		})
	})
}

type gormTx struct {
	db *gorm.DB

	pedidos      *pedido.Repository
	creditos     *credito.Repository
	depositos    *deposito.Repository
	borderos     *bordero.Repository
	solicitacoes *Repository
}

func (t *gormTx) Pedidos(ctx context.Context, ids []uint) ([]pedido.Pedido, error) {
	return t.pedidos.BuscarParaAtualizar(ctx, ids)
}

func (t *gormTx) Creditos(ctx context.Context, ids []uint) ([]credito.Credito, error) {
	return t.creditos.BuscarParaAtualizar(ctx, ids)
}

func (t *gormTx) Depositos(ctx context.Context, ids []uint) ([]deposito.Deposito, error) {
	return t.depositos.BuscarParaAtualizar(ctx, ids)
}

func (t *gormTx) SolicitacaoParaAtualizar(ctx context.Context, id uint) (*LiquidacaoPendente, error) {
	return t.solicitacoes.BuscarParaAtualizar(ctx, id)
}

func (t *gormTx) ProximoNumero(ctx context.Context, nome string) (int64, error) {
	return sequencia.Proximo(ctx, t.db, nome)
}

func (t *gormTx) CriarBordero(ctx context.Context, b *bordero.Bordero) error {
	return t.borderos.Criar(ctx, b)
}

func (t *gormTx) AtualizarPedido(ctx context.Context, p *pedido.Pedido) error {
	return t.pedidos.Atualizar(ctx, p)
}

func (t *gormTx) AtualizarCredito(ctx context.Context, c *credito.Credito) error {
	return t.creditos.Atualizar(ctx, c)
}

func (t *gormTx) CriarCredito(ctx context.Context, c *credito.Credito) error {
	return t.creditos.Criar(ctx, c)
}

func (t *gormTx) AtualizarDeposito(ctx context.Context, d *deposito.Deposito) error {
	return t.depositos.Atualizar(ctx, d)
}

func (t *gormTx) CriarSolicitacao(ctx context.Context, s *LiquidacaoPendente) error {
	return t.solicitacoes.Criar(ctx, s)
}

func (t *gormTx) AtualizarSolicitacao(ctx context.Context, s *LiquidacaoPendente) error {
	return t.solicitacoes.Atualizar(ctx, s)
}
