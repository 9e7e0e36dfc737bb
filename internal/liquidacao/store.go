package liquidacao

import (
	"context"

	"github.com/distribuidora/api-financeiro/internal/bordero"
	"github.com/distribuidora/api-financeiro/internal/credito"
	"github.com/distribuidora/api-financeiro/internal/deposito"
	"github.com/distribuidora/api-financeiro/internal/pedido"
)

// Fonte carrega o que entra numa alocação. Fora de transação lê sem lock;
// dentro dela (Tx) trava as linhas até o commit. Ids ausentes retornam
// gorm.ErrRecordNotFound.
type Fonte interface {
	Pedidos(ctx context.Context, ids []uint) ([]pedido.Pedido, error)
	Creditos(ctx context.Context, ids []uint) ([]credito.Credito, error)
	Depositos(ctx context.Context, ids []uint) ([]deposito.Deposito, error)
}

type FiltroSolicitacao struct {
	Status              string
	RepresentanteCodigo string
}

type Leitura interface {
	Fonte
	BorderoPorNumero(ctx context.Context, numero int64) (*bordero.Bordero, error)
	// BorderoPorChave e SolicitacaoPorChave devolvem nil, nil quando a chave é nova.
	BorderoPorChave(ctx context.Context, chave string) (*bordero.Bordero, error)
	SolicitacaoPorChave(ctx context.Context, chave string) (*LiquidacaoPendente, error)
	Solicitacao(ctx context.Context, id uint) (*LiquidacaoPendente, error)
	ListarSolicitacoes(ctx context.Context, f FiltroSolicitacao) ([]LiquidacaoPendente, error)
}

// Tx é a visão do banco dentro da transação de commit.
type Tx interface {
	Fonte
	SolicitacaoParaAtualizar(ctx context.Context, id uint) (*LiquidacaoPendente, error)
	ProximoNumero(ctx context.Context, sequencia string) (int64, error)

	CriarBordero(ctx context.Context, b *bordero.Bordero) error
	AtualizarPedido(ctx context.Context, p *pedido.Pedido) error
	AtualizarCredito(ctx context.Context, c *credito.Credito) error
	CriarCredito(ctx context.Context, c *credito.Credito) error
	AtualizarDeposito(ctx context.Context, d *deposito.Deposito) error
	CriarSolicitacao(ctx context.Context, s *LiquidacaoPendente) error
	AtualizarSolicitacao(ctx context.Context, s *LiquidacaoPendente) error
}

type Store interface {
	Leitura
	// Transacao roda fn numa transação; qualquer erro desfaz tudo.
	Transacao(ctx context.Context, fn func(tx Tx) error) error
}
