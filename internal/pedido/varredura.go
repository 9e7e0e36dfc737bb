package pedido

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// RepositorioVarredura é o que a varredura de resíduos precisa do armazenamento.
type RepositorioVarredura interface {
	ListarEmAberto(ctx context.Context) ([]Pedido, error)
	Atualizar(ctx context.Context, p *Pedido) error
}

// VarrerResiduais quita pedidos com saldo entre um centavo e a tolerância
// residual (0,10), sobra de arredondamentos antigos. Retorna os pedidos quitados.
func VarrerResiduais(ctx context.Context, repo RepositorioVarredura, agora time.Time, log *zap.Logger) ([]Pedido, error) {
	abertos, err := repo.ListarEmAberto(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar pedidos em aberto: %w", err)
	}

	var quitados []Pedido
	for i := range abertos {
		p := &abertos[i]
		saldo := p.SaldoAtual()
		if !p.QuitarResidual(agora) {
			continue
		}
		if err := repo.Atualizar(ctx, p); err != nil {
			return quitados, fmt.Errorf("quitar resíduo do pedido %s: %w", p.Numero, err)
		}
		log.Info("resíduo quitado",
			zap.String("pedido", p.Numero),
			zap.String("residuo", saldo.StringFixed(2)))
		quitados = append(quitados, *p)
	}
	return quitados, nil
}
