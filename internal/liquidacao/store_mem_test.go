package liquidacao

import (
	"context"
	"errors"
	"sort"

	"github.com/distribuidora/api-financeiro/internal/bordero"
	"github.com/distribuidora/api-financeiro/internal/credito"
	"github.com/distribuidora/api-financeiro/internal/deposito"
	"github.com/distribuidora/api-financeiro/internal/pedido"
	"gorm.io/gorm"
)

var errFalhaSimulada = errors.New("falha simulada do banco")

// memStore é um Store em memória; Transacao restaura o estado anterior se fn falhar.
type memStore struct {
	pedidos      map[uint]pedido.Pedido
	creditos     map[uint]credito.Credito
	depositos    map[uint]deposito.Deposito
	borderos     map[int64]bordero.Bordero
	solicitacoes map[uint]LiquidacaoPendente
	contadores   map[string]int64

	// falharEm faz a operação de mesmo nome devolver errFalhaSimulada.
	falharEm string
}

func novoMemStore() *memStore {
	return &memStore{
		pedidos:      map[uint]pedido.Pedido{},
		creditos:     map[uint]credito.Credito{},
		depositos:    map[uint]deposito.Deposito{},
		borderos:     map[int64]bordero.Bordero{},
		solicitacoes: map[uint]LiquidacaoPendente{},
		contadores:   map[string]int64{},
	}
}

func copiar[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (m *memStore) Transacao(ctx context.Context, fn func(tx Tx) error) error {
	antes := *m
	antes.pedidos = copiar(m.pedidos)
	antes.creditos = copiar(m.creditos)
	antes.depositos = copiar(m.depositos)
	antes.borderos = copiar(m.borderos)
	antes.solicitacoes = copiar(m.solicitacoes)
	antes.contadores = copiar(m.contadores)

	if err := fn(&memTx{m}); err != nil {
		*m = antes
		return err
	}
	return nil
}

func (m *memStore) Pedidos(_ context.Context, ids []uint) ([]pedido.Pedido, error) {
	out := make([]pedido.Pedido, 0, len(ids))
	for _, id := range ids {
		p, ok := m.pedidos[id]
		if !ok {
			return nil, gorm.ErrRecordNotFound
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memStore) Creditos(_ context.Context, ids []uint) ([]credito.Credito, error) {
	out := make([]credito.Credito, 0, len(ids))
	for _, id := range ids {
		c, ok := m.creditos[id]
		if !ok {
			return nil, gorm.ErrRecordNotFound
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *memStore) Depositos(_ context.Context, ids []uint) ([]deposito.Deposito, error) {
	out := make([]deposito.Deposito, 0, len(ids))
	for _, id := range ids {
		d, ok := m.depositos[id]
		if !ok {
			return nil, gorm.ErrRecordNotFound
		}
		out = append(out, d)
	}
	return out, nil
}

func (m *memStore) BorderoPorNumero(_ context.Context, numero int64) (*bordero.Bordero, error) {
	b, ok := m.borderos[numero]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &b, nil
}

func (m *memStore) BorderoPorChave(_ context.Context, chave string) (*bordero.Bordero, error) {
	for _, b := range m.borderos {
		if b.ChaveIdempotencia == chave {
			b := b
			return &b, nil
		}
	}
	return nil, nil
}

func (m *memStore) SolicitacaoPorChave(_ context.Context, chave string) (*LiquidacaoPendente, error) {
	for _, s := range m.solicitacoes {
		if s.ChaveIdempotencia == chave {
			s := s
			return &s, nil
		}
	}
	return nil, nil
}

func (m *memStore) Solicitacao(_ context.Context, id uint) (*LiquidacaoPendente, error) {
	s, ok := m.solicitacoes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (m *memStore) ListarSolicitacoes(_ context.Context, f FiltroSolicitacao) ([]LiquidacaoPendente, error) {
	var out []LiquidacaoPendente
	for _, s := range m.solicitacoes {
		if f.Status != "" && s.Status != f.Status {
			continue
		}
		if f.RepresentanteCodigo != "" && s.RepresentanteCodigo != f.RepresentanteCodigo {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memTx struct {
	*memStore
}

func (t *memTx) falha(op string) error {
	if t.falharEm == op {
		return errFalhaSimulada
	}
	return nil
}

func (t *memTx) SolicitacaoParaAtualizar(ctx context.Context, id uint) (*LiquidacaoPendente, error) {
	return t.Solicitacao(ctx, id)
}

func (t *memTx) ProximoNumero(_ context.Context, nome string) (int64, error) {
	if err := t.falha("ProximoNumero"); err != nil {
		return 0, err
	}
	t.contadores[nome]++
	return t.contadores[nome], nil
}

func (t *memTx) CriarBordero(_ context.Context, b *bordero.Bordero) error {
	if err := t.falha("CriarBordero"); err != nil {
		return err
	}
	for _, outro := range t.borderos {
		if outro.ChaveIdempotencia == b.ChaveIdempotencia {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	b.ID = uint(len(t.borderos) + 1)
	t.borderos[b.Numero] = *b
	return nil
}

func (t *memTx) AtualizarPedido(_ context.Context, p *pedido.Pedido) error {
	if err := t.falha("AtualizarPedido"); err != nil {
		return err
	}
	t.pedidos[p.ID] = *p
	return nil
}

func (t *memTx) AtualizarCredito(_ context.Context, c *credito.Credito) error {
	if err := t.falha("AtualizarCredito"); err != nil {
		return err
	}
	t.creditos[c.ID] = *c
	return nil
}

func (t *memTx) CriarCredito(_ context.Context, c *credito.Credito) error {
	if err := t.falha("CriarCredito"); err != nil {
		return err
	}
	var maior uint
	for id := range t.creditos {
		if id > maior {
			maior = id
		}
	}
	c.ID = maior + 1
	t.creditos[c.ID] = *c
	return nil
}

func (t *memTx) AtualizarDeposito(_ context.Context, d *deposito.Deposito) error {
	if err := t.falha("AtualizarDeposito"); err != nil {
		return err
	}
	t.depositos[d.ID] = *d
	return nil
}

func (t *memTx) CriarSolicitacao(_ context.Context, s *LiquidacaoPendente) error {
	if err := t.falha("CriarSolicitacao"); err != nil {
		return err
	}
	s.ID = uint(len(t.solicitacoes) + 1)
	t.solicitacoes[s.ID] = *s
	return nil
}

func (t *memTx) AtualizarSolicitacao(_ context.Context, s *LiquidacaoPendente) error {
	if err := t.falha("AtualizarSolicitacao"); err != nil {
		return err
	}
	t.solicitacoes[s.ID] = *s
	return nil
}
