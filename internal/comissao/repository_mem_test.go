package comissao

import (
	"context"
	"errors"
	"sort"

	"github.com/distribuidora/api-financeiro/internal/contapagar"
	"github.com/distribuidora/api-financeiro/internal/pedido"
)

var errFalhaSimulada = errors.New("falha simulada do banco")

// memRepo é um Repositorio em memória; Transacao desfaz tudo se fn falhar.
type memRepo struct {
	pedidos     []pedido.Pedido
	lancamentos map[uint]LancamentoComissao
	fechamentos map[string]FechamentoComissao
	contas      map[uint]contapagar.ContaPagar
	proximoID   uint

	falharEm string
}

func novoMemRepo() *memRepo {
	return &memRepo{
		lancamentos: map[uint]LancamentoComissao{},
		fechamentos: map[string]FechamentoComissao{},
		contas:      map[uint]contapagar.ContaPagar{},
	}
}

func copiar[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func chave(rep, mes string) string { return rep + "/" + mes }

func (m *memRepo) id() uint {
	m.proximoID++
	return m.proximoID
}

func (m *memRepo) falha(op string) error {
	if m.falharEm == op {
		return errFalhaSimulada
	}
	return nil
}

func (m *memRepo) Transacao(_ context.Context, fn func(Repositorio) error) error {
	antes := *m
	antes.lancamentos = copiar(m.lancamentos)
	antes.fechamentos = copiar(m.fechamentos)
	antes.contas = copiar(m.contas)
	if err := fn(m); err != nil {
		*m = antes
		return err
	}
	return nil
}

func (m *memRepo) PedidosPagosSemLancamento(context.Context) ([]pedido.Pedido, error) {
	com := map[uint]bool{}
	for _, l := range m.lancamentos {
		com[l.PedidoID] = true
	}
	var out []pedido.Pedido
	for _, p := range m.pedidos {
		if p.Status == pedido.StatusPago && p.RepresentanteCodigo != "" && !com[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memRepo) CriarLancamento(_ context.Context, l *LancamentoComissao) (bool, error) {
	if err := m.falha("CriarLancamento"); err != nil {
		return false, err
	}
	for _, outro := range m.lancamentos {
		if outro.PedidoID == l.PedidoID {
			return false, nil
		}
	}
	l.ID = m.id()
	m.lancamentos[l.ID] = *l
	return true, nil
}

func (m *memRepo) Lancamentos(_ context.Context, f Filtro) ([]LancamentoComissao, error) {
	var out []LancamentoComissao
	for _, l := range m.lancamentos {
		if f.RepresentanteCodigo != "" && l.RepresentanteCodigo != f.RepresentanteCodigo {
			continue
		}
		if f.Mes != "" && l.MesCompetencia != f.Mes {
			continue
		}
		if f.Status != "" && l.Status != f.Status {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRepo) LancamentoParaAtualizar(_ context.Context, id uint) (*LancamentoComissao, error) {
	l, ok := m.lancamentos[id]
	if !ok {
		return nil, ErrLancamentoNaoEncontrado
	}
	return &l, nil
}

func (m *memRepo) LancamentosAbertosParaAtualizar(ctx context.Context, rep, mes string) ([]LancamentoComissao, error) {
	return m.Lancamentos(ctx, Filtro{RepresentanteCodigo: rep, Mes: mes, Status: StatusAberto})
}

func (m *memRepo) AtualizarLancamento(_ context.Context, l *LancamentoComissao) error {
	if err := m.falha("AtualizarLancamento"); err != nil {
		return err
	}
	m.lancamentos[l.ID] = *l
	return nil
}

func (m *memRepo) Fechamento(_ context.Context, rep, mes string) (*FechamentoComissao, error) {
	f, ok := m.fechamentos[chave(rep, mes)]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

func (m *memRepo) TravarMes(_ context.Context, rep, mes string) (*FechamentoComissao, error) {
	f, ok := m.fechamentos[chave(rep, mes)]
	if !ok {
		f = FechamentoComissao{ID: m.id(), RepresentanteCodigo: rep, Mes: mes, Status: StatusAberto}
		m.fechamentos[chave(rep, mes)] = f
	}
	return &f, nil
}

func (m *memRepo) SalvarFechamento(_ context.Context, f *FechamentoComissao) error {
	if err := m.falha("SalvarFechamento"); err != nil {
		return err
	}
	m.fechamentos[chave(f.RepresentanteCodigo, f.Mes)] = *f
	return nil
}

func (m *memRepo) RepresentantesComAbertos(_ context.Context, mes string) ([]string, error) {
	vistos := map[string]bool{}
	var out []string
	for _, l := range m.lancamentos {
		if l.MesCompetencia == mes && l.Status == StatusAberto && !vistos[l.RepresentanteCodigo] {
			vistos[l.RepresentanteCodigo] = true
			out = append(out, l.RepresentanteCodigo)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memRepo) CriarContaPagar(_ context.Context, c *contapagar.ContaPagar) error {
	if err := m.falha("CriarContaPagar"); err != nil {
		return err
	}
	c.ID = m.id()
	m.contas[c.ID] = *c
	return nil
}
