// Package comissao mantém o razão de comissões dos representantes: um
// lançamento por pedido pago, movimentação entre meses de competência e o
// fechamento mensal que gera a conta a pagar.
package comissao

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/distribuidora/api-financeiro/internal/auditoria"
	"github.com/distribuidora/api-financeiro/internal/auth"
	"github.com/distribuidora/api-financeiro/internal/contapagar"
	"github.com/distribuidora/api-financeiro/internal/dinheiro"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DiaVencimento é o dia do mês seguinte em que vence a conta da comissão.
const DiaVencimento = 10

type Service struct {
	Repo      Repositorio
	Auditoria auditoria.Registrador
	Log       *zap.Logger
	Agora     func() time.Time
}

func NewService(repo Repositorio, aud auditoria.Registrador, log *zap.Logger) *Service {
	return &Service{Repo: repo, Auditoria: aud, Log: log, Agora: time.Now}
}

// Sincronizar cria os lançamentos que faltam para pedidos pagos. Lançamento
// que cairia em mês já fechado vai para o próximo mês aberto.
func (s *Service) Sincronizar(ctx context.Context) (int, error) {
	pedidos, err := s.Repo.PedidosPagosSemLancamento(ctx)
	if err != nil {
		return 0, err
	}
	criados := 0
	for _, p := range pedidos {
		l := NovoLancamento(p)
		var ok bool
		err := s.Repo.Transacao(ctx, func(r Repositorio) error {
			if err := s.mesAberto(ctx, r, &l, "sistema", "mês de pagamento já fechado"); err != nil {
				return err
			}
			var err error
			ok, err = r.CriarLancamento(ctx, &l)
			return err
		})
		if err != nil {
			return criados, fmt.Errorf("pedido %s: %w", p.Numero, err)
		}
		if ok {
			criados++
		}
	}
	if criados > 0 {
		s.Log.Info("lançamentos de comissão criados", zap.Int("quantidade", criados))
	}
	return criados, nil
}

// mesAberto empurra o lançamento mês a mês até achar um não fechado.
func (s *Service) mesAberto(ctx context.Context, r Repositorio, l *LancamentoComissao, ator, motivo string) error {
	for {
		f, err := r.TravarMes(ctx, l.RepresentanteCodigo, l.MesCompetencia)
		if err != nil {
			return err
		}
		if !f.Fechado() {
			return nil
		}
		prox, err := ProximoMes(l.MesCompetencia)
		if err != nil {
			return err
		}
		s.mover(l, prox, ator, motivo)
	}
}

func (s *Service) mover(l *LancamentoComissao, destino, ator, motivo string) {
	inicio, _ := PrimeiroDia(destino)
	l.Movimentacoes = append(l.Movimentacoes, Movimentacao{
		De:     l.MesCompetencia,
		Para:   destino,
		Ator:   ator,
		Motivo: motivo,
		Em:     s.Agora().UTC(),
	})
	l.MesCompetencia = destino
	l.DataReferencia = inicio
}

// Antecipar leva um lançamento aberto para outro mês, normalmente anterior.
func (s *Service) Antecipar(ctx context.Context, id uint, destino string, u auth.Usuario, motivo string) (*LancamentoComissao, error) {
	if err := ValidarMes(destino); err != nil {
		return nil, err
	}
	return s.mudarMes(ctx, id, func(atual string) (string, error) { return destino, nil }, u, motivo)
}

// Adiar leva um lançamento aberto para o mês seguinte.
func (s *Service) Adiar(ctx context.Context, id uint, u auth.Usuario, motivo string) (*LancamentoComissao, error) {
	return s.mudarMes(ctx, id, ProximoMes, u, motivo)
}

func (s *Service) mudarMes(ctx context.Context, id uint, destinoDe func(string) (string, error), u auth.Usuario, motivo string) (*LancamentoComissao, error) {
	var (
		out    *LancamentoComissao
		origem string
	)
	err := s.Repo.Transacao(ctx, func(r Repositorio) error {
		l, err := r.LancamentoParaAtualizar(ctx, id)
		if err != nil {
			return err
		}
		if l.Status != StatusAberto {
			return ErrLancamentoFechado
		}
		destino, err := destinoDe(l.MesCompetencia)
		if err != nil {
			return err
		}
		if destino == l.MesCompetencia {
			return ErrMesmoMes
		}
		// mesma ordem de travamento em qualquer direção
		meses := []string{l.MesCompetencia, destino}
		sort.Strings(meses)
		for _, m := range meses {
			f, err := r.TravarMes(ctx, l.RepresentanteCodigo, m)
			if err != nil {
				return err
			}
			if f.Fechado() {
				return fmt.Errorf("%w: %s", ErrMesFechado, m)
			}
		}
		origem = l.MesCompetencia
		s.mover(l, destino, u.Email, motivo)
		if err := r.AtualizarLancamento(ctx, l); err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.auditar(ctx, auditoria.Evento{
		Tipo:       auditoria.EventoMovimentoComissao,
		Entidade:   "lancamento_comissao",
		Referencia: strconv.FormatUint(uint64(out.ID), 10),
		Usuario:    u.Email,
		Dados:      map[string]any{"de": origem, "para": out.MesCompetencia, "motivo": motivo, "pedidoId": out.PedidoID},
	})
	return out, nil
}

// FecharMes consolida os lançamentos abertos do mês num extrato definitivo e
// gera a conta a pagar do líquido.
func (s *Service) FecharMes(ctx context.Context, representante, mes string, aj Ajustes, u auth.Usuario) (*FechamentoComissao, error) {
	if representante == "" {
		return nil, ErrRepresentanteObrigatorio
	}
	if err := ValidarMes(mes); err != nil {
		return nil, err
	}
	if err := aj.validar(); err != nil {
		return nil, err
	}
	var out *FechamentoComissao
	err := s.Repo.Transacao(ctx, func(r Repositorio) error {
		f, err := r.TravarMes(ctx, representante, mes)
		if err != nil {
			return err
		}
		if f.Fechado() {
			return ErrMesFechado
		}
		lancs, err := r.LancamentosAbertosParaAtualizar(ctx, representante, mes)
		if err != nil {
			return err
		}
		agora := s.Agora().UTC()
		for i := range lancs {
			lancs[i].Status = StatusFechado
			lancs[i].DataFechamento = &agora
			if err := r.AtualizarLancamento(ctx, &lancs[i]); err != nil {
				return err
			}
		}
		f.Adiantamentos = aj.Adiantamentos
		f.Descontos = aj.Descontos
		if aj.Observacao != "" {
			f.Observacao = aj.Observacao
		}
		calcularFechamento(f, lancs)
		f.Status = StatusFechado
		f.FechadoPor = u.Email
		f.FechadoEm = &agora

		if dinheiro.Positivo(f.ValorLiquido) {
			conta, err := novaConta(f)
			if err != nil {
				return err
			}
			if err := r.CriarContaPagar(ctx, conta); err != nil {
				return err
			}
			f.ContaPagarID = &conta.ID
		}
		if err := r.SalvarFechamento(ctx, f); err != nil {
			return err
		}
		out = f
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("comissão fechada",
		zap.String("representante", representante),
		zap.String("mes", mes),
		zap.String("liquido", out.ValorLiquido.StringFixed(2)),
		zap.Int("itens", len(out.Itens)),
	)
	s.auditar(ctx, auditoria.Evento{
		Tipo:       auditoria.EventoFechamento,
		Entidade:   "fechamento_comissao",
		Referencia: representante + "/" + mes,
		Usuario:    u.Email,
		Dados: map[string]any{
			"totalComissaoBruta": out.TotalComissaoBruta.StringFixed(2),
			"valorLiquido":       out.ValorLiquido.StringFixed(2),
			"itens":              len(out.Itens),
		},
	})
	return out, nil
}

func novaConta(f *FechamentoComissao) (*contapagar.ContaPagar, error) {
	inicio, err := PrimeiroDia(f.Mes)
	if err != nil {
		return nil, err
	}
	favorecido := f.RepresentanteNome
	if favorecido == "" {
		favorecido = f.RepresentanteCodigo
	}
	return &contapagar.ContaPagar{
		Descricao:        fmt.Sprintf("Comissão %s - %s", f.Mes, favorecido),
		Favorecido:       favorecido,
		FavorecidoCodigo: f.RepresentanteCodigo,
		Valor:            f.ValorLiquido,
		Vencimento:       inicio.AddDate(0, 1, DiaVencimento-1),
		Origem:           contapagar.OrigemComissao,
		OrigemID:         f.ID,
		Status:           contapagar.StatusAberta,
	}, nil
}

// FecharMesTodos fecha o mês de cada representante com lançamento aberto.
// Falha de um não impede os demais.
func (s *Service) FecharMesTodos(ctx context.Context, mes string, u auth.Usuario) (ResultadoLote, error) {
	res := ResultadoLote{Fechados: []FechamentoComissao{}}
	if err := ValidarMes(mes); err != nil {
		return res, err
	}
	reps, err := s.Repo.RepresentantesComAbertos(ctx, mes)
	if err != nil {
		return res, err
	}
	var errs []error
	for _, rep := range reps {
		f, err := s.FecharMes(ctx, rep, mes, Ajustes{}, u)
		if err != nil {
			if res.Falhas == nil {
				res.Falhas = map[string]string{}
			}
			res.Falhas[rep] = err.Error()
			errs = append(errs, fmt.Errorf("representante %s: %w", rep, err))
			continue
		}
		res.Fechados = append(res.Fechados, *f)
	}
	return res, errors.Join(errs...)
}

// RecalcularRascunho refaz o extrato aberto a partir dos lançamentos atuais.
// Ajustes nil mantém adiantamentos e descontos já gravados.
func (s *Service) RecalcularRascunho(ctx context.Context, representante, mes string, aj *Ajustes) (*FechamentoComissao, error) {
	if err := ValidarMes(mes); err != nil {
		return nil, err
	}
	if aj != nil {
		if err := aj.validar(); err != nil {
			return nil, err
		}
	}
	var out *FechamentoComissao
	err := s.Repo.Transacao(ctx, func(r Repositorio) error {
		f, err := r.TravarMes(ctx, representante, mes)
		if err != nil {
			return err
		}
		if f.Fechado() {
			return ErrMesFechado
		}
		lancs, err := r.Lancamentos(ctx, Filtro{RepresentanteCodigo: representante, Mes: mes, Status: StatusAberto})
		if err != nil {
			return err
		}
		if aj != nil {
			f.Adiantamentos = aj.Adiantamentos
			f.Descontos = aj.Descontos
			f.Observacao = aj.Observacao
		}
		calcularFechamento(f, lancs)
		if err := r.SalvarFechamento(ctx, f); err != nil {
			return err
		}
		out = f
		return nil
	})
	return out, err
}

// Fechamento devolve o extrato do mês. Fechado vem como gravado; aberto é
// recalculado na hora sem gravar.
func (s *Service) Fechamento(ctx context.Context, representante, mes string) (*FechamentoComissao, error) {
	if err := ValidarMes(mes); err != nil {
		return nil, err
	}
	f, err := s.Repo.Fechamento(ctx, representante, mes)
	if err != nil {
		return nil, err
	}
	if f.Fechado() {
		return f, nil
	}
	if f == nil {
		f = &FechamentoComissao{RepresentanteCodigo: representante, Mes: mes, Status: StatusAberto}
	}
	lancs, err := s.Repo.Lancamentos(ctx, Filtro{RepresentanteCodigo: representante, Mes: mes, Status: StatusAberto})
	if err != nil {
		return nil, err
	}
	calcularFechamento(f, lancs)
	return f, nil
}

// TotalMes soma a comissão do mês, abertos e fechados.
func (s *Service) TotalMes(ctx context.Context, representante, mes string) (decimal.Decimal, error) {
	if err := ValidarMes(mes); err != nil {
		return decimal.Zero, err
	}
	lancs, err := s.Repo.Lancamentos(ctx, Filtro{RepresentanteCodigo: representante, Mes: mes})
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, l := range lancs {
		total = total.Add(l.ValorComissao)
	}
	return total, nil
}

func (s *Service) Listar(ctx context.Context, f Filtro) ([]LancamentoComissao, error) {
	if f.Mes != "" {
		if err := ValidarMes(f.Mes); err != nil {
			return nil, err
		}
	}
	return s.Repo.Lancamentos(ctx, f)
}

func (s *Service) auditar(ctx context.Context, e auditoria.Evento) {
	if s.Auditoria == nil {
		return
	}
	e.CriadoEm = s.Agora().UTC()
	if err := s.Auditoria.Registrar(ctx, e); err != nil {
		s.Log.Warn("falha ao registrar auditoria", zap.String("tipo", e.Tipo), zap.String("referencia", e.Referencia), zap.Error(err))
	}
}
