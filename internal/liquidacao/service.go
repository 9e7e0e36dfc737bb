// Package liquidacao registra pagamentos contra pedidos: valida o formulário,
// roda a alocação e grava borderô, pedidos, créditos e depósitos numa única
// transação. Também cuida do fluxo de solicitação do representante, que só
// vira borderô depois de aprovada pelo financeiro.
package liquidacao

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/distribuidora/api-financeiro/internal/alocacao"
	"github.com/distribuidora/api-financeiro/internal/auditoria"
	"github.com/distribuidora/api-financeiro/internal/auth"
	"github.com/distribuidora/api-financeiro/internal/bordero"
	"github.com/distribuidora/api-financeiro/internal/credito"
	"github.com/distribuidora/api-financeiro/internal/deposito"
	"github.com/distribuidora/api-financeiro/internal/dinheiro"
	"github.com/distribuidora/api-financeiro/internal/notificacao"
	"github.com/distribuidora/api-financeiro/internal/pedido"
	"github.com/distribuidora/api-financeiro/internal/sequencia"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Notificador interface {
	SolicitacaoCriada(ctx context.Context, a notificacao.Aviso)
}

type Service struct {
	Store       Store
	Validate    *validator.Validate
	Auditoria   auditoria.Registrador
	Notificador Notificador
	Log         *zap.Logger
	Agora       func() time.Time
}

func NewService(store Store, v *validator.Validate, aud auditoria.Registrador, n Notificador, log *zap.Logger) *Service {
	return &Service{Store: store, Validate: v, Auditoria: aud, Notificador: n, Log: log, Agora: time.Now}
}

// Comprovante é o resultado de uma liquidação gravada.
type Comprovante struct {
	Bordero       *bordero.Bordero `json:"bordero"`
	CreditoGerado *credito.Credito `json:"creditoGerado,omitempty"`
	Pedidos       []pedido.Pedido  `json:"pedidos,omitempty"`
	// Repetido indica que a chave já tinha sido processada e nada foi gravado agora.
	Repetido bool `json:"repetido"`
}

// cenario é tudo que a alocação precisou, já conferido.
type cenario struct {
	pedidos   []pedido.Pedido
	creditos  []credito.Credito
	depositos []deposito.Deposito

	clienteCodigo string
	clienteNome   string
	clienteUnico  bool

	fundos    alocacao.Fundos
	resultado alocacao.Resultado
}

func naoEncontrado(err, alvo error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return alvo
	}
	return err
}

// montar carrega pedidos e fundos pela fonte e roda a alocação.
func montar(ctx context.Context, f Fonte, req Requisicao) (*cenario, error) {
	pedidos, err := f.Pedidos(ctx, req.PedidoIDs)
	if err != nil {
		return nil, naoEncontrado(err, ErrPedidoNaoEncontrado)
	}
	c := &cenario{pedidos: pedidos, clienteUnico: true}
	for i, p := range pedidos {
		if !p.Liquidavel() {
			return nil, fmt.Errorf("%w: pedido %s (%s)", ErrPedidoNaoLiquidavel, p.Numero, p.Status)
		}
		if i == 0 {
			c.clienteCodigo, c.clienteNome = p.ClienteCodigo, p.ClienteNome
		} else if p.ClienteCodigo != c.clienteCodigo {
			c.clienteUnico = false
		}
	}

	c.creditos, err = f.Creditos(ctx, req.CreditoIDs)
	if err != nil {
		return nil, naoEncontrado(err, ErrCreditoNaoEncontrado)
	}
	totalCredito := decimal.Zero
	for _, cr := range c.creditos {
		if !cr.Disponivel() {
			return nil, fmt.Errorf("%w: crédito %d", ErrCreditoIndisponivel, cr.Numero)
		}
		if !c.clienteUnico || cr.ClienteCodigo != c.clienteCodigo {
			return nil, fmt.Errorf("%w: crédito %d", ErrCreditoDeOutroCliente, cr.Numero)
		}
		totalCredito = totalCredito.Add(cr.Valor)
	}

	c.depositos, err = f.Depositos(ctx, req.DepositoIDs)
	if err != nil {
		return nil, naoEncontrado(err, ErrDepositoNaoEncontrado)
	}
	deps := make([]alocacao.Deposito, 0, len(c.depositos))
	for _, d := range c.depositos {
		for _, p := range pedidos {
			if vinculado(d.PedidoIDs, p.ID) && p.ClienteCodigo != d.ClienteCodigo {
				return nil, fmt.Errorf("%w: depósito %d", ErrDepositoDeOutroCliente, d.ID)
			}
		}
		deps = append(deps, d.ParaAlocacao())
	}

	c.fundos = alocacao.Fundos{
		Devolucao: req.Devolucao,
		Desconto:  req.Desconto,
		Depositos: deps,
		Credito:   totalCredito,
		Dinheiro:  req.TotalDinheiro(),
	}
	c.resultado = alocacao.Alocar(saldos(pedidos), c.fundos)
	return c, nil
}

func saldos(pedidos []pedido.Pedido) []alocacao.PedidoSaldo {
	out := make([]alocacao.PedidoSaldo, 0, len(pedidos))
	for _, p := range pedidos {
		out = append(out, alocacao.PedidoSaldo{PedidoID: p.ID, Saldo: p.SaldoAtual()})
	}
	return out
}

func vinculado(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Previa devolve os totais da tela sem gravar nada. Representante só
// consulta pedidos da própria carteira.
func (s *Service) Previa(ctx context.Context, req Requisicao, u auth.Usuario) (alocacao.Previa, error) {
	if err := conferirEstrutura(req); err != nil {
		return alocacao.Previa{}, err
	}
	c, err := montar(ctx, s.Store, req)
	if err != nil {
		return alocacao.Previa{}, err
	}
	if err := daCarteira(c.pedidos, u); err != nil {
		return alocacao.Previa{}, err
	}
	return alocacao.CalcularPrevia(saldos(c.pedidos), c.fundos), nil
}

// daCarteira recusa pedidos de outro representante quando quem chama é representante.
func daCarteira(pedidos []pedido.Pedido, u auth.Usuario) error {
	if !u.Representante() {
		return nil
	}
	for _, p := range pedidos {
		if p.RepresentanteCodigo != u.RepresentanteCodigo {
			return fmt.Errorf("%w: pedido %s", ErrPedidoDeOutroRepresentante, p.Numero)
		}
	}
	return nil
}

// Liquidar grava uma liquidação em massa feita pelo financeiro. Falta é
// aceita sem confirmação; excedente exige ConfirmarCredito.
func (s *Service) Liquidar(ctx context.Context, req Requisicao, u auth.Usuario) (*Comprovante, error) {
	if err := Validar(s.Validate, req, bordero.TipoMassa); err != nil {
		return nil, err
	}
	if req.ChaveIdempotencia == "" {
		req.ChaveIdempotencia = uuid.NewString()
	}
	if comp, err := s.repetido(ctx, req.ChaveIdempotencia); err != nil || comp != nil {
		return comp, err
	}

	var comp *Comprovante
	err := s.Store.Transacao(ctx, func(tx Tx) error {
		var err error
		comp, err = s.efetivar(ctx, tx, req, bordero.TipoMassa, u)
		return err
	})
	if err != nil {
		// outra requisição com a mesma chave pode ter gravado primeiro
		if dup, e := s.repetido(ctx, req.ChaveIdempotencia); e == nil && dup != nil {
			return dup, nil
		}
		return nil, err
	}

	s.registrar(ctx, auditoria.EventoLiquidacao, comp.Bordero, u)
	return comp, nil
}

func (s *Service) repetido(ctx context.Context, chave string) (*Comprovante, error) {
	b, err := s.Store.BorderoPorChave(ctx, chave)
	if err != nil {
		return nil, fmt.Errorf("consulta de idempotência: %w", err)
	}
	if b == nil {
		return nil, nil
	}
	s.Log.Info("liquidação repetida", zap.String("chave", chave), zap.Int64("bordero", b.Numero))
	return &Comprovante{Bordero: b, Repetido: true}, nil
}

// efetivar é o commit propriamente dito; roda dentro de tx.
func (s *Service) efetivar(ctx context.Context, tx Tx, req Requisicao, tipo string, u auth.Usuario) (*Comprovante, error) {
	c, err := montar(ctx, tx, req)
	if err != nil {
		return nil, err
	}
	res := c.resultado
	if res.TemExcedente() {
		if !req.ConfirmarCredito {
			return nil, ErrConfirmacaoCredito
		}
		if !c.clienteUnico {
			return nil, ErrExcedenteMultiCliente
		}
	}

	agora := s.Agora()
	numero, err := tx.ProximoNumero(ctx, sequencia.Bordero)
	if err != nil {
		return nil, err
	}

	t := res.Totais()
	b := &bordero.Bordero{
		Numero:            numero,
		Tipo:              tipo,
		PedidoIDs:         req.PedidoIDs,
		ValorDinheiro:     dinheiro.Arredondar(c.fundos.Dinheiro),
		ValorCredito:      dinheiro.Arredondar(c.fundos.Credito),
		ValorDeposito:     t.Deposito,
		ValorDesconto:     t.Desconto,
		ValorDevolucao:    t.Devolucao,
		Anexos:            req.TodosAnexos(),
		LiquidadoPor:      u.Email,
		ChaveIdempotencia: req.ChaveIdempotencia,
		Linhas:            linhasDoBordero(req, c.fundos, t),
	}
	if c.clienteUnico {
		b.ClienteCodigo, b.ClienteNome = c.clienteCodigo, c.clienteNome
	}
	b.ValorTotal = dinheiro.Soma(b.ValorDinheiro, b.ValorCredito, b.ValorDeposito)
	if res.TemExcedente() {
		b.CreditoGerado = dinheiro.Arredondar(res.Excedente())
	}
	b.FormaPagamento = bordero.ResumoFormaPagamento(b.Linhas)

	comp := &Comprovante{Bordero: b}
	var numeroCredito int64
	if res.TemExcedente() {
		if numeroCredito, err = tx.ProximoNumero(ctx, sequencia.Credito); err != nil {
			return nil, err
		}
	}
	b.Observacao = observacao(req, c, numeroCredito)

	if err := tx.CriarBordero(ctx, b); err != nil {
		return nil, fmt.Errorf("gravar borderô %d: %w", numero, err)
	}

	var pedidoCredito *uint
	for i, ap := range res.Aplicacoes {
		if !ap.Total().IsPositive() {
			continue
		}
		p := &c.pedidos[i]
		p.AplicarLiquidacao(ap, numero, agora, u.Email)
		if err := tx.AtualizarPedido(ctx, p); err != nil {
			return nil, fmt.Errorf("atualizar pedido %s: %w", p.Numero, err)
		}
		comp.Pedidos = append(comp.Pedidos, *p)
		if pedidoCredito == nil && ap.Credito.IsPositive() {
			id := p.ID
			pedidoCredito = &id
		}
	}

	for i := range c.creditos {
		cr := &c.creditos[i]
		if err := cr.MarcarUsado(pedidoCredito, numero, agora, u.Email); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCreditoIndisponivel, err)
		}
		if err := tx.AtualizarCredito(ctx, cr); err != nil {
			return nil, fmt.Errorf("atualizar crédito %d: %w", cr.Numero, err)
		}
	}

	for i := range c.depositos {
		d := &c.depositos[i]
		consumo := res.ConsumoDepositos[d.ID]
		if !consumo.IsPositive() {
			continue
		}
		if err := d.Consumir(consumo); err != nil {
			return nil, err
		}
		if err := tx.AtualizarDeposito(ctx, d); err != nil {
			return nil, fmt.Errorf("atualizar depósito %d: %w", d.ID, err)
		}
	}

	if res.TemExcedente() {
		origem := numero
		novo := &credito.Credito{
			Numero:              numeroCredito,
			ClienteCodigo:       c.clienteCodigo,
			ClienteNome:         c.clienteNome,
			Valor:               b.CreditoGerado,
			Status:              credito.StatusDisponivel,
			Origem:              fmt.Sprintf("Excedente do borderô %d", numero),
			BorderoNumeroOrigem: &origem,
		}
		if err := tx.CriarCredito(ctx, novo); err != nil {
			return nil, fmt.Errorf("gravar crédito excedente: %w", err)
		}
		comp.CreditoGerado = novo
	}

	s.Log.Info("liquidação gravada",
		zap.Int64("bordero", numero),
		zap.String("tipo", tipo),
		zap.Int("pedidos", len(comp.Pedidos)),
		zap.String("valorTotal", b.ValorTotal.StringFixed(2)),
		zap.String("creditoGerado", b.CreditoGerado.StringFixed(2)),
		zap.String("falta", res.Falta.StringFixed(2)),
		zap.String("por", u.Email))
	return comp, nil
}

func linhasDoBordero(req Requisicao, f alocacao.Fundos, t alocacao.Aplicacao) []bordero.LinhaPagamento {
	linhas := make([]bordero.LinhaPagamento, 0, len(req.Linhas)+4)
	for _, l := range req.Linhas {
		lp := bordero.LinhaPagamento{
			Tipo:     l.Tipo,
			Valor:    dinheiro.Arredondar(l.Valor),
			Parcelas: l.Parcelas,
			AnexoURL: l.AnexoURL,
		}
		if l.Cheque != nil {
			lp.Cheque = &bordero.Cheque{
				Numero:   l.Cheque.Numero,
				Banco:    l.Cheque.Banco,
				Agencia:  l.Cheque.Agencia,
				Conta:    l.Cheque.Conta,
				Emitente: l.Cheque.Emitente,
			}
		}
		linhas = append(linhas, lp)
	}
	if t.Devolucao.IsPositive() {
		linhas = append(linhas, bordero.LinhaPagamento{Tipo: bordero.LinhaDevolucao, Valor: t.Devolucao, AnexoURL: req.ComprovanteDevolucao})
	}
	if t.Desconto.IsPositive() {
		linhas = append(linhas, bordero.LinhaPagamento{Tipo: bordero.LinhaDesconto, Valor: t.Desconto})
	}
	if t.Deposito.IsPositive() {
		linhas = append(linhas, bordero.LinhaPagamento{Tipo: bordero.LinhaDeposito, Valor: t.Deposito})
	}
	if f.Credito.IsPositive() {
		linhas = append(linhas, bordero.LinhaPagamento{Tipo: bordero.LinhaCredito, Valor: dinheiro.Arredondar(f.Credito)})
	}
	return linhas
}

func observacao(req Requisicao, c *cenario, numeroCredito int64) string {
	res := c.resultado
	t := res.Totais()
	var partes []string
	if obs := strings.TrimSpace(req.Observacao); obs != "" {
		partes = append(partes, obs)
	}
	if t.Devolucao.IsPositive() {
		linha := "Devolução de " + dinheiro.FormatarBRL(t.Devolucao)
		if m := strings.TrimSpace(req.MotivoDevolucao); m != "" {
			linha += ": " + m
		}
		partes = append(partes, linha)
	}
	if t.Desconto.IsPositive() {
		partes = append(partes, "Desconto de "+dinheiro.FormatarBRL(t.Desconto))
	}
	if dinheiro.Positivo(res.SobraDesconto) {
		partes = append(partes, "Desconto não aplicado: "+dinheiro.FormatarBRL(res.SobraDesconto))
	}
	if dinheiro.Positivo(res.SobraDevolucao) {
		partes = append(partes, "Devolução não aplicada: "+dinheiro.FormatarBRL(res.SobraDevolucao))
	}
	if len(c.creditos) > 0 {
		nums := make([]string, 0, len(c.creditos))
		for _, cr := range c.creditos {
			nums = append(nums, strconv.FormatInt(cr.Numero, 10))
		}
		partes = append(partes, fmt.Sprintf("Créditos utilizados nº %s (%s)", strings.Join(nums, ", "), dinheiro.FormatarBRL(c.fundos.Credito)))
	}
	if res.TemExcedente() {
		partes = append(partes, fmt.Sprintf("Crédito gerado nº %d: %s", numeroCredito, dinheiro.FormatarBRL(res.Excedente())))
	}
	if res.Parcial() {
		partes = append(partes, "Pagamento parcial, falta "+dinheiro.FormatarBRL(res.Falta))
	}
	return strings.Join(partes, "\n")
}

// Solicitar registra a liquidação proposta por um representante. Nada é
// aplicado aos pedidos até a aprovação.
func (s *Service) Solicitar(ctx context.Context, req Requisicao, u auth.Usuario) (*LiquidacaoPendente, error) {
	if err := Validar(s.Validate, req, bordero.TipoRepresentante); err != nil {
		return nil, err
	}
	if req.ChaveIdempotencia == "" {
		req.ChaveIdempotencia = uuid.NewString()
	}
	if sol, err := s.Store.SolicitacaoPorChave(ctx, req.ChaveIdempotencia); err != nil || sol != nil {
		return sol, err
	}

	c, err := montar(ctx, s.Store, req)
	if err != nil {
		return nil, err
	}
	if err := daCarteira(c.pedidos, u); err != nil {
		return nil, err
	}
	representante := u.RepresentanteCodigo
	for _, p := range c.pedidos {
		if representante == "" {
			representante = p.RepresentanteCodigo
		}
	}
	res := c.resultado
	if res.Parcial() && !req.ConfirmarParcial {
		return nil, ErrConfirmacaoParcial
	}
	if res.TemExcedente() && !req.ConfirmarCredito {
		return nil, ErrConfirmacaoCredito
	}

	sol := &LiquidacaoPendente{
		ChaveIdempotencia:   req.ChaveIdempotencia,
		RepresentanteCodigo: representante,
		PedidoIDs:           req.PedidoIDs,
		Proposta:            req,
		ValorInformado:      c.fundos.Total(),
		Parcial:             res.Parcial(),
		Status:              StatusPendente,
		SolicitadoPor:       u.Email,
	}
	if c.clienteUnico {
		sol.ClienteCodigo, sol.ClienteNome = c.clienteCodigo, c.clienteNome
	}
	err = s.Store.Transacao(ctx, func(tx Tx) error {
		n, err := tx.ProximoNumero(ctx, sequencia.Solicitacao)
		if err != nil {
			return err
		}
		sol.Numero = n
		return tx.CriarSolicitacao(ctx, sol)
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("solicitação de liquidação criada",
		zap.Int64("numero", sol.Numero),
		zap.String("representante", sol.RepresentanteCodigo),
		zap.Bool("parcial", sol.Parcial))
	s.auditar(ctx, auditoria.Evento{
		Tipo:       auditoria.EventoSolicitacao,
		Entidade:   "liquidacao_pendente",
		Referencia: strconv.FormatInt(sol.Numero, 10),
		Usuario:    u.Email,
		Dados: map[string]any{
			"pedidoIds":      sol.PedidoIDs,
			"valorInformado": sol.ValorInformado.StringFixed(2),
			"parcial":        sol.Parcial,
		},
	})
	if s.Notificador != nil {
		s.Notificador.SolicitacaoCriada(ctx, notificacao.Aviso{
			SolicitacaoID:       sol.ID,
			NumeroSolicitacao:   sol.Numero,
			RepresentanteCodigo: sol.RepresentanteCodigo,
			ClienteCodigo:       sol.ClienteCodigo,
			ClienteNome:         sol.ClienteNome,
			PedidoIDs:           sol.PedidoIDs,
			ValorInformado:      sol.ValorInformado,
			Parcial:             sol.Parcial,
		})
	}
	return sol, nil
}

// ajustar aplica sobre a proposta só o que o aprovador informou. Listas nil
// e valores zerados mantêm o que o representante propôs; lista vazia limpa.
// Anexos se somam e as confirmações valem se qualquer um dos dois confirmou.
func ajustar(proposta Requisicao, ajustes *Requisicao) Requisicao {
	if ajustes == nil {
		return proposta
	}
	req := proposta
	if len(ajustes.PedidoIDs) > 0 {
		req.PedidoIDs = ajustes.PedidoIDs
	}
	if ajustes.Linhas != nil {
		req.Linhas = ajustes.Linhas
	}
	if ajustes.CreditoIDs != nil {
		req.CreditoIDs = ajustes.CreditoIDs
	}
	if ajustes.DepositoIDs != nil {
		req.DepositoIDs = ajustes.DepositoIDs
	}
	if !ajustes.Desconto.IsZero() {
		req.Desconto = ajustes.Desconto
	}
	if !ajustes.Devolucao.IsZero() {
		req.Devolucao = ajustes.Devolucao
	}
	if ajustes.MotivoDevolucao != "" {
		req.MotivoDevolucao = ajustes.MotivoDevolucao
	}
	if ajustes.ComprovanteDevolucao != "" {
		req.ComprovanteDevolucao = ajustes.ComprovanteDevolucao
	}
	if ajustes.Observacao != "" {
		req.Observacao = ajustes.Observacao
	}
	req.Anexos = append(append([]string{}, proposta.Anexos...), ajustes.Anexos...)
	req.ConfirmarCredito = proposta.ConfirmarCredito || ajustes.ConfirmarCredito
	req.ConfirmarParcial = proposta.ConfirmarParcial || ajustes.ConfirmarParcial
	return req
}

// Aprovar transforma a solicitação em borderô (tipo pendente_aprovada).
func (s *Service) Aprovar(ctx context.Context, id uint, ajustes *Requisicao, u auth.Usuario) (*Comprovante, error) {
	sol, err := s.Store.Solicitacao(ctx, id)
	if err != nil {
		return nil, naoEncontrado(err, ErrSolicitacaoNaoEncontrada)
	}
	if sol.Status != StatusPendente {
		return nil, fmt.Errorf("%w: %s", ErrSolicitacaoNaoPendente, sol.Status)
	}
	req := ajustar(sol.Proposta, ajustes)
	req.ChaveIdempotencia = fmt.Sprintf("solicitacao-%d", sol.ID)
	if err := Validar(s.Validate, req, bordero.TipoPendenteAprovada); err != nil {
		return nil, err
	}

	var comp *Comprovante
	err = s.Store.Transacao(ctx, func(tx Tx) error {
		atual, err := tx.SolicitacaoParaAtualizar(ctx, id)
		if err != nil {
			return naoEncontrado(err, ErrSolicitacaoNaoEncontrada)
		}
		if atual.Status != StatusPendente {
			return fmt.Errorf("%w: %s", ErrSolicitacaoNaoPendente, atual.Status)
		}
		comp, err = s.efetivar(ctx, tx, req, bordero.TipoPendenteAprovada, u)
		if err != nil {
			return err
		}
		agora := s.Agora()
		numero := comp.Bordero.Numero
		atual.Status = StatusAprovada
		atual.BorderoNumero = &numero
		atual.AnalisadoPor = u.Email
		atual.AnalisadoEm = &agora
		return tx.AtualizarSolicitacao(ctx, atual)
	})
	if err != nil {
		return nil, err
	}

	s.registrar(ctx, auditoria.EventoAprovacao, comp.Bordero, u)
	return comp, nil
}

// Rejeitar encerra a solicitação sem mexer em pedidos.
func (s *Service) Rejeitar(ctx context.Context, id uint, motivo string, u auth.Usuario) (*LiquidacaoPendente, error) {
	motivo = strings.TrimSpace(motivo)
	if motivo == "" {
		return nil, invalido(ErrMotivoObrigatorio, "")
	}

	var sol *LiquidacaoPendente
	err := s.Store.Transacao(ctx, func(tx Tx) error {
		var err error
		sol, err = tx.SolicitacaoParaAtualizar(ctx, id)
		if err != nil {
			return naoEncontrado(err, ErrSolicitacaoNaoEncontrada)
		}
		if sol.Status != StatusPendente {
			return fmt.Errorf("%w: %s", ErrSolicitacaoNaoPendente, sol.Status)
		}
		agora := s.Agora()
		sol.Status = StatusRejeitada
		sol.MotivoRejeicao = motivo
		sol.AnalisadoPor = u.Email
		sol.AnalisadoEm = &agora
		return tx.AtualizarSolicitacao(ctx, sol)
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("solicitação rejeitada", zap.Int64("numero", sol.Numero), zap.String("por", u.Email))
	s.auditar(ctx, auditoria.Evento{
		Tipo:       auditoria.EventoRejeicao,
		Entidade:   "liquidacao_pendente",
		Referencia: strconv.FormatInt(sol.Numero, 10),
		Usuario:    u.Email,
		Dados:      map[string]any{"motivo": motivo},
	})
	return sol, nil
}

// ListarSolicitacoes lista as solicitações; representantes só veem as suas.
func (s *Service) ListarSolicitacoes(ctx context.Context, f FiltroSolicitacao, u auth.Usuario) ([]LiquidacaoPendente, error) {
	if u.Representante() {
		f.RepresentanteCodigo = u.RepresentanteCodigo
	}
	return s.Store.ListarSolicitacoes(ctx, f)
}

func (s *Service) registrar(ctx context.Context, tipo string, b *bordero.Bordero, u auth.Usuario) {
	s.auditar(ctx, auditoria.Evento{
		Tipo:       tipo,
		Entidade:   "bordero",
		Referencia: strconv.FormatInt(b.Numero, 10),
		Usuario:    u.Email,
		Dados: map[string]any{
			"tipo":           b.Tipo,
			"pedidoIds":      b.PedidoIDs,
			"valorTotal":     b.ValorTotal.StringFixed(2),
			"creditoGerado":  b.CreditoGerado.StringFixed(2),
			"formaPagamento": b.FormaPagamento,
		},
	})
}

// auditar não falha a operação: o commit já aconteceu.
func (s *Service) auditar(ctx context.Context, e auditoria.Evento) {
	if s.Auditoria == nil {
		return
	}
	e.CriadoEm = s.Agora().UTC()
	if err := s.Auditoria.Registrar(ctx, e); err != nil {
		s.Log.Warn("falha ao registrar auditoria", zap.String("tipo", e.Tipo), zap.String("referencia", e.Referencia), zap.Error(err))
	}
}
