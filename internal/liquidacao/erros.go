package liquidacao

import (
	"errors"
	"fmt"
)

// Erros de entrada: o operador corrige o formulário e tenta de novo.
var (
	ErrNenhumPedido              = errors.New("selecione ao menos um pedido")
	ErrPedidoDuplicado           = errors.New("pedido selecionado mais de uma vez")
	ErrCreditoDuplicado          = errors.New("crédito selecionado mais de uma vez")
	ErrDepositoDuplicado         = errors.New("depósito selecionado mais de uma vez")
	ErrSemPagamento              = errors.New("informe ao menos uma forma de pagamento")
	ErrValorNegativo             = errors.New("valores não podem ser negativos")
	ErrDevolucaoSemJustificativa = errors.New("devolução exige motivo ou comprovante")
	ErrComprovanteObrigatorio    = errors.New("anexe o comprovante do pagamento")
	ErrDadosInvalidos            = errors.New("dados inválidos")
	ErrMotivoObrigatorio         = errors.New("informe o motivo da rejeição")
)

// Erros de estado: o pedido, crédito ou solicitação não permite a operação.
var (
	ErrPedidoNaoEncontrado        = errors.New("pedido não encontrado")
	ErrCreditoNaoEncontrado       = errors.New("crédito não encontrado")
	ErrDepositoNaoEncontrado      = errors.New("depósito não encontrado")
	ErrSolicitacaoNaoEncontrada   = errors.New("solicitação não encontrada")
	ErrPedidoNaoLiquidavel        = errors.New("pedido já pago ou cancelado")
	ErrPedidoDeOutroRepresentante = errors.New("pedido não pertence ao representante")
	ErrCreditoIndisponivel        = errors.New("crédito já utilizado")
	ErrCreditoDeOutroCliente      = errors.New("crédito de outro cliente")
	ErrDepositoDeOutroCliente     = errors.New("depósito de outro cliente")
	ErrExcedenteMultiCliente      = errors.New("excedente em liquidação com mais de um cliente")
	ErrSolicitacaoNaoPendente     = errors.New("solicitação já analisada")
)

// Confirmações que a tela precisa pedir antes de gravar.
var (
	ErrConfirmacaoCredito = errors.New("o valor informado excede o devido; confirme a geração de crédito")
	ErrConfirmacaoParcial = errors.New("o valor informado não quita os pedidos; confirme o pagamento parcial")
)

// ErroValidacao embrulha um erro de entrada com o detalhe do campo.
type ErroValidacao struct {
	Err      error
	Detalhes string
}

func (e *ErroValidacao) Error() string {
	if e.Detalhes != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Detalhes)
	}
	return e.Err.Error()
}

func (e *ErroValidacao) Unwrap() error {
	return e.Err
}

func invalido(err error, detalhes string) error {
	return &ErroValidacao{Err: err, Detalhes: detalhes}
}
