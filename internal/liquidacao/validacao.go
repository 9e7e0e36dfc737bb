package liquidacao

import (
	"fmt"
	"strings"

	"github.com/distribuidora/api-financeiro/internal/bordero"
	"github.com/distribuidora/api-financeiro/internal/dinheiro"
	"github.com/go-playground/validator/v10"
)

// Validar confere a requisição antes de qualquer leitura ou gravação.
// tipo é o tipo de borderô que a requisição vai gerar; a solicitação do
// representante (bordero.TipoRepresentante) exige comprovante.
func Validar(v *validator.Validate, req Requisicao, tipo string) error {
	if err := conferirEstrutura(req); err != nil {
		return err
	}
	if err := v.Struct(req); err != nil {
		return invalido(ErrDadosInvalidos, err.Error())
	}
	for i, l := range req.Linhas {
		if l.Parcelas > 1 && l.Tipo != bordero.LinhaCartaoCredito {
			return invalido(ErrDadosInvalidos, fmt.Sprintf("linha %d: parcelas só no cartão de crédito", i+1))
		}
	}

	temFundo := dinheiro.Positivo(req.TotalDinheiro()) ||
		dinheiro.Positivo(req.Desconto) ||
		dinheiro.Positivo(req.Devolucao) ||
		len(req.CreditoIDs) > 0 ||
		len(req.DepositoIDs) > 0
	if !temFundo {
		return invalido(ErrSemPagamento, "")
	}

	if dinheiro.Positivo(req.Devolucao) &&
		strings.TrimSpace(req.MotivoDevolucao) == "" &&
		strings.TrimSpace(req.ComprovanteDevolucao) == "" {
		return invalido(ErrDevolucaoSemJustificativa, "")
	}

	if tipo == bordero.TipoRepresentante && dinheiro.Positivo(req.TotalDinheiro()) && !temComprovantePagamento(req) {
		return invalido(ErrComprovanteObrigatorio, "")
	}
	return nil
}

func temComprovantePagamento(req Requisicao) bool {
	for _, a := range req.Anexos {
		if strings.TrimSpace(a) != "" {
			return true
		}
	}
	for _, l := range req.Linhas {
		if strings.TrimSpace(l.AnexoURL) != "" {
			return true
		}
	}
	return false
}

// conferirEstrutura cobre ids e sinais, o mínimo que a prévia também exige.
// Crédito ou depósito repetido seria somado duas vezes na alocação.
func conferirEstrutura(req Requisicao) error {
	if len(req.PedidoIDs) == 0 {
		return invalido(ErrNenhumPedido, "")
	}
	if err := idsUnicos(req.PedidoIDs, ErrPedidoDuplicado, "pedido"); err != nil {
		return err
	}
	if err := idsUnicos(req.CreditoIDs, ErrCreditoDuplicado, "crédito"); err != nil {
		return err
	}
	if err := idsUnicos(req.DepositoIDs, ErrDepositoDuplicado, "depósito"); err != nil {
		return err
	}
	if req.Desconto.IsNegative() || req.Devolucao.IsNegative() {
		return invalido(ErrValorNegativo, "")
	}
	for i, l := range req.Linhas {
		if l.Valor.IsNegative() {
			return invalido(ErrValorNegativo, fmt.Sprintf("linha %d (%s)", i+1, l.Tipo))
		}
	}
	return nil
}

func idsUnicos(ids []uint, duplicado error, nome string) error {
	vistos := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if id == 0 {
			return invalido(ErrDadosInvalidos, "id de "+nome+" inválido")
		}
		if vistos[id] {
			return invalido(duplicado, fmt.Sprintf("%s %d", nome, id))
		}
		vistos[id] = true
	}
	return nil
}
