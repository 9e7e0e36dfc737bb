package comissao

import "errors"

var (
	ErrMesInvalido              = errors.New("mês inválido, use AAAA-MM")
	ErrLancamentoNaoEncontrado  = errors.New("lançamento de comissão não encontrado")
	ErrLancamentoFechado        = errors.New("lançamento já está em fechamento concluído")
	ErrMesFechado               = errors.New("mês já fechado para o representante")
	ErrMesmoMes                 = errors.New("lançamento já está no mês informado")
	ErrRepresentanteObrigatorio = errors.New("representante é obrigatório")
	ErrAjusteNegativo           = errors.New("adiantamentos e descontos não podem ser negativos")
)
