package comissao

import "github.com/shopspring/decimal"

type AntecipacaoDTO struct {
	MesDestino string `json:"mesDestino"`
	Motivo     string `json:"motivo"`
}

type AdiamentoDTO struct {
	Motivo string `json:"motivo"`
}

// Ajustes entram no extrato do mês e reduzem o líquido.
type Ajustes struct {
	Adiantamentos decimal.Decimal `json:"adiantamentos"`
	Descontos     decimal.Decimal `json:"descontos"`
	Observacao    string          `json:"observacao"`
}

func (a Ajustes) validar() error {
	if a.Adiantamentos.IsNegative() || a.Descontos.IsNegative() {
		return ErrAjusteNegativo
	}
	return nil
}

type FecharMesDTO struct {
	RepresentanteCodigo string `json:"representanteCodigo"`
	Mes                 string `json:"mes"`
	Ajustes
}

type FecharLoteDTO struct {
	Mes string `json:"mes"`
}

// ResultadoLote lista o que fechou e o que falhou num fechamento em lote.
type ResultadoLote struct {
	Fechados []FechamentoComissao `json:"fechados"`
	Falhas   map[string]string    `json:"falhas,omitempty"`
}
