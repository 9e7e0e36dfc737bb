package liquidacao

import (
	"strings"

	"github.com/distribuidora/api-financeiro/internal/dinheiro"
	"github.com/shopspring/decimal"
)

type ChequeEntrada struct {
	Numero   string `json:"numero" validate:"required,max=30"`
	Banco    string `json:"banco" validate:"max=100"`
	Agencia  string `json:"agencia" validate:"max=20"`
	Conta    string `json:"conta" validate:"max=30"`
	Emitente string `json:"emitente" validate:"max=255"`
}

// LinhaEntrada é um meio de pagamento digitado pelo operador.
type LinhaEntrada struct {
	Tipo     string          `json:"tipo" validate:"required,oneof=dinheiro pix cheque cartao_credito cartao_debito servico"`
	Valor    decimal.Decimal `json:"valor"`
	Parcelas int             `json:"parcelas" validate:"gte=0,lte=24"`
	AnexoURL string          `json:"anexoUrl" validate:"omitempty,url"`
	Cheque   *ChequeEntrada  `json:"cheque" validate:"required_if=Tipo cheque"`
}

// Requisicao é o formulário de liquidação, usado na prévia, na liquidação
// em massa, na solicitação do representante e nos ajustes da aprovação.
type Requisicao struct {
	ChaveIdempotencia string `json:"chaveIdempotencia" validate:"omitempty,max=64"`

	PedidoIDs   []uint         `json:"pedidoIds"`
	Linhas      []LinhaEntrada `json:"linhas" validate:"dive"`
	CreditoIDs  []uint         `json:"creditoIds" validate:"dive,gt=0"`
	DepositoIDs []uint         `json:"depositoIds" validate:"dive,gt=0"`

	Desconto             decimal.Decimal `json:"desconto"`
	Devolucao            decimal.Decimal `json:"devolucao"`
	MotivoDevolucao      string          `json:"motivoDevolucao" validate:"max=500"`
	ComprovanteDevolucao string          `json:"comprovanteDevolucao" validate:"omitempty,url"`

	Anexos     []string `json:"anexos" validate:"dive,url"`
	Observacao string   `json:"observacao" validate:"max=2000"`

	ConfirmarCredito bool `json:"confirmarCredito"`
	ConfirmarParcial bool `json:"confirmarParcial"`
}

// TotalDinheiro soma as linhas digitadas: é o fundo de dinheiro da alocação.
func (r Requisicao) TotalDinheiro() decimal.Decimal {
	total := decimal.Zero
	for _, l := range r.Linhas {
		total = total.Add(l.Valor)
	}
	return dinheiro.Arredondar(total)
}

// TodosAnexos junta os anexos gerais com os das linhas e o da devolução.
func (r Requisicao) TodosAnexos() []string {
	vistos := map[string]bool{}
	var out []string
	add := func(u string) {
		u = strings.TrimSpace(u)
		if u == "" || vistos[u] {
			return
		}
		vistos[u] = true
		out = append(out, u)
	}
	for _, a := range r.Anexos {
		add(a)
	}
	for _, l := range r.Linhas {
		add(l.AnexoURL)
	}
	add(r.ComprovanteDevolucao)
	return out
}

type RejeitarDTO struct {
	Motivo string `json:"motivo"`
}

// AprovarDTO leva os ajustes do aprovador. Sem ajustes, vale a proposta.
// Campos ausentes (ou desconto e devolução zerados) ficam como o representante
// propôs; "linhas": [] remove as linhas propostas.
type AprovarDTO struct {
	Ajustes *Requisicao `json:"ajustes"`
}
