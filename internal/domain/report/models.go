package report

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"financeiro/internal/domain/income"
)

// Domain errors
var (
	ErrInvalidPeriod = errors.New("invalid report period")
)

// ExpenseEntry is one expense amount attributed to the reported month. A
// credit installment produces one entry per parcela landing in the month;
// every other expense produces a single entry on its purchase date.
type ExpenseEntry struct {
	ExpenseID         int64           `json:"despesaId"`
	Date              time.Time       `json:"date"`
	Value             decimal.Decimal `json:"value"`
	Category          string          `json:"category"`
	PaymentType       string          `json:"paymentType"`
	TransactionType   string          `json:"transactionType"`
	Description       string          `json:"description,omitempty"`
	InstallmentNumber int             `json:"parcelaNumber,omitempty"`
	InstallmentStatus string          `json:"parcelaStatus,omitempty"`
}

// CreditPurchase is one credit purchase made in the reported month.
type CreditPurchase struct {
	ExpenseID        int64           `json:"despesaId"`
	Value            decimal.Decimal `json:"valor"`
	InstallmentCount int             `json:"qtdParcelas"`
	FullyPaid        bool            `json:"quitada"`
}

// CreditSummary breaks down the month's credit activity
type CreditSummary struct {
	// Used is the value of credit purchases made in the month.
	Used decimal.Decimal `json:"totalCreditoUsado"`
	// Paid is what was settled in the month: parcelas PAGO due in the
	// month plus parcelas PAGOANTECIPADO actually paid in the month.
	Paid decimal.Decimal `json:"totalCreditoPago"`
	// Pending is what still falls due in the month.
	Pending decimal.Decimal `json:"totalCreditoAPagar"`
}

// MonthlyReport is the full financial picture of one calendar month
type MonthlyReport struct {
	Year  int        `json:"ano"`
	Month time.Month `json:"mes"`

	TotalReceitas decimal.Decimal `json:"totalReceitas"`
	TotalDespesas decimal.Decimal `json:"totalDespesas"`
	Saldo         decimal.Decimal `json:"saldo"`

	Credit         CreditSummary    `json:"despesasCreditoResumo"`
	ComprasCredito []CreditPurchase `json:"comprasCredito"`

	TotalPix      decimal.Decimal `json:"totalPix"`
	TotalDebito   decimal.Decimal `json:"totalDebito"`
	TotalDinheiro decimal.Decimal `json:"totalDinheiro"`

	Receitas []*income.Income `json:"receitas"`
	Despesas []ExpenseEntry   `json:"despesas"`
}

// MonthSummary is the condensed per-month line of a yearly report. Months
// with no financial activity at all are omitted from the year sequence.
type MonthSummary struct {
	Month time.Month `json:"mes"`

	TotalReceitas decimal.Decimal `json:"totalReceitas"`
	TotalDespesas decimal.Decimal `json:"totalDespesas"`
	Saldo         decimal.Decimal `json:"saldo"`

	CreditoUsado  decimal.Decimal `json:"totalCreditoUsado"`
	CreditoPago   decimal.Decimal `json:"totalCreditoPago"`
	CreditoAPagar decimal.Decimal `json:"totalCreditoAPagar"`
}

func (s MonthSummary) isZero() bool {
	return s.TotalReceitas.IsZero() &&
		s.TotalDespesas.IsZero() &&
		s.CreditoUsado.IsZero() &&
		s.CreditoPago.IsZero() &&
		s.CreditoAPagar.IsZero()
}
