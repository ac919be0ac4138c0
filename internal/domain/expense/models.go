package expense

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods
const (
	PaymentCredito  = "CREDITO"
	PaymentPix      = "PIX"
	PaymentDebito   = "DEBITO"
	PaymentDinheiro = "DINHEIRO"
)

// Transaction types. A credit purchase split into more than one installment
// is PARCELADO; everything else is recorded as a single cash-equivalent hit.
const (
	TransactionAVista    = "À Vista"
	TransactionParcelado = "PARCELADO"
)

// Installment statuses. The transition is monotonic: PENDENTE moves to
// exactly one of PAGO or PAGOANTECIPADO and never reverts.
const (
	StatusPendente       = "PENDENTE"
	StatusPago           = "PAGO"
	StatusPagoAntecipado = "PAGOANTECIPADO"
)

// Domain errors
var (
	ErrExpenseNotFound     = errors.New("expense not found")
	ErrInstallmentNotFound = errors.New("installment not found")
	ErrNoInstallments      = errors.New("expense has no installments")
	ErrForbidden           = errors.New("access forbidden")
	ErrAlreadyPaid         = errors.New("installment already paid")
	ErrInvalidInput        = errors.New("invalid input")
)

var paymentTypes = map[string]struct{}{
	PaymentCredito:  {},
	PaymentPix:      {},
	PaymentDebito:   {},
	PaymentDinheiro: {},
}

// IsValidPaymentType checks if the provided payment method is known
func IsValidPaymentType(s string) bool {
	_, ok := paymentTypes[s]
	return ok
}

// Expense is a recorded despesa. Credit purchases own their installments;
// every other payment method has none.
type Expense struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"userId"`
	Date            time.Time       `json:"date"`
	Value           decimal.Decimal `json:"value"`
	Category        string          `json:"category"`
	PaymentType     string          `json:"paymentType"`
	TransactionType string          `json:"transactionType"`
	Description     string          `json:"description,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	Installments    []*Installment  `json:"parcelas,omitempty"`
}

// Installment is a parcela of a credit purchase. PaymentDate is set exactly
// when Status is no longer PENDENTE.
type Installment struct {
	ID          int64           `json:"id"`
	ExpenseID   int64           `json:"despesaId"`
	Number      int             `json:"parcelaNumber"`
	Value       decimal.Decimal `json:"value"`
	DueDate     time.Time       `json:"dueDate"`
	PaymentDate *time.Time      `json:"paymentDate,omitempty"`
	Status      string          `json:"status"`
}

// CreateParams is the input for recording a new expense. InstallmentCount
// and InstallmentValue only apply to CREDITO purchases; when zero they
// default to a single installment worth the full value.
type CreateParams struct {
	UserID           int64
	Date             time.Time
	Value            decimal.Decimal
	Category         string
	PaymentType      string
	Description      string
	InstallmentCount int
	InstallmentValue decimal.Decimal
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.UserID <= 0 {
		return ErrInvalidInput
	}
	if p.Category == "" {
		return ErrInvalidInput
	}
	if p.Date.IsZero() {
		return ErrInvalidInput
	}
	if !p.Value.IsPositive() {
		return ErrInvalidInput
	}
	if !IsValidPaymentType(p.PaymentType) {
		return ErrInvalidInput
	}
	if p.InstallmentCount < 0 {
		return ErrInvalidInput
	}
	return nil
}

// CreateRecordParams is what the repository persists for the expense row
type CreateRecordParams struct {
	UserID          int64
	Date            time.Time
	Value           decimal.Decimal
	Category        string
	PaymentType     string
	TransactionType string
	Description     string
}

// CreateInstallmentParams is one generated parcela to persist
type CreateInstallmentParams struct {
	Number  int
	Value   decimal.Decimal
	DueDate time.Time
	Status  string
}

// InstallmentPlan is the detail view of a credit purchase: its installments
// plus the purchase total and how much is still pending.
type InstallmentPlan struct {
	ExpenseID     int64           `json:"despesaId"`
	Category      string          `json:"category"`
	PaymentType   string          `json:"paymentType"`
	Date          time.Time       `json:"date"`
	PurchaseTotal decimal.Decimal `json:"totalCompra"`
	PendingTotal  decimal.Decimal `json:"somaParcelasPendentes"`
	Installments  []*Installment  `json:"parcelas"`
}

// PaymentReceipt is the result of paying an installment, with fields from
// the owning expense denormalized for display.
type PaymentReceipt struct {
	Installment
	Category     string          `json:"categoria"`
	ExpenseValue decimal.Decimal `json:"valorCompra"`
	Description  string          `json:"descricao,omitempty"`
}

// OverdueInstallment is a pending parcela past its due date, joined with
// context from its owning expense. Used by the admin report.
type OverdueInstallment struct {
	Installment
	UserID      int64  `json:"userId"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}
