package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"financeiro/internal/domain/expense"
	"financeiro/internal/domain/income"
	"financeiro/internal/domain/notification"
	"financeiro/internal/shared/format"
	"financeiro/internal/shared/middleware"
)

type FinanceHandler struct {
	incomes       *income.Service
	expenses      *expense.Service
	notifications *notification.Service
}

func NewFinanceHandler(incomes *income.Service, expenses *expense.Service, notifications *notification.Service) *FinanceHandler {
	return &FinanceHandler{incomes: incomes, expenses: expenses, notifications: notifications}
}

// Request DTOs

type AddEntryRequest struct {
	Tipo           string          `json:"tipo"`
	Data           string          `json:"data"`
	Valor          decimal.Decimal `json:"valor"`
	Categoria      string          `json:"categoria"`
	FormaPagamento string          `json:"formaPagamento,omitempty"`
	Descricao      string          `json:"descricao,omitempty"`
	QtdParcelas    int             `json:"qtdParcelas,omitempty"`
	ValorParcela   decimal.Decimal `json:"valorParcela,omitempty"`
}

type AddIncomeRequest struct {
	Data      string          `json:"data"`
	Valor     decimal.Decimal `json:"valor"`
	Categoria string          `json:"categoria"`
}

type InstallmentPlanRequest struct {
	DespesaID int64 `json:"despesaId"`
}

type PayInstallmentRequest struct {
	ParcelaID int64 `json:"parcelaId"`
}

// HandleAddEntry records a receita or a despesa, depending on tipo
func (h *FinanceHandler) HandleAddEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req AddEntryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	date, err := time.Parse("2006-01-02", req.Data)
	if err != nil {
		respondMensagem(w, http.StatusBadRequest, "Data inválida, use o formato AAAA-MM-DD")
		return
	}

	switch strings.ToLower(req.Tipo) {
	case "receita":
		inc, err := h.incomes.AddIncome(r.Context(), income.CreateParams{
			UserID:   userID,
			Date:     date,
			Value:    req.Valor,
			Category: req.Categoria,
		})
		if err != nil {
			respondDomainError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, inc)

	case "despesa":
		exp, err := h.expenses.AddExpense(r.Context(), expense.CreateParams{
			UserID:           userID,
			Date:             date,
			Value:            req.Valor,
			Category:         req.Categoria,
			PaymentType:      strings.ToUpper(req.FormaPagamento),
			Description:      req.Descricao,
			InstallmentCount: req.QtdParcelas,
			InstallmentValue: req.ValorParcela,
		})
		if err != nil {
			respondDomainError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, exp)

	default:
		respondMensagem(w, http.StatusBadRequest, "Tipo deve ser 'receita' ou 'despesa'")
	}
}

// HandleAddIncome records a receita directly, without the tipo switch
func (h *FinanceHandler) HandleAddIncome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req AddIncomeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	date, err := time.Parse("2006-01-02", req.Data)
	if err != nil {
		respondMensagem(w, http.StatusBadRequest, "Data inválida, use o formato AAAA-MM-DD")
		return
	}

	inc, err := h.incomes.AddIncome(r.Context(), income.CreateParams{
		UserID:   userID,
		Date:     date,
		Value:    req.Valor,
		Category: req.Categoria,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, inc)
}

// HandleInstallmentPlan returns a credit purchase with its parcelas
func (h *FinanceHandler) HandleInstallmentPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req InstallmentPlanRequest
	if !decodeBody(w, r, &req) {
		return
	}

	plan, err := h.expenses.GetInstallmentPlan(r.Context(), req.DespesaID, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, plan)
}

// HandlePayInstallment settles a parcela and pushes a confirmation to the
// user's devices. The push is best effort; payment success never depends
// on FCM being reachable.
func (h *FinanceHandler) HandlePayInstallment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req PayInstallmentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	receipt, err := h.expenses.PayInstallment(r.Context(), req.ParcelaID, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if h.notifications != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			body := fmt.Sprintf("Parcela %d de %s (%s) paga com sucesso.",
				receipt.Number, receipt.Category, format.BRL(receipt.Value))
			if err := h.notifications.NotifyUser(ctx, userID, "Parcela paga", body, map[string]string{
				"parcelaId": fmt.Sprint(receipt.ID),
			}); err != nil {
				log.Printf("Error notifying user %d of payment: %v", userID, err)
			}
		}()
	}

	respondJSON(w, http.StatusOK, receipt)
}
