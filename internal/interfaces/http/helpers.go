package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"financeiro/internal/domain/expense"
	"financeiro/internal/domain/income"
	"financeiro/internal/domain/report"
	"financeiro/internal/domain/user"
)

// MensagemResponse is the error envelope every endpoint uses
type MensagemResponse struct {
	Mensagem string `json:"mensagem"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("Error encoding response: %v", err)
		}
	}
}

func respondMensagem(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, MensagemResponse{Mensagem: msg})
}

// respondDomainError translates domain sentinel errors into HTTP statuses
// with Portuguese messages. Anything unmapped is a 500.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrInvalidInput),
		errors.Is(err, expense.ErrInvalidInput),
		errors.Is(err, income.ErrInvalidInput),
		errors.Is(err, report.ErrInvalidPeriod):
		respondMensagem(w, http.StatusBadRequest, "Dados inválidos")
	case errors.Is(err, user.ErrEmailTaken):
		respondMensagem(w, http.StatusConflict, "E-mail já cadastrado")
	case errors.Is(err, user.ErrInvalidCredentials):
		respondMensagem(w, http.StatusUnauthorized, "E-mail ou senha incorretos")
	case errors.Is(err, user.ErrAccountNotActive):
		respondMensagem(w, http.StatusForbidden, "Conta ainda não liberada")
	case errors.Is(err, user.ErrInvalidToken):
		respondMensagem(w, http.StatusUnauthorized, "Token inválido ou expirado")
	case errors.Is(err, user.ErrUserNotFound):
		respondMensagem(w, http.StatusNotFound, "Usuário não encontrado")
	case errors.Is(err, expense.ErrExpenseNotFound):
		respondMensagem(w, http.StatusNotFound, "Despesa não encontrada")
	case errors.Is(err, expense.ErrInstallmentNotFound):
		respondMensagem(w, http.StatusNotFound, "Parcela não encontrada")
	case errors.Is(err, expense.ErrNoInstallments):
		respondMensagem(w, http.StatusNotFound, "Despesa não possui parcelas")
	case errors.Is(err, expense.ErrForbidden):
		respondMensagem(w, http.StatusForbidden, "Acesso negado")
	case errors.Is(err, expense.ErrAlreadyPaid):
		respondMensagem(w, http.StatusConflict, "Parcela já foi paga")
	default:
		log.Printf("Unhandled error: %v", err)
		respondMensagem(w, http.StatusInternalServerError, "Erro interno do servidor")
	}
}

// parseID parses a decimal id, returning 0 on any malformed input so the
// service layer rejects it as invalid.
func parseID(s string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondMensagem(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return false
	}
	return true
}
