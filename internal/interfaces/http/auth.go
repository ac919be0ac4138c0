package http

import (
	"net/http"

	"financeiro/internal/domain/user"
)

type AuthHandler struct {
	users *user.Service
}

func NewAuthHandler(users *user.Service) *AuthHandler {
	return &AuthHandler{users: users}
}

// Request/Response DTOs

type RegisterRequest struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type LoginResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

// HandleRegister creates a pending account and triggers the confirmation
// e-mail. The response deliberately carries no session token; the account
// must be released first.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := h.users.Register(r.Context(), user.RegisterParams{
		Name:     req.Nome,
		Email:    req.Email,
		Password: req.Senha,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, u)
}

// HandleLogin authenticates a released account. The session token is both
// returned in the body and set as a cookie, so browser and mobile clients
// can each use what suits them.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, token, err := h.users.Login(r.Context(), req.Email, req.Senha)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   24 * 60 * 60,
	})

	respondJSON(w, http.StatusOK, LoginResponse{Token: token, User: u})
}

// HandleValidateEmail resolves the accept/reject link from the confirmation
// e-mail. It is a GET because it is clicked from a mail client.
func (h *AuthHandler) HandleValidateEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	userID := parseID(q.Get("id"))
	token := q.Get("token")
	action := q.Get("action")

	u, err := h.users.ValidateEmail(r.Context(), userID, token, action)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if u.Status == user.StatusLiberado {
		respondMensagem(w, http.StatusOK, "E-mail confirmado, acesso liberado")
		return
	}
	respondMensagem(w, http.StatusOK, "Cadastro recusado")
}
