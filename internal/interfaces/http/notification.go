package http

import (
	"errors"
	"net/http"

	"financeiro/internal/domain/notification"
	"financeiro/internal/shared/middleware"
)

type NotificationHandler struct {
	notifications *notification.Service
}

func NewNotificationHandler(notifications *notification.Service) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

type RegisterDeviceRequest struct {
	Token      string `json:"token"`
	DeviceType string `json:"deviceType"`
}

// HandleRegisterDevice registers an FCM device token for push delivery
func (h *NotificationHandler) HandleRegisterDevice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req RegisterDeviceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	dt, err := h.notifications.RegisterDevice(r.Context(), notification.RegisterDeviceParams{
		UserID:     userID,
		Token:      req.Token,
		DeviceType: req.DeviceType,
	})
	if err != nil {
		if errors.Is(err, notification.ErrInvalidToken) || errors.Is(err, notification.ErrInvalidDeviceType) {
			respondMensagem(w, http.StatusBadRequest, "Dados do dispositivo inválidos")
			return
		}
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dt)
}
