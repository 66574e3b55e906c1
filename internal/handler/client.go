package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vaultpass/secretgen-go/internal/model"
	"github.com/vaultpass/secretgen-go/internal/repository"
	"github.com/vaultpass/secretgen-go/internal/service"
)

// ClientHandler handles HTTP requests for API clients and their tokens.
type ClientHandler struct {
	service *service.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(svc *service.ClientService) *ClientHandler {
	return &ClientHandler{service: svc}
}

// HandleRegister handles POST /api/v1/clients requests.
func (h *ClientHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterClientRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameRequired), errors.Is(err, service.ErrNameTooLong):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, repository.ErrDuplicateClient):
			writeJSON(w, http.StatusConflict, errorResponse(err.Error()))
		default:
			slog.Error("client registration failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	slog.Info("client registered", "client_id", resp.ClientID, "name", resp.Name)
	writeJSON(w, http.StatusCreated, resp)
}

// HandleToken handles POST /api/v1/tokens requests.
func (h *ClientHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	var req model.TokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.IssueToken(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
			return
		}
		slog.Error("token issuance failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleHistory handles GET /api/v1/history requests.
func (h *ClientHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	clientID := service.ClientIDFromContext(r.Context())
	if clientID == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var limit int
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	resp, err := h.service.History(r.Context(), clientID, limit)
	if err != nil {
		slog.Error("listing history failed", "client_id", clientID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
