package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vaultpass/secretgen-go/internal/crypto"
	"github.com/vaultpass/secretgen-go/internal/model"
	"github.com/vaultpass/secretgen-go/internal/service"
)

// GeneratorHandler handles HTTP requests for secret generation.
type GeneratorHandler struct {
	service *service.GeneratorService
}

// NewGeneratorHandler creates a new GeneratorHandler.
func NewGeneratorHandler(svc *service.GeneratorService) *GeneratorHandler {
	return &GeneratorHandler{service: svc}
}

// HandlePassword handles POST /api/v1/generate/password requests.
func (h *GeneratorHandler) HandlePassword(w http.ResponseWriter, r *http.Request) {
	var req model.PasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.GeneratePassword(r.Context(), req)
	if err != nil {
		writeGenerateError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandlePIN handles POST /api/v1/generate/pin requests.
func (h *GeneratorHandler) HandlePIN(w http.ResponseWriter, r *http.Request) {
	var req model.PINRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.GeneratePIN(r.Context(), req)
	if err != nil {
		writeGenerateError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleRandom handles GET /api/v1/random?min=&max= requests.
func (h *GeneratorHandler) HandleRandom(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lo, err := strconv.Atoi(q.Get("min"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("min must be an integer"))
		return
	}
	hi, err := strconv.Atoi(q.Get("max"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("max must be an integer"))
		return
	}

	resp, err := h.service.RandomInt(r.Context(), lo, hi)
	if err != nil {
		writeGenerateError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeGenerateError(w http.ResponseWriter, err error) {
	if isValidationError(err) {
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		return
	}
	slog.Error("generation failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
}

func isValidationError(err error) bool {
	return errors.Is(err, crypto.ErrLengthTooShort) ||
		errors.Is(err, crypto.ErrNoClassEnabled) ||
		errors.Is(err, crypto.ErrInvalidRange) ||
		errors.Is(err, service.ErrLengthTooLong)
}
