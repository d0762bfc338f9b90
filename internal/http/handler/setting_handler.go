package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sysgest/insights-api/internal/auth"
	"github.com/sysgest/insights-api/internal/domain"
	"github.com/sysgest/insights-api/internal/service"
	"go.uber.org/zap"
)

// SettingHandler exposes per-user dashboard preferences (saved filters,
// panel layout) keyed by free-form setting names.
type SettingHandler struct {
	settings *service.SettingService
	logger   *zap.Logger
}

func NewSettingHandler(settings *service.SettingService, logger *zap.Logger) *SettingHandler {
	return &SettingHandler{settings: settings, logger: logger}
}

// List godoc
// @Summary List the current user's settings
// @Tags Settings
// @Produce json
// @Success 200 {array} domain.Setting
// @Security BearerAuth
// @Router /settings [get]
func (h *SettingHandler) List(w http.ResponseWriter, r *http.Request) {
	userCtx := auth.MustFromContext(r.Context())

	settings, err := h.settings.ListByUser(r.Context(), userCtx.UserID)
	if err != nil {
		h.logger.Error("failed to list settings", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list settings")
		return
	}

	respondJSON(w, http.StatusOK, settings)
}

// Get godoc
// @Summary Get one setting by key
// @Tags Settings
// @Produce json
// @Param key path string true "Setting key"
// @Success 200 {object} domain.Setting
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /settings/{key} [get]
func (h *SettingHandler) Get(w http.ResponseWriter, r *http.Request) {
	userCtx := auth.MustFromContext(r.Context())
	key := chi.URLParam(r, "key")

	setting, err := h.settings.Get(r.Context(), userCtx.UserID, key)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Setting not found")
			return
		}
		h.logger.Error("failed to get setting", zap.Error(err), zap.String("key", key))
		respondWithError(w, http.StatusInternalServerError, "Failed to get setting")
		return
	}

	respondJSON(w, http.StatusOK, setting)
}

// Upsert godoc
// @Summary Create or replace a setting
// @Tags Settings
// @Accept json
// @Produce json
// @Param key path string true "Setting key"
// @Param setting body domain.UpsertSettingRequest true "Setting value"
// @Success 200 {object} domain.Setting
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /settings/{key} [put]
func (h *SettingHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userCtx := auth.MustFromContext(r.Context())
	key := chi.URLParam(r, "key")

	var req domain.UpsertSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	setting, err := h.settings.Upsert(r.Context(), userCtx.UserID, key, req.Value)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondWithError(w, http.StatusBadRequest, "Setting key is required")
			return
		}
		h.logger.Error("failed to upsert setting", zap.Error(err), zap.String("key", key))
		respondWithError(w, http.StatusInternalServerError, "Failed to save setting")
		return
	}

	respondJSON(w, http.StatusOK, setting)
}

// Delete godoc
// @Summary Delete a setting
// @Tags Settings
// @Param key path string true "Setting key"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /settings/{key} [delete]
func (h *SettingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userCtx := auth.MustFromContext(r.Context())
	key := chi.URLParam(r, "key")

	if err := h.settings.Delete(r.Context(), userCtx.UserID, key); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Setting not found")
			return
		}
		h.logger.Error("failed to delete setting", zap.Error(err), zap.String("key", key))
		respondWithError(w, http.StatusInternalServerError, "Failed to delete setting")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
