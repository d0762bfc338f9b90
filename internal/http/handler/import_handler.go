package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sysgest/insights-api/internal/auth"
	"github.com/sysgest/insights-api/internal/domain"
	"github.com/sysgest/insights-api/internal/importer"
	"github.com/sysgest/insights-api/internal/service"
	"go.uber.org/zap"
)

type ImportHandler struct {
	imports        *service.ImportService
	maxUploadBytes int64
	logger         *zap.Logger
}

func NewImportHandler(imports *service.ImportService, maxUploadSizeMB int64, logger *zap.Logger) *ImportHandler {
	return &ImportHandler{
		imports:        imports,
		maxUploadBytes: maxUploadSizeMB * 1024 * 1024,
		logger:         logger,
	}
}

// Upload godoc
// @Summary Import a spreadsheet feed
// @Description Parses an uploaded spreadsheet and merges it into the dashboard dataset. Admin only.
// @Tags Imports
// @Accept multipart/form-data
// @Produce json
// @Param feed path string true "Feed name" Enums(orders, sales, payments, goals)
// @Param file formData file true "Spreadsheet file (.xlsx, .xls or .csv)"
// @Success 200 {object} domain.ImportResultDTO
// @Failure 400 {object} domain.APIError
// @Failure 413 {object} domain.APIError
// @Failure 422 {object} domain.APIError
// @Security BearerAuth
// @Router /imports/{feed} [post]
func (h *ImportHandler) Upload(w http.ResponseWriter, r *http.Request) {
	feed, err := service.ParseFeed(chi.URLParam(r, "feed"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Unknown feed: "+chi.URLParam(r, "feed"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		respondWithError(w, http.StatusRequestEntityTooLarge, "File exceeds the upload size limit")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing multipart field 'file'")
		return
	}
	defer file.Close()

	userCtx := auth.MustFromContext(r.Context())

	result, err := h.imports.Import(
		r.Context(),
		feed,
		header.Filename,
		header.Header.Get("Content-Type"),
		file,
		userCtx.Email,
	)
	if err != nil {
		var missing *importer.MissingColumnsError
		switch {
		case errors.Is(err, service.ErrUnsupportedFile):
			respondWithError(w, http.StatusBadRequest, "Unsupported file extension")
		case errors.As(err, &missing):
			respondJSON(w, http.StatusUnprocessableEntity, domain.APIError{
				Type:   domain.ErrorTypeImport,
				Title:  "Import Error",
				Status: http.StatusUnprocessableEntity,
				Detail: missing.Error(),
			})
		default:
			h.logger.Error("import failed",
				zap.String("feed", string(feed)),
				zap.String("filename", header.Filename),
				zap.Error(err))
			respondJSON(w, http.StatusUnprocessableEntity, domain.APIError{
				Type:   domain.ErrorTypeImport,
				Title:  "Import Error",
				Status: http.StatusUnprocessableEntity,
				Detail: err.Error(),
			})
		}
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// History godoc
// @Summary List import batches
// @Description Paginated import history, newest first, optionally filtered by feed.
// @Tags Imports
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param feed query string false "Filter by feed" Enums(orders, sales, payments, goals)
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Router /imports [get]
func (h *ImportHandler) History(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	feed := r.URL.Query().Get("feed")

	batches, total, err := h.imports.History(r.Context(), page, pageSize, feed)
	if err != nil {
		h.logger.Error("failed to list import history", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list imports")
		return
	}

	respondJSON(w, http.StatusOK, domain.PaginatedResponse{
		Data:     batches,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// Latest godoc
// @Summary Latest batch per feed
// @Description Returns the most recent import batch of each feed, for freshness display.
// @Tags Imports
// @Produce json
// @Success 200 {array} domain.ImportBatchDTO
// @Security BearerAuth
// @Router /imports/latest [get]
func (h *ImportHandler) Latest(w http.ResponseWriter, r *http.Request) {
	batches, err := h.imports.Latest(r.Context())
	if err != nil {
		h.logger.Error("failed to load latest imports", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to load latest imports")
		return
	}

	respondJSON(w, http.StatusOK, batches)
}
