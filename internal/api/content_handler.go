package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/proevals/proevals-api/internal/api/shared"
	"github.com/proevals/proevals-api/internal/domain"
	"github.com/proevals/proevals-api/internal/service/content"
)

// ContentHandler handles drill bank management API requests.
type ContentHandler struct {
	contentService content.Service
	logger         *slog.Logger
}

// NewContentHandler creates a new ContentHandler with the given
// dependencies.
func NewContentHandler(contentService content.Service, logger *slog.Logger) *ContentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContentHandler{
		contentService: contentService,
		logger:         logger.With(slog.String("component", "content_handler")),
	}
}

// Import handles POST /api/drills/import. A rejected batch returns 400
// with the report so authors get the full issue list in one pass.
func (h *ContentHandler) Import(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	var req ImportRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	mode := content.ImportMode(req.Mode)
	if mode == "" {
		mode = content.ModeAppend
	}

	report, err := h.contentService.Import(r.Context(), req.Drills, mode)
	if err != nil {
		if errors.Is(err, content.ErrImportRejected) && report != nil {
			shared.RespondWithJSON(w, r, http.StatusBadRequest, report)
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, report)
}

// List handles GET /api/drills.
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	bank, err := h.contentService.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, bank)
}

// Update handles PUT /api/drills/{id}. The path ID wins over any ID in
// the body.
func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	drillID := chi.URLParam(r, "id")
	if drillID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Drill ID is required")
		return
	}

	var drill domain.Drill
	if err := shared.DecodeJSON(r, &drill); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	drill.ID = drillID

	if err := h.contentService.Update(r.Context(), &drill); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, &drill)
}

// Delete handles DELETE /api/drills/{id}.
func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	drillID := chi.URLParam(r, "id")
	if drillID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Drill ID is required")
		return
	}

	if err := h.contentService.Delete(r.Context(), drillID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
