package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/proevals/proevals-api/internal/api/shared"
	"github.com/proevals/proevals-api/internal/domain"
	"github.com/proevals/proevals-api/internal/service/leaderboard"
)

// LeaderboardHandler handles the ranking API requests.
type LeaderboardHandler struct {
	leaderboardService leaderboard.Service
	logger             *slog.Logger
}

// NewLeaderboardHandler creates a new LeaderboardHandler with the given
// dependencies.
func NewLeaderboardHandler(leaderboardService leaderboard.Service, logger *slog.Logger) *LeaderboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
		logger:             logger.With(slog.String("component", "leaderboard_handler")),
	}
}

// Global handles GET /api/leaderboard/{period}.
func (h *LeaderboardHandler) Global(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	period := leaderboard.Period(chi.URLParam(r, "period"))
	entries, err := h.leaderboardService.Global(r.Context(), period)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, entries)
}

// GlobalStatus handles GET /api/leaderboard/{period}/me.
func (h *LeaderboardHandler) GlobalStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	period := leaderboard.Period(chi.URLParam(r, "period"))
	status, err := h.leaderboardService.GlobalStatus(r.Context(), userID, period)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, status)
}

// Skill handles GET /api/leaderboard/skills/{category}.
func (h *LeaderboardHandler) Skill(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	category := domain.Category(chi.URLParam(r, "category"))
	entries, err := h.leaderboardService.Skill(r.Context(), category)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, entries)
}

// SkillStatus handles GET /api/leaderboard/skills/{category}/me.
func (h *LeaderboardHandler) SkillStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	category := domain.Category(chi.URLParam(r, "category"))
	status, err := h.leaderboardService.SkillStatus(r.Context(), userID, category)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, status)
}
