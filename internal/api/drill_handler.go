package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/proevals/proevals-api/internal/api/shared"
	"github.com/proevals/proevals-api/internal/domain"
	"github.com/proevals/proevals-api/internal/service/drill"
)

// DrillHandler handles the drill-taking API requests: selection, attempt
// submission, quota queries, saving and stats.
type DrillHandler struct {
	drillService drill.Service
	logger       *slog.Logger
}

// NewDrillHandler creates a new DrillHandler with the given dependencies.
func NewDrillHandler(drillService drill.Service, logger *slog.Logger) *DrillHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DrillHandler{
		drillService: drillService,
		logger:       logger.With(slog.String("component", "drill_handler")),
	}
}

// NextDrill handles GET /api/drills/next. An optional ?level= query
// overrides the user's declared level. Quota exhaustion maps to 429 and
// "all caught up" to 204; neither is a server failure.
func (h *DrillHandler) NextDrill(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	level := domain.Level(r.URL.Query().Get("level"))
	if level != "" && !level.IsValid() {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Unknown skill level")
		return
	}

	d, err := h.drillService.NextDrill(r.Context(), userID, level)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, d)
}

// SubmitAttempt handles POST /api/drills/{id}/attempt.
func (h *DrillHandler) SubmitAttempt(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	drillID := chi.URLParam(r, "id")
	if drillID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Drill ID is required")
		return
	}

	var req AttemptRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	result, err := h.drillService.RecordAttempt(r.Context(), userID, drill.AttemptSubmission{
		DrillID:        drillID,
		SelectedOption: req.SelectedOption,
		Confidence:     req.Confidence,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AttemptResponse{
		DrillID:            result.Attempt.DrillID,
		SelectedOption:     result.Attempt.SelectedOption,
		IsCorrect:          result.Attempt.IsCorrect,
		Outcome:            string(result.Outcome),
		Confidence:         result.Attempt.Confidence,
		CalibrationScore:   result.Attempt.CalibrationScore,
		NextShowAt:         result.Attempt.NextShowAt,
		CurrentStreak:      result.Progress.CurrentStreak,
		CurrentDailyStreak: result.Progress.CurrentDailyStreak,
	})
}

// QuotaStatus handles GET /api/drills/quota.
func (h *DrillHandler) QuotaStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	status, err := h.drillService.QuotaStatus(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, QuotaResponse{
		Unlimited:        status.Unlimited,
		CompletedInCycle: status.CompletedInCycle,
		Remaining:        status.Remaining,
		CooldownEnd:      status.CooldownEnd,
	})
}

// ToggleSaved handles POST /api/drills/{id}/save.
func (h *DrillHandler) ToggleSaved(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	drillID := chi.URLParam(r, "id")
	if drillID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Drill ID is required")
		return
	}

	saved, err := h.drillService.ToggleSaved(r.Context(), userID, drillID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SaveResponse{DrillID: drillID, Saved: saved})
}

// UserStats handles GET /api/users/me/stats.
func (h *DrillHandler) UserStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	stats, err := h.drillService.UserStats(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	skillScores := make(map[string]int, len(stats.SkillScores))
	for cat, score := range stats.SkillScores {
		skillScores[string(cat)] = score
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StatsResponse{
		OverallScore:       stats.OverallScore,
		SkillScores:        skillScores,
		AttemptCount:       stats.AttemptCount,
		CurrentStreak:      stats.CurrentStreak,
		LongestStreak:      stats.LongestStreak,
		CurrentDailyStreak: stats.CurrentDailyStreak,
		LongestDailyStreak: stats.LongestDailyStreak,
		NewOverallBest:     stats.NewOverallBest,
		NewDailyStreakBest: stats.NewDailyStreakBest,
	})
}
