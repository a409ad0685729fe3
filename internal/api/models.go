package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/proevals/proevals-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string       `json:"email"    validate:"required,email"`
	Name     string       `json:"name"     validate:"required,min=1,max=100"`
	Password string       `json:"password" validate:"required,min=12,max=72"`
	Level    domain.Level `json:"level"    validate:"required"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AttemptRequest defines the payload for submitting a drill attempt. An
// absent selected_option records the timeout default (incorrect, 0%
// confidence).
type AttemptRequest struct {
	SelectedOption domain.Option `json:"selected_option" validate:"omitempty,oneof=A B C D"`
	Confidence     int           `json:"confidence"      validate:"gte=0,lte=100"`
}

// AttemptResponse reports a recorded attempt back to the client, including
// the updated streak counters so the UI can refresh without a second call.
type AttemptResponse struct {
	DrillID            string        `json:"drill_id"`
	SelectedOption     domain.Option `json:"selected_option,omitempty"`
	IsCorrect          bool          `json:"is_correct"`
	Outcome            string        `json:"outcome"`
	Confidence         int           `json:"confidence"`
	CalibrationScore   int           `json:"calibration_score"`
	NextShowAt         time.Time     `json:"next_show_at"`
	CurrentStreak      int           `json:"current_streak"`
	CurrentDailyStreak int           `json:"current_daily_streak"`
}

// QuotaResponse reports a user's quota position.
type QuotaResponse struct {
	Unlimited        bool       `json:"unlimited"`
	CompletedInCycle int        `json:"completed_in_cycle"`
	Remaining        int        `json:"remaining"`
	CooldownEnd      *time.Time `json:"cooldown_end,omitempty"`
}

// SaveResponse reports the new saved state after a toggle.
type SaveResponse struct {
	DrillID string `json:"drill_id"`
	Saved   bool   `json:"saved"`
}

// StatsResponse reports a user's aggregate performance metrics.
type StatsResponse struct {
	OverallScore       int            `json:"overall_score"`
	SkillScores        map[string]int `json:"skill_scores"`
	AttemptCount       int            `json:"attempt_count"`
	CurrentStreak      int            `json:"current_streak"`
	LongestStreak      int            `json:"longest_streak"`
	CurrentDailyStreak int            `json:"current_daily_streak"`
	LongestDailyStreak int            `json:"longest_daily_streak"`
	NewOverallBest     bool           `json:"new_overall_best"`
	NewDailyStreakBest bool           `json:"new_daily_streak_best"`
}

// UpdateProfileRequest defines the payload for profile edits. Absent
// fields are left unchanged.
type UpdateProfileRequest struct {
	Name  *string       `json:"name,omitempty"  validate:"omitempty,min=1,max=100"`
	Level *domain.Level `json:"level,omitempty"`
	Plan  *domain.Plan  `json:"plan,omitempty"`
}

// ChangePasswordRequest defines the payload for the password change
// endpoint.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required,min=1"`
	NewPassword     string `json:"new_password"     validate:"required,min=12,max=72"`
}

// ImportRequest defines the payload for the drill bank import endpoint.
// Mode defaults to append.
type ImportRequest struct {
	Drills []domain.Drill `json:"drills" validate:"required,min=1"`
	Mode   string         `json:"mode"   validate:"omitempty,oneof=append replace"`
}
