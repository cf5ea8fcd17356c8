package handler

import (
	"net/http"

	"github.com/dasfruit808/AstroCat-backend/internal/submission"
	"github.com/dasfruit808/AstroCat-backend/internal/utils"
)

type submitScoreRequest struct {
	PlayerName         string  `json:"playerName"`
	DeviceID           string  `json:"deviceId"`
	RunToken           string  `json:"runToken"`
	Score              float64 `json:"score"`
	TimeMs             float64 `json:"timeMs"`
	BestStreak         float64 `json:"bestStreak"`
	Nyan               float64 `json:"nyan"`
	RecordedAt         float64 `json:"recordedAt"` // epoch millis, optionnel
	ClientSubmissionID string  `json:"clientSubmissionId"`
}

// SubmitScore soumet un run : 201 créé, 200 rejeu idempotent, 409 si le run
// existant domine. Les refus sortent en 400/401/429/500 selon le genre.
func (h *Handler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	var req submitScoreRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := h.coordinator.Submit(r.Context(), submission.Input{
		PlayerName:         req.PlayerName,
		DeviceID:           req.DeviceID,
		RunToken:           req.RunToken,
		ClientIP:           utils.ClientIP(r),
		Score:              req.Score,
		TimeMs:             req.TimeMs,
		BestStreak:         req.BestStreak,
		Nyan:               req.Nyan,
		RecordedAtMs:       req.RecordedAt,
		ClientSubmissionID: req.ClientSubmissionID,
	})
	if err != nil {
		utils.AppError(w, err)
		return
	}

	body := map[string]interface{}{
		"placement":    result.Placement,
		"leaderboards": result.Leaderboards,
		"fetchedAt":    result.FetchedAt,
	}
	if result.Message != "" {
		body["message"] = result.Message
	}

	status := http.StatusCreated
	switch result.Outcome {
	case submission.OutcomeDuplicate:
		status = http.StatusOK
	case submission.OutcomeConflict:
		status = http.StatusConflict
	}
	utils.JSON(w, status, body)
}
