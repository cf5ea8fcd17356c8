package handler

import (
	"net/http"

	"github.com/dasfruit808/AstroCat-backend/internal/utils"
)

type createRunRequest struct {
	DeviceID string `json:"deviceId"`
}

// CreateRun émet un jeton de run pour un device
func (h *Handler) CreateRun(w http.ResponseWriter, r *http.Request) {
	var req createRunRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	serialized, expiresAt, err := h.tokens.Issue(r.Context(), req.DeviceID)
	if err != nil {
		utils.AppError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]interface{}{
		"runToken":  serialized,
		"expiresAt": expiresAt.UnixMilli(),
	})
}
