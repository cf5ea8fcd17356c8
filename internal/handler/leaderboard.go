package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/dasfruit808/AstroCat-backend/internal/scores"
	"github.com/dasfruit808/AstroCat-backend/internal/utils"
)

// GetLeaderboards récupère les classements demandés (param scopes, liste
// séparée par des virgules). Scopes inconnus ignorés, défaut : les deux.
func (h *Handler) GetLeaderboards(w http.ResponseWriter, r *http.Request) {
	requested := strings.Split(r.URL.Query().Get("scopes"), ",")

	var scopeList []scores.Scope
	for _, raw := range requested {
		switch scores.Scope(strings.TrimSpace(strings.ToLower(raw))) {
		case scores.ScopeGlobal:
			scopeList = append(scopeList, scores.ScopeGlobal)
		case scores.ScopeWeekly:
			scopeList = append(scopeList, scores.ScopeWeekly)
		}
	}
	if len(scopeList) == 0 {
		scopeList = []scores.Scope{scores.ScopeGlobal, scores.ScopeWeekly}
	}

	boards, err := h.view.FetchAll(r.Context(), scopeList)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not build leaderboards")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"leaderboards": boards,
		"fetchedAt":    time.Now(),
	})
}
