package handler

import (
	"net/http"

	"github.com/dasfruit808/AstroCat-backend/internal/utils"
)

// RootHandler affiche toutes les routes disponibles de l'API
func (h *Handler) RootHandler(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{
		"name":    "AstroCat API",
		"version": "1.0.0",
		"status":  "running",
		"routes": map[string]interface{}{
			"runs": []map[string]string{
				{"method": "POST", "path": "/runs", "description": "Émettre un jeton de run pour un device"},
			},
			"scores": []map[string]string{
				{"method": "POST", "path": "/scores", "description": "Soumettre un run (jeton requis)"},
			},
			"leaderboards": []map[string]string{
				{"method": "GET", "path": "/leaderboards", "description": "Classements global et hebdomadaire (param: scopes)"},
			},
			"health": []map[string]string{
				{"method": "GET", "path": "/health", "description": "Health check de l'API"},
			},
		},
		"documentation": map[string]string{
			"description": "API REST pour AstroCat - soumission de scores et classements",
		},
	}

	utils.JSON(w, http.StatusOK, routes)
}
