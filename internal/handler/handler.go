package handler

import (
	"net/http"

	"github.com/dasfruit808/AstroCat-backend/internal/leaderboard"
	"github.com/dasfruit808/AstroCat-backend/internal/submission"
	"github.com/dasfruit808/AstroCat-backend/internal/token"
	"github.com/dasfruit808/AstroCat-backend/internal/utils"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Handler porte les dépendances de l'API, construites une fois au démarrage.
// Aucun handler ne touche un état global.
type Handler struct {
	tokens      *token.Authority
	coordinator *submission.Coordinator
	view        *leaderboard.View
	pool        *pgxpool.Pool
}

func New(tokens *token.Authority, coordinator *submission.Coordinator, view *leaderboard.View, pool *pgxpool.Pool) *Handler {
	return &Handler{
		tokens:      tokens,
		coordinator: coordinator,
		view:        view,
		pool:        pool,
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if h.pool != nil {
		if err := h.pool.Ping(r.Context()); err != nil {
			utils.JSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "db_error",
			})
			return
		}
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
