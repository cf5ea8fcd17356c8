package api

import (
	"net/http"

	"github.com/dasfruit808/AstroCat-backend/internal/handler"
	"github.com/dasfruit808/AstroCat-backend/internal/middleware"
	"github.com/dasfruit808/AstroCat-backend/internal/utils"
	"github.com/fatih/color"
	"github.com/gorilla/mux"
)

func SetupRouter(h *handler.Handler) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.LoggerMiddleware)

	// Root - API documentation
	r.HandleFunc("/", h.RootHandler).Methods(http.MethodGet)

	// Runs (jetons de soumission)
	r.HandleFunc("/runs", h.CreateRun).Methods(http.MethodPost, http.MethodOptions)

	// Scores
	r.HandleFunc("/scores", h.SubmitScore).Methods(http.MethodPost, http.MethodOptions)

	// Leaderboards
	r.HandleFunc("/leaderboards", h.GetLeaderboards).Methods(http.MethodGet, http.MethodOptions)

	// Health check
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		color.Yellow("[404] %s %s (route non trouvée)", r.Method, r.URL.Path)
		utils.Error(w, http.StatusNotFound, "route not found")
	})

	return middleware.CORSMiddleware(r)
}
