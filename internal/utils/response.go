package utils

import (
	"encoding/json"
	"net/http"

	"github.com/dasfruit808/AstroCat-backend/internal/apperr"
	"github.com/dasfruit808/AstroCat-backend/internal/logger"
)

// JSON écrit une réponse JSON avec le statut donné.
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("could not encode response: %v", err)
	}
}

// Error écrit une erreur JSON courte. Le détail reste côté serveur.
func Error(w http.ResponseWriter, status int, msg string) {
	logger.Error("[%d] %s", status, msg)
	JSON(w, status, map[string]string{"error": msg})
}

// AppError mappe une erreur typée vers son statut HTTP et son message public.
// Le détail des erreurs internes est loggé, jamais renvoyé au client.
func AppError(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("internal error: %v", err)
	}
	body := map[string]interface{}{"error": apperr.UserMessage(err)}
	if retryAt := apperr.RetryAt(err); !retryAt.IsZero() {
		body["retryAt"] = retryAt.UnixMilli()
	}
	JSON(w, status, body)
}
