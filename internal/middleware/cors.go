package middleware

import "net/http"

// CORSMiddleware pose des en-têtes CORS permissifs sur toutes les réponses et
// répond 200 aux préflights OPTIONS. L'API est consommée depuis des overlays
// embarqués sur des origines arbitraires.
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "authorization, content-type")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
