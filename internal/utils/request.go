package utils

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
)

// DecodeJSON décode le corps JSON d'une requête vers dest.
func DecodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	return decoder.Decode(dest)
}

// ClientIP extrait l'adresse du client : premier saut de X-Forwarded-For si
// présent (déployé derrière un proxy), sinon l'hôte de RemoteAddr.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
