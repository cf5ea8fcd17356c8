// Package apperr porte la taxonomie d'erreurs de l'API : chaque erreur a un
// genre typé, et les handlers branchent sur le genre plutôt que sur le texte.
package apperr

import (
	"errors"
	"net/http"
	"time"
)

type Kind int

const (
	KindValidation Kind = iota + 1 // entrée client malformée ou hors limites -> 400
	KindAuth                       // token absent, invalide, expiré ou mauvais device -> 401
	KindConflict                   // le run existant domine, no-op -> 409
	KindRateLimit                  // fenêtre dépassée -> 429
	KindInternal                   // erreur store ou inattendue -> 500
)

// Error est une erreur typée avec un message sûr pour le client.
// Pour KindInternal, Err garde le détail qui ne doit jamais traverser l'API.
type Error struct {
	Kind    Kind
	Message string
	RetryAt time.Time // renseigné uniquement pour KindRateLimit
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

func Auth(msg string) *Error { return &Error{Kind: KindAuth, Message: msg} }

func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

func RateLimit(msg string, retryAt time.Time) *Error {
	return &Error{Kind: KindRateLimit, Message: msg, RetryAt: retryAt}
}

func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf retourne le genre d'une erreur, KindInternal si elle n'est pas typée.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus mappe une erreur vers son statut HTTP.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	case KindRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage retourne le message exposable au client. Le détail des erreurs
// internes reste côté serveur.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "internal server error"
}

// RetryAt retourne l'instant de réessai d'une erreur de rate limit, zéro sinon.
func RetryAt(err error) time.Time {
	var e *Error
	if errors.As(err, &e) {
		return e.RetryAt
	}
	return time.Time{}
}
