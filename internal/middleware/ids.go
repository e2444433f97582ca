package middleware

import (
	"context"
	"net/http"

	"github.com/AdamBeresnev/frisbee-scorekeeper/internal/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ContextKey string

const (
	TournamentIDKey ContextKey = "tournamentID"
	MatchIDKey      ContextKey = "matchID"
)

// RequireID parses the URL parameter as a UUID and stores it in the request context
// under key, rejecting the request when it is malformed.
func RequireID(param string, key ContextKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(chi.URLParam(r, param))
			if err != nil {
				httputil.BadRequest(w, "Invalid "+param, err)
				return
			}

			ctx := context.WithValue(r.Context(), key, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetIDFromContext(ctx context.Context, key ContextKey) (uuid.UUID, bool) {
	val := ctx.Value(key)
	if val == nil {
		return uuid.Nil, false
	}

	id, ok := val.(uuid.UUID)
	return id, ok
}
