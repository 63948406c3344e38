package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"orientation-service/internal/httputil"
	"orientation-service/internal/user"
)

// RequireAuth validates the bearer token of the request and stores the
// user it names in the request context.
func RequireAuth(credentials *Credentials, users user.Repository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				httputil.RespondWithServiceError(w, r, logger, ErrInvalidToken)
				return
			}

			subject, err := credentials.ValidateToken(token)
			if err != nil {
				logger.DebugContext(r.Context(), "invalid token", "error", err)
				httputil.RespondWithServiceError(w, r, logger, ErrInvalidToken)
				return
			}

			u, err := users.GetByUsername(r.Context(), subject)
			if err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					err = ErrInvalidToken
				}
				httputil.RespondWithServiceError(w, r, logger, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(user.NewContext(r.Context(), u)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
