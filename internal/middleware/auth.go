package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"trem-do-bem/internal/auth"
	"trem-do-bem/internal/model"
)

type claimsKey struct{}

// ClaimsFromContext returns the verified claims stored by AdminAuth.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok
}

// AdminAuth requires a bearer token carrying the admin role.
func AdminAuth(credential auth.Credential, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := strings.TrimSpace(r.Header.Get("Authorization"))
			if header == "" {
				logger.Warn().Str("path", r.URL.Path).Msg("missing bearer token")
				writeDomainError(w, http.StatusUnauthorized, model.ErrMissingToken)
				return
			}

			scheme, token, found := strings.Cut(header, " ")
			token = strings.TrimSpace(token)
			if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
				logger.Warn().Str("path", r.URL.Path).Msg("malformed authorization header")
				writeDomainError(w, http.StatusUnauthorized, model.ErrInvalidToken)
				return
			}

			claims, err := credential.Verify(token)
			if err != nil {
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("invalid bearer token")
				writeDomainError(w, http.StatusUnauthorized, model.ErrInvalidToken)
				return
			}

			if claims.Role != auth.RoleAdmin {
				logger.Warn().Str("path", r.URL.Path).Str("role", claims.Role).Msg("non-admin token rejected")
				writeDomainError(w, http.StatusForbidden, model.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
		})
	}
}

func writeDomainError(w http.ResponseWriter, status int, err *model.DomainError) {
	writeError(w, status, err.Code, err.Message)
}
