package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/admissible-dev/admissible-demo/shared/domain"
	"github.com/admissible-dev/admissible-demo/shared/logger"
	"github.com/admissible-dev/admissible-demo/shared/utils"
)

// ErrDenied is returned by an Authorizer that looked at the request and said no.
var ErrDenied = errors.New("not authorized")

// Authorizer decides whether a request is signed in. Implementations must
// not cache decisions: the access token can be refreshed or revoked between
// two requests.
type Authorizer interface {
	Authorize(ctx context.Context, r *http.Request) (*domain.Identity, error)
}

// Key to store the identity in the request context
type key int

const IdentityKey key = 0

type Auth struct {
	authorizer Authorizer
}

func NewAuth(authorizer Authorizer) *Auth {
	return &Auth{authorizer: authorizer}
}

// NeedAuth rejects requests the authorizer denies with 403 Forbidden,
// matching what the browser client expects from a denied gateway route.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := a.authorizer.Authorize(r.Context(), r)
			if err != nil {
				if errors.Is(err, ErrDenied) {
					http.Error(w, "Forbidden", http.StatusForbidden)
					return
				}
				logger.Log.Error("authorizer failed", "path", r.URL.Path, "error", err)
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentityFromContext returns the identity NeedAuth stored, or nil.
func GetIdentityFromContext(r *http.Request) *domain.Identity {
	identity, ok := r.Context().Value(IdentityKey).(*domain.Identity)
	if !ok {
		return nil
	}
	return identity
}

// GetEmailFromContext is a rate limit identity for signed-in routes.
func GetEmailFromContext(r *http.Request) (string, error) {
	identity := GetIdentityFromContext(r)
	if identity == nil {
		return "", errors.New("no identity in context")
	}
	return identity.Email, nil
}
