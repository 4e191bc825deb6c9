package http

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/phonebook/internal/authz"
	"github.com/dmitrijs2005/phonebook/internal/server/auth"
	"github.com/dmitrijs2005/phonebook/internal/server/repositories/users"
)

type principalKey struct{}

// sessionMiddleware resolves the session cookie to the current user row. The
// user is reloaded from storage on every request, so deactivating an account
// or changing its role takes effect immediately. An absent, invalid, or
// stale cookie simply leaves the request anonymous; the require* middlewares
// decide whether that is an error.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(auth.CookieName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := auth.ParseToken(cookie.Value, []byte(s.cfg.SecretKey))
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		user, err := s.store.Users().GetByID(r.Context(), claims.UserID)
		if err != nil || !user.IsActive {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), principalKey{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func principalFromContext(ctx context.Context) *users.User {
	value := ctx.Value(principalKey{})
	user, _ := value.(*users.User)
	return user
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if principalFromContext(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireEditor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := principalFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		if !authz.CanMutate(user.Role) {
			writeError(w, http.StatusForbidden, "Editor or admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := principalFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		if !authz.CanManageUsers(user.Role) {
			writeError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
