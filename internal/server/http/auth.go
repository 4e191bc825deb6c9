package http

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/phonebook/internal/common"
	"github.com/dmitrijs2005/phonebook/internal/server/auth"
	"github.com/dmitrijs2005/phonebook/internal/server/crypto"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password required")
		return
	}

	user, err := s.store.Users().GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		s.logger.Error(r.Context(), "login lookup failed", "error", err)
		writeServerError(w)
		return
	}

	if crypto.CheckPassword(user.PasswordHash, req.Password) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !user.IsActive {
		writeError(w, http.StatusUnauthorized, "Account is disabled")
		return
	}

	m := user.Model()
	token, err := auth.GenerateToken(&m, []byte(s.cfg.SecretKey), s.cfg.SessionTTL)
	if err != nil {
		s.logger.Error(r.Context(), "token signing failed", "error", err)
		writeServerError(w)
		return
	}

	http.SetCookie(w, auth.SessionCookie(token, s.cfg.SessionTTL))
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    user.Model(),
		"message": "Login successful",
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.SessionCookie("", 0))
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Logout successful"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	user := principalFromContext(r.Context())
	if user == nil {
		writeJSON(w, http.StatusOK, map[string]any{"success": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": user.Model()})
}
