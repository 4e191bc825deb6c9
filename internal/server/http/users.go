package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/phonebook/internal/authz"
	"github.com/dmitrijs2005/phonebook/internal/common"
	"github.com/dmitrijs2005/phonebook/internal/models"
	"github.com/dmitrijs2005/phonebook/internal/server/crypto"
	"github.com/dmitrijs2005/phonebook/internal/server/repositories/users"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.Users().List(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "user listing failed", "error", err)
		writeServerError(w)
		return
	}

	result := make([]models.User, 0, len(items))
	for i := range items {
		result = append(result, items[i].Model())
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "users": result})
}

// usernameTaken and emailTaken report identity collisions, ignoring the row
// with excludeID so updates can keep their own values.
func (s *Server) usernameTaken(ctx context.Context, username string, excludeID int64) (bool, error) {
	existing, err := s.store.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}
	return existing.ID != excludeID, nil
}

func (s *Server) emailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	existing, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}
	return existing.ID != excludeID, nil
}

type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// handleCreateUser is deliberately not behind requireAdmin: creating the very
// first admin account on an empty instance needs no session. Every other
// create requires an admin.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil || req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username, email, and password required")
		return
	}

	if req.Role == "" {
		req.Role = string(models.RoleUser)
	}
	role := models.Role(req.Role)
	if !role.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	principal := principalFromContext(r.Context())
	isAdmin := principal != nil && authz.CanManageUsers(principal.Role)
	if !isAdmin {
		if role != models.RoleAdmin {
			writeError(w, http.StatusForbidden, "Admin access required")
			return
		}
		adminCount, err := s.store.Users().CountAdmins(r.Context())
		if err != nil {
			writeServerError(w)
			return
		}
		if adminCount > 0 {
			writeError(w, http.StatusForbidden, "Admin access required to create admin users")
			return
		}
	}

	if taken, err := s.usernameTaken(r.Context(), req.Username, 0); err != nil {
		writeServerError(w)
		return
	} else if taken {
		writeError(w, http.StatusBadRequest, "Username already exists")
		return
	}
	if taken, err := s.emailTaken(r.Context(), req.Email, 0); err != nil {
		writeServerError(w)
		return
	} else if taken {
		writeError(w, http.StatusBadRequest, "Email already exists")
		return
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		writeServerError(w)
		return
	}

	user := &users.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}

	created, err := s.store.Users().Create(r.Context(), user)
	if err != nil {
		s.logger.Error(r.Context(), "user create failed", "error", err)
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "user": created.Model()})
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	user, err := s.store.Users().GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeServerError(w)
		return
	}

	var data map[string]any
	if err := decodeJSON(r, &data); err != nil || len(data) == 0 {
		writeError(w, http.StatusBadRequest, "No data provided")
		return
	}

	if value, present := data["username"]; present {
		username, ok := value.(string)
		if !ok || username == "" {
			writeError(w, http.StatusBadRequest, "Username, email, and password required")
			return
		}
		taken, err := s.usernameTaken(r.Context(), username, id)
		if err != nil {
			writeServerError(w)
			return
		}
		if taken {
			writeError(w, http.StatusBadRequest, "Username already exists")
			return
		}
		user.Username = username
	}

	if value, present := data["email"]; present {
		email, ok := value.(string)
		if !ok || email == "" {
			writeError(w, http.StatusBadRequest, "Username, email, and password required")
			return
		}
		taken, err := s.emailTaken(r.Context(), email, id)
		if err != nil {
			writeServerError(w)
			return
		}
		if taken {
			writeError(w, http.StatusBadRequest, "Email already exists")
			return
		}
		user.Email = email
	}

	// An empty password on update means "keep the current one".
	if value, present := data["password"]; present {
		if password, ok := value.(string); ok && password != "" {
			hash, err := crypto.HashPassword(password)
			if err != nil {
				writeServerError(w)
				return
			}
			user.PasswordHash = hash
		}
	}

	if value, present := data["role"]; present {
		str, _ := value.(string)
		role := models.Role(str)
		if !role.Valid() {
			writeError(w, http.StatusBadRequest, "Invalid role")
			return
		}
		user.Role = role
	}

	if value, present := data["is_active"]; present {
		if b, ok := value.(bool); ok {
			user.IsActive = b
		}
	}

	if err := s.store.Users().Update(r.Context(), user); err != nil {
		s.logger.Error(r.Context(), "user update failed", "error", err)
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": user.Model()})
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	principal := principalFromContext(r.Context())
	if id == principal.ID {
		writeError(w, http.StatusBadRequest, "Cannot delete your own account")
		return
	}

	if err := s.store.Users().Delete(r.Context(), id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		s.logger.Error(r.Context(), "user delete failed", "error", err)
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "User deleted"})
}
