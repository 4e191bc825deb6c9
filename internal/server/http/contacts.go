package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/phonebook/internal/authz"
	"github.com/dmitrijs2005/phonebook/internal/common"
	"github.com/dmitrijs2005/phonebook/internal/models"
	"github.com/dmitrijs2005/phonebook/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/phonebook/internal/server/repositories/users"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func queryInt(r *http.Request, name string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	p := contacts.ListParams{
		Page:    queryInt(r, "page", 1),
		PerPage: queryInt(r, "per_page", defaultPerPage),
		Search:  r.URL.Query().Get("search"),
	}
	if p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}
	if companyID, err := strconv.ParseInt(r.URL.Query().Get("company_id"), 10, 64); err == nil {
		p.CompanyID = companyID
	}

	items, total, err := s.store.Contacts().List(r.Context(), p)
	if err != nil {
		s.logger.Error(r.Context(), "contact listing failed", "error", err)
		writeServerError(w)
		return
	}
	if items == nil {
		items = []models.Contact{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"contacts": items,
		"pagination": models.Pagination{
			Page:    p.Page,
			PerPage: p.PerPage,
			Total:   total,
			Pages:   (total + p.PerPage - 1) / p.PerPage,
		},
	})
}

// companyExists validates a company reference before it is written.
func (s *Server) companyExists(r *http.Request, id int64) (bool, error) {
	_, err := s.store.Companies().GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	user := principalFromContext(r.Context())

	var data map[string]any
	if err := decodeJSON(r, &data); err != nil {
		writeError(w, http.StatusBadRequest, "No data provided")
		return
	}

	contact := &models.Contact{CreatedBy: user.ID}
	if msg, ok := applyContactFields(contact, data); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if contact.FirstName == "" || contact.LastName == "" {
		writeError(w, http.StatusBadRequest, "First name and last name required")
		return
	}

	if contact.CompanyID != nil {
		found, err := s.companyExists(r, *contact.CompanyID)
		if err != nil {
			writeServerError(w)
			return
		}
		if !found {
			writeError(w, http.StatusBadRequest, "Invalid company_id")
			return
		}
	}

	created, err := s.store.Contacts().Create(r.Context(), contact)
	if err != nil {
		s.logger.Error(r.Context(), "contact create failed", "error", err)
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "contact": created})
}

// applyContactFields copies the recognized keys of a request body onto the
// contact. Unknown keys are ignored. It reports a client-facing message for
// values of the wrong type.
func applyContactFields(c *models.Contact, data map[string]any) (string, bool) {
	for key, value := range data {
		if key == "company_id" {
			if value == nil {
				c.CompanyID = nil
				continue
			}
			n, ok := value.(float64)
			if !ok {
				return "Invalid company_id", false
			}
			id := int64(n)
			c.CompanyID = &id
			continue
		}

		str, ok := value.(string)
		if !ok {
			continue
		}
		switch key {
		case "first_name":
			c.FirstName = str
		case "last_name":
			c.LastName = str
		case "email":
			c.Email = str
		case "phone":
			c.Phone = str
		case "mobile":
			c.Mobile = str
		case "notes":
			c.Notes = str
		}
	}
	return "", true
}

// canTouchContact mirrors the write rule for existing contacts: editors and
// admins may touch any record, plain users only their own.
func canTouchContact(user *users.User, contact *models.Contact) bool {
	return authz.CanMutate(user.Role) || contact.CreatedBy == user.ID
}

func (s *Server) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Contact not found")
		return
	}

	contact, err := s.store.Contacts().GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Contact not found")
			return
		}
		writeServerError(w)
		return
	}

	user := principalFromContext(r.Context())
	if !canTouchContact(user, contact) {
		writeError(w, http.StatusForbidden, "Permission denied")
		return
	}

	var data map[string]any
	if err := decodeJSON(r, &data); err != nil || len(data) == 0 {
		writeError(w, http.StatusBadRequest, "No data provided")
		return
	}

	if msg, ok := applyContactFields(contact, data); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if _, present := data["company_id"]; present && contact.CompanyID != nil {
		found, err := s.companyExists(r, *contact.CompanyID)
		if err != nil {
			writeServerError(w)
			return
		}
		if !found {
			writeError(w, http.StatusBadRequest, "Invalid company_id")
			return
		}
	}

	if err := s.store.Contacts().Update(r.Context(), contact); err != nil {
		s.logger.Error(r.Context(), "contact update failed", "error", err)
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "contact": contact})
}

func (s *Server) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Contact not found")
		return
	}

	contact, err := s.store.Contacts().GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Contact not found")
			return
		}
		writeServerError(w)
		return
	}

	user := principalFromContext(r.Context())
	if !canTouchContact(user, contact) {
		writeError(w, http.StatusForbidden, "Permission denied")
		return
	}

	if err := s.store.Contacts().Delete(r.Context(), id); err != nil {
		s.logger.Error(r.Context(), "contact delete failed", "error", err)
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Contact deleted successfully"})
}
