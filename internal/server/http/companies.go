package http

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/phonebook/internal/common"
	"github.com/dmitrijs2005/phonebook/internal/models"
)

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.Companies().List(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "company listing failed", "error", err)
		writeServerError(w)
		return
	}
	if items == nil {
		items = []models.Company{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "companies": items})
}

func applyCompanyFields(c *models.Company, data map[string]any) {
	for key, value := range data {
		str, ok := value.(string)
		if !ok {
			continue
		}
		switch key {
		case "name":
			c.Name = str
		case "industry":
			c.Industry = str
		case "website":
			c.Website = str
		case "email":
			c.Email = str
		case "phone":
			c.Phone = str
		case "address":
			c.Address = str
		case "city":
			c.City = str
		case "state":
			c.State = str
		case "zip_code":
			c.ZipCode = str
		case "country":
			c.Country = str
		case "description":
			c.Description = str
		}
	}
}

func (s *Server) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	user := principalFromContext(r.Context())

	var data map[string]any
	if err := decodeJSON(r, &data); err != nil {
		writeError(w, http.StatusBadRequest, "No data provided")
		return
	}

	company := &models.Company{CreatedBy: user.ID}
	applyCompanyFields(company, data)
	if company.Name == "" {
		writeError(w, http.StatusBadRequest, "Name required")
		return
	}

	created, err := s.store.Companies().Create(r.Context(), company)
	if err != nil {
		s.logger.Error(r.Context(), "company create failed", "error", err)
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "company": created})
}

func (s *Server) handleUpdateCompany(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Company not found")
		return
	}

	company, err := s.store.Companies().GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Company not found")
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

	applyCompanyFields(company, data)
	if company.Name == "" {
		writeError(w, http.StatusBadRequest, "Name required")
		return
	}

	if err := s.store.Companies().Update(r.Context(), company); err != nil {
		s.logger.Error(r.Context(), "company update failed", "error", err)
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "company": company})
}

func (s *Server) handleDeleteCompany(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Company not found")
		return
	}

	if err := s.store.Companies().Delete(r.Context(), id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Company not found")
			return
		}
		s.logger.Error(r.Context(), "company delete failed", "error", err)
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Company deleted"})
}
