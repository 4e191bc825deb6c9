package http

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/phonebook/internal/common"
	"github.com/dmitrijs2005/phonebook/internal/models"
)

// Notices are listed unfiltered, inactive ones included; the client decides
// what to show where.
func (s *Server) handleListNotices(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.Notices().List(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "notice listing failed", "error", err)
		writeServerError(w)
		return
	}
	if items == nil {
		items = []models.Notice{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "notices": items})
}

func applyNoticeFields(n *models.Notice, data map[string]any) {
	for key, value := range data {
		switch key {
		case "title":
			if str, ok := value.(string); ok {
				n.Title = str
			}
		case "content":
			if str, ok := value.(string); ok {
				n.Content = str
			}
		case "priority":
			if str, ok := value.(string); ok {
				n.Priority = models.NormalizePriority(str)
			}
		case "is_active":
			if b, ok := value.(bool); ok {
				n.IsActive = b
			}
		}
	}
}

func (s *Server) handleCreateNotice(w http.ResponseWriter, r *http.Request) {
	user := principalFromContext(r.Context())

	var data map[string]any
	if err := decodeJSON(r, &data); err != nil {
		writeError(w, http.StatusBadRequest, "No data provided")
		return
	}

	notice := &models.Notice{
		Priority:  models.PriorityNormal,
		IsActive:  true,
		CreatedBy: &models.UserRef{ID: user.ID, Username: user.Username},
	}
	applyNoticeFields(notice, data)
	if notice.Title == "" || notice.Content == "" {
		writeError(w, http.StatusBadRequest, "Title and content required")
		return
	}

	created, err := s.store.Notices().Create(r.Context(), notice)
	if err != nil {
		s.logger.Error(r.Context(), "notice create failed", "error", err)
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "notice": created})
}

func (s *Server) handleUpdateNotice(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Notice not found")
		return
	}

	notice, err := s.store.Notices().GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Notice not found")
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

	applyNoticeFields(notice, data)
	if notice.Title == "" || notice.Content == "" {
		writeError(w, http.StatusBadRequest, "Title and content required")
		return
	}

	if err := s.store.Notices().Update(r.Context(), notice); err != nil {
		s.logger.Error(r.Context(), "notice update failed", "error", err)
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "notice": notice})
}

func (s *Server) handleDeleteNotice(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Notice not found")
		return
	}

	if err := s.store.Notices().Delete(r.Context(), id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Notice not found")
			return
		}
		s.logger.Error(r.Context(), "notice delete failed", "error", err)
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Notice deleted"})
}
