package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/opsdesk/opsdesk/internal/domain/client"
	"github.com/opsdesk/opsdesk/internal/domain/company"
	"github.com/opsdesk/opsdesk/internal/domain/contact"
	"github.com/opsdesk/opsdesk/internal/domain/invoice"
	"github.com/opsdesk/opsdesk/internal/domain/org"
	"github.com/opsdesk/opsdesk/internal/domain/project"
	"github.com/opsdesk/opsdesk/internal/domain/task"
	"github.com/opsdesk/opsdesk/internal/domain/validate"
)

// envelope is the uniform response body: status is "success" or "error",
// message is human-readable, data carries the payload if any.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	status := "success"
	if code >= 400 {
		status = "error"
	}
	json.NewEncoder(w).Encode(envelope{Status: status, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, code int, message string, data any) {
	writeJSON(w, code, message, data)
}

// respondError maps domain errors to transport status codes.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *validate.Error
	if errors.As(err, &vErr) {
		writeError(w, http.StatusBadRequest, "validation failed", map[string]any{"issues": vErr.Issues})
		return
	}
	var refErr *validate.ReferenceError
	if errors.As(err, &refErr) {
		writeError(w, http.StatusBadRequest, refErr.Error(), map[string]any{
			"entity": refErr.Entity,
			"reason": refErr.Reason,
			"ids":    refErr.IDs,
		})
		return
	}

	switch {
	case isNotFound(err):
		writeError(w, http.StatusNotFound, err.Error(), nil)
	case isConflict(err):
		writeError(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, org.ErrDefaultRole):
		writeError(w, http.StatusForbidden, err.Error(), nil)
	case isBadRequest(err):
		writeError(w, http.StatusBadRequest, err.Error(), nil)
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error", nil)
	}
}

func isNotFound(err error) bool {
	for _, sentinel := range []error{
		client.ErrClientNotFound,
		project.ErrProjectNotFound,
		project.ErrClientNotFound,
		task.ErrTaskNotFound,
		task.ErrProjectNotFound,
		task.ErrAttachmentNotFound,
		invoice.ErrInvoiceNotFound,
		invoice.ErrClientNotFound,
		org.ErrUserNotFound,
		org.ErrRoleNotFound,
		org.ErrDepartmentNotFound,
		contact.ErrContactNotFound,
		company.ErrNotConfigured,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func isConflict(err error) bool {
	for _, sentinel := range []error{
		client.ErrEmailTaken,
		client.ErrClientInUse,
		client.ErrStaleVersion,
		project.ErrProjectInUse,
		project.ErrStaleVersion,
		invoice.ErrDuplicateNumber,
		org.ErrEmailTaken,
		org.ErrRoleExists,
		org.ErrDepartmentExists,
		org.ErrUserInUse,
		org.ErrRoleInUse,
		org.ErrDepartmentInUse,
		contact.ErrEmailTaken,
		company.ErrAlreadyConfigured,
		task.ErrAlreadyAssigned,
		task.ErrNotAssigned,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func isBadRequest(err error) bool {
	for _, sentinel := range []error{
		task.ErrDueBeforeStart,
		task.ErrStartsBeforeProject,
		task.ErrDueAfterDeadline,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return false
	}
	return true
}
