package httpapi

import (
	"net/http"
	"time"

	"github.com/opsdesk/opsdesk/internal/domain/task"
)

// maxAttachmentSize bounds a single uploaded file.
const maxAttachmentSize = 32 << 20

type taskPayload struct {
	ProjectID   string     `json:"projectId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	StartDate   *time.Time `json:"startDate"`
	DueDate     time.Time  `json:"dueDate"`
	Assignees   []string   `json:"assignees"`
	Tags        []string   `json:"tags"`
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var payload taskPayload
	if !decodeBody(w, r, &payload) {
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	createdBy := ""
	if principal != nil {
		createdBy = principal.UserID
	}

	created, err := s.tasks.Create(r.Context(), task.CreateRequest{
		ProjectID:   payload.ProjectID,
		Title:       payload.Title,
		Description: payload.Description,
		Status:      task.Status(payload.Status),
		Priority:    task.Priority(payload.Priority),
		StartDate:   payload.StartDate,
		DueDate:     payload.DueDate,
		Assignees:   payload.Assignees,
		Tags:        payload.Tags,
		CreatedBy:   createdBy,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, "task created", created)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tasks, err := s.tasks.List(r.Context(), task.ListOptions{
		ProjectID:  q.Get("projectId"),
		Status:     task.Status(q.Get("status")),
		AssigneeID: q.Get("assignee"),
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "tasks fetched", tasks)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	t, err := s.tasks.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "task fetched", t)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var payload taskPayload
	if !decodeBody(w, r, &payload) {
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	updatedBy := ""
	if principal != nil {
		updatedBy = principal.UserID
	}

	updated, err := s.tasks.Update(r.Context(), r.PathValue("id"), task.UpdateRequest{
		Title:       payload.Title,
		Description: payload.Description,
		Status:      task.Status(payload.Status),
		Priority:    task.Priority(payload.Priority),
		StartDate:   payload.StartDate,
		DueDate:     payload.DueDate,
		Assignees:   payload.Assignees,
		Tags:        payload.Tags,
		UpdatedBy:   updatedBy,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "task updated", updated)
}

func (s *Server) handleUpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status string `json:"status"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	updatedBy := ""
	if principal != nil {
		updatedBy = principal.UserID
	}

	updated, err := s.tasks.UpdateStatus(r.Context(), r.PathValue("id"), task.Status(payload.Status), updatedBy)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "task status updated", updated)
}

func (s *Server) handleAssignTask(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID string `json:"userId"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}

	updated, err := s.tasks.Assign(r.Context(), r.PathValue("id"), payload.UserID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "user assigned", updated)
}

func (s *Server) handleUnassignTask(w http.ResponseWriter, r *http.Request) {
	updated, err := s.tasks.Unassign(r.Context(), r.PathValue("id"), r.PathValue("userId"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "user unassigned", updated)
}

func (s *Server) handleAttachFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAttachmentSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form", nil)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field", nil)
		return
	}
	defer file.Close()

	principal, _ := PrincipalFromContext(r.Context())
	uploadedBy := ""
	if principal != nil {
		uploadedBy = principal.UserID
	}

	updated, err := s.tasks.Attach(r.Context(), r.PathValue("id"),
		header.Filename, header.Header.Get("Content-Type"), uploadedBy, file)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, "attachment stored", updated)
}

func (s *Server) handleRemoveAttachment(w http.ResponseWriter, r *http.Request) {
	updated, err := s.tasks.RemoveAttachment(r.Context(), r.PathValue("id"), r.PathValue("attachmentId"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "attachment removed", updated)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.tasks.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "task deleted", nil)
}
