package httpapi

import (
	"net/http"
	"time"

	"github.com/opsdesk/opsdesk/internal/domain/project"
)

// The API accepts and emits "on hold" while "hold" is the stored value.
func statusFromAPI(s string) project.Status {
	if s == "on hold" {
		return project.StatusHold
	}
	return project.Status(s)
}

func statusToAPI(s project.Status) string {
	if s == project.StatusHold {
		return "on hold"
	}
	return string(s)
}

type projectPayload struct {
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Priority       string     `json:"priority"`
	ClientID       string     `json:"clientId"`
	ClientProjects []string   `json:"clientProjects"`
	Team           []string   `json:"team"`
	Status         string     `json:"status"`
	StartDate      *time.Time `json:"startDate"`
	Deadline       time.Time  `json:"deadline"`
	Progress       int        `json:"progress"`
	Version        int64      `json:"version"`
}

type projectView struct {
	project.Project
	Status string `json:"status"`
}

func viewProject(p *project.Project) projectView {
	return projectView{Project: *p, Status: statusToAPI(p.Status)}
}

func viewProjects(list []project.Project) []projectView {
	views := make([]projectView, len(list))
	for i := range list {
		views[i] = viewProject(&list[i])
	}
	return views
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var payload projectPayload
	if !decodeBody(w, r, &payload) {
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	createdBy := ""
	if principal != nil {
		createdBy = principal.UserID
	}

	created, err := s.projects.Create(r.Context(), project.CreateRequest{
		Name:          payload.Name,
		Description:   payload.Description,
		Priority:      project.Priority(payload.Priority),
		ClientID:      payload.ClientID,
		SubProjectIDs: payload.ClientProjects,
		Team:          payload.Team,
		Status:        statusFromAPI(payload.Status),
		StartDate:     payload.StartDate,
		Deadline:      payload.Deadline,
		Progress:      payload.Progress,
		CreatedBy:     createdBy,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, "project created", viewProject(created))
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.projects.List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "projects fetched", viewProjects(projects))
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.projects.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "project fetched", viewProject(p))
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var payload projectPayload
	if !decodeBody(w, r, &payload) {
		return
	}

	updated, err := s.projects.Update(r.Context(), r.PathValue("id"), project.UpdateRequest{
		Name:          payload.Name,
		Description:   payload.Description,
		Priority:      project.Priority(payload.Priority),
		ClientID:      payload.ClientID,
		SubProjectIDs: payload.ClientProjects,
		Team:          payload.Team,
		Status:        statusFromAPI(payload.Status),
		StartDate:     payload.StartDate,
		Deadline:      payload.Deadline,
		Progress:      payload.Progress,
		Version:       payload.Version,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "project updated", viewProject(updated))
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.projects.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "project deleted", nil)
}
