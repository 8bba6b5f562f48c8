package httpapi

import (
	"net/http"
	"time"

	"github.com/opsdesk/opsdesk/internal/domain/client"
)

type subProjectPayload struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type clientPayload struct {
	Name        string              `json:"name"`
	Email       string              `json:"email"`
	Company     string              `json:"company"`
	SubProjects []subProjectPayload `json:"projects"`
	Status      string              `json:"status"`
	LastContact *time.Time          `json:"lastContact"`
	Version     int64               `json:"version"`
}

func (p clientPayload) subProjectInputs() []client.SubProjectInput {
	subs := make([]client.SubProjectInput, len(p.SubProjects))
	for i, sp := range p.SubProjects {
		subs[i] = client.SubProjectInput{ID: sp.ID, Name: sp.Name, Value: sp.Value}
	}
	return subs
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var payload clientPayload
	if !decodeBody(w, r, &payload) {
		return
	}

	created, err := s.clients.Create(r.Context(), client.CreateRequest{
		Name:        payload.Name,
		Email:       payload.Email,
		Company:     payload.Company,
		SubProjects: payload.subProjectInputs(),
		Status:      client.Status(payload.Status),
		LastContact: payload.LastContact,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, "client created", created)
}

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := s.clients.List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "clients fetched", clients)
}

func (s *Server) handleGetClient(w http.ResponseWriter, r *http.Request) {
	c, err := s.clients.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "client fetched", c)
}

func (s *Server) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	var payload clientPayload
	if !decodeBody(w, r, &payload) {
		return
	}

	updated, err := s.clients.Update(r.Context(), r.PathValue("id"), client.UpdateRequest{
		Name:        payload.Name,
		Email:       payload.Email,
		Company:     payload.Company,
		SubProjects: payload.subProjectInputs(),
		Status:      client.Status(payload.Status),
		LastContact: payload.LastContact,
		Version:     payload.Version,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "client updated", updated)
}

func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	if err := s.clients.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "client deleted", nil)
}
