package httpapi

import (
	"net/http"

	"github.com/opsdesk/opsdesk/internal/domain/contact"
)

type contactPayload struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Company  string   `json:"company"`
	Position string   `json:"position"`
	Status   string   `json:"status"`
	Tags     []string `json:"tags"`
	Starred  bool     `json:"starred"`
}

func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	var payload contactPayload
	if !decodeBody(w, r, &payload) {
		return
	}

	created, err := s.contacts.Create(r.Context(), contact.CreateRequest{
		Name:     payload.Name,
		Email:    payload.Email,
		Phone:    payload.Phone,
		Company:  payload.Company,
		Position: payload.Position,
		Status:   contact.Status(payload.Status),
		Tags:     payload.Tags,
		Starred:  payload.Starred,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, "contact created", created)
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.contacts.List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "contacts fetched", contacts)
}

func (s *Server) handleGetContact(w http.ResponseWriter, r *http.Request) {
	c, err := s.contacts.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "contact fetched", c)
}

func (s *Server) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	var payload contactPayload
	if !decodeBody(w, r, &payload) {
		return
	}

	updated, err := s.contacts.Update(r.Context(), r.PathValue("id"), contact.UpdateRequest{
		Name:     payload.Name,
		Email:    payload.Email,
		Phone:    payload.Phone,
		Company:  payload.Company,
		Position: payload.Position,
		Status:   contact.Status(payload.Status),
		Tags:     payload.Tags,
		Starred:  payload.Starred,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "contact updated", updated)
}

func (s *Server) handleStarContact(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Starred bool `json:"starred"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}

	updated, err := s.contacts.SetStarred(r.Context(), r.PathValue("id"), payload.Starred)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "contact star updated", updated)
}

func (s *Server) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	if err := s.contacts.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "contact deleted", nil)
}
