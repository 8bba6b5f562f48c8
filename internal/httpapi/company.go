package httpapi

import "net/http"

type companyPayload struct {
	Name string `json:"name"`
}

func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	c, err := s.company.Get(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "company fetched", c)
}

func (s *Server) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	var payload companyPayload
	if !decodeBody(w, r, &payload) {
		return
	}
	created, err := s.company.Create(r.Context(), payload.Name)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, "company created", created)
}

func (s *Server) handleUpdateCompany(w http.ResponseWriter, r *http.Request) {
	var payload companyPayload
	if !decodeBody(w, r, &payload) {
		return
	}
	updated, err := s.company.UpdateName(r.Context(), payload.Name)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "company updated", updated)
}
