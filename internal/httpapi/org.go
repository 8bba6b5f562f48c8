package httpapi

import (
	"net/http"
	"time"

	"github.com/opsdesk/opsdesk/internal/domain/org"
)

type userPayload struct {
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	RoleID       string     `json:"roleId"`
	DepartmentID string     `json:"departmentId"`
	Status       string     `json:"status"`
	JoinDate     *time.Time `json:"joinDate"`
}

func (p userPayload) toRequest() org.CreateUserRequest {
	return org.CreateUserRequest{
		Name:         p.Name,
		Email:        p.Email,
		Phone:        p.Phone,
		RoleID:       p.RoleID,
		DepartmentID: p.DepartmentID,
		Status:       org.UserStatus(p.Status),
		JoinDate:     p.JoinDate,
	}
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var payload userPayload
	if !decodeBody(w, r, &payload) {
		return
	}
	created, err := s.org.CreateUser(r.Context(), payload.toRequest())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, "user created", created)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.org.ListUsers(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "users fetched", users)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.org.GetUser(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "user fetched", u)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var payload userPayload
	if !decodeBody(w, r, &payload) {
		return
	}
	updated, err := s.org.UpdateUser(r.Context(), r.PathValue("id"), payload.toRequest())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "user updated", updated)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.org.DeleteUser(r.Context(), r.PathValue("id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "user deleted", nil)
}

type rolePayload struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Permissions  []string `json:"permissions"`
	DepartmentID *string  `json:"departmentId"`
}

func (p rolePayload) toRequest() org.CreateRoleRequest {
	perms := make([]org.Permission, len(p.Permissions))
	for i, perm := range p.Permissions {
		perms[i] = org.Permission(perm)
	}
	return org.CreateRoleRequest{
		Name:         p.Name,
		Description:  p.Description,
		Permissions:  perms,
		DepartmentID: p.DepartmentID,
	}
}

func (s *Server) handleCreateRole(w http.ResponseWriter, r *http.Request) {
	var payload rolePayload
	if !decodeBody(w, r, &payload) {
		return
	}
	created, err := s.org.CreateRole(r.Context(), payload.toRequest())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, "role created", created)
}

func (s *Server) handleListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := s.org.ListRoles(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "roles fetched", roles)
}

func (s *Server) handleGetRole(w http.ResponseWriter, r *http.Request) {
	role, err := s.org.GetRole(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "role fetched", role)
}

func (s *Server) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	var payload rolePayload
	if !decodeBody(w, r, &payload) {
		return
	}
	updated, err := s.org.UpdateRole(r.Context(), r.PathValue("id"), payload.toRequest())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "role updated", updated)
}

func (s *Server) handleDeleteRole(w http.ResponseWriter, r *http.Request) {
	if err := s.org.DeleteRole(r.Context(), r.PathValue("id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "role deleted", nil)
}

type departmentPayload struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ManagerID   *string `json:"managerId"`
	IsActive    *bool   `json:"isActive"`
}

func (p departmentPayload) toRequest() org.CreateDepartmentRequest {
	return org.CreateDepartmentRequest{
		Name:        p.Name,
		Description: p.Description,
		ManagerID:   p.ManagerID,
		IsActive:    p.IsActive,
	}
}

func (s *Server) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	var payload departmentPayload
	if !decodeBody(w, r, &payload) {
		return
	}
	created, err := s.org.CreateDepartment(r.Context(), payload.toRequest())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, "department created", created)
}

func (s *Server) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := s.org.ListDepartments(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "departments fetched", departments)
}

func (s *Server) handleGetDepartment(w http.ResponseWriter, r *http.Request) {
	d, err := s.org.GetDepartment(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "department fetched", d)
}

func (s *Server) handleUpdateDepartment(w http.ResponseWriter, r *http.Request) {
	var payload departmentPayload
	if !decodeBody(w, r, &payload) {
		return
	}
	updated, err := s.org.UpdateDepartment(r.Context(), r.PathValue("id"), payload.toRequest())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "department updated", updated)
}

func (s *Server) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	if err := s.org.DeleteDepartment(r.Context(), r.PathValue("id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "department deleted", nil)
}
