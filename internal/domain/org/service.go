package org

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/opsdesk/opsdesk/internal/domain/validate"
	"github.com/opsdesk/opsdesk/internal/repository"
)

// Service handles user, role and department administration.
type Service struct {
	users       UserRepository
	roles       RoleRepository
	departments DepartmentRepository
	teams       TeamCounter
	assignees   AssigneeCounter
	logger      *slog.Logger
}

// NewService creates a new org service.
func NewService(
	users UserRepository,
	roles RoleRepository,
	departments DepartmentRepository,
	teams TeamCounter,
	assignees AssigneeCounter,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:       users,
		roles:       roles,
		departments: departments,
		teams:       teams,
		assignees:   assignees,
		logger:      logger,
	}
}

// CreateUserRequest defines user creation inputs.
type CreateUserRequest struct {
	Name         string
	Email        string
	Phone        string
	RoleID       string
	DepartmentID string
	Status       UserStatus
	JoinDate     *time.Time
}

// CreateUser validates and persists a new user. The role and department
// references must resolve to existing entities.
func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	status := req.Status
	if status == "" {
		status = UserActive
	}
	if err := validateUserFields(req.Name, req.Email, req.Phone, req.RoleID, req.DepartmentID, status); err != nil {
		return nil, err
	}
	if err := s.checkRoleAndDepartment(ctx, req.RoleID, req.DepartmentID); err != nil {
		return nil, err
	}

	now := time.Now()
	joinDate := now
	if req.JoinDate != nil {
		joinDate = *req.JoinDate
	}

	u := &User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        req.Phone,
		RoleID:       req.RoleID,
		DepartmentID: req.DepartmentID,
		Status:       status,
		JoinDate:     joinDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return u, nil
}

// GetUser fetches a user by ID.
func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	u, err := s.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// ListUsers returns all users.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.users.List(ctx)
}

// UpdateUser replaces a user's fields.
func (s *Service) UpdateUser(ctx context.Context, id string, req CreateUserRequest) (*User, error) {
	cur, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = cur.Status
	}
	if err := validateUserFields(req.Name, req.Email, req.Phone, req.RoleID, req.DepartmentID, status); err != nil {
		return nil, err
	}
	if err := s.checkRoleAndDepartment(ctx, req.RoleID, req.DepartmentID); err != nil {
		return nil, err
	}

	updated := *cur
	updated.Name = req.Name
	updated.Email = strings.ToLower(strings.TrimSpace(req.Email))
	updated.Phone = req.Phone
	updated.RoleID = req.RoleID
	updated.DepartmentID = req.DepartmentID
	updated.Status = status
	if req.JoinDate != nil {
		updated.JoinDate = *req.JoinDate
	}
	updated.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("updating user: %w", err)
	}
	return &updated, nil
}

// DeleteUser removes a user. Deletion is blocked while the user sits on any
// project team or task assignee list.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}

	teamCount, err := s.teams.CountByTeamMember(ctx, id)
	if err != nil {
		return fmt.Errorf("counting team memberships: %w", err)
	}
	assigneeCount, err := s.assignees.CountByAssignee(ctx, id)
	if err != nil {
		return fmt.Errorf("counting task assignments: %w", err)
	}
	if teamCount > 0 || assigneeCount > 0 {
		return ErrUserInUse
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}

// ActiveMembers resolves ids to users and returns every id that does not
// belong to an Active user, in one pass. An empty offender list means all ids
// are valid team-member candidates.
func (s *Service) ActiveMembers(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	users, err := s.users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolving users: %w", err)
	}

	statusByID := make(map[string]UserStatus, len(users))
	for _, u := range users {
		statusByID[u.ID] = u.Status
	}

	var offenders []string
	for _, id := range ids {
		if statusByID[id] != UserActive {
			offenders = append(offenders, id)
		}
	}
	return offenders, nil
}

// CreateRoleRequest defines role creation and update inputs.
type CreateRoleRequest struct {
	Name         string
	Description  string
	Permissions  []Permission
	DepartmentID *string
}

// CreateRole validates and persists a new role. Role names are unique
// case-insensitively.
func (s *Service) CreateRole(ctx context.Context, req CreateRoleRequest) (*Role, error) {
	if err := validateRoleFields(req.Name, req.Permissions); err != nil {
		return nil, err
	}

	if existing, err := s.roles.GetByName(ctx, req.Name); err == nil && existing != nil {
		return nil, ErrRoleExists
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking role name: %w", err)
	}

	if req.DepartmentID != nil {
		if _, err := s.GetDepartment(ctx, *req.DepartmentID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	r := &Role{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		Permissions:  req.Permissions,
		DepartmentID: req.DepartmentID,
		IsDefault:    false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.roles.Create(ctx, r); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrRoleExists
		}
		return nil, fmt.Errorf("creating role: %w", err)
	}
	return r, nil
}

// GetRole fetches a role by ID.
func (s *Service) GetRole(ctx context.Context, id string) (*Role, error) {
	r, err := s.roles.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("getting role: %w", err)
	}
	return r, nil
}

// ListRoles returns all roles.
func (s *Service) ListRoles(ctx context.Context) ([]Role, error) {
	return s.roles.List(ctx)
}

// UpdateRole replaces a role's fields. System-protected roles are immutable.
func (s *Service) UpdateRole(ctx context.Context, id string, req CreateRoleRequest) (*Role, error) {
	cur, err := s.GetRole(ctx, id)
	if err != nil {
		return nil, err
	}
	if cur.IsDefault {
		return nil, ErrDefaultRole
	}
	if err := validateRoleFields(req.Name, req.Permissions); err != nil {
		return nil, err
	}
	if req.DepartmentID != nil {
		if _, err := s.GetDepartment(ctx, *req.DepartmentID); err != nil {
			return nil, err
		}
	}

	updated := *cur
	updated.Name = strings.TrimSpace(req.Name)
	updated.Description = strings.TrimSpace(req.Description)
	updated.Permissions = req.Permissions
	updated.DepartmentID = req.DepartmentID
	updated.UpdatedAt = time.Now()

	if err := s.roles.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrRoleExists
		}
		return nil, fmt.Errorf("updating role: %w", err)
	}
	return &updated, nil
}

// DeleteRole removes a role. System-protected roles and roles still
// referenced by users cannot be deleted.
func (s *Service) DeleteRole(ctx context.Context, id string) error {
	cur, err := s.GetRole(ctx, id)
	if err != nil {
		return err
	}
	if cur.IsDefault {
		return ErrDefaultRole
	}

	count, err := s.users.CountByRole(ctx, id)
	if err != nil {
		return fmt.Errorf("counting role users: %w", err)
	}
	if count > 0 {
		return ErrRoleInUse
	}

	if err := s.roles.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting role: %w", err)
	}
	return nil
}

// CreateDepartmentRequest defines department creation and update inputs.
type CreateDepartmentRequest struct {
	Name        string
	Description string
	ManagerID   *string
	IsActive    *bool
}

// CreateDepartment validates and persists a new department.
func (s *Service) CreateDepartment(ctx context.Context, req CreateDepartmentRequest) (*Department, error) {
	v := &validate.Error{}
	if strings.TrimSpace(req.Name) == "" {
		v.Add("name", "name is required")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if existing, err := s.departments.GetByName(ctx, req.Name); err == nil && existing != nil {
		return nil, ErrDepartmentExists
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking department name: %w", err)
	}

	if req.ManagerID != nil {
		if _, err := s.GetUser(ctx, *req.ManagerID); err != nil {
			return nil, err
		}
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := time.Now()
	d := &Department{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		ManagerID:   req.ManagerID,
		IsActive:    isActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.departments.Create(ctx, d); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDepartmentExists
		}
		return nil, fmt.Errorf("creating department: %w", err)
	}
	return d, nil
}

// GetDepartment fetches a department by ID.
func (s *Service) GetDepartment(ctx context.Context, id string) (*Department, error) {
	d, err := s.departments.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("getting department: %w", err)
	}
	return d, nil
}

// ListDepartments returns all departments.
func (s *Service) ListDepartments(ctx context.Context) ([]Department, error) {
	return s.departments.List(ctx)
}

// UpdateDepartment replaces a department's fields.
func (s *Service) UpdateDepartment(ctx context.Context, id string, req CreateDepartmentRequest) (*Department, error) {
	cur, err := s.GetDepartment(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		v := &validate.Error{}
		v.Add("name", "name is required")
		return nil, v.Err()
	}
	if req.ManagerID != nil {
		if _, err := s.GetUser(ctx, *req.ManagerID); err != nil {
			return nil, err
		}
	}

	updated := *cur
	updated.Name = strings.TrimSpace(req.Name)
	updated.Description = strings.TrimSpace(req.Description)
	updated.ManagerID = req.ManagerID
	if req.IsActive != nil {
		updated.IsActive = *req.IsActive
	}
	updated.UpdatedAt = time.Now()

	if err := s.departments.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDepartmentExists
		}
		return nil, fmt.Errorf("updating department: %w", err)
	}
	return &updated, nil
}

// DeleteDepartment removes a department unless users or roles reference it.
func (s *Service) DeleteDepartment(ctx context.Context, id string) error {
	if _, err := s.GetDepartment(ctx, id); err != nil {
		return err
	}

	userCount, err := s.users.CountByDepartment(ctx, id)
	if err != nil {
		return fmt.Errorf("counting department users: %w", err)
	}
	roleCount, err := s.roles.CountByDepartment(ctx, id)
	if err != nil {
		return fmt.Errorf("counting department roles: %w", err)
	}
	if userCount > 0 || roleCount > 0 {
		return ErrDepartmentInUse
	}

	if err := s.departments.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting department: %w", err)
	}
	return nil
}

func validateUserFields(name, email, phone, roleID, departmentID string, status UserStatus) error {
	v := &validate.Error{}
	if strings.TrimSpace(name) == "" {
		v.Add("name", "name is required")
	}
	if strings.TrimSpace(email) == "" {
		v.Add("email", "email is required")
	} else if !validate.ValidEmail(email) {
		v.Add("email", "not a valid email address")
	}
	if strings.TrimSpace(phone) == "" {
		v.Add("phone", "phone is required")
	}
	if strings.TrimSpace(roleID) == "" {
		v.Add("role", "role is required")
	}
	if strings.TrimSpace(departmentID) == "" {
		v.Add("department", "department is required")
	}
	if !ValidUserStatus(status) {
		v.Add("status", "status must be Active, Inactive or On Leave")
	}
	return v.Err()
}

func validateRoleFields(name string, permissions []Permission) error {
	v := &validate.Error{}
	if strings.TrimSpace(name) == "" {
		v.Add("name", "name is required")
	}
	for _, p := range permissions {
		if !ValidPermission(p) {
			v.Add("permissions", fmt.Sprintf("unknown permission %q", p))
		}
	}
	return v.Err()
}

func (s *Service) checkRoleAndDepartment(ctx context.Context, roleID, departmentID string) error {
	if _, err := s.GetRole(ctx, roleID); err != nil {
		if errors.Is(err, ErrRoleNotFound) {
			return &validate.ReferenceError{Entity: "role", Reason: "not found", IDs: []string{roleID}}
		}
		return err
	}
	if _, err := s.GetDepartment(ctx, departmentID); err != nil {
		if errors.Is(err, ErrDepartmentNotFound) {
			return &validate.ReferenceError{Entity: "department", Reason: "not found", IDs: []string{departmentID}}
		}
		return err
	}
	return nil
}
