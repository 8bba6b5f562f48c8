package org

import "context"

// UserRepository provides persistence for users.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	Get(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	ListByIDs(ctx context.Context, ids []string) ([]User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
	CountByRole(ctx context.Context, roleID string) (int, error)
	CountByDepartment(ctx context.Context, departmentID string) (int, error)
}

// RoleRepository provides persistence for roles.
type RoleRepository interface {
	Create(ctx context.Context, r *Role) error
	Get(ctx context.Context, id string) (*Role, error)
	GetByName(ctx context.Context, name string) (*Role, error)
	List(ctx context.Context) ([]Role, error)
	Update(ctx context.Context, r *Role) error
	Delete(ctx context.Context, id string) error
	CountByDepartment(ctx context.Context, departmentID string) (int, error)
}

// DepartmentRepository provides persistence for departments.
type DepartmentRepository interface {
	Create(ctx context.Context, d *Department) error
	Get(ctx context.Context, id string) (*Department, error)
	GetByName(ctx context.Context, name string) (*Department, error)
	List(ctx context.Context) ([]Department, error)
	Update(ctx context.Context, d *Department) error
	Delete(ctx context.Context, id string) error
}

// TeamCounter reports how many projects carry a user on their team.
type TeamCounter interface {
	CountByTeamMember(ctx context.Context, userID string) (int, error)
}

// AssigneeCounter reports how many tasks carry a user as assignee.
type AssigneeCounter interface {
	CountByAssignee(ctx context.Context, userID string) (int, error)
}
