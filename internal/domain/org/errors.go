package org

import "errors"

var (
	// ErrUserNotFound indicates the user doesn't exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrRoleNotFound indicates the role doesn't exist.
	ErrRoleNotFound = errors.New("role not found")
	// ErrDepartmentNotFound indicates the department doesn't exist.
	ErrDepartmentNotFound = errors.New("department not found")
	// ErrEmailTaken indicates another user already uses the email.
	ErrEmailTaken = errors.New("user with this email already exists")
	// ErrRoleExists indicates a role with the same name already exists.
	ErrRoleExists = errors.New("role with this name already exists")
	// ErrDepartmentExists indicates a department with the same name already exists.
	ErrDepartmentExists = errors.New("department with this name already exists")
	// ErrDefaultRole indicates the role is system-protected.
	ErrDefaultRole = errors.New("system roles cannot be modified or deleted")
	// ErrUserInUse indicates the user is still on a project team or task assignee list.
	ErrUserInUse = errors.New("user is referenced by project teams or task assignees")
	// ErrRoleInUse indicates users still reference the role.
	ErrRoleInUse = errors.New("role is referenced by users")
	// ErrDepartmentInUse indicates users or roles still reference the department.
	ErrDepartmentInUse = errors.New("department is referenced by users or roles")
)
