package org

import "time"

// UserStatus is the employment state of a user.
type UserStatus string

const (
	UserActive   UserStatus = "Active"
	UserInactive UserStatus = "Inactive"
	UserOnLeave  UserStatus = "On Leave"
)

// ValidUserStatus reports whether s is a known user status.
func ValidUserStatus(s UserStatus) bool {
	switch s {
	case UserActive, UserInactive, UserOnLeave:
		return true
	default:
		return false
	}
}

// User represents a staff member. Credential material lives outside this
// core; users authenticate through pre-provisioned API tokens.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	RoleID       string     `json:"role_id"`
	DepartmentID string     `json:"department_id"`
	Status       UserStatus `json:"status"`
	JoinDate     time.Time  `json:"join_date"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Permission is one entry of the closed permission vocabulary.
type Permission string

const (
	PermCreate            Permission = "create"
	PermRead              Permission = "read"
	PermUpdate            Permission = "update"
	PermDelete            Permission = "delete"
	PermManageUsers       Permission = "manage_users"
	PermManageRoles       Permission = "manage_roles"
	PermManageDepartments Permission = "manage_departments"
	PermApproveContent    Permission = "approve_content"
	PermViewReports       Permission = "view_reports"
	PermExportData        Permission = "export_data"
)

// AllPermissions lists the closed permission vocabulary.
var AllPermissions = []Permission{
	PermCreate, PermRead, PermUpdate, PermDelete,
	PermManageUsers, PermManageRoles, PermManageDepartments,
	PermApproveContent, PermViewReports, PermExportData,
}

// ValidPermission reports whether p is in the vocabulary.
func ValidPermission(p Permission) bool {
	for _, known := range AllPermissions {
		if p == known {
			return true
		}
	}
	return false
}

// Role names a permission set. Default roles are system-protected: they can
// be neither edited nor deleted.
type Role struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	Permissions  []Permission `json:"permissions"`
	DepartmentID *string      `json:"department_id,omitempty"`
	IsDefault    bool         `json:"is_default"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Has reports whether the role grants the permission.
func (r *Role) Has(p Permission) bool {
	for _, granted := range r.Permissions {
		if granted == p {
			return true
		}
	}
	return false
}

// Department groups users under an optional manager.
type Department struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ManagerID   *string   `json:"manager_id,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
