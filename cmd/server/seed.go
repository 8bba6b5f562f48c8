package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/opsdesk/opsdesk/internal/domain/org"
	"github.com/opsdesk/opsdesk/internal/repository"
	"github.com/opsdesk/opsdesk/internal/sqlite"
)

type seedRole struct {
	name        string
	description string
	permissions []org.Permission
	department  string
	isDefault   bool
}

var seedDepartments = []org.Department{
	{Name: "Engineering", Description: "Engineering department for developers and QA", IsActive: true},
	{Name: "Design", Description: "Design department for UI/UX designers", IsActive: true},
	{Name: "Product", Description: "Product management department", IsActive: true},
	{Name: "Marketing", Description: "Marketing and promotions department", IsActive: true},
	{Name: "Sales", Description: "Sales and client management department", IsActive: true},
	{Name: "Support", Description: "Customer support department", IsActive: true},
	{Name: "HR", Description: "Human resources department", IsActive: true},
	{Name: "Admin", Description: "Admin department for administrators", IsActive: true},
}

var seedRoles = []seedRole{
	{
		name:        "Developer",
		description: "Developer with access to development tasks",
		permissions: []org.Permission{org.PermCreate, org.PermRead, org.PermUpdate, org.PermDelete},
		department:  "Engineering",
	},
	{
		name:        "Designer",
		description: "Designer with access to design tasks",
		permissions: []org.Permission{org.PermCreate, org.PermRead, org.PermUpdate},
		department:  "Design",
	},
	{
		name:        "Project Manager",
		description: "Manages projects and team coordination",
		permissions: []org.Permission{org.PermRead, org.PermUpdate, org.PermApproveContent, org.PermViewReports},
		department:  "Product",
	},
	{
		name:        "QA Engineer",
		description: "Quality assurance and testing",
		permissions: []org.Permission{org.PermRead, org.PermUpdate, org.PermViewReports},
		department:  "Engineering",
	},
	{
		name:        "Marketing",
		description: "Handles marketing campaigns",
		permissions: []org.Permission{org.PermCreate, org.PermRead, org.PermUpdate, org.PermApproveContent},
		department:  "Marketing",
	},
	{
		name:        "Sales",
		description: "Manages sales and client relations",
		permissions: []org.Permission{org.PermRead, org.PermUpdate, org.PermExportData},
		department:  "Sales",
	},
	{
		name:        "Administrator",
		description: "System administrator with full access",
		permissions: append([]org.Permission(nil), org.AllPermissions...),
		department:  "Admin",
		isDefault:   true,
	},
}

// seed creates the built-in departments and roles when they are missing, and
// optionally provisions an administrator with an API token taken from
// OPSDESK_BOOTSTRAP_TOKEN. Existing rows are left untouched.
func seed(
	ctx context.Context,
	logger *slog.Logger,
	departments *sqlite.DepartmentRepository,
	roles *sqlite.RoleRepository,
	users *sqlite.UserRepository,
	tokens *sqlite.TokenRepository,
) error {
	deptIDs := make(map[string]string, len(seedDepartments))
	for _, d := range seedDepartments {
		existing, err := departments.GetByName(ctx, d.Name)
		if err == nil {
			deptIDs[d.Name] = existing.ID
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("look up department %q: %w", d.Name, err)
		}
		now := time.Now().UTC()
		d.ID = uuid.NewString()
		d.CreatedAt = now
		d.UpdatedAt = now
		if err := departments.Create(ctx, &d); err != nil {
			return fmt.Errorf("create department %q: %w", d.Name, err)
		}
		deptIDs[d.Name] = d.ID
		logger.Info("seeded department", "name", d.Name)
	}

	var adminRole *org.Role
	for _, r := range seedRoles {
		existing, err := roles.GetByName(ctx, r.name)
		if err == nil {
			if r.isDefault {
				adminRole = existing
			}
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("look up role %q: %w", r.name, err)
		}
		deptID := deptIDs[r.department]
		now := time.Now().UTC()
		role := &org.Role{
			ID:           uuid.NewString(),
			Name:         r.name,
			Description:  r.description,
			Permissions:  r.permissions,
			DepartmentID: &deptID,
			IsDefault:    r.isDefault,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := roles.Create(ctx, role); err != nil {
			return fmt.Errorf("create role %q: %w", r.name, err)
		}
		if r.isDefault {
			adminRole = role
		}
		logger.Info("seeded role", "name", r.name)
	}

	token := os.Getenv("OPSDESK_BOOTSTRAP_TOKEN")
	if token == "" {
		return nil
	}
	if adminRole == nil {
		return errors.New("bootstrap token set but no administrator role exists")
	}
	return bootstrapAdmin(ctx, logger, users, tokens, adminRole, deptIDs["Admin"], token)
}

func bootstrapAdmin(
	ctx context.Context,
	logger *slog.Logger,
	users *sqlite.UserRepository,
	tokens *sqlite.TokenRepository,
	adminRole *org.Role,
	adminDeptID string,
	token string,
) error {
	const adminEmail = "admin@opsdesk.local"

	admin, err := users.GetByEmail(ctx, adminEmail)
	if errors.Is(err, repository.ErrNotFound) {
		now := time.Now().UTC()
		admin = &org.User{
			ID:           uuid.NewString(),
			Name:         "System Admin",
			Email:        adminEmail,
			RoleID:       adminRole.ID,
			DepartmentID: adminDeptID,
			Status:       org.UserActive,
			JoinDate:     now,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := users.Create(ctx, admin); err != nil {
			return fmt.Errorf("create admin user: %w", err)
		}
		logger.Info("seeded admin user", "email", adminEmail)
	} else if err != nil {
		return fmt.Errorf("look up admin user: %w", err)
	}

	hash := hashToken(token)
	if _, err := tokens.LookupUser(ctx, hash); err == nil {
		return nil
	}
	if err := tokens.Insert(ctx, hash, admin.ID, "bootstrap token"); err != nil {
		return fmt.Errorf("store bootstrap token: %w", err)
	}
	logger.Info("registered bootstrap token", "user", admin.Email)
	return nil
}
