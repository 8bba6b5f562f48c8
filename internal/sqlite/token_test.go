package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/opsdesk/opsdesk/internal/domain/org"
	"github.com/opsdesk/opsdesk/internal/repository"
)

func seedUser(t *testing.T, db *DB, id string) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	dept := &org.Department{ID: "d-" + id, Name: "Dept " + id, IsActive: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, NewDepartmentRepository(db).Create(ctx, dept))

	role := &org.Role{
		ID: "r-" + id, Name: "Role " + id,
		Permissions: []org.Permission{org.PermRead},
		CreatedAt:   now, UpdatedAt: now,
	}
	require.NoError(t, NewRoleRepository(db).Create(ctx, role))

	user := &org.User{
		ID: id, Name: "User " + id, Email: id + "@example.test",
		RoleID: role.ID, DepartmentID: dept.ID,
		Status: org.UserActive, JoinDate: now,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, NewUserRepository(db).Create(ctx, user))
}

func TestTokenRepository(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTokenRepository(db)
	ctx := context.Background()
	seedUser(t, db, "u1")

	require.NoError(t, repo.Insert(ctx, "hash1", "u1", "ci token"))

	userID, err := repo.LookupUser(ctx, "hash1")
	require.NoError(t, err)
	require.Equal(t, "u1", userID)

	_, err = repo.LookupUser(ctx, "unknown")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.ErrorIs(t, repo.Insert(ctx, "hash1", "u1", "again"), repository.ErrDuplicate)
	require.ErrorIs(t, repo.Insert(ctx, "hash2", "ghost", ""), repository.ErrForeignKeyViolation)

	require.NoError(t, repo.TouchLastUsed(ctx, "hash1", time.Now().UTC()))
}
