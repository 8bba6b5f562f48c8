package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/opsdesk/opsdesk/internal/domain/client"
	"github.com/opsdesk/opsdesk/internal/repository"
)

func testClient(id, email string) *client.Client {
	now := time.Now().UTC().Truncate(time.Second)
	return &client.Client{
		ID:      id,
		Name:    "Jane Doe",
		Email:   email,
		Company: "Acme Corp",
		SubProjects: []client.SubProject{
			{ID: "sp1", Name: "Website", Value: 5000},
		},
		Status:      client.StatusActive,
		LastContact: now,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestClientRepository_RoundTrip(t *testing.T) {
	db := NewTestDB(t)
	repo := NewClientRepository(db)
	ctx := context.Background()

	created := testClient("c1", "jane@acme.test")
	require.NoError(t, repo.Create(ctx, created))

	got, err := repo.Get(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, created.Name, got.Name)
	require.Equal(t, created.Email, got.Email)
	require.Equal(t, created.SubProjects, got.SubProjects)
	require.EqualValues(t, 1, got.Version)

	_, err = repo.Get(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestClientRepository_DuplicateEmail(t *testing.T) {
	db := NewTestDB(t)
	repo := NewClientRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testClient("c1", "jane@acme.test")))
	err := repo.Create(ctx, testClient("c2", "JANE@ACME.TEST"))
	require.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestClientRepository_UpdateVersionCheck(t *testing.T) {
	db := NewTestDB(t)
	repo := NewClientRepository(db)
	ctx := context.Background()

	c := testClient("c1", "jane@acme.test")
	require.NoError(t, repo.Create(ctx, c))

	c.Name = "Jane Q. Doe"
	c.Version = 2
	require.NoError(t, repo.Update(ctx, c, 1))

	// A writer still holding version 1 must get a conflict.
	stale := *c
	stale.Version = 2
	require.ErrorIs(t, repo.Update(ctx, &stale, 1), repository.ErrConflict)

	missing := testClient("ghost", "ghost@acme.test")
	require.ErrorIs(t, repo.Update(ctx, missing, 1), repository.ErrNotFound)
}

func TestClientRepository_TouchLastContact(t *testing.T) {
	db := NewTestDB(t)
	repo := NewClientRepository(db)
	ctx := context.Background()

	c := testClient("c1", "jane@acme.test")
	require.NoError(t, repo.Create(ctx, c))

	at := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
	require.NoError(t, repo.TouchLastContact(ctx, "c1", at))

	got, err := repo.Get(ctx, "c1")
	require.NoError(t, err)
	require.True(t, got.LastContact.Equal(at))
	require.EqualValues(t, 1, got.Version)

	require.ErrorIs(t, repo.TouchLastContact(ctx, "missing", at), repository.ErrNotFound)
}
