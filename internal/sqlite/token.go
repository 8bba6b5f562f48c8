package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/opsdesk/opsdesk/internal/repository"
)

// TokenRepository implements repository.TokenRepository for SQLite. Only the
// SHA-256 hash of a token ever touches the database.
type TokenRepository struct {
	db *DB
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Insert stores a token hash for a user
func (r *TokenRepository) Insert(ctx context.Context, tokenHash, userID, description string) error {
	query := `INSERT INTO api_tokens (token_hash, user_id, description) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, tokenHash, userID, description); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to insert token: %w", err)
	}
	return nil
}

// LookupUser resolves a token hash to its owning user id
func (r *TokenRepository) LookupUser(ctx context.Context, tokenHash string) (string, error) {
	var userID string
	err := r.db.GetContext(ctx, &userID,
		`SELECT user_id FROM api_tokens WHERE token_hash = ?`, tokenHash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up token: %w", err)
	}
	return userID, nil
}

// TouchLastUsed stamps the token's last-used timestamp
func (r *TokenRepository) TouchLastUsed(ctx context.Context, tokenHash string, at time.Time) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE api_tokens SET last_used = ? WHERE token_hash = ?`, at, tokenHash); err != nil {
		return fmt.Errorf("failed to touch token: %w", err)
	}
	return nil
}
