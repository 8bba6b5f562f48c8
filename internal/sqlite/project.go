package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/opsdesk/opsdesk/internal/domain/project"
	"github.com/opsdesk/opsdesk/internal/repository"
)

// ProjectRepository implements repository.ProjectRepository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

type projectRow struct {
	ID            string         `db:"id"`
	Name          string         `db:"name"`
	Description   sql.NullString `db:"description"`
	Priority      string         `db:"priority"`
	ClientID      string         `db:"client_id"`
	SubProjectIDs string         `db:"sub_project_ids"`
	Team          string         `db:"team"`
	Status        string         `db:"status"`
	StartDate     time.Time      `db:"start_date"`
	Deadline      sql.NullTime   `db:"deadline"`
	Progress      int            `db:"progress"`
	CreatedBy     sql.NullString `db:"created_by"`
	Version       int64          `db:"version"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (row projectRow) toDomain() (*project.Project, error) {
	var subIDs, team []string
	if err := decodeJSON(row.SubProjectIDs, &subIDs); err != nil {
		return nil, err
	}
	if err := decodeJSON(row.Team, &team); err != nil {
		return nil, err
	}
	p := &project.Project{
		ID:            row.ID,
		Name:          row.Name,
		Description:   row.Description.String,
		Priority:      project.Priority(row.Priority),
		ClientID:      row.ClientID,
		SubProjectIDs: subIDs,
		Team:          team,
		Status:        project.Status(row.Status),
		StartDate:     row.StartDate,
		Progress:      row.Progress,
		CreatedBy:     row.CreatedBy.String,
		Version:       row.Version,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
	if row.Deadline.Valid {
		p.Deadline = row.Deadline.Time
	}
	return p, nil
}

// Create inserts a new project
func (r *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	subIDs, err := encodeJSON(p.SubProjectIDs)
	if err != nil {
		return err
	}
	team, err := encodeJSON(p.Team)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO projects (id, name, description, priority, client_id, sub_project_ids, team,
		                      status, start_date, deadline, progress, created_by, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Description, p.Priority, p.ClientID, subIDs, team,
		p.Status, p.StartDate, nullTime(p.Deadline), p.Progress, p.CreatedBy, p.Version, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	var row projectRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM projects WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return row.toDomain()
}

// List returns all projects ordered by creation time
func (r *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	var rows []projectRow
	err := r.db.SelectContext(ctx, &rows, `SELECT * FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return rowsToProjects(rows)
}

// ListByIDs returns the projects whose ids are in the given set. Missing ids
// are silently absent from the result.
func (r *ProjectRepository) ListByIDs(ctx context.Context, ids []string) ([]project.Project, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	var rows []projectRow
	err := r.db.SelectContext(ctx, &rows,
		fmt.Sprintf(`SELECT * FROM projects WHERE id IN (%s)`, placeholders), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects by ids: %w", err)
	}
	return rowsToProjects(rows)
}

// Update replaces a project's fields with optimistic concurrency control
func (r *ProjectRepository) Update(ctx context.Context, p *project.Project, expectedVersion int64) error {
	subIDs, err := encodeJSON(p.SubProjectIDs)
	if err != nil {
		return err
	}
	team, err := encodeJSON(p.Team)
	if err != nil {
		return err
	}

	query := `
		UPDATE projects
		SET name = ?, description = ?, priority = ?, sub_project_ids = ?, team = ?,
		    status = ?, start_date = ?, deadline = ?, progress = ?, version = ?, updated_at = ?
		WHERE id = ? AND version = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		p.Name, p.Description, p.Priority, subIDs, team,
		p.Status, p.StartDate, nullTime(p.Deadline), p.Progress, p.Version, p.UpdatedAt,
		p.ID, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM projects WHERE id = ?)`, p.ID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check project existence: %w", err)
		}
		if !exists {
			return repository.ErrNotFound
		}
		return repository.ErrConflict
	}
	return nil
}

// Delete removes a project
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CountByClient returns how many projects reference the client
func (r *ProjectRepository) CountByClient(ctx context.Context, clientID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM projects WHERE client_id = ?`, clientID)
	if err != nil {
		return 0, fmt.Errorf("failed to count projects by client: %w", err)
	}
	return count, nil
}

// CountByTeamMember returns how many projects carry the user on their team.
// The team column is a JSON array unpacked with json_each.
func (r *ProjectRepository) CountByTeamMember(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM projects WHERE EXISTS (
			SELECT 1 FROM json_each(projects.team) WHERE json_each.value = ?
		)`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count projects by team member: %w", err)
	}
	return count, nil
}

func rowsToProjects(rows []projectRow) ([]project.Project, error) {
	projects := make([]project.Project, 0, len(rows))
	for _, row := range rows {
		p, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, nil
}
