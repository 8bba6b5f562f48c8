package task

import (
	"context"
	"io"

	"github.com/opsdesk/opsdesk/internal/domain/project"
)

// Repository provides persistence for tasks.
type Repository interface {
	Create(ctx context.Context, t *Task) error
	Get(ctx context.Context, id string) (*Task, error)
	List(ctx context.Context, opts ListOptions) ([]Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id string) error
}

// ProjectDirectory resolves the parent project for validation.
type ProjectDirectory interface {
	Get(ctx context.Context, id string) (*project.Project, error)
}

// FileStore persists attachment bytes outside the entity store.
type FileStore interface {
	Save(ctx context.Context, key string, r io.Reader) (path string, size int64, err error)
	Delete(ctx context.Context, path string) error
}
