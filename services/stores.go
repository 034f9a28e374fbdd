package services

import (
	"context"

	"taskboard/models"
)

// UserStore persists identities. CreateUser returns a Conflict error when the
// email is already registered, atomically with the insert.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
	UserByID(ctx context.Context, id int64) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error
}

// ProjectStore persists projects. Reads embed the project's tasks and
// DeleteProject removes the project's tasks with it.
type ProjectStore interface {
	CreateProject(ctx context.Context, project models.Project) (models.Project, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	ProjectByID(ctx context.Context, id int64) (models.Project, error)
	DeleteProject(ctx context.Context, id int64) error
}

// TaskStore persists tasks. New tasks are always stored as TODO; returned
// tasks carry the assignee summary when one is set.
type TaskStore interface {
	CreateTask(ctx context.Context, task models.NewTask) (models.Task, error)
	ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	TaskByID(ctx context.Context, id int64) (models.Task, error)
	UpdateTask(ctx context.Context, id int64, update models.TaskUpdate) (models.Task, error)
}

// Store is the full persistence surface used by the server.
type Store interface {
	UserStore
	ProjectStore
	TaskStore
}

// ActivityRecorder keeps a per-project history of mutations.
type ActivityRecorder interface {
	Record(ctx context.Context, entry models.ActivityEntry) error
	List(ctx context.Context, projectID int64, limit int) ([]models.ActivityEntry, error)
	DeleteProject(ctx context.Context, projectID int64) error
}

// NopRecorder is used when no history backend is configured.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, models.ActivityEntry) error { return nil }

func (NopRecorder) List(context.Context, int64, int) ([]models.ActivityEntry, error) {
	return []models.ActivityEntry{}, nil
}

func (NopRecorder) DeleteProject(context.Context, int64) error { return nil }

// PasswordHasher is satisfied by auth.PasswordHasher.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}

// TokenIssuer is satisfied by auth.TokenIssuer.
type TokenIssuer interface {
	Issue(user models.User) (string, error)
}
