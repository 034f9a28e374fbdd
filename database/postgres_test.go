package database

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"taskboard/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

func newMockStore(t *testing.T) (*Postgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPostgres(db), mock
}

var taskRowColumns = []string{
	"id", "title", "description", "status", "priority", "due_date",
	"project_id", "user_id", "created_at", "updated_at",
	"id", "name", "email",
}

func TestPostgres_CreateUserConflict(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("a@example.com", "hash", "A", models.RoleUser).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	_, err := store.CreateUser(context.Background(), models.User{Email: "a@example.com", PasswordHash: "hash", Name: "A", Role: models.RoleUser})
	if !errors.Is(err, models.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgres_UserByEmailNotFound(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE LOWER(email) = LOWER($1)")).
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "name", "role", "created_at"}))

	_, err := store.UserByEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPostgres_ListTasksBuildsFilter(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	projectID := int64(7)
	status := models.StatusInProgress

	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.project_id = $1 AND t.status = $2 ORDER BY t.id")).
		WithArgs(projectID, status).
		WillReturnRows(sqlmock.NewRows(taskRowColumns).
			AddRow(1, "Design", nil, "IN_PROGRESS", "HIGH", nil, projectID, 3, now, now, 3, "Bob", "bob@example.com"))

	tasks, err := store.ListTasks(context.Background(), models.TaskFilter{ProjectID: &projectID, Status: &status})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	task := tasks[0]
	if task.Status != models.StatusInProgress || task.Priority != models.PriorityHigh {
		t.Fatalf("unexpected task: %+v", task)
	}
	if task.AssignedTo == nil || task.AssignedTo.Name != "Bob" {
		t.Fatalf("expected assignee Bob, got %+v", task.AssignedTo)
	}
	if task.Description != nil || task.DueDate != nil {
		t.Fatalf("expected null description and due date, got %+v", task)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgres_ListTasksWithoutFilter(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(`LEFT JOIN users u ON u.id = t.user_id ORDER BY t.id`).
		WillReturnRows(sqlmock.NewRows(taskRowColumns))

	tasks, err := store.ListTasks(context.Background(), models.TaskFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty list, got %d", len(tasks))
	}
}

func TestPostgres_CreateTaskForcesTodo(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tasks")).
		WithArgs("Design", sqlmock.AnyArg(), "TODO", "MEDIUM", sqlmock.AnyArg(), int64(1), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.id = $1")).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows(taskRowColumns).
			AddRow(10, "Design", nil, "TODO", "MEDIUM", nil, 1, nil, now, now, nil, nil, nil))

	task, err := store.CreateTask(context.Background(), models.NewTask{Title: "Design", Priority: models.PriorityMedium, ProjectID: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != 10 || task.Status != models.StatusTodo || task.AssignedTo != nil {
		t.Fatalf("unexpected task: %+v", task)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgres_CreateTaskMissingProject(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tasks")).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "tasks_project_id_fkey"})

	_, err := store.CreateTask(context.Background(), models.NewTask{Title: "Design", Priority: models.PriorityMedium, ProjectID: 99})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPostgres_UpdateTaskNotFound(t *testing.T) {
	store, mock := newMockStore(t)
	status := models.StatusPaused
	mock.ExpectExec(regexp.QuoteMeta("UPDATE tasks SET status = $1, updated_at = NOW() WHERE id = $2")).
		WithArgs(status, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := store.UpdateTask(context.Background(), 5, models.TaskUpdate{Status: &status})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgres_UpdateTaskClearsDueDate(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE tasks SET due_date = NULL, updated_at = NOW() WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(taskRowColumns).
			AddRow(5, "Design", "desc", "TODO", "LOW", nil, 1, nil, now, now, nil, nil, nil))

	task, err := store.UpdateTask(context.Background(), 5, models.TaskUpdate{ClearDueDate: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.DueDate != nil || task.Description == nil || *task.Description != "desc" {
		t.Fatalf("unexpected task: %+v", task)
	}
}

func TestPostgres_DeleteProjectRunsInTransaction(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks WHERE project_id = $1")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM projects WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := store.DeleteProject(context.Background(), 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgres_DeleteProjectNotFoundRollsBack(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks WHERE project_id = $1")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM projects WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	if err := store.DeleteProject(context.Background(), 3); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgres_ListProjectsEmbedsTasks(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("FROM projects ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "owner_id", "created_at", "updated_at"}).
			AddRow(1, "Roadmap", nil, 1, now, now).
			AddRow(2, "Empty", "nothing yet", 1, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.project_id = ANY($1)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(taskRowColumns).
			AddRow(4, "Design", nil, "TODO", "MEDIUM", nil, 1, nil, now, now, nil, nil, nil))

	projects, err := store.ListProjects(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	if len(projects[0].Tasks) != 1 || projects[0].Tasks[0].ID != 4 {
		t.Fatalf("expected task 4 under project 1, got %+v", projects[0].Tasks)
	}
	if projects[1].Tasks == nil || len(projects[1].Tasks) != 0 {
		t.Fatalf("expected empty task list for project 2, got %+v", projects[1].Tasks)
	}
}
