package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"taskboard/models"
)

const taskSelect = `
        SELECT t.id, t.title, t.description, t.status, t.priority, t.due_date,
               t.project_id, t.user_id, t.created_at, t.updated_at,
               u.id, u.name, u.email
        FROM tasks t
        LEFT JOIN users u ON u.id = t.user_id`

func scanTask(row interface{ Scan(...any) error }) (models.Task, error) {
	var (
		t           models.Task
		description sql.NullString
		dueDate     sql.NullTime
		userID      sql.NullInt64
		assigneeID  sql.NullInt64
		name, email sql.NullString
	)
	err := row.Scan(
		&t.ID, &t.Title, &description, &t.Status, &t.Priority, &dueDate,
		&t.ProjectID, &userID, &t.CreatedAt, &t.UpdatedAt,
		&assigneeID, &name, &email,
	)
	if err != nil {
		return models.Task{}, err
	}
	t.Description = stringPtr(description)
	if dueDate.Valid {
		due := dueDate.Time.UTC()
		t.DueDate = &due
	}
	if userID.Valid {
		id := userID.Int64
		t.UserID = &id
	}
	if assigneeID.Valid {
		t.AssignedTo = &models.UserSummary{ID: assigneeID.Int64, Name: name.String, Email: email.String}
	}
	return t, nil
}

func (p *Postgres) queryTasks(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// taskReferenceError turns a foreign key violation into the NotFound of the
// entity it points at.
func taskReferenceError(err error, projectID int64, userID *int64) error {
	code, constraint := pqCode(err)
	if code != foreignKeyViolation {
		return nil
	}
	if strings.Contains(constraint, "user_id") && userID != nil {
		return models.NotFoundf("User with id %d not found", *userID)
	}
	return models.NotFoundf("Project with id %d not found", projectID)
}

func (p *Postgres) CreateTask(ctx context.Context, in models.NewTask) (models.Task, error) {
	query := `INSERT INTO tasks (title, description, status, priority, due_date, project_id, user_id)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	var dueDate sql.NullTime
	if in.DueDate != nil {
		dueDate = sql.NullTime{Time: *in.DueDate, Valid: true}
	}
	var userID sql.NullInt64
	if in.UserID != nil {
		userID = sql.NullInt64{Int64: *in.UserID, Valid: true}
	}

	var id int64
	err := p.db.QueryRowContext(ctx, query,
		in.Title,
		nullableString(in.Description),
		models.StatusTodo,
		in.Priority,
		dueDate,
		in.ProjectID,
		userID,
	).Scan(&id)
	if err != nil {
		if refErr := taskReferenceError(err, in.ProjectID, in.UserID); refErr != nil {
			return models.Task{}, refErr
		}
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return p.TaskByID(ctx, id)
}

func (p *Postgres) ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	query := taskSelect
	conditions := []string{}
	params := []any{}
	paramCount := 1

	if filter.ProjectID != nil {
		conditions = append(conditions, fmt.Sprintf("t.project_id = $%d", paramCount))
		params = append(params, *filter.ProjectID)
		paramCount++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("t.status = $%d", paramCount))
		params = append(params, *filter.Status)
		paramCount++
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY t.id"

	return p.queryTasks(ctx, query, params...)
}

func (p *Postgres) TaskByID(ctx context.Context, id int64) (models.Task, error) {
	tasks, err := p.queryTasks(ctx, taskSelect+` WHERE t.id = $1`, id)
	if err != nil {
		return models.Task{}, err
	}
	if len(tasks) == 0 {
		return models.Task{}, models.NotFoundf("Task with id %d not found", id)
	}
	return tasks[0], nil
}

// UpdateTask writes only the fields set in update.
func (p *Postgres) UpdateTask(ctx context.Context, id int64, update models.TaskUpdate) (models.Task, error) {
	// Build the SET clause from the fields present in the patch
	query := "UPDATE tasks SET "
	params := []any{}
	paramCount := 1

	if update.Status != nil {
		query += fmt.Sprintf("status = $%d, ", paramCount)
		params = append(params, *update.Status)
		paramCount++
	}
	if update.Priority != nil {
		query += fmt.Sprintf("priority = $%d, ", paramCount)
		params = append(params, *update.Priority)
		paramCount++
	}
	// Clearing wins over a new date
	if update.ClearDueDate {
		query += "due_date = NULL, "
	} else if update.DueDate != nil {
		query += fmt.Sprintf("due_date = $%d, ", paramCount)
		params = append(params, *update.DueDate)
		paramCount++
	}
	if update.UserID != nil {
		query += fmt.Sprintf("user_id = $%d, ", paramCount)
		params = append(params, *update.UserID)
		paramCount++
	}

	// updated_at always changes, so the clause is never empty
	query += "updated_at = NOW() WHERE id = $" + strconv.Itoa(paramCount)
	params = append(params, id)

	res, err := p.db.ExecContext(ctx, query, params...)
	if err != nil {
		// The assignee was removed between the service check and this write
		if code, _ := pqCode(err); code == foreignKeyViolation && update.UserID != nil {
			return models.Task{}, models.NotFoundf("User with id %d not found", *update.UserID)
		}
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}
	if n == 0 {
		return models.Task{}, models.NotFoundf("Task with id %d not found", id)
	}

	// Reload to get the assignee summary from the join
	return p.TaskByID(ctx, id)
}
