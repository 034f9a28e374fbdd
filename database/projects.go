package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"taskboard/models"

	"github.com/lib/pq"
)

const projectColumns = `id, name, description, owner_id, created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (models.Project, error) {
	var (
		p           models.Project
		description sql.NullString
	)
	err := row.Scan(&p.ID, &p.Name, &description, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt)
	p.Description = stringPtr(description)
	return p, err
}

func (p *Postgres) CreateProject(ctx context.Context, project models.Project) (models.Project, error) {
	query := `INSERT INTO projects (name, description, owner_id)
              VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`
	err := p.db.QueryRowContext(ctx, query, project.Name, nullableString(project.Description), project.OwnerID).
		Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		if code, _ := pqCode(err); code == foreignKeyViolation {
			return models.Project{}, models.NotFoundf("User with id %d not found", project.OwnerID)
		}
		return models.Project{}, fmt.Errorf("insert project: %w", err)
	}
	project.Tasks = []models.Task{}
	return project, nil
}

// ListProjects loads all projects and then their tasks in one query.
func (p *Postgres) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	ids := []int64{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		project.Tasks = []models.Task{}
		projects = append(projects, project)
		ids = append(ids, project.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return projects, nil
	}

	// One query for the tasks of every project, grouped below by project id
	tasks, err := p.queryTasks(ctx, taskSelect+` WHERE t.project_id = ANY($1) ORDER BY t.id`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	index := make(map[int64]int, len(projects))
	for i, project := range projects {
		index[project.ID] = i
	}
	for _, task := range tasks {
		if i, ok := index[task.ProjectID]; ok {
			projects[i].Tasks = append(projects[i].Tasks, task)
		}
	}
	return projects, nil
}

func (p *Postgres) ProjectByID(ctx context.Context, id int64) (models.Project, error) {
	row := p.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	project, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Project{}, models.NotFoundf("Project with id %d not found", id)
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("select project: %w", err)
	}

	project.Tasks, err = p.queryTasks(ctx, taskSelect+` WHERE t.project_id = $1 ORDER BY t.id`, id)
	if err != nil {
		return models.Project{}, err
	}
	return project, nil
}

// DeleteProject removes the tasks explicitly inside the same transaction so
// the cascade does not depend on how the table was created.
func (p *Postgres) DeleteProject(ctx context.Context, id int64) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete project: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE project_id = $1`, id); err != nil {
		return fmt.Errorf("delete project tasks: %w", err)
	}
	// No row means the project never existed; the deferred rollback undoes nothing
	res, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if n == 0 {
		return models.NotFoundf("Project with id %d not found", id)
	}
	return tx.Commit()
}
