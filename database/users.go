package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"taskboard/models"
)

const userColumns = `id, email, password_hash, name, role, created_at`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.CreatedAt)
	return u, err
}

// CreateUser relies on the unique email index, so two concurrent
// registrations of one address cannot both succeed.
func (p *Postgres) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	query := `INSERT INTO users (email, password_hash, name, role)
              VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := p.db.QueryRowContext(ctx, query, user.Email, user.PasswordHash, user.Name, user.Role).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if code, _ := pqCode(err); code == uniqueViolation {
			return models.User{}, models.Conflictf("User with email %s already exists", user.Email)
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (p *Postgres) UserByEmail(ctx context.Context, email string) (models.User, error) {
	row := p.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.NotFoundf("User with email %s not found", email)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("select user by email: %w", err)
	}
	return user, nil
}

func (p *Postgres) UserByID(ctx context.Context, id int64) (models.User, error) {
	row := p.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.NotFoundf("User with id %d not found", id)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("select user by id: %w", err)
	}
	return user, nil
}

func (p *Postgres) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (p *Postgres) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := p.db.ExecContext(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.NotFoundf("User with id %d not found", id)
	}
	return nil
}
