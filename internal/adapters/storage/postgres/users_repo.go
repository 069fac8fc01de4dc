package postgres

import (
	"context"
	"database/sql"
	"strings"

	"zoo-care-service/internal/domain/users"
	"zoo-care-service/internal/ports/auth"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, name, email, password_hash, role,
			specialization, location, experience, phone,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		u.ID,
		u.Name,
		u.Email,
		u.PasswordHash,
		string(u.Role),
		u.Specialization,
		u.Location,
		u.Experience,
		u.Phone,
		u.CreatedAt,
		u.UpdatedAt,
	)
	return err
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, userSelect+` WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return users.User{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, userSelect+` WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UsersRepo) ListByRole(ctx context.Context, role auth.Role) ([]users.User, error) {
	rows, err := r.db.QueryContext(ctx, userSelect+` WHERE role = $1 ORDER BY created_at ASC`, string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		u, err := scanUserRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UsersRepo) CountByRole(ctx context.Context, role auth.Role) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE role = $1`, string(role)).Scan(&n)
	return n, err
}

const userSelect = `
	SELECT
		id, name, email, password_hash, role,
		specialization, location, experience, phone,
		created_at, updated_at
	FROM users`

func scanUser(row *sql.Row) (users.User, error) {
	u, err := scanUserRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return users.User{}, ErrNotFound
		}
		return users.User{}, err
	}
	return u, nil
}

func scanUserRow(row rowScanner) (users.User, error) {
	var u users.User
	var role string

	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&role,
		&u.Specialization,
		&u.Location,
		&u.Experience,
		&u.Phone,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return users.User{}, err
	}

	u.Role = auth.Role(role)
	return u, nil
}
