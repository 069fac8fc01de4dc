package postgres

import (
	"context"
	"database/sql"
	"strings"

	"zoo-care-service/internal/domain/animals"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animals (
			id, name, species, breed, age,
			status, photo_url,
			vet_id, assignment_reason, assigned_at,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		a.ID,
		a.Name,
		a.Species,
		a.Breed,
		a.Age,
		string(a.Status),
		a.PhotoURL,
		toNullString(a.VetID),
		a.AssignmentReason,
		toNullTime(a.AssignedAt),
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animals
		SET
			name = $2,
			species = $3,
			breed = $4,
			age = $5,
			status = $6,
			photo_url = $7,
			vet_id = $8,
			assignment_reason = $9,
			assigned_at = $10,
			updated_at = $11
		WHERE id = $1
	`,
		a.ID,
		a.Name,
		a.Species,
		a.Breed,
		a.Age,
		string(a.Status),
		a.PhotoURL,
		toNullString(a.VetID),
		a.AssignmentReason,
		toNullTime(a.AssignedAt),
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM animals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return animals.Animal{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, animalSelect+` WHERE id = $1`, id)

	a, err := scanAnimal(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return animals.Animal{}, ErrNotFound
		}
		return animals.Animal{}, err
	}
	return a, nil
}

func (r *AnimalsRepo) List(ctx context.Context) ([]animals.Animal, error) {
	rows, err := r.db.QueryContext(ctx, animalSelect+` ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AnimalsRepo) ListByVet(ctx context.Context, vetID string) ([]animals.Animal, error) {
	vetID = strings.TrimSpace(vetID)
	if vetID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, animalSelect+` WHERE vet_id = $1 ORDER BY created_at ASC`, vetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AnimalsRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM animals`).Scan(&n)
	return n, err
}

const animalSelect = `
	SELECT
		id, name, species, breed, age,
		status, photo_url,
		vet_id, assignment_reason, assigned_at,
		created_at, updated_at
	FROM animals`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnimal(row rowScanner) (animals.Animal, error) {
	var a animals.Animal
	var status string
	var vetID sql.NullString
	var assignedAt sql.NullTime

	if err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Species,
		&a.Breed,
		&a.Age,
		&status,
		&a.PhotoURL,
		&vetID,
		&a.AssignmentReason,
		&assignedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return animals.Animal{}, err
	}

	a.Status = animals.Status(status)
	a.VetID = fromNullString(vetID)
	a.AssignedAt = fromNullTime(assignedAt)
	return a, nil
}
