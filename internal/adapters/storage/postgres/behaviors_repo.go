package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"zoo-care-service/internal/domain/behaviors"
)

type BehaviorsRepo struct {
	db *sql.DB
}

func NewBehaviorsRepo(db *sql.DB) *BehaviorsRepo {
	return &BehaviorsRepo{db: db}
}

func (r *BehaviorsRepo) Create(ctx context.Context, b behaviors.BehaviorLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO behavior_logs (
			id, animal_id,
			eating, movement, mood,
			notes, recorded_by,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		b.ID,
		b.AnimalID,
		string(b.Eating),
		string(b.Movement),
		string(b.Mood),
		b.Notes,
		b.RecordedBy,
		b.CreatedAt,
	)
	return err
}

func (r *BehaviorsRepo) ListByAnimal(ctx context.Context, animalID string) ([]behaviors.BehaviorLog, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, behaviorSelect+` WHERE animal_id = $1 ORDER BY created_at DESC`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBehaviors(rows)
}

// ListAll devuelve todos los logs sin paginar, más recientes primero.
func (r *BehaviorsRepo) ListAll(ctx context.Context) ([]behaviors.BehaviorLog, error) {
	rows, err := r.db.QueryContext(ctx, behaviorSelect+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBehaviors(rows)
}

// List aplica filtros opcionales y pagina. Devuelve la página pedida
// y el total de filas que matchean sin paginar.
func (r *BehaviorsRepo) List(ctx context.Context, filter behaviors.ListFilter) ([]behaviors.BehaviorLog, int, error) {
	where, args := behaviorWhere(filter)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM behavior_logs`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	q := behaviorSelect + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := collectBehaviors(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func behaviorWhere(filter behaviors.ListFilter) (string, []any) {
	conds := make([]string, 0, 6)
	args := make([]any, 0, 6)

	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.AnimalID != "" {
		add("animal_id = $%d", filter.AnimalID)
	}
	if filter.Eating != "" {
		add("eating = $%d", string(filter.Eating))
	}
	if filter.Movement != "" {
		add("movement = $%d", string(filter.Movement))
	}
	if filter.Mood != "" {
		add("mood = $%d", string(filter.Mood))
	}
	if filter.From != nil {
		add("created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("created_at <= $%d", *filter.To)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

const behaviorSelect = `
	SELECT
		id, animal_id,
		eating, movement, mood,
		notes, recorded_by,
		created_at
	FROM behavior_logs`

func collectBehaviors(rows *sql.Rows) ([]behaviors.BehaviorLog, error) {
	out := make([]behaviors.BehaviorLog, 0)
	for rows.Next() {
		var b behaviors.BehaviorLog
		var eating, movement, mood string

		if err := rows.Scan(
			&b.ID,
			&b.AnimalID,
			&eating,
			&movement,
			&mood,
			&b.Notes,
			&b.RecordedBy,
			&b.CreatedAt,
		); err != nil {
			return nil, err
		}

		b.Eating = behaviors.Eating(eating)
		b.Movement = behaviors.Movement(movement)
		b.Mood = behaviors.Mood(mood)
		out = append(out, b)
	}
	return out, rows.Err()
}
