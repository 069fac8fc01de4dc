package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"zoo-care-service/internal/domain/tasks"
)

type TasksRepo struct {
	db *sql.DB
}

func NewTasksRepo(db *sql.DB) *TasksRepo {
	return &TasksRepo{db: db}
}

func (r *TasksRepo) Create(ctx context.Context, t tasks.Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (
			id, type, animal_id, assigned_to,
			schedule_date, schedule_times,
			status,
			is_recurring, recurrence_pattern, end_date,
			completed_at, completion_verified, image_proof,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		t.ID,
		string(t.Type),
		t.AnimalID,
		t.AssignedTo,
		t.ScheduleDate,
		timesToTextArray(t.ScheduleTimes),
		string(t.Status),
		t.IsRecurring,
		toNullString(string(t.RecurrencePattern)),
		toNullTime(t.EndDate),
		toNullTime(t.CompletedAt),
		t.CompletionVerified,
		t.ImageProof,
		t.CreatedAt,
		t.UpdatedAt,
	)
	return err
}

func (r *TasksRepo) Update(ctx context.Context, t tasks.Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET
			type = $2,
			animal_id = $3,
			assigned_to = $4,
			schedule_date = $5,
			schedule_times = $6,
			status = $7,
			is_recurring = $8,
			recurrence_pattern = $9,
			end_date = $10,
			completed_at = $11,
			completion_verified = $12,
			image_proof = $13,
			updated_at = $14
		WHERE id = $1
	`,
		t.ID,
		string(t.Type),
		t.AnimalID,
		t.AssignedTo,
		t.ScheduleDate,
		timesToTextArray(t.ScheduleTimes),
		string(t.Status),
		t.IsRecurring,
		toNullString(string(t.RecurrencePattern)),
		toNullTime(t.EndDate),
		toNullTime(t.CompletedAt),
		t.CompletionVerified,
		t.ImageProof,
		t.UpdatedAt,
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

func (r *TasksRepo) GetByID(ctx context.Context, id string) (tasks.Task, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return tasks.Task{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, taskSelect+` WHERE id = $1`, id)

	t, err := scanTask(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return tasks.Task{}, ErrNotFound
		}
		return tasks.Task{}, err
	}
	return t, nil
}

func (r *TasksRepo) List(ctx context.Context, filter tasks.ListFilter) ([]tasks.Task, error) {
	conds := make([]string, 0, 3)
	args := make([]any, 0, 3)

	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Status != "" {
		add("status = $%d", string(filter.Status))
	}
	if filter.AnimalID != "" {
		add("animal_id = $%d", filter.AnimalID)
	}
	if filter.AssignedTo != "" {
		add("assigned_to = $%d", filter.AssignedTo)
	}

	q := taskSelect
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += ` ORDER BY schedule_date ASC, created_at ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]tasks.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TasksRepo) CountByStatus(ctx context.Context, status tasks.Status) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE status = $1`, string(status)).Scan(&n)
	return n, err
}

const taskSelect = `
	SELECT
		id, type, animal_id, assigned_to,
		schedule_date, schedule_times,
		status,
		is_recurring, recurrence_pattern, end_date,
		completed_at, completion_verified, image_proof,
		created_at, updated_at
	FROM tasks`

func scanTask(row rowScanner) (tasks.Task, error) {
	var t tasks.Task
	var typ, status string
	var times []string
	var pattern sql.NullString
	var endDate, completedAt sql.NullTime

	if err := row.Scan(
		&t.ID,
		&typ,
		&t.AnimalID,
		&t.AssignedTo,
		&t.ScheduleDate,
		&times,
		&status,
		&t.IsRecurring,
		&pattern,
		&endDate,
		&completedAt,
		&t.CompletionVerified,
		&t.ImageProof,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return tasks.Task{}, err
	}

	t.Type = tasks.Type(typ)
	t.Status = tasks.Status(status)
	t.ScheduleTimes = textArrayToTimes(times)
	t.RecurrencePattern = tasks.Recurrence(fromNullString(pattern))
	t.EndDate = fromNullTime(endDate)
	t.CompletedAt = fromNullTime(completedAt)
	return t, nil
}

// helpers
func timesToTextArray(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	out := make([]string, 0, len(in))
	out = append(out, in...)
	return out
}

func textArrayToTimes(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	out := make([]string, 0, len(in))
	out = append(out, in...)
	return out
}
