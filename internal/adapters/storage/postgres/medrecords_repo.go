package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"zoo-care-service/internal/domain/medrecords"
)

type MedicalRecordsRepo struct {
	db *sql.DB
}

func NewMedicalRecordsRepo(db *sql.DB) *MedicalRecordsRepo {
	return &MedicalRecordsRepo{db: db}
}

func (r *MedicalRecordsRepo) Create(ctx context.Context, rec medrecords.MedicalRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medical_records (
			id, animal_id, veterinarian_id,
			record_type, diagnosis, treatment,
			weight_kg, temperature_c, notes,
			follow_up_date,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		rec.ID,
		rec.AnimalID,
		rec.VeterinarianID,
		string(rec.RecordType),
		rec.Diagnosis,
		rec.Treatment,
		toNullFloat(rec.Vitals.WeightKg),
		toNullFloat(rec.Vitals.TemperatureC),
		rec.Notes,
		toNullTime(rec.FollowUpDate),
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return err
}

func (r *MedicalRecordsRepo) Update(ctx context.Context, rec medrecords.MedicalRecord) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE medical_records
		SET
			animal_id = $2,
			veterinarian_id = $3,
			record_type = $4,
			diagnosis = $5,
			treatment = $6,
			weight_kg = $7,
			temperature_c = $8,
			notes = $9,
			follow_up_date = $10,
			updated_at = $11
		WHERE id = $1
	`,
		rec.ID,
		rec.AnimalID,
		rec.VeterinarianID,
		string(rec.RecordType),
		rec.Diagnosis,
		rec.Treatment,
		toNullFloat(rec.Vitals.WeightKg),
		toNullFloat(rec.Vitals.TemperatureC),
		rec.Notes,
		toNullTime(rec.FollowUpDate),
		rec.UpdatedAt,
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

func (r *MedicalRecordsRepo) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM medical_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MedicalRecordsRepo) GetByID(ctx context.Context, id string) (medrecords.MedicalRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return medrecords.MedicalRecord{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, medrecordSelect+` WHERE id = $1`, id)

	rec, err := scanMedicalRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return medrecords.MedicalRecord{}, ErrNotFound
		}
		return medrecords.MedicalRecord{}, err
	}
	return rec, nil
}

func (r *MedicalRecordsRepo) List(ctx context.Context, filter medrecords.ListFilter) ([]medrecords.MedicalRecord, error) {
	conds := make([]string, 0, 3)
	args := make([]any, 0, 3)

	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.RecordType != "" {
		add("record_type = $%d", string(filter.RecordType))
	}
	if filter.AnimalID != "" {
		add("animal_id = $%d", filter.AnimalID)
	}
	if filter.VeterinarianID != "" {
		add("veterinarian_id = $%d", filter.VeterinarianID)
	}

	q := medrecordSelect
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medrecords.MedicalRecord, 0)
	for rows.Next() {
		rec, err := scanMedicalRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

const medrecordSelect = `
	SELECT
		id, animal_id, veterinarian_id,
		record_type, diagnosis, treatment,
		weight_kg, temperature_c, notes,
		follow_up_date,
		created_at, updated_at
	FROM medical_records`

func scanMedicalRecord(row rowScanner) (medrecords.MedicalRecord, error) {
	var rec medrecords.MedicalRecord
	var recordType string
	var weight, temp sql.NullFloat64
	var followUp sql.NullTime

	if err := row.Scan(
		&rec.ID,
		&rec.AnimalID,
		&rec.VeterinarianID,
		&recordType,
		&rec.Diagnosis,
		&rec.Treatment,
		&weight,
		&temp,
		&rec.Notes,
		&followUp,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return medrecords.MedicalRecord{}, err
	}

	rec.RecordType = medrecords.RecordType(recordType)
	rec.Vitals.WeightKg = fromNullFloat(weight)
	rec.Vitals.TemperatureC = fromNullFloat(temp)
	rec.FollowUpDate = fromNullTime(followUp)
	return rec, nil
}
