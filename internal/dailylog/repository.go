package dailylog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

type Repository interface {
	Get(ctx context.Context, date string) (*DailyLog, error)
	Upsert(ctx context.Context, log *DailyLog) error
	List(ctx context.Context, from, to string) ([]DailyLog, error)

	GetMeals(ctx context.Context, date string) (*MealLog, error)
	UpsertMeals(ctx context.Context, log *MealLog) error
}

type sqlRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &sqlRepo{db: db}
}

const logColumns = `date, mood, symptoms, weight, bp_systolic, bp_diastolic, notes, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLog(row rowScanner) (*DailyLog, error) {
	var (
		l            DailyLog
		symptomsJSON string
		weight       sql.NullFloat64
		systolic     sql.NullInt64
		diastolic    sql.NullInt64
	)
	if err := row.Scan(&l.Date, &l.Mood, &symptomsJSON, &weight, &systolic, &diastolic, &l.Notes, &l.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(symptomsJSON), &l.Symptoms); err != nil {
		return nil, fmt.Errorf("decode symptoms: %w", err)
	}
	if l.Symptoms == nil {
		l.Symptoms = []string{}
	}
	if weight.Valid {
		w := weight.Float64
		l.Weight = &w
	}
	if systolic.Valid && diastolic.Valid {
		l.BloodPressure = &BloodPressure{Systolic: int(systolic.Int64), Diastolic: int(diastolic.Int64)}
	}
	return &l, nil
}

func (r *sqlRepo) Get(ctx context.Context, date string) (*DailyLog, error) {
	query := `SELECT ` + logColumns + ` FROM daily_logs WHERE date = $1`

	l, err := scanLog(r.db.QueryRowContext(ctx, query, date))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get daily log %s: %w", date, err)
	}
	return l, nil
}

// Upsert replaces any log stored for the same date.
func (r *sqlRepo) Upsert(ctx context.Context, l *DailyLog) error {
	symptomsJSON, err := json.Marshal(l.Symptoms)
	if err != nil {
		return err
	}
	if l.Symptoms == nil {
		symptomsJSON = []byte("[]")
	}

	var weight sql.NullFloat64
	if l.Weight != nil {
		weight = sql.NullFloat64{Float64: *l.Weight, Valid: true}
	}
	var systolic, diastolic sql.NullInt64
	if l.BloodPressure != nil {
		systolic = sql.NullInt64{Int64: int64(l.BloodPressure.Systolic), Valid: true}
		diastolic = sql.NullInt64{Int64: int64(l.BloodPressure.Diastolic), Valid: true}
	}

	query := `
		INSERT INTO daily_logs (` + logColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (date) DO UPDATE SET
			mood = excluded.mood,
			symptoms = excluded.symptoms,
			weight = excluded.weight,
			bp_systolic = excluded.bp_systolic,
			bp_diastolic = excluded.bp_diastolic,
			notes = excluded.notes,
			updated_at = excluded.updated_at
	`
	_, err = r.db.ExecContext(ctx, query,
		l.Date, string(l.Mood), string(symptomsJSON), weight, systolic, diastolic, l.Notes, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert daily log %s: %w", l.Date, err)
	}
	return nil
}

// List returns logs with from <= date <= to, oldest first.
func (r *sqlRepo) List(ctx context.Context, from, to string) ([]DailyLog, error) {
	query := `SELECT ` + logColumns + ` FROM daily_logs WHERE date >= $1 AND date <= $2 ORDER BY date`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list daily logs: %w", err)
	}
	defer rows.Close()

	logs := []DailyLog{}
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan daily log: %w", err)
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}

func (r *sqlRepo) GetMeals(ctx context.Context, date string) (*MealLog, error) {
	query := `SELECT date, meals, updated_at FROM meal_logs WHERE date = $1`

	var (
		m         MealLog
		mealsJSON string
	)
	err := r.db.QueryRowContext(ctx, query, date).Scan(&m.Date, &mealsJSON, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get meal log %s: %w", date, err)
	}
	if err := json.Unmarshal([]byte(mealsJSON), &m.Meals); err != nil {
		return nil, fmt.Errorf("decode meals: %w", err)
	}
	return &m, nil
}

func (r *sqlRepo) UpsertMeals(ctx context.Context, m *MealLog) error {
	meals := m.Meals
	if meals == nil {
		meals = []Meal{}
	}
	mealsJSON, err := json.Marshal(meals)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO meal_logs (date, meals, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (date) DO UPDATE SET
			meals = excluded.meals,
			updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, m.Date, string(mealsJSON), m.UpdatedAt); err != nil {
		return fmt.Errorf("upsert meal log %s: %w", m.Date, err)
	}
	return nil
}
