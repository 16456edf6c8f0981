package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Repository interface {
	Get(ctx context.Context) (*Profile, error)
	Save(ctx context.Context, p *Profile) error
}

type ContactRepository interface {
	List(ctx context.Context) ([]Contact, error)
	Add(ctx context.Context, c *Contact) error
	Remove(ctx context.Context, id uuid.UUID) error
}

// profileRowID pins the single profile row.
const profileRowID = 1

type sqlRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &sqlRepo{db: db}
}

// Get returns the default profile when none has been saved yet.
func (r *sqlRepo) Get(ctx context.Context) (*Profile, error) {
	query := `SELECT name, due_date, last_period_date, reminder_time, onboarding_completed, updated_at FROM profile WHERE id = $1`

	var p Profile
	err := r.db.QueryRowContext(ctx, query, profileRowID).Scan(
		&p.Name,
		&p.DueDate,
		&p.LastPeriodDate,
		&p.ReminderTime,
		&p.OnboardingCompleted,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Default(), nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

func (r *sqlRepo) Save(ctx context.Context, p *Profile) error {
	query := `
		INSERT INTO profile (id, name, due_date, last_period_date, reminder_time, onboarding_completed, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			due_date = excluded.due_date,
			last_period_date = excluded.last_period_date,
			reminder_time = excluded.reminder_time,
			onboarding_completed = excluded.onboarding_completed,
			updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		profileRowID, p.Name, p.DueDate, p.LastPeriodDate, p.ReminderTime, p.OnboardingCompleted, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

type sqlContactRepo struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) ContactRepository {
	return &sqlContactRepo{db: db}
}

func (r *sqlContactRepo) List(ctx context.Context) ([]Contact, error) {
	query := `SELECT id, name, number, relationship, created_at FROM emergency_contacts ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	contacts := []Contact{}
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Number, &c.Relationship, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *sqlContactRepo) Add(ctx context.Context, c *Contact) error {
	query := `INSERT INTO emergency_contacts (id, name, number, relationship, created_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.Number, c.Relationship, c.CreatedAt); err != nil {
		return fmt.Errorf("add contact: %w", err)
	}
	return nil
}

func (r *sqlContactRepo) Remove(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM emergency_contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("remove contact: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove contact: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
