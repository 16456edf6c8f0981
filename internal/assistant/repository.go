package assistant

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Conversation, error)
	Save(ctx context.Context, c *Conversation) error
}

type sqlRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &sqlRepo{db: db}
}

func (r *sqlRepo) GetByID(ctx context.Context, id uuid.UUID) (*Conversation, error) {
	query := `SELECT id, history, created_at, updated_at FROM conversations WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)

	var c Conversation
	var historyJSON string

	err := row.Scan(
		&c.ID,
		&historyJSON,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get conversation %s: %w", id, err)
	}

	if err := json.Unmarshal([]byte(historyJSON), &c.History); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}
	if c.History == nil {
		c.History = []Message{}
	}

	return &c, nil
}

func (r *sqlRepo) Save(ctx context.Context, c *Conversation) error {
	history := c.History
	if history == nil {
		history = []Message{}
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO conversations (id, history, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			history = excluded.history,
			updated_at = excluded.updated_at
	`
	_, err = r.db.ExecContext(ctx, query, c.ID, string(historyJSON), c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save conversation %s: %w", c.ID, err)
	}
	return nil
}
