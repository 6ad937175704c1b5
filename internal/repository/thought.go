package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"thoughts-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const thoughtColumns = "id, thought_text, username, reactions, created_at"

// ThoughtRepository handles database operations for thoughts. Reactions are
// embedded in the thought row as a JSON array, so every reaction write is a
// single-row update.
type ThoughtRepository struct {
	db *pgxpool.Pool
}

// NewThoughtRepository creates a new thought repository.
func NewThoughtRepository(db *pgxpool.Pool) *ThoughtRepository {
	return &ThoughtRepository{db: db}
}

// Create inserts a new thought.
func (r *ThoughtRepository) Create(ctx context.Context, thought *models.Thought) error {
	reactions, err := marshalReactions(thought.Reactions)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO thoughts (id, thought_text, username, reactions, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = r.db.Exec(ctx, query,
		thought.ID, thought.ThoughtText, thought.Username, reactions, thought.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create thought: %w", err)
	}
	return nil
}

// GetByID retrieves a thought by ID; (nil, nil) when none match, including
// IDs that are not valid identifiers at all.
func (r *ThoughtRepository) GetByID(ctx context.Context, id string) (*models.Thought, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	query := `SELECT ` + thoughtColumns + ` FROM thoughts WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

// List retrieves thoughts newest-first, filtered by author when username is
// non-empty.
func (r *ThoughtRepository) List(ctx context.Context, username string) ([]*models.Thought, error) {
	query := `SELECT ` + thoughtColumns + ` FROM thoughts ORDER BY created_at DESC`
	args := []any{}
	if username != "" {
		query = `SELECT ` + thoughtColumns + ` FROM thoughts WHERE username = $1 ORDER BY created_at DESC`
		args = append(args, username)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list thoughts: %w", err)
	}
	defer rows.Close()

	var thoughts []*models.Thought
	for rows.Next() {
		thought, err := scanThought(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan thought: %w", err)
		}
		thoughts = append(thoughts, thought)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list thoughts: %w", err)
	}
	return thoughts, nil
}

// AddReaction appends a reaction to the thought's embedded collection in a
// single atomic update and returns the updated thought. An unknown
// thoughtID yields (nil, nil), never an error.
func (r *ThoughtRepository) AddReaction(ctx context.Context, thoughtID string, reaction models.Reaction) (*models.Thought, error) {
	if _, err := uuid.Parse(thoughtID); err != nil {
		return nil, nil
	}
	appended, err := marshalReactions([]models.Reaction{reaction})
	if err != nil {
		return nil, err
	}
	query := `
		UPDATE thoughts
		SET reactions = reactions || $2::jsonb
		WHERE id = $1
		RETURNING ` + thoughtColumns
	return r.scanOne(r.db.QueryRow(ctx, query, thoughtID, appended))
}

func (r *ThoughtRepository) scanOne(row pgx.Row) (*models.Thought, error) {
	thought, err := scanThought(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get thought: %w", err)
	}
	return thought, nil
}

func scanThought(row pgx.Row) (*models.Thought, error) {
	var thought models.Thought
	var reactions []byte
	if err := row.Scan(
		&thought.ID, &thought.ThoughtText, &thought.Username, &reactions, &thought.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(reactions, &thought.Reactions); err != nil {
		return nil, fmt.Errorf("failed to decode reactions: %w", err)
	}
	return &thought, nil
}

func marshalReactions(reactions []models.Reaction) ([]byte, error) {
	if reactions == nil {
		reactions = []models.Reaction{}
	}
	data, err := json.Marshal(reactions)
	if err != nil {
		return nil, fmt.Errorf("failed to encode reactions: %w", err)
	}
	return data, nil
}
