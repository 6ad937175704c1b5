package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"thoughts-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

const userColumns = "id, username, email, password_hash, friends, thoughts, created_at"

// UserRepository handles database operations for users.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. A uniqueness conflict on username or email is
// reported as a ValidationError, not a server fault.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, friends, thoughts, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.FriendIDs, user.ThoughtIDs, user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return &models.ValidationError{Field: "email", Reason: "email is already taken"}
			}
			return &models.ValidationError{Field: "username", Reason: "username is already taken"}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID. An unknown or unparseable ID yields
// (nil, nil): a missing lookup target is a null result, not an error.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

// GetByUsername retrieves a user by username; (nil, nil) when none match.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, username))
}

// GetByEmail retrieves a user by email; (nil, nil) when none match.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, email))
}

// List retrieves all users.
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := scanUser(rows, &user); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetByIDs retrieves users for the given IDs, preserving the input order.
// IDs with no matching user are skipped.
func (r *UserRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1)`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get users by ids: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*models.User, len(ids))
	for rows.Next() {
		var user models.User
		if err := scanUser(rows, &user); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		byID[user.ID] = &user
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get users by ids: %w", err)
	}

	users := make([]*models.User, 0, len(byID))
	for _, id := range ids {
		if user, ok := byID[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

// AppendThought links a freshly created thought into the owner's thoughts
// relation. This is the second half of a non-atomic two-step write: the
// thought row already exists, so a crash here leaves an unlinked thought.
func (r *UserRepository) AppendThought(ctx context.Context, userID, thoughtID string) error {
	query := `UPDATE users SET thoughts = array_append(thoughts, $2) WHERE id = $1`
	_, err := r.db.Exec(ctx, query, userID, thoughtID)
	if err != nil {
		return fmt.Errorf("failed to append thought: %w", err)
	}
	return nil
}

// AddFriend adds friendID to the user's friends set in a single atomic
// update. Adding an existing friend is a no-op; duplicates are impossible.
// Returns the updated user, or (nil, nil) if the user does not exist.
func (r *UserRepository) AddFriend(ctx context.Context, userID, friendID string) (*models.User, error) {
	if _, err := uuid.Parse(friendID); err != nil {
		return nil, &models.ValidationError{Field: "friendId", Reason: "friendId must be a valid id"}
	}
	query := `
		UPDATE users
		SET friends = CASE WHEN $2 = ANY(friends) THEN friends ELSE array_append(friends, $2) END
		WHERE id = $1
		RETURNING ` + userColumns
	return r.scanOne(r.db.QueryRow(ctx, query, userID, friendID))
}

func (r *UserRepository) scanOne(row pgx.Row) (*models.User, error) {
	var user models.User
	if err := scanUser(row, &user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func scanUser(row pgx.Row, user *models.User) error {
	return row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.FriendIDs, &user.ThoughtIDs, &user.CreatedAt,
	)
}
