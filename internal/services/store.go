package services

import (
	"context"

	"thoughts-backend/internal/models"
)

// UserStore is the persistence surface the services need for users.
// *repository.UserRepository satisfies it; tests substitute an in-memory fake.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.User, error)
	AppendThought(ctx context.Context, userID, thoughtID string) error
	AddFriend(ctx context.Context, userID, friendID string) (*models.User, error)
}

// ThoughtStore is the persistence surface the services need for thoughts.
type ThoughtStore interface {
	Create(ctx context.Context, thought *models.Thought) error
	GetByID(ctx context.Context, id string) (*models.Thought, error)
	List(ctx context.Context, username string) ([]*models.Thought, error)
	AddReaction(ctx context.Context, thoughtID string, reaction models.Reaction) (*models.Thought, error)
}
