package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"thoughts-backend/internal/models"
	"thoughts-backend/internal/token"

	"github.com/google/uuid"
)

// UserService handles registration, login, and the friends relation.
type UserService struct {
	users    UserStore
	thoughts ThoughtStore
	codec    *token.Codec
}

// NewUserService creates a new user service.
func NewUserService(users UserStore, thoughts ThoughtStore, codec *token.Codec) *UserService {
	return &UserService{
		users:    users,
		thoughts: thoughts,
		codec:    codec,
	}
}

// Register validates and creates a user, then immediately issues a
// credential for the new identity.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	username, email, err := models.ValidateNewUser(username, email, password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		ID:         uuid.New().String(),
		Username:   username,
		Email:      email,
		FriendIDs:  []string{},
		ThoughtIDs: []string{},
		CreatedAt:  time.Now(),
	}
	if err := user.SetPassword(password); err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	credential, err := s.issue(user)
	if err != nil {
		return nil, "", err
	}

	if err := s.populate(ctx, user); err != nil {
		return nil, "", err
	}
	return user, credential, nil
}

// Login authenticates by email and password. An unknown email and a wrong
// password produce the same error so the two are indistinguishable to the
// caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	// Emails are stored trimmed and lowercased; the lookup key must match.
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", models.ErrIncorrectCredentials()
	}
	if !user.CheckPassword(password) {
		return nil, "", models.ErrIncorrectCredentials()
	}

	credential, err := s.issue(user)
	if err != nil {
		return nil, "", err
	}

	if err := s.populate(ctx, user); err != nil {
		return nil, "", err
	}
	return user, credential, nil
}

// Me returns the caller's own user, populated; (nil, nil) if the identity
// no longer maps to a stored user.
func (s *UserService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil || user == nil {
		return nil, err
	}
	if err := s.populate(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByUsername returns one user by username, populated; (nil, nil) when
// none match.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil || user == nil {
		return nil, err
	}
	if err := s.populate(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// List returns all users, populated.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		if err := s.populate(ctx, user); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// AddFriend adds friendID to the caller's friends set. The add is
// idempotent set-union; friending yourself is not prevented and friendship
// is one-directional. Returns the updated caller, populated.
func (s *UserService) AddFriend(ctx context.Context, userID, friendID string) (*models.User, error) {
	user, err := s.users.AddFriend(ctx, userID, friendID)
	if err != nil || user == nil {
		return nil, err
	}
	if err := s.populate(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) issue(user *models.User) (string, error) {
	credential, err := s.codec.Issue(token.Identity{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
	if err != nil {
		return "", fmt.Errorf("failed to issue credential: %w", err)
	}
	return credential, nil
}

// populate assembles the friends and thoughts relations into the user, in
// full and in stored order. Thoughts are fetched one by one; there is no
// batching, so the cost is one query per owned thought.
func (s *UserService) populate(ctx context.Context, user *models.User) error {
	friends, err := s.users.GetByIDs(ctx, user.FriendIDs)
	if err != nil {
		return fmt.Errorf("failed to populate friends: %w", err)
	}
	user.Friends = friends
	if user.Friends == nil {
		user.Friends = []*models.User{}
	}

	user.Thoughts = make([]*models.Thought, 0, len(user.ThoughtIDs))
	for _, id := range user.ThoughtIDs {
		thought, err := s.thoughts.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to populate thoughts: %w", err)
		}
		if thought != nil {
			user.Thoughts = append(user.Thoughts, thought)
		}
	}
	return nil
}
