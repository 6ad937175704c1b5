package services

import (
	"context"
	"time"

	"thoughts-backend/internal/models"

	"github.com/google/uuid"
)

// ThoughtService handles thought and reaction business logic.
type ThoughtService struct {
	thoughts ThoughtStore
	users    UserStore
}

// NewThoughtService creates a new thought service.
func NewThoughtService(thoughts ThoughtStore, users UserStore) *ThoughtService {
	return &ThoughtService{
		thoughts: thoughts,
		users:    users,
	}
}

// Add creates a thought stamped with the author's username and links it
// into the author's thoughts relation. The create and the link are two
// separate writes; a crash between them leaves an orphan thought that is
// reachable by id but not owned. No compensation is attempted.
func (s *ThoughtService) Add(ctx context.Context, authorID, authorUsername, text string) (*models.Thought, error) {
	thought := &models.Thought{
		ID:          uuid.New().String(),
		ThoughtText: text,
		Username:    authorUsername,
		Reactions:   []models.Reaction{},
		CreatedAt:   time.Now(),
	}
	if err := thought.Validate(); err != nil {
		return nil, err
	}

	if err := s.thoughts.Create(ctx, thought); err != nil {
		return nil, err
	}
	if err := s.users.AppendThought(ctx, authorID, thought.ID); err != nil {
		return nil, err
	}
	return thought, nil
}

// List returns thoughts newest-first, filtered by author when username is
// non-empty.
func (s *ThoughtService) List(ctx context.Context, username string) ([]*models.Thought, error) {
	return s.thoughts.List(ctx, username)
}

// Get returns one thought by id; (nil, nil) when none match.
func (s *ThoughtService) Get(ctx context.Context, id string) (*models.Thought, error) {
	return s.thoughts.GetByID(ctx, id)
}

// AddReaction appends a reaction stamped with the caller's username to the
// target thought and returns the updated thought. An unknown thoughtID
// yields (nil, nil) — a silent no-match, not a fault.
func (s *ThoughtService) AddReaction(ctx context.Context, username, thoughtID, body string) (*models.Thought, error) {
	reaction := models.Reaction{
		ID:           uuid.New().String(),
		ReactionBody: body,
		Username:     username,
		CreatedAt:    time.Now(),
	}
	if err := reaction.Validate(); err != nil {
		return nil, err
	}
	return s.thoughts.AddReaction(ctx, thoughtID, reaction)
}
