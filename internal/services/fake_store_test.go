package services

import (
	"context"

	"thoughts-backend/internal/models"
)

// fakeStore is an in-memory stand-in for both repositories. It mirrors the
// store's observable semantics: unique username/email on user create,
// set-union friends, append-only reactions, nil results for unknown ids,
// newest-first thought listing.
type fakeStore struct {
	users     []*models.User
	thoughts  []*models.Thought
	appendErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func copyUser(u *models.User) *models.User {
	cp := *u
	cp.FriendIDs = append([]string(nil), u.FriendIDs...)
	cp.ThoughtIDs = append([]string(nil), u.ThoughtIDs...)
	cp.Friends = nil
	cp.Thoughts = nil
	return &cp
}

func copyThought(t *models.Thought) *models.Thought {
	cp := *t
	cp.Reactions = append([]models.Reaction(nil), t.Reactions...)
	return &cp
}

func (f *fakeStore) Create(ctx context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Username == user.Username {
			return &models.ValidationError{Field: "username", Reason: "username is already taken"}
		}
		if u.Email == user.Email {
			return &models.ValidationError{Field: "email", Reason: "email is already taken"}
		}
	}
	f.users = append(f.users, copyUser(user))
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (f *fakeStore) List(ctx context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, copyUser(u))
	}
	return users, nil
}

func (f *fakeStore) GetByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	var users []*models.User
	for _, id := range ids {
		u, _ := f.GetByID(ctx, id)
		if u != nil {
			users = append(users, u)
		}
	}
	return users, nil
}

func (f *fakeStore) AppendThought(ctx context.Context, userID, thoughtID string) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	for _, u := range f.users {
		if u.ID == userID {
			u.ThoughtIDs = append(u.ThoughtIDs, thoughtID)
		}
	}
	return nil
}

func (f *fakeStore) AddFriend(ctx context.Context, userID, friendID string) (*models.User, error) {
	for _, u := range f.users {
		if u.ID != userID {
			continue
		}
		present := false
		for _, id := range u.FriendIDs {
			if id == friendID {
				present = true
				break
			}
		}
		if !present {
			u.FriendIDs = append(u.FriendIDs, friendID)
		}
		return copyUser(u), nil
	}
	return nil, nil
}

func (f *fakeStore) CreateThought(ctx context.Context, thought *models.Thought) error {
	f.thoughts = append(f.thoughts, copyThought(thought))
	return nil
}

func (f *fakeStore) GetThoughtByID(ctx context.Context, id string) (*models.Thought, error) {
	for _, t := range f.thoughts {
		if t.ID == id {
			return copyThought(t), nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListThoughts(ctx context.Context, username string) ([]*models.Thought, error) {
	var thoughts []*models.Thought
	for i := len(f.thoughts) - 1; i >= 0; i-- {
		t := f.thoughts[i]
		if username != "" && t.Username != username {
			continue
		}
		thoughts = append(thoughts, copyThought(t))
	}
	return thoughts, nil
}

func (f *fakeStore) AddReaction(ctx context.Context, thoughtID string, reaction models.Reaction) (*models.Thought, error) {
	for _, t := range f.thoughts {
		if t.ID == thoughtID {
			t.Reactions = append(t.Reactions, reaction)
			return copyThought(t), nil
		}
	}
	return nil, nil
}

// fakeThoughtStore adapts fakeStore to the ThoughtStore interface, whose
// method names collide with UserStore's.
type fakeThoughtStore struct {
	*fakeStore
}

func (f fakeThoughtStore) Create(ctx context.Context, thought *models.Thought) error {
	return f.CreateThought(ctx, thought)
}

func (f fakeThoughtStore) GetByID(ctx context.Context, id string) (*models.Thought, error) {
	return f.GetThoughtByID(ctx, id)
}

func (f fakeThoughtStore) List(ctx context.Context, username string) ([]*models.Thought, error) {
	return f.ListThoughts(ctx, username)
}
