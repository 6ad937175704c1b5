package graph

import (
	"context"
	"testing"
	"time"

	"thoughts-backend/internal/models"
	"thoughts-backend/internal/services"
	"thoughts-backend/internal/token"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/require"
)

// memStore backs the schema tests with in-memory collections that keep the
// store's observable semantics.
type memStore struct {
	users    []*models.User
	thoughts []*models.Thought
}

type memUserStore struct{ *memStore }

func (m memUserStore) Create(ctx context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Username == user.Username {
			return &models.ValidationError{Field: "username", Reason: "username is already taken"}
		}
		if u.Email == user.Email {
			return &models.ValidationError{Field: "email", Reason: "email is already taken"}
		}
	}
	cp := *user
	m.memStore.users = append(m.memStore.users, &cp)
	return nil
}

func (m memUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m memUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m memUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m memUserStore) List(ctx context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0, len(m.users))
	for _, u := range m.users {
		cp := *u
		users = append(users, &cp)
	}
	return users, nil
}

func (m memUserStore) GetByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	var users []*models.User
	for _, id := range ids {
		if u, _ := m.GetByID(ctx, id); u != nil {
			users = append(users, u)
		}
	}
	return users, nil
}

func (m memUserStore) AppendThought(ctx context.Context, userID, thoughtID string) error {
	for _, u := range m.users {
		if u.ID == userID {
			u.ThoughtIDs = append(u.ThoughtIDs, thoughtID)
		}
	}
	return nil
}

func (m memUserStore) AddFriend(ctx context.Context, userID, friendID string) (*models.User, error) {
	for _, u := range m.users {
		if u.ID != userID {
			continue
		}
		present := false
		for _, id := range u.FriendIDs {
			if id == friendID {
				present = true
			}
		}
		if !present {
			u.FriendIDs = append(u.FriendIDs, friendID)
		}
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

type memThoughtStore struct{ *memStore }

func (m memThoughtStore) Create(ctx context.Context, thought *models.Thought) error {
	cp := *thought
	m.memStore.thoughts = append(m.memStore.thoughts, &cp)
	return nil
}

func (m memThoughtStore) GetByID(ctx context.Context, id string) (*models.Thought, error) {
	for _, t := range m.thoughts {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (m memThoughtStore) List(ctx context.Context, username string) ([]*models.Thought, error) {
	var thoughts []*models.Thought
	for i := len(m.thoughts) - 1; i >= 0; i-- {
		t := m.thoughts[i]
		if username != "" && t.Username != username {
			continue
		}
		cp := *t
		thoughts = append(thoughts, &cp)
	}
	return thoughts, nil
}

func (m memThoughtStore) AddReaction(ctx context.Context, thoughtID string, reaction models.Reaction) (*models.Thought, error) {
	for _, t := range m.thoughts {
		if t.ID == thoughtID {
			t.Reactions = append(t.Reactions, reaction)
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

// testEngine bundles a schema over in-memory stores plus the codec that
// signed its credentials.
type testEngine struct {
	schema graphql.Schema
	codec  *token.Codec
}

func newTestEngine(t *testing.T) *testEngine {
	t.Helper()

	store := &memStore{}
	codec := token.New("test-secret", 2*time.Hour)
	userSvc := services.NewUserService(memUserStore{store}, memThoughtStore{store}, codec)
	thoughtSvc := services.NewThoughtService(memThoughtStore{store}, memUserStore{store})

	schema, err := New(userSvc, thoughtSvc)
	require.NoError(t, err)

	return &testEngine{schema: schema, codec: codec}
}

// do executes one operation against the schema.
func (e *testEngine) do(ctx context.Context, query string, vars map[string]any) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         e.schema,
		RequestString:  query,
		VariableValues: vars,
		Context:        ctx,
	})
}
