package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thoughts-backend/internal/models"
)

func newThoughtService(store *fakeStore) *ThoughtService {
	return NewThoughtService(fakeThoughtStore{store}, store)
}

func seedUser(t *testing.T, store *fakeStore, username string) *models.User {
	t.Helper()
	user := &models.User{
		ID:       username + "-id",
		Username: username,
		Email:    username + "@example.com",
	}
	require.NoError(t, store.Create(context.Background(), user))
	return user
}

func TestAddThought(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newThoughtService(store)
	alice := seedUser(t, store, "alice")

	thought, err := svc.Add(context.Background(), alice.ID, "alice", "  a deep one  ")
	require.NoError(t, err)
	require.NotNil(t, thought)
	assert.Equal(t, "a deep one", thought.ThoughtText)
	assert.Equal(t, "alice", thought.Username)
	assert.Empty(t, thought.Reactions)

	// The thought is linked into the author's owned relation.
	owner, err := store.GetByID(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{thought.ID}, owner.ThoughtIDs)
}

func TestAddThoughtLengthBound(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newThoughtService(store)
	alice := seedUser(t, store, "alice")

	ok, err := svc.Add(context.Background(), alice.ID, "alice", strings.Repeat("x", 280))
	require.NoError(t, err)
	require.NotNil(t, ok)

	tooLong, err := svc.Add(context.Background(), alice.ID, "alice", strings.Repeat("x", 281))
	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Nil(t, tooLong)
	assert.Equal(t, "thoughtText", vErr.Field)
}

func TestAddThoughtLinkFailureLeavesOrphan(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newThoughtService(store)
	alice := seedUser(t, store, "alice")

	store.appendErr = errors.New("connection reset")
	_, err := svc.Add(context.Background(), alice.ID, "alice", "doomed")
	require.Error(t, err)

	// The create and the link are separate writes: the thought row exists
	// even though the link failed.
	thoughts, err := store.ListThoughts(context.Background(), "alice")
	require.NoError(t, err)
	assert.Len(t, thoughts, 1)

	owner, err := store.GetByID(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, owner.ThoughtIDs)
}

func TestListNewestFirstAndFiltered(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newThoughtService(store)
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")

	first, err := svc.Add(context.Background(), alice.ID, "alice", "first")
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), bob.ID, "bob", "from bob")
	require.NoError(t, err)
	last, err := svc.Add(context.Background(), alice.ID, "alice", "last")
	require.NoError(t, err)

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, last.ID, all[0].ID)
	assert.Equal(t, first.ID, all[2].ID)

	alices, err := svc.List(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, alices, 2)
	assert.Equal(t, last.ID, alices[0].ID)
	assert.Equal(t, first.ID, alices[1].ID)
}

func TestGetNotFound(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newThoughtService(store)

	thought, err := svc.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, thought)
}

func TestAddReaction(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newThoughtService(store)
	alice := seedUser(t, store, "alice")

	thought, err := svc.Add(context.Background(), alice.ID, "alice", "react to this")
	require.NoError(t, err)

	updated, err := svc.AddReaction(context.Background(), "bob", thought.ID, "  nice  ")
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.Len(t, updated.Reactions, 1)
	assert.Equal(t, "nice", updated.Reactions[0].ReactionBody)
	assert.Equal(t, "bob", updated.Reactions[0].Username)
	assert.Equal(t, 1, updated.ReactionCount())

	// Append-only: a second reaction is added after the first.
	again, err := svc.AddReaction(context.Background(), "carol", thought.ID, "same")
	require.NoError(t, err)
	require.Len(t, again.Reactions, 2)
	assert.Equal(t, "bob", again.Reactions[0].Username)
	assert.Equal(t, "carol", again.Reactions[1].Username)
}

func TestAddReactionUnknownThought(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newThoughtService(store)

	// A silent no-match, not a fault.
	updated, err := svc.AddReaction(context.Background(), "bob", "missing-id", "hello?")
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestAddReactionLengthBound(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := newThoughtService(store)
	alice := seedUser(t, store, "alice")

	thought, err := svc.Add(context.Background(), alice.ID, "alice", "bounded")
	require.NoError(t, err)

	_, err = svc.AddReaction(context.Background(), "bob", thought.ID, strings.Repeat("y", 281))
	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "reactionBody", vErr.Field)
}
