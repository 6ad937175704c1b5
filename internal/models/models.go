package models

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MaxTextLength bounds thought and reaction bodies, counted in
	// characters, not bytes.
	MaxTextLength = 280
	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 5
)

var emailPattern = regexp.MustCompile(`^([a-z0-9_.-]+)@([\da-z.-]+)\.([a-z.]{2,6})$`)

// User represents a registered user. FriendIDs is semantically a set and
// ThoughtIDs an ordered owned relation (insertion order = creation order).
// The password hash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FriendIDs    []string  `json:"friend_ids"`
	ThoughtIDs   []string  `json:"thought_ids"`
	CreatedAt    time.Time `json:"created_at"`

	// Populated relations, assembled at read time; nil until populated.
	Friends  []*User    `json:"friends,omitempty"`
	Thoughts []*Thought `json:"thoughts,omitempty"`
}

// FriendCount is derived from the friends relation, never stored.
func (u *User) FriendCount() int {
	return len(u.FriendIDs)
}

// SetPassword replaces the stored hash with a salted one-way hash of the
// plaintext. The plaintext is never persisted.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares a candidate plaintext against the stored hash.
// The comparison is timing-safe; any mismatch or malformed input yields
// false, never an error.
func (u *User) CheckPassword(candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(candidate)) == nil
}

// Thought is a short text post. Reactions are embedded and append-only;
// Username is a denormalized copy of the author's username at creation
// time and is not kept consistent with later username changes.
type Thought struct {
	ID          string     `json:"id"`
	ThoughtText string     `json:"thought_text"`
	Username    string     `json:"username"`
	Reactions   []Reaction `json:"reactions"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ReactionCount is derived from the embedded reactions, never stored.
func (t *Thought) ReactionCount() int {
	return len(t.Reactions)
}

// Reaction lives inside its parent Thought and never exists independently.
type Reaction struct {
	ID           string    `json:"id"`
	ReactionBody string    `json:"reaction_body"`
	Username     string    `json:"username"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidateNewUser checks the registration fields against the schema
// constraints and returns the trimmed username and normalized email.
// Uniqueness is enforced at the store.
func ValidateNewUser(username, email, password string) (string, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))

	if username == "" {
		return "", "", &ValidationError{Field: "username", Reason: "username is required"}
	}
	if email == "" {
		return "", "", &ValidationError{Field: "email", Reason: "email is required"}
	}
	if !emailPattern.MatchString(email) {
		return "", "", &ValidationError{Field: "email", Reason: "must match an email address"}
	}
	if len(password) < MinPasswordLength {
		return "", "", &ValidationError{Field: "password", Reason: "password must be at least 5 characters"}
	}
	return username, email, nil
}

// Validate checks the thought against the schema constraints, trimming the
// text in place.
func (t *Thought) Validate() error {
	t.ThoughtText = strings.TrimSpace(t.ThoughtText)
	if t.ThoughtText == "" {
		return &ValidationError{Field: "thoughtText", Reason: "thought text is required"}
	}
	if utf8.RuneCountInString(t.ThoughtText) > MaxTextLength {
		return &ValidationError{Field: "thoughtText", Reason: "thought text must be at most 280 characters"}
	}
	if t.Username == "" {
		return &ValidationError{Field: "username", Reason: "username is required"}
	}
	return nil
}

// Validate checks the reaction against the schema constraints, trimming the
// body in place.
func (r *Reaction) Validate() error {
	r.ReactionBody = strings.TrimSpace(r.ReactionBody)
	if r.ReactionBody == "" {
		return &ValidationError{Field: "reactionBody", Reason: "reaction body is required"}
	}
	if utf8.RuneCountInString(r.ReactionBody) > MaxTextLength {
		return &ValidationError{Field: "reactionBody", Reason: "reaction body must be at most 280 characters"}
	}
	if r.Username == "" {
		return &ValidationError{Field: "username", Reason: "username is required"}
	}
	return nil
}

// FormatDate renders a creation instant the way the API presents it.
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006 at 3:04 pm")
}
