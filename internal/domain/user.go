package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Limits on user fields.
const (
	MaxUsernameLength = 150
	MinPasswordLength = 6
	MaxPasswordLength = 72
	// MaxPasswordBytes is bcrypt's input limit. A password within
	// MaxPasswordLength characters can still exceed it.
	MaxPasswordBytes = 72
)

var emailValidator = validator.New()

// User is an account holder. Exactly one User owns each Business.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with a fresh ID and timestamps. The password must
// already be hashed; plaintext never reaches the domain layer.
func NewUser(username, email, hashedPassword string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:             uuid.New(),
		Username:       strings.TrimSpace(username),
		Email:          strings.TrimSpace(email),
		HashedPassword: hashedPassword,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks the user's fields and returns a *ValidationError listing
// every failing field, or nil.
func (u *User) Validate() error {
	v := &ValidationError{}

	if u.ID == uuid.Nil {
		v.Add("id", "User ID cannot be empty.")
	}

	switch {
	case u.Username == "":
		v.Add("username", MsgRequired)
	case utf8.RuneCountInString(u.Username) > MaxUsernameLength:
		v.Add("username", "Ensure this field has no more than 150 characters.")
	}

	if u.Email == "" {
		v.Add("email", MsgRequired)
	} else if !IsValidEmail(u.Email) {
		v.Add("email", MsgInvalidEmail)
	}

	if u.HashedPassword == "" {
		v.Add("password", "Password hash cannot be empty.")
	}

	return v.OrNil()
}

// Summary returns the public projection of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Email: u.Email}
}

// UserSummary is the public view of a user included in API payloads.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// PasswordProblem returns the message describing why password is not
// acceptable, or "" if it is. Lengths are counted in characters; the byte
// limit only matters for multibyte input.
func PasswordProblem(password string) string {
	n := utf8.RuneCountInString(password)
	switch {
	case password == "":
		return MsgRequired
	case n < MinPasswordLength:
		return fmt.Sprintf("Ensure this field has at least %d characters.", MinPasswordLength)
	case n > MaxPasswordLength:
		return fmt.Sprintf("Ensure this field has no more than %d characters.", MaxPasswordLength)
	case len(password) > MaxPasswordBytes:
		return fmt.Sprintf("Ensure this field has no more than %d bytes.", MaxPasswordBytes)
	}
	return ""
}

// IsValidEmail reports whether s is a syntactically valid email address.
func IsValidEmail(s string) bool {
	return emailValidator.Var(s, "required,email") == nil
}
