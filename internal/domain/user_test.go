package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("  alice ", "a@x.com", "hash")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "alice", user.Username, "username should be trimmed")
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "hash", user.HashedPassword)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
}

func TestUserValidate(t *testing.T) {
	tests := []struct {
		name       string
		user       User
		wantFields []string
	}{
		{
			name: "valid",
			user: User{ID: uuid.New(), Username: "bob", Email: "bob@example.com", HashedPassword: "h"},
		},
		{
			name:       "missing everything collects all fields",
			user:       User{},
			wantFields: []string{"id", "username", "email", "password"},
		},
		{
			name: "bad email",
			user: User{
				ID: uuid.New(), Username: "bob", Email: "not-an-email", HashedPassword: "h",
			},
			wantFields: []string{"email"},
		},
		{
			name: "username too long",
			user: User{
				ID:             uuid.New(),
				Username:       strings.Repeat("u", MaxUsernameLength+1),
				Email:          "bob@example.com",
				HashedPassword: "h",
			},
			wantFields: []string{"username"},
		},
		{
			name: "multibyte username at the limit",
			user: User{
				ID:             uuid.New(),
				Username:       strings.Repeat("é", MaxUsernameLength),
				Email:          "bob@example.com",
				HashedPassword: "h",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.user.Validate()
			if len(tc.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))

			verr, ok := AsValidationError(err)
			require.True(t, ok)
			assert.Len(t, verr.Fields, len(tc.wantFields))
			for _, f := range tc.wantFields {
				assert.Contains(t, verr.Fields, f)
			}
		})
	}
}

func TestPasswordProblem(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantOK   bool
	}{
		{name: "empty", password: ""},
		{name: "too short", password: "abc12"},
		{name: "minimum", password: "abc123", wantOK: true},
		{name: "multibyte counts characters", password: "пароль", wantOK: true},
		{name: "too many characters", password: strings.Repeat("a", MaxPasswordLength+1)},
		{name: "within characters but over bcrypt bytes", password: strings.Repeat("é", MaxPasswordLength)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			msg := PasswordProblem(tc.password)
			if tc.wantOK {
				assert.Empty(t, msg)
			} else {
				assert.NotEmpty(t, msg)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	var empty *ValidationError
	assert.False(t, empty.HasErrors())

	v := &ValidationError{}
	assert.NoError(t, v.OrNil())

	v.Add("b", "second")
	v.Add("a", "first")
	v.Merge(NewValidationError("a", "again"))

	assert.Equal(t, []string{"first", "again"}, v.Fields["a"])
	assert.Equal(t, "validation failed: a: first again; b: second", v.Error())
	assert.ErrorIs(t, v.OrNil(), ErrValidation)
}
