package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"app.db", "app.db?" + defaultPragmas},
		{"sqlite://app.db", "app.db?" + defaultPragmas},
		{"file:app.db?mode=rwc", "file:app.db?mode=rwc&" + defaultPragmas},
		{"app.db?_pragma=journal_mode(WAL)", "app.db?_pragma=journal_mode(WAL)"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, DSN(tc.in), tc.in)
	}
}

func TestTimestampScan(t *testing.T) {
	want := time.Date(2024, 1, 2, 3, 4, 5, 600, time.UTC)

	for _, src := range []any{
		want,
		want.Format(time.RFC3339Nano),
		[]byte(want.Format(time.RFC3339Nano)),
		"2024-01-02 03:04:05.0000006+00:00",
	} {
		var got time.Time
		require.NoError(t, timestamp{&got}.Scan(src))
		assert.True(t, want.Equal(got), "%v", src)
	}

	var got time.Time
	assert.Error(t, timestamp{&got}.Scan(42))
	assert.Error(t, timestamp{&got}.Scan("yesterday"))
}

func TestConstraintName(t *testing.T) {
	assert.Equal(t, "users_username_key",
		constraintName("constraint failed: UNIQUE constraint failed: users.username (2067)"))
	assert.Equal(t, "businesses_owner_id_key",
		constraintName("UNIQUE constraint failed: businesses.owner_id"))
	assert.Empty(t, constraintName("FOREIGN KEY constraint failed"))
}
