package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/powerdealer-api/internal/api/shared"
	"github.com/phrazzld/powerdealer-api/internal/domain"
	"github.com/stretchr/testify/require"
)

// envelope is the decoded form of both success and error responses.
type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

func newJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withUser(req *http.Request, userID uuid.UUID) *http.Request {
	return req.WithContext(shared.WithUserID(req.Context(), userID))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env), "body: %s", rec.Body.String())
	return env
}

func testUserAndBusiness(t *testing.T) (*domain.User, *domain.Business) {
	t.Helper()
	user, err := domain.NewUser("alice", "a@x.com", "hash")
	require.NoError(t, err)
	business, err := domain.NewBusiness(user, "Alice Co", "b@x.com", "", "")
	require.NoError(t, err)
	return user, business
}

