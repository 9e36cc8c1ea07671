package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticked/internal/api"
	"ticked/internal/model"
)

func newAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login", "/auth/register":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["password"] == "wrong" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"invalid credentials"}`))
				return
			}
			_ = json.NewEncoder(w).Encode(api.AuthResponse{
				AccessToken: "tok-" + body["email"],
				User:        model.User{ID: "u1", Email: body["email"], Name: "Ada"},
			})
		case "/auth/account":
			// delete account
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLogin_SetsGrantAndPersists(t *testing.T) {
	srv := newAuthServer(t)
	dir := t.TempDir()

	s := New(api.New(srv.URL), dir)
	require.False(t, s.Authenticated())

	require.NoError(t, s.Login(context.Background(), "Ada@Example.com ", "hunter2"))
	assert.True(t, s.Authenticated())
	// Email was normalized before the request went out.
	assert.Equal(t, "tok-ada@example.com", s.Token())
	require.NotNil(t, s.User())
	assert.Equal(t, "u1", s.User().ID)
	assert.False(t, s.Loading())
	assert.NoError(t, s.Err())

	// A new store over the same data dir rehydrates the grant.
	s2 := New(api.New(srv.URL), dir)
	assert.True(t, s2.Authenticated())
	assert.Equal(t, s.Token(), s2.Token())
	require.NotNil(t, s2.User())
	assert.Equal(t, "ada@example.com", s2.User().Email)
}

func TestLogin_InvalidEmailRejectedLocally(t *testing.T) {
	srv := newAuthServer(t)
	s := New(api.New(srv.URL), t.TempDir())

	err := s.Login(context.Background(), "not-an-email", "pw")
	require.ErrorIs(t, err, ErrInvalidEmail)
	assert.ErrorIs(t, s.Err(), ErrInvalidEmail)
	assert.False(t, s.Authenticated())
}

func TestLogin_ServerRejectionLeavesStoreLoggedOut(t *testing.T) {
	srv := newAuthServer(t)
	s := New(api.New(srv.URL), t.TempDir())

	err := s.Login(context.Background(), "ada@example.com", "wrong")
	require.Error(t, err)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid credentials", apiErr.Message)
	assert.False(t, s.Authenticated())
	assert.Nil(t, s.User())
	assert.False(t, s.Loading())
}

func TestClearError(t *testing.T) {
	srv := newAuthServer(t)
	s := New(api.New(srv.URL), t.TempDir())

	_ = s.Login(context.Background(), "bad", "pw")
	require.Error(t, s.Err())
	s.ClearError()
	assert.NoError(t, s.Err())
}

func TestRegister_GrantsSession(t *testing.T) {
	srv := newAuthServer(t)
	s := New(api.New(srv.URL), t.TempDir())

	require.NoError(t, s.Register(context.Background(), "new@example.com", "pw", "New User"))
	assert.True(t, s.Authenticated())
}

func TestLogout_ClearsStateAndDisk(t *testing.T) {
	srv := newAuthServer(t)
	dir := t.TempDir()
	s := New(api.New(srv.URL), dir)
	require.NoError(t, s.Login(context.Background(), "ada@example.com", "pw"))

	s.Logout()
	assert.False(t, s.Authenticated())
	assert.Nil(t, s.User())

	// The persisted grant is gone too.
	s2 := New(api.New(srv.URL), dir)
	assert.False(t, s2.Authenticated())
}

func TestDeleteAccount(t *testing.T) {
	srv := newAuthServer(t)
	s := New(api.New(srv.URL), t.TempDir())
	require.NoError(t, s.Login(context.Background(), "ada@example.com", "pw"))

	require.NoError(t, s.DeleteAccount(context.Background()))
	assert.False(t, s.Authenticated())
}

func TestDeleteAccount_RequiresSession(t *testing.T) {
	srv := newAuthServer(t)
	s := New(api.New(srv.URL), t.TempDir())

	err := s.DeleteAccount(context.Background())
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestRehydrate_CorruptGrantMeansLoggedOut(t *testing.T) {
	srv := newAuthServer(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session"), []byte("{not json"), 0o600))

	s := New(api.New(srv.URL), dir)
	assert.False(t, s.Authenticated())
	assert.Nil(t, s.User())
}

func TestTokenSource_WiresIntoClient(t *testing.T) {
	var auth string
	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login" {
			_ = json.NewEncoder(w).Encode(api.AuthResponse{AccessToken: "tok-1", User: model.User{ID: "u1"}})
			return
		}
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer apiSrv.Close()

	client := api.New(apiSrv.URL)
	s := New(client, t.TempDir())
	client.SetTokenSource(s.Token)

	require.NoError(t, s.Login(context.Background(), "ada@example.com", "pw"))
	_, err := client.Tasks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", auth)
}
