package tissue

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tissueplus/tissue/internal/domain"
)

func loginServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		if r.PostForm.Get("username") != "admin" || r.PostForm.Get("password") != "password" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestAuthFlow(input, password string) (*AuthFlow, *bytes.Buffer) {
	out := &bytes.Buffer{}
	f := NewAuthFlow(nil)
	f.in = strings.NewReader(input)
	f.out = out
	f.readPassword = func() ([]byte, error) { return []byte(password), nil }
	return f, out
}

func TestLoginBareToken(t *testing.T) {
	srv := loginServer(t, `{"access_token":"tok","token_type":"bearer"}`)
	f, _ := newTestAuthFlow("", "")

	result, err := f.Login(context.Background(), srv.URL, "admin", "password")
	require.NoError(t, err)
	assert.Equal(t, "tok", result.Token)
	assert.Equal(t, "admin", result.Username)
}

func TestLoginWrappedToken(t *testing.T) {
	srv := loginServer(t, `{"success":true,"data":{"access_token":"wrapped","token_type":"bearer"}}`)
	f, _ := newTestAuthFlow("", "")

	result, err := f.Login(context.Background(), srv.URL+"/", "admin", "password")
	require.NoError(t, err)
	assert.Equal(t, "wrapped", result.Token)
}

func TestLoginBadCredentials(t *testing.T) {
	srv := loginServer(t, `{}`)
	f, _ := newTestAuthFlow("", "")

	_, err := f.Login(context.Background(), srv.URL, "admin", "nope")
	assert.ErrorIs(t, err, domain.ErrAuthFailed)
}

func TestLoginRequiresUsername(t *testing.T) {
	f, _ := newTestAuthFlow("", "")
	_, err := f.Login(context.Background(), "http://127.0.0.1:1", "", "x")
	assert.Error(t, err)
}

func TestRunPromptsForCredentials(t *testing.T) {
	srv := loginServer(t, `{"access_token":"tok","token_type":"bearer"}`)
	f, out := newTestAuthFlow("admin\n", "password")

	result, err := f.Run(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "tok", result.Token)
	assert.Contains(t, out.String(), "Username: ")
	assert.Contains(t, out.String(), "Password: ")
	assert.Contains(t, out.String(), "Logged in as admin")
}
