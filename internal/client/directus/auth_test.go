package directus

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_StoresToken(t *testing.T) {
	var creds Credentials
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		writeData(t, w, http.StatusOK, map[string]any{
			"access_token":  "acc",
			"refresh_token": "ref",
			"expires":       900000,
		})
	})

	tok, err := c.Login(context.Background(), Credentials{Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, Tokens{AccessToken: "acc", RefreshToken: "ref", Expires: 900000}, tok)
	assert.Equal(t, "acc", c.Token())
	assert.Equal(t, Credentials{Email: "a@b.c", Password: "pw"}, creds)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeErr(w, http.StatusUnauthorized, "Invalid user credentials.")
	})
	_, err := c.Login(context.Background(), Credentials{Email: "a@b.c", Password: "bad"})
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, c.Token())
}

func TestLogin_EmptyToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeData(t, w, http.StatusOK, map[string]any{})
	})
	_, err := c.Login(context.Background(), Credentials{})
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestMe(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/me", r.URL.Path)
		writeData(t, w, http.StatusOK, map[string]any{
			"id": "u1", "email": "a@b.c", "first_name": "Ana", "last_name": nil,
		})
	})
	u, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, User{ID: "u1", Email: "a@b.c", FirstName: "Ana"}, u)
}

func TestCreateUser_UsesRegistrationToken(t *testing.T) {
	var auth string
	var body NewUser
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/users", r.URL.Path)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeData(t, w, http.StatusOK, map[string]any{"id": "new"})
	})
	c.SetToken("session")

	u := NewUser{Email: "a@b.c", Password: "pw", FirstName: "Ana", LastName: "Gómez"}
	require.NoError(t, c.CreateUser(context.Background(), "static", u))
	assert.Equal(t, "Bearer static", auth)
	assert.Equal(t, u, body)
}
