package directus

import (
	"context"
	"net/http"
)

// Credentials are the email and password posted to /auth/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Tokens is the payload of a successful login.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	// Expires is the access token lifetime in milliseconds.
	Expires int64 `json:"expires"`
}

// User is the subset of /users/me the client uses.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// NewUser is posted to /users on registration.
type NewUser struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Login exchanges credentials for tokens and starts using the access token.
func (c *Client) Login(ctx context.Context, creds Credentials) (Tokens, error) {
	var t Tokens
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/login"}, creds, &t)
	if err != nil {
		return Tokens{}, err
	}
	if t.AccessToken == "" {
		return Tokens{}, &APIError{Status: http.StatusUnauthorized, Message: "no access token in login response"}
	}
	c.SetToken(t.AccessToken)
	return t, nil
}

// Me fetches the user the current token belongs to.
func (c *Client) Me(ctx context.Context) (User, error) {
	var u User
	if err := c.do(ctx, request{method: http.MethodGet, path: "/users/me"}, nil, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

// CreateUser registers a new account. The call is authorized with
// registrationToken, not the session token.
func (c *Client) CreateUser(ctx context.Context, registrationToken string, u NewUser) error {
	r := request{method: http.MethodPost, path: "/users", bearer: registrationToken}
	return c.do(ctx, r, u, nil)
}
