// Package identityapi is the client for the identity service.
package identityapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"caseflow/internal/upstream"
)

// User is a staff member known to the identity service.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Client calls the identity service.
type Client struct {
	baseURL string
	http    *http.Client
}

// New constructs a client for the service at baseURL.
func New(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, http: httpClient}
}

// GetUserByID fetches a user by ID.
func (c *Client) GetUserByID(ctx context.Context, id string) (User, error) {
	var out User
	err := upstream.Do(ctx, c.http, http.MethodGet,
		fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(id)), nil, &out)
	return out, err
}

// StubUser is the degraded-data fallback when the identity service had no
// data or failed.
func StubUser(id string) User {
	return User{ID: id, Name: "Unknown user"}
}
