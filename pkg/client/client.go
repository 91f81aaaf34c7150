// Package client is a Go SDK for the media discovery API. It keeps the
// access token in a CredentialStore and reduces every failure to *Error.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
)

// Client calls the API on behalf of one user.
type Client struct {
	transport *Transport
	store     CredentialStore
}

// Options overrides client dependencies.
type Options struct {
	HTTPClient *http.Client
	Store      CredentialStore
}

// New creates a client for baseURL.
func New(baseURL string, opts Options) (*Client, error) {
	store := opts.Store
	if store == nil {
		store = NewMemoryStore()
	}
	transport, err := NewTransport(baseURL, store, opts.HTTPClient)
	if err != nil {
		return nil, err
	}
	return &Client{transport: transport, store: store}, nil
}

// Signup creates an account and stores its token.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*Session, error) {
	var session Session
	if err := c.call(ctx, http.MethodPost, "/user/signup", nil, req, &session); err != nil {
		return nil, err
	}
	return &session, c.store.Set(session.Token)
}

// Signin exchanges credentials for a token and stores it.
func (c *Client) Signin(ctx context.Context, username, password string) (*Session, error) {
	body := map[string]string{"username": username, "password": password}
	var session Session
	if err := c.call(ctx, http.MethodPost, "/user/signin", nil, body, &session); err != nil {
		return nil, err
	}
	return &session, c.store.Set(session.Token)
}

// Signout forgets the stored token. Tokens stay valid server side until
// they expire.
func (c *Client) Signout() error {
	return c.store.Clear()
}

// Info returns the signed in account.
func (c *Client) Info(ctx context.Context) (*Account, error) {
	var account Account
	if err := c.call(ctx, http.MethodGet, "/user/info", nil, nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdatePassword changes the signed in account's password.
func (c *Client) UpdatePassword(ctx context.Context, change PasswordChange) error {
	return c.call(ctx, http.MethodPut, "/user/update-password", nil, change, nil)
}

// Reviews lists the caller's reviews.
func (c *Client) Reviews(ctx context.Context) ([]Review, error) {
	var reviews []Review
	if err := c.call(ctx, http.MethodGet, "/reviews", nil, nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// AddReview creates a review.
func (c *Client) AddReview(ctx context.Context, review NewReview) (*Review, error) {
	var created Review
	if err := c.call(ctx, http.MethodPost, "/reviews", nil, review, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// RemoveReview deletes one of the caller's reviews.
func (c *Client) RemoveReview(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/reviews/"+url.PathEscape(id), nil, nil, nil)
}

// Favorites lists the caller's favorites.
func (c *Client) Favorites(ctx context.Context) ([]Favorite, error) {
	var favorites []Favorite
	if err := c.call(ctx, http.MethodGet, "/user/favorites", nil, nil, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// AddFavorite bookmarks a title. Adding it twice returns the same record.
func (c *Client) AddFavorite(ctx context.Context, favorite NewFavorite) (*Favorite, error) {
	var created Favorite
	if err := c.call(ctx, http.MethodPost, "/user/favorites", nil, favorite, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// RemoveFavorite deletes one of the caller's favorites.
func (c *Client) RemoveFavorite(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/user/favorites/"+url.PathEscape(id), nil, nil, nil)
}

// MediaList returns a catalog category page as upstream JSON.
func (c *Client) MediaList(ctx context.Context, mediaType, category string, page int) (json.RawMessage, error) {
	var out json.RawMessage
	path := "/" + url.PathEscape(mediaType) + "/" + url.PathEscape(category)
	err := c.call(ctx, http.MethodGet, path, map[string]any{"page": page}, nil, &out)
	return out, err
}

// Genres returns the genre list for mediaType.
func (c *Client) Genres(ctx context.Context, mediaType string) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.call(ctx, http.MethodGet, "/"+url.PathEscape(mediaType)+"/genres", nil, nil, &out)
	return out, err
}

// Search queries the catalog.
func (c *Client) Search(ctx context.Context, mediaType, query string, page int) (json.RawMessage, error) {
	var out json.RawMessage
	params := map[string]any{"query": query, "page": page}
	err := c.call(ctx, http.MethodGet, "/"+url.PathEscape(mediaType)+"/search", params, nil, &out)
	return out, err
}

// MediaDetail returns a title with its reviews. When signed in the result
// also carries isFavorite.
func (c *Client) MediaDetail(ctx context.Context, mediaType, mediaID string) (map[string]any, error) {
	var detail map[string]any
	path := "/" + url.PathEscape(mediaType) + "/detail/" + url.PathEscape(mediaID)
	if err := c.call(ctx, http.MethodGet, path, nil, nil, &detail); err != nil {
		return nil, err
	}
	return detail, nil
}

// Person returns a person's profile as upstream JSON.
func (c *Client) Person(ctx context.Context, personID string) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.call(ctx, http.MethodGet, "/person/"+url.PathEscape(personID), nil, nil, &out)
	return out, err
}

// PersonMedias returns the titles a person is credited on.
func (c *Client) PersonMedias(ctx context.Context, personID string) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.call(ctx, http.MethodGet, "/person/"+url.PathEscape(personID)+"/medias", nil, nil, &out)
	return out, err
}

func (c *Client) call(ctx context.Context, method, path string, params map[string]any, body, out any) error {
	data, err := Normalize(c.transport.Send(ctx, method, path, params, body))
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Unauthorized() {
			_ = c.store.Clear()
		}
		return err
	}
	if out == nil || len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Message: NetworkErrorMessage, Err: err}
	}
	return nil
}
