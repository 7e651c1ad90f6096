// Package placeholder reads the public JSONPlaceholder directory (users, posts, photos).
package placeholder

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/julianstephens/daylog/internal/constants"
	"github.com/julianstephens/daylog/internal/logger"
	"github.com/julianstephens/daylog/internal/models"
)

const (
	EndpointUsers  = "users"
	EndpointPosts  = "posts"
	EndpointPhotos = "photos"
)

// Endpoints lists the browsable collections in menu order.
var Endpoints = []string{EndpointUsers, EndpointPosts, EndpointPhotos}

// Client fetches truncated lists from the directory. No authentication.
type Client struct {
	rc *resty.Client
}

// New creates a client for baseURL, falling back to the public service.
func New(baseURL string, timeout time.Duration) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = constants.DefaultPlaceholderURL
	}
	if timeout <= 0 {
		timeout = constants.DefaultHTTPTimeout
	}
	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	return &Client{rc: rc}
}

// Limit returns how many records of endpoint are kept.
func Limit(endpoint string) int {
	if endpoint == EndpointPhotos {
		return constants.PlaceholderPhotoLimit
	}
	return constants.PlaceholderListLimit
}

// Users returns the first users in the directory.
func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.fetch(ctx, EndpointUsers, &users); err != nil {
		return nil, err
	}
	return truncate(users, Limit(EndpointUsers)), nil
}

// Posts returns the first posts in the directory.
func (c *Client) Posts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := c.fetch(ctx, EndpointPosts, &posts); err != nil {
		return nil, err
	}
	return truncate(posts, Limit(EndpointPosts)), nil
}

// Photos returns the first photos in the directory.
func (c *Client) Photos(ctx context.Context) ([]models.Photo, error) {
	var photos []models.Photo
	if err := c.fetch(ctx, EndpointPhotos, &photos); err != nil {
		return nil, err
	}
	return truncate(photos, Limit(EndpointPhotos)), nil
}

func (c *Client) fetch(ctx context.Context, endpoint string, out interface{}) error {
	resp, err := c.rc.R().SetContext(ctx).Get("/" + endpoint)
	if err != nil {
		return fmt.Errorf("Failed to fetch %s: %w", endpoint, err)
	}
	logger.Debug("placeholder request", "endpoint", endpoint, "status", resp.StatusCode())
	if !resp.IsSuccess() {
		return fmt.Errorf("Failed to fetch %s: HTTP error! status: %d", endpoint, resp.StatusCode())
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("Failed to fetch %s: %w", endpoint, err)
	}
	return nil
}

func truncate[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
