// Package icu is a thin client for the intervals.icu REST API.
package icu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/julianstephens/daylog/internal/constants"
	apperrors "github.com/julianstephens/daylog/internal/errors"
	"github.com/julianstephens/daylog/internal/logger"
	"github.com/julianstephens/daylog/internal/models"
)

// Operation names, used in error messages and as metric labels.
const (
	OpListWellness     = "list wellness"
	OpListActivities   = "list activities"
	OpListEvents       = "list events"
	OpUpdateWellness   = "update wellness"
	OpUpdateActivity   = "update activity"
	OpCreateEvent      = "create event"
	OpUpdateEvent      = "update event"
	OpDeleteEvent      = "delete event"
	OpCheckCredentials = "check credentials"
)

const (
	athletePath    = "/athlete/{athlete}"
	wellnessPath   = athletePath + "/wellness"
	wellnessBulk   = athletePath + "/wellness-bulk"
	activitiesPath = athletePath + "/activities"
	activityPath   = athletePath + "/activities/{id}"
	eventsPath     = athletePath + "/events"
	eventPath      = athletePath + "/events/{id}"
)

// Client talks to one athlete's data. It never retries.
type Client struct {
	rc        *resty.Client
	athleteID string
}

type options struct {
	timeout   time.Duration
	athleteID string
	transport http.RoundTripper
}

// Option configures a Client.
type Option func(*options)

// WithHTTPTimeout sets the per-request timeout.
func WithHTTPTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithAthleteID overrides the default athlete ("0", the key's owner).
func WithAthleteID(id string) Option {
	return func(o *options) { o.athleteID = id }
}

// WithTransport replaces the underlying round tripper. Used by tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// New creates a client authenticating with Basic Auth (user API_KEY, password = key).
func New(baseURL, apiKey string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("base URL cannot be empty")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("API key cannot be empty")
	}

	o := options{timeout: constants.DefaultHTTPTimeout, athleteID: constants.DefaultAthleteID}
	for _, opt := range opts {
		opt(&o)
	}
	if o.athleteID == "" {
		o.athleteID = constants.DefaultAthleteID
	}

	rc := resty.New().
		SetBaseURL(baseURL).
		SetBasicAuth(constants.BasicAuthUsername, apiKey).
		SetHeader("Accept", "application/json").
		SetTimeout(o.timeout).
		SetDisableWarn(true)
	if o.transport != nil {
		rc.SetTransport(o.transport)
	}
	if logger.Logger != nil {
		rc.SetLogger(logger.Logger)
	}

	return &Client{rc: rc, athleteID: o.athleteID}, nil
}

// ListWellness returns wellness entries for the inclusive date range.
func (c *Client) ListWellness(ctx context.Context, oldest, newest string) ([]models.WellnessEntry, error) {
	var out []models.WellnessEntry
	err := c.list(ctx, OpListWellness, wellnessPath, oldest, newest, &out)
	return out, err
}

// ListActivities returns activities for the inclusive date range.
func (c *Client) ListActivities(ctx context.Context, oldest, newest string) ([]models.Activity, error) {
	var out []models.Activity
	err := c.list(ctx, OpListActivities, activitiesPath, oldest, newest, &out)
	return out, err
}

// ListEvents returns calendar events touching the inclusive date range.
func (c *Client) ListEvents(ctx context.Context, oldest, newest string) ([]models.Event, error) {
	var out []models.Event
	err := c.list(ctx, OpListEvents, eventsPath, oldest, newest, &out)
	return out, err
}

// UpdateWellness writes a partial entry through the bulk endpoint.
// Unset fields are omitted, so the server keeps its current values.
func (c *Client) UpdateWellness(ctx context.Context, entry models.WellnessEntry) error {
	if entry.ID == "" {
		return apperrors.Validationf("wellness entry needs a date")
	}
	_, err := c.do(ctx, OpUpdateWellness, http.MethodPut, wellnessBulk, func(r *resty.Request) {
		r.SetHeader("Content-Type", "application/json").
			SetBody([]models.WellnessEntry{entry})
	})
	return err
}

// UpdateActivity writes the editable fields of patch to activity id.
func (c *Client) UpdateActivity(ctx context.Context, id models.ActivityID, patch models.Activity) error {
	if id == "" {
		return apperrors.Validationf("activity id is required")
	}
	body := models.Activity{
		Type:        patch.Type,
		Name:        patch.Name,
		Description: patch.Description,
		ICURPE:      patch.ICURPE,
		Feel:        patch.Feel,
	}
	_, err := c.do(ctx, OpUpdateActivity, http.MethodPut, activityPath, func(r *resty.Request) {
		r.SetPathParam("id", id.String()).
			SetHeader("Content-Type", "application/json").
			SetBody(body)
	})
	return err
}

// CreateEvent creates an event and returns the server's canonical copy.
func (c *Client) CreateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	event.ID = 0
	return c.writeEvent(ctx, OpCreateEvent, http.MethodPost, eventsPath, event)
}

// UpdateEvent replaces an event and returns the server's canonical copy.
func (c *Client) UpdateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	if event.ID == 0 {
		return models.Event{}, apperrors.Validationf("event id is required")
	}
	return c.writeEvent(ctx, OpUpdateEvent, http.MethodPut, eventPath, event)
}

// DeleteEvent removes an event.
func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	_, err := c.do(ctx, OpDeleteEvent, http.MethodDelete, eventPath, func(r *resty.Request) {
		r.SetPathParam("id", strconv.FormatInt(id, 10))
	})
	return err
}

// CheckCredentials fetches the athlete profile to verify the key.
func (c *Client) CheckCredentials(ctx context.Context) error {
	_, err := c.do(ctx, OpCheckCredentials, http.MethodGet, athletePath, nil)
	return err
}

func (c *Client) list(ctx context.Context, op, path, oldest, newest string, out interface{}) error {
	resp, err := c.do(ctx, op, http.MethodGet, path, func(r *resty.Request) {
		r.SetQueryParams(map[string]string{"oldest": oldest, "newest": newest})
	})
	if err != nil {
		return err
	}
	return decode(op, resp, out)
}

func (c *Client) writeEvent(ctx context.Context, op, method, path string, event models.Event) (models.Event, error) {
	resp, err := c.do(ctx, op, method, path, func(r *resty.Request) {
		if event.ID != 0 {
			r.SetPathParam("id", strconv.FormatInt(event.ID, 10))
		}
		r.SetHeader("Content-Type", "application/json").SetBody(event)
	})
	if err != nil {
		return models.Event{}, err
	}
	var canonical models.Event
	if err := decode(op, resp, &canonical); err != nil {
		return models.Event{}, err
	}
	return canonical, nil
}

// do sends one request and maps the outcome to nil, ErrAuth or a *TransportError.
func (c *Client) do(ctx context.Context, op, method, path string, prepare func(*resty.Request)) (*resty.Response, error) {
	req := c.rc.R().
		SetContext(ctx).
		SetPathParam("athlete", c.athleteID)
	if prepare != nil {
		prepare(req)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		observe(op, "error")
		logger.Debug("icu request failed", "op", op, "method", method, "path", path, "error", err)
		return nil, apperrors.NewNetworkError(op, err)
	}

	observe(op, statusClass(resp.StatusCode()))
	logger.Debug("icu request",
		"op", op,
		"method", method,
		"path", path,
		"status", resp.StatusCode(),
		"duration", time.Since(start),
	)

	if err := apperrors.Classify(op, resp.StatusCode(), resp.String()); err != nil {
		return nil, err
	}
	return resp, nil
}

func decode(op string, resp *resty.Response, out interface{}) error {
	body := resp.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.NewNetworkError(op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
