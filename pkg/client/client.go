// Package client talks to a running mergingtond over HTTP.
package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/mergington/activities/pkg/activity"
	"github.com/pkg/errors"
)

// APIError is returned when the server answers with a non 2xx status.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("(HTTP Status: %d) %s", e.StatusCode, e.Detail)
}

// IsNotFound reports whether err is an APIError for a missing activity.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type errorBody struct {
	Detail string `json:"detail"`
}

type messageBody struct {
	Message string `json:"message"`
}

type Client struct {
	r *resty.Client
}

// New creates a client for the server at baseURL, e.g. http://localhost:8000.
func New(baseURL string) *Client {
	return &Client{
		r: resty.New().SetBaseURL(baseURL).SetHeader("Accept", "application/json"),
	}
}

func (c *Client) ListActivities(ctx context.Context) (map[string]activity.Activity, error) {
	var activities map[string]activity.Activity
	resp, err := c.r.R().
		SetContext(ctx).
		SetResult(&activities).
		SetError(&errorBody{}).
		Get("/activities")
	if err != nil {
		return nil, errors.Wrap(err, "list activities")
	}

	if err := toAPIError(resp); err != nil {
		return nil, err
	}

	return activities, nil
}

// GetActivity fetches a single activity. A missing activity is an APIError
// for which IsNotFound is true.
func (c *Client) GetActivity(ctx context.Context, activityName string) (activity.Activity, error) {
	var a activity.Activity
	resp, err := c.r.R().
		SetContext(ctx).
		SetPathParam("name", activityName).
		SetResult(&a).
		SetError(&errorBody{}).
		Get("/activities/{name}")
	if err != nil {
		return activity.Activity{}, errors.Wrapf(err, "get activity %q", activityName)
	}

	if err := toAPIError(resp); err != nil {
		return activity.Activity{}, err
	}

	return a, nil
}

// Signup returns the server's confirmation message.
func (c *Client) Signup(ctx context.Context, activityName, email string) (string, error) {
	return c.rosterChange(ctx, "/activities/{name}/signup", activityName, email)
}

// Unregister returns the server's confirmation message.
func (c *Client) Unregister(ctx context.Context, activityName, email string) (string, error) {
	return c.rosterChange(ctx, "/activities/{name}/unregister", activityName, email)
}

func (c *Client) rosterChange(ctx context.Context, path, activityName, email string) (string, error) {
	resp, err := c.r.R().
		SetContext(ctx).
		SetPathParam("name", activityName).
		SetQueryParam("email", email).
		SetResult(&messageBody{}).
		SetError(&errorBody{}).
		Post(path)
	if err != nil {
		return "", errors.Wrapf(err, "request to %s for %q", path, activityName)
	}

	if err := toAPIError(resp); err != nil {
		return "", err
	}

	return resp.Result().(*messageBody).Message, nil
}

func toAPIError(resp *resty.Response) error {
	if !resp.IsError() {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode()}
	if body, ok := resp.Error().(*errorBody); ok && body.Detail != "" {
		apiErr.Detail = body.Detail
	} else {
		apiErr.Detail = http.StatusText(resp.StatusCode())
	}

	return apiErr
}
