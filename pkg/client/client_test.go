package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/mergington/activities/pkg/activity"
	"github.com/mergington/activities/pkg/webapi"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startTestServer(t *testing.T) *Client {
	registry, err := activity.NewRegistry(activity.DefaultActivities())
	require.NoError(t, err)

	e := echo.New()
	e.HTTPErrorHandler = webapi.HTTPErrorHandler
	controller := webapi.NewActivitiesController(registry)
	e.GET("/activities", controller.ListActivities)
	e.GET("/activities/:name", controller.GetActivity)
	e.POST("/activities/:name/signup", controller.Signup)
	e.POST("/activities/:name/unregister", controller.Unregister)

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	return New(server.URL)
}

func TestClient_ListActivities(t *testing.T) {
	c := startTestServer(t)

	activities, err := c.ListActivities(context.Background())
	require.NoError(t, err)
	require.Contains(t, activities, "Chess Club")
	assert.Equal(t, 12, activities["Chess Club"].MaxParticipants)
	assert.Len(t, activities["Chess Club"].Participants, 2)
}

func TestClient_GetActivity(t *testing.T) {
	c := startTestServer(t)
	ctx := context.Background()

	a, err := c.GetActivity(ctx, "Chess Club")
	require.NoError(t, err)
	assert.Equal(t, 12, a.MaxParticipants)
	assert.Contains(t, a.Participants, "michael@mergington.edu")

	_, err = c.GetActivity(ctx, "Nonexistent Activity")
	assert.True(t, IsNotFound(err))
}

func TestClient_SignupAndUnregister(t *testing.T) {
	c := startTestServer(t)
	ctx := context.Background()
	email := "integration@mergington.edu"

	msg, err := c.Signup(ctx, "Programming Class", email)
	require.NoError(t, err)
	assert.Contains(t, msg, "Signed up")

	activities, err := c.ListActivities(ctx)
	require.NoError(t, err)
	assert.Contains(t, activities["Programming Class"].Participants, email)

	_, err = c.Signup(ctx, "Programming Class", email)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Detail, "already signed up")

	msg, err = c.Unregister(ctx, "Programming Class", email)
	require.NoError(t, err)
	assert.Contains(t, msg, "Unregistered")

	activities, err = c.ListActivities(ctx)
	require.NoError(t, err)
	assert.NotContains(t, activities["Programming Class"].Participants, email)
}

func TestClient_Errors(t *testing.T) {
	c := startTestServer(t)
	ctx := context.Background()

	_, err := c.Signup(ctx, "Nonexistent Activity", "student@mergington.edu")
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "Activity not found")

	_, err = c.Unregister(ctx, "Chess Club", "")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, activity.DetailEmailRequired, apiErr.Detail)
	assert.False(t, IsNotFound(err))
}

func TestClient_ServerDown(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := New(url).ListActivities(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
