package cmd

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/mergington/activities/pkg/activity"
	"github.com/mergington/activities/pkg/client"
	"github.com/mergington/activities/pkg/clog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintActivities(t *testing.T) {
	activities := activity.DefaultActivities()

	var buf bytes.Buffer
	require.NoError(t, printActivities(&buf, activities, []string{"Chess Club"}))
	out := buf.String()
	assert.Contains(t, out, "Chess Club (2/12, 10 spots left)")
	assert.Contains(t, out, "michael@mergington.edu, daniel@mergington.edu")
	assert.NotContains(t, out, "Art Club")

	buf.Reset()
	require.NoError(t, printActivities(&buf, activities, nil))
	assert.Contains(t, buf.String(), "Art Club")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Art Club")), bytes.Index(buf.Bytes(), []byte("Chess Club")))

	assert.Error(t, printActivities(&buf, activities, []string{"Nonexistent Activity"}))
}

func TestLoadRegistry(t *testing.T) {
	r, err := loadRegistry("")
	require.NoError(t, err)
	assert.Contains(t, r.Names(), "Chess Club")

	_, err = loadRegistry("/nonexistent/seed.yaml")
	assert.Error(t, err)
}

func TestFetchActivities(t *testing.T) {
	registry, err := activity.NewRegistry(activity.DefaultActivities())
	require.NoError(t, err)

	e := echo.New()
	setupRoutes(RouteDependencies{e: e, registry: registry, logHandler: clog.NewHandler(os.Stdout)})
	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	api := client.New(server.URL)
	ctx := context.Background()

	all, err := fetchActivities(ctx, api, nil)
	require.NoError(t, err)
	assert.Len(t, all, len(registry.Names()))

	some, err := fetchActivities(ctx, api, []string{"Chess Club", "Art Club"})
	require.NoError(t, err)
	assert.Len(t, some, 2)
	assert.Equal(t, 12, some["Chess Club"].MaxParticipants)

	_, err = fetchActivities(ctx, api, []string{"Chess Club", "Nonexistent Activity"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no such activity "Nonexistent Activity"`)
}
