package webapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/mergington/activities/pkg/clog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestLogController_Level(t *testing.T) {
	controller := NewLogController(log.InfoLevel, clog.NewHandler(&bytes.Buffer{}))
	defer log.SetLevel(log.InfoLevel)

	ctx, rec := setupJSONContext(http.MethodGet, "/api/show-logging", "")
	require.NoError(t, controller.ShowCurrentLogging(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"current_log_level": "info", "current_log_file": "stdout"}`, rec.Body.String())

	ctx, rec = setupJSONContext(http.MethodPost, "/api/set-logging-level", `{"log_level": "debug"}`)
	require.NoError(t, controller.SetLogLevel(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"current_log_level":"debug"`)

	ctx, rec = setupJSONContext(http.MethodPost, "/api/set-logging-level", `{"log_level": "chatty"}`)
	require.NoError(t, controller.SetLogLevel(ctx))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid log level")
	assert.Equal(t, "debug", controller.CurrentLogLevel)
}

func TestLogController_Output(t *testing.T) {
	handler := clog.NewHandler(&bytes.Buffer{})
	logger := &log.Logger{Handler: handler, Level: log.InfoLevel}
	controller := NewLogController(log.InfoLevel, handler)
	defer handler.Close()

	first := filepath.Join(t.TempDir(), "first.log")
	ctx, rec := setupJSONContext(http.MethodPost, "/api/set-logging-output", `{"log_output": "`+first+`"}`)
	require.NoError(t, controller.SetLogOutput(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, first, controller.CurrentLogFile)

	logger.Info("to first file")

	second := filepath.Join(t.TempDir(), "second.log")
	ctx, rec = setupJSONContext(http.MethodPost, "/api/set-logging-output", `{"log_output": "`+second+`"}`)
	require.NoError(t, controller.SetLogOutput(ctx))
	require.Equal(t, http.StatusOK, rec.Code)

	logger.Info("to second file")

	firstContents, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Contains(t, string(firstContents), "to first file")
	assert.NotContains(t, string(firstContents), "to second file")

	secondContents, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Contains(t, string(secondContents), "to second file")

	t.Run("UnopenablePath", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "missing", "dir", "x.log")
		ctx, rec := setupJSONContext(http.MethodPost, "/api/set-logging-output", `{"log_output": "`+bad+`"}`)
		require.NoError(t, controller.SetLogOutput(ctx))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to open log output")
		assert.Equal(t, second, controller.CurrentLogFile)
	})

	t.Run("Empty", func(t *testing.T) {
		ctx, rec := setupJSONContext(http.MethodPost, "/api/set-logging-output", `{"log_output": ""}`)
		require.NoError(t, controller.SetLogOutput(ctx))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
