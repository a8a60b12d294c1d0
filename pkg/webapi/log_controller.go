package webapi

import (
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/mergington/activities/pkg/clog"
	"github.com/pkg/errors"
)

// LogController lets operators inspect and change the apex/log level and
// output of a running server.
type LogController struct {
	mu              sync.Mutex
	CurrentLogLevel string `json:"current_log_level"`
	CurrentLogFile  string `json:"current_log_file"`
	handler         *clog.Handler
}

// NewLogController reports startLevel and stdout until the first change.
// Output changes are applied to handler.
func NewLogController(startLevel log.Level, handler *clog.Handler) *LogController {
	return &LogController{
		CurrentLogLevel: startLevel.String(),
		CurrentLogFile:  "stdout",
		handler:         handler,
	}
}

func (c *LogController) SetLogLevel(ctx echo.Context) error {
	var req struct {
		LogLevel string `json:"log_level"`
	}

	if err := ctx.Bind(&req); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.setLoggingLevel(req.LogLevel); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	return ctx.JSON(http.StatusOK, c)
}

func (c *LogController) setLoggingLevel(logLevel string) error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return errors.Wrapf(err, "Invalid log level %q", logLevel)
	}

	log.SetLevel(level)
	c.CurrentLogLevel = level.String()
	log.Infof("Log level set to %s", c.CurrentLogLevel)

	return nil
}

// SetLogOutput switches log output to "stdout", "stderr" or a file path. The
// previous output is closed unless it is stdout or stderr.
func (c *LogController) SetLogOutput(ctx echo.Context) error {
	var req struct {
		LogOutput string `json:"log_output"`
	}

	if err := ctx.Bind(&req); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.setLoggingOutput(req.LogOutput); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	return ctx.JSON(http.StatusOK, c)
}

func (c *LogController) setLoggingOutput(logOutput string) error {
	var w io.Writer

	switch logOutput {
	case "":
		return errors.New("Log output is required")
	case "stdout":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		f, err := os.OpenFile(logOutput, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return errors.Wrapf(err, "Failed to open log output %s", logOutput)
		}
		w = f
	}

	c.handler.SetOutput(w)
	c.CurrentLogFile = logOutput

	return nil
}

func (c *LogController) ShowCurrentLogging(ctx echo.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return ctx.JSON(http.StatusOK, c)
}
