package webapi

import (
	"fmt"
	"net/http"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func errorResponse(ctx echo.Context, httpError int, msg string) error {
	return ctx.JSON(httpError, ErrorResponse{Detail: msg})
}

// HTTPErrorHandler renders errors that escape a handler, such as unknown
// routes or bad bind input, in the same shape the controllers use.
func HTTPErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	detail := http.StatusText(status)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		detail = fmt.Sprintf("%v", he.Message)
	} else {
		log.Errorf("Unhandled error for %s %s: %s", ctx.Request().Method, ctx.Request().URL.Path, err)
	}

	var respErr error
	if ctx.Request().Method == http.MethodHead {
		respErr = ctx.NoContent(status)
	} else {
		respErr = errorResponse(ctx, status, detail)
	}

	if respErr != nil {
		log.Errorf("Unable to write error response: %s", respErr)
	}
}
