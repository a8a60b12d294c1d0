package webapi

import (
	"net/http"
	"net/url"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/mergington/activities/pkg/activity"
)

type ActivitiesController struct {
	registry *activity.Registry
}

func NewActivitiesController(registry *activity.Registry) *ActivitiesController {
	return &ActivitiesController{registry: registry}
}

// MessageResponse is the body of a successful signup or unregister.
type MessageResponse struct {
	Message string `json:"message"`
}

// ListActivities returns every activity keyed by name.
func (c *ActivitiesController) ListActivities(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, c.registry.List())
}

// GetActivity returns the activity named in the path.
func (c *ActivitiesController) GetActivity(ctx echo.Context) error {
	a, err := c.registry.Get(activityNameParam(ctx))
	if err != nil {
		return registryErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, a)
}

// Signup registers the email query parameter for the activity named in the path.
func (c *ActivitiesController) Signup(ctx echo.Context) error {
	name := activityNameParam(ctx)
	msg, err := c.registry.Signup(name, ctx.QueryParam("email"))
	if err != nil {
		return registryErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, MessageResponse{Message: msg})
}

// Unregister removes the email query parameter from the activity named in the path.
func (c *ActivitiesController) Unregister(ctx echo.Context) error {
	name := activityNameParam(ctx)
	msg, err := c.registry.Unregister(name, ctx.QueryParam("email"))
	if err != nil {
		return registryErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, MessageResponse{Message: msg})
}

// activityNameParam returns the ":name" path parameter as a registry key.
// Echo routes on URL.RawPath when the request carried escapes that Path
// cannot express (such as %2F), and the parameter is then still escaped.
// Otherwise the parameter is already decoded and is used as is.
func activityNameParam(ctx echo.Context) string {
	name := ctx.Param("name")
	if ctx.Request().URL.RawPath == "" {
		return name
	}

	if unescaped, err := url.PathUnescape(name); err == nil {
		return unescaped
	}

	return name
}

func registryErrorResponse(ctx echo.Context, err error) error {
	kind, ok := activity.KindOf(err)
	if !ok {
		log.Errorf("Unexpected registry error for %s %s: %s", ctx.Request().Method, ctx.Request().URL.Path, err)
		return errorResponse(ctx, http.StatusInternalServerError, "Internal server error")
	}

	return errorResponse(ctx, statusForKind(kind), err.Error())
}

func statusForKind(kind activity.Kind) int {
	switch kind {
	case activity.KindNotFound:
		return http.StatusNotFound
	case activity.KindValidation, activity.KindConflict, activity.KindCapacity:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
