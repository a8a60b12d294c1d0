package cmd

import (
	"net/http"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mergington/activities/pkg/activity"
	"github.com/mergington/activities/pkg/clog"
	"github.com/mergington/activities/pkg/webapi"
)

type RouteDependencies struct {
	e          *echo.Echo
	registry   *activity.Registry
	staticDir  string
	logHandler *clog.Handler
}

func setupRoutes(deps RouteDependencies) {
	deps.e.HTTPErrorHandler = webapi.HTTPErrorHandler
	deps.e.Use(middleware.Recover())
	deps.e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			log.WithFields(log.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency,
			}).Info("request")
			return nil
		},
	}))

	activitiesController := webapi.NewActivitiesController(deps.registry)
	deps.e.GET("/activities", activitiesController.ListActivities)
	deps.e.GET("/activities/:name", activitiesController.GetActivity)
	deps.e.POST("/activities/:name/signup", activitiesController.Signup)
	deps.e.POST("/activities/:name/unregister", activitiesController.Unregister)

	g := deps.e.Group("/api")
	logController := webapi.NewLogController(currentLogLevel(), deps.logHandler)
	g.POST("/set-logging-level", logController.SetLogLevel)
	g.POST("/set-logging-output", logController.SetLogOutput)
	g.GET("/show-logging", logController.ShowCurrentLogging)

	if deps.staticDir != "" {
		deps.e.Static("/static", deps.staticDir)
		deps.e.GET("/", func(c echo.Context) error {
			return c.Redirect(http.StatusTemporaryRedirect, "/static/index.html")
		})
	}
}

func currentLogLevel() log.Level {
	if l, ok := log.Log.(*log.Logger); ok {
		return l.Level
	}

	return log.InfoLevel
}
