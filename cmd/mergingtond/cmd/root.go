package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/mergington/activities/pkg/activity"
	"github.com/mergington/activities/pkg/clog"
	"github.com/mergington/activities/pkg/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var apiURL string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mergingtond",
	Short: "Run the Mergington High School activities API server",
	Long: `Run the Mergington High School activities API server. The server keeps
activity rosters in memory; they are reset every time it starts.

The list, signup and unregister subcommands talk to a running server.`,
	Run: func(cmd *cobra.Command, args []string) {
		c := config.MustLoadFromDotenv()
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := Run(ctx, c); err != nil {
			log.Fatalf("mergingtond: %s", err)
		}
	},
}

// Run serves the API until ctx is cancelled.
func Run(ctx context.Context, c config.Configer) error {
	logHandler, err := clog.Setup(os.Stdout, c.GetKeyWithDefault(config.LogLevelKey, config.DefaultLogLevel))
	if err != nil {
		return errors.Wrapf(err, "invalid %s", config.LogLevelKey)
	}
	defer logHandler.Close()

	registry, err := loadRegistry(c.GetKey(config.SeedFileKey))
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	setupRoutes(RouteDependencies{
		e:          e,
		registry:   registry,
		staticDir:  c.GetKey(config.StaticDirKey),
		logHandler: logHandler,
	})

	address := c.GetKey(config.HostKey) + ":" + c.GetKeyWithDefault(config.PortKey, config.DefaultPort)
	log.Infof("Serving %d activities on %s", len(registry.Names()), address)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(address)
	}()

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "unable to start server")
	case <-ctx.Done():
	}

	log.Infof("Shutting down server on %s", address)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return e.Shutdown(shutdownCtx)
}

func loadRegistry(seedFile string) (*activity.Registry, error) {
	seed := activity.DefaultActivities()
	if seedFile != "" {
		var err error
		if seed, err = activity.LoadSeedFile(seedFile); err != nil {
			return nil, err
		}
		log.Infof("Loaded %d activities from %s", len(seed), seedFile)
	}

	registry, err := activity.NewRegistry(seed)
	if err != nil {
		return nil, errors.Wrap(err, "invalid activity seed")
	}

	return registry, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "server url for client commands (default $MERGINGTON_API_URL or "+config.DefaultAPIURL+")")
}
