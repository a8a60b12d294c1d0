package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mergington/activities/pkg/activity"
	"github.com/mergington/activities/pkg/client"
	"github.com/mergington/activities/pkg/config"
	"github.com/spf13/cobra"
)

var email string

var listCmd = &cobra.Command{
	Use:   "list [activity...]",
	Short: "List activities and their participants",
	Long: `List activities and their participants from a running server. When
activity names are given only those activities are shown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		activities, err := fetchActivities(cmd.Context(), newClient(), args)
		if err != nil {
			return err
		}

		return printActivities(cmd.OutOrStdout(), activities, args)
	},
}

// fetchActivities lists every activity, or only the named ones when names
// are given.
func fetchActivities(ctx context.Context, api *client.Client, names []string) (map[string]activity.Activity, error) {
	if len(names) == 0 {
		return api.ListActivities(ctx)
	}

	activities := make(map[string]activity.Activity, len(names))
	for _, name := range names {
		a, err := api.GetActivity(ctx, name)
		switch {
		case client.IsNotFound(err):
			return nil, fmt.Errorf("no such activity %q", name)
		case err != nil:
			return nil, err
		}
		activities[name] = a
	}

	return activities, nil
}

var signupCmd = &cobra.Command{
	Use:   "signup <activity>",
	Short: "Sign a student up for an activity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRosterChange(cmd, args[0], newClient().Signup)
	},
}

var unregisterCmd = &cobra.Command{
	Use:   "unregister <activity>",
	Short: "Remove a student from an activity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRosterChange(cmd, args[0], newClient().Unregister)
	},
}

func init() {
	for _, c := range []*cobra.Command{signupCmd, unregisterCmd} {
		c.Flags().StringVarP(&email, "email", "e", "", "student email")
	}

	rootCmd.AddCommand(listCmd, signupCmd, unregisterCmd)
}

func newClient() *client.Client {
	url := apiURL
	if url == "" {
		url = config.MustLoadFromDotenv().GetKeyWithDefault(config.APIURLKey, config.DefaultAPIURL)
	}

	return client.New(url)
}

func runRosterChange(cmd *cobra.Command, activityName string, change func(ctx context.Context, activityName, email string) (string, error)) error {
	msg, err := change(cmd.Context(), activityName, email)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), msg)
	return err
}

func printActivities(w io.Writer, activities map[string]activity.Activity, only []string) error {
	names := only
	if len(names) == 0 {
		for name := range activities {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	for _, name := range names {
		a, ok := activities[name]
		if !ok {
			return fmt.Errorf("no such activity %q", name)
		}

		_, _ = fmt.Fprintf(w, "%s (%d/%d, %d spots left)\n", name, len(a.Participants), a.MaxParticipants, a.SpotsLeft())
		_, _ = fmt.Fprintf(w, "  %s\n  %s\n", a.Description, a.Schedule)
		if len(a.Participants) > 0 {
			_, _ = fmt.Fprintf(w, "  Participants: %s\n", strings.Join(a.Participants, ", "))
		}
	}

	return nil
}
