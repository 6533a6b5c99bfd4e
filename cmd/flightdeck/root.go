package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mmcdole/flightdeck/internal/notify"
)

var errNotLoggedIn = errors.New("not logged in: run `flightdeck login` first")

// cli is the command tree plus the session its commands share
type cli struct {
	root *cobra.Command
	o    overrides
	app  *app
}

func newCLI() *cli {
	c := &cli{}
	c.root = &cobra.Command{
		Use:           "flightdeck",
		Short:         "Plan flights, aircraft and waypoints from the terminal",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if isStandalone(cmd) {
				return nil
			}
			cfg, err := loadConfig(&c.o)
			if err != nil {
				return err
			}
			if !cfg.IsConfigured() {
				return errNotLoggedIn
			}
			c.app, err = newApp(cfg, cmd.OutOrStdout(), cmd.Name() == "browse")
			return err
		},
	}

	flags := c.root.PersistentFlags()
	flags.StringVar(&c.o.baseURL, "base-url", "", "API base URL (overrides config)")
	flags.StringVar(&c.o.token, "token", "", "API bearer token (overrides config)")
	flags.BoolVar(&c.o.memory, "memory", false, "keep the cache in memory only")
	flags.StringVar(&c.o.logLevel, "log-level", "", "log level: DEBUG, INFO, WARN, ERROR")

	c.root.AddCommand(
		c.newLoginCmd(),
		c.newLogoutCmd(),
		c.newAircraftCmd(),
		c.newWaypointsCmd(),
		c.newAerodromesCmd(),
		c.newFlightsCmd(),
		c.newSearchCmd(),
		c.newBrowseCmd(),
		c.newCacheCmd(),
	)
	return c
}

// errorShown reports whether the last command already notified a failure
func (c *cli) errorShown() bool {
	return c.app != nil && len(c.app.shown.Messages(notify.LevelError)) > 0
}

// Close releases the session opened by the last command, if any
func (c *cli) Close() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}

func standalone(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationStandalone] = "true"
	return cmd
}
