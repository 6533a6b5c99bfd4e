package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmcdole/flightdeck/internal/adapter"
	"github.com/mmcdole/flightdeck/internal/api"
)

func (c *cli) newLoginCmd() *cobra.Command {
	return standalone(&cobra.Command{
		Use:   "login",
		Short: "Store an API token after checking it against the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(&c.o)
			if err != nil {
				return err
			}
			logger, closeLog, err := adapter.SetupLogger(&cfg.Logging)
			if err != nil {
				logger, closeLog = adapter.NullLogger(), func() error { return nil }
			}
			defer closeLog()

			flow := adapter.NewAuthFlow(logger, api.WithTimeout(cfg.API.Timeout))
			result, err := flow.Run(cmd.Context(), cfg.API.BaseURL)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			if err := adapter.SaveToken(result.BaseURL, result.Token); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration saved!")
			return nil
		},
	})
}

func (c *cli) newLogoutCmd() *cobra.Command {
	return standalone(&cobra.Command{
		Use:   "logout",
		Short: "Forget the stored API token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := adapter.ClearToken(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	})
}
