package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmcdole/flightdeck/internal/adapter"
)

func (c *cli) newCacheCmd() *cobra.Command {
	cmd := standalone(&cobra.Command{
		Use:   "cache",
		Short: "Manage the local record cache",
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete every cached record for every server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(&c.o)
			if err != nil {
				return err
			}
			if err := adapter.ClearCache(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", cfg.Cache.Dir)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the cache and config locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(&c.o)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config: %s\ncache:  %s\n", adapter.ConfigDir(), cfg.Cache.Dir)
			return nil
		},
	})
	return cmd
}
