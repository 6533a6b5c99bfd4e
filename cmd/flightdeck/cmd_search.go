package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mmcdole/flightdeck/internal/search"
)

func (c *cli) newSearchCmd() *cobra.Command {
	var (
		kinds  []string
		cached bool
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy-search aircraft, waypoints, aerodromes and flights",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := parseKinds(kinds)
			if err != nil {
				return err
			}
			if !cached {
				if err := c.refreshAll(cmd.Context()); err != nil {
					return err
				}
			}

			results := c.app.search.FilterLocal(strings.Join(args, " "), filter)
			w := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(w, dimStyle.Render("No matches found"))
				return nil
			}
			for i, r := range results {
				if limit > 0 && i == limit {
					fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("... and %d more", len(results)-limit)))
					break
				}
				fmt.Fprintf(w, "%-10s %-8s %s\n", r.Kind, r.Item.GetID(), r.Title)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&kinds, "kind", nil, "restrict to aircraft, waypoint, aerodrome or flight")
	cmd.Flags().BoolVar(&cached, "cached", false, "search the local cache without contacting the API")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum results, 0 for all")
	return cmd
}

// refreshAll loads every searchable list in parallel
func (c *cli) refreshAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := c.app.aircraft.FetchAircraft(ctx)
		return err
	})
	g.Go(func() error {
		_, err := c.app.waypoints.FetchWaypoints(ctx)
		return err
	})
	for _, registered := range []bool{true, false} {
		g.Go(func() error {
			_, err := c.app.waypoints.FetchAerodromes(ctx, registered)
			return err
		})
	}
	g.Go(func() error {
		_, err := c.app.flights.FetchFlights(ctx)
		return err
	})
	return g.Wait()
}

func parseKinds(names []string) ([]search.Kind, error) {
	var out []search.Kind
	for _, n := range names {
		k := search.Kind(strings.ToLower(strings.TrimSpace(n)))
		switch k {
		case search.KindAircraft, search.KindWaypoint, search.KindAerodrome, search.KindFlight:
			out = append(out, k)
		default:
			return nil, fmt.Errorf("unknown kind %q", n)
		}
	}
	return out, nil
}
