package main

import (
	"github.com/spf13/cobra"

	"github.com/mmcdole/flightdeck/internal/domain"
	"github.com/mmcdole/flightdeck/internal/mutation"
	"github.com/mmcdole/flightdeck/internal/waypoint"
)

func (c *cli) newWaypointsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "waypoints",
		Aliases: []string{"wpt"},
		Short:   "Manage user waypoints",
	}

	var view viewFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List user waypoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := options(&view, c.app.cfg, waypoint.Columns())
			if err != nil {
				return err
			}
			rows, err := c.app.waypoints.FetchWaypoints(cmd.Context())
			if err != nil {
				return err
			}
			renderTable(cmd.OutOrStdout(), rows, opts)
			return nil
		},
	}
	view.register(list)

	var addData domain.WaypointData
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a user waypoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := domain.Validate(addData); err != nil {
				return err
			}
			if _, err := c.app.waypoints.FetchWaypoints(cmd.Context()); err != nil {
				return err
			}
			_, err := c.app.waypoints.AddWaypoint(cmd.Context(), addData)
			return err
		},
	}
	registerWaypointFlags(add, &addData)

	var editData domain.WaypointData
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a user waypoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			rows, err := c.app.waypoints.FetchWaypoints(cmd.Context())
			if err != nil {
				return err
			}
			current, ok := mutation.Find(rows, id)
			if !ok {
				return domain.ErrNotFound
			}
			data := mergeWaypoint(cmd, editData, current)
			if err := domain.Validate(data); err != nil {
				return err
			}
			_, err = c.app.waypoints.EditWaypoint(cmd.Context(), id, data)
			return err
		},
	}
	registerWaypointFlags(edit, &editData)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user waypoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := c.app.waypoints.FetchWaypoints(cmd.Context()); err != nil {
				return err
			}
			_, err = c.app.waypoints.DeleteWaypoint(cmd.Context(), id)
			return err
		},
	}

	cmd.AddCommand(list, add, edit, del)
	return cmd
}

func registerWaypointFlags(cmd *cobra.Command, data *domain.WaypointData) {
	flags := cmd.Flags()
	flags.StringVar(&data.Code, "code", "", "identifier, e.g. BOOTH")
	flags.StringVar(&data.Name, "name", "", "descriptive name")
	flags.Float64Var(&data.Lat, "lat", 0, "latitude in decimal degrees")
	flags.Float64Var(&data.Lon, "lon", 0, "longitude in decimal degrees")
	flags.Float64Var(&data.MagneticVariation, "magvar", 0, "magnetic variation in degrees")
}

// mergeWaypoint writes the flags the user set over the current waypoint
func mergeWaypoint(cmd *cobra.Command, set domain.WaypointData, current domain.Waypoint) domain.WaypointData {
	data := domain.WaypointData{
		Code:              current.Code,
		Name:              current.Name,
		Lat:               current.Lat,
		Lon:               current.Lon,
		MagneticVariation: current.MagneticVariation,
	}
	changed := cmd.Flags().Changed
	if changed("code") {
		data.Code = set.Code
	}
	if changed("name") {
		data.Name = set.Name
	}
	if changed("lat") {
		data.Lat = set.Lat
	}
	if changed("lon") {
		data.Lon = set.Lon
	}
	if changed("magvar") {
		data.MagneticVariation = set.MagneticVariation
	}
	return data
}

func (c *cli) newAerodromesCmd() *cobra.Command {
	var (
		view    viewFlags
		user    bool
		refresh bool
	)
	cmd := &cobra.Command{
		Use:     "aerodromes",
		Aliases: []string{"ad"},
		Short:   "List registered aerodromes, or your own with --user",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := options(&view, c.app.cfg, waypoint.AerodromeColumns())
			if err != nil {
				return err
			}
			registered := !user
			if refresh {
				c.app.cache.Invalidate(waypoint.AerodromesKey(registered))
			}
			rows, err := c.app.waypoints.FetchAerodromes(cmd.Context(), registered)
			if err != nil {
				return err
			}
			renderTable(cmd.OutOrStdout(), rows, opts)
			return nil
		},
	}
	view.register(cmd)
	cmd.Flags().BoolVar(&user, "user", false, "list user-defined aerodromes")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore the cached list")
	return cmd
}
