package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmcdole/flightdeck/internal/domain"
	"github.com/mmcdole/flightdeck/internal/flight"
	"github.com/mmcdole/flightdeck/internal/mutation"
	"github.com/mmcdole/flightdeck/internal/table"
)

func (c *cli) newFlightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "flights",
		Aliases: []string{"fl"},
		Short:   "Plan flights and edit their routes",
	}

	var view viewFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List flights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := options(&view, c.app.cfg, flight.Columns())
			if err != nil {
				return err
			}
			rows, err := c.app.flights.FetchFlights(cmd.Context())
			if err != nil {
				return err
			}
			renderTable(cmd.OutOrStdout(), rows, opts)
			return nil
		},
	}
	view.register(list)

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a flight with its legs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			f, err := c.app.flights.FetchFlight(cmd.Context(), id)
			if err != nil {
				return err
			}
			printFlight(cmd, f)
			return nil
		},
	}

	var (
		data      domain.FlightData
		departure string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Plan a new flight",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := time.Parse(time.RFC3339, departure)
			if err != nil {
				return fmt.Errorf("invalid --departure-time %q: want RFC 3339, e.g. 2026-05-01T15:00:00Z", departure)
			}
			data.DepartureTime = t
			if err := domain.Validate(data); err != nil {
				return err
			}
			if _, err := c.app.flights.FetchFlights(cmd.Context()); err != nil {
				return err
			}
			_, err = c.app.flights.AddFlight(cmd.Context(), data)
			return err
		},
	}
	add.Flags().Int64Var(&data.AircraftID, "aircraft", 0, "id of the aircraft flown")
	add.Flags().StringVar(&data.DepartureCode, "from", "", "departure aerodrome code")
	add.Flags().StringVar(&data.ArrivalCode, "to", "", "arrival aerodrome code")
	add.Flags().StringVar(&departure, "departure-time", "", "departure time, RFC 3339")

	var (
		editData      domain.FlightData
		editDeparture string
	)
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the aircraft, route endpoints or departure time of a flight",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			rows, err := c.app.flights.FetchFlights(cmd.Context())
			if err != nil {
				return err
			}
			current, ok := mutation.Find(rows, id)
			if !ok {
				return domain.ErrNotFound
			}

			flags := cmd.Flags()
			data := domain.FlightData{
				AircraftID:    current.AircraftID,
				DepartureCode: current.DepartureCode,
				ArrivalCode:   current.ArrivalCode,
				DepartureTime: current.DepartureTime,
			}
			if flags.Changed("aircraft") {
				data.AircraftID = editData.AircraftID
			}
			if flags.Changed("from") {
				data.DepartureCode = editData.DepartureCode
			}
			if flags.Changed("to") {
				data.ArrivalCode = editData.ArrivalCode
			}
			if flags.Changed("departure-time") {
				t, err := time.Parse(time.RFC3339, editDeparture)
				if err != nil {
					return fmt.Errorf("invalid --departure-time %q: want RFC 3339, e.g. 2026-05-01T15:00:00Z", editDeparture)
				}
				data.DepartureTime = t
			}
			if err := domain.Validate(data); err != nil {
				return err
			}
			_, err = c.app.flights.EditFlight(cmd.Context(), id, data)
			return err
		},
	}
	edit.Flags().Int64Var(&editData.AircraftID, "aircraft", 0, "id of the aircraft flown")
	edit.Flags().StringVar(&editData.DepartureCode, "from", "", "departure aerodrome code")
	edit.Flags().StringVar(&editData.ArrivalCode, "to", "", "arrival aerodrome code")
	edit.Flags().StringVar(&editDeparture, "departure-time", "", "departure time, RFC 3339")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a flight",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := c.app.flights.FetchFlights(cmd.Context()); err != nil {
				return err
			}
			_, err = c.app.flights.DeleteFlight(cmd.Context(), id)
			return err
		},
	}

	var leg domain.LegData
	addLeg := &cobra.Command{
		Use:   "add-leg <flight-id>",
		Short: "Insert a waypoint into a flight's route",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := domain.Validate(leg); err != nil {
				return err
			}
			if _, err := c.app.flights.FetchFlight(cmd.Context(), id); err != nil {
				return err
			}
			f, err := c.app.flights.AddLeg(cmd.Context(), id, leg)
			if err != nil {
				return err
			}
			printFlight(cmd, f)
			return nil
		},
	}
	addLeg.Flags().IntVar(&leg.Sequence, "sequence", 1, "position of the new waypoint in the route")
	addLeg.Flags().StringVar(&leg.WaypointCode, "code", "", "waypoint code")
	addLeg.Flags().StringVar(&leg.Name, "name", "", "waypoint name")
	addLeg.Flags().Float64Var(&leg.Lat, "lat", 0, "latitude in decimal degrees")
	addLeg.Flags().Float64Var(&leg.Lon, "lon", 0, "longitude in decimal degrees")

	deleteLeg := &cobra.Command{
		Use:   "delete-leg <flight-id> <leg-id>",
		Short: "Remove a waypoint from a flight's route",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flightID, legID, err := parseIDPair(args)
			if err != nil {
				return err
			}
			if _, err := c.app.flights.FetchFlight(cmd.Context(), flightID); err != nil {
				return err
			}
			f, err := c.app.flights.DeleteLeg(cmd.Context(), flightID, legID)
			if err != nil {
				return err
			}
			printFlight(cmd, f)
			return nil
		},
	}

	cmd.AddCommand(list, show, add, edit, del, addLeg, deleteLeg)
	return cmd
}

func printFlight(cmd *cobra.Command, f domain.Flight) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s  %s  %.1f nm  %.0f min\n", f.Route(), f.GetDescription(), f.TotalDistanceNM, f.TotalTimeMin)
	renderTable(w, f.Legs, table.Options[domain.Leg]{
		Columns: flight.LegColumns(),
		Sort:    &table.Sort{Column: "sequence"},
	})
}
