package main

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmcdole/flightdeck/internal/aircraft"
	"github.com/mmcdole/flightdeck/internal/domain"
	"github.com/mmcdole/flightdeck/internal/mutation"
	"github.com/mmcdole/flightdeck/internal/table"
)

func (c *cli) newAircraftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "aircraft",
		Aliases: []string{"ac"},
		Short:   "Manage aircraft and their performance profiles",
	}
	cmd.AddCommand(
		c.newAircraftListCmd(),
		c.newAircraftShowCmd(),
		c.newAircraftAddCmd(),
		c.newAircraftEditCmd(),
		c.newAircraftDeleteCmd(),
		c.newProfilesCmd(),
		c.newWeightBalanceCmd(),
	)
	return cmd
}

func (c *cli) newAircraftListCmd() *cobra.Command {
	var view viewFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List aircraft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := options(&view, c.app.cfg, aircraft.Columns())
			if err != nil {
				return err
			}
			rows, err := c.app.aircraft.FetchAircraft(cmd.Context())
			if err != nil {
				return err
			}
			renderTable(cmd.OutOrStdout(), rows, opts)
			return nil
		},
	}
	view.register(cmd)
	return cmd
}

func (c *cli) newAircraftShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one aircraft with its performance profiles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := c.app.aircraft.FetchAircraftByID(cmd.Context(), id)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s  %s %s (%s)\n", a.Registration, a.Make, a.Model, a.AbbreviatedModel)
			renderTable(w, a.Profiles, table.Options[domain.PerformanceProfile]{Columns: aircraft.ProfileColumns()})
			return nil
		},
	}
}

// aircraftFlags binds the aircraft payload fields
type aircraftFlags struct {
	data domain.AircraftData
}

func (f *aircraftFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.data.Registration, "registration", "", "registration, e.g. C-GABC")
	flags.StringVar(&f.data.Make, "make", "", "manufacturer")
	flags.StringVar(&f.data.Model, "model", "", "model")
	flags.StringVar(&f.data.AbbreviatedModel, "abbreviated-model", "", "short model name, e.g. C172")
}

// merge writes the flags the user set over current
func (f *aircraftFlags) merge(cmd *cobra.Command, current domain.AircraftData) domain.AircraftData {
	changed := cmd.Flags().Changed
	if changed("registration") {
		current.Registration = f.data.Registration
	}
	if changed("make") {
		current.Make = f.data.Make
	}
	if changed("model") {
		current.Model = f.data.Model
	}
	if changed("abbreviated-model") {
		current.AbbreviatedModel = f.data.AbbreviatedModel
	}
	return current
}

func (c *cli) newAircraftAddCmd() *cobra.Command {
	var f aircraftFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an aircraft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := domain.Validate(f.data); err != nil {
				return err
			}
			_, err := c.app.aircraft.AddAircraft(cmd.Context(), f.data)
			return err
		},
	}
	f.register(cmd)
	return cmd
}

func (c *cli) newAircraftEditCmd() *cobra.Command {
	var f aircraftFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an aircraft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := c.app.aircraft.FetchAircraftByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			data := f.merge(cmd, domain.AircraftData{
				Registration:     current.Registration,
				Make:             current.Make,
				Model:            current.Model,
				AbbreviatedModel: current.AbbreviatedModel,
			})
			if err := domain.Validate(data); err != nil {
				return err
			}
			_, err = c.app.aircraft.EditAircraft(cmd.Context(), id, data)
			return err
		},
	}
	f.register(cmd)
	return cmd
}

func (c *cli) newAircraftDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an aircraft with its profiles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := c.app.aircraft.FetchAircraft(cmd.Context()); err != nil {
				return err
			}
			_, err = c.app.aircraft.DeleteAircraft(cmd.Context(), id)
			return err
		},
	}
}

// Performance profiles

func (c *cli) newProfilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Manage the performance profiles of an aircraft",
	}

	var view viewFlags
	list := &cobra.Command{
		Use:   "list <aircraft-id>",
		Short: "List performance profiles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			aircraftID, err := parseID(args[0])
			if err != nil {
				return err
			}
			opts, err := options(&view, c.app.cfg, aircraft.ProfileColumns())
			if err != nil {
				return err
			}
			profiles, err := c.app.aircraft.FetchProfiles(cmd.Context(), aircraftID)
			if err != nil {
				return err
			}
			renderTable(cmd.OutOrStdout(), profiles, opts)
			return nil
		},
	}
	view.register(list)

	var (
		name      string
		fromModel int64
	)
	add := &cobra.Command{
		Use:   "add <aircraft-id>",
		Short: "Add a performance profile, optionally copied from a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			aircraftID, err := parseID(args[0])
			if err != nil {
				return err
			}
			data := domain.PerformanceProfileData{Name: name}
			if err := domain.Validate(data); err != nil {
				return err
			}
			if err := c.ensureProfiles(cmd, aircraftID); err != nil {
				return err
			}
			if fromModel > 0 {
				_, err = c.app.aircraft.AddProfileFromModel(cmd.Context(), aircraftID, domain.Saved(fromModel), data)
			} else {
				_, err = c.app.aircraft.AddProfile(cmd.Context(), aircraftID, data)
			}
			return err
		},
	}
	add.Flags().StringVar(&name, "name", "", "profile name")
	add.Flags().Int64Var(&fromModel, "from-model", 0, "copy the performance data of this model profile")

	var newName string
	rename := &cobra.Command{
		Use:   "rename <aircraft-id> <profile-id>",
		Short: "Rename a performance profile",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			aircraftID, profileID, err := parseIDPair(args)
			if err != nil {
				return err
			}
			profiles, err := c.app.aircraft.FetchProfiles(cmd.Context(), aircraftID)
			if err != nil {
				return err
			}
			current, ok := mutation.Find(profiles, profileID)
			if !ok {
				return fmt.Errorf("profile %s: %w", profileID, domain.ErrNotFound)
			}
			data := domain.PerformanceProfileData{Name: newName, Preferred: current.Preferred}
			if err := domain.Validate(data); err != nil {
				return err
			}
			_, err = c.app.aircraft.EditProfile(cmd.Context(), aircraftID, profileID, data)
			return err
		},
	}
	rename.Flags().StringVar(&newName, "name", "", "new profile name")

	del := &cobra.Command{
		Use:   "delete <aircraft-id> <profile-id>",
		Short: "Delete a performance profile",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			aircraftID, profileID, err := parseIDPair(args)
			if err != nil {
				return err
			}
			if err := c.ensureProfiles(cmd, aircraftID); err != nil {
				return err
			}
			_, err = c.app.aircraft.DeleteProfile(cmd.Context(), aircraftID, profileID)
			return err
		},
	}

	prefer := &cobra.Command{
		Use:   "prefer <aircraft-id> <profile-id>",
		Short: "Make a profile the aircraft's preferred one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			aircraftID, profileID, err := parseIDPair(args)
			if err != nil {
				return err
			}
			_, err = c.app.aircraft.SelectPreferredProfile(cmd.Context(), aircraftID, profileID)
			return err
		},
	}

	cmd.AddCommand(list, add, rename, del, prefer)
	return cmd
}

// ensureProfiles loads the profile list so optimistic changes have an entry
// to patch
func (c *cli) ensureProfiles(cmd *cobra.Command, aircraftID domain.RecordID) error {
	_, err := c.app.aircraft.FetchProfiles(cmd.Context(), aircraftID)
	return err
}

// Weight and balance

func (c *cli) newWeightBalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "weight-balance",
		Aliases: []string{"wb"},
		Short:   "Manage the weight-and-balance envelopes of a performance profile",
	}

	list := &cobra.Command{
		Use:   "list <aircraft-id> <profile-id>",
		Short: "List weight-and-balance profiles",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			aircraftID, profileID, err := parseIDPair(args)
			if err != nil {
				return err
			}
			rows, err := c.app.aircraft.FetchWeightBalance(cmd.Context(), aircraftID, profileID)
			if err != nil {
				return err
			}
			renderTable(cmd.OutOrStdout(), rows, table.Options[domain.WeightBalanceProfile]{Columns: weightBalanceColumns()})
			return nil
		},
	}

	var (
		data   domain.WeightBalanceData
		limits []string
	)
	add := &cobra.Command{
		Use:   "add <aircraft-id> <profile-id>",
		Short: "Add a weight-and-balance profile",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			aircraftID, profileID, err := parseIDPair(args)
			if err != nil {
				return err
			}
			data.Limits, err = parseLimits(limits)
			if err != nil {
				return err
			}
			if err := domain.Validate(data); err != nil {
				return err
			}
			if _, err := c.app.aircraft.FetchWeightBalance(cmd.Context(), aircraftID, profileID); err != nil {
				return err
			}
			_, err = c.app.aircraft.AddWeightBalance(cmd.Context(), aircraftID, profileID, data)
			return err
		},
	}
	add.Flags().StringVar(&data.Name, "name", "", "envelope name, e.g. Normal")
	add.Flags().Float64Var(&data.MaxTakeoffWeightLb, "max-takeoff", 0, "maximum takeoff weight in lb")
	add.Flags().StringArrayVar(&limits, "limit", nil, "envelope edge as from_cg,from_lb,to_cg,to_lb; repeat per edge")

	var (
		editData   domain.WeightBalanceData
		editLimits []string
	)
	edit := &cobra.Command{
		Use:   "edit <aircraft-id> <profile-id> <id>",
		Short: "Change a weight-and-balance profile",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			aircraftID, profileID, err := parseIDPair(args[:2])
			if err != nil {
				return err
			}
			id, err := parseID(args[2])
			if err != nil {
				return err
			}
			rows, err := c.app.aircraft.FetchWeightBalance(cmd.Context(), aircraftID, profileID)
			if err != nil {
				return err
			}
			current, ok := mutation.Find(rows, id)
			if !ok {
				return domain.ErrNotFound
			}

			flags := cmd.Flags()
			data := domain.WeightBalanceData{
				Name:               current.Name,
				MaxTakeoffWeightLb: current.MaxTakeoffWeightLb,
				Limits:             current.Limits,
			}
			if flags.Changed("name") {
				data.Name = editData.Name
			}
			if flags.Changed("max-takeoff") {
				data.MaxTakeoffWeightLb = editData.MaxTakeoffWeightLb
			}
			if flags.Changed("limit") {
				data.Limits, err = parseLimits(editLimits)
				if err != nil {
					return err
				}
			}
			if err := domain.Validate(data); err != nil {
				return err
			}
			_, err = c.app.aircraft.EditWeightBalance(cmd.Context(), aircraftID, profileID, id, data)
			return err
		},
	}
	edit.Flags().StringVar(&editData.Name, "name", "", "envelope name")
	edit.Flags().Float64Var(&editData.MaxTakeoffWeightLb, "max-takeoff", 0, "maximum takeoff weight in lb")
	edit.Flags().StringArrayVar(&editLimits, "limit", nil, "replacement envelope edges as from_cg,from_lb,to_cg,to_lb")

	del := &cobra.Command{
		Use:   "delete <aircraft-id> <profile-id> <id>",
		Short: "Delete a weight-and-balance profile",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			aircraftID, profileID, err := parseIDPair(args[:2])
			if err != nil {
				return err
			}
			id, err := parseID(args[2])
			if err != nil {
				return err
			}
			if _, err := c.app.aircraft.FetchWeightBalance(cmd.Context(), aircraftID, profileID); err != nil {
				return err
			}
			_, err = c.app.aircraft.DeleteWeightBalance(cmd.Context(), aircraftID, profileID, id)
			return err
		},
	}

	cmd.AddCommand(list, add, edit, del)
	return cmd
}

func weightBalanceColumns() []table.Column[domain.WeightBalanceProfile] {
	return []table.Column[domain.WeightBalanceProfile]{
		{
			Key:     "id",
			Title:   "ID",
			Value:   func(w domain.WeightBalanceProfile) string { return w.ID.String() },
			Compare: func(a, b domain.WeightBalanceProfile) int { return a.ID.Compare(b.ID) },
		},
		{Key: "name", Title: "Name", Value: func(w domain.WeightBalanceProfile) string { return w.Name }},
		{
			Key:   "mtow",
			Title: "MTOW (lb)",
			Value: func(w domain.WeightBalanceProfile) string { return fmt.Sprintf("%.0f", w.MaxTakeoffWeightLb) },
			Compare: func(a, b domain.WeightBalanceProfile) int {
				return cmp.Compare(a.MaxTakeoffWeightLb, b.MaxTakeoffWeightLb)
			},
		},
		{
			Key:   "limits",
			Title: "Edges",
			Value: func(w domain.WeightBalanceProfile) string { return strconv.Itoa(len(w.Limits)) },
			Compare: func(a, b domain.WeightBalanceProfile) int {
				return cmp.Compare(len(a.Limits), len(b.Limits))
			},
		},
	}
}

// parseLimits reads "from_cg,from_lb,to_cg,to_lb" edges
func parseLimits(edges []string) ([]domain.WeightBalanceLimit, error) {
	out := make([]domain.WeightBalanceLimit, 0, len(edges))
	for _, s := range edges {
		parts := strings.Split(s, ",")
		if len(parts) != 4 {
			return nil, fmt.Errorf("invalid limit %q: want from_cg,from_lb,to_cg,to_lb", s)
		}
		var v [4]float64
		for i, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid limit %q: %w", s, err)
			}
			v[i] = f
		}
		out = append(out, domain.WeightBalanceLimit{FromCGIn: v[0], FromWeightLb: v[1], ToCGIn: v[2], ToWeightLb: v[3]})
	}
	return out, nil
}

func parseIDPair(args []string) (domain.RecordID, domain.RecordID, error) {
	first, err := parseID(args[0])
	if err != nil {
		return domain.RecordID{}, domain.RecordID{}, err
	}
	second, err := parseID(args[1])
	if err != nil {
		return domain.RecordID{}, domain.RecordID{}, err
	}
	return first, second, nil
}
