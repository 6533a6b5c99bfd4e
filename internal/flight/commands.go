// Package flight manages flights and the legs of their routes. Legs are
// computed server-side: every leg change returns the recomputed flight.
package flight

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmcdole/flightdeck/internal/api"
	"github.com/mmcdole/flightdeck/internal/domain"
	"github.com/mmcdole/flightdeck/internal/mutation"
)

const flightsPath = "/flight"

// Commands provides network operations that keep the cache in sync.
type Commands struct {
	flights *api.Client[domain.FlightData, domain.Flight]
	legs    *api.Client[domain.LegData, domain.Leg]

	env     mutation.Env
	fetcher *mutation.Fetcher
	logger  *slog.Logger
}

// NewCommands creates a new Commands instance.
func NewCommands(t *api.Transport, env mutation.Env) *Commands {
	if env.Logger == nil {
		env.Logger = slog.Default()
	}
	return &Commands{
		flights: api.NewClient[domain.FlightData, domain.Flight](t, flightsPath),
		legs:    api.NewClient[domain.LegData, domain.Leg](t, flightsPath),
		env:     env,
		fetcher: mutation.NewFetcher(env),
		logger:  env.Logger,
	}
}

// CancelRequests aborts every in-flight flight request
func (c *Commands) CancelRequests() {
	c.flights.CancelRequest()
	c.legs.CancelRequest()
}

func (c *Commands) FetchFlights(ctx context.Context) ([]domain.Flight, error) {
	list, err := mutation.Fetch(ctx, c.fetcher, ListKey(), func(ctx context.Context) ([]domain.Flight, error) {
		return c.flights.GetAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	c.logger.Debug("fetched flights", "count", len(list))
	return list, nil
}

func (c *Commands) FetchFlight(ctx context.Context, id domain.RecordID) (domain.Flight, error) {
	ext, err := id.Path()
	if err != nil {
		return domain.Flight{}, err
	}
	return mutation.Fetch(ctx, c.fetcher, DetailKey(id), func(ctx context.Context) (domain.Flight, error) {
		return c.flights.Get(ctx, ext)
	})
}

func (c *Commands) AddFlight(ctx context.Context, data domain.FlightData) (domain.Flight, error) {
	m := mutation.AddToList(
		"add flight",
		ListKey(),
		func(d domain.FlightData, pending domain.RecordID) domain.Flight {
			return d.Apply(domain.Flight{ID: pending})
		},
		func(ctx context.Context, d domain.FlightData) (domain.Flight, error) {
			return c.flights.Post(ctx, d)
		},
	)
	m.Overwrites = func(_ mutation.Draft[domain.FlightData], f domain.Flight) []mutation.Overwrite {
		return []mutation.Overwrite{{Key: DetailKey(f.ID), Value: f}}
	}
	m.Success = func(_ mutation.Draft[domain.FlightData], f domain.Flight) string {
		return fmt.Sprintf("Flight %s added", f.Route())
	}
	m.Failure = "Could not add flight"

	f, err := mutation.Run(ctx, c.env, m, mutation.NewDraft(data))
	if err != nil {
		return domain.Flight{}, err
	}
	c.logger.Info("added flight", "id", f.ID.String(), "route", f.Route())
	return f, nil
}

func (c *Commands) EditFlight(ctx context.Context, id domain.RecordID, data domain.FlightData) (domain.Flight, error) {
	ext, err := id.Path()
	if err != nil {
		return domain.Flight{}, err
	}

	m := mutation.EditInList(
		"edit flight",
		ListKey(),
		func(f domain.Flight, d domain.FlightData) domain.Flight { return d.Apply(f) },
		func(ctx context.Context, _ domain.RecordID, d domain.FlightData) (domain.Flight, error) {
			return c.flights.Edit(ctx, d, ext)
		},
	)
	m.Overwrites = func(_ mutation.Change[domain.FlightData], f domain.Flight) []mutation.Overwrite {
		return []mutation.Overwrite{{Key: DetailKey(id), Value: f}}
	}
	m.Success = func(_ mutation.Change[domain.FlightData], f domain.Flight) string {
		return fmt.Sprintf("Flight %s updated", f.Route())
	}
	m.Failure = "Could not update flight"

	return mutation.Run(ctx, c.env, m, mutation.Change[domain.FlightData]{ID: id, Data: data})
}

func (c *Commands) DeleteFlight(ctx context.Context, id domain.RecordID) (string, error) {
	ext, err := id.Path()
	if err != nil {
		return "", err
	}

	m := mutation.RemoveFromList[domain.Flight]("delete flight", ListKey(), func(ctx context.Context, _ domain.RecordID) (string, error) {
		return c.flights.Delete(ctx, ext)
	})
	m.Cascade = func(id domain.RecordID, _ string) []domain.CacheKey {
		return []domain.CacheKey{DetailKey(id)}
	}
	m.Success = func(domain.RecordID, string) string {
		return "Flight deleted"
	}
	m.Failure = "Could not delete flight"

	name, err := mutation.Run(ctx, c.env, m, id)
	if err != nil {
		return "", err
	}
	c.logger.Info("deleted flight", "id", id.String())
	return name, nil
}

// AddLeg inserts a waypoint into a flight's route. The placeholder leg is
// shown until the server answers with the recomputed flight, which then
// replaces the cached flight wholesale.
func (c *Commands) AddLeg(ctx context.Context, flightID domain.RecordID, data domain.LegData) (domain.Flight, error) {
	ext, err := flightID.Path()
	if err != nil {
		return domain.Flight{}, err
	}

	m := mutation.Mutation[domain.Flight, mutation.Draft[domain.LegData], domain.Flight]{
		Name: "add leg",
		Key:  DetailKey(flightID),
		Optimistic: func(current domain.Flight, in mutation.Draft[domain.LegData]) domain.Flight {
			return insertLeg(current, in.Data, in.Pending)
		},
		Send: func(ctx context.Context, in mutation.Draft[domain.LegData]) (domain.Flight, error) {
			return api.PostReturning[domain.LegData, domain.Leg, domain.Flight](ctx, c.legs, in.Data, ext, "leg")
		},
		Overwrites: overwriteFlight[mutation.Draft[domain.LegData]](flightID),
		Cascade:    cascadeList[mutation.Draft[domain.LegData]],
		Success: func(in mutation.Draft[domain.LegData], _ domain.Flight) string {
			return fmt.Sprintf("Waypoint %s added to route", in.Data.WaypointCode)
		},
		Failure: "Could not add waypoint to route",
	}

	return mutation.Run(ctx, c.env, m, mutation.NewDraft(data))
}

// DeleteLeg removes a leg from a flight's route
func (c *Commands) DeleteLeg(ctx context.Context, flightID, legID domain.RecordID) (domain.Flight, error) {
	if _, err := flightID.Path(); err != nil {
		return domain.Flight{}, err
	}
	ext, err := legID.Path()
	if err != nil {
		return domain.Flight{}, err
	}

	m := mutation.Mutation[domain.Flight, domain.RecordID, domain.Flight]{
		Name: "delete leg",
		Key:  DetailKey(flightID),
		Optimistic: func(current domain.Flight, id domain.RecordID) domain.Flight {
			return removeLeg(current, id)
		},
		Send: func(ctx context.Context, _ domain.RecordID) (domain.Flight, error) {
			return api.DeleteReturning[domain.LegData, domain.Leg, domain.Flight](ctx, c.legs, "leg"+ext)
		},
		Overwrites: overwriteFlight[domain.RecordID](flightID),
		Cascade:    cascadeList[domain.RecordID],
		Success: func(domain.RecordID, domain.Flight) string {
			return "Waypoint removed from route"
		},
		Failure: "Could not remove waypoint from route",
	}

	return mutation.Run(ctx, c.env, m, legID)
}

// overwriteFlight replaces the cached flight with the recomputed one
func overwriteFlight[I any](id domain.RecordID) func(I, domain.Flight) []mutation.Overwrite {
	return func(_ I, f domain.Flight) []mutation.Overwrite {
		return []mutation.Overwrite{{Key: DetailKey(id), Value: f}}
	}
}

// cascadeList invalidates the flights list, whose totals derive from legs
func cascadeList[I any](I, domain.Flight) []domain.CacheKey {
	return []domain.CacheKey{ListKey()}
}
