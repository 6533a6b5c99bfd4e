// Package waypoint manages user waypoints and reads aerodromes.
package waypoint

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmcdole/flightdeck/internal/api"
	"github.com/mmcdole/flightdeck/internal/domain"
	"github.com/mmcdole/flightdeck/internal/mutation"
)

const (
	waypointsPath  = "/waypoint/user"
	aerodromesPath = "/waypoint/aerodrome"
)

// Commands provides network operations that keep the cache in sync.
type Commands struct {
	waypoints  *api.Client[domain.WaypointData, domain.Waypoint]
	aerodromes *api.Client[struct{}, domain.Aerodrome]

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
		waypoints:  api.NewClient[domain.WaypointData, domain.Waypoint](t, waypointsPath),
		aerodromes: api.NewClient[struct{}, domain.Aerodrome](t, aerodromesPath),
		env:        env,
		fetcher:    mutation.NewFetcher(env),
		logger:     env.Logger,
	}
}

// CancelRequests aborts every in-flight waypoint request
func (c *Commands) CancelRequests() {
	c.waypoints.CancelRequest()
	c.aerodromes.CancelRequest()
}

func (c *Commands) FetchWaypoints(ctx context.Context) ([]domain.Waypoint, error) {
	list, err := mutation.Fetch(ctx, c.fetcher, ListKey(), func(ctx context.Context) ([]domain.Waypoint, error) {
		return c.waypoints.GetAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	c.logger.Debug("fetched waypoints", "count", len(list))
	return list, nil
}

// FetchAerodromes returns registered aerodromes, or the user's own when
// registered is false. Aerodromes rarely change, so a cached list is
// returned without a request.
func (c *Commands) FetchAerodromes(ctx context.Context, registered bool) ([]domain.Aerodrome, error) {
	ext := "user"
	if registered {
		ext = "registered"
	}
	return mutation.Cached(ctx, c.fetcher, AerodromesKey(registered), func(ctx context.Context) ([]domain.Aerodrome, error) {
		return c.aerodromes.GetAll(ctx, ext)
	})
}

func (c *Commands) AddWaypoint(ctx context.Context, data domain.WaypointData) (domain.Waypoint, error) {
	m := mutation.AddToList(
		"add waypoint",
		ListKey(),
		func(d domain.WaypointData, pending domain.RecordID) domain.Waypoint {
			return d.Apply(domain.Waypoint{ID: pending})
		},
		func(ctx context.Context, d domain.WaypointData) (domain.Waypoint, error) {
			return c.waypoints.Post(ctx, d)
		},
	)
	m.Success = func(_ mutation.Draft[domain.WaypointData], w domain.Waypoint) string {
		return fmt.Sprintf("Waypoint %s added", w.Code)
	}
	m.Failure = "Could not add waypoint"

	w, err := mutation.Run(ctx, c.env, m, mutation.NewDraft(data))
	if err != nil {
		return domain.Waypoint{}, err
	}
	c.logger.Info("added waypoint", "id", w.ID.String(), "code", w.Code)
	return w, nil
}

func (c *Commands) EditWaypoint(ctx context.Context, id domain.RecordID, data domain.WaypointData) (domain.Waypoint, error) {
	ext, err := id.Path()
	if err != nil {
		return domain.Waypoint{}, err
	}

	m := mutation.EditInList(
		"edit waypoint",
		ListKey(),
		func(w domain.Waypoint, d domain.WaypointData) domain.Waypoint { return d.Apply(w) },
		func(ctx context.Context, _ domain.RecordID, d domain.WaypointData) (domain.Waypoint, error) {
			return c.waypoints.Edit(ctx, d, ext)
		},
	)
	m.Success = func(_ mutation.Change[domain.WaypointData], w domain.Waypoint) string {
		return fmt.Sprintf("Waypoint %s updated", w.Code)
	}
	m.Failure = "Could not update waypoint"

	return mutation.Run(ctx, c.env, m, mutation.Change[domain.WaypointData]{ID: id, Data: data})
}

func (c *Commands) DeleteWaypoint(ctx context.Context, id domain.RecordID) (string, error) {
	ext, err := id.Path()
	if err != nil {
		return "", err
	}

	m := mutation.RemoveFromList[domain.Waypoint]("delete waypoint", ListKey(), func(ctx context.Context, _ domain.RecordID) (string, error) {
		return c.waypoints.Delete(ctx, ext)
	})
	m.Success = func(_ domain.RecordID, code string) string {
		if code == "" {
			return "Waypoint deleted"
		}
		return fmt.Sprintf("Waypoint %s deleted", code)
	}
	m.Failure = "Could not delete waypoint"

	code, err := mutation.Run(ctx, c.env, m, id)
	if err != nil {
		return "", err
	}
	c.logger.Info("deleted waypoint", "id", id.String())
	return code, nil
}
