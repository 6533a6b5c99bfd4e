// Package aircraft manages aircraft, their performance profiles and their
// weight-and-balance profiles.
package aircraft

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmcdole/flightdeck/internal/api"
	"github.com/mmcdole/flightdeck/internal/domain"
	"github.com/mmcdole/flightdeck/internal/mutation"
	"github.com/mmcdole/flightdeck/internal/store"
)

// API resource paths
const (
	aircraftPath      = "/aircraft"
	profilesPath      = "/performance-profile"
	weightBalancePath = "/weight-balance-profile"
)

// Commands provides network operations that keep the cache in sync.
type Commands struct {
	aircraft      *api.Client[domain.AircraftData, domain.Aircraft]
	profiles      *api.Client[domain.PerformanceProfileData, domain.PerformanceProfileComplete]
	weightBalance *api.Client[domain.WeightBalanceData, domain.WeightBalanceProfile]

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
		aircraft:      api.NewClient[domain.AircraftData, domain.Aircraft](t, aircraftPath),
		profiles:      api.NewClient[domain.PerformanceProfileData, domain.PerformanceProfileComplete](t, profilesPath),
		weightBalance: api.NewClient[domain.WeightBalanceData, domain.WeightBalanceProfile](t, weightBalancePath),
		env:           env,
		fetcher:       mutation.NewFetcher(env),
		logger:        env.Logger,
	}
}

// CancelRequests aborts every in-flight aircraft request
func (c *Commands) CancelRequests() {
	c.aircraft.CancelRequest()
	c.profiles.CancelRequest()
	c.weightBalance.CancelRequest()
}

// Aircraft

func (c *Commands) FetchAircraft(ctx context.Context) ([]domain.Aircraft, error) {
	list, err := mutation.Fetch(ctx, c.fetcher, ListKey(), func(ctx context.Context) ([]domain.Aircraft, error) {
		return c.aircraft.GetAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	c.logger.Debug("fetched aircraft", "count", len(list))
	return list, nil
}

func (c *Commands) FetchAircraftByID(ctx context.Context, id domain.RecordID) (domain.Aircraft, error) {
	ext, err := id.Path()
	if err != nil {
		return domain.Aircraft{}, err
	}
	return mutation.Fetch(ctx, c.fetcher, DetailKey(id), func(ctx context.Context) (domain.Aircraft, error) {
		return c.aircraft.Get(ctx, ext)
	})
}

func (c *Commands) AddAircraft(ctx context.Context, data domain.AircraftData) (domain.Aircraft, error) {
	m := mutation.AddToList(
		"add aircraft",
		ListKey(),
		func(d domain.AircraftData, pending domain.RecordID) domain.Aircraft {
			return d.Apply(domain.Aircraft{ID: pending})
		},
		func(ctx context.Context, d domain.AircraftData) (domain.Aircraft, error) {
			return c.aircraft.Post(ctx, d)
		},
	)
	m.Success = func(_ mutation.Draft[domain.AircraftData], a domain.Aircraft) string {
		return fmt.Sprintf("Aircraft %s added", a.Registration)
	}
	m.Failure = "Could not add aircraft"

	a, err := mutation.Run(ctx, c.env, m, mutation.NewDraft(data))
	if err != nil {
		return domain.Aircraft{}, err
	}
	c.logger.Info("added aircraft", "id", a.ID.String(), "registration", a.Registration)
	return a, nil
}

func (c *Commands) EditAircraft(ctx context.Context, id domain.RecordID, data domain.AircraftData) (domain.Aircraft, error) {
	ext, err := id.Path()
	if err != nil {
		return domain.Aircraft{}, err
	}

	m := mutation.EditInList(
		"edit aircraft",
		ListKey(),
		func(a domain.Aircraft, d domain.AircraftData) domain.Aircraft { return d.Apply(a) },
		func(ctx context.Context, _ domain.RecordID, d domain.AircraftData) (domain.Aircraft, error) {
			return c.aircraft.Edit(ctx, d, ext)
		},
	)
	m.Overwrites = func(_ mutation.Change[domain.AircraftData], a domain.Aircraft) []mutation.Overwrite {
		return []mutation.Overwrite{{Key: DetailKey(id), Value: a}}
	}
	m.Success = func(_ mutation.Change[domain.AircraftData], a domain.Aircraft) string {
		return fmt.Sprintf("Aircraft %s updated", a.Registration)
	}
	m.Failure = "Could not update aircraft"

	return mutation.Run(ctx, c.env, m, mutation.Change[domain.AircraftData]{ID: id, Data: data})
}

func (c *Commands) DeleteAircraft(ctx context.Context, id domain.RecordID) (string, error) {
	ext, err := id.Path()
	if err != nil {
		return "", err
	}

	m := mutation.RemoveFromList[domain.Aircraft]("delete aircraft", ListKey(), func(ctx context.Context, _ domain.RecordID) (string, error) {
		return c.aircraft.Delete(ctx, ext)
	})
	m.Cascade = func(id domain.RecordID, _ string) []domain.CacheKey {
		return aircraftKeys(id)
	}
	m.Success = func(_ domain.RecordID, name string) string {
		return deletedMessage("Aircraft", name)
	}
	m.Failure = "Could not delete aircraft"

	name, err := mutation.Run(ctx, c.env, m, id)
	if err != nil {
		return "", err
	}
	c.logger.Info("deleted aircraft", "id", id.String())
	return name, nil
}

// Performance profiles

func (c *Commands) FetchProfiles(ctx context.Context, aircraftID domain.RecordID) ([]domain.PerformanceProfile, error) {
	ext, err := aircraftID.Path()
	if err != nil {
		return nil, err
	}
	return mutation.Fetch(ctx, c.fetcher, ProfilesKey(aircraftID), func(ctx context.Context) ([]domain.PerformanceProfile, error) {
		complete, err := c.profiles.GetAll(ctx, "aircraft", ext)
		if err != nil {
			return nil, err
		}
		out := make([]domain.PerformanceProfile, len(complete))
		for i, p := range complete {
			out[i] = p.Summary()
		}
		return out, nil
	})
}

// AddProfile creates an empty performance profile for an aircraft
func (c *Commands) AddProfile(ctx context.Context, aircraftID domain.RecordID, data domain.PerformanceProfileData) (domain.PerformanceProfile, error) {
	ext, err := aircraftID.Path()
	if err != nil {
		return domain.PerformanceProfile{}, err
	}
	return c.addProfile(ctx, aircraftID, data, ext)
}

// AddProfileFromModel creates a performance profile for an aircraft by
// copying the data of a manufacturer model profile.
func (c *Commands) AddProfileFromModel(ctx context.Context, aircraftID, modelID domain.RecordID, data domain.PerformanceProfileData) (domain.PerformanceProfile, error) {
	aircraftExt, err := aircraftID.Path()
	if err != nil {
		return domain.PerformanceProfile{}, err
	}
	modelExt, err := modelID.Path()
	if err != nil {
		return domain.PerformanceProfile{}, err
	}
	return c.addProfile(ctx, aircraftID, data, aircraftExt, modelExt)
}

func (c *Commands) addProfile(ctx context.Context, aircraftID domain.RecordID, data domain.PerformanceProfileData, ext ...string) (domain.PerformanceProfile, error) {
	m := mutation.AddToList(
		"add performance profile",
		ProfilesKey(aircraftID),
		func(d domain.PerformanceProfileData, pending domain.RecordID) domain.PerformanceProfile {
			return domain.PerformanceProfile{ID: pending, Name: d.Name, Preferred: d.Preferred}
		},
		func(ctx context.Context, d domain.PerformanceProfileData) (domain.PerformanceProfile, error) {
			return api.PostAs(ctx, c.profiles, d, domain.PerformanceProfileComplete.Summary, ext...)
		},
	)
	reconcile := m.Reconcile
	m.Reconcile = func(current []domain.PerformanceProfile, in mutation.Draft[domain.PerformanceProfileData], saved domain.PerformanceProfile) []domain.PerformanceProfile {
		list := reconcile(current, in, saved)
		if saved.Preferred {
			list = mutation.SelectPreferred(list, saved.ID)
		}
		return list
	}
	m.Cascade = func(mutation.Draft[domain.PerformanceProfileData], domain.PerformanceProfile) []domain.CacheKey {
		return []domain.CacheKey{ListKey(), DetailKey(aircraftID)}
	}
	m.Success = func(_ mutation.Draft[domain.PerformanceProfileData], p domain.PerformanceProfile) string {
		return fmt.Sprintf("Performance profile %s added", p.Name)
	}
	m.Failure = "Could not add performance profile"

	return mutation.Run(ctx, c.env, m, mutation.NewDraft(data))
}

func (c *Commands) EditProfile(ctx context.Context, aircraftID, profileID domain.RecordID, data domain.PerformanceProfileData) (domain.PerformanceProfile, error) {
	ext, err := profileID.Path()
	if err != nil {
		return domain.PerformanceProfile{}, err
	}

	m := mutation.EditInList(
		"edit performance profile",
		ProfilesKey(aircraftID),
		func(p domain.PerformanceProfile, d domain.PerformanceProfileData) domain.PerformanceProfile {
			p.Name = d.Name
			return p
		},
		func(ctx context.Context, _ domain.RecordID, d domain.PerformanceProfileData) (domain.PerformanceProfile, error) {
			return api.EditAs(ctx, c.profiles, d, domain.PerformanceProfileComplete.Summary, ext)
		},
	)
	m.Cascade = func(mutation.Change[domain.PerformanceProfileData], domain.PerformanceProfile) []domain.CacheKey {
		return []domain.CacheKey{ListKey(), DetailKey(aircraftID)}
	}
	m.Success = func(_ mutation.Change[domain.PerformanceProfileData], p domain.PerformanceProfile) string {
		return fmt.Sprintf("Performance profile %s updated", p.Name)
	}
	m.Failure = "Could not update performance profile"

	return mutation.Run(ctx, c.env, m, mutation.Change[domain.PerformanceProfileData]{ID: profileID, Data: data})
}

func (c *Commands) DeleteProfile(ctx context.Context, aircraftID, profileID domain.RecordID) (string, error) {
	ext, err := profileID.Path()
	if err != nil {
		return "", err
	}

	m := mutation.RemoveFromList[domain.PerformanceProfile]("delete performance profile", ProfilesKey(aircraftID), func(ctx context.Context, _ domain.RecordID) (string, error) {
		return c.profiles.Delete(ctx, ext)
	})
	m.Cascade = func(domain.RecordID, string) []domain.CacheKey {
		return []domain.CacheKey{ListKey(), DetailKey(aircraftID), WeightBalanceKey(aircraftID, profileID)}
	}
	m.Success = func(_ domain.RecordID, name string) string {
		return deletedMessage("Performance profile", name)
	}
	m.Failure = "Could not delete performance profile"

	return mutation.Run(ctx, c.env, m, profileID)
}

// SelectPreferredProfile marks one profile of an aircraft as preferred.
// The previously preferred profile is demoted immediately.
func (c *Commands) SelectPreferredProfile(ctx context.Context, aircraftID, profileID domain.RecordID) (domain.PerformanceProfile, error) {
	ext, err := profileID.Path()
	if err != nil {
		return domain.PerformanceProfile{}, err
	}

	profiles, ok := store.Get[[]domain.PerformanceProfile](c.env.Cache, ProfilesKey(aircraftID))
	if !ok {
		// Cache miss - fetch first so the request carries the current name
		if profiles, err = c.FetchProfiles(ctx, aircraftID); err != nil {
			return domain.PerformanceProfile{}, err
		}
	}
	target, ok := mutation.Find(profiles, profileID)
	if !ok {
		return domain.PerformanceProfile{}, fmt.Errorf("performance profile %s: %w", profileID, domain.ErrNotFound)
	}

	m := mutation.Mutation[[]domain.PerformanceProfile, domain.RecordID, domain.PerformanceProfile]{
		Name: "select preferred profile",
		Key:  ProfilesKey(aircraftID),
		Optimistic: func(current []domain.PerformanceProfile, id domain.RecordID) []domain.PerformanceProfile {
			return mutation.SelectPreferred(current, id)
		},
		Send: func(ctx context.Context, _ domain.RecordID) (domain.PerformanceProfile, error) {
			data := domain.PerformanceProfileData{Name: target.Name, Preferred: true}
			return api.EditAs(ctx, c.profiles, data, domain.PerformanceProfileComplete.Summary, ext)
		},
		Reconcile: func(current []domain.PerformanceProfile, id domain.RecordID, saved domain.PerformanceProfile) []domain.PerformanceProfile {
			return mutation.SelectPreferred(mutation.ReplaceByID(current, id, saved), id)
		},
		Cascade: func(domain.RecordID, domain.PerformanceProfile) []domain.CacheKey {
			return []domain.CacheKey{ListKey(), DetailKey(aircraftID)}
		},
		Success: func(_ domain.RecordID, p domain.PerformanceProfile) string {
			return fmt.Sprintf("%s is now the preferred profile", p.Name)
		},
		Failure: "Could not select preferred profile",
	}

	return mutation.Run(ctx, c.env, m, profileID)
}

// Weight and balance

func (c *Commands) FetchWeightBalance(ctx context.Context, aircraftID, profileID domain.RecordID) ([]domain.WeightBalanceProfile, error) {
	ext, err := profileID.Path()
	if err != nil {
		return nil, err
	}
	return mutation.Fetch(ctx, c.fetcher, WeightBalanceKey(aircraftID, profileID), func(ctx context.Context) ([]domain.WeightBalanceProfile, error) {
		return c.weightBalance.GetAll(ctx, "profile", ext)
	})
}

func (c *Commands) AddWeightBalance(ctx context.Context, aircraftID, profileID domain.RecordID, data domain.WeightBalanceData) (domain.WeightBalanceProfile, error) {
	ext, err := profileID.Path()
	if err != nil {
		return domain.WeightBalanceProfile{}, err
	}

	m := mutation.AddToList(
		"add weight and balance profile",
		WeightBalanceKey(aircraftID, profileID),
		func(d domain.WeightBalanceData, pending domain.RecordID) domain.WeightBalanceProfile {
			return d.Apply(domain.WeightBalanceProfile{ID: pending})
		},
		func(ctx context.Context, d domain.WeightBalanceData) (domain.WeightBalanceProfile, error) {
			return c.weightBalance.Post(ctx, d, "profile", ext)
		},
	)
	m.Success = func(_ mutation.Draft[domain.WeightBalanceData], w domain.WeightBalanceProfile) string {
		return fmt.Sprintf("Weight and balance profile %s added", w.Name)
	}
	m.Failure = "Could not add weight and balance profile"

	return mutation.Run(ctx, c.env, m, mutation.NewDraft(data))
}

func (c *Commands) EditWeightBalance(ctx context.Context, aircraftID, profileID, id domain.RecordID, data domain.WeightBalanceData) (domain.WeightBalanceProfile, error) {
	ext, err := id.Path()
	if err != nil {
		return domain.WeightBalanceProfile{}, err
	}

	m := mutation.EditInList(
		"edit weight and balance profile",
		WeightBalanceKey(aircraftID, profileID),
		func(w domain.WeightBalanceProfile, d domain.WeightBalanceData) domain.WeightBalanceProfile { return d.Apply(w) },
		func(ctx context.Context, _ domain.RecordID, d domain.WeightBalanceData) (domain.WeightBalanceProfile, error) {
			return c.weightBalance.Edit(ctx, d, ext)
		},
	)
	m.Success = func(_ mutation.Change[domain.WeightBalanceData], w domain.WeightBalanceProfile) string {
		return fmt.Sprintf("Weight and balance profile %s updated", w.Name)
	}
	m.Failure = "Could not update weight and balance profile"

	return mutation.Run(ctx, c.env, m, mutation.Change[domain.WeightBalanceData]{ID: id, Data: data})
}

func (c *Commands) DeleteWeightBalance(ctx context.Context, aircraftID, profileID, id domain.RecordID) (string, error) {
	ext, err := id.Path()
	if err != nil {
		return "", err
	}

	m := mutation.RemoveFromList[domain.WeightBalanceProfile]("delete weight and balance profile", WeightBalanceKey(aircraftID, profileID), func(ctx context.Context, _ domain.RecordID) (string, error) {
		return c.weightBalance.Delete(ctx, ext)
	})
	m.Success = func(_ domain.RecordID, name string) string {
		return deletedMessage("Weight and balance profile", name)
	}
	m.Failure = "Could not delete weight and balance profile"

	return mutation.Run(ctx, c.env, m, id)
}

func deletedMessage(kind, name string) string {
	if name == "" {
		return kind + " deleted"
	}
	return fmt.Sprintf("%s %s deleted", kind, name)
}
