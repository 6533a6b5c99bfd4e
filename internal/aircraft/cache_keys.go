package aircraft

import "github.com/mmcdole/flightdeck/internal/domain"

// Cache resources owned by this package
const (
	// ResourceAircraft is the aircraft list
	ResourceAircraft = "aircraft"

	// ResourceDetail holds one aircraft with its profile summaries (aircraft-detail:{id})
	ResourceDetail = "aircraft-detail"

	// ResourceProfiles holds the performance profiles of one aircraft (performance-profiles:{aircraftID})
	ResourceProfiles = "performance-profiles"

	// ResourceWeightBalance holds the W&B profiles of one performance profile
	// (weight-balance:{aircraftID}:{profileID})
	ResourceWeightBalance = "weight-balance"
)

func ListKey() domain.CacheKey {
	return domain.Key(ResourceAircraft)
}

func DetailKey(id domain.RecordID) domain.CacheKey {
	return domain.Key(ResourceDetail, id)
}

func ProfilesKey(aircraftID domain.RecordID) domain.CacheKey {
	return domain.Key(ResourceProfiles, aircraftID)
}

func WeightBalanceKey(aircraftID, profileID domain.RecordID) domain.CacheKey {
	return domain.Key(ResourceWeightBalance, aircraftID, profileID)
}

// aircraftKeys lists every entry derived from one aircraft
func aircraftKeys(id domain.RecordID) []domain.CacheKey {
	return []domain.CacheKey{
		DetailKey(id),
		ProfilesKey(id),
		domain.Key(ResourceWeightBalance, id),
	}
}
