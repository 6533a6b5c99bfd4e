package flight

import "github.com/mmcdole/flightdeck/internal/domain"

const (
	// ResourceFlights is the flights list
	ResourceFlights = "flights"

	// ResourceFlight holds one flight with its computed legs (flight:{id})
	ResourceFlight = "flight"
)

func ListKey() domain.CacheKey {
	return domain.Key(ResourceFlights)
}

func DetailKey(id domain.RecordID) domain.CacheKey {
	return domain.Key(ResourceFlight, id)
}
