package waypoint

import "github.com/mmcdole/flightdeck/internal/domain"

const (
	// ResourceWaypoints is the list of user waypoints
	ResourceWaypoints = "waypoints"

	// ResourceAerodromes is the list of aerodromes (aerodromes:registered or aerodromes:user)
	ResourceAerodromes = "aerodromes"
)

func ListKey() domain.CacheKey {
	return domain.Key(ResourceWaypoints)
}

func AerodromesKey(registered bool) domain.CacheKey {
	if registered {
		return domain.Key(ResourceAerodromes, "registered")
	}
	return domain.Key(ResourceAerodromes, "user")
}
