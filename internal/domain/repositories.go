package domain

// AircraftQueries provides cache-only reads of aircraft data
type AircraftQueries interface {
	GetCachedAircraft() ([]Aircraft, bool)
	GetCachedProfiles(aircraftID RecordID) ([]PerformanceProfile, bool)
}

// WaypointQueries provides cache-only reads of waypoints and aerodromes
type WaypointQueries interface {
	GetCachedWaypoints() ([]Waypoint, bool)
	GetCachedAerodromes(registered bool) ([]Aerodrome, bool)
}

// FlightQueries provides cache-only reads of flights
type FlightQueries interface {
	GetCachedFlights() ([]Flight, bool)
	GetCachedFlight(id RecordID) (Flight, bool)
}
