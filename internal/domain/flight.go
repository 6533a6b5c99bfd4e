package domain

import (
	"fmt"
	"time"
)

// Flight is a planned flight including its computed legs.
// The server recomputes legs and totals whenever a leg changes.
type Flight struct {
	ID              RecordID  `json:"id"`
	AircraftID      int64     `json:"aircraft_id"`
	DepartureCode   string    `json:"departure_code"`
	ArrivalCode     string    `json:"arrival_code"`
	DepartureTime   time.Time `json:"departure_time"`
	Legs            []Leg     `json:"legs"`
	TotalDistanceNM float64   `json:"total_distance_nm"`
	TotalTimeMin    float64   `json:"total_time_min"`
}

func (f Flight) GetID() RecordID { return f.ID }

// Route renders the flight as "CYVR → CYYJ"
func (f Flight) Route() string {
	return fmt.Sprintf("%s → %s", f.DepartureCode, f.ArrivalCode)
}

// Leg is one computed segment of a flight ending at a waypoint
type Leg struct {
	ID            RecordID `json:"id"`
	Sequence      int      `json:"sequence"`
	WaypointCode  string   `json:"waypoint_code"`
	TrueCourse    int      `json:"true_course"`
	DistanceNM    float64  `json:"distance_nm"`
	GroundSpeedKt float64  `json:"ground_speed_kt"`
	TimeMin       float64  `json:"time_min"`
}

func (l Leg) GetID() RecordID { return l.ID }

// FlightData is the payload for creating or editing a flight
type FlightData struct {
	AircraftID    int64     `json:"aircraft_id" validate:"required,gt=0"`
	DepartureCode string    `json:"departure_code" validate:"required,min=3,max=12"`
	ArrivalCode   string    `json:"arrival_code" validate:"required,min=3,max=12"`
	DepartureTime time.Time `json:"departure_time" validate:"required"`
}

// Apply returns the flight with the payload's fields written over it
func (d FlightData) Apply(f Flight) Flight {
	f.AircraftID = d.AircraftID
	f.DepartureCode = d.DepartureCode
	f.ArrivalCode = d.ArrivalCode
	f.DepartureTime = d.DepartureTime
	return f
}

// LegData inserts a new waypoint into a flight's route at Sequence
type LegData struct {
	Sequence     int     `json:"sequence" validate:"gte=1"`
	WaypointCode string  `json:"code" validate:"required,max=50"`
	Name         string  `json:"name" validate:"max=255"`
	Lat          float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon          float64 `json:"lon" validate:"gte=-180,lte=180"`
}
