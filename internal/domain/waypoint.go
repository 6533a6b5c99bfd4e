package domain

import "fmt"

// Waypoint is a user-defined navigation point
type Waypoint struct {
	ID                RecordID `json:"id"`
	Code              string   `json:"code"`
	Name              string   `json:"name"`
	Lat               float64  `json:"lat"`
	Lon               float64  `json:"lon"`
	MagneticVariation float64  `json:"magnetic_variation"`
}

func (w Waypoint) GetID() RecordID { return w.ID }

// Coordinates formats the position as "49.1234N 123.1234W"
func (w Waypoint) Coordinates() string {
	ns, ew := "N", "E"
	lat, lon := w.Lat, w.Lon
	if lat < 0 {
		ns, lat = "S", -lat
	}
	if lon < 0 {
		ew, lon = "W", -lon
	}
	return fmt.Sprintf("%.4f%s %.4f%s", lat, ns, lon, ew)
}

// WaypointData is the payload for creating or editing a waypoint
type WaypointData struct {
	Code              string  `json:"code" validate:"required,min=2,max=50,alphanum"`
	Name              string  `json:"name" validate:"required,max=255"`
	Lat               float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon               float64 `json:"lon" validate:"gte=-180,lte=180"`
	MagneticVariation float64 `json:"magnetic_variation" validate:"gte=-99,lte=99"`
}

// Apply returns the waypoint with the payload's fields written over it
func (d WaypointData) Apply(w Waypoint) Waypoint {
	w.Code = d.Code
	w.Name = d.Name
	w.Lat = d.Lat
	w.Lon = d.Lon
	w.MagneticVariation = d.MagneticVariation
	return w
}

// Aerodrome is a read-only registered or user aerodrome
type Aerodrome struct {
	ID          RecordID `json:"id"`
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	ElevationFt int      `json:"elevation_ft"`
	Lat         float64  `json:"lat"`
	Lon         float64  `json:"lon"`
	Registered  bool     `json:"registered"`
}

func (a Aerodrome) GetID() RecordID { return a.ID }
