package domain

// Aircraft is the cached shape of an aircraft profile
type Aircraft struct {
	ID               RecordID             `json:"id"`
	Registration     string               `json:"registration"`
	Make             string               `json:"make"`
	Model            string               `json:"model"`
	AbbreviatedModel string               `json:"abbreviated_model"`
	Profiles         []PerformanceProfile `json:"profiles"`
}

func (a Aircraft) GetID() RecordID { return a.ID }

// PreferredProfile returns the preferred performance profile, if any
func (a Aircraft) PreferredProfile() (PerformanceProfile, bool) {
	for _, p := range a.Profiles {
		if p.Preferred {
			return p, true
		}
	}
	return PerformanceProfile{}, false
}

// AircraftData is the payload sent when creating or editing an aircraft
type AircraftData struct {
	Registration     string `json:"registration" validate:"required,min=2,max=10"`
	Make             string `json:"make" validate:"required,max=255"`
	Model            string `json:"model" validate:"required,max=255"`
	AbbreviatedModel string `json:"abbreviated_model" validate:"required,max=10"`
}

// Apply returns the aircraft with the payload's fields written over it
func (d AircraftData) Apply(a Aircraft) Aircraft {
	a.Registration = d.Registration
	a.Make = d.Make
	a.Model = d.Model
	a.AbbreviatedModel = d.AbbreviatedModel
	return a
}

// PerformanceProfile is the cached summary of a performance profile.
// The API returns PerformanceProfileComplete; callers reshape it with Summary.
type PerformanceProfile struct {
	ID         RecordID `json:"id"`
	Name       string   `json:"performance_profile_name"`
	Preferred  bool     `json:"is_preferred"`
	IsComplete bool     `json:"is_complete"`
}

func (p PerformanceProfile) GetID() RecordID  { return p.ID }
func (p PerformanceProfile) IsPreferred() bool { return p.Preferred }

func (p PerformanceProfile) WithPreferred(preferred bool) PerformanceProfile {
	p.Preferred = preferred
	return p
}

// PerformanceProfileComplete is the full record returned by the API
type PerformanceProfileComplete struct {
	ID              RecordID          `json:"id"`
	Name            string            `json:"performance_profile_name"`
	Preferred       bool              `json:"is_preferred"`
	IsComplete      bool              `json:"is_complete"`
	CenterOfGravity float64           `json:"center_of_gravity_in"`
	EmptyWeight     float64           `json:"empty_weight_lb"`
	MaxTakeoff      float64           `json:"max_takeoff_weight_lb"`
	FuelType        string            `json:"fuel_type"`
	Takeoff         []PerformanceData `json:"takeoff_data"`
	Landing         []PerformanceData `json:"landing_data"`
	Climb           []PerformanceData `json:"climb_data"`
	Cruise          []PerformanceData `json:"cruise_data"`
}

// PerformanceData is one row of a performance table
type PerformanceData struct {
	Weight      float64 `json:"weight_lb"`
	PressureAlt int     `json:"pressure_alt_ft"`
	Temperature int     `json:"temperature_c"`
	Value       float64 `json:"value"`
}

// Summary reshapes the complete API record into the cached summary
func (c PerformanceProfileComplete) Summary() PerformanceProfile {
	return PerformanceProfile{
		ID:         c.ID,
		Name:       c.Name,
		Preferred:  c.Preferred,
		IsComplete: c.IsComplete,
	}
}

// PerformanceProfileData is the payload for creating or renaming a profile
type PerformanceProfileData struct {
	Name      string `json:"performance_profile_name" validate:"required,min=2,max=255"`
	Preferred bool   `json:"is_preferred"`
}

// WeightBalanceProfile is a weight-and-balance envelope for one performance profile
type WeightBalanceProfile struct {
	ID                 RecordID             `json:"id"`
	Name               string               `json:"name"`
	MaxTakeoffWeightLb float64              `json:"max_take_off_weight_lb"`
	Limits             []WeightBalanceLimit `json:"limits"`
}

func (w WeightBalanceProfile) GetID() RecordID { return w.ID }

// WeightBalanceLimit is one vertex of the CG envelope
type WeightBalanceLimit struct {
	FromCGIn     float64 `json:"from_cg_in" validate:"gte=0"`
	FromWeightLb float64 `json:"from_weight_lb" validate:"gte=0"`
	ToCGIn       float64 `json:"to_cg_in" validate:"gte=0"`
	ToWeightLb   float64 `json:"to_weight_lb" validate:"gte=0"`
}

// WeightBalanceData is the payload for creating or editing a W&B profile
type WeightBalanceData struct {
	Name               string               `json:"name" validate:"required,max=255"`
	MaxTakeoffWeightLb float64              `json:"max_take_off_weight_lb" validate:"gt=0"`
	Limits             []WeightBalanceLimit `json:"limits" validate:"dive"`
}

// Apply returns the profile with the payload's fields written over it
func (d WeightBalanceData) Apply(w WeightBalanceProfile) WeightBalanceProfile {
	w.Name = d.Name
	w.MaxTakeoffWeightLb = d.MaxTakeoffWeightLb
	w.Limits = d.Limits
	return w
}
