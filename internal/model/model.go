// Package model defines domain entities used by services and repositories.
package model

import (
	"time"
)

// Layouts of calendar dates and clock times carried by flight records.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Layover duration bounds in minutes (inclusive).
const (
	MinLayoverMinutes = 30
	MaxLayoverMinutes = 1440
)

// MaxPassengers is the largest party size a record may carry.
const MaxPassengers = 4

// Tokens collects issued owner credentials.
type Tokens struct {
	AccessToken string
	ExpiresAt   time.Time // access token expiry (for diagnostics)
}

// TripType is the shape of a trip.
type TripType string

const (
	TripOneWay    TripType = "one-way"
	TripRoundTrip TripType = "round-trip"
)

// Valid reports whether t is a known trip type.
func (t TripType) Valid() bool { return t == TripOneWay || t == TripRoundTrip }

// FlightRecord is a single flight offer a user has found. Records are never
// mutated in place: an edit is a delete followed by an add.
type FlightRecord struct {
	ID          string   `json:"id"`
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	Type        TripType `json:"type"`

	DepartureDate  string `json:"departureDate"`
	DepartureTime  string `json:"departureTime,omitempty"`
	ArrivalTime    string `json:"arrivalTime,omitempty"`
	ArrivalNextDay bool   `json:"arrivalNextDay,omitempty"`

	ReturnDate           string `json:"returnDate,omitempty"`
	ReturnDepartureTime  string `json:"returnDepartureTime,omitempty"`
	ReturnArrivalTime    string `json:"returnArrivalTime,omitempty"`
	ReturnArrivalNextDay bool   `json:"returnArrivalNextDay,omitempty"`

	IsDirectThere       bool   `json:"isDirectThere"`
	LayoverCityThere    string `json:"layoverCityThere,omitempty"`
	LayoverMinutesThere int    `json:"layoverMinutesThere,omitempty"`
	IsDirectBack        bool   `json:"isDirectBack"`
	LayoverCityBack     string `json:"layoverCityBack,omitempty"`
	LayoverMinutesBack  int    `json:"layoverMinutesBack,omitempty"`

	Airline    string `json:"airline"`
	Passengers int    `json:"passengers"`
	TotalPrice int64  `json:"totalPrice"`
	PriceDate  string `json:"priceDate"`

	CreatedAt time.Time `json:"createdAt"`
}

// PerPerson returns the price per passenger, the only ranking key for records.
func (f FlightRecord) PerPerson() float64 {
	if f.Passengers <= 0 {
		return float64(f.TotalPrice)
	}
	return float64(f.TotalPrice) / float64(f.Passengers)
}

// IsRoundTrip reports whether the record has a return leg.
func (f FlightRecord) IsRoundTrip() bool { return f.Type == TripRoundTrip }

// DepartureAt returns the outbound departure moment. A missing clock time means midnight.
func (f FlightRecord) DepartureAt() (time.Time, error) {
	return dateTime(f.DepartureDate, f.DepartureTime, false)
}

// ArrivalAt returns the outbound arrival moment, shifted by a day when ArrivalNextDay is set.
// Without an arrival time the departure time is used.
func (f FlightRecord) ArrivalAt() (time.Time, error) {
	clock := f.ArrivalTime
	if clock == "" {
		clock = f.DepartureTime
	}
	return dateTime(f.DepartureDate, clock, f.ArrivalNextDay)
}

// ReturnDepartureAt returns the departure moment of the return leg.
func (f FlightRecord) ReturnDepartureAt() (time.Time, error) {
	return dateTime(f.ReturnDate, f.ReturnDepartureTime, false)
}

func dateTime(date, clock string, nextDay bool) (time.Time, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, err
	}
	if clock != "" {
		c, err := time.Parse(ClockLayout, clock)
		if err != nil {
			return time.Time{}, err
		}
		d = d.Add(time.Duration(c.Hour())*time.Hour + time.Duration(c.Minute())*time.Minute)
	}
	if nextDay {
		d = d.AddDate(0, 0, 1)
	}
	return d, nil
}

// OwnerDataset is everything stored for one owner. The known-value sets only grow.
type OwnerDataset struct {
	OwnerID           string
	Flights           []FlightRecord
	Airlines          []string
	OriginCities      []string
	DestinationCities []string
	UpdatedAt         time.Time
}

// Clone returns a deep copy safe to hand out of a lock.
func (d OwnerDataset) Clone() OwnerDataset {
	out := d
	out.Flights = append([]FlightRecord(nil), d.Flights...)
	out.Airlines = append([]string(nil), d.Airlines...)
	out.OriginCities = append([]string(nil), d.OriginCities...)
	out.DestinationCities = append([]string(nil), d.DestinationCities...)
	return out
}

// Permission is the access level a share token grants.
type Permission string

const (
	PermissionView Permission = "view"
	PermissionEdit Permission = "edit"
)

// Valid reports whether p is a known permission.
func (p Permission) Valid() bool { return p == PermissionView || p == PermissionEdit }

// CanEdit reports whether p allows mutations.
func (p Permission) CanEdit() bool { return p == PermissionEdit }

// SharedSession is a share token record. Sessions are never deleted; a revoked or
// expired session stays for listing.
type SharedSession struct {
	ID         string
	OwnerID    string
	Token      string
	Permission Permission
	CreatedAt  time.Time
	ExpiresAt  time.Time
	Active     bool
}

// Usable reports whether the session still grants access at now.
// Expiry and deactivation are independent; both are checked.
func (s SharedSession) Usable(now time.Time) bool {
	return s.Active && now.Before(s.ExpiresAt)
}

// SaveStatus is the non-blocking persistence state reported next to a mutation.
type SaveStatus struct {
	Pending     bool      `json:"pending"`
	LastError   string    `json:"lastError,omitempty"`
	LastSavedAt time.Time `json:"lastSavedAt,omitempty"`
}
