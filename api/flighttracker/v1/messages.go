// Package flighttrackerv1 is the wire contract of the flighttracker.v1.FlightTracker
// gRPC service. Messages travel as JSON under the "json" content-subtype.
package flighttrackerv1

import "time"

// Flight is a flight record on the wire.
type Flight struct {
	ID          string `json:"id,omitempty"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Type        string `json:"type"`

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
	PriceDate  string `json:"priceDate,omitempty"`

	PerPerson float64   `json:"perPerson,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// Verdict is the price classification of an offer.
type Verdict struct {
	Classification string `json:"classification"`
	Message        string `json:"message"`
	PriceDelta     *int64 `json:"priceDelta,omitempty"`
}

// SaveStatus reports whether changes are still waiting for the store.
type SaveStatus struct {
	Pending     bool      `json:"pending"`
	LastError   string    `json:"lastError,omitempty"`
	LastSavedAt time.Time `json:"lastSavedAt,omitzero"`
}

// Identity describes the caller. Kind is "owner" or "guest".
type Identity struct {
	Kind       string `json:"kind"`
	OwnerID    string `json:"ownerId"`
	Label      string `json:"label"`
	Permission string `json:"permission,omitempty"`
	GuestID    string `json:"guestId,omitempty"`
}

// DestinationGroup is one destination of the grouped history.
type DestinationGroup struct {
	Destination  string   `json:"destination"`
	Count        int      `json:"count"`
	Best         Flight   `json:"best"`
	MinPerPerson float64  `json:"minPerPerson"`
	MaxPerPerson float64  `json:"maxPerPerson"`
	AvgPerPerson float64  `json:"avgPerPerson"`
	Flights      []Flight `json:"flights"`
}

// Session is a share token as shown to its owner.
type Session struct {
	ID         string    `json:"id"`
	Token      string    `json:"token"`
	Permission string    `json:"permission"`
	CreatedAt  time.Time `json:"createdAt"`
	ExpiresAt  time.Time `json:"expiresAt"`
	Active     bool      `json:"active"`
	Link       string    `json:"link"`
}

type IdentifyRequest struct {
	UserID string `json:"userId"`
	Label  string `json:"label,omitempty"`
}

type IdentifyResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	UserID      string    `json:"userId"`
}

type GetDatasetRequest struct{}

type DatasetResponse struct {
	Identity          Identity   `json:"identity"`
	Flights           []Flight   `json:"flights"`
	Airlines          []string   `json:"airlines"`
	OriginCities      []string   `json:"originCities"`
	DestinationCities []string   `json:"destinationCities"`
	Save              SaveStatus `json:"save"`
}

type AddFlightRequest struct {
	Flight Flight `json:"flight"`
}

type AddFlightResponse struct {
	Flight  Flight     `json:"flight"`
	Verdict Verdict    `json:"verdict"`
	Save    SaveStatus `json:"save"`
}

type DeleteFlightRequest struct {
	ID string `json:"id"`
}

type DeleteFlightResponse struct {
	Removed bool       `json:"removed"`
	Save    SaveStatus `json:"save"`
}

type AnalyzeFlightRequest struct {
	Flight Flight `json:"flight"`
}

type AnalyzeFlightResponse struct {
	Verdict Verdict `json:"verdict"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []DestinationGroup `json:"groups"`
}

type CreateShareRequest struct {
	Permission string `json:"permission"`
	TTLDays    int    `json:"ttlDays,omitempty"`
}

type CreateShareResponse struct {
	Session Session `json:"session"`
}

type ListSharesRequest struct{}

type ListSharesResponse struct {
	Active   []Session `json:"active"`
	Inactive []Session `json:"inactive"`
}

type DeactivateShareRequest struct {
	Token string `json:"token"`
}

type DeactivateShareResponse struct{}

type OpenShareRequest struct {
	Token string `json:"token"`
}

type OpenShareResponse struct {
	Dataset DatasetResponse    `json:"dataset"`
	Groups  []DestinationGroup `json:"groups"`
}
