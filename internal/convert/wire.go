// Package convert maps domain values to and from the flighttracker.v1 wire messages.
package convert

import (
	pb "github.com/kayatkin/flight-tracker-sub000/api/flighttracker/v1"
	"github.com/kayatkin/flight-tracker-sub000/internal/analyzer"
	"github.com/kayatkin/flight-tracker-sub000/internal/model"
)

// --- Flights ---

// ToWireFlight converts a domain record to its wire form.
func ToWireFlight(f model.FlightRecord) pb.Flight {
	return pb.Flight{
		ID:                   f.ID,
		Origin:               f.Origin,
		Destination:          f.Destination,
		Type:                 string(f.Type),
		DepartureDate:        f.DepartureDate,
		DepartureTime:        f.DepartureTime,
		ArrivalTime:          f.ArrivalTime,
		ArrivalNextDay:       f.ArrivalNextDay,
		ReturnDate:           f.ReturnDate,
		ReturnDepartureTime:  f.ReturnDepartureTime,
		ReturnArrivalTime:    f.ReturnArrivalTime,
		ReturnArrivalNextDay: f.ReturnArrivalNextDay,
		IsDirectThere:        f.IsDirectThere,
		LayoverCityThere:     f.LayoverCityThere,
		LayoverMinutesThere:  f.LayoverMinutesThere,
		IsDirectBack:         f.IsDirectBack,
		LayoverCityBack:      f.LayoverCityBack,
		LayoverMinutesBack:   f.LayoverMinutesBack,
		Airline:              f.Airline,
		Passengers:           f.Passengers,
		TotalPrice:           f.TotalPrice,
		PriceDate:            f.PriceDate,
		PerPerson:            f.PerPerson(),
		CreatedAt:            f.CreatedAt,
	}
}

// FromWireFlight converts a wire flight to a domain record. Server-owned fields
// (created-at, per-person) are not taken from the client.
func FromWireFlight(f pb.Flight) model.FlightRecord {
	return model.FlightRecord{
		ID:                   f.ID,
		Origin:               f.Origin,
		Destination:          f.Destination,
		Type:                 model.TripType(f.Type),
		DepartureDate:        f.DepartureDate,
		DepartureTime:        f.DepartureTime,
		ArrivalTime:          f.ArrivalTime,
		ArrivalNextDay:       f.ArrivalNextDay,
		ReturnDate:           f.ReturnDate,
		ReturnDepartureTime:  f.ReturnDepartureTime,
		ReturnArrivalTime:    f.ReturnArrivalTime,
		ReturnArrivalNextDay: f.ReturnArrivalNextDay,
		IsDirectThere:        f.IsDirectThere,
		LayoverCityThere:     f.LayoverCityThere,
		LayoverMinutesThere:  f.LayoverMinutesThere,
		IsDirectBack:         f.IsDirectBack,
		LayoverCityBack:      f.LayoverCityBack,
		LayoverMinutesBack:   f.LayoverMinutesBack,
		Airline:              f.Airline,
		Passengers:           f.Passengers,
		TotalPrice:           f.TotalPrice,
		PriceDate:            f.PriceDate,
	}
}

// ToWireFlights converts a slice; nil becomes an empty slice.
func ToWireFlights(fs []model.FlightRecord) []pb.Flight {
	out := make([]pb.Flight, 0, len(fs))
	for _, f := range fs {
		out = append(out, ToWireFlight(f))
	}
	return out
}

// FromWireFlights converts wire flights back to domain records.
func FromWireFlights(fs []pb.Flight) []model.FlightRecord {
	out := make([]model.FlightRecord, 0, len(fs))
	for _, f := range fs {
		out = append(out, FromWireFlight(f))
	}
	return out
}

// --- Analysis ---

func ToWireVerdict(v analyzer.Verdict) pb.Verdict {
	return pb.Verdict{Classification: string(v.Classification), Message: v.Message, PriceDelta: v.PriceDelta}
}

func ToWireGroups(gs []analyzer.DestinationGroup) []pb.DestinationGroup {
	out := make([]pb.DestinationGroup, 0, len(gs))
	for _, g := range gs {
		out = append(out, pb.DestinationGroup{
			Destination:  g.Destination,
			Count:        g.Count,
			Best:         ToWireFlight(g.Best),
			MinPerPerson: g.MinPerPerson,
			MaxPerPerson: g.MaxPerPerson,
			AvgPerPerson: g.AvgPerPerson,
			Flights:      ToWireFlights(g.Flights),
		})
	}
	return out
}

// --- Datasets and identities ---

func ToWireSaveStatus(s model.SaveStatus) pb.SaveStatus {
	return pb.SaveStatus{Pending: s.Pending, LastError: s.LastError, LastSavedAt: s.LastSavedAt}
}

// ToWireIdentity renders either identity variant.
func ToWireIdentity(who model.Identity) pb.Identity {
	switch v := who.(type) {
	case model.Owner:
		return pb.Identity{Kind: "owner", OwnerID: v.ID, Label: v.Label, Permission: string(model.PermissionEdit)}
	case model.Guest:
		return pb.Identity{Kind: "guest", OwnerID: v.OwnerID, Label: v.OwnerLabel, Permission: string(v.Permission), GuestID: v.GuestID}
	default:
		return pb.Identity{}
	}
}

// ToWireDataset renders the dataset as seen by who.
func ToWireDataset(who model.Identity, d model.OwnerDataset, st model.SaveStatus) pb.DatasetResponse {
	return pb.DatasetResponse{
		Identity:          ToWireIdentity(who),
		Flights:           ToWireFlights(d.Flights),
		Airlines:          nonNil(d.Airlines),
		OriginCities:      nonNil(d.OriginCities),
		DestinationCities: nonNil(d.DestinationCities),
		Save:              ToWireSaveStatus(st),
	}
}

// --- Sessions ---

// ToWireSession renders a session with its share link.
func ToWireSession(s model.SharedSession, link string) pb.Session {
	return pb.Session{
		ID:         s.ID,
		Token:      s.Token,
		Permission: string(s.Permission),
		CreatedAt:  s.CreatedAt,
		ExpiresAt:  s.ExpiresAt,
		Active:     s.Active,
		Link:       link,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
