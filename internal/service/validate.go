package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/kayatkin/flight-tracker-sub000/internal/errs"
	"github.com/kayatkin/flight-tracker-sub000/internal/model"
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errs.ErrValidation}, args...)...)
}

// NormalizeFlight trims text fields, fills defaults and validates rec in place.
// Validation rules:
// - origin, destination, airline and departure date are required
// - round trips need a return date and return departure time, after the outbound arrival
// - a leg with a layover needs its city and 30..1440 minutes
// - passengers in 1..4, total price > 0
// - price date defaults to today
func NormalizeFlight(rec *model.FlightRecord, today time.Time) error {
	rec.Origin = strings.TrimSpace(rec.Origin)
	rec.Destination = strings.TrimSpace(rec.Destination)
	rec.Airline = strings.TrimSpace(rec.Airline)
	rec.LayoverCityThere = strings.TrimSpace(rec.LayoverCityThere)
	rec.LayoverCityBack = strings.TrimSpace(rec.LayoverCityBack)
	if rec.Type == "" {
		rec.Type = model.TripOneWay
	}
	if rec.PriceDate == "" {
		rec.PriceDate = today.Format(model.DateLayout)
	}

	switch {
	case rec.Origin == "":
		return invalid("origin is required")
	case rec.Destination == "":
		return invalid("destination is required")
	case rec.Airline == "":
		return invalid("airline is required")
	case !rec.Type.Valid():
		return invalid("unknown trip type %q", rec.Type)
	case rec.Passengers < 1 || rec.Passengers > model.MaxPassengers:
		return invalid("passengers must be between 1 and %d", model.MaxPassengers)
	case rec.TotalPrice <= 0:
		return invalid("total price must be positive")
	}
	if _, err := time.Parse(model.DateLayout, rec.PriceDate); err != nil {
		return invalid("bad price date %q", rec.PriceDate)
	}
	if rec.DepartureDate == "" {
		return invalid("departure date is required")
	}
	if err := checkClocks(rec.DepartureTime, rec.ArrivalTime); err != nil {
		return err
	}
	if err := checkLayover("outbound", rec.IsDirectThere, rec.LayoverCityThere, rec.LayoverMinutesThere); err != nil {
		return err
	}
	arrival, err := rec.ArrivalAt()
	if err != nil {
		return invalid("bad departure date %q", rec.DepartureDate)
	}

	if !rec.IsRoundTrip() {
		rec.ReturnDate, rec.ReturnDepartureTime, rec.ReturnArrivalTime = "", "", ""
		rec.ReturnArrivalNextDay = false
		rec.IsDirectBack, rec.LayoverCityBack, rec.LayoverMinutesBack = false, "", 0
		return nil
	}

	if rec.ReturnDate == "" {
		return invalid("return date is required for a round trip")
	}
	if rec.ReturnDepartureTime == "" {
		return invalid("return departure time is required for a round trip")
	}
	if err := checkClocks(rec.ReturnDepartureTime, rec.ReturnArrivalTime); err != nil {
		return err
	}
	if err := checkLayover("return", rec.IsDirectBack, rec.LayoverCityBack, rec.LayoverMinutesBack); err != nil {
		return err
	}
	back, err := rec.ReturnDepartureAt()
	if err != nil {
		return invalid("bad return date %q", rec.ReturnDate)
	}
	if !back.After(arrival) {
		return invalid("return departure must be after the outbound arrival")
	}
	return nil
}

func checkClocks(clocks ...string) error {
	for _, c := range clocks {
		if c == "" {
			continue
		}
		if _, err := time.Parse(model.ClockLayout, c); err != nil {
			return invalid("bad time %q, want HH:MM", c)
		}
	}
	return nil
}

func checkLayover(leg string, direct bool, city string, minutes int) error {
	if direct {
		return nil
	}
	if city == "" {
		return invalid("%s layover city is required", leg)
	}
	if minutes < model.MinLayoverMinutes || minutes > model.MaxLayoverMinutes {
		return invalid("%s layover must be %d..%d minutes", leg, model.MinLayoverMinutes, model.MaxLayoverMinutes)
	}
	return nil
}
