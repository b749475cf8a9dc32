// Package analyzer compares flight offers against earlier ones on the same route.
package analyzer

import (
	"fmt"
	"sort"

	"github.com/kayatkin/flight-tracker-sub000/internal/model"
)

// Threshold is the half-width of the NEUTRAL band around the best known price.
const Threshold int64 = 500

// Classification of a candidate offer.
type Classification string

const (
	Good    Classification = "GOOD"
	Neutral Classification = "NEUTRAL"
	Bad     Classification = "BAD"
)

// Verdict is the outcome of Analyze. PriceDelta is nil when nothing was comparable.
type Verdict struct {
	Classification Classification
	Message        string
	PriceDelta     *int64
}

// Comparable reports whether two records describe the same route and party:
// origin, destination, passenger count and trip type all match.
func Comparable(a, b model.FlightRecord) bool {
	return a.Origin == b.Origin &&
		a.Destination == b.Destination &&
		a.Passengers == b.Passengers &&
		a.Type == b.Type
}

// Analyze classifies candidate against history. Total prices are compared
// directly since comparable records share the passenger count.
func Analyze(candidate model.FlightRecord, history []model.FlightRecord) Verdict {
	found := false
	var best int64
	for _, h := range history {
		if !Comparable(candidate, h) {
			continue
		}
		if !found || h.TotalPrice < best {
			best = h.TotalPrice
			found = true
		}
	}
	if !found {
		return Verdict{Classification: Good, Message: "first offer on this route"}
	}

	delta := candidate.TotalPrice - best
	v := Verdict{PriceDelta: &delta}
	switch {
	case delta < -Threshold:
		v.Classification = Good
		v.Message = fmt.Sprintf("cheaper by %d", -delta)
	case delta > Threshold:
		v.Classification = Bad
		v.Message = fmt.Sprintf("more expensive by %d", delta)
	default:
		v.Classification = Neutral
		v.Message = "about the same"
	}
	return v
}

// DestinationGroup is the history of one destination, cheapest per person first.
type DestinationGroup struct {
	Destination  string
	Flights      []model.FlightRecord
	Best         model.FlightRecord
	Count        int
	MinPerPerson float64
	MaxPerPerson float64
	AvgPerPerson float64
}

// GroupByDestination groups flights by destination. Groups are ordered by name;
// inside a group flights are ordered by per-person price, then newer price date, then id.
func GroupByDestination(flights []model.FlightRecord) []DestinationGroup {
	byDest := make(map[string][]model.FlightRecord)
	for _, f := range flights {
		byDest[f.Destination] = append(byDest[f.Destination], f)
	}

	groups := make([]DestinationGroup, 0, len(byDest))
	for dest, fs := range byDest {
		sort.SliceStable(fs, func(i, j int) bool {
			pi, pj := fs[i].PerPerson(), fs[j].PerPerson()
			if pi != pj {
				return pi < pj
			}
			if fs[i].PriceDate != fs[j].PriceDate {
				return fs[i].PriceDate > fs[j].PriceDate
			}
			return fs[i].ID < fs[j].ID
		})

		var sum float64
		for _, f := range fs {
			sum += f.PerPerson()
		}
		groups = append(groups, DestinationGroup{
			Destination:  dest,
			Flights:      fs,
			Best:         fs[0],
			Count:        len(fs),
			MinPerPerson: fs[0].PerPerson(),
			MaxPerPerson: fs[len(fs)-1].PerPerson(),
			AvgPerPerson: sum / float64(len(fs)),
		})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Destination < groups[j].Destination })
	return groups
}
