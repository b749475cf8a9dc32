package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	pb "github.com/kayatkin/flight-tracker-sub000/api/flighttracker/v1"
)

// flightFlags binds the fields of one offer to command flags.
type flightFlags struct {
	from, to, typ       string
	date, dep, arr      string
	arrNext             bool
	ret, retDep, retArr string
	retArrNext          bool
	via                 string
	layover             int
	viaBack             string
	layoverBack         int
	airline             string
	pax                 int
	price               int64
	priceDate           string
}

func (f *flightFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.from, "from", "", "origin city")
	fs.StringVar(&f.to, "to", "", "destination city")
	fs.StringVar(&f.typ, "type", "one-way", "one-way | round-trip")
	fs.StringVar(&f.date, "date", "", "departure date YYYY-MM-DD")
	fs.StringVar(&f.dep, "dep", "", "departure time HH:MM")
	fs.StringVar(&f.arr, "arr", "", "arrival time HH:MM")
	fs.BoolVar(&f.arrNext, "arr-next-day", false, "outbound arrives the next day")
	fs.StringVar(&f.ret, "return", "", "return date YYYY-MM-DD (round-trip)")
	fs.StringVar(&f.retDep, "ret-dep", "", "return departure time HH:MM")
	fs.StringVar(&f.retArr, "ret-arr", "", "return arrival time HH:MM")
	fs.BoolVar(&f.retArrNext, "ret-arr-next-day", false, "return arrives the next day")
	fs.StringVar(&f.via, "via", "", "layover city outbound (empty = direct)")
	fs.IntVar(&f.layover, "layover", 0, "layover minutes outbound")
	fs.StringVar(&f.viaBack, "via-back", "", "layover city on return (empty = direct)")
	fs.IntVar(&f.layoverBack, "layover-back", 0, "layover minutes on return")
	fs.StringVar(&f.airline, "airline", "", "airline")
	fs.IntVar(&f.pax, "pax", 1, "passengers (1-4)")
	fs.Int64Var(&f.price, "price", 0, "total price for all passengers")
	fs.StringVar(&f.priceDate, "price-date", "", "date the price was seen (default today)")
}

// toWire builds the offer; the server does the full validation.
func (f *flightFlags) toWire() (pb.Flight, error) {
	if strings.TrimSpace(f.from) == "" || strings.TrimSpace(f.to) == "" {
		return pb.Flight{}, errors.New("need --from and --to")
	}
	if f.price <= 0 {
		return pb.Flight{}, errors.New("need --price > 0")
	}
	fl := pb.Flight{
		Origin:         strings.TrimSpace(f.from),
		Destination:    strings.TrimSpace(f.to),
		Type:           f.typ,
		DepartureDate:  f.date,
		DepartureTime:  f.dep,
		ArrivalTime:    f.arr,
		ArrivalNextDay: f.arrNext,

		IsDirectThere:       f.via == "",
		LayoverCityThere:    f.via,
		LayoverMinutesThere: f.layover,
		IsDirectBack:        f.viaBack == "",
		LayoverCityBack:     f.viaBack,
		LayoverMinutesBack:  f.layoverBack,

		Airline:    f.airline,
		Passengers: f.pax,
		TotalPrice: f.price,
		PriceDate:  f.priceDate,
	}
	if f.typ == "round-trip" {
		fl.ReturnDate = f.ret
		fl.ReturnDepartureTime = f.retDep
		fl.ReturnArrivalTime = f.retArr
		fl.ReturnArrivalNextDay = f.retArrNext
	}
	return fl, nil
}
