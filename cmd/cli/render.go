package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	pb "github.com/kayatkin/flight-tracker-sub000/api/flighttracker/v1"
)

const (
	colorAccent    = "#7C3AED"
	colorSecondary = "#B1B8C7"
	colorError     = "#EF4444"
	colorSuccess   = "#22C55E"
	colorWarning   = "#F59E0B"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorAccent))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorSecondary))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorError))
	goodStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorSuccess))
	badStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorError))
	neutralStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorWarning))
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3A3F55")).
			Padding(0, 1)
)

func printJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func money(v float64) string { return fmt.Sprintf("%.0f", v) }

func renderVerdict(v pb.Verdict) string {
	st := neutralStyle
	switch v.Classification {
	case "GOOD":
		st = goodStyle
	case "BAD":
		st = badStyle
	}
	line := st.Render(v.Classification) + "  " + v.Message
	if v.PriceDelta != nil {
		line += mutedStyle.Render(fmt.Sprintf(" (%+d per person vs best)", *v.PriceDelta))
	}
	return line
}

func renderSave(s pb.SaveStatus) string {
	switch {
	case s.LastError != "":
		return errorStyle.Render("not saved yet: " + s.LastError + " (will retry)")
	case s.Pending:
		return mutedStyle.Render("saving…")
	case !s.LastSavedAt.IsZero():
		return mutedStyle.Render("saved " + s.LastSavedAt.Local().Format(time.TimeOnly))
	default:
		return mutedStyle.Render("saved")
	}
}

func route(f pb.Flight) string {
	arrow := " → "
	if f.Type == "round-trip" {
		arrow = " ⇄ "
	}
	return f.Origin + arrow + f.Destination
}

func stops(f pb.Flight) string {
	s := "direct"
	if !f.IsDirectThere {
		s = fmt.Sprintf("via %s %dm", f.LayoverCityThere, f.LayoverMinutesThere)
	}
	if f.Type == "round-trip" {
		back := "direct"
		if !f.IsDirectBack {
			back = fmt.Sprintf("via %s %dm", f.LayoverCityBack, f.LayoverMinutesBack)
		}
		s += " / " + back
	}
	return s
}

func flightLine(f pb.Flight) string {
	dates := f.DepartureDate
	if f.ReturnDate != "" {
		dates += ".." + f.ReturnDate
	}
	return fmt.Sprintf("%-36s %-23s %-14s %-22s %8s/pp  %s",
		f.ID, dates, f.Airline, stops(f), money(f.PerPerson), mutedStyle.Render("x"+fmt.Sprint(f.Passengers)))
}

// renderGroups prints the history grouped by destination, best offer first.
func renderGroups(groups []pb.DestinationGroup) string {
	if len(groups) == 0 {
		return mutedStyle.Render("No flights yet. Use `ft add` to record one.")
	}
	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		head := titleStyle.Render(g.Destination) + mutedStyle.Render(fmt.Sprintf("  %d offers  min %s  avg %s  max %s",
			g.Count, money(g.MinPerPerson), money(g.AvgPerPerson), money(g.MaxPerPerson)))
		lines := []string{head, goodStyle.Render("best ") + route(g.Best) + "  " + money(g.Best.PerPerson) + "/pp " + g.Best.Airline}
		for _, f := range g.Flights {
			lines = append(lines, flightLine(f))
		}
		b.WriteString(cardStyle.Render(strings.Join(lines, "\n")))
	}
	return b.String()
}

func renderIdentity(id pb.Identity) string {
	if id.Kind == "guest" {
		return titleStyle.Render("Guest") + mutedStyle.Render(fmt.Sprintf(" of %s (%s)", id.Label, id.Permission))
	}
	return titleStyle.Render(id.Label)
}

func renderSessions(active, inactive []pb.Session, now time.Time) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Active links") + "\n")
	if len(active) == 0 {
		b.WriteString(mutedStyle.Render("  none") + "\n")
	}
	for _, s := range active {
		fmt.Fprintf(&b, "  %-5s %s  %s\n    %s\n", s.Permission, s.Token,
			mutedStyle.Render("expires in "+until(s.ExpiresAt, now)), s.Link)
	}
	if len(inactive) > 0 {
		b.WriteString(titleStyle.Render("Inactive links") + "\n")
		for _, s := range inactive {
			why := "revoked"
			if s.Active {
				why = "expired"
			}
			fmt.Fprintf(&b, "  %s\n", mutedStyle.Render(fmt.Sprintf("%-5s %s  %s", s.Permission, s.Token, why)))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func until(t, now time.Time) string {
	d := t.Sub(now)
	if d <= 0 {
		return "0m"
	}
	if days := int(d.Hours()) / 24; days > 0 {
		return fmt.Sprintf("%dd", days)
	}
	return d.Truncate(time.Minute).String()
}
