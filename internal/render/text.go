// Package render turns reports, event lists and satellite summaries into
// terminal text or JSON.
package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/mr1hm/go-astrosky/internal/models"
	"github.com/mr1hm/go-astrosky/internal/report"
)

const (
	colorHeading = "#7AA2F7"
	colorAccent  = "#E0AF68"
	colorPeak    = "#F7768E"
	colorDim     = "60"
)

// Renderer writes human-readable output. With color disabled every style
// renders its input unchanged, apart from the header box.
type Renderer struct {
	color bool

	box     lipgloss.Style
	title   lipgloss.Style
	heading lipgloss.Style
	accent  lipgloss.Style
	peak    lipgloss.Style
	dim     lipgloss.Style
}

func New(color bool) *Renderer {
	r := &Renderer{
		color: color,
		box:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
	if color {
		r.box = r.box.BorderForeground(lipgloss.Color(colorHeading))
		r.title = lipgloss.NewStyle().Bold(true)
		r.heading = lipgloss.NewStyle().Foreground(lipgloss.Color(colorHeading)).Bold(true)
		r.accent = lipgloss.NewStyle().Foreground(lipgloss.Color(colorAccent))
		r.peak = lipgloss.NewStyle().Foreground(lipgloss.Color(colorPeak)).Bold(true)
		r.dim = lipgloss.NewStyle().Foreground(lipgloss.Color(colorDim))
	}
	return r
}

// ColorEnabled reports whether output to f should be styled. NO_COLOR and
// the explicit flag both win over terminal detection.
func ColorEnabled(noColor bool, f *os.File) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func (r *Renderer) paint(st lipgloss.Style, s string) string {
	if !r.color {
		return s
	}
	return st.Render(s)
}

// Report writes the nightly report. opts decides whether an empty ISS
// section is shown with its placeholder line or left out.
func (r *Renderer) Report(w io.Writer, rep *models.Report, opts report.Options) error {
	var b strings.Builder

	header := r.paint(r.title, "Tonight's Sky · "+rep.Date.Format("Jan 02, 2006")) + "\n" +
		fmt.Sprintf("%s · Sunset %s · Sunrise %s",
			FormatLocation(rep.Location.Lat, rep.Location.Lon, 2),
			clock(rep.Sun.Sunset), clock(rep.Sun.Sunrise))
	if rep.Moon != nil {
		header += "\n" + moonLine(rep.Moon)
	}
	b.WriteString(r.box.Render(header))
	b.WriteString("\n\n")

	if len(rep.Planets) > 0 {
		r.section(&b, "PLANETS")
		for _, p := range rep.Planets {
			fmt.Fprintf(&b, "  %-10s %-3s %3.0f°  Sets %s   %s\n",
				p.Name, p.Direction, p.Altitude, clockPtr(p.SetTime), r.paint(r.dim, p.Description))
		}
		b.WriteString("\n")
	}

	if len(rep.ISSPasses) > 0 || opts.Includes(report.SectionISS) {
		r.section(&b, "ISS PASSES")
		if len(rep.ISSPasses) == 0 {
			b.WriteString("  No visible passes tonight\n")
		}
		for _, p := range rep.ISSPasses {
			fmt.Fprintf(&b, "  %s  %d min  %s %s → %s  Max %.0f°\n",
				clock(p.StartTime), p.DurationMinutes, r.paint(r.accent, fmt.Sprintf("%-8s", p.Brightness)),
				p.StartDirection, p.EndDirection, p.MaxAltitude)
		}
		b.WriteString("\n")
	}

	if len(rep.Meteors) > 0 {
		r.section(&b, "METEOR SHOWERS")
		for _, m := range rep.Meteors {
			name := m.Name
			if m.IsPeak {
				name += r.paint(r.peak, " (Peak!)")
			}
			fmt.Fprintf(&b, "  %s · Peak %s · ~%d/hour\n", name, m.PeakDate, m.ZHR)
			fmt.Fprintf(&b, "    Look toward %s after midnight\n", m.RadiantConstellation)
		}
		b.WriteString("\n")
	}

	if len(rep.DeepSky) > 0 {
		r.section(&b, "TONIGHT'S DEEP SKY PICKS")
		for _, o := range rep.DeepSky {
			fmt.Fprintf(&b, "  %-5s %-20s %-12s Mag %-4.1f  %s\n",
				o.ID, truncate(o.Name, 20), o.Constellation, o.Magnitude, r.paint(r.dim, o.Tip))
		}
		b.WriteString("\n")
	}

	if len(rep.Events) > 0 {
		r.section(&b, "UPCOMING EVENTS")
		for _, e := range rep.Events {
			fmt.Fprintf(&b, "  %s  %s\n", r.paint(r.accent, e.Date.Format("Jan 02")), e.Title)
		}
		b.WriteString("\n")
	}

	if rep.Weather != nil || rep.Aurora != nil {
		r.section(&b, "CONDITIONS")
		if c := rep.Weather; c != nil {
			fmt.Fprintf(&b, "  Weather  %s · %s\n", r.paint(r.accent, c.Condition), c.Summary)
		}
		if a := rep.Aurora; a != nil {
			fmt.Fprintf(&b, "  Aurora   Kp %.1f (%s) · %s\n", a.KpCurrent, a.ActivityLevel, a.Summary)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Events writes the upcoming-events listing for the window starting at start.
func (r *Renderer) Events(w io.Writer, events []models.AstroEvent, start time.Time, days int) error {
	var b strings.Builder
	end := start.AddDate(0, 0, days)
	r.section(&b, fmt.Sprintf("UPCOMING EVENTS (%s - %s)", start.Format("Jan 02"), end.Format("Jan 02")))
	if len(events) == 0 {
		b.WriteString("  No upcoming events in this period\n")
	}
	for _, e := range events {
		fmt.Fprintf(&b, "  %s  %s\n", r.paint(r.accent, e.Date.Format("Jan 02")), e.Title)
		if e.Description != "" {
			fmt.Fprintf(&b, "          %s\n", r.paint(r.dim, e.Description))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Satellites writes a satellite pass summary followed by the individual passes.
func (r *Renderer) Satellites(w io.Writer, info models.SatelliteInfo) error {
	var b strings.Builder
	r.section(&b, "SATELLITE PASSES")
	fmt.Fprintf(&b, "  %d passes · %d Starlink · %d stations\n",
		info.TotalPasses, info.StarlinkPasses, info.StationPasses)
	if np := info.NextBrightPass; np != nil {
		fmt.Fprintf(&b, "  Next bright pass: %s at %s (mag %.1f)\n",
			np.Satellite, np.StartTime.Format("Jan 02 15:04"), np.Magnitude)
	}
	b.WriteString("\n")
	if len(info.Passes) == 0 {
		b.WriteString("  No visible passes\n")
	}
	for _, p := range info.Passes {
		fmt.Fprintf(&b, "  %s  %-24s %-8s %s → %s  Max %.0f°  mag %.1f\n",
			p.StartTime.Format("Jan 02 15:04"), truncate(p.Satellite, 24), p.Brightness,
			p.StartDirection, p.EndDirection, p.MaxAltitude, p.Magnitude)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Renderer) section(b *strings.Builder, name string) {
	b.WriteString(r.paint(r.heading, name))
	b.WriteString("\n")
}

func moonLine(m *models.MoonInfo) string {
	return fmt.Sprintf("%s (%.0f%%) · %s darkness", m.PhaseName, m.Illumination, m.DarknessQuality)
}

// FormatLocation prints coordinates with hemisphere letters, e.g.
// "40.71°N, 74.01°W".
func FormatLocation(lat, lon float64, precision int) string {
	latDir, lonDir := "N", "E"
	if lat < 0 {
		latDir = "S"
	}
	if lon < 0 {
		lonDir = "W"
	}
	return fmt.Sprintf("%.*f°%s, %.*f°%s", precision, math.Abs(lat), latDir, precision, math.Abs(lon), lonDir)
}

func clock(t time.Time) string {
	if t.IsZero() {
		return "--:--"
	}
	return t.UTC().Format("15:04")
}

func clockPtr(t *time.Time) string {
	if t == nil {
		return "--:--"
	}
	return clock(*t)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
