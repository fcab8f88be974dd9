// wx/wind.go
// Copyright(c) 2025 rzflight contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wx

import (
	"fmt"
	"time"

	"github.com/roznet/rzflight-sub001/aviation"
	"github.com/roznet/rzflight-sub001/rand"
)

// RefreshInterval is how long a wind set from a weather report is
// considered current for its source airport.
const RefreshInterval = 10 * time.Minute

// RunwayWind is a small stateful decision model: a runway heading, a
// wind, and optionally the weather report the wind came from. It answers
// crosswind/headwind questions for the current pairing and can
// synthesize randomized winds for training scenarios.
//
// The source attribution tracks provenance: it is set when the wind
// comes from a report and cleared whenever the wind is edited manually,
// since a hand-edited wind no longer describes any observation.
type RunwayWind struct {
	RunwayHeading aviation.Heading
	WindHeading   aviation.Heading
	WindSpeed     aviation.Speed
	WindGust      *aviation.Speed

	source     string // airport code the wind was observed at
	sourceTime time.Time
}

func MakeRunwayWind(runway, wind aviation.Heading, speed aviation.Speed) RunwayWind {
	return RunwayWind{
		RunwayHeading: runway,
		WindHeading:   wind,
		WindSpeed:     speed,
	}
}

func (w RunwayWind) String() string {
	return fmt.Sprintf("rwy %s wind %s@%d", w.RunwayHeading, w.WindHeading, int(w.WindSpeed))
}

///////////////////////////////////////////////////////////////////////////
// derived readouts

// CrossComponent returns the fraction of the wind acting across the
// runway.
func (w RunwayWind) CrossComponent() aviation.Percent {
	return w.RunwayHeading.CrossComponent(w.WindHeading)
}

// HeadComponent returns the fraction of the wind acting along the
// runway.
func (w RunwayWind) HeadComponent() aviation.Percent {
	return w.RunwayHeading.HeadComponent(w.WindHeading)
}

// CrossSpeed returns the crosswind in knots.
func (w RunwayWind) CrossSpeed() aviation.Speed {
	return w.WindSpeed.Scale(w.CrossComponent())
}

// HeadSpeed returns the headwind (or tailwind) in knots.
func (w RunwayWind) HeadSpeed() aviation.Speed {
	return w.WindSpeed.Scale(w.HeadComponent())
}

// DirectDirection classifies the wind along the runway axis: ahead for a
// headwind, behind for a tailwind.
func (w RunwayWind) DirectDirection() aviation.Direction {
	return w.RunwayHeading.DirectionTo(w.WindHeading)
}

// CrossDirection classifies the wind in the perpendicular framing, i.e.
// which side of the runway it blows from.
func (w RunwayWind) CrossDirection() aviation.Direction {
	return w.RunwayHeading.Rotate(90).DirectionTo(w.WindHeading)
}

///////////////////////////////////////////////////////////////////////////
// weather report provenance

// Refreshed reports whether the current wind came from a report for the
// given airport code observed less than RefreshInterval before now. A
// stale source or one for a different airport counts as not refreshed.
func (w RunwayWind) Refreshed(icao string, now time.Time) bool {
	if w.source == "" || w.source != icao {
		return false
	}
	return now.Sub(w.sourceTime) < RefreshInterval
}

// SetFromMETAR takes the wind fields from a weather report and stamps
// the source attribution with the given airport code and the report's
// observation time. A variable-wind report (no direction) keeps the
// current wind heading.
func (w *RunwayWind) SetFromMETAR(m METAR, icao string) {
	if m.WindDir != nil {
		w.WindHeading = aviation.MakeHeading(*m.WindDir)
	}
	w.WindSpeed = aviation.MakeSpeed(m.WindSpeed)
	if m.WindGust != nil {
		g := aviation.MakeSpeed(*m.WindGust)
		w.WindGust = &g
	} else {
		w.WindGust = nil
	}
	w.source = icao
	w.sourceTime = m.Time
}

///////////////////////////////////////////////////////////////////////////
// mutators

// RotateRunway turns the runway heading by delta degrees.
func (w *RunwayWind) RotateRunway(delta int) {
	w.RunwayHeading = w.RunwayHeading.Rotate(delta)
}

// OpposingRunway switches to the opposite runway end.
func (w *RunwayWind) OpposingRunway() {
	w.RunwayHeading = w.RunwayHeading.Opposite()
}

// RotateWind turns the wind by delta degrees. Editing the wind
// invalidates the weather report attribution.
func (w *RunwayWind) RotateWind(delta int) {
	w.WindHeading = w.WindHeading.Rotate(delta)
	w.clearSource()
}

// IncreaseWind changes the wind speed by delta knots, clamped at zero,
// and invalidates the weather report attribution.
func (w *RunwayWind) IncreaseWind(delta int) {
	w.WindSpeed = w.WindSpeed.Increase(delta)
	w.clearSource()
}

func (w *RunwayWind) clearSource() {
	w.source = ""
	w.sourceTime = time.Time{}
}

///////////////////////////////////////////////////////////////////////////
// scenario synthesis

// Discrete wind speed distribution for training scenarios: calm speeds
// and strong winds are possible but moderate speeds dominate.
var windSpeedWeights = func() []int {
	w := make([]int, 51) // knots 0..50
	for kts := range w {
		switch {
		case kts <= 5:
			w[kts] = 5
		case kts <= 20:
			w[kts] = 10
		default:
			w[kts] = 1
		}
	}
	return w
}()

// Randomize replaces the wind with a synthetic one for training: a
// heading within 90 degrees of the runway in 10 degree steps, a speed
// drawn from the weighted distribution, and sometimes a gust above the
// base speed. Clears any report attribution.
func (w *RunwayWind) Randomize(r *rand.Rand) {
	// Nearest runway-aligned 10 degree bucket, then offset by a uniform
	// draw in {-90,...,+90} step 10.
	bucket := aviation.MakeHeading(10 * ((int(w.RunwayHeading) + 5) / 10))
	offset := 10 * (r.Intn(19) - 9)
	w.WindHeading = bucket.Rotate(offset)

	kts := rand.SampleWeighted(r, windSpeedWeights, func(weight int) int { return weight })
	w.WindSpeed = aviation.MakeSpeed(kts)

	// 75% of the time, gusts when a second independent draw comes in
	// above the base speed, scaled up proportionally.
	w.WindGust = nil
	if r.Float32() < 0.75 {
		draw := rand.SampleWeighted(r, windSpeedWeights, func(weight int) int { return weight })
		if draw > kts {
			g := aviation.MakeSpeed(draw + kts/4)
			w.WindGust = &g
		}
	}

	w.clearSource()
}
