// aviation/runway.go
// Copyright(c) 2025 rzflight contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"strings"

	"github.com/roznet/rzflight-sub001/math"
)

// RunwayEnd describes one end of a physical runway.
type RunwayEnd struct {
	Id                 string // e.g. "09L"
	Threshold          math.Point2LL
	Elevation          *int     // feet MSL; nil if unknown
	Heading            Heading  // true heading
	DisplacedThreshold *float32 // feet; nil if none
}

// HasLocation reports whether the end's threshold coordinates are known.
// A zero Point2LL means "unknown", not the origin; ends without a
// location cannot participate in distance queries.
func (re RunwayEnd) HasLocation() bool {
	return !re.Threshold.IsZero()
}

// Runway is a physical runway: two ends that are nominally 180 degrees
// apart (assumed, not enforced) plus its physical attributes.
type Runway struct {
	LE, HE  RunwayEnd
	Length  int // feet
	Width   int // feet
	Surface string
	Lighted bool
	Closed  bool
}

var hardSurfacePrefixes = []string{"ASP", "CON", "PEM", "BIT", "PAVED"}

// HardSurface reports whether the runway surface is paved.
func (r Runway) HardSurface() bool {
	surface := strings.ToUpper(r.Surface)
	for _, prefix := range hardSurfacePrefixes {
		if strings.HasPrefix(surface, prefix) {
			return true
		}
	}
	return false
}

// Ends returns both runway ends, low end first.
func (r Runway) Ends() [2]RunwayEnd {
	return [2]RunwayEnd{r.LE, r.HE}
}

// HasEnd reports whether either end matches the given identifier.
func (r Runway) HasEnd(ident string) bool {
	return r.LE.Id == ident || r.HE.Id == ident
}

// BestEnd returns the end to use for the given wind: the one for which
// the wind is ahead, i.e. landing and departing into the wind. When
// neither end qualifies (a direct crosswind), the low end is kept.
func (r Runway) BestEnd(wind Heading) RunwayEnd {
	if r.HE.Heading.DirectionTo(wind) == DirectionAhead {
		return r.HE
	}
	return r.LE
}

// BestHeading returns the heading of the runway end best aligned with the
// given wind.
func (r Runway) BestHeading(wind Heading) Heading {
	return r.BestEnd(wind).Heading
}

// BetterFor reports whether r is strictly preferable to other for the
// given wind, comparing the head-wind component of each runway's best
// end. Ties are not better, so the first-seen runway is retained by
// callers scanning a list.
func (r Runway) BetterFor(wind Heading, other Runway) bool {
	return r.BestHeading(wind).HeadComponent(wind) > other.BestHeading(wind).HeadComponent(wind)
}

// BestRunway returns the runway among those provided that is best aligned
// with the given wind, or false if the slice is empty.
func BestRunway(runways []Runway, wind Heading) (Runway, bool) {
	if len(runways) == 0 {
		return Runway{}, false
	}
	best := runways[0]
	for _, r := range runways[1:] {
		if r.BetterFor(wind, best) {
			best = r
		}
	}
	return best, true
}
