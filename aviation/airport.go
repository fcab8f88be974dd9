// aviation/airport.go
// Copyright(c) 2025 rzflight contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"strings"

	"github.com/roznet/rzflight-sub001/math"
	"github.com/roznet/rzflight-sub001/util"
)

// Airport is the aggregate: immutable identity and core attributes plus
// three lazily-populated collections. Airports are plain values; a copy
// returned by a catalog lookup carries its own collections, so extension
// loads performed on one copy are never visible through another.
type Airport struct {
	ICAO      string // identity; unique key
	Name      string
	Country   string
	Location  math.Point2LL
	Elevation int    // feet MSL
	Type      string // classification, e.g. "large_airport"

	Runways    []Runway
	Procedures []Procedure
	AIPEntries []AIPEntry
}

// MakeAirport builds an Airport for the given code from the data source.
// Runways are loaded eagerly; procedures and AIP entries are deferred
// until requested. Returns ErrUnknownAirport when no row exists for the
// code.
func MakeAirport(icao string, ds DataSource) (Airport, error) {
	ap, err := ds.AirportByICAO(icao)
	if err != nil {
		return Airport{}, err
	}
	if err := ap.AddRunways(ds); err != nil {
		return Airport{}, err
	}
	return ap, nil
}

// HasLocation reports whether the airport has known coordinates. A zero
// location means "unknown", not 0N 0E; such airports cannot participate
// in distance queries.
func (ap Airport) HasLocation() bool {
	return !ap.Location.IsZero()
}

///////////////////////////////////////////////////////////////////////////
// lazy extension loading

// AddRunways populates the runway collection from the data source. It is
// a no-op when the collection is already populated, so repeated calls on
// the same value issue a single store query. This is a per-instance
// cache: a fresh copy of the same airport starts empty again.
func (ap *Airport) AddRunways(ds DataSource) error {
	if len(ap.Runways) > 0 {
		return nil
	}
	runways, err := ds.Runways(ap.ICAO)
	if err != nil {
		return err
	}
	ap.Runways = runways
	return nil
}

// AddProcedures populates the procedure collection; no-op when already
// populated.
func (ap *Airport) AddProcedures(ds DataSource) error {
	if len(ap.Procedures) > 0 {
		return nil
	}
	procedures, err := ds.Procedures(ap.ICAO)
	if err != nil {
		return err
	}
	ap.Procedures = procedures
	return nil
}

// AddAIPEntries populates the AIP entry collection; no-op when already
// populated.
func (ap *Airport) AddAIPEntries(ds DataSource) error {
	if len(ap.AIPEntries) > 0 {
		return nil
	}
	entries, err := ds.AIPEntries(ap.ICAO)
	if err != nil {
		return err
	}
	ap.AIPEntries = entries
	return nil
}

// AddExtendedData loads all three extension collections.
func (ap *Airport) AddExtendedData(ds DataSource) error {
	if err := ap.AddRunways(ds); err != nil {
		return err
	}
	if err := ap.AddProcedures(ds); err != nil {
		return err
	}
	return ap.AddAIPEntries(ds)
}

///////////////////////////////////////////////////////////////////////////
// derived queries over the loaded collections

func (ap Airport) proceduresOfType(t ProcedureType) []Procedure {
	return util.FilterSlice(ap.Procedures, func(p Procedure) bool { return p.Type == t })
}

func (ap Airport) Approaches() []Procedure {
	return ap.proceduresOfType(ProcedureApproach)
}

func (ap Airport) Departures() []Procedure {
	return ap.proceduresOfType(ProcedureDeparture)
}

func (ap Airport) Arrivals() []Procedure {
	return ap.proceduresOfType(ProcedureArrival)
}

// AIPSection returns the loaded AIP entries belonging to the given
// section.
func (ap Airport) AIPSection(s AIPSection) []AIPEntry {
	return util.FilterSlice(ap.AIPEntries, func(e AIPEntry) bool { return e.Section == s })
}

// MostPreciseApproach returns the most precise approach serving the
// runway end with the given identifier, from the loaded procedures.
func (ap Airport) MostPreciseApproach(runwayIdent string) (Procedure, bool) {
	return MostPreciseApproach(ap.Procedures, runwayIdent)
}

// MostPreciseApproachForRunway considers both ends of the given runway
// and returns the most precise approach serving either.
func (ap Airport) MostPreciseApproachForRunway(r Runway) (Procedure, bool) {
	le, leOk := ap.MostPreciseApproach(r.LE.Id)
	he, heOk := ap.MostPreciseApproach(r.HE.Id)
	switch {
	case leOk && heOk:
		if he.Approach.MorePrecise(*le.Approach) {
			return he, true
		}
		return le, true
	case leOk:
		return le, true
	case heOk:
		return he, true
	default:
		return Procedure{}, false
	}
}

// HasPrecisionApproach reports whether any loaded approach is a
// precision approach.
func (ap Airport) HasPrecisionApproach() bool {
	for _, p := range ap.Approaches() {
		if p.Approach != nil && p.Approach.Category() == CategoryPrecision {
			return true
		}
	}
	return false
}

// HasFuel reports whether any loaded AIP entry value mentions the given
// fuel kind, e.g. "100LL" or "JET A".
func (ap Airport) HasFuel(kind string) bool {
	for _, e := range ap.AIPEntries {
		if strings.Contains(strings.ToUpper(e.Value), strings.ToUpper(kind)) {
			return true
		}
	}
	return false
}

// LongestRunway returns the longest loaded runway.
func (ap Airport) LongestRunway() (Runway, bool) {
	var best Runway
	found := false
	for _, r := range ap.Runways {
		if !found || r.Length > best.Length {
			best = r
			found = true
		}
	}
	return best, found
}

func (ap Airport) HasHardRunway() bool {
	for _, r := range ap.Runways {
		if r.HardSurface() {
			return true
		}
	}
	return false
}

func (ap Airport) HasLightedRunway() bool {
	for _, r := range ap.Runways {
		if r.Lighted {
			return true
		}
	}
	return false
}

// BestRunway returns the loaded runway best aligned with the given wind.
func (ap Airport) BestRunway(wind Heading) (Runway, bool) {
	return BestRunway(ap.Runways, wind)
}
