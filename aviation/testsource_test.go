// aviation/testsource_test.go
// Copyright(c) 2025 rzflight contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"github.com/roznet/rzflight-sub001/math"
)

// testSource is an in-memory DataSource that counts queries so tests can
// observe lazy-load behavior.
type testSource struct {
	airports   map[string]Airport
	runways    map[string][]Runway
	procedures map[string][]Procedure
	aip        map[string][]AIPEntry
	crossings  []BorderCrossing
	fields     []CatalogField

	calls map[string]int
}

func newTestSource() *testSource {
	s := &testSource{
		airports:   make(map[string]Airport),
		runways:    make(map[string][]Runway),
		procedures: make(map[string][]Procedure),
		aip:        make(map[string][]AIPEntry),
		calls:      make(map[string]int),
	}

	add := func(icao, name, country string, lon, lat float32) {
		s.airports[icao] = Airport{
			ICAO:     icao,
			Name:     name,
			Country:  country,
			Location: math.Point2LL{lon, lat},
		}
	}

	// A handful of real-ish airports around western Europe.
	add("LSZH", "Zürich Airport", "CH", 8.55, 47.46)
	add("LSGG", "Genève Airport", "CH", 6.11, 46.24)
	add("LFPG", "Charles de Gaulle International Airport", "FR", 2.55, 49.01)
	add("LFPO", "Paris-Orly Airport", "FR", 2.38, 48.72)
	add("EGLL", "London Heathrow Airport", "GB", -0.46, 51.47)
	add("EDDF", "Frankfurt am Main Airport", "DE", 8.57, 50.03)
	add("LIMC", "Milano Malpensa Airport", "IT", 8.72, 45.63)

	// EBBR has no coordinates; it cannot participate in distance queries.
	s.airports["EBBR"] = Airport{ICAO: "EBBR", Name: "Brussels Airport", Country: "BE"}

	s.runways["LSZH"] = []Runway{
		{
			LE: RunwayEnd{Id: "14", Heading: 135}, HE: RunwayEnd{Id: "32", Heading: 315},
			Length: 10827, Surface: "ASPH", Lighted: true,
		},
		{
			LE: RunwayEnd{Id: "16", Heading: 155}, HE: RunwayEnd{Id: "34", Heading: 335},
			Length: 12139, Surface: "ASPH", Lighted: true,
		},
	}
	s.runways["LSGG"] = []Runway{
		{LE: RunwayEnd{Id: "04", Heading: 45}, HE: RunwayEnd{Id: "22", Heading: 225}, Length: 12795, Surface: "CON"},
	}

	ils, vor := ApproachILS, ApproachVOR
	s.procedures["LSZH"] = []Procedure{
		{Name: "ILS 14", Type: ProcedureApproach, Approach: &ils, RunwayNumber: "14"},
		{Name: "VOR 14", Type: ProcedureApproach, Approach: &vor, RunwayNumber: "14"},
		{Name: "VEBIT 1", Type: ProcedureDeparture, RunwayNumber: "16"},
		{Name: "GIPOL 1", Type: ProcedureArrival},
	}

	s.aip["LSZH"] = []AIPEntry{
		{Ident: "LSZH", Section: SectionHandling, Field: "Fuel types", Value: "100LL, JET A1"},
		{Ident: "LSZH", Section: SectionOperational, Field: "Customs", Value: "H24"},
	}

	s.crossings = []BorderCrossing{
		{Code: "LSZH", MatchedCode: "LSZH"},
		{Code: "GVA", MatchedCode: "LSGG"},
	}

	s.fields = []CatalogField{
		{Id: 1, Name: "Fuel types", Section: SectionHandling},
		{Id: 2, Name: "Customs", Section: SectionOperational},
	}

	return s
}

func (s *testSource) Airports(filter func(Airport) bool) ([]Airport, error) {
	s.calls["airports"]++
	var aps []Airport
	for _, ap := range s.airports {
		if filter == nil || filter(ap) {
			aps = append(aps, ap)
		}
	}
	return aps, nil
}

func (s *testSource) AirportByICAO(icao string) (Airport, error) {
	s.calls["airportByICAO"]++
	if ap, ok := s.airports[icao]; ok {
		return ap, nil
	}
	return Airport{}, ErrUnknownAirport
}

func (s *testSource) Runways(icao string) ([]Runway, error) {
	s.calls["runways"]++
	return s.runways[icao], nil
}

func (s *testSource) Procedures(icao string) ([]Procedure, error) {
	s.calls["procedures"]++
	return s.procedures[icao], nil
}

func (s *testSource) AIPEntries(icao string) ([]AIPEntry, error) {
	s.calls["aip"]++
	return s.aip[icao], nil
}

func (s *testSource) BorderCrossings() ([]BorderCrossing, error) {
	s.calls["borderCrossings"]++
	return s.crossings, nil
}

func (s *testSource) CatalogFields() ([]CatalogField, error) {
	s.calls["catalogFields"]++
	return s.fields, nil
}
