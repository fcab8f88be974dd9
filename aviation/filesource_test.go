// aviation/filesource_test.go
// Copyright(c) 2025 rzflight contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"bytes"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/klauspost/compress/zstd"

	"github.com/roznet/rzflight-sub001/log"
)

func zstdFile(t *testing.T, csv string) *fstest.MapFile {
	t.Helper()
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := zw.Write([]byte(csv)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return &fstest.MapFile{Data: buf.Bytes()}
}

func makeTestFS(t *testing.T) fstest.MapFS {
	t.Helper()
	return fstest.MapFS{
		"airports.csv.zst": zstdFile(t, `id,ident,type,name,latitude_deg,longitude_deg,elevation_ft,continent,iso_country
2434,LSZH,large_airport,Zürich Airport,47.4647,8.5492,1416,EU,CH
2429,LSGG,large_airport,Genève Airport,46.2381,6.1089,1411,EU,CH
,,small_airport,No Ident,0,0,0,EU,XX
`),
		"runways.csv.zst": zstdFile(t, `id,airport_ident,length_ft,width_ft,surface,lighted,closed,le_ident,le_latitude_deg,le_longitude_deg,le_elevation_ft,le_heading_degT,le_displaced_threshold_ft,he_ident,he_latitude_deg,he_longitude_deg,he_elevation_ft,he_heading_degT,he_displaced_threshold_ft
1,LSZH,12139,197,ASP,1,0,16,47.4748,8.5367,1390,155,,34,47.4463,8.5552,1402,335,1673
2,LSZH,10827,197,ASP,1,0,14,47.4816,8.5365,,135.4,,32,47.4588,8.5674,,315.4,
3,LSZH,0,0,GRS,0,1,,,,,,,,,,,,
`),
		"procedures.csv.zst": zstdFile(t, `airport_ident,name,type,approach_type,runway_number,runway_letter,runway_ident,source,authority
LSZH,ILS 14,approach,ILS,14,,,dfs,skyguide
LSZH,VOR 14,approach,VOR,14,,,dfs,skyguide
LSZH,VEBIT 1,departure,,16,,,dfs,skyguide
`),
		"aip.csv.zst": zstdFile(t, `ident,section,field,value,alt_field,alt_value,source
LSZH,handling,Fuel types,"100LL, JET A1",Treibstoff,,aip
LSZH,unheard-of,Remarks,none,,,aip
`),
		"border_crossings.csv.zst": zstdFile(t, `code,matched_code
LSZH,LSZH
GVA,LSGG
`),
		"fields.csv.zst": zstdFile(t, `id,name,section
1,Fuel types,handling
2,Customs,operational
`),
	}
}

func TestFileSourceAirports(t *testing.T) {
	s := NewFileSource(makeTestFS(t), log.NewDiscard())

	aps, err := s.Airports(nil)
	if err != nil {
		t.Fatal(err)
	}
	// The row with no ident is dropped.
	if len(aps) != 2 {
		t.Fatalf("got %d airports, expected 2", len(aps))
	}

	ap, err := s.AirportByICAO("LSZH")
	if err != nil {
		t.Fatal(err)
	}
	if ap.Name != "Zürich Airport" || ap.Country != "CH" || ap.Elevation != 1416 {
		t.Errorf("got %+v", ap)
	}
	if ap.Location.Latitude() != 47.4647 || ap.Location.Longitude() != 8.5492 {
		t.Errorf("location: got %v", ap.Location)
	}

	if _, err := s.AirportByICAO("KJFK"); !errors.Is(err, ErrUnknownAirport) {
		t.Errorf("got %v, expected ErrUnknownAirport", err)
	}
}

func TestFileSourceRunways(t *testing.T) {
	s := NewFileSource(makeTestFS(t), log.NewDiscard())

	runways, err := s.Runways("LSZH")
	if err != nil {
		t.Fatal(err)
	}
	// The row with no low-end identifier is dropped.
	if len(runways) != 2 {
		t.Fatalf("got %d runways, expected 2", len(runways))
	}

	r := runways[0]
	if r.Length != 12139 || !r.Lighted || r.Closed || !r.HardSurface() {
		t.Errorf("got %+v", r)
	}
	if r.LE.Id != "16" || r.HE.Id != "34" || r.LE.Heading != 155 || r.HE.Heading != 335 {
		t.Errorf("ends: got %+v / %+v", r.LE, r.HE)
	}
	if r.LE.Elevation == nil || *r.LE.Elevation != 1390 {
		t.Errorf("LE elevation: got %v", r.LE.Elevation)
	}
	if r.LE.DisplacedThreshold != nil {
		t.Errorf("LE displaced threshold: got %v, expected nil", *r.LE.DisplacedThreshold)
	}
	if r.HE.DisplacedThreshold == nil || *r.HE.DisplacedThreshold != 1673 {
		t.Errorf("HE displaced threshold: got %v", r.HE.DisplacedThreshold)
	}
	if !r.LE.HasLocation() {
		t.Error("LE threshold coordinates are present")
	}

	// Fractional headings round to the nearest degree; missing elevation
	// stays absent.
	r = runways[1]
	if r.LE.Heading != 135 || r.HE.Heading != 315 {
		t.Errorf("rounded headings: got %v / %v", r.LE.Heading, r.HE.Heading)
	}
	if r.LE.Elevation != nil {
		t.Errorf("missing elevation should be nil, got %v", *r.LE.Elevation)
	}

	if runways, err := s.Runways("LSGG"); err != nil || len(runways) != 0 {
		t.Errorf("LSGG: got %v, %v", runways, err)
	}
}

func TestFileSourceProcedures(t *testing.T) {
	s := NewFileSource(makeTestFS(t), log.NewDiscard())

	procs, err := s.Procedures("LSZH")
	if err != nil {
		t.Fatal(err)
	}
	if len(procs) != 3 {
		t.Fatalf("got %d procedures, expected 3", len(procs))
	}

	if p := procs[0]; p.Type != ProcedureApproach || p.Approach == nil || *p.Approach != ApproachILS {
		t.Errorf("got %+v", p)
	}
	if p := procs[2]; p.Type != ProcedureDeparture || p.Approach != nil || p.RunwayIdentifier() != "16" {
		t.Errorf("got %+v", p)
	}
}

func TestFileSourceAIP(t *testing.T) {
	s := NewFileSource(makeTestFS(t), log.NewDiscard())

	entries, err := s.AIPEntries("LSZH")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, expected 2", len(entries))
	}
	if e := entries[0]; e.Section != SectionHandling || e.Value != "100LL, JET A1" || e.AltField != "Treibstoff" {
		t.Errorf("got %+v", e)
	}
	// Unknown section names fall back to operational.
	if entries[1].Section != SectionOperational {
		t.Errorf("got section %v", entries[1].Section)
	}
}

func TestFileSourceTables(t *testing.T) {
	s := NewFileSource(makeTestFS(t), log.NewDiscard())

	crossings, err := s.BorderCrossings()
	if err != nil {
		t.Fatal(err)
	}
	if len(crossings) != 2 || crossings[1].Code != "GVA" || crossings[1].MatchedCode != "LSGG" {
		t.Errorf("got %+v", crossings)
	}

	fields, err := s.CatalogFields()
	if err != nil {
		t.Fatal(err)
	}
	if len(fields) != 2 || fields[0].Id != 1 || fields[0].Section != SectionHandling {
		t.Errorf("got %+v", fields)
	}
}

func TestFileSourceMissingTable(t *testing.T) {
	fsys := makeTestFS(t)
	delete(fsys, "runways.csv.zst")
	s := NewFileSource(fsys, log.NewDiscard())

	if _, err := s.Runways("LSZH"); err == nil {
		t.Error("expected an error for a missing resource file")
	}
}

func TestFileSourceMissingHeader(t *testing.T) {
	fsys := makeTestFS(t)
	fsys["airports.csv.zst"] = zstdFile(t, "nope\nstill nope\n")
	s := NewFileSource(fsys, log.NewDiscard())

	if _, err := s.Airports(nil); err == nil {
		t.Error("expected an error for missing field headers")
	}
}
