// aviation/filesource.go
// Copyright(c) 2025 rzflight contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/roznet/rzflight-sub001/log"
	"github.com/roznet/rzflight-sub001/math"
)

// FileSource is a DataSource over zstd-compressed CSV resource files laid
// out in the OurAirports column convention: airports.csv.zst,
// runways.csv.zst, procedures.csv.zst, aip.csv.zst, fields.csv.zst and
// border_crossings.csv.zst. Each table is read once, on first use, and
// indexed by airport code in memory.
type FileSource struct {
	fsys fs.FS
	lg   *log.Logger

	airportsOnce sync.Once
	airports     map[string]Airport
	airportsErr  error

	runwaysOnce sync.Once
	runways     map[string][]Runway
	runwaysErr  error

	proceduresOnce sync.Once
	procedures     map[string][]Procedure
	proceduresErr  error

	aipOnce sync.Once
	aip     map[string][]AIPEntry
	aipErr  error
}

func NewFileSource(fsys fs.FS, lg *log.Logger) *FileSource {
	return &FileSource{fsys: fsys, lg: lg}
}

// mungeCSV is a utility function for parsing CSV files: it finds the
// requested field columns from the header, breaks each line of the file
// into those fields, and calls the provided callback function for each
// one.
func mungeCSV(filename string, r io.Reader, fields []string, callback func([]string)) error {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	// Find the index of each field the caller requested
	var fieldIndices []int
	if header, err := cr.Read(); err != nil {
		return fmt.Errorf("%s: error parsing CSV file: %w", filename, err)
	} else {
		for fi, f := range fields {
			for hi, h := range header {
				if f == strings.TrimSpace(h) {
					fieldIndices = append(fieldIndices, hi)
					break
				}
			}
			if len(fieldIndices) != fi+1 {
				return fmt.Errorf("%s: did not find requested field header %q", filename, f)
			}
		}
	}

	var strs []string
	for {
		if record, err := cr.Read(); err == io.EOF {
			return nil
		} else if err != nil {
			return fmt.Errorf("%s: error parsing CSV file: %w", filename, err)
		} else {
			for _, i := range fieldIndices {
				strs = append(strs, record[i])
			}
			callback(strs)
			strs = strs[:0]
		}
	}
}

func (s *FileSource) mungeResource(filename string, fields []string, callback func([]string)) error {
	f, err := s.fsys.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	defer zr.Close()

	return mungeCSV(filename, zr, fields, callback)
}

// Malformed or missing numeric source fields default to zero rather than
// failing the whole load.
func atoi(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}

func atof(s string) float32 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 32)
	return float32(v)
}

// optionalInt returns nil for empty fields so that a missing elevation is
// absent rather than sea level.
func optionalInt(s string) *int {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v := atoi(s)
	return &v
}

func optionalFloat(s string) *float32 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v := atof(s)
	return &v
}

func (s *FileSource) loadAirports() {
	s.airports = make(map[string]Airport)
	s.airportsErr = s.mungeResource("airports.csv.zst",
		[]string{"ident", "type", "name", "latitude_deg", "longitude_deg", "elevation_ft", "iso_country"},
		func(f []string) {
			ap := Airport{
				ICAO:      strings.TrimSpace(f[0]),
				Type:      f[1],
				Name:      f[2],
				Location:  math.Point2LL{atof(f[4]), atof(f[3])},
				Elevation: atoi(f[5]),
				Country:   f[6],
			}
			if ap.ICAO != "" {
				s.airports[ap.ICAO] = ap
			}
		})

	if s.airportsErr == nil {
		s.lg.Infof("loaded %d airports", len(s.airports))
	}
}

func (s *FileSource) Airports(filter func(Airport) bool) ([]Airport, error) {
	s.airportsOnce.Do(s.loadAirports)
	if s.airportsErr != nil {
		return nil, s.airportsErr
	}

	var aps []Airport
	for _, ap := range s.airports {
		if filter == nil || filter(ap) {
			aps = append(aps, ap)
		}
	}
	return aps, nil
}

func (s *FileSource) AirportByICAO(icao string) (Airport, error) {
	s.airportsOnce.Do(s.loadAirports)
	if s.airportsErr != nil {
		return Airport{}, s.airportsErr
	}
	if ap, ok := s.airports[icao]; ok {
		return ap, nil
	}
	return Airport{}, ErrUnknownAirport
}

func (s *FileSource) loadRunways() {
	s.runways = make(map[string][]Runway)
	s.runwaysErr = s.mungeResource("runways.csv.zst",
		[]string{"airport_ident", "length_ft", "width_ft", "surface", "lighted", "closed",
			"le_ident", "le_latitude_deg", "le_longitude_deg", "le_elevation_ft",
			"le_heading_degT", "le_displaced_threshold_ft",
			"he_ident", "he_latitude_deg", "he_longitude_deg", "he_elevation_ft",
			"he_heading_degT", "he_displaced_threshold_ft"},
		func(f []string) {
			icao := strings.TrimSpace(f[0])
			if icao == "" || strings.TrimSpace(f[6]) == "" {
				// A runway row without a low-end identifier is unusable.
				return
			}

			end := func(f []string) RunwayEnd {
				var threshold math.Point2LL
				if strings.TrimSpace(f[1]) != "" && strings.TrimSpace(f[2]) != "" {
					threshold = math.Point2LL{atof(f[2]), atof(f[1])}
				}
				return RunwayEnd{
					Id:                 strings.TrimSpace(f[0]),
					Threshold:          threshold,
					Elevation:          optionalInt(f[3]),
					Heading:            MakeHeadingF(atof(f[4])),
					DisplacedThreshold: optionalFloat(f[5]),
				}
			}

			s.runways[icao] = append(s.runways[icao], Runway{
				Length:  atoi(f[1]),
				Width:   atoi(f[2]),
				Surface: f[3],
				Lighted: f[4] == "1",
				Closed:  f[5] == "1",
				LE:      end(f[6:12]),
				HE:      end(f[12:18]),
			})
		})
}

func (s *FileSource) Runways(icao string) ([]Runway, error) {
	s.runwaysOnce.Do(s.loadRunways)
	if s.runwaysErr != nil {
		return nil, s.runwaysErr
	}
	return s.runways[icao], nil
}

func (s *FileSource) loadProcedures() {
	s.procedures = make(map[string][]Procedure)
	s.proceduresErr = s.mungeResource("procedures.csv.zst",
		[]string{"airport_ident", "name", "type", "approach_type",
			"runway_number", "runway_letter", "runway_ident", "source", "authority"},
		func(f []string) {
			icao := strings.TrimSpace(f[0])
			if icao == "" {
				return
			}
			s.procedures[icao] = append(s.procedures[icao], Procedure{
				Name:         f[1],
				Type:         ParseProcedureType(f[2]),
				Approach:     ParseApproachType(f[3]),
				RunwayNumber: strings.TrimSpace(f[4]),
				RunwayLetter: strings.TrimSpace(f[5]),
				RunwayIdent:  strings.TrimSpace(f[6]),
				Source:       f[7],
				Authority:    f[8],
			})
		})
}

func (s *FileSource) Procedures(icao string) ([]Procedure, error) {
	s.proceduresOnce.Do(s.loadProcedures)
	if s.proceduresErr != nil {
		return nil, s.proceduresErr
	}
	return s.procedures[icao], nil
}

func (s *FileSource) loadAIP() {
	s.aip = make(map[string][]AIPEntry)
	s.aipErr = s.mungeResource("aip.csv.zst",
		[]string{"ident", "section", "field", "value", "alt_field", "alt_value", "source"},
		func(f []string) {
			icao := strings.TrimSpace(f[0])
			if icao == "" {
				return
			}
			s.aip[icao] = append(s.aip[icao], AIPEntry{
				Ident:    icao,
				Section:  ParseAIPSection(f[1]),
				Field:    f[2],
				Value:    f[3],
				AltField: f[4],
				AltValue: f[5],
				Source:   f[6],
			})
		})
}

func (s *FileSource) AIPEntries(icao string) ([]AIPEntry, error) {
	s.aipOnce.Do(s.loadAIP)
	if s.aipErr != nil {
		return nil, s.aipErr
	}
	return s.aip[icao], nil
}

func (s *FileSource) BorderCrossings() ([]BorderCrossing, error) {
	var crossings []BorderCrossing
	err := s.mungeResource("border_crossings.csv.zst",
		[]string{"code", "matched_code"},
		func(f []string) {
			crossings = append(crossings, BorderCrossing{
				Code:        strings.TrimSpace(f[0]),
				MatchedCode: strings.TrimSpace(f[1]),
			})
		})
	return crossings, err
}

func (s *FileSource) CatalogFields() ([]CatalogField, error) {
	var fields []CatalogField
	err := s.mungeResource("fields.csv.zst",
		[]string{"id", "name", "section"},
		func(f []string) {
			fields = append(fields, CatalogField{
				Id:      atoi(f[0]),
				Name:    strings.TrimSpace(f[1]),
				Section: ParseAIPSection(f[2]),
			})
		})
	return fields, err
}
