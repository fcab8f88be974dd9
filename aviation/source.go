// aviation/source.go
// Copyright(c) 2025 rzflight contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

// BorderCrossing is one designated customs point of entry: the code as it
// appears in the crossing table plus the reconciled airport code, when
// the raw code was matched to a known airport.
type BorderCrossing struct {
	Code        string
	MatchedCode string
}

// DataSource is the backing-store boundary: everything the catalog and
// the Airport aggregate read comes through it. Implementations are
// expected to be synchronous; callers needing non-blocking behavior wrap
// these calls themselves.
type DataSource interface {
	// Airports returns all airport rows, restricted to those matching
	// filter when it is non-nil.
	Airports(filter func(Airport) bool) ([]Airport, error)

	// AirportByICAO returns the single airport with the given code; it
	// returns ErrUnknownAirport when no such row exists, since the caller
	// asked for exactly one airport.
	AirportByICAO(icao string) (Airport, error)

	Runways(icao string) ([]Runway, error)
	Procedures(icao string) ([]Procedure, error)
	AIPEntries(icao string) ([]AIPEntry, error)

	BorderCrossings() ([]BorderCrossing, error)
	CatalogFields() ([]CatalogField, error)
}
