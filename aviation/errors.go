// aviation/errors.go
// Copyright(c) 2025 rzflight contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import "errors"

var (
	ErrUnknownAirport    = errors.New("Unknown airport identifier")
	ErrNoAirports        = errors.New("No airports in data source")
	ErrInvalidProcedure  = errors.New("Invalid procedure")
	ErrMissingCoordinate = errors.New("Airport has no coordinates")
)
