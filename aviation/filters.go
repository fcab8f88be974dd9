// aviation/filters.go
// Copyright(c) 2025 rzflight contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"github.com/roznet/rzflight-sub001/util"
)

// Post-hoc filters over airport lists. All are pure, stateless, and
// order-preserving; they only consult the collections already loaded on
// each airport value.

// FilterByRunwayLength keeps airports whose longest runway length in feet
// falls within [minFt, maxFt]; maxFt <= 0 means no upper bound.
func FilterByRunwayLength(aps []Airport, minFt, maxFt int) []Airport {
	return util.FilterSlice(aps, func(ap Airport) bool {
		longest, ok := ap.LongestRunway()
		if !ok {
			return false
		}
		return longest.Length >= minFt && (maxFt <= 0 || longest.Length <= maxFt)
	})
}

func FilterHardSurface(aps []Airport) []Airport {
	return util.FilterSlice(aps, Airport.HasHardRunway)
}

func FilterLighted(aps []Airport) []Airport {
	return util.FilterSlice(aps, Airport.HasLightedRunway)
}

// FilterWithProcedures keeps airports with at least one loaded procedure
// of any type.
func FilterWithProcedures(aps []Airport) []Airport {
	return util.FilterSlice(aps, func(ap Airport) bool { return len(ap.Procedures) > 0 })
}

// FilterWithApproaches keeps airports with at least one loaded approach.
func FilterWithApproaches(aps []Airport) []Airport {
	return util.FilterSlice(aps, func(ap Airport) bool { return len(ap.Approaches()) > 0 })
}

func FilterPrecisionApproach(aps []Airport) []Airport {
	return util.FilterSlice(aps, Airport.HasPrecisionApproach)
}

func FilterByCountry(aps []Airport, country string) []Airport {
	return util.FilterSlice(aps, func(ap Airport) bool { return ap.Country == country })
}

// FilterMatching keeps airports whose code or name contains the given
// text, ignoring case and diacritics.
func FilterMatching(aps []Airport, text string) []Airport {
	return util.FilterSlice(aps, func(ap Airport) bool {
		return util.ContainsFold(ap.ICAO, text) || util.ContainsFold(ap.Name, text)
	})
}
