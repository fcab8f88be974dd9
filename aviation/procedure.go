// aviation/procedure.go
// Copyright(c) 2025 rzflight contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"strings"
)

// ProcedureType distinguishes the three kinds of published procedures.
type ProcedureType int

const (
	ProcedureInvalid ProcedureType = iota
	ProcedureApproach
	ProcedureDeparture
	ProcedureArrival
)

func (p ProcedureType) String() string {
	return [...]string{"invalid", "approach", "departure", "arrival"}[p]
}

func ParseProcedureType(s string) ProcedureType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approach":
		return ProcedureApproach
	case "departure":
		return ProcedureDeparture
	case "arrival":
		return ProcedureArrival
	default:
		return ProcedureInvalid
	}
}

// ApproachType identifies the guidance flavor of an approach procedure.
// The values are ordered by precision; a lower value is more precise.
type ApproachType int

const (
	ApproachILS ApproachType = iota + 1
	ApproachRNP
	ApproachRNAV
	ApproachVOR
	ApproachNDB
	ApproachLOC
	ApproachLDA
	ApproachSDF
)

func (a ApproachType) String() string {
	return [...]string{"", "ILS", "RNP", "RNAV", "VOR", "NDB", "LOC", "LDA", "SDF"}[a]
}

// ParseApproachType returns nil for strings that name no known approach
// type; an unknown type is absent, not an error.
func ParseApproachType(s string) *ApproachType {
	for a := ApproachILS; a <= ApproachSDF; a++ {
		if strings.EqualFold(strings.TrimSpace(s), a.String()) {
			return &a
		}
	}
	return nil
}

// MorePrecise reports strict precision ordering between approach types.
func (a ApproachType) MorePrecise(other ApproachType) bool {
	return a < other
}

// ApproachCategory buckets approach types by guidance accuracy.
type ApproachCategory int

const (
	CategoryPrecision ApproachCategory = iota
	CategoryRNAV
	CategoryNonPrecision
)

func (c ApproachCategory) String() string {
	return [...]string{"precision", "rnav", "non-precision"}[c]
}

func (a ApproachType) Category() ApproachCategory {
	switch a {
	case ApproachILS:
		return CategoryPrecision
	case ApproachRNP, ApproachRNAV:
		return CategoryRNAV
	default:
		return CategoryNonPrecision
	}
}

// Procedure is a published approach, departure, or arrival. Identity is
// (Name, Type, RunwayIdentifier()).
type Procedure struct {
	Name         string
	Type         ProcedureType
	Approach     *ApproachType // nil when not an approach or type unknown
	RunwayNumber string
	RunwayLetter string
	RunwayIdent  string // raw identifier when number/letter are absent
	Source       string
	Authority    string
}

// RunwayIdentifier returns the identifier of the runway the procedure
// serves: number plus letter when a number is present, otherwise the raw
// identifier.
func (p Procedure) RunwayIdentifier() string {
	if p.RunwayNumber != "" {
		return p.RunwayNumber + p.RunwayLetter
	}
	return p.RunwayIdent
}

// MatchesRunway reports whether the procedure serves the runway end with
// the given identifier.
func (p Procedure) MatchesRunway(ident string) bool {
	return ident != "" && p.RunwayIdentifier() == ident
}

// MostPreciseApproach returns the approach with the lowest precision rank
// among those in procs that serve the given runway identifier. Approaches
// without a known approach type never win a precision comparison.
func MostPreciseApproach(procs []Procedure, runwayIdent string) (Procedure, bool) {
	var best Procedure
	found := false
	for _, p := range procs {
		if p.Type != ProcedureApproach || p.Approach == nil || !p.MatchesRunway(runwayIdent) {
			continue
		}
		if !found || p.Approach.MorePrecise(*best.Approach) {
			best = p
			found = true
		}
	}
	return best, found
}
