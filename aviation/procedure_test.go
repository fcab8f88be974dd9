// aviation/procedure_test.go
// Copyright(c) 2025 rzflight contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"testing"
)

func approach(name string, at ApproachType, number, letter string) Procedure {
	return Procedure{
		Name:         name,
		Type:         ProcedureApproach,
		Approach:     &at,
		RunwayNumber: number,
		RunwayLetter: letter,
	}
}

func TestParseApproachType(t *testing.T) {
	tests := []struct {
		s        string
		expected *ApproachType
	}{
		{"ILS", ptr(ApproachILS)},
		{"ils", ptr(ApproachILS)},
		{" RNAV ", ptr(ApproachRNAV)},
		{"RNP", ptr(ApproachRNP)},
		{"VOR", ptr(ApproachVOR)},
		{"GLS", nil}, // unknown is absent, not an error
		{"", nil},
	}

	for _, tc := range tests {
		got := ParseApproachType(tc.s)
		if (got == nil) != (tc.expected == nil) {
			t.Errorf("ParseApproachType(%q) = %v, expected %v", tc.s, got, tc.expected)
		} else if got != nil && *got != *tc.expected {
			t.Errorf("ParseApproachType(%q) = %s, expected %s", tc.s, got, tc.expected)
		}
	}
}

func ptr[T any](v T) *T { return &v }

func TestApproachCategory(t *testing.T) {
	tests := []struct {
		at       ApproachType
		expected ApproachCategory
	}{
		{ApproachILS, CategoryPrecision},
		{ApproachRNP, CategoryRNAV},
		{ApproachRNAV, CategoryRNAV},
		{ApproachVOR, CategoryNonPrecision},
		{ApproachNDB, CategoryNonPrecision},
		{ApproachLOC, CategoryNonPrecision},
		{ApproachLDA, CategoryNonPrecision},
		{ApproachSDF, CategoryNonPrecision},
	}

	for _, tc := range tests {
		if got := tc.at.Category(); got != tc.expected {
			t.Errorf("%s.Category() = %s, expected %s", tc.at, got, tc.expected)
		}
	}
}

func TestRunwayIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		p        Procedure
		expected string
	}{
		{"number and letter", Procedure{RunwayNumber: "09", RunwayLetter: "L"}, "09L"},
		{"number only", Procedure{RunwayNumber: "27"}, "27"},
		{"raw ident fallback", Procedure{RunwayIdent: "16R"}, "16R"},
		{"number wins over ident", Procedure{RunwayNumber: "09", RunwayIdent: "27"}, "09"},
		{"nothing", Procedure{}, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.p.RunwayIdentifier(); got != tc.expected {
				t.Errorf("got %q, expected %q", got, tc.expected)
			}
		})
	}

	// An empty query identifier never matches, even a procedure with no
	// runway association.
	if (Procedure{}).MatchesRunway("") {
		t.Error("empty identifier must not match")
	}
}

func TestMostPreciseApproach(t *testing.T) {
	procs := []Procedure{
		approach("VOR 09", ApproachVOR, "09", ""),
		approach("ILS 09", ApproachILS, "09", ""),
		approach("RNAV 27", ApproachRNAV, "27", ""),
		{Name: "NOTYPE 09", Type: ProcedureApproach, RunwayNumber: "09"}, // no approach type
		{Name: "DEP 09", Type: ProcedureDeparture, RunwayNumber: "09"},
	}

	// ILS beats VOR for 09; the untyped approach never wins.
	best, ok := MostPreciseApproach(procs, "09")
	if !ok {
		t.Fatal("expected an approach for 09")
	}
	if best.Name != "ILS 09" {
		t.Errorf("expected ILS 09, got %s", best.Name)
	}

	best, ok = MostPreciseApproach(procs, "27")
	if !ok || best.Name != "RNAV 27" {
		t.Errorf("expected RNAV 27, got %v %v", best.Name, ok)
	}

	if _, ok := MostPreciseApproach(procs, "36"); ok {
		t.Error("expected no approach for runway 36")
	}

	// Only the untyped approach serves 09 here; it cannot win.
	untyped := []Procedure{{Name: "NOTYPE", Type: ProcedureApproach, RunwayNumber: "09"}}
	if _, ok := MostPreciseApproach(untyped, "09"); ok {
		t.Error("an approach without a type must not win a precision comparison")
	}
}
