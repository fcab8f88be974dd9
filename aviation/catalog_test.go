// aviation/catalog_test.go
// Copyright(c) 2025 rzflight contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"errors"
	"testing"

	"github.com/roznet/rzflight-sub001/log"
	"github.com/roznet/rzflight-sub001/math"
)

func makeTestCatalog(t *testing.T) (*Catalog, *testSource) {
	t.Helper()
	ds := newTestSource()
	c, err := NewCatalog(ds, nil, log.NewDiscard())
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return c, ds
}

func TestNewCatalogEmpty(t *testing.T) {
	ds := newTestSource()
	_, err := NewCatalog(ds, func(Airport) bool { return false }, log.NewDiscard())
	if !errors.Is(err, ErrNoAirports) {
		t.Errorf("got %v, expected ErrNoAirports", err)
	}
}

func TestCatalogAirportReturnsCopies(t *testing.T) {
	c, ds := makeTestCatalog(t)

	ap, ok := c.Airport("LSZH")
	if !ok {
		t.Fatal("LSZH should be in the catalog")
	}
	if err := ap.AddProcedures(ds); err != nil {
		t.Fatal(err)
	}

	again, _ := c.Airport("LSZH")
	if len(again.Procedures) != 0 {
		t.Error("extension load on one lookup leaked into a later lookup")
	}
}

func TestCatalogNearest(t *testing.T) {
	c, _ := makeTestCatalog(t)

	nearZurich := math.Point2LL{8.6, 47.5}

	if ap, ok := c.Nearest(nearZurich); !ok || ap.ICAO != "LSZH" {
		t.Errorf("Nearest: got %v %v, expected LSZH", ap.ICAO, ok)
	}

	// Restricting to France skips the closer Swiss and German fields.
	french := func(ap Airport) bool { return ap.Country == "FR" }
	if ap, ok := c.NearestMatching(nearZurich, french); !ok || ap.ICAO != "LFPG" {
		t.Errorf("NearestMatching(FR): got %v %v, expected LFPG", ap.ICAO, ok)
	}

	if _, ok := c.NearestMatching(nearZurich, func(Airport) bool { return false }); ok {
		t.Error("no airport matches an always-false predicate")
	}

	got := c.KNearest(nearZurich, 3)
	want := []string{"LSZH", "LIMC", "EDDF"}
	if len(got) != len(want) {
		t.Fatalf("KNearest: got %d airports, expected %d", len(got), len(want))
	}
	for i, ap := range got {
		if ap.ICAO != want[i] {
			t.Errorf("KNearest[%d]: got %v, expected %v", i, ap.ICAO, want[i])
		}
	}

	// k larger than the population returns everyone with coordinates.
	if got := c.KNearest(nearZurich, 100); len(got) != 7 {
		t.Errorf("KNearest(100): got %d airports, expected 7", len(got))
	}
}

func TestCatalogMatch(t *testing.T) {
	c, _ := makeTestCatalog(t)

	for _, tc := range []struct {
		name string
		text string
		want []string
	}{
		{name: "code substring", text: "SZH", want: []string{"LSZH"}},
		{name: "code prefix", text: "LFP", want: []string{"LFPG", "LFPO"}},
		{name: "folded diacritic", text: "Zurich", want: []string{"LSZH"}},
		{name: "diacritic query", text: "zürich", want: []string{"LSZH"}},
		{name: "name word", text: "paris", want: []string{"LFPO"}},
		{name: "no match", text: "atlantis", want: nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Match(tc.text)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d airports, expected %d", len(got), len(tc.want))
			}
			for i, ap := range got {
				if ap.ICAO != tc.want[i] {
					t.Errorf("[%d]: got %v, expected %v", i, ap.ICAO, tc.want[i])
				}
			}
		})
	}
}

func TestCatalogWithin(t *testing.T) {
	c, _ := makeTestCatalog(t)

	paris0 := math.Point2LL{2, 48}
	paris1 := math.Point2LL{3, 50}

	check := func(got []Airport) {
		t.Helper()
		if len(got) != 2 || got[0].ICAO != "LFPG" || got[1].ICAO != "LFPO" {
			t.Errorf("got %v, expected [LFPG LFPO]", got)
		}
	}
	check(c.Within(paris0, paris1))
	check(c.Within(paris1, paris0))
}

func TestCatalogNearRoute(t *testing.T) {
	c, _ := makeTestCatalog(t)

	t.Run("single point", func(t *testing.T) {
		got := c.NearRoute([]string{"LSZH"}, 1)
		if len(got) != 1 || got[0].ICAO != "LSZH" || got[0].DistanceNM != 0 {
			t.Errorf("got %v, expected LSZH at distance 0", got)
		}
	})

	t.Run("unresolved codes", func(t *testing.T) {
		if got := c.NearRoute([]string{"XXXX", "EBBR"}, 1000); got != nil {
			t.Errorf("got %v, expected nil when nothing resolves", got)
		}
	})

	t.Run("corridor", func(t *testing.T) {
		got := c.NearRoute([]string{"LSZH", "LFPG"}, 25)
		want := []string{"LFPG", "LSZH", "LFPO"} // endpoints at 0, tie broken by code
		if len(got) != len(want) {
			t.Fatalf("got %d airports, expected %d", len(got), len(want))
		}
		for i, ad := range got {
			if ad.ICAO != want[i] {
				t.Errorf("[%d]: got %v at %.1f, expected %v", i, ad.ICAO, ad.DistanceNM, want[i])
			}
		}
		if got[2].DistanceNM <= 0 || got[2].DistanceNM > 25 {
			t.Errorf("LFPO distance %.1f outside (0, 25]", got[2].DistanceNM)
		}
	})

	t.Run("wider corridor is a superset", func(t *testing.T) {
		route := []string{"LSZH", "LFPG"}
		narrow := c.NearRoute(route, 10)
		wide := c.NearRoute(route, 200)
		if len(narrow) > len(wide) {
			t.Errorf("narrow corridor returned more airports (%d) than wide (%d)", len(narrow), len(wide))
		}
	})
}

func TestCatalogIsBorderCrossing(t *testing.T) {
	c, ds := makeTestCatalog(t)

	for _, tc := range []struct {
		code string
		want bool
	}{
		{code: "LSZH", want: true},
		{code: "GVA", want: true},  // raw code
		{code: "LSGG", want: true}, // matched code
		{code: "LFPG", want: false},
		{code: "", want: false},
	} {
		if got := c.IsBorderCrossing(tc.code); got != tc.want {
			t.Errorf("IsBorderCrossing(%q): got %v, expected %v", tc.code, got, tc.want)
		}
	}

	if got := ds.calls["borderCrossings"]; got != 1 {
		t.Errorf("crossing table loaded %d times, expected once", got)
	}
}

func TestCatalogAirportExtended(t *testing.T) {
	c, ds := makeTestCatalog(t)

	ap, err := c.AirportExtended("LSZH")
	if err != nil {
		t.Fatal(err)
	}
	if len(ap.Runways) == 0 || len(ap.Procedures) == 0 || len(ap.AIPEntries) == 0 {
		t.Fatal("all extension collections should be loaded")
	}

	before := ds.calls["procedures"]
	if _, err := c.AirportExtended("LSZH"); err != nil {
		t.Fatal(err)
	}
	if got := ds.calls["procedures"] - before; got != 0 {
		t.Errorf("second AirportExtended issued %d store queries", got)
	}

	if _, err := c.AirportExtended("XXXX"); !errors.Is(err, ErrUnknownAirport) {
		t.Errorf("got %v, expected ErrUnknownAirport", err)
	}
}
