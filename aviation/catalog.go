// aviation/catalog.go
// Copyright(c) 2025 rzflight contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/roznet/rzflight-sub001/log"
	"github.com/roznet/rzflight-sub001/math"
	"github.com/roznet/rzflight-sub001/util"
)

// Catalog is an immutable-after-construction index over a set of
// airports: a code-keyed lookup table plus a k-d tree over their
// coordinates for proximity queries. Lookups return value copies, so one
// caller's extension loads are never visible to another; callers that
// want the catalog to remember loaded extensions use AirportExtended.
type Catalog struct {
	airports map[string]Airport
	codes    []string // parallel to the tree's point indices
	points   []math.Point2LL
	tree     *math.KDNode
	ds       DataSource
	lg       *log.Logger

	borderOnce      sync.Once
	borderCrossings map[string]bool
	borderErr       error

	extended *expirable.LRU[string, Airport]
	loading  singleflight.Group
}

// NewCatalog loads all airports from the data source (restricted by
// filter when non-nil) and builds the spatial index. The tree is built
// once; it is not updated incrementally.
func NewCatalog(ds DataSource, filter func(Airport) bool, lg *log.Logger) (*Catalog, error) {
	aps, err := ds.Airports(filter)
	if err != nil {
		return nil, err
	}
	if len(aps) == 0 {
		return nil, ErrNoAirports
	}

	c := &Catalog{
		airports: make(map[string]Airport, len(aps)),
		ds:       ds,
		lg:       lg,
		extended: expirable.NewLRU[string, Airport](256, nil, 15*time.Minute),
	}

	for _, ap := range aps {
		c.airports[ap.ICAO] = ap
		if ap.HasLocation() {
			c.codes = append(c.codes, ap.ICAO)
			c.points = append(c.points, ap.Location)
		}
	}
	c.tree = math.BuildKDTree(c.points)

	lg.Infof("catalog: %d airports, %d with coordinates", len(c.airports), len(c.points))

	return c, nil
}

// Airport returns a copy of the airport with the given code.
func (c *Catalog) Airport(icao string) (Airport, bool) {
	ap, ok := c.airports[icao]
	return ap, ok
}

// AirportExtended returns the airport with all extension collections
// loaded. Unlike Airport, the result is memoized: repeated calls for the
// same code reuse the loaded copy rather than re-querying the store, and
// concurrent first calls are collapsed into a single load.
func (c *Catalog) AirportExtended(icao string) (Airport, error) {
	if ap, ok := c.extended.Get(icao); ok {
		return ap, nil
	}

	v, err, _ := c.loading.Do(icao, func() (any, error) {
		ap, ok := c.airports[icao]
		if !ok {
			return Airport{}, ErrUnknownAirport
		}
		if err := ap.AddExtendedData(c.ds); err != nil {
			return Airport{}, err
		}
		c.extended.Add(icao, ap)
		return ap, nil
	})
	if err != nil {
		return Airport{}, err
	}
	return v.(Airport), nil
}

///////////////////////////////////////////////////////////////////////////
// proximity queries

// Nearest returns the airport closest to p.
func (c *Catalog) Nearest(p math.Point2LL) (Airport, bool) {
	return c.NearestMatching(p, nil)
}

// NearestMatching returns the closest airport for which pred returns
// true; the predicate is evaluated during tree traversal.
func (c *Catalog) NearestMatching(p math.Point2LL, pred func(Airport) bool) (Airport, bool) {
	if aps := c.KNearestMatching(p, 1, pred); len(aps) == 1 {
		return aps[0], true
	}
	return Airport{}, false
}

// KNearest returns up to k airports closest to p, nearest first.
func (c *Catalog) KNearest(p math.Point2LL, k int) []Airport {
	return c.KNearestMatching(p, k, nil)
}

// KNearestMatching returns up to k airports closest to p for which pred
// returns true. The ordering metric is squared Euclidean distance in
// degree space, not geodesic distance.
func (c *Catalog) KNearestMatching(p math.Point2LL, k int, pred func(Airport) bool) []Airport {
	if c.tree == nil {
		return nil
	}

	var treePred func(int) bool
	if pred != nil {
		treePred = func(index int) bool {
			return pred(c.airports[c.codes[index]])
		}
	}

	nodes := c.tree.KNearest(p, k, treePred)
	return util.MapSlice(nodes, func(n *math.KDNode) Airport {
		return c.airports[c.codes[n.Index]]
	})
}

///////////////////////////////////////////////////////////////////////////
// scans

// Match returns the airports whose code or name contains the given text,
// ignoring case and diacritics. Full catalog scan.
func (c *Catalog) Match(text string) []Airport {
	var matched []Airport
	for _, code := range util.SortedMapKeys(c.airports) {
		ap := c.airports[code]
		if util.ContainsFold(ap.ICAO, text) || util.ContainsFold(ap.Name, text) {
			matched = append(matched, ap)
		}
	}
	return matched
}

// Within returns the airports inside the rectangle spanned by the two
// corner points, in either corner order.
func (c *Catalog) Within(corner0, corner1 math.Point2LL) []Airport {
	box := math.Extent2DFromCorners(corner0, corner1)

	var inside []Airport
	for _, code := range util.SortedMapKeys(c.airports) {
		ap := c.airports[code]
		if ap.HasLocation() && box.Inside(ap.Location) {
			inside = append(inside, ap)
		}
	}
	return inside
}

///////////////////////////////////////////////////////////////////////////
// route corridor

// AirportDistance pairs an airport with its distance to a query route.
type AirportDistance struct {
	Airport
	DistanceNM float32
}

// NearRoute returns the airports within the given lateral distance, in
// nautical miles, of the route through the given airport codes, sorted
// by increasing distance. Codes that do not resolve to a location are
// skipped; when none resolve, the result is empty.
//
// Distances are computed with a clamped projection in raw degree space
// and the final point offset converted to nautical miles with a flat
// projection. That is a planar approximation: fine at regional scale,
// increasingly wrong for long routes and near the poles.
func (c *Catalog) NearRoute(route []string, withinNM float32) []AirportDistance {
	var points []math.Point2LL
	for _, code := range route {
		if ap, ok := c.airports[code]; ok && ap.HasLocation() {
			points = append(points, ap.Location)
		} else {
			c.lg.Debugf("%s: route airport not resolved, skipping", code)
		}
	}
	if len(points) == 0 {
		return nil
	}

	var near []AirportDistance
	for _, code := range c.codes {
		ap := c.airports[code]
		if d := routeDistanceNM(ap.Location, points); d <= withinNM {
			near = append(near, AirportDistance{Airport: ap, DistanceNM: d})
		}
	}

	slices.SortFunc(near, func(a, b AirportDistance) int {
		if a.DistanceNM < b.DistanceNM {
			return -1
		} else if a.DistanceNM > b.DistanceNM {
			return 1
		}
		return strings.Compare(a.ICAO, b.ICAO)
	})
	return near
}

// routeDistanceNM returns the minimum distance from p to the polyline
// through the given points: the direct point distance for a single-point
// route, otherwise the minimum clamped-projection distance over the
// consecutive segment pairs.
func routeDistanceNM(p math.Point2LL, route []math.Point2LL) float32 {
	nmPerLongitude := math.NMPerLongitudeAt(p.Latitude())

	toNM := func(closest math.Point2LL) float32 {
		return math.NMLength2LL(math.Sub2LL(p, closest), nmPerLongitude)
	}

	if len(route) == 1 {
		return toNM(route[0])
	}

	minDist := float32(1e30)
	for i := range route[:len(route)-1] {
		closest := math.ClosestPointOnSegment(p, route[i], route[i+1])
		if d := toNM(math.Point2LL(closest)); d < minDist {
			minDist = d
		}
	}
	return minDist
}

///////////////////////////////////////////////////////////////////////////
// border crossings

// IsBorderCrossing reports whether the airport with the given code is a
// designated customs point of entry. The crossing table is bulk-loaded
// on first call and cached for the life of the catalog; a duplicate load
// from a first-use race is benign since the load is pure.
func (c *Catalog) IsBorderCrossing(icao string) bool {
	c.borderOnce.Do(func() {
		crossings, err := c.ds.BorderCrossings()
		if err != nil {
			c.borderErr = err
			c.lg.Errorf("border crossings: %v", err)
			return
		}

		c.borderCrossings = make(map[string]bool)
		for _, bc := range crossings {
			if bc.Code != "" {
				c.borderCrossings[bc.Code] = true
			}
			if bc.MatchedCode != "" {
				c.borderCrossings[bc.MatchedCode] = true
			}
		}
	})

	_, ok := c.borderCrossings[icao]
	return ok
}
