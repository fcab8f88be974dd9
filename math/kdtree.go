// math/kdtree.go
// Copyright(c) 2025 rzflight contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"slices"
)

// KDNode is a node in a 2D KD-tree over Point2LLs. Index identifies the
// point in the slice the tree was built from, so that callers can map
// query results back to their own records.
type KDNode struct {
	Location Point2LL
	Index    int
	Left     *KDNode
	Right    *KDNode
}

type kdPoint struct {
	p     Point2LL
	index int
}

// BuildKDTree constructs a balanced KD-tree from a slice of points.
// The tree alternates splitting by X (longitude) and Y (latitude) at each
// level. The input slice is not modified.
func BuildKDTree(points []Point2LL) *KDNode {
	if len(points) == 0 {
		return nil
	}
	kp := make([]kdPoint, len(points))
	for i, p := range points {
		kp[i] = kdPoint{p: p, index: i}
	}
	return buildKDTreeRecursive(kp, 0)
}

func buildKDTreeRecursive(points []kdPoint, depth int) *KDNode {
	if len(points) == 0 {
		return nil
	}
	if len(points) == 1 {
		return &KDNode{Location: points[0].p, Index: points[0].index}
	}

	// Alternate between X (depth even) and Y (depth odd)
	axis := depth % 2

	// Sort by the splitting axis and find median
	slices.SortFunc(points, func(a, b kdPoint) int {
		if a.p[axis] < b.p[axis] {
			return -1
		} else if a.p[axis] > b.p[axis] {
			return 1
		}
		return 0
	})

	median := len(points) / 2

	return &KDNode{
		Location: points[median].p,
		Index:    points[median].index,
		Left:     buildKDTreeRecursive(points[:median], depth+1),
		Right:    buildKDTreeRecursive(points[median+1:], depth+1),
	}
}

// Nearest returns the node closest to p, filtered to nodes for which pred
// returns true; a nil pred accepts everything. The ordering metric is
// squared Euclidean distance in degree space, which preserves proximity
// ordering at the regional scales this tree is used for.
func (tree *KDNode) Nearest(p Point2LL, pred func(index int) bool) *KDNode {
	if n := tree.KNearest(p, 1, pred); len(n) == 1 {
		return n[0]
	}
	return nil
}

// KNearest returns up to k nodes closest to p, ordered nearest first,
// filtered by pred (nil accepts everything).
func (tree *KDNode) KNearest(p Point2LL, k int, pred func(index int) bool) []*KDNode {
	if tree == nil || k <= 0 {
		return nil
	}

	// Candidates are kept sorted nearest-first; with the small k values
	// used in practice insertion is cheaper than heap bookkeeping.
	type candidate struct {
		node    *KDNode
		distSqr float32
	}
	var best []candidate

	worst := func() float32 {
		if len(best) < k {
			return 1e30
		}
		return best[len(best)-1].distSqr
	}

	var visit func(n *KDNode, depth int)
	visit = func(n *KDNode, depth int) {
		if n == nil {
			return
		}

		if pred == nil || pred(n.Index) {
			d2 := SquaredDistance2LL(p, n.Location)
			if d2 < worst() {
				idx, _ := slices.BinarySearchFunc(best, d2, func(c candidate, d float32) int {
					if c.distSqr < d {
						return -1
					} else if c.distSqr > d {
						return 1
					}
					return 0
				})
				best = slices.Insert(best, idx, candidate{node: n, distSqr: d2})
				if len(best) > k {
					best = best[:k]
				}
			}
		}

		axis := depth % 2
		delta := p[axis] - n.Location[axis]

		near, far := n.Left, n.Right
		if delta > 0 {
			near, far = far, near
		}

		visit(near, depth+1)
		// Only descend the far side if the splitting plane is closer than
		// the current k-th best distance.
		if Sqr(delta) < worst() {
			visit(far, depth+1)
		}
	}
	visit(tree, 0)

	result := make([]*KDNode, len(best))
	for i, c := range best {
		result[i] = c.node
	}
	return result
}
