package geo

import (
	"fmt"
	"sort"
)

// Rect is an axis-aligned rectangle in the ground plane.
type Rect struct {
	Min Point2D `json:"min"`
	Max Point2D `json:"max"`
}

// R is a shorthand constructor for Rect.
func R(minX, minZ, maxX, maxZ float64) Rect {
	return Rect{Min: Pt(minX, minZ), Max: Pt(maxX, maxZ)}
}

// Width returns the extent along X.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Depth returns the extent along Z.
func (r Rect) Depth() float64 { return r.Max.Z - r.Min.Z }

// Area returns the rectangle area.
func (r Rect) Area() float64 { return r.Width() * r.Depth() }

// Center returns the center point.
func (r Rect) Center() Point2D {
	return MidPoint(r.Min, r.Max)
}

// IsDegenerate returns true if the rectangle has no interior.
func (r Rect) IsDegenerate() bool {
	return r.Max.X <= r.Min.X || r.Max.Z <= r.Min.Z
}

// Overlaps returns true if the interiors of r and o intersect. Touching
// edges do not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X < o.Max.X && o.Min.X < r.Max.X &&
		r.Min.Z < o.Max.Z && o.Min.Z < r.Max.Z
}

type segKey struct {
	ax, az, bx, bz float64
}

// RectUnionOutline traces the outer boundary of a union of axis-aligned
// rectangles as a single polygon. Rectangles may share edges but must not
// overlap, and their union must be connected. Collinear runs are merged, so
// the result carries only true corners.
func RectUnionOutline(rects []Rect) (Polygon, error) {
	if len(rects) == 0 {
		return Polygon{}, fmt.Errorf("outline: no rectangles")
	}
	for i, r := range rects {
		if r.IsDegenerate() {
			return Polygon{}, fmt.Errorf("outline: rectangle %d is degenerate", i)
		}
		for j := i + 1; j < len(rects); j++ {
			if r.Overlaps(rects[j]) {
				return Polygon{}, fmt.Errorf("outline: rectangles %d and %d overlap", i, j)
			}
		}
	}

	// 1. Collect the global coordinate grid so that shared partial edges
	//    split into identical unit segments before cancellation.
	xs := coordSet{}
	zs := coordSet{}
	for _, r := range rects {
		xs.add(r.Min.X)
		xs.add(r.Max.X)
		zs.add(r.Min.Z)
		zs.add(r.Max.Z)
	}
	xv := xs.sorted()
	zv := zs.sorted()

	// 2. Emit each rectangle's edges counterclockwise, split at grid lines,
	//    counting direction so interior edges cancel pairwise.
	counts := map[segKey]int{}
	addEdge := func(a, b Point2D) {
		for _, s := range splitSegment(a, b, xv, zv) {
			k, dir := canonSeg(s[0], s[1])
			counts[k] += dir
		}
	}
	for _, r := range rects {
		addEdge(Pt(r.Min.X, r.Min.Z), Pt(r.Max.X, r.Min.Z))
		addEdge(Pt(r.Max.X, r.Min.Z), Pt(r.Max.X, r.Max.Z))
		addEdge(Pt(r.Max.X, r.Max.Z), Pt(r.Min.X, r.Max.Z))
		addEdge(Pt(r.Min.X, r.Max.Z), Pt(r.Min.X, r.Min.Z))
	}

	// 3. Surviving directed segments form the boundary.
	outgoing := map[Point2D][]Point2D{}
	remaining := 0
	for k, c := range counts {
		switch {
		case c == 0:
			continue
		case c == 1:
			outgoing[Pt(k.ax, k.az)] = append(outgoing[Pt(k.ax, k.az)], Pt(k.bx, k.bz))
			remaining++
		case c == -1:
			outgoing[Pt(k.bx, k.bz)] = append(outgoing[Pt(k.bx, k.bz)], Pt(k.ax, k.az))
			remaining++
		default:
			return Polygon{}, fmt.Errorf("outline: overlapping rectangle interiors near (%.2f, %.2f)", k.ax, k.az)
		}
	}
	if remaining == 0 {
		return Polygon{}, fmt.Errorf("outline: no boundary segments")
	}

	// 4. Walk the loop. At touch points with several departures, prefer the
	//    sharpest counterclockwise turn so the walk hugs the outer boundary.
	start := Point2D{}
	first := true
	for p := range outgoing {
		if first || p.Z < start.Z || (p.Z == start.Z && p.X < start.X) {
			start = p
			first = false
		}
	}
	loop := []Point2D{start}
	cur := start
	incoming := Pt(1, 0)
	used := 0
	for {
		nexts := outgoing[cur]
		if len(nexts) == 0 {
			return Polygon{}, fmt.Errorf("outline: boundary breaks at (%.2f, %.2f)", cur.X, cur.Z)
		}
		best := 0
		if len(nexts) > 1 {
			bestTurn := -3.0
			for i, n := range nexts {
				d := n.Sub(cur).Normalize()
				turn := incoming.Cross(d)
				if incoming.Dot(d) < 0 && turn == 0 {
					// Straight back along the incoming edge is never the
					// outer boundary.
					turn = -2
				}
				if turn > bestTurn {
					bestTurn = turn
					best = i
				}
			}
		}
		next := nexts[best]
		outgoing[cur] = append(nexts[:best], nexts[best+1:]...)
		incoming = next.Sub(cur).Normalize()
		cur = next
		used++
		if cur == start {
			break
		}
		loop = append(loop, cur)
		if used > remaining {
			return Polygon{}, fmt.Errorf("outline: boundary does not close")
		}
	}
	if used != remaining {
		return Polygon{}, fmt.Errorf("outline: union is not connected (%d segments unreachable)", remaining-used)
	}

	// 5. Merge collinear runs so only corners remain.
	return mergeCollinear(loop).EnsureCCW(), nil
}

func canonSeg(a, b Point2D) (segKey, int) {
	if b.X < a.X || (b.X == a.X && b.Z < a.Z) {
		return segKey{b.X, b.Z, a.X, a.Z}, -1
	}
	return segKey{a.X, a.Z, b.X, b.Z}, 1
}

// splitSegment cuts an axis-aligned segment at every grid value strictly
// inside its span. Split points come from the shared coordinate set, so
// matching edges of different rectangles produce bitwise-equal pieces.
func splitSegment(a, b Point2D, xv, zv []float64) [][2]Point2D {
	var cuts []float64
	horizontal := a.Z == b.Z
	if horizontal {
		lo, hi := a.X, b.X
		if lo > hi {
			lo, hi = hi, lo
		}
		for _, x := range xv {
			if x > lo && x < hi {
				cuts = append(cuts, x)
			}
		}
		if a.X > b.X {
			reverseFloats(cuts)
		}
	} else {
		lo, hi := a.Z, b.Z
		if lo > hi {
			lo, hi = hi, lo
		}
		for _, z := range zv {
			if z > lo && z < hi {
				cuts = append(cuts, z)
			}
		}
		if a.Z > b.Z {
			reverseFloats(cuts)
		}
	}
	segs := make([][2]Point2D, 0, len(cuts)+1)
	prev := a
	for _, c := range cuts {
		var p Point2D
		if horizontal {
			p = Pt(c, a.Z)
		} else {
			p = Pt(a.X, c)
		}
		segs = append(segs, [2]Point2D{prev, p})
		prev = p
	}
	return append(segs, [2]Point2D{prev, b})
}

func mergeCollinear(loop []Point2D) Polygon {
	n := len(loop)
	if n < 3 {
		return Polygon{Vertices: loop}
	}
	out := make([]Point2D, 0, n)
	for i := 0; i < n; i++ {
		prev := loop[(i+n-1)%n]
		cur := loop[i]
		next := loop[(i+1)%n]
		if cur.Sub(prev).Cross(next.Sub(cur)) != 0 {
			out = append(out, cur)
		}
	}
	return Polygon{Vertices: out}
}

type coordSet map[float64]struct{}

func (s coordSet) add(v float64) { s[v] = struct{}{} }

func (s coordSet) sorted() []float64 {
	out := make([]float64, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Float64s(out)
	return out
}

func reverseFloats(v []float64) {
	for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
		v[i], v[j] = v[j], v[i]
	}
}
