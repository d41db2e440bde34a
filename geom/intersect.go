package geom

import (
	"math"
	"sort"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/tidwall/geojson"
	"github.com/tidwall/geojson/geometry"
)

// paramEps is the tolerance for merging split parameters along a segment.
const paramEps = 1e-9

// crossEps is the tolerance for degenerate cross products.
const crossEps = 1e-12

// Intersection returns the exact intersection of g with a polygonal mask.
// The result can be lower-dimensional than g: a polygon that only shares an
// edge with the mask yields a line, a corner contact yields a point. An
// empty result is reported as an empty geometry (Empty() == true).
func Intersection(g, mask geojson.Object) geojson.Object {
	if g == nil || mask == nil || g.Empty() || mask.Empty() {
		return geojson.NewMultiPolygon(nil)
	}
	if f, ok := g.(*geojson.Feature); ok {
		return Intersection(f.Base(), mask)
	}
	switch FamilyOf(g) {
	case FamilyPoint:
		return pointIntersection(g, mask)
	case FamilyLine:
		return lineIntersection(g, mask)
	case FamilyPolygon:
		return polygonIntersection(g, mask)
	case FamilyCollection:
		return collectionIntersection(g, mask)
	}
	return geojson.NewMultiPolygon(nil)
}

func pointIntersection(g, mask geojson.Object) geojson.Object {
	var kept []geometry.Point
	switch o := g.(type) {
	case *geojson.Point:
		if o.Intersects(mask) {
			kept = append(kept, o.Base())
		}
	case *geojson.SimplePoint:
		if o.Intersects(mask) {
			kept = append(kept, o.Base())
		}
	case *geojson.MultiPoint:
		for _, child := range o.Base() {
			if p, ok := child.(*geojson.Point); ok && p.Intersects(mask) {
				kept = append(kept, p.Base())
			}
		}
	}
	return pointsObject(kept)
}

func pointsObject(pts []geometry.Point) geojson.Object {
	switch len(pts) {
	case 0:
		return geojson.NewMultiPoint(nil)
	case 1:
		return geojson.NewPoint(pts[0])
	}
	return geojson.NewMultiPoint(pts)
}

func linesObject(parts [][]geometry.Point) geojson.Object {
	lines := make([]*geometry.Line, 0, len(parts))
	for _, pts := range parts {
		lines = append(lines, geometry.NewLine(pts, nil))
	}
	if len(lines) == 1 {
		return geojson.NewLineString(lines[0])
	}
	return geojson.NewMultiLineString(lines)
}

func lineIntersection(g, mask geojson.Object) geojson.Object {
	msegs := maskSegments(mask)
	var parts [][]geometry.Point
	var touches []geometry.Point
	collect := func(s geometry.Series) {
		ps, ts := clipSeries(s, mask, msegs)
		parts = append(parts, ps...)
		touches = append(touches, ts...)
	}
	switch o := g.(type) {
	case *geojson.LineString:
		collect(o.Base())
	case *geojson.MultiLineString:
		for _, child := range o.Base() {
			if ls, ok := child.(*geojson.LineString); ok {
				collect(ls.Base())
			}
		}
	}
	if len(parts) > 0 {
		return linesObject(parts)
	}
	if len(touches) > 0 {
		return pointsObject(dedupPoints(touches))
	}
	return geojson.NewMultiLineString(nil)
}

func polygonIntersection(g, mask geojson.Object) geojson.Object {
	pg, ok := toClipPolygon(g)
	pm, ok2 := toClipPolygon(mask)
	if !ok || !ok2 {
		return geojson.NewMultiPolygon(nil)
	}
	res := fromClipPolygon(pg.Construct(polyclip.INTERSECTION, pm))
	if !res.Empty() {
		return res
	}
	if !g.Intersects(mask) {
		return geojson.NewMultiPolygon(nil)
	}
	// Zero-area contact. The remnant is whatever part of the subject's
	// boundary the mask covers: a shared edge or an isolated touch point.
	msegs := maskSegments(mask)
	var parts [][]geometry.Point
	var touches []geometry.Point
	for _, ring := range rings(g) {
		ps, ts := clipSeries(ring, mask, msegs)
		parts = append(parts, ps...)
		touches = append(touches, ts...)
	}
	if len(parts) > 0 {
		return linesObject(parts)
	}
	if len(touches) > 0 {
		return pointsObject(dedupPoints(touches))
	}
	return geojson.NewMultiPolygon(nil)
}

func collectionIntersection(g, mask geojson.Object) geojson.Object {
	var parts []geojson.Object
	if col, ok := g.(geojson.Collection); ok {
		for _, child := range col.Children() {
			r := Intersection(child, mask)
			if !r.Empty() {
				parts = append(parts, r)
			}
		}
	}
	switch len(parts) {
	case 0:
		return geojson.NewMultiPolygon(nil)
	case 1:
		return parts[0]
	}
	return geojson.NewGeometryCollection(parts)
}

// rings returns the boundary rings of a polygonal object.
func rings(o geojson.Object) []geometry.Series {
	var out []geometry.Series
	switch g := o.(type) {
	case *geojson.Polygon:
		p := g.Base()
		out = append(out, p.Exterior)
		for _, h := range p.Holes {
			out = append(out, h)
		}
	case *geojson.MultiPolygon:
		for _, child := range g.Base() {
			out = append(out, rings(child)...)
		}
	case *geojson.Rect:
		base := g.Base()
		points := make([]geometry.Point, base.NumPoints())
		for i := 0; i < len(points); i++ {
			points[i] = base.PointAt(i)
		}
		out = append(out, geometry.NewPoly(points, nil, nil).Exterior)
	case *geojson.Feature:
		out = rings(g.Base())
	}
	return out
}

func maskSegments(mask geojson.Object) []geometry.Segment {
	var segs []geometry.Segment
	for _, ring := range rings(mask) {
		n := ring.NumSegments()
		for i := 0; i < n; i++ {
			segs = append(segs, ring.SegmentAt(i))
		}
	}
	return segs
}

// clipSeries clips a connected series of segments against the mask, keeping
// the covered portions. Contiguous kept pieces are stitched back into line
// parts; isolated boundary contacts come back as touch points.
func clipSeries(s geometry.Series, mask geojson.Object, msegs []geometry.Segment,
) (parts [][]geometry.Point, touches []geometry.Point) {
	var cur []geometry.Point
	n := s.NumSegments()
	for i := 0; i < n; i++ {
		pieces, tps := clipSegment(s.SegmentAt(i), mask, msegs)
		touches = append(touches, tps...)
		for _, pc := range pieces {
			if len(cur) > 0 && cur[len(cur)-1] == pc.A {
				cur = append(cur, pc.B)
			} else {
				if len(cur) > 1 {
					parts = append(parts, cur)
				}
				cur = []geometry.Point{pc.A, pc.B}
			}
		}
	}
	if len(cur) > 1 {
		parts = append(parts, cur)
	}
	return parts, touches
}

// clipSegment splits one segment at every crossing with the mask boundary
// and keeps the spans whose midpoint the mask covers.
func clipSegment(seg geometry.Segment, mask geojson.Object, msegs []geometry.Segment,
) (pieces []geometry.Segment, touches []geometry.Point) {
	ts := []float64{0, 1}
	for _, ms := range msegs {
		ts = append(ts, segmentParams(seg, ms)...)
	}
	sort.Float64s(ts)
	params := ts[:1]
	for _, t := range ts[1:] {
		if t-params[len(params)-1] > paramEps {
			params = append(params, t)
		}
	}
	type span struct{ t0, t1 float64 }
	var kept []span
	for i := 1; i < len(params); i++ {
		t0, t1 := params[i-1], params[i]
		if covered(segPointAt(seg, (t0+t1)/2), mask) {
			if len(kept) > 0 && kept[len(kept)-1].t1 == t0 {
				kept[len(kept)-1].t1 = t1
			} else {
				kept = append(kept, span{t0, t1})
			}
		}
	}
	for _, sp := range kept {
		pieces = append(pieces, geometry.Segment{
			A: segPointAt(seg, sp.t0),
			B: segPointAt(seg, sp.t1),
		})
	}
	for _, t := range params {
		inside := false
		for _, sp := range kept {
			if t >= sp.t0-paramEps && t <= sp.t1+paramEps {
				inside = true
				break
			}
		}
		if !inside {
			if p := segPointAt(seg, t); covered(p, mask) {
				touches = append(touches, p)
			}
		}
	}
	return pieces, touches
}

// segmentParams returns the parameters along seg where it meets ms. A proper
// crossing yields one parameter; a collinear overlap yields the overlap's
// two endpoints projected onto seg.
func segmentParams(seg, ms geometry.Segment) []float64 {
	rx, ry := seg.B.X-seg.A.X, seg.B.Y-seg.A.Y
	sx, sy := ms.B.X-ms.A.X, ms.B.Y-ms.A.Y
	qpx, qpy := ms.A.X-seg.A.X, ms.A.Y-seg.A.Y
	denom := rx*sy - ry*sx
	if math.Abs(denom) > crossEps {
		t := (qpx*sy - qpy*sx) / denom
		u := (qpx*ry - qpy*rx) / denom
		if t >= -paramEps && t <= 1+paramEps && u >= -paramEps && u <= 1+paramEps {
			return []float64{clamp01(t)}
		}
		return nil
	}
	if math.Abs(qpx*ry-qpy*rx) > crossEps {
		return nil // parallel, not collinear
	}
	rr := rx*rx + ry*ry
	if rr == 0 {
		return nil
	}
	t0 := (qpx*rx + qpy*ry) / rr
	t1 := t0 + (sx*rx+sy*ry)/rr
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	if t1 < 0 || t0 > 1 {
		return nil
	}
	return []float64{clamp01(t0), clamp01(t1)}
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func segPointAt(seg geometry.Segment, t float64) geometry.Point {
	if t <= 0 {
		return seg.A
	}
	if t >= 1 {
		return seg.B
	}
	return geometry.Point{
		X: seg.A.X + (seg.B.X-seg.A.X)*t,
		Y: seg.A.Y + (seg.B.Y-seg.A.Y)*t,
	}
}

// covered reports whether the mask contains p, boundary inclusive.
func covered(p geometry.Point, mask geojson.Object) bool {
	return geojson.NewPoint(p).Intersects(mask)
}

func dedupPoints(pts []geometry.Point) []geometry.Point {
	var out []geometry.Point
	for _, p := range pts {
		dup := false
		for _, q := range out {
			if p == q {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}
