package geom

import (
	polyclip "github.com/akavel/polyclip-go"
	"github.com/tidwall/geojson"
	"github.com/tidwall/geojson/geometry"
)

func ringContour(r geometry.Ring) polyclip.Contour {
	n := r.NumPoints()
	c := make(polyclip.Contour, 0, n)
	for i := 0; i < n; i++ {
		p := r.PointAt(i)
		c = append(c, polyclip.Point{X: p.X, Y: p.Y})
	}
	// polyclip contours are implicitly closed
	if len(c) > 1 && c[0] == c[len(c)-1] {
		c = c[:len(c)-1]
	}
	return c
}

func polyContours(p *geometry.Poly) polyclip.Polygon {
	pc := polyclip.Polygon{ringContour(p.Exterior)}
	for _, h := range p.Holes {
		pc = append(pc, ringContour(h))
	}
	return pc
}

// toClipPolygon converts a polygonal geojson object into polyclip form.
// Holes and the parts of a MultiPolygon become additional contours; polyclip
// resolves containment with even-odd nesting.
func toClipPolygon(o geojson.Object) (polyclip.Polygon, bool) {
	switch g := o.(type) {
	case *geojson.Polygon:
		return polyContours(g.Base()), true
	case *geojson.Rect:
		r := g.Base()
		return polyclip.Polygon{{
			{X: r.Min.X, Y: r.Min.Y},
			{X: r.Max.X, Y: r.Min.Y},
			{X: r.Max.X, Y: r.Max.Y},
			{X: r.Min.X, Y: r.Max.Y},
		}}, true
	case *geojson.MultiPolygon:
		var pc polyclip.Polygon
		for _, child := range g.Base() {
			sub, ok := toClipPolygon(child)
			if !ok {
				return nil, false
			}
			pc = append(pc, sub...)
		}
		return pc, true
	case *geojson.Feature:
		return toClipPolygon(g.Base())
	}
	return nil, false
}

func closeRing(c polyclip.Contour) []geometry.Point {
	pts := make([]geometry.Point, 0, len(c)+1)
	for _, p := range c {
		pts = append(pts, geometry.Point{X: p.X, Y: p.Y})
	}
	pts = append(pts, pts[0])
	return pts
}

// fromClipPolygon rebuilds a geojson object from a polyclip result. Contours
// at even nesting depth are exteriors; odd-depth contours become holes of
// the exterior one level up.
func fromClipPolygon(pc polyclip.Polygon) geojson.Object {
	var contours []polyclip.Contour
	for _, c := range pc {
		if len(c) >= 3 {
			contours = append(contours, c)
		}
	}
	if len(contours) == 0 {
		return geojson.NewMultiPolygon(nil)
	}
	depths := make([]int, len(contours))
	for i, c := range contours {
		for j, other := range contours {
			if i != j && other.Contains(c[0]) {
				depths[i]++
			}
		}
	}
	var polys []*geometry.Poly
	for i, c := range contours {
		if depths[i]%2 != 0 {
			continue
		}
		var holes [][]geometry.Point
		for j, h := range contours {
			if depths[j] == depths[i]+1 && c.Contains(h[0]) {
				holes = append(holes, closeRing(h))
			}
		}
		polys = append(polys, geometry.NewPoly(closeRing(c), holes, nil))
	}
	if len(polys) == 0 {
		return geojson.NewMultiPolygon(nil)
	}
	if len(polys) == 1 {
		return geojson.NewPolygon(polys[0])
	}
	return geojson.NewMultiPolygon(polys)
}

// Union combines polygonal geometries into a single Polygon or MultiPolygon.
// A lone input is returned untouched.
func Union(objs []geojson.Object) (geojson.Object, error) {
	var acc polyclip.Polygon
	var last geojson.Object
	var count int
	for _, o := range objs {
		if o == nil || o.Empty() {
			continue
		}
		pc, ok := toClipPolygon(o)
		if !ok {
			return nil, ErrNonPolygonal
		}
		if count == 0 {
			acc = pc
		} else {
			acc = acc.Construct(polyclip.UNION, pc)
		}
		last = o
		count++
	}
	if count == 0 {
		return nil, ErrNoGeometries
	}
	if count == 1 {
		if f, ok := last.(*geojson.Feature); ok {
			return f.Base(), nil
		}
		return last, nil
	}
	return fromClipPolygon(acc), nil
}
