// Package geom is the geometry engine behind the clip pipeline. It closes
// over the GeoJSON geometry tags, classifies them into coarse families, and
// provides the constructive operations (explode, union, intersection) that
// tidwall/geojson does not: the polygon boolean work is delegated to
// polyclip-go and the line work walks segments directly.
package geom

import (
	"errors"

	"github.com/tidwall/geojson"
)

var (
	// ErrNonPolygonal is returned when a polygonal operation receives a
	// point, line, or collection geometry.
	ErrNonPolygonal = errors.New("geometry is not polygonal")
	// ErrNoGeometries is returned when a union has nothing to union.
	ErrNoGeometries = errors.New("no polygonal geometries")
)

// Type is the geometry tag. Unlike a runtime type inspection, the tag is a
// closed set, so family classification is a total function.
type Type byte

const (
	Unknown Type = iota
	Point
	MultiPoint
	LineString
	MultiLineString
	LinearRing
	Polygon
	MultiPolygon
	GeometryCollection
)

var typeNames = [...]string{
	Unknown:            "Unknown",
	Point:              "Point",
	MultiPoint:         "MultiPoint",
	LineString:         "LineString",
	MultiLineString:    "MultiLineString",
	LinearRing:         "LinearRing",
	Polygon:            "Polygon",
	MultiPolygon:       "MultiPolygon",
	GeometryCollection: "GeometryCollection",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Family is the coarse geometry classification. GeometryCollection and
// unrecognized objects fall outside the three point/line/polygon families.
type Family byte

const (
	FamilyNone Family = iota
	FamilyPoint
	FamilyLine
	FamilyPolygon
	FamilyCollection
)

var familyNames = [...]string{
	FamilyNone:       "None",
	FamilyPoint:      "Point",
	FamilyLine:       "Line",
	FamilyPolygon:    "Polygon",
	FamilyCollection: "Collection",
}

func (f Family) String() string {
	if int(f) < len(familyNames) {
		return familyNames[f]
	}
	return "None"
}

// Family maps a tag to its family.
func (t Type) Family() Family {
	switch t {
	case Point, MultiPoint:
		return FamilyPoint
	case LineString, MultiLineString, LinearRing:
		return FamilyLine
	case Polygon, MultiPolygon:
		return FamilyPolygon
	case GeometryCollection:
		return FamilyCollection
	}
	return FamilyNone
}

// TypeOf returns the tag for a geojson object. Features classify as their
// base geometry, and a Rect counts as a Polygon.
func TypeOf(o geojson.Object) Type {
	switch g := o.(type) {
	case *geojson.Point, *geojson.SimplePoint:
		return Point
	case *geojson.MultiPoint:
		return MultiPoint
	case *geojson.LineString:
		return LineString
	case *geojson.MultiLineString:
		return MultiLineString
	case *geojson.Polygon, *geojson.Rect:
		return Polygon
	case *geojson.MultiPolygon:
		return MultiPolygon
	case *geojson.GeometryCollection:
		return GeometryCollection
	case *geojson.FeatureCollection:
		return GeometryCollection
	case *geojson.Feature:
		return TypeOf(g.Base())
	}
	return Unknown
}

// FamilyOf returns the family of a geojson object.
func FamilyOf(o geojson.Object) Family {
	return TypeOf(o).Family()
}

// IsPolygonal reports whether o belongs to the polygon family.
func IsPolygonal(o geojson.Object) bool {
	return FamilyOf(o) == FamilyPolygon
}

// Explode splits multi-part and collection geometries into single
// geometries. Nested collections are flattened. Empty geometries vanish.
func Explode(o geojson.Object) []geojson.Object {
	var out []geojson.Object
	switch g := o.(type) {
	case nil:
	case *geojson.Feature:
		out = Explode(g.Base())
	case *geojson.MultiPoint:
		out = append(out, g.Base()...)
	case *geojson.MultiLineString:
		out = append(out, g.Base()...)
	case *geojson.MultiPolygon:
		out = append(out, g.Base()...)
	case *geojson.GeometryCollection:
		for _, child := range g.Children() {
			out = append(out, Explode(child)...)
		}
	case *geojson.FeatureCollection:
		for _, child := range g.Children() {
			out = append(out, Explode(child)...)
		}
	default:
		if !o.Empty() {
			out = append(out, o)
		}
	}
	return out
}
