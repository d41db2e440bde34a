// Package geoclip clips a collection of vector geometries to the extent of a
// polygonal mask. Candidate rows are narrowed with the collection's spatial
// index, the mask is dissolved into a single polygonal geometry, every
// candidate is replaced with its exact intersection, and the surviving rows
// come back in their original order with their attributes untouched.
package geoclip

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/geojson"
	"github.com/tidwall/geojson/geometry"

	"github.com/tidwall/geoclip/collection"
	"github.com/tidwall/geoclip/feature"
	"github.com/tidwall/geoclip/field"
	"github.com/tidwall/geoclip/geom"
	"github.com/tidwall/geoclip/internal/log"
)

var (
	// ErrInvalidInput is returned when the input is not a usable collection.
	ErrInvalidInput = errors.New("input should be a feature collection or a geometry series")
	// ErrInvalidMaskType is returned when the mask is not one of the
	// accepted shapes.
	ErrInvalidMaskType = errors.New("mask should be a feature collection, a geometry series, or a (Multi)Polygon")
	// ErrInvalidMask is returned when the mask resolves to no polygonal
	// geometry.
	ErrInvalidMask = errors.New("mask has no polygonal geometry")
)

// clipRow is one intermediate output row. The label ties it back to its
// original row; sub orders sibling rows produced by explosion.
type clipRow struct {
	feat *feature.Feature
	sub  int
}

// Clip clips the features of col to the extent of mask.
//
// The mask may be a polygonal geojson.Object (Polygon, MultiPolygon, or
// Rect), a *collection.Collection, or a []geojson.Object; collections are
// dissolved into one polygonal geometry first, so overlapping mask polygons
// clip as their combined footprint.
//
// With keepGeomType set, rows whose intersection degenerated into another
// geometry family (a boundary line or touch point from a polygon, say) are
// exploded and trimmed back to the input's family. The flag is ignored, with
// a warning, when the input already mixes families or contains
// GeometryCollections.
//
// The input is never mutated; the result is a new collection with the same
// metadata.
func Clip(col *collection.Collection, mask any, keepGeomType bool) (*collection.Collection, error) {
	if col == nil {
		return nil, ErrInvalidInput
	}
	mrect, err := maskBounds(mask)
	if err != nil {
		return nil, err
	}
	if crs := maskCRS(mask); crs != "" && col.CRS() != "" && crs != col.CRS() {
		log.Warnf("CRS mismatch between the input collection (%s) and the mask (%s)",
			col.CRS(), crs)
	}
	if col.Count() == 0 {
		return col.EmptyCopy(), nil
	}
	minX, minY, maxX, maxY := col.Bounds()
	crect := geometry.Rect{
		Min: geometry.Point{X: minX, Y: minY},
		Max: geometry.Point{X: maxX, Y: maxY},
	}
	if !boxesOverlap(crect, mrect) {
		return col.EmptyCopy(), nil
	}
	maskPoly, err := resolveMask(mask)
	if err != nil {
		return nil, err
	}
	rows := clipWithPolygon(col, maskPoly)
	if len(rows) == 0 {
		return col.EmptyCopy(), nil
	}
	if keepGeomType && reconcilePossible(col) {
		rows = keepOriginalGeomType(col, rows)
	}
	return restoreOrder(col, rows), nil
}

// ClipSeries clips a bare geometry sequence, returning the surviving
// geometries. Same semantics as Clip with positional row identities.
func ClipSeries(series []geojson.Object, mask any, keepGeomType bool) ([]geojson.Object, error) {
	col := collection.New()
	for i, g := range series {
		if g == nil {
			return nil, fmt.Errorf("%w: series geometry %d is nil", ErrInvalidInput, i)
		}
		col.Append(feature.New(strconv.Itoa(i), g, field.List{}))
	}
	res, err := Clip(col, mask, keepGeomType)
	if err != nil {
		return nil, err
	}
	out := make([]geojson.Object, 0, res.Count())
	res.Scan(func(_ int, f *feature.Feature) bool {
		out = append(out, f.Geo())
		return true
	})
	return out, nil
}

// boxesOverlap reports whether two boxes overlap on both axes. Intervals are
// closed: touching edges count.
func boxesOverlap(a, b geometry.Rect) bool {
	return b.Min.X <= a.Max.X && a.Min.X <= b.Max.X &&
		b.Min.Y <= a.Max.Y && a.Min.Y <= b.Max.Y
}

// clipWithPolygon queries the spatial index for rows that exactly intersect
// the mask polygon and replaces each candidate's geometry with its
// intersection. Attributes are carried over unchanged. The returned rows are
// in index order, not row order.
func clipWithPolygon(col *collection.Collection, maskPoly geojson.Object) []clipRow {
	var rows []clipRow
	col.Intersects(maskPoly, func(f *feature.Feature) bool {
		rows = append(rows, clipRow{
			feat: f.WithGeo(geom.Intersection(f.Geo(), maskPoly)),
		})
		return true
	})
	return rows
}
