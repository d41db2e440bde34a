package geoclip

import (
	"fmt"

	"github.com/tidwall/geojson"
	"github.com/tidwall/geojson/geometry"

	"github.com/tidwall/geoclip/collection"
	"github.com/tidwall/geoclip/feature"
	"github.com/tidwall/geoclip/geom"
)

// maskBounds validates the mask's shape and returns its total bounds. Runs
// before any clipping work so that bad masks fail fast.
func maskBounds(mask any) (geometry.Rect, error) {
	switch m := mask.(type) {
	case geojson.Object:
		if m == nil || !geom.IsPolygonal(m) {
			return geometry.Rect{}, fmt.Errorf("%w: got %T", ErrInvalidMaskType, mask)
		}
		return m.Rect(), nil
	case *collection.Collection:
		if m == nil || m.Count() == 0 {
			return geometry.Rect{}, ErrInvalidMask
		}
		minX, minY, maxX, maxY := m.Bounds()
		return geometry.Rect{
			Min: geometry.Point{X: minX, Y: minY},
			Max: geometry.Point{X: maxX, Y: maxY},
		}, nil
	case []geojson.Object:
		if len(m) == 0 {
			return geometry.Rect{}, ErrInvalidMask
		}
		for _, o := range m {
			if o == nil {
				return geometry.Rect{}, fmt.Errorf("%w: mask geometry is nil",
					ErrInvalidMaskType)
			}
		}
		rect := m[0].Rect()
		for _, o := range m[1:] {
			r := o.Rect()
			if r.Min.X < rect.Min.X {
				rect.Min.X = r.Min.X
			}
			if r.Min.Y < rect.Min.Y {
				rect.Min.Y = r.Min.Y
			}
			if r.Max.X > rect.Max.X {
				rect.Max.X = r.Max.X
			}
			if r.Max.Y > rect.Max.Y {
				rect.Max.Y = r.Max.Y
			}
		}
		return rect, nil
	}
	return geometry.Rect{}, fmt.Errorf("%w: got %T", ErrInvalidMaskType, mask)
}

// maskCRS returns the coordinate reference metadata carried by a mask
// collection. Bare geometries carry none.
func maskCRS(mask any) string {
	if m, ok := mask.(*collection.Collection); ok && m != nil {
		return m.CRS()
	}
	return ""
}

// resolveMask reduces any accepted mask shape to exactly one polygonal
// geometry. A single polygonal geometry passes through unchanged; mask
// collections are dissolved with a polygon union so overlapping mask shapes
// behave as one combined footprint.
func resolveMask(mask any) (geojson.Object, error) {
	switch m := mask.(type) {
	case geojson.Object:
		if m == nil || !geom.IsPolygonal(m) {
			return nil, fmt.Errorf("%w: got %T", ErrInvalidMaskType, mask)
		}
		if f, ok := m.(*geojson.Feature); ok {
			return f.Base(), nil
		}
		return m, nil
	case *collection.Collection:
		if m == nil || m.Count() == 0 {
			return nil, ErrInvalidMask
		}
		objs := make([]geojson.Object, 0, m.Count())
		m.Scan(func(_ int, f *feature.Feature) bool {
			objs = append(objs, f.Geo())
			return true
		})
		return unionMask(objs)
	case []geojson.Object:
		if len(m) == 0 {
			return nil, ErrInvalidMask
		}
		return unionMask(m)
	}
	return nil, fmt.Errorf("%w: got %T", ErrInvalidMaskType, mask)
}

func unionMask(objs []geojson.Object) (geojson.Object, error) {
	u, err := geom.Union(objs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMask, err)
	}
	return u, nil
}
