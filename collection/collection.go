// Package collection implements the ordered, spatially indexed container
// that clip operations read from and produce. Row order is preserved as
// inserted; the rtree index is built lazily on first spatial use.
package collection

import (
	"github.com/tidwall/btree"
	"github.com/tidwall/geojson"
	"github.com/tidwall/geojson/geometry"
	"github.com/tidwall/match"
	"github.com/tidwall/rtree"

	"github.com/tidwall/geoclip/feature"
)

// Collection represents an ordered collection of features.
type Collection struct {
	feats   []*feature.Feature
	ids     btree.Map[string, int] // label -> first position
	spatial rtree.RTreeGN[float32, *feature.Feature]
	indexed bool
	crs     string
}

// New creates an empty collection.
func New() *Collection {
	return &Collection{}
}

// SetCRS attaches coordinate reference metadata. The collection never
// transforms coordinates; the value is only carried and compared.
func (c *Collection) SetCRS(crs string) {
	c.crs = crs
}

// CRS returns the coordinate reference metadata, or "" when unset.
func (c *Collection) CRS() string {
	return c.crs
}

// Count returns the number of features in the collection.
func (c *Collection) Count() int {
	return len(c.feats)
}

// Append adds a feature at the end of the collection. Labels are normally
// unique, but exploded rows share their parent's label, so duplicates are
// tolerated: the label lookup resolves to the first occurrence.
func (c *Collection) Append(f *feature.Feature) {
	if _, ok := c.ids.Get(f.ID()); !ok {
		c.ids.Set(f.ID(), len(c.feats))
	}
	c.feats = append(c.feats, f)
	c.indexed = false
}

// Set adds a feature, or replaces the feature that shares its label while
// keeping the original position.
func (c *Collection) Set(f *feature.Feature) (prev *feature.Feature) {
	if pos, ok := c.ids.Get(f.ID()); ok {
		prev = c.feats[pos]
		c.feats[pos] = f
		c.indexed = false
		return prev
	}
	c.Append(f)
	return nil
}

// Get returns the (first) feature with the given label, or nil.
func (c *Collection) Get(id string) *feature.Feature {
	pos, ok := c.ids.Get(id)
	if !ok {
		return nil
	}
	return c.feats[pos]
}

// PositionOf returns the position of the first feature with the given label.
func (c *Collection) PositionOf(id string) (int, bool) {
	return c.ids.Get(id)
}

// FeatureAt returns the feature at a position.
func (c *Collection) FeatureAt(pos int) *feature.Feature {
	return c.feats[pos]
}

// Scan iterates the features in row order.
func (c *Collection) Scan(iter func(pos int, f *feature.Feature) bool) bool {
	for i, f := range c.feats {
		if !iter(i, f) {
			return false
		}
	}
	return true
}

// SelectMatch returns the features whose label matches the glob pattern, in
// row order.
func (c *Collection) SelectMatch(pattern string) []*feature.Feature {
	var out []*feature.Feature
	for _, f := range c.feats {
		if match.Match(f.ID(), pattern) {
			out = append(out, f)
		}
	}
	return out
}

// EmptyCopy returns a new collection with the same metadata and zero rows.
func (c *Collection) EmptyCopy() *Collection {
	return &Collection{crs: c.crs}
}

const dRNDTOWARDS = (1.0 - 1.0/8388608.0) /* Round towards zero */
const dRNDAWAY = (1.0 + 1.0/8388608.0)    /* Round away from zero */

func rtreeValueDown(d float64) float32 {
	f := float32(d)
	if float64(f) > d {
		if d < 0 {
			f = float32(d * dRNDAWAY)
		} else {
			f = float32(d * dRNDTOWARDS)
		}
	}
	return f
}
func rtreeValueUp(d float64) float32 {
	f := float32(d)
	if float64(f) < d {
		if d < 0 {
			f = float32(d * dRNDTOWARDS)
		} else {
			f = float32(d * dRNDAWAY)
		}
	}
	return f
}

func rtreeItem(f *feature.Feature) (min, max [2]float32, data *feature.Feature) {
	min, max = rtreeRect(f.Rect())
	return min, max, f
}

func rtreeRect(rect geometry.Rect) (min, max [2]float32) {
	return [2]float32{
			rtreeValueDown(rect.Min.X),
			rtreeValueDown(rect.Min.Y),
		}, [2]float32{
			rtreeValueUp(rect.Max.X),
			rtreeValueUp(rect.Max.Y),
		}
}

// index returns the spatial index, building it on first use.
func (c *Collection) index() *rtree.RTreeGN[float32, *feature.Feature] {
	if !c.indexed {
		c.spatial = rtree.RTreeGN[float32, *feature.Feature]{}
		for _, f := range c.feats {
			if f.Geo() != nil && !f.Geo().Empty() {
				c.spatial.Insert(rtreeItem(f))
			}
		}
		c.indexed = true
	}
	return &c.spatial
}

// Bounds returns the bounds of all the items in the collection.
func (c *Collection) Bounds() (minX, minY, maxX, maxY float64) {
	spatial := c.index()
	_, _, left := spatial.LeftMost()
	_, _, bottom := spatial.BottomMost()
	_, _, right := spatial.RightMost()
	_, _, top := spatial.TopMost()
	if left == nil {
		return
	}
	return left.Rect().Min.X, bottom.Rect().Min.Y,
		right.Rect().Max.X, top.Rect().Max.Y
}

func (c *Collection) geoSearch(
	rect geometry.Rect,
	iter func(f *feature.Feature) bool,
) bool {
	alive := true
	min, max := rtreeRect(rect)
	c.index().Search(
		min, max,
		func(_, _ [2]float32, f *feature.Feature) bool {
			alive = iter(f)
			return alive
		},
	)
	return alive
}

// Intersects returns all features that intersect the query object. The rtree
// narrows by bounding box; the exact intersects test runs on every candidate
// so that non-intersecting rows never escape. Iteration order is index
// order, not row order.
func (c *Collection) Intersects(
	obj geojson.Object,
	iter func(f *feature.Feature) bool,
) bool {
	return c.geoSearch(obj.Rect(), func(f *feature.Feature) bool {
		if f.Geo().Intersects(obj) {
			return iter(f)
		}
		return true
	})
}

// Within returns all features fully contained by the query object.
func (c *Collection) Within(
	obj geojson.Object,
	iter func(f *feature.Feature) bool,
) bool {
	return c.geoSearch(obj.Rect(), func(f *feature.Feature) bool {
		if f.Geo().Within(obj) {
			return iter(f)
		}
		return true
	})
}
