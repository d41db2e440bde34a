package collection

import (
	"strconv"
	"testing"

	"github.com/tidwall/geojson"
	"github.com/tidwall/geojson/geometry"

	"github.com/tidwall/geoclip/feature"
	"github.com/tidwall/geoclip/field"
)

func PO(x, y float64) *geojson.Point {
	return geojson.NewPoint(geometry.Point{X: x, Y: y})
}

func RO(minX, minY, maxX, maxY float64) *geojson.Polygon {
	return geojson.NewPolygon(geometry.NewPoly([]geometry.Point{
		{X: minX, Y: minY},
		{X: maxX, Y: minY},
		{X: maxX, Y: maxY},
		{X: minX, Y: maxY},
		{X: minX, Y: minY},
	}, nil, nil))
}

func expect(t testing.TB, what bool) {
	t.Helper()
	if !what {
		t.Fatal("not what you expected")
	}
}

func TestCollectionOrder(t *testing.T) {
	c := New()
	for i := 0; i < 100; i++ {
		c.Append(feature.New(strconv.Itoa(i), PO(float64(i), float64(i)), field.List{}))
	}
	expect(t, c.Count() == 100)
	var last int = -1
	c.Scan(func(pos int, f *feature.Feature) bool {
		n, _ := strconv.Atoi(f.ID())
		expect(t, pos == n)
		expect(t, n == last+1)
		last = n
		return true
	})
	expect(t, last == 99)

	pos, ok := c.PositionOf("42")
	expect(t, ok && pos == 42)
	expect(t, c.Get("42").ID() == "42")
	expect(t, c.Get("nope") == nil)
	expect(t, c.FeatureAt(7).ID() == "7")
}

func TestCollectionSet(t *testing.T) {
	c := New()
	c.Set(feature.New("a", PO(1, 1), field.List{}))
	c.Set(feature.New("b", PO(2, 2), field.List{}))
	prev := c.Set(feature.New("a", PO(9, 9), field.List{}))
	expect(t, prev != nil)
	expect(t, prev.Rect().Min.X == 1)
	expect(t, c.Count() == 2)
	// position kept
	expect(t, c.FeatureAt(0).ID() == "a")
	expect(t, c.FeatureAt(0).Rect().Min.X == 9)
}

func TestCollectionDuplicateLabels(t *testing.T) {
	c := New()
	c.Append(feature.New("a", PO(1, 1), field.List{}))
	c.Append(feature.New("a", PO(2, 2), field.List{}))
	expect(t, c.Count() == 2)
	// lookup resolves to the first occurrence
	expect(t, c.Get("a").Rect().Min.X == 1)
}

func TestCollectionBounds(t *testing.T) {
	c := New()
	c.Append(feature.New("1", PO(10, 10), field.List{}))
	c.Append(feature.New("2", PO(-5, 20), field.List{}))
	c.Append(feature.New("3", PO(3, -7), field.List{}))
	minX, minY, maxX, maxY := c.Bounds()
	expect(t, minX == -5 && minY == -7 && maxX == 10 && maxY == 20)

	// mutation invalidates the index
	c.Append(feature.New("4", PO(100, 100), field.List{}))
	_, _, maxX, maxY = c.Bounds()
	expect(t, maxX == 100 && maxY == 100)

	empty := New()
	minX, minY, maxX, maxY = empty.Bounds()
	expect(t, minX == 0 && minY == 0 && maxX == 0 && maxY == 0)
}

func TestCollectionIntersects(t *testing.T) {
	c := New()
	for i := 0; i < 50; i++ {
		c.Append(feature.New(strconv.Itoa(i), PO(float64(i), float64(i)), field.List{}))
	}
	var hits int
	c.Intersects(RO(10, 10, 19, 19), func(f *feature.Feature) bool {
		hits++
		return true
	})
	expect(t, hits == 10)

	// exact test: a diagonal line whose bbox overlaps the query but whose
	// geometry does not must be excluded
	c = New()
	line := geojson.NewLineString(geometry.NewLine([]geometry.Point{
		{X: 0, Y: 0}, {X: 10, Y: 10},
	}, nil))
	c.Append(feature.New("diag", line, field.List{}))
	hits = 0
	c.Intersects(RO(8, 0, 10, 2), func(f *feature.Feature) bool {
		hits++
		return true
	})
	expect(t, hits == 0)
}

func TestCollectionWithin(t *testing.T) {
	c := New()
	c.Append(feature.New("in", RO(2, 2, 4, 4), field.List{}))
	c.Append(feature.New("straddle", RO(8, 8, 12, 12), field.List{}))
	var ids []string
	c.Within(RO(0, 0, 10, 10), func(f *feature.Feature) bool {
		ids = append(ids, f.ID())
		return true
	})
	expect(t, len(ids) == 1)
	expect(t, ids[0] == "in")
}

func TestCollectionSelectMatch(t *testing.T) {
	c := New()
	c.Append(feature.New("road:1", PO(1, 1), field.List{}))
	c.Append(feature.New("city:1", PO(2, 2), field.List{}))
	c.Append(feature.New("road:2", PO(3, 3), field.List{}))
	roads := c.SelectMatch("road:*")
	expect(t, len(roads) == 2)
	expect(t, roads[0].ID() == "road:1")
	expect(t, roads[1].ID() == "road:2")
	expect(t, len(c.SelectMatch("rail:*")) == 0)
}

func TestCollectionEmptyCopy(t *testing.T) {
	c := New()
	c.SetCRS("EPSG:4326")
	c.Append(feature.New("a", PO(1, 1), field.List{}))
	e := c.EmptyCopy()
	expect(t, e.Count() == 0)
	expect(t, e.CRS() == "EPSG:4326")
	expect(t, c.Count() == 1)
}
