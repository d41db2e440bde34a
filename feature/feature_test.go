package feature

import (
	"testing"

	"github.com/tidwall/assert"
	"github.com/tidwall/geojson"
	"github.com/tidwall/geojson/geometry"
	"github.com/tidwall/gjson"

	"github.com/tidwall/geoclip/field"
)

func TestFeature(t *testing.T) {
	var fields field.List
	fields = fields.Set(field.Make("name", "A"))
	fields = fields.Set(field.Make("pop", "123"))
	f := New("city:1", geojson.NewPoint(geometry.Point{X: 10, Y: 20}), fields)
	assert.Assert(f.ID() == "city:1")
	assert.Assert(f.Rect().Min.X == 10)
	assert.Assert(f.Rect().Max.Y == 20)
	assert.Assert(f.Fields().Get("name").Value().Data() == "A")

	g := f.WithGeo(geojson.NewPoint(geometry.Point{X: 1, Y: 2}))
	assert.Assert(g.ID() == "city:1")
	assert.Assert(g.Rect().Min.X == 1)
	assert.Assert(g.Fields().Get("pop").Value().Num() == 123)
	// parent untouched
	assert.Assert(f.Rect().Min.X == 10)
}

func TestFeatureJSON(t *testing.T) {
	var fields field.List
	fields = fields.Set(field.Make("name", "A"))
	f := New("1", geojson.NewPoint(geometry.Point{X: 10, Y: 20}), fields)
	json := f.JSON()
	assert.Assert(gjson.Get(json, "type").String() == "Feature")
	assert.Assert(gjson.Get(json, "id").String() == "1")
	assert.Assert(gjson.Get(json, "geometry.type").String() == "Point")
	assert.Assert(gjson.Get(json, "properties.name").String() == "A")
}

func TestFeatureNil(t *testing.T) {
	var f *Feature
	assert.Assert(f.ID() == "")
	assert.Assert(f.Geo() == nil)
	assert.Assert(f.Fields().Len() == 0)
}
