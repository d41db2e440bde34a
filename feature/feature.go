// Package feature defines a single record in a feature collection: a stable
// label, a geometry, and the attribute fields that ride along with it.
package feature

import (
	"github.com/tidwall/geojson"
	"github.com/tidwall/geojson/geometry"
	"github.com/tidwall/sjson"

	"github.com/tidwall/geoclip/field"
)

// Feature is immutable once constructed. Derived records (clipped or exploded
// rows) are made with WithGeo and share the parent's label and fields.
type Feature struct {
	id     string
	geo    geojson.Object
	fields field.List
}

func New(id string, geo geojson.Object, fields field.List) *Feature {
	return &Feature{
		id:     id,
		geo:    geo,
		fields: fields,
	}
}

func (f *Feature) ID() string {
	if f == nil {
		return ""
	}
	return f.id
}

func (f *Feature) Fields() field.List {
	if f == nil {
		return field.List{}
	}
	return f.fields
}

func (f *Feature) Rect() geometry.Rect {
	if f == nil || f.geo == nil {
		return geometry.Rect{}
	}
	return f.geo.Rect()
}

func (f *Feature) Geo() geojson.Object {
	if f == nil || f.geo == nil {
		return nil
	}
	return f.geo
}

// WithGeo returns a new feature with the same label and fields but a
// different geometry.
func (f *Feature) WithGeo(geo geojson.Object) *Feature {
	return &Feature{
		id:     f.id,
		geo:    geo,
		fields: f.fields,
	}
}

// JSON returns the record as a GeoJSON Feature. Intended for diagnostics,
// not as a serialization layer.
func (f *Feature) JSON() string {
	json := `{"type":"Feature"}`
	if f == nil {
		return json
	}
	if f.id != "" {
		json, _ = sjson.Set(json, "id", f.id)
	}
	if f.geo != nil {
		json, _ = sjson.SetRaw(json, "geometry", f.geo.JSON())
	}
	props := "{}"
	f.fields.Scan(func(fld field.Field) bool {
		props, _ = sjson.SetRaw(props, fld.Name(), fld.Value().JSON())
		return true
	})
	json, _ = sjson.SetRaw(json, "properties", props)
	return json
}

func (f *Feature) String() string {
	return f.JSON()
}
