package geoclip

import (
	"github.com/tidwall/geoclip/collection"
	"github.com/tidwall/geoclip/feature"
	"github.com/tidwall/geoclip/geom"
	"github.com/tidwall/geoclip/internal/log"
)

// containsCollection reports whether any row geometry is a
// GeometryCollection.
func containsCollection(col *collection.Collection) bool {
	found := false
	col.Scan(func(_ int, f *feature.Feature) bool {
		if geom.FamilyOf(f.Geo()) == geom.FamilyCollection {
			found = true
			return false
		}
		return true
	})
	return found
}

// familiesPresent counts the distinct point/line/polygon families among the
// row geometries, classified by tag. GeometryCollections do not count.
func familiesPresent(col *collection.Collection) int {
	var seen [4]bool
	col.Scan(func(_ int, f *feature.Feature) bool {
		switch fam := geom.FamilyOf(f.Geo()); fam {
		case geom.FamilyPoint, geom.FamilyLine, geom.FamilyPolygon:
			seen[fam-geom.FamilyPoint] = true
		}
		return true
	})
	var n int
	for _, s := range seen {
		if s {
			n++
		}
	}
	return n
}

// reconcilePossible checks the pre-clip collection. Type keeping only makes
// sense when the input has one well-defined family to restore.
func reconcilePossible(col *collection.Collection) bool {
	if containsCollection(col) {
		log.Warnf("keep geometry type cannot be applied to a collection " +
			"containing GeometryCollection geometries; returning the raw result")
		return false
	}
	if familiesPresent(col) > 1 {
		log.Warnf("keep geometry type cannot be applied to a mixed-type " +
			"collection; returning the raw result")
		return false
	}
	return true
}

// keepOriginalGeomType restores the input's geometry family on the clipped
// rows. Intersection can turn a polygon into a GeometryCollection or into a
// boundary line/point remnant at a tangency; those rows are exploded into
// single-geometry rows and, for line and polygon inputs, trimmed back to the
// original family. Point inputs are never trimmed since their intersections
// stay points.
func keepOriginalGeomType(orig *collection.Collection, rows []clipRow) []clipRow {
	origFamily := geom.FamilyOf(orig.FeatureAt(0).Geo())

	var newCollections bool
	var seen [4]bool
	for _, r := range rows {
		switch fam := geom.FamilyOf(r.feat.Geo()); fam {
		case geom.FamilyCollection:
			newCollections = true
		case geom.FamilyPoint, geom.FamilyLine, geom.FamilyPolygon:
			seen[fam-geom.FamilyPoint] = true
		}
	}
	var families int
	var onlyFamily geom.Family
	for i, s := range seen {
		if s {
			families++
			onlyFamily = geom.FamilyPoint + geom.Family(i)
		}
	}
	// reconcile when intersection introduced collections, mixed the
	// families, or swapped the single family outright (a polygon collection
	// collapsing to one shared-edge line)
	changed := newCollections || families > 1 ||
		(families == 1 && onlyFamily != origFamily)
	if !changed {
		return rows
	}

	if newCollections {
		rows = explodeRows(rows)
	}
	if origFamily == geom.FamilyLine || origFamily == geom.FamilyPolygon {
		kept := make([]clipRow, 0, len(rows))
		for _, r := range rows {
			if geom.FamilyOf(r.feat.Geo()) == origFamily {
				kept = append(kept, r)
			}
		}
		rows = kept
	}
	return rows
}

// explodeRows splits every multi-part or collection geometry into one row
// per single geometry. Exploded rows keep the parent's label and fields; sub
// records the explosion order so siblings stay in place when the original
// order is restored.
func explodeRows(rows []clipRow) []clipRow {
	out := make([]clipRow, 0, len(rows))
	for _, r := range rows {
		parts := geom.Explode(r.feat.Geo())
		for i, part := range parts {
			out = append(out, clipRow{feat: r.feat.WithGeo(part), sub: i})
		}
	}
	return out
}
