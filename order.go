package geoclip

import (
	"sort"

	"github.com/tidwall/hashmap"

	"github.com/tidwall/geoclip/collection"
	"github.com/tidwall/geoclip/feature"
)

// restoreOrder puts the clipped rows back into the input's row order. The
// spatial-index walk (and any explosion) loses the original sequence, so
// every original row gets a rank from its position, surviving rows look
// their rank up by label, and a stable sort by (rank, explosion order) does
// the rest. All rows derived from original row A land before all rows
// derived from a later row B.
func restoreOrder(orig *collection.Collection, rows []clipRow) *collection.Collection {
	var ranks hashmap.Map[string, int]
	orig.Scan(func(pos int, f *feature.Feature) bool {
		if _, ok := ranks.Get(f.ID()); !ok {
			ranks.Set(f.ID(), pos)
		}
		return true
	})
	sort.SliceStable(rows, func(i, j int) bool {
		ri, _ := ranks.Get(rows[i].feat.ID())
		rj, _ := ranks.Get(rows[j].feat.ID())
		if ri != rj {
			return ri < rj
		}
		return rows[i].sub < rows[j].sub
	})
	out := orig.EmptyCopy()
	for _, r := range rows {
		out.Append(r.feat)
	}
	return out
}
