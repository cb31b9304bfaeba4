package history

import (
	"sort"

	"golang.org/x/exp/slices"

	"github.com/sfttech/nyango/internal/curve"
	"github.com/sfttech/nyango/metainfo"
)

func compareOrderT(a, b curve.OrderT) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// ObjectHistory caches per-object derived structure that would otherwise
// need recomputing on every read: the ordinals at which the object
// changed, its linearization over time, and its direct-children set over
// time.
type ObjectHistory struct {
	Linearizations *curve.Curve[[]metainfo.Fqon]
	Children       *curve.Curve[map[metainfo.Fqon]struct{}]

	changes []curve.OrderT // kept sorted
}

func newObjectHistory() *ObjectHistory {
	return &ObjectHistory{
		Linearizations: curve.New[[]metainfo.Fqon](),
		Children:       curve.New[map[metainfo.Fqon]struct{}](),
	}
}

// InsertChange records that this object changed at t, truncating any
// later change points the way Curve.InsertDrop truncates keyframes.
func (h *ObjectHistory) InsertChange(t curve.OrderT) {
	cut, _ := slices.BinarySearchFunc(h.changes, t, compareOrderT)
	h.changes = append(h.changes[:cut], t)
}

// LastChangeBefore returns the latest recorded change ordinal <= t.
//
// This needs the first index strictly greater than t, which
// slices.BinarySearchFunc can't express directly without synthesizing a
// successor value -- risky here since t may be curve.LatestT, the
// all-ones sentinel that a "+1" would silently wrap past. sort.Search's
// arbitrary predicate has no such pitfall.
func (h *ObjectHistory) LastChangeBefore(t curve.OrderT) (curve.OrderT, bool) {
	idx := sort.Search(len(h.changes), func(i int) bool { return h.changes[i] > t })
	if idx == 0 {
		return 0, false
	}
	return h.changes[idx-1], true
}
