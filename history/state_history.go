package history

import (
	"github.com/sfttech/nyango/internal/curve"
	"github.com/sfttech/nyango/metainfo"
	"github.com/sfttech/nyango/state"
)

// StateHistory tracks a view's versioned States over time, plus the
// per-object linearization/children caches that let a read at time t
// avoid walking the whole change history.
type StateHistory struct {
	states  *curve.Curve[*state.State]
	objects map[metainfo.Fqon]*ObjectHistory
}

// New creates a StateHistory whose history starts with an empty State
// linked to base. View passes the database's initial state for every
// view, child views included: a child view's history is not linked to
// its parent view's history.
func New(base *state.State) *StateHistory {
	h := &StateHistory{
		states:  curve.New[*state.State](),
		objects: make(map[metainfo.Fqon]*ObjectHistory),
	}
	h.states.InsertDrop(curve.DefaultT, state.NewState(base))
	return h
}

// GetState returns the state at or before t.
func (h *StateHistory) GetState(t curve.OrderT) (*state.State, bool) {
	return h.states.At(t)
}

// GetStateBefore returns the latest state strictly before t.
func (h *StateHistory) GetStateBefore(t curve.OrderT) (*state.State, bool) {
	return h.states.Before(t)
}

// GetStateExact returns the state recorded at exactly t.
func (h *StateHistory) GetStateExact(t curve.OrderT) (*state.State, bool) {
	return h.states.AtExact(t)
}

func (h *StateHistory) objHistory(fqon metainfo.Fqon) *ObjectHistory {
	oh, ok := h.objects[fqon]
	if !ok {
		oh = newObjectHistory()
		h.objects[fqon] = oh
	}
	return oh
}

// GetObjState walks the per-object change index to find the state that
// holds fqon's current ObjectState at t, then fetches it from there.
func (h *StateHistory) GetObjState(fqon metainfo.Fqon, t curve.OrderT) *state.ObjectState {
	oh, ok := h.objects[fqon]
	if !ok {
		return nil
	}
	changeT, ok := oh.LastChangeBefore(t)
	if !ok {
		return nil
	}
	st, ok := h.states.At(changeT)
	if !ok {
		return nil
	}
	return st.Get(fqon)
}

// Insert records a new state at t: it truncates every later state the
// way Curve.InsertDrop truncates keyframes, merges into an exact
// existing state if one is there, and updates each touched object's
// change index.
func (h *StateHistory) Insert(newState *state.State, t curve.OrderT) {
	if existing, ok := h.states.AtExact(t); ok {
		existing.Update(newState)
	} else {
		h.states.InsertDrop(t, newState)
	}

	for fqon := range newState.Objects() {
		h.objHistory(fqon).InsertChange(t)
	}
}

// InsertLinearization records a new linearization for an object at t.
// The linearization's own first element names the object.
func (h *StateHistory) InsertLinearization(lin []metainfo.Fqon, t curve.OrderT) {
	if len(lin) == 0 {
		return
	}
	h.objHistory(lin[0]).Linearizations.InsertDrop(t, lin)
}

// GetLinearization returns the linearization of obj at t, falling back
// to the ObjectInfo's initial linearization if no cached override
// exists.
func (h *StateHistory) GetLinearization(obj metainfo.Fqon, t curve.OrderT, info *metainfo.ObjectInfo) []metainfo.Fqon {
	if oh, ok := h.objects[obj]; ok {
		if lin, ok := oh.Linearizations.At(t); ok {
			return lin
		}
	}
	return info.InitialLinearization
}

// InsertChildren records a new direct-children set for obj at t.
func (h *StateHistory) InsertChildren(obj metainfo.Fqon, children map[metainfo.Fqon]struct{}, t curve.OrderT) {
	h.objHistory(obj).Children.InsertDrop(t, children)
}

// GetChildren returns the direct children of obj at t, falling back to
// the ObjectInfo's initial children set.
func (h *StateHistory) GetChildren(obj metainfo.Fqon, t curve.OrderT, info *metainfo.ObjectInfo) map[metainfo.Fqon]struct{} {
	if oh, ok := h.objects[obj]; ok {
		if children, ok := oh.Children.At(t); ok {
			return children
		}
	}
	return info.InitialChildren
}
