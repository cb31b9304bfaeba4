package nyan

import (
	"sync/atomic"

	"github.com/sfttech/nyango/history"
	"github.com/sfttech/nyango/metainfo"
	"github.com/sfttech/nyango/nyanerr"
	"github.com/sfttech/nyango/state"
)

// childRef is the Go stand-in for view.h's std::weak_ptr<View> child
// entry: the parent keeps a strong pointer to the child (Go has no
// portable weak pointer), but also an alive flag the child flips via
// Close() when it's done, so cleanupStaleChildren can still prune
// entries the way the C++ original prunes expired weak_ptrs.
type childRef struct {
	view  *View
	alive *atomic.Bool
}

// View is one observer's window onto a Database: its own versioned
// history of state changes, falling back to the database's immutable
// initial state for anything it hasn't overridden itself.
type View struct {
	database *Database
	hist     *history.StateHistory

	children []*childRef
	alive    *atomic.Bool // shared with the parent's childRef for this view, if any

	notifiers map[Fqon]map[*NotifierHandle]struct{}
}

func newView(db *Database) *View {
	return &View{
		database:  db,
		hist:      history.New(db.state),
		alive:     &atomic.Bool{},
		notifiers: make(map[Fqon]map[*NotifierHandle]struct{}),
	}
}

// NewChild returns a new view on the same database, registered as this
// view's child: a committed Transaction on this view is also applied to
// every live child, recursively.
func (v *View) NewChild() *View {
	child := newView(v.database)
	child.alive.Store(true)
	v.addChild(child)
	return child
}

func (v *View) addChild(child *View) {
	v.children = append(v.children, &childRef{view: child, alive: child.alive})
}

// Close marks this view as no longer in use: its parent (if any) will
// drop it from its child list the next time it cleans up stale
// children, instead of continuing to propagate transactions into it.
func (v *View) Close() {
	v.alive.Store(false)
}

// cleanupStaleChildren drops every child whose alive flag reads false.
func (v *View) cleanupStaleChildren() {
	live := v.children[:0]
	for _, c := range v.children {
		if c.alive.Load() {
			live = append(live, c)
		}
	}
	v.children = live
}

func (v *View) liveChildren() []*View {
	var out []*View
	for _, c := range v.children {
		if c.alive.Load() {
			out = append(out, c.view)
		}
	}
	return out
}

// GetObject returns a handle to fqon, checking first that it's actually
// a known object.
func (v *View) GetObject(fqon Fqon) (Object, error) {
	if _, err := v.GetInfo(fqon); err != nil {
		return Object{}, err
	}
	return Object{name: fqon, view: v}, nil
}

// GetInfo returns the database's declared metadata for fqon.
func (v *View) GetInfo(fqon Fqon) (*metainfo.ObjectInfo, error) {
	info, ok := v.database.info.Get(fqon)
	if !ok {
		return nil, nyanerr.NewObjectNotFoundError(fqon)
	}
	return info, nil
}

// GetRaw returns fqon's ObjectState at t: this view's own history first,
// falling back to the database's initial state.
func (v *View) GetRaw(fqon Fqon, t OrderT) (*state.ObjectState, error) {
	if obj := v.hist.GetObjState(fqon, t); obj != nil {
		return obj, nil
	}
	if obj := v.database.state.Get(fqon); obj != nil {
		return obj, nil
	}
	return nil, nyanerr.NewObjectNotFoundError(fqon)
}

// GetLinearization returns fqon's C3 linearization at t.
func (v *View) GetLinearization(fqon Fqon, t OrderT) ([]Fqon, error) {
	info, err := v.GetInfo(fqon)
	if err != nil {
		return nil, err
	}
	return v.hist.GetLinearization(fqon, t, info), nil
}

// GetObjChildren returns fqon's direct children at t -- one inheritance
// level down, not transitive.
func (v *View) GetObjChildren(fqon Fqon, t OrderT) (map[Fqon]struct{}, error) {
	info, err := v.GetInfo(fqon)
	if err != nil {
		return nil, err
	}
	return v.hist.GetChildren(fqon, t, info), nil
}

// GetObjChildrenAll returns every transitive child of fqon at t.
func (v *View) GetObjChildrenAll(fqon Fqon, t OrderT) (map[Fqon]struct{}, error) {
	target := make(map[Fqon]struct{})
	if err := v.gatherObjChildren(target, fqon, t); err != nil {
		return nil, err
	}
	return target, nil
}

func (v *View) gatherObjChildren(target map[Fqon]struct{}, fqon Fqon, t OrderT) error {
	kids, err := v.GetObjChildren(fqon, t)
	if err != nil {
		return err
	}
	for kid := range kids {
		if _, already := target[kid]; already {
			continue
		}
		target[kid] = struct{}{}
		if err := v.gatherObjChildren(target, kid, t); err != nil {
			return err
		}
	}
	return nil
}

// NewTransaction opens a patch transaction that will take effect at
// ordinal t, scoped to this view and every view currently alive as one
// of its (transitive) children.
func (v *View) NewTransaction(t OrderT) *Transaction {
	return newTransaction(t, v)
}

// CreateNotifier registers callback to fire whenever fqon (or one of
// its ancestors) changes in this view. The view keeps the returned
// handle; callbacks continue until DeregisterNotifier removes it.
func (v *View) CreateNotifier(fqon Fqon, callback NotifyFunc) *NotifierHandle {
	handle := newNotifierHandle(callback)

	set, ok := v.notifiers[fqon]
	if !ok {
		set = make(map[*NotifierHandle]struct{})
		v.notifiers[fqon] = set
	}
	set[handle] = struct{}{}

	return handle
}

// DeregisterNotifier removes a previously created notifier.
func (v *View) DeregisterNotifier(fqon Fqon, handle *NotifierHandle) error {
	set, ok := v.notifiers[fqon]
	if !ok {
		return nyanerr.NewInternalError("could not find notifier set by fqon to deregister")
	}
	if _, ok := set[handle]; !ok {
		return nyanerr.NewInternalError("could not find notifier instance in fqon set to deregister")
	}
	delete(set, handle)
	return nil
}

// FireNotifications calls every registered notifier for each object in
// changed, handing it the object's new state at t.
func (v *View) FireNotifications(changed map[Fqon]struct{}, t OrderT) {
	for obj := range changed {
		set, ok := v.notifiers[obj]
		if !ok {
			continue
		}
		objState, err := v.GetRaw(obj, t)
		if err != nil {
			continue
		}
		for handle := range set {
			handle.fire(t, obj, objState)
		}
	}
}
