package nyan

import (
	log "github.com/golang/glog"

	"github.com/sfttech/nyango/history"
	"github.com/sfttech/nyango/internal/c3"
	"github.com/sfttech/nyango/metainfo"
	"github.com/sfttech/nyango/nyanerr"
	"github.com/sfttech/nyango/state"
)

// txViewState is one view's share of a transaction: the new state it's
// building (following that view's current state at the transaction's
// ordinal) and the changes accumulated into it so far.
type txViewState struct {
	view    *View
	state   *state.State
	tracker *history.ChangeTracker
}

// Transaction applies one or more patches to a target view and every
// view currently alive as one of its (transitive) children, then
// commits the result to every one of those views at once.
type Transaction struct {
	at    OrderT
	valid bool
	err   error

	states []*txViewState
}

// newTransaction builds a transaction scoped to origin and every view
// that is (transitively, and currently alive) one of its children,
// mirroring transaction.cpp's constructor: each scoped view gets its
// own new State, built on top of the latest state it had before at.
func newTransaction(at OrderT, origin *View) *Transaction {
	tx := &Transaction{at: at, valid: true}

	var recurse func(v *View)
	addViewState := func(v *View) {
		base, ok := v.hist.GetStateBefore(at)
		if !ok {
			base, ok = v.hist.GetState(at)
		}
		if !ok {
			base = nil
		}
		tx.states = append(tx.states, &txViewState{
			view:    v,
			state:   state.NewState(base),
			tracker: history.NewChangeTracker(),
		})
	}

	recurse = func(v *View) {
		v.cleanupStaleChildren()
		for _, child := range v.liveChildren() {
			addViewState(child)
			recurse(child)
		}
	}

	addViewState(origin)
	recurse(origin)

	return tx
}

// Add applies patch to the target stored in it, in every view this
// transaction is scoped to.
func (tx *Transaction) Add(patch Object) (bool, error) {
	if !tx.valid {
		return false, tx.err
	}

	if !patch.IsPatch() {
		return false, nil
	}

	target, ok := patch.GetTarget()
	if !ok {
		return false, nyanerr.NewInternalError("patch somehow has no target")
	}

	patchLin, err := patch.GetLinearized(tx.at)
	if err != nil {
		return false, err
	}

	for _, vs := range tx.states {
		rawTarget, err := vs.view.GetRaw(target, tx.at)
		if err != nil {
			return false, err
		}
		targetObj, err := vs.state.CopyObject(target, rawTarget)
		if err != nil {
			return false, err
		}

		patchTracker := vs.tracker.TrackPatch(target)

		for _, patchName := range patchLin {
			patchRaw, err := vs.view.GetRaw(patchName, tx.at)
			if err != nil {
				return false, err
			}
			patchInfo, err := vs.view.GetInfo(patchName)
			if err != nil {
				return false, err
			}

			if err := targetObj.Apply(patchRaw, patchInfo, patchTracker); err != nil {
				tx.setError(err)
				return false, err
			}
		}
	}

	return true, nil
}

// Commit applies every view's accumulated state changes: it
// re-linearizes whatever changed parents, updates each view's history,
// and finally fires notifications for everything that changed.
func (tx *Transaction) Commit() (bool, error) {
	if !tx.valid {
		return false, tx.err
	}

	type update struct {
		linearizations [][]Fqon
		children       map[Fqon]map[Fqon]struct{}
	}

	updates := make([]update, len(tx.states))

	for i, vs := range tx.states {
		objsToLinearize := make(map[Fqon]struct{})
		childrenUpdate := make(map[Fqon]map[Fqon]struct{})

		for obj, changes := range vs.tracker.ObjectChanges() {
			if len(changes.AddedParents) == 0 {
				continue
			}

			for _, parent := range changes.AddedParents {
				set, ok := childrenUpdate[parent]
				if !ok {
					set = make(map[Fqon]struct{})
					childrenUpdate[parent] = set
				}
				set[obj] = struct{}{}
			}

			objsToLinearize[obj] = struct{}{}

			allKids, err := vs.view.GetObjChildrenAll(obj, tx.at)
			if err != nil {
				tx.setError(err)
				return false, err
			}
			for kid := range allKids {
				objsToLinearize[kid] = struct{}{}
			}
		}

		log.V(2).Infof("transaction: re-linearizing %d objects in view for commit at t=%d", len(objsToLinearize), tx.at)

		var linearizations [][]Fqon
		for obj := range objsToLinearize {
			lin, err := tx.relinearize(vs, obj)
			if err != nil {
				tx.setError(err)
				return false, err
			}
			linearizations = append(linearizations, lin)
		}

		updates[i] = update{linearizations: linearizations, children: childrenUpdate}
	}

	for i, vs := range tx.states {
		vs.view.hist.Insert(vs.state, tx.at)

		for _, lin := range updates[i].linearizations {
			vs.view.hist.InsertLinearization(lin, tx.at)
		}

		for obj, newKids := range updates[i].children {
			previous, err := vs.view.GetObjChildren(obj, tx.at)
			if err == nil {
				for kid := range previous {
					newKids[kid] = struct{}{}
				}
			}
			vs.view.hist.InsertChildren(obj, newKids, tx.at)
		}
	}

	for _, vs := range tx.states {
		changed := make(map[Fqon]struct{})
		for _, obj := range vs.tracker.ChangedObjects() {
			changed[obj] = struct{}{}
			allKids, err := vs.view.GetObjChildrenAll(obj, tx.at)
			if err != nil {
				continue
			}
			for kid := range allKids {
				changed[kid] = struct{}{}
			}
		}
		vs.view.FireNotifications(changed, tx.at)
	}

	tx.valid = false
	return true, nil
}

// relinearize computes obj's C3 linearization as it would be with this
// transaction's pending state applied: vs.state is consulted first,
// falling back to the view's already-committed state.
func (tx *Transaction) relinearize(vs *txViewState, obj Fqon) ([]Fqon, error) {
	lin, err := c3.Linearize(obj, func(name c3.Fqon) ([]c3.Fqon, error) {
		if newObj := vs.state.Get(name); newObj != nil {
			return newObj.Parents, nil
		}
		raw, err := vs.view.GetRaw(name, tx.at)
		if err != nil {
			return nil, nyanerr.NewInternalError("could not find parent object: " + name)
		}
		return raw.Parents, nil
	})
	if err != nil {
		return nil, nyanerr.NewC3Error(metainfo.Builtin("transaction relinearize"), err.Error())
	}
	return lin, nil
}

// Err returns the error that invalidated this transaction, if any.
func (tx *Transaction) Err() error { return tx.err }

func (tx *Transaction) setError(err error) {
	tx.valid = false
	tx.err = err
}
