package nyan

import "github.com/sfttech/nyango/state"

// NotifierHandle is the registration a caller gets back from
// Object.Subscribe or View.CreateNotifier. It holds the callback; the
// view holds the handle in its own per-object notifier set, so a
// notifier keeps firing until DeregisterNotifier drops it.
type NotifierHandle struct {
	callback NotifyFunc
}

func newNotifierHandle(callback NotifyFunc) *NotifierHandle {
	return &NotifierHandle{callback: callback}
}

func (h *NotifierHandle) fire(t OrderT, fqon Fqon, obj *state.ObjectState) {
	h.callback(t, fqon, obj)
}
