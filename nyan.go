// Package nyan is the public API of the engine: load a Database from
// nyan source, open a View onto it, read Object member values through
// time, and commit patch Transactions that produce new, independently
// readable views.
package nyan

import (
	"github.com/sfttech/nyango/internal/curve"
	"github.com/sfttech/nyango/loader"
	"github.com/sfttech/nyango/metainfo"
	"github.com/sfttech/nyango/state"
)

// Fqon is a fully-qualified object name.
type Fqon = metainfo.Fqon

// MemberID identifies a member within the scope of a single object.
type MemberID = metainfo.MemberID

// OrderT is a point in a view's history. DefaultT is where a fresh
// view's history starts; LatestT requests the most recently committed
// state.
type OrderT = curve.OrderT

const (
	DefaultT = curve.DefaultT
	LatestT  = curve.LatestT
)

// FileFetcher supplies the raw contents of an imported file, given the
// filename derived from its namespace.
type FileFetcher = loader.FileFetcher

// ParseFunc turns one file's raw contents into its parsed AST. The
// lexer/parser that produces an ast.File from nyan source text is out
// of scope for this module; callers of LoadDatabase supply one.
type ParseFunc = loader.ParseFunc

// NotifyFunc is called with the ordinal, object name and new object
// state whenever a subscribed object (or one of its parents) changes.
type NotifyFunc func(t OrderT, fqon Fqon, obj *state.ObjectState)
