package nyan

import (
	"github.com/sfttech/nyango/loader"
	"github.com/sfttech/nyango/metainfo"
	"github.com/sfttech/nyango/state"
)

// Database holds the type registry and initial state produced by
// loading a tree of nyan files. It never changes after LoadDatabase
// returns; all mutation happens in the Views opened on top of it.
type Database struct {
	info  *metainfo.MetaInfo
	state *state.State
}

// LoadDatabase reads rootFilename and every file it transitively
// imports, fetching each through fetch and parsing it with parse.
func LoadDatabase(rootFilename string, fetch FileFetcher, parse ParseFunc) (*Database, error) {
	info, st, err := loader.Load(rootFilename, fetch, parse)
	if err != nil {
		return nil, err
	}
	return &Database{info: info, state: st}, nil
}

// NewView returns a new, empty View onto this database: reads that
// find no override in the view's own history fall through to this
// database's initial state.
func (db *Database) NewView() *View {
	return newView(db)
}

// Info returns the database's type registry.
func (db *Database) Info() *metainfo.MetaInfo {
	return db.info
}

// State returns the database's immutable initial state.
func (db *Database) State() *state.State {
	return db.state
}
