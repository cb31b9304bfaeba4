package loader

import "github.com/sfttech/nyango/internal/xerrors"

// joinErrs reports every accumulated failure at once, the way a loader
// pass that walks many independent objects should: one unresolved name
// shouldn't hide the next.
func joinErrs(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return xerrors.List(errs)
}
