// Package xerrors collects small helpers for accumulating independent
// failures into one reported batch, the way a loader pass that walks many
// objects wants to report every unresolved name instead of stopping at the
// first one.
package xerrors

// List is a slice of error that is itself an error, joining its elements
// with ", " when formatted.
type List []error

// Error implements the error interface.
func (e List) Error() string {
	return ToString([]error(e))
}

// String implements fmt.Stringer.
func (e List) String() string {
	return e.Error()
}

// New returns a List with a single element err, or nil if err is nil.
func New(err error) List {
	if err == nil {
		return nil
	}
	return List{err}
}

// Append appends err to errs if it is not nil and returns the result.
func Append(errs []error, err error) List {
	if err == nil {
		return errs
	}
	return append(errs, err)
}

// AppendList appends every non-nil error in more to errs and returns the
// result.
func AppendList(errs []error, more []error) List {
	if len(more) == 0 {
		return errs
	}
	for _, e := range more {
		errs = Append(errs, e)
	}
	return errs
}

// ToString renders a slice of errors as a single comma-joined string,
// skipping nil entries.
func ToString(errs []error) string {
	var out string
	first := true
	for _, e := range errs {
		if e == nil {
			continue
		}
		if !first {
			out += ", "
		}
		first = false
		out += e.Error()
	}
	return out
}
