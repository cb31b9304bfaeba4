// Package c3 implements the C3 multiple-inheritance linearization
// algorithm used to order an object's ancestors into a single, consistent
// resolution list.
package c3

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Fqon is a fully-qualified object name, e.g. "engine.util.Container".
type Fqon = string

// Error reports a failure of the linearization algorithm: an inheritance
// cycle or an inconsistent (non-monotonic) parent order.
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

// Parents returns the direct parent list of the named object, in
// declaration order (front of the list first).
type Parents func(name Fqon) ([]Fqon, error)

// Linearize computes the C3 linearization of name's ancestor chain,
// fetching each object's direct parents through getParents.
//
//	c3(cls) = [cls] + merge(c3(p0), c3(p1), ..., [p0, p1, ...])
//
// merge repeatedly picks the first head of any sublist that doesn't also
// occur in the tail of any other sublist, appends it to the result, and
// removes it from every sublist where it was the head. If every
// remaining head occurs in some other tail, no consistent order exists.
func Linearize(name Fqon, getParents Parents) ([]Fqon, error) {
	seen := make(map[Fqon]struct{})
	return linearizeRecurse(name, getParents, seen)
}

func linearizeRecurse(name Fqon, getParents Parents, seen map[Fqon]struct{}) ([]Fqon, error) {
	if _, ok := seen[name]; ok {
		names := maps.Keys(seen)
		slices.Sort(names)
		return nil, &Error{fmt.Sprintf(
			"recursive inheritance loop detected: %q already in {%s}",
			name, strings.Join(names, ", "))}
	}
	seen[name] = struct{}{}

	parents, err := getParents(name)
	if err != nil {
		return nil, err
	}

	linearization := []Fqon{name}

	parLinearizations := make([][]Fqon, 0, len(parents)+1)
	for _, parent := range parents {
		parLin, err := linearizeRecurse(parent, getParents, seen)
		if err != nil {
			return nil, err
		}
		parLinearizations = append(parLinearizations, parLin)
	}
	parLinearizations = append(parLinearizations, append([]Fqon(nil), parents...))

	delete(seen, name)

	heads := make([]int, len(parLinearizations))

	for {
		var candidate Fqon
		candidateOK := false
		available := len(parLinearizations)

		for i, parLin := range parLinearizations {
			headpos := heads[i]
			if headpos >= len(parLin) {
				available--
				continue
			}

			candidate = parLin[headpos]
			candidateOK = true

			for j, tail := range parLinearizations {
				if j == i {
					continue
				}
				headposTry := heads[j]
				for k := headposTry + 1; k < len(tail); k++ {
					if candidate == tail[k] {
						candidateOK = false
						break
					}
				}
				if !candidateOK {
					break
				}
			}

			if candidateOK {
				break
			}
		}

		if candidateOK {
			linearization = append(linearization, candidate)

			for i, parLin := range parLinearizations {
				headpos := heads[i]
				if headpos < len(parLin) && parLin[headpos] == candidate {
					heads[i]++
				}
			}
		}

		if available == 0 {
			return linearization, nil
		}

		if !candidateOK {
			return nil, &Error{fmt.Sprintf(
				"can't find consistent C3 resolution order for %s for bases %s",
				name, strings.Join(parents, ", "))}
		}
	}
}
