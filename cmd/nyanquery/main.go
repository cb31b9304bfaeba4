// Binary nyanquery is a demonstration application which builds a small
// object hierarchy in memory, applies a patch transaction to it, and
// prints the resulting member values and a diff of the affected state.
package main

import (
	"github.com/sfttech/nyango/cmd/nyanquery/cmd"
)

func main() {
	cmd.Execute()
}
