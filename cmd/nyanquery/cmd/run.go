package cmd

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/kylelemons/godebug/pretty"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sfttech/nyango"
	"github.com/sfttech/nyango/ast"
	"github.com/sfttech/nyango/ops"
)

func newRunCmd() *cobra.Command {
	run := &cobra.Command{
		Use:   "run",
		Short: "Load a demo hierarchy, apply a patch, and print before/after state.",
		RunE:  runDemo,
	}

	run.Flags().String("object", "root.Car", "fully-qualified object to inspect.")
	run.Flags().String("member", "top_speed", "member of --object to read before and after the patch.")
	run.Flags().String("patch", "root.RacingKit", "fully-qualified patch object to apply.")
	run.Flags().Int64("patch-at", 1, "ordinal to commit the patch at.")

	return run
}

// demoFS is a minimal stand-in for a real nyan lexer/parser: since parsing
// nyan source text is out of scope here, the demo hierarchy is built
// directly as an ast.File and "fetched"/"parsed" by just handing it back.
type demoFS map[string]*ast.File

func (fs demoFS) fetch(filename string) (string, error) {
	if _, ok := fs[filename]; !ok {
		return "", fmt.Errorf("no such file: %s", filename)
	}
	return filename, nil
}

func (fs demoFS) parse(filename, content string) (*ast.File, error) {
	f, ok := fs[content]
	if !ok {
		return nil, fmt.Errorf("no parsed ast for %s", content)
	}
	f.Filename = filename
	return f, nil
}

func intType() ast.TypeExpr { return ast.TypeExpr{Name: "int"} }

func intVal(v int64) ast.ValueExpr { return ast.ValueExpr{Kind: "int", IntVal: v} }

// buildDemoHierarchy constructs a tiny Vehicle/Car hierarchy and a
// RacingKit patch that bumps Car's top speed, the same role
// CreateDemoDeviceInstance plays for the struct-based teacher demo.
func buildDemoHierarchy() demoFS {
	return demoFS{
		"root.nyan": &ast.File{
			Objects: []ast.ObjectDef{
				{
					Name: "Vehicle",
					Members: []ast.MemberDef{
						{Name: "top_speed", Type: intType(), Op: ops.Assign, Value: intVal(10), HasValue: true},
					},
				},
				{
					Name:    "Car",
					Parents: []string{"Vehicle"},
					Members: []ast.MemberDef{
						{Name: "top_speed", Op: ops.AddAssign, Value: intVal(20), HasValue: true},
					},
				},
				{
					Name:    "RacingKit",
					Target:  "Car",
					IsPatch: true,
					Members: []ast.MemberDef{
						{Name: "top_speed", Op: ops.Assign, Value: intVal(300), HasValue: true},
					},
				},
			},
		},
	}
}

func runDemo(cmd *cobra.Command, args []string) error {
	objName := viper.GetString("object")
	memberName := viper.GetString("member")
	patchName := viper.GetString("patch")
	patchAt := nyan.OrderT(viper.GetInt64("patch-at"))

	fs := buildDemoHierarchy()

	db, err := nyan.LoadDatabase("root.nyan", fs.fetch, fs.parse)
	if err != nil {
		return fmt.Errorf("load database: %w", err)
	}

	view := db.NewView()

	obj, err := view.GetObject(nyan.Fqon(objName))
	if err != nil {
		return fmt.Errorf("get %s: %w", objName, err)
	}

	before, err := obj.GetInt(nyan.MemberID(memberName), nyan.LatestT)
	if err != nil {
		return fmt.Errorf("get %s.%s before patch: %w", objName, memberName, err)
	}
	fmt.Printf("%s.%s before patch: %d\n", objName, memberName, before)

	beforeRaw, err := view.GetRaw(nyan.Fqon(objName), nyan.LatestT)
	if err != nil {
		return fmt.Errorf("get raw %s state before patch: %w", objName, err)
	}
	beforeLin, err := obj.GetLinearized(nyan.LatestT)
	if err != nil {
		return fmt.Errorf("get linearization before patch: %w", err)
	}

	patch, err := view.GetObject(nyan.Fqon(patchName))
	if err != nil {
		return fmt.Errorf("get %s: %w", patchName, err)
	}

	tx := view.NewTransaction(patchAt)
	if ok, err := tx.Add(patch); err != nil || !ok {
		return fmt.Errorf("add patch: ok=%v err=%w", ok, err)
	}
	if ok, err := tx.Commit(); err != nil || !ok {
		return fmt.Errorf("commit: ok=%v err=%w", ok, err)
	}

	after, err := obj.GetInt(nyan.MemberID(memberName), patchAt)
	if err != nil {
		return fmt.Errorf("get %s.%s after patch: %w", objName, memberName, err)
	}
	fmt.Printf("%s.%s at t=%d after patch: %d\n", objName, memberName, patchAt, after)

	stillOld, err := obj.GetInt(nyan.MemberID(memberName), 0)
	if err != nil {
		return fmt.Errorf("get %s.%s at t=0: %w", objName, memberName, err)
	}
	fmt.Printf("%s.%s at t=0 (unaffected): %d\n", objName, memberName, stillOld)

	afterRaw, err := view.GetRaw(nyan.Fqon(objName), patchAt)
	if err != nil {
		return fmt.Errorf("get raw %s state after patch: %w", objName, err)
	}
	afterLin, err := obj.GetLinearized(patchAt)
	if err != nil {
		return fmt.Errorf("get linearization after patch: %w", err)
	}

	fmt.Printf("\n%s state before patch:\n", objName)
	fmt.Println(pretty.Sprint(beforeRaw))
	fmt.Printf("%s state after patch:\n", objName)
	fmt.Println(pretty.Sprint(afterRaw))

	if diff := cmp.Diff(beforeLin, afterLin); diff != "" {
		fmt.Printf("\nlinearization change (-before +after):\n%s\n", diff)
	} else {
		fmt.Println("\nlinearization unchanged by this patch")
	}

	unified := difflib.UnifiedDiff{
		A:        difflib.SplitLines(beforeRaw.String()),
		B:        difflib.SplitLines(afterRaw.String()),
		FromFile: fmt.Sprintf("%s@t=0", objName),
		ToFile:   fmt.Sprintf("%s@t=%d", objName, patchAt),
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(unified)
	if err != nil {
		return fmt.Errorf("render diff: %w", err)
	}
	fmt.Printf("\n%s", text)

	return nil
}
