package loader

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/sfttech/nyango/ast"
	"github.com/sfttech/nyango/nyanerr"
	"github.com/sfttech/nyango/ops"
)

// files maps a namespace-derived filename to its ast.File, letting tests
// stand in for a real parser.
type fakeFS map[string]*ast.File

func (fs fakeFS) fetch(filename string) (string, error) {
	if _, ok := fs[filename]; !ok {
		return "", fmt.Errorf("no such file: %s", filename)
	}
	return filename, nil // the "content" is just the filename; parse looks it back up.
}

func (fs fakeFS) parse(filename, content string) (*ast.File, error) {
	f, ok := fs[content]
	if !ok {
		return nil, fmt.Errorf("no parsed AST for %s", content)
	}
	f.Filename = filename
	return f, nil
}

func intType(name string) ast.TypeExpr { return ast.TypeExpr{Name: name} }

func intVal(v int64) ast.ValueExpr { return ast.ValueExpr{Kind: "int", IntVal: v} }

func TestLoadSimpleHierarchy(t *testing.T) {
	fs := fakeFS{
		"root.nyan": &ast.File{
			Objects: []ast.ObjectDef{
				{
					Name: "Unit",
					Members: []ast.MemberDef{
						{Name: "hp", Type: intType("int"), Op: ops.Assign, Value: intVal(10), HasValue: true},
					},
				},
				{
					Name:    "Soldier",
					Parents: []string{"Unit"},
					Members: []ast.MemberDef{
						{Name: "hp", Op: ops.AddAssign, Value: intVal(5), HasValue: true},
					},
				},
			},
		},
	}

	meta, st, err := Load("root.nyan", fs.fetch, fs.parse)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	soldier, ok := meta.Get("root.Soldier")
	if !ok {
		t.Fatal("expected root.Soldier to be registered")
	}
	if len(soldier.InitialLinearization) != 2 || soldier.InitialLinearization[0] != "root.Soldier" {
		t.Errorf("unexpected linearization: %v", soldier.InitialLinearization)
	}

	soldierState := st.Get("root.Soldier")
	if soldierState == nil {
		t.Fatal("expected a root.Soldier object state")
	}
	hp := soldierState.Member("hp")
	if hp == nil {
		t.Fatal("expected hp member")
	}
	if hp.Operation != ops.AddAssign {
		t.Errorf("Operation = %v, want AddAssign", hp.Operation)
	}

	unitState := st.Get("root.Unit")
	if unitState.Member("hp") == nil {
		t.Fatal("expected root.Unit to carry its own hp member")
	}
}

func TestLoadRejectsUnresolvedParent(t *testing.T) {
	fs := fakeFS{
		"root.nyan": &ast.File{
			Objects: []ast.ObjectDef{
				{Name: "Orphan", Parents: []string{"DoesNotExist"}},
			},
		},
	}

	_, _, err := Load("root.nyan", fs.fetch, fs.parse)
	if err == nil {
		t.Fatal("expected an error resolving an unknown parent")
	}
}

func TestLoadResolvesPatchMemberType(t *testing.T) {
	fs := fakeFS{
		"root.nyan": &ast.File{
			Objects: []ast.ObjectDef{
				{
					Name: "Unit",
					Members: []ast.MemberDef{
						{Name: "hp", Type: intType("int"), Op: ops.Assign, Value: intVal(10), HasValue: true},
					},
				},
				{
					Name:    "BuffUnit",
					Target:  "Unit",
					IsPatch: true,
					Members: []ast.MemberDef{
						// no explicit type: must resolve from the patch target
						{Name: "hp", Op: ops.AddAssign, Value: intVal(3), HasValue: true},
					},
				},
			},
		},
	}

	meta, st, err := Load("root.nyan", fs.fetch, fs.parse)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	info, ok := meta.Get("root.BuffUnit")
	if !ok {
		t.Fatal("expected root.BuffUnit to be registered")
	}
	hpInfo, ok := info.Member("hp")
	if !ok {
		t.Fatal("expected hp member info on root.BuffUnit")
	}
	if hpInfo.Type.Basic.String() != "int" {
		t.Errorf("resolved type = %v, want int", hpInfo.Type.Basic)
	}

	buffState := st.Get("root.BuffUnit")
	if buffState.Member("hp") == nil {
		t.Fatal("expected root.BuffUnit to carry its own hp patch member")
	}
}

func TestLoadAcceptsImportResolvingToObjects(t *testing.T) {
	fs := fakeFS{
		"root.nyan": &ast.File{
			Imports: []ast.Import{{Namespace: "engine"}},
			Objects: []ast.ObjectDef{
				{
					Name:    "Soldier",
					Parents: []string{"engine.Unit"},
				},
			},
		},
		"engine.nyan": &ast.File{
			Objects: []ast.ObjectDef{{Name: "Unit"}},
		},
	}

	_, _, err := Load("root.nyan", fs.fetch, fs.parse)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestLoadRejectsImportResolvingToNothing(t *testing.T) {
	fs := fakeFS{
		"root.nyan": &ast.File{
			Imports: []ast.Import{
				{Namespace: "empty", Loc: ast.Location{Filename: "root.nyan", Line: 1, Column: 1}},
			},
		},
		"empty.nyan": &ast.File{},
	}

	_, _, err := Load("root.nyan", fs.fetch, fs.parse)
	if err == nil {
		t.Fatal("expected an error for an import resolving to no objects")
	}
}

func TestLoadReportsFileReadErrorAtImportingLocation(t *testing.T) {
	fs := fakeFS{
		"root.nyan": &ast.File{
			Imports: []ast.Import{
				{Namespace: "missing", Loc: ast.Location{Filename: "root.nyan", Line: 2, Column: 1}},
			},
		},
	}

	_, _, err := Load("root.nyan", fs.fetch, fs.parse)
	if err == nil {
		t.Fatal("expected an error for an import that can't be fetched")
	}

	var fre *nyanerr.FileReadError
	if !errors.As(err, &fre) {
		t.Fatalf("expected a *nyanerr.FileReadError, got %T: %v", err, err)
	}
	if fre.Location.Filename != "root.nyan" || fre.Location.Line != 2 {
		t.Errorf("FileReadError.Location = %+v, want it pinned to root.nyan:2, the import statement that requested it", fre.Location)
	}
	if !strings.Contains(fre.Filename, "missing") {
		t.Errorf("FileReadError.Filename = %q, want it to name the unfetchable namespace", fre.Filename)
	}
}

func TestLoadRejectsRelativeOpWithoutAssign(t *testing.T) {
	fs := fakeFS{
		"root.nyan": &ast.File{
			Objects: []ast.ObjectDef{
				{
					Name: "Unit",
					Members: []ast.MemberDef{
						// a bare type declaration with no value: an
						// ancestor must assign it before a child can add.
						{Name: "hp", Type: intType("int")},
					},
				},
				{
					Name:    "Soldier",
					Parents: []string{"Unit"},
					Members: []ast.MemberDef{
						{Name: "hp", Op: ops.AddAssign, Value: intVal(5), HasValue: true},
					},
				},
			},
		},
	}

	_, _, err := Load("root.nyan", fs.fetch, fs.parse)
	if err == nil {
		t.Fatal("expected an error: relative operator with no ancestor assignment")
	}
}
