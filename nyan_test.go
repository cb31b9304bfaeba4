package nyan

import (
	"fmt"
	"math"
	"testing"

	"github.com/openconfig/gnmi/errdiff"

	"github.com/sfttech/nyango/ast"
	"github.com/sfttech/nyango/ops"
	"github.com/sfttech/nyango/state"
	"github.com/sfttech/nyango/value"
)

func posInf() float64 { return math.Inf(1) }

func asInt(v value.Value) (int64, bool) {
	i, ok := v.(*value.Int)
	if !ok {
		return 0, false
	}
	return i.Val, true
}

// fakeFS stands in for a real lexer/parser during these tests: a single
// in-memory file keyed by its derived filename.
type fakeFS map[string]*ast.File

func (fs fakeFS) fetch(filename string) (string, error) {
	if _, ok := fs[filename]; !ok {
		return "", fmt.Errorf("no such file: %s", filename)
	}
	return filename, nil
}

func (fs fakeFS) parse(filename, content string) (*ast.File, error) {
	f, ok := fs[content]
	if !ok {
		return nil, fmt.Errorf("no parsed AST for %s", content)
	}
	f.Filename = filename
	return f, nil
}

func single(f *ast.File) fakeFS { return fakeFS{"root.nyan": f} }

func intType() ast.TypeExpr   { return ast.TypeExpr{Name: "int"} }
func floatType() ast.TypeExpr { return ast.TypeExpr{Name: "float"} }
func orderedSetOfInt() ast.TypeExpr {
	return ast.TypeExpr{Name: "orderedset", Elements: []ast.TypeExpr{intType()}}
}

func intVal(v int64) ast.ValueExpr   { return ast.ValueExpr{Kind: "int", IntVal: v} }
func floatVal(v float64) ast.ValueExpr {
	return ast.ValueExpr{Kind: "float", FloatVal: v}
}
func orderedSetVal(vs ...int64) ast.ValueExpr {
	elems := make([]ast.ValueExpr, len(vs))
	for i, v := range vs {
		elems[i] = intVal(v)
	}
	return ast.ValueExpr{Kind: "orderedset", Elements: elems}
}

func loadOrFatal(t *testing.T, fs fakeFS) *Database {
	t.Helper()
	db, err := LoadDatabase("root.nyan", fs.fetch, fs.parse)
	if err != nil {
		t.Fatalf("LoadDatabase: %v", err)
	}
	return db
}

// S1 -- single object, primitive member.
func TestS1SingleObjectPrimitiveMember(t *testing.T) {
	fs := single(&ast.File{
		Objects: []ast.ObjectDef{
			{Name: "A", Members: []ast.MemberDef{
				{Name: "x", Type: intType(), Op: ops.Assign, Value: intVal(3), HasValue: true},
			}},
		},
	})

	db := loadOrFatal(t, fs)
	view := db.NewView()

	a, err := view.GetObject("root.A")
	if err != nil {
		t.Fatalf("GetObject: %v", err)
	}
	got, err := a.GetInt("x", LatestT)
	if err != nil {
		t.Fatalf("GetInt: %v", err)
	}
	if got != 3 {
		t.Errorf("A.x = %d, want 3", got)
	}
}

// S2 -- inheritance with operator fold.
func TestS2InheritanceOperatorFold(t *testing.T) {
	fs := single(&ast.File{
		Objects: []ast.ObjectDef{
			{Name: "A", Members: []ast.MemberDef{
				{Name: "x", Type: intType(), Op: ops.Assign, Value: intVal(3), HasValue: true},
			}},
			{Name: "B", Parents: []string{"A"}, Members: []ast.MemberDef{
				{Name: "x", Op: ops.AddAssign, Value: intVal(2), HasValue: true},
			}},
			{Name: "C", Parents: []string{"B"}, Members: []ast.MemberDef{
				{Name: "x", Op: ops.MultiplyAssign, Value: intVal(4), HasValue: true},
			}},
		},
	})

	db := loadOrFatal(t, fs)
	view := db.NewView()

	tests := []struct {
		fqon string
		want int64
	}{
		{"root.A", 3},
		{"root.B", 5},
		{"root.C", 20},
	}
	for _, tt := range tests {
		obj, err := view.GetObject(tt.fqon)
		if err != nil {
			t.Fatalf("GetObject(%s): %v", tt.fqon, err)
		}
		got, err := obj.GetInt("x", LatestT)
		if err != nil {
			t.Fatalf("%s.GetInt(x): %v", tt.fqon, err)
		}
		if got != tt.want {
			t.Errorf("%s.x = %d, want %d", tt.fqon, got, tt.want)
		}
	}
}

// S3 -- C3 diamond.
func TestS3C3Diamond(t *testing.T) {
	fs := single(&ast.File{
		Objects: []ast.ObjectDef{
			{Name: "Top", Members: []ast.MemberDef{
				{Name: "v", Type: intType(), Op: ops.Assign, Value: intVal(1), HasValue: true},
			}},
			{Name: "Left", Parents: []string{"Top"}, Members: []ast.MemberDef{
				{Name: "v", Op: ops.AddAssign, Value: intVal(1), HasValue: true},
			}},
			{Name: "Right", Parents: []string{"Top"}, Members: []ast.MemberDef{
				{Name: "v", Op: ops.AddAssign, Value: intVal(10), HasValue: true},
			}},
			{Name: "Bottom", Parents: []string{"Left", "Right"}},
		},
	})

	db := loadOrFatal(t, fs)
	view := db.NewView()

	bottom, err := view.GetObject("root.Bottom")
	if err != nil {
		t.Fatalf("GetObject: %v", err)
	}

	lin, err := bottom.GetLinearized(LatestT)
	if err != nil {
		t.Fatalf("GetLinearized: %v", err)
	}
	want := []string{"root.Bottom", "root.Left", "root.Right", "root.Top"}
	if len(lin) != len(want) {
		t.Fatalf("linearization = %v, want %v", lin, want)
	}
	for i := range want {
		if lin[i] != want[i] {
			t.Errorf("linearization[%d] = %s, want %s", i, lin[i], want[i])
		}
	}

	got, err := bottom.GetInt("v", LatestT)
	if err != nil {
		t.Fatalf("GetInt: %v", err)
	}
	if got != 12 {
		t.Errorf("Bottom.v = %d, want 12", got)
	}
}

// S4 -- patch with assignment, read at two different times.
func TestS4PatchWithAssignment(t *testing.T) {
	fs := single(&ast.File{
		Objects: []ast.ObjectDef{
			{Name: "A", Members: []ast.MemberDef{
				{Name: "x", Type: intType(), Op: ops.Assign, Value: intVal(3), HasValue: true},
			}},
			{Name: "AP", Target: "A", IsPatch: true, Members: []ast.MemberDef{
				{Name: "x", Op: ops.Assign, Value: intVal(99), HasValue: true},
			}},
		},
	})

	db := loadOrFatal(t, fs)
	view := db.NewView()

	ap, err := view.GetObject("root.AP")
	if err != nil {
		t.Fatalf("GetObject(AP): %v", err)
	}

	tx := view.NewTransaction(1)
	ok, err := tx.Add(ap)
	if err != nil || !ok {
		t.Fatalf("Add: ok=%v err=%v", ok, err)
	}
	ok, err = tx.Commit()
	if err != nil || !ok {
		t.Fatalf("Commit: ok=%v err=%v", ok, err)
	}

	a, err := view.GetObject("root.A")
	if err != nil {
		t.Fatalf("GetObject(A): %v", err)
	}

	after, err := a.GetInt("x", 1)
	if err != nil {
		t.Fatalf("GetInt @1: %v", err)
	}
	if after != 99 {
		t.Errorf("A.x @ t=1 = %d, want 99", after)
	}

	before, err := a.GetInt("x", 0)
	if err != nil {
		t.Fatalf("GetInt @0: %v", err)
	}
	if before != 3 {
		t.Errorf("A.x @ t=0 = %d, want 3", before)
	}
}

// S5 -- patch that adds a parent.
func TestS5PatchAddsParent(t *testing.T) {
	fs := single(&ast.File{
		Objects: []ast.ObjectDef{
			{Name: "P", Members: []ast.MemberDef{
				{Name: "y", Type: intType(), Op: ops.Assign, Value: intVal(7), HasValue: true},
			}},
			{Name: "A", Members: []ast.MemberDef{
				{Name: "x", Type: intType(), Op: ops.Assign, Value: intVal(1), HasValue: true},
			}},
			{
				Name: "AP", Target: "A", IsPatch: true,
				InheritanceEdits: []ast.InheritanceEditExpr{{Type: ops.AddFront, Target: "P"}},
			},
		},
	})

	db := loadOrFatal(t, fs)
	view := db.NewView()

	ap, err := view.GetObject("root.AP")
	if err != nil {
		t.Fatalf("GetObject(AP): %v", err)
	}

	tx := view.NewTransaction(1)
	if ok, err := tx.Add(ap); err != nil || !ok {
		t.Fatalf("Add: ok=%v err=%v", ok, err)
	}
	if ok, err := tx.Commit(); err != nil || !ok {
		t.Fatalf("Commit: ok=%v err=%v", ok, err)
	}

	a, err := view.GetObject("root.A")
	if err != nil {
		t.Fatalf("GetObject(A): %v", err)
	}

	if !a.HasMember("y", 1) {
		t.Fatal("expected A to have member y after the patch")
	}
	y, err := a.GetInt("y", 1)
	if err != nil {
		t.Fatalf("GetInt(y): %v", err)
	}
	if y != 7 {
		t.Errorf("A.y = %d, want 7", y)
	}

	lin, err := a.GetLinearized(1)
	if err != nil {
		t.Fatalf("GetLinearized: %v", err)
	}
	found := false
	for _, fqon := range lin {
		if fqon == "root.P" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected root.P in A's post-patch linearization, got %v", lin)
	}
}

// S6 -- orderedset order preservation, no duplicates.
func TestS6OrderedSetOrderPreservation(t *testing.T) {
	fs := single(&ast.File{
		Objects: []ast.ObjectDef{
			{Name: "A", Members: []ast.MemberDef{
				{Name: "s", Type: orderedSetOfInt(), Op: ops.Assign, Value: orderedSetVal(1, 2, 3), HasValue: true},
			}},
			{Name: "B", Parents: []string{"A"}, Members: []ast.MemberDef{
				{Name: "s", Op: ops.AddAssign, Value: orderedSetVal(4, 2), HasValue: true},
			}},
		},
	})

	db := loadOrFatal(t, fs)
	view := db.NewView()

	b, err := view.GetObject("root.B")
	if err != nil {
		t.Fatalf("GetObject: %v", err)
	}
	elems, err := b.GetOrderedSet("s", LatestT)
	if err != nil {
		t.Fatalf("GetOrderedSet: %v", err)
	}

	want := []int64{1, 2, 3, 4}
	if len(elems) != len(want) {
		t.Fatalf("elems = %v, want length %d", elems, len(want))
	}
	for i, w := range want {
		iv, ok := asInt(elems[i])
		if !ok {
			t.Fatalf("elems[%d] is not an int value", i)
		}
		if iv != w {
			t.Errorf("elems[%d] = %d, want %d", i, iv, w)
		}
	}
}

// S7 -- infinity interaction: an aborting transaction leaves the view
// unchanged.
func TestS7InfinitySubtractionAbortsTransaction(t *testing.T) {
	fs := single(&ast.File{
		Objects: []ast.ObjectDef{
			{Name: "A", Members: []ast.MemberDef{
				{Name: "x", Type: floatType(), Op: ops.Assign, Value: floatVal(posInf()), HasValue: true},
			}},
			{Name: "AP", Target: "A", IsPatch: true, Members: []ast.MemberDef{
				{Name: "x", Op: ops.SubtractAssign, Value: floatVal(posInf()), HasValue: true},
			}},
		},
	})

	db := loadOrFatal(t, fs)
	view := db.NewView()

	ap, err := view.GetObject("root.AP")
	if err != nil {
		t.Fatalf("GetObject(AP): %v", err)
	}

	tx := view.NewTransaction(1)
	if ok, err := tx.Add(ap); err == nil && ok {
		// Add() may fold eagerly; either it or Commit() must fail.
		if ok, err := tx.Commit(); err == nil && ok {
			t.Fatal("expected the transaction to abort on undefined infinity arithmetic")
		}
	}

	a, err := view.GetObject("root.A")
	if err != nil {
		t.Fatalf("GetObject(A): %v", err)
	}
	got, err := a.GetFloat("x", LatestT)
	if err != nil {
		t.Fatalf("GetFloat: %v", err)
	}
	if got != posInf() {
		t.Errorf("A.x = %v, want +inf unchanged", got)
	}
}

// Invariant 7: removing the last notifier handle stops further callbacks.
func TestNotifierDeregisterStopsCallbacks(t *testing.T) {
	fs := single(&ast.File{
		Objects: []ast.ObjectDef{
			{Name: "A", Members: []ast.MemberDef{
				{Name: "x", Type: intType(), Op: ops.Assign, Value: intVal(1), HasValue: true},
			}},
			{Name: "AP", Target: "A", IsPatch: true, Members: []ast.MemberDef{
				{Name: "x", Op: ops.Assign, Value: intVal(2), HasValue: true},
			}},
		},
	})

	db := loadOrFatal(t, fs)
	view := db.NewView()

	a, err := view.GetObject("root.A")
	if err != nil {
		t.Fatalf("GetObject(A): %v", err)
	}
	ap, err := view.GetObject("root.AP")
	if err != nil {
		t.Fatalf("GetObject(AP): %v", err)
	}

	fired := 0
	handle, err := a.Subscribe(func(t OrderT, fqon Fqon, _ *state.ObjectState) {
		fired++
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	tx := view.NewTransaction(1)
	if ok, err := tx.Add(ap); err != nil || !ok {
		t.Fatalf("Add: ok=%v err=%v", ok, err)
	}
	if ok, err := tx.Commit(); err != nil || !ok {
		t.Fatalf("Commit: ok=%v err=%v", ok, err)
	}
	if fired != 1 {
		t.Fatalf("expected 1 notification, got %d", fired)
	}

	if err := view.DeregisterNotifier("root.A", handle); err != nil {
		t.Fatalf("DeregisterNotifier: %v", err)
	}

	tx2 := view.NewTransaction(2)
	if ok, err := tx2.Add(ap); err != nil || !ok {
		t.Fatalf("Add: ok=%v err=%v", ok, err)
	}
	if ok, err := tx2.Commit(); err != nil || !ok {
		t.Fatalf("Commit: ok=%v err=%v", ok, err)
	}
	if fired != 1 {
		t.Errorf("expected no further notifications after deregistering, fired = %d", fired)
	}
}

// Invariant 8: a child view agrees with its parent wherever it hasn't
// written anything itself.
func TestChildViewAgreesWithParentUntilItWrites(t *testing.T) {
	fs := single(&ast.File{
		Objects: []ast.ObjectDef{
			{Name: "A", Members: []ast.MemberDef{
				{Name: "x", Type: intType(), Op: ops.Assign, Value: intVal(1), HasValue: true},
			}},
		},
	})

	db := loadOrFatal(t, fs)
	parent := db.NewView()
	child := parent.NewChild()

	parentObj, _ := parent.GetObject("root.A")
	childObj, _ := child.GetObject("root.A")

	pv, err := parentObj.GetInt("x", LatestT)
	if err != nil {
		t.Fatalf("GetInt: %v", err)
	}
	cv, err := childObj.GetInt("x", LatestT)
	if err != nil {
		t.Fatalf("GetInt: %v", err)
	}
	if pv != cv {
		t.Errorf("child view disagrees with parent before any write: %d != %d", pv, cv)
	}
}

func TestLookupErrors(t *testing.T) {
	fs := single(&ast.File{
		Objects: []ast.ObjectDef{
			{Name: "A", Members: []ast.MemberDef{
				{Name: "x", Type: intType(), Op: ops.Assign, Value: intVal(3), HasValue: true},
			}},
		},
	})
	db := loadOrFatal(t, fs)
	view := db.NewView()

	tests := []struct {
		desc          string
		run           func() error
		wantErrSubstr string
	}{
		{
			desc: "unknown object",
			run: func() error {
				_, err := view.GetObject("root.DoesNotExist")
				return err
			},
			wantErrSubstr: "object not found",
		},
		{
			desc: "unknown member",
			run: func() error {
				a, err := view.GetObject("root.A")
				if err != nil {
					return err
				}
				_, err = a.GetInt("y", LatestT)
				return err
			},
			wantErrSubstr: "has no member",
		},
		{
			desc: "wrong-typed getter",
			run: func() error {
				a, err := view.GetObject("root.A")
				if err != nil {
					return err
				}
				_, err = a.GetText("x", LatestT)
				return err
			},
			wantErrSubstr: "tried to access as",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			err := tt.run()
			if diff := errdiff.Substring(err, tt.wantErrSubstr); diff != "" {
				t.Errorf("%s: %s", tt.desc, diff)
			}
		})
	}
}
