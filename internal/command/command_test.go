package command

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/dshills/caide/internal/app"
	"github.com/dshills/caide/internal/feature"
	"github.com/dshills/caide/internal/transport"
)

func initWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := Init(app.Silent, dir); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return dir
}

func TestInitCreatesSettings(t *testing.T) {
	dir := initWorkspace(t)
	if _, err := os.Stat(filepath.Join(dir, app.SettingsFile)); err != nil {
		t.Fatalf("settings file missing: %v", err)
	}
	if err := Init(app.Silent, dir); err == nil {
		t.Fatal("re-init of an existing workspace should fail")
	}
}

func TestAddProblem(t *testing.T) {
	dir := initWorkspace(t)
	reg := feature.NewRegistry()

	id, err := AddProblem(app.Silent, dir, "A. Theatre Square", "", reg)
	if err != nil {
		t.Fatalf("AddProblem: %v", err)
	}
	if id != "A_Theatre_Square" {
		t.Fatalf("id = %q, want A_Theatre_Square", id)
	}
	if _, err := os.Stat(filepath.Join(dir, id, ProblemConfFile)); err != nil {
		t.Fatalf("problem config missing: %v", err)
	}

	active, err := ActiveProblem(app.Silent, dir)
	if err != nil {
		t.Fatalf("ActiveProblem: %v", err)
	}
	if active != id {
		t.Fatalf("active = %q, want %q", active, id)
	}

	if _, err := AddProblem(app.Silent, dir, "A. Theatre Square", "", reg); err == nil {
		t.Fatal("duplicate problem should fail")
	}
}

func TestAddProblemTypes(t *testing.T) {
	tests := []struct {
		name     string
		typeSpec string
		wantErr  bool
	}{
		{"default stream", "", false},
		{"explicit stream", "file,in.txt,out.txt", false},
		{"topcoder", "topcoder,Sum,result:int,a:vint,b:vint", false},
		{"garbage", "quantum", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := initWorkspace(t)
			_, err := AddProblem(app.Silent, dir, tt.name, tt.typeSpec, feature.NewRegistry())
			if (err != nil) != tt.wantErr {
				t.Fatalf("AddProblem err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestReadProblemRoundTrip(t *testing.T) {
	dir := initWorkspace(t)
	id, err := AddProblem(app.Silent, dir, "Two Sum", "topcoder,Solver,s:int,xs:vint", feature.NewRegistry())
	if err != nil {
		t.Fatalf("AddProblem: %v", err)
	}
	p, err := ReadProblem(app.Silent, dir, id)
	if err != nil {
		t.Fatalf("ReadProblem: %v", err)
	}
	if p.Name != "Two Sum" || p.ID != id {
		t.Fatalf("unexpected problem %+v", p)
	}
	if got := p.Type.Encode(); got != "topcoder,Solver,s:int,xs:vint" {
		t.Fatalf("type = %q", got)
	}
	if p.FloatTolerance != 1e-6 {
		t.Fatalf("tolerance = %v", p.FloatTolerance)
	}
}

func TestCheckout(t *testing.T) {
	dir := initWorkspace(t)
	reg := feature.NewRegistry()
	first, err := AddProblem(app.Silent, dir, "first", "", reg)
	if err != nil {
		t.Fatalf("AddProblem: %v", err)
	}
	if _, err := AddProblem(app.Silent, dir, "second", "", reg); err != nil {
		t.Fatalf("AddProblem: %v", err)
	}

	if err := Checkout(app.Silent, dir, first, reg); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	active, err := ActiveProblem(app.Silent, dir)
	if err != nil {
		t.Fatalf("ActiveProblem: %v", err)
	}
	if active != first {
		t.Fatalf("active = %q, want %q", active, first)
	}

	if err := Checkout(app.Silent, dir, "missing", reg); err == nil {
		t.Fatal("checkout of a missing problem should fail")
	}
}

func TestList(t *testing.T) {
	dir := initWorkspace(t)
	reg := feature.NewRegistry()
	for _, name := range []string{"beta", "alpha"} {
		if _, err := AddProblem(app.Silent, dir, name, "", reg); err != nil {
			t.Fatalf("AddProblem %s: %v", name, err)
		}
	}
	// A directory without a problem config is not a problem.
	if err := os.Mkdir(filepath.Join(dir, "scratch"), 0o755); err != nil {
		t.Fatal(err)
	}

	ids, err := List(app.Silent, dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ids) != 2 || ids[0] != "alpha" || ids[1] != "beta" {
		t.Fatalf("ids = %v", ids)
	}
}

func TestArchive(t *testing.T) {
	dir := initWorkspace(t)
	reg := feature.NewRegistry()
	id, err := AddProblem(app.Silent, dir, "done", "", reg)
	if err != nil {
		t.Fatalf("AddProblem: %v", err)
	}

	if err := Archive(app.Silent, dir, id); err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ArchiveDir, id, ProblemConfFile)); err != nil {
		t.Fatalf("archived config missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, id)); !os.IsNotExist(err) {
		t.Fatalf("problem directory still present: %v", err)
	}

	active, err := ActiveProblem(app.Silent, dir)
	if err != nil {
		t.Fatalf("ActiveProblem: %v", err)
	}
	if active != "" {
		t.Fatalf("active = %q, want empty", active)
	}

	if err := Archive(app.Silent, dir, "missing"); err == nil {
		t.Fatal("archiving a missing problem should fail")
	}
}

func TestProperties(t *testing.T) {
	dir := initWorkspace(t)

	if err := SetProperty(app.Silent, dir, "", "core", "language", "go"); err != nil {
		t.Fatalf("SetProperty settings: %v", err)
	}
	got, err := GetProperty(app.Silent, dir, "", "core", "language")
	if err != nil {
		t.Fatalf("GetProperty settings: %v", err)
	}
	if got != "go" {
		t.Fatalf("language = %q", got)
	}

	// A new file is created on first write and interpolates caideRoot.
	if err := SetProperty(app.Silent, dir, "extra.ini", "paths", "tests", "%(caideRoot)s/tests"); err != nil {
		t.Fatalf("SetProperty file: %v", err)
	}
	got, err = GetProperty(app.Silent, dir, "extra.ini", "paths", "tests")
	if err != nil {
		t.Fatalf("GetProperty file: %v", err)
	}
	if got != filepath.ToSlash(dir)+"/tests" && got != dir+"/tests" {
		t.Fatalf("tests = %q", got)
	}
}

func TestAddProblemWithTestDirFeature(t *testing.T) {
	dir := initWorkspace(t)
	if err := SetProperty(app.Silent, dir, "", "core", "features", "testdir"); err != nil {
		t.Fatalf("SetProperty: %v", err)
	}
	id, err := AddProblem(app.Silent, dir, "hooked", "", feature.BuiltinRegistry())
	if err != nil {
		t.Fatalf("AddProblem: %v", err)
	}
	testDir := filepath.Join(dir, id, ".caideproblem", "test")
	if fi, err := os.Stat(testDir); err != nil || !fi.IsDir() {
		t.Fatalf("test directory missing: %v", err)
	}
}

func TestDispatch(t *testing.T) {
	dir := t.TempDir()
	handle := Dispatch(app.Silent, feature.NewRegistry())

	call := func(t *testing.T, action, args string) (string, error) {
		t.Helper()
		return handle(transport.Request{
			ID:     "1",
			Root:   dir,
			Action: action,
			Args:   gjson.Parse(args),
		})
	}

	if _, err := call(t, "init", "{}"); err != nil {
		t.Fatalf("init: %v", err)
	}
	data, err := call(t, "problem", `{"name":"B. Div","type":""}`)
	if err != nil {
		t.Fatalf("problem: %v", err)
	}
	id := gjson.Get(data, "id").String()
	if id != "B_Div" {
		t.Fatalf("id = %q", id)
	}

	data, err = call(t, "list", "{}")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := gjson.Parse(data).Array(); len(got) != 1 || got[0].String() != id {
		t.Fatalf("list = %s", data)
	}

	data, err = call(t, "active", "{}")
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if gjson.Get(data, "id").String() != id {
		t.Fatalf("active = %s", data)
	}

	data, err = call(t, "read", `{"id":"B_Div"}`)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if gjson.Get(data, "name").String() != "B. Div" {
		t.Fatalf("read = %s", data)
	}

	if _, err := call(t, "archive", `{"id":"B_Div"}`); err != nil {
		t.Fatalf("archive: %v", err)
	}
	if _, err := call(t, "checkout", `{"id":"B_Div"}`); err == nil {
		t.Fatal("checkout of archived problem should fail")
	}
	if _, err := call(t, "explode", "{}"); err == nil {
		t.Fatal("unknown action should fail")
	}
	if _, err := call(t, "problem", "{}"); err == nil {
		t.Fatal("problem without a name should fail")
	}
}
