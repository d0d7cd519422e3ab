package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	rackio "github.com/tangramor/Rackula-sub001/pkg/io"
	"github.com/tangramor/Rackula-sub001/pkg/layout"
	"github.com/tangramor/Rackula-sub001/pkg/rack"
)

func TestRootCommandTree(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{
		"init", "show", "check", "slots", "place", "drop", "move", "nudge",
		"remove", "rename", "resize", "configure", "clear", "reset", "load",
		"undo", "redo", "history", "type", "export", "edit", "journal", "completion",
	}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Errorf("command %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("file") == nil {
		t.Error("missing --file flag")
	}
}

// testEnv isolates config and journal storage in a temp dir and returns the
// layout path commands will use.
func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("RACKULA_CONFIG", filepath.Join(dir, "config.toml"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	return filepath.Join(dir, "lab.yaml")
}

func runCLI(t *testing.T, path string, args ...string) error {
	t.Helper()
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--file", path}, args...))
	return root.ExecuteContext(context.Background())
}

func mustRun(t *testing.T, path string, args ...string) {
	t.Helper()
	if err := runCLI(t, path, args...); err != nil {
		t.Fatalf("rackula %s: %v", strings.Join(args, " "), err)
	}
}

func loadLayout(t *testing.T, path string) *layout.Layout {
	t.Helper()
	l, err := rackio.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return l
}

func TestEditCycle(t *testing.T) {
	path := testEnv(t)

	mustRun(t, path, "init", "--height", "12", "--name", "Core")
	mustRun(t, path, "type", "add", "server-2u", "--height", "2")
	mustRun(t, path, "place", "server-2u", "U3", "--name", "web-1")

	l := loadLayout(t, path)
	if l.Rack().Height != 12 || l.Rack().Name != "Core" {
		t.Fatalf("rack = %s %dU, want Core 12U", l.Rack().Name, l.Rack().Height)
	}
	devices := l.Rack().Devices
	if len(devices) != 1 || devices[0].Position != 3 || devices[0].Name != "web-1" {
		t.Fatalf("devices = %+v, want web-1 at slot 3", devices)
	}

	if err := runCLI(t, path, "place", "server-2u", "U4"); err == nil {
		t.Fatal("overlapping place succeeded")
	}
	if n := len(loadLayout(t, path).Rack().Devices); n != 1 {
		t.Fatalf("rejected place changed the file: %d devices", n)
	}

	mustRun(t, path, "undo")
	if n := len(loadLayout(t, path).Rack().Devices); n != 0 {
		t.Fatalf("after undo: %d devices, want 0", n)
	}
	if !loadLayout(t, path).Catalog().Has("server-2u") {
		t.Fatal("undo of place removed the device type")
	}

	mustRun(t, path, "redo")
	devices = loadLayout(t, path).Rack().Devices
	if len(devices) != 1 || devices[0].Position != 3 {
		t.Fatalf("after redo: %+v, want one device at slot 3", devices)
	}

	mustRun(t, path, "nudge", "web-1", "2")
	if got := loadLayout(t, path).Rack().Devices[0].Position; got != 5 {
		t.Errorf("after nudge: slot %d, want 5", got)
	}
	mustRun(t, path, "history")
	mustRun(t, path, "check")
}

func TestUndoNothing(t *testing.T) {
	path := testEnv(t)
	mustRun(t, path, "init")
	mustRun(t, path, "undo")
	if n := len(loadLayout(t, path).Rack().Devices); n != 0 {
		t.Fatalf("%d devices, want 0", n)
	}
}

func TestExternalEditDropsHistory(t *testing.T) {
	path := testEnv(t)
	mustRun(t, path, "init")
	mustRun(t, path, "type", "add", "patch", "--half-depth")
	mustRun(t, path, "place", "patch", "1")

	// Rewrite the file behind the CLI's back.
	l := loadLayout(t, path)
	if _, err := l.Place("patch", 10, "rear", "manual"); err != nil {
		t.Fatal(err)
	}
	if err := rackio.Save(l, path); err != nil {
		t.Fatal(err)
	}

	mustRun(t, path, "undo")
	if n := len(loadLayout(t, path).Rack().Devices); n != 2 {
		t.Errorf("undo applied a stale journal: %d devices, want 2", n)
	}
}

func TestInitRefusesOverwrite(t *testing.T) {
	path := testEnv(t)
	mustRun(t, path, "init")
	if err := runCLI(t, path, "init"); err == nil {
		t.Fatal("second init succeeded without --force")
	}
	mustRun(t, path, "init", "--force")
}

func TestOpenMissingLayout(t *testing.T) {
	path := testEnv(t)
	err := runCLI(t, path, "show")
	if err == nil || !strings.Contains(err.Error(), "init") {
		t.Fatalf("err = %v, want hint to run init", err)
	}
}

func TestExportInventory(t *testing.T) {
	path := testEnv(t)
	mustRun(t, path, "init")
	mustRun(t, path, "type", "add", "switch", "--manufacturer", "Acme")
	mustRun(t, path, "place", "switch", "U40")

	out := filepath.Join(filepath.Dir(path), "inventory.csv")
	mustRun(t, path, "export", out)

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Acme") || !strings.Contains(string(data), "U40") {
		t.Errorf("inventory missing device:\n%s", data)
	}
}

func TestCompletion(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	var sb strings.Builder
	root.SetOut(&sb)
	root.SetArgs([]string{"completion", "bash"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sb.String(), "rackula") {
		t.Error("bash completion does not mention rackula")
	}
}

func TestParseUnit(t *testing.T) {
	asc := rack.New("r", "asc", 12)
	desc := rack.New("r", "desc", 12)
	desc.DescUnits = true

	tests := []struct {
		name    string
		r       *rack.Rack
		in      string
		want    int
		wantErr bool
	}{
		{"prefixed", &asc, "U3", 3, false},
		{"bare", &asc, "12", 12, false},
		{"lowercase", &asc, "u1", 1, false},
		{"descending", &desc, "U1", 12, false},
		{"zero", &asc, "U0", 0, true},
		{"past top", &asc, "13", 0, true},
		{"max int", &asc, "9223372036854775807", 0, true},
		{"min int", &desc, "-9223372036854775808", 0, true},
		{"garbage", &asc, "top", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseUnit(tt.r, tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseUnit(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseUnit(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestPlaceHugeUnitRejected(t *testing.T) {
	path := testEnv(t)
	mustRun(t, path, "init")
	mustRun(t, path, "type", "add", "server-2u", "--height", "2")
	if err := runCLI(t, path, "place", "server-2u", "9223372036854775807"); err == nil {
		t.Fatal("place at max int succeeded")
	}
	if n := len(loadLayout(t, path).Rack().Devices); n != 0 {
		t.Fatalf("%d devices, want 0", n)
	}
}
