package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tangramor/Rackula-sub001/pkg/errors"
	"github.com/tangramor/Rackula-sub001/pkg/rack"
)

const tomlLibrary = `
[[device_types]]
slug = "dell-r650"
u_height = 1.0
manufacturer = "Dell"
model = "PowerEdge R650"
colour = "#1e90ff"

[[device_types]]
slug = "patch-24"
u_height = 1.0
is_full_depth = false
category = "patch-panel"
`

const yamlLibrary = `
device_types:
  - slug: apc-ups-3u
    u_height: 3
  - slug: blank-half
    u_height: 0.5
    is_full_depth: false
`

const jsonLibrary = `{"device_types": [{"slug": "dell-r650", "u_height": 2, "model": "R650 (tall)"}]}`

func TestRead(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		format Format
		slugs  []string
	}{
		{"toml", tomlLibrary, TOML, []string{"dell-r650", "patch-24"}},
		{"yaml", yamlLibrary, YAML, []string{"apc-ups-3u", "blank-half"}},
		{"json", jsonLibrary, JSON, []string{"dell-r650"}},
		{"empty yaml", "", YAML, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			types, err := Read(strings.NewReader(tt.src), tt.format)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			var got []string
			for _, dt := range types {
				got = append(got, dt.Slug)
			}
			if !reflect.DeepEqual(got, tt.slugs) {
				t.Errorf("slugs = %v, want %v", got, tt.slugs)
			}
		})
	}
}

func TestReadFullDepth(t *testing.T) {
	types, err := Read(strings.NewReader(tomlLibrary), TOML)
	if err != nil {
		t.Fatal(err)
	}
	if !types[0].FullDepth() || types[1].FullDepth() {
		t.Errorf("full depth flags = %v, %v", types[0].FullDepth(), types[1].FullDepth())
	}
	if types[0].DisplayName() != "Dell PowerEdge R650" {
		t.Errorf("DisplayName() = %q", types[0].DisplayName())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		types []rack.DeviceType
		want  errors.Code
	}{
		{"ok", []rack.DeviceType{{Slug: "a", Height: 1}}, ""},
		{"zero height", []rack.DeviceType{{Slug: "a", Height: 0}}, errors.ErrCodeInvalidHeight},
		{"too tall", []rack.DeviceType{{Slug: "a", Height: 101}}, errors.ErrCodeInvalidHeight},
		{"missing slug", []rack.DeviceType{{Height: 1}}, errors.ErrCodeInvalidDeviceType},
		{"bad slug", []rack.DeviceType{{Slug: "Not Valid", Height: 1}}, errors.ErrCodeInvalidDeviceType},
		{"bad colour", []rack.DeviceType{{Slug: "a", Height: 1, Colour: "blue"}}, errors.ErrCodeInvalidDeviceType},
		{"duplicate", []rack.DeviceType{{Slug: "a", Height: 1}, {Slug: "a", Height: 2}}, errors.ErrCodeDuplicate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.types)
			if got := errors.GetCode(err); got != tt.want {
				t.Errorf("Validate() code = %q, want %q (%v)", got, tt.want, err)
			}
		})
	}
}

func TestValidateNamesField(t *testing.T) {
	err := Validate([]rack.DeviceType{{Slug: "a", Height: 1}, {Slug: "b", Height: -2}})
	if msg := errors.UserMessage(err); !strings.Contains(msg, "device_types[1].Height") {
		t.Errorf("UserMessage() = %q, want field path", msg)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"10-base.toml": tomlLibrary,
		"20-ups.yaml":  yamlLibrary,
		"30-over.json": jsonLibrary,
		"README.md":    "ignored",
	}
	for name, src := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.toml"), 0o755); err != nil {
		t.Fatal(err)
	}

	types, err := LoadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var slugs []string
	for _, dt := range types {
		slugs = append(slugs, dt.Slug)
	}
	if want := []string{"dell-r650", "patch-24", "apc-ups-3u", "blank-half"}; !reflect.DeepEqual(slugs, want) {
		t.Errorf("slugs = %v, want %v", slugs, want)
	}
	if types[0].Height != 2 {
		t.Errorf("later file did not override dell-r650: %+v", types[0])
	}

	merged, err := LoadPaths(filepath.Join(dir, "20-ups.yaml"), dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(merged) != 4 || merged[0].Slug != "apc-ups-3u" {
		t.Errorf("LoadPaths order = %+v", merged)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[[device_types]]\nslug = \"x\"\nu_height = 0.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want errors.Code
	}{
		{"missing", filepath.Join(dir, "none.toml"), errors.ErrCodeFileNotFound},
		{"extension", filepath.Join(dir, "lib.csv"), errors.ErrCodeInvalidFormat},
		{"invalid entry", bad, errors.ErrCodeInvalidHeight},
		{"malformed", broken, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if got := errors.GetCode(err); got != tt.want {
				t.Errorf("Load() code = %q, want %q (%v)", got, tt.want, err)
			}
		})
	}

	if _, err := LoadDir(filepath.Join(dir, "nope")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("LoadDir(missing) err = %v", err)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	types, err := Read(strings.NewReader(tomlLibrary), TOML)
	if err != nil {
		t.Fatal(err)
	}
	for _, format := range []Format{TOML, YAML, JSON} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, types, format); err != nil {
				t.Fatal(err)
			}
			back, err := Read(&buf, format)
			if err != nil {
				t.Fatalf("Read: %v\n%s", err, buf.String())
			}
			if !reflect.DeepEqual(types, back) {
				t.Errorf("round trip mismatch:\n got  %+v\n want %+v", back, types)
			}
		})
	}
}
