// Package catalog loads device-type libraries from files.
//
// A library file lists device types under a device_types key and may be
// written in TOML, YAML or JSON:
//
//	[[device_types]]
//	slug = "dell-r650"
//	u_height = 1
//	manufacturer = "Dell"
//	model = "PowerEdge R650"
//
//	[[device_types]]
//	slug = "patch-24"
//	u_height = 1
//	is_full_depth = false
//
// Every entry is checked with go-playground/validator struct tags on
// [rack.DeviceType] plus the slug rules from the errors package. A file with
// any invalid entry is rejected as a whole.
package catalog

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/tangramor/Rackula-sub001/pkg/errors"
	"github.com/tangramor/Rackula-sub001/pkg/rack"
)

// Format is a library file encoding.
type Format string

// Supported formats.
const (
	TOML Format = "toml"
	YAML Format = "yaml"
	JSON Format = "json"
)

// Extensions lists the file extensions LoadDir picks up.
var Extensions = []string{".toml", ".yaml", ".yml", ".json"}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported catalog file %q (want one of %s)", path, strings.Join(Extensions, ", "))
	}
}

// library is the on-disk shape of a catalog file.
type library struct {
	DeviceTypes []rack.DeviceType `json:"device_types" yaml:"device_types" toml:"device_types" validate:"dive"`
}

var validate = validator.New()

// Read decodes and validates the device types in r.
func Read(r io.Reader, format Format) ([]rack.DeviceType, error) {
	var lib library
	var err error
	switch format {
	case TOML:
		_, err = toml.NewDecoder(r).Decode(&lib)
	case YAML:
		err = yaml.NewDecoder(r).Decode(&lib)
	case JSON:
		err = json.NewDecoder(r).Decode(&lib)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", format)
	}
	if err := Validate(lib.DeviceTypes); err != nil {
		return nil, err
	}
	return lib.DeviceTypes, nil
}

// Validate checks every entry and rejects duplicate slugs.
func Validate(types []rack.DeviceType) error {
	if err := validate.Struct(library{DeviceTypes: types}); err != nil {
		return describe(err)
	}
	seen := make(map[string]bool, len(types))
	for i, t := range types {
		if err := errors.ValidateSlug(t.Slug); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDeviceType, err, "device_types[%d]", i)
		}
		if seen[t.Slug] {
			return errors.New(errors.ErrCodeDuplicate, "device_types[%d]: slug %q appears twice", i, t.Slug)
		}
		seen[t.Slug] = true
	}
	return nil
}

// describe turns validator output into a coded error naming the first
// offending field.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid device type")
	}
	fe := verrs[0]
	field := strings.TrimPrefix(fe.Namespace(), "library.DeviceTypes")
	code := errors.ErrCodeInvalidDeviceType
	if fe.Field() == "Height" {
		code = errors.ErrCodeInvalidHeight
	}
	msg := fmt.Sprintf("device_types%s fails %q", field, fe.Tag())
	if fe.Param() != "" {
		msg += " " + fe.Param()
	}
	return errors.New(code, "%s (got %v)", msg, fe.Value())
}

// Load reads the library file at path.
func Load(path string) ([]rack.DeviceType, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "catalog %s does not exist", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()

	types, err := Read(f, format)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "load %s", path)
	}
	return types, nil
}

// LoadDir reads every library file directly inside dir in lexical order and
// merges them; a slug defined in a later file replaces the earlier entry.
func LoadDir(dir string) ([]rack.DeviceType, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "catalog directory %s does not exist", dir)
		}
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	var files [][]rack.DeviceType
	for _, e := range entries {
		if e.IsDir() || !slices.Contains(Extensions, strings.ToLower(filepath.Ext(e.Name()))) {
			continue
		}
		types, err := Load(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		files = append(files, types)
	}
	return Merge(files...), nil
}

// LoadPaths loads each path, which may be a file or a directory, and merges
// the results in order.
func LoadPaths(paths ...string) ([]rack.DeviceType, error) {
	var all [][]rack.DeviceType
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "catalog path %s", p)
		}
		load := Load
		if info.IsDir() {
			load = LoadDir
		}
		types, err := load(p)
		if err != nil {
			return nil, err
		}
		all = append(all, types)
	}
	return Merge(all...), nil
}

// Merge combines libraries. Order follows first appearance; a later entry
// with the same slug replaces the earlier one in place.
func Merge(libs ...[]rack.DeviceType) []rack.DeviceType {
	c := rack.NewCatalog()
	for _, lib := range libs {
		for _, t := range lib {
			c.Put(t)
		}
	}
	return c.Types()
}

// Write encodes types as a library file.
func Write(w io.Writer, types []rack.DeviceType, format Format) error {
	lib := library{DeviceTypes: types}
	var err error
	switch format {
	case TOML:
		err = toml.NewEncoder(w).Encode(lib)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(lib); err == nil {
			err = enc.Close()
		}
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(lib)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
