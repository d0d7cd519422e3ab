package layout

import (
	"github.com/tangramor/Rackula-sub001/pkg/errors"
	"github.com/tangramor/Rackula-sub001/pkg/rack"
)

// DocumentVersion is written to every document produced by this package.
const DocumentVersion = "1"

// Document is the serializable snapshot of a layout.
type Document struct {
	Version     string            `json:"version" yaml:"version"`
	Name        string            `json:"name" yaml:"name"`
	Rack        rack.Rack         `json:"rack" yaml:"rack"`
	DeviceTypes []rack.DeviceType `json:"device_types" yaml:"device_types"`
}

// Document returns a deep copy of the layout's state.
func (l *Layout) Document() Document {
	types := l.types.Types()
	if types == nil {
		types = []rack.DeviceType{}
	}
	return Document{
		Version:     DocumentVersion,
		Name:        l.name,
		Rack:        l.rack.Clone(),
		DeviceTypes: types,
	}
}

// FromDocument rebuilds a layout from a snapshot.
//
// Rack settings and device type entries must be valid. Placement conflicts
// in the rack are not rejected, since hand-edited files routinely have them;
// inspect them with [Layout.Conflicts]. Devices with unknown types are kept.
// Devices with a missing or repeated ID are given a new one.
func FromDocument(doc Document, opts ...Option) (*Layout, error) {
	if doc.Version != "" && doc.Version != DocumentVersion {
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported document version %q", doc.Version)
	}
	l := newLayout(doc.Name, opts)

	for _, t := range doc.DeviceTypes {
		cmd, err := l.PlanAddDeviceType(t)
		if err != nil {
			return nil, err
		}
		cmd.Execute()
	}

	r := doc.Rack.Clone()
	if r.ID == "" {
		r.ID = l.newID()
	}
	if r.Name == "" {
		r.Name = l.defaults.Name
	}
	if r.Width == 0 {
		r.Width = l.defaults.Width
	}
	if r.StartingUnit == 0 {
		r.StartingUnit = rack.DefaultStartingUnit
	}
	if r.Height < 1 || r.Height > rack.MaxHeight {
		return nil, errors.New(errors.ErrCodeInvalidHeight, "rack height must be between 1 and %d, got %d", rack.MaxHeight, r.Height)
	}
	if err := r.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid rack")
	}
	// Missing and repeated instance IDs get fresh ones; the first holder of
	// an ID keeps it.
	seen := make(map[string]bool, len(r.Devices))
	for i := range r.Devices {
		for r.Devices[i].ID == "" || seen[r.Devices[i].ID] {
			r.Devices[i].ID = l.newID()
		}
		seen[r.Devices[i].ID] = true
	}
	l.rack = r
	return l, nil
}
