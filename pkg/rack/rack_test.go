package rack

import (
	"slices"
	"testing"
)

func TestParseFace(t *testing.T) {
	tests := []struct {
		in      string
		want    Face
		wantErr bool
	}{
		{"front", FaceFront, false},
		{"REAR", FaceRear, false},
		{" both ", FaceBoth, false},
		{"side", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFace(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFace(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFaceOpposite(t *testing.T) {
	if FaceFront.Opposite() != FaceRear || FaceRear.Opposite() != FaceFront || FaceBoth.Opposite() != FaceBoth {
		t.Error("Opposite() returned an unexpected face")
	}
}

func TestUnitLabel(t *testing.T) {
	tests := []struct {
		name  string
		rack  Rack
		slot  int
		label int
	}{
		{"ascending bottom", Rack{Height: 42, StartingUnit: 1}, 1, 1},
		{"ascending top", Rack{Height: 42, StartingUnit: 1}, 42, 42},
		{"descending bottom", Rack{Height: 42, StartingUnit: 1, DescUnits: true}, 1, 42},
		{"descending top", Rack{Height: 42, StartingUnit: 1, DescUnits: true}, 42, 1},
		{"offset start", Rack{Height: 10, StartingUnit: 5}, 1, 5},
		{"offset descending", Rack{Height: 10, StartingUnit: 5, DescUnits: true}, 10, 5},
		{"zero start defaults", Rack{Height: 10}, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rack.UnitLabel(tt.slot); got != tt.label {
				t.Errorf("UnitLabel(%d) = %d, want %d", tt.slot, got, tt.label)
			}
			if got := tt.rack.SlotForLabel(tt.label); got != tt.slot {
				t.Errorf("SlotForLabel(%d) = %d, want %d", tt.label, got, tt.slot)
			}
		})
	}
}

func TestRackValidate(t *testing.T) {
	ok := New("r", "", 42)
	if err := ok.Validate(); err != nil {
		t.Fatalf("default rack invalid: %v", err)
	}
	if ok.Name != DefaultName {
		t.Errorf("Name = %q, want %q", ok.Name, DefaultName)
	}

	bad := []Rack{
		{Height: 0, Width: Width19},
		{Height: MaxHeight + 1, Width: Width19},
		{Height: 10, Width: 17},
		{Height: 10, Width: Width19, StartingUnit: -1},
	}
	for _, r := range bad {
		if err := r.Validate(); err == nil {
			t.Errorf("Validate(%+v) = nil, want error", r)
		}
	}
}

func TestRackCloneIsIndependent(t *testing.T) {
	r := New("r", "Lab", 12)
	r.Devices = append(r.Devices, PlacedDevice{ID: "a", DeviceType: "server-2u", Position: 1, Face: FaceFront})

	c := r.Clone()
	c.Devices[0].Position = 5
	c.Devices = append(c.Devices, PlacedDevice{ID: "b"})

	if r.Devices[0].Position != 1 || len(r.Devices) != 1 {
		t.Errorf("original mutated through clone: %+v", r.Devices)
	}
	if d, ok := c.Device("b"); !ok || d.ID != "b" {
		t.Error("clone lookup failed")
	}
	if r.IndexOf("b") != -1 {
		t.Error("IndexOf found a device that only exists in the clone")
	}
}

func TestPlacedDeviceLabel(t *testing.T) {
	if got := (PlacedDevice{DeviceType: "server-2u"}).Label(); got != "server-2u" {
		t.Errorf("Label() = %q", got)
	}
	if got := (PlacedDevice{DeviceType: "server-2u", Name: "db01"}).Label(); got != "db01" {
		t.Errorf("Label() = %q", got)
	}
}

func TestDeviceType(t *testing.T) {
	dt := DeviceType{Slug: "x", Height: 1.5}
	if !dt.FullDepth() {
		t.Error("unset IsFullDepth should default to full depth")
	}
	if dt.Span() != 2 {
		t.Errorf("Span() = %d, want 2", dt.Span())
	}
	if dt.DisplayName() != "x" {
		t.Errorf("DisplayName() = %q", dt.DisplayName())
	}
	dt.Manufacturer, dt.Model = "Dell", "R640"
	if dt.DisplayName() != "Dell R640" {
		t.Errorf("DisplayName() = %q", dt.DisplayName())
	}
	dt.IsFullDepth = Bool(false)
	if dt.FullDepth() {
		t.Error("explicit half depth ignored")
	}
}

func slugs(c *Catalog) []string {
	var out []string
	for _, t := range c.Types() {
		out = append(out, t.Slug)
	}
	return out
}

func TestCatalog(t *testing.T) {
	c := NewCatalog(
		DeviceType{Slug: "a", Height: 1},
		DeviceType{Slug: "b", Height: 2},
		DeviceType{Slug: "c", Height: 3},
	)

	if c.Len() != 3 || !slices.Equal(slugs(c), []string{"a", "b", "c"}) {
		t.Fatalf("unexpected catalog order %v", slugs(c))
	}

	c.Put(DeviceType{Slug: "b", Height: 4})
	if dt, _ := c.DeviceType("b"); dt.Height != 4 {
		t.Errorf("Put did not replace b: %+v", dt)
	}
	if !slices.Equal(slugs(c), []string{"a", "b", "c"}) {
		t.Errorf("Put replacement changed order: %v", slugs(c))
	}

	if c.Index("c") != 2 || c.Index("nope") != -1 {
		t.Errorf("Index() mismatch: c=%d nope=%d", c.Index("c"), c.Index("nope"))
	}
	if i := c.Delete("b"); i != 1 {
		t.Errorf("Delete(b) = %d, want 1", i)
	}
	if c.Delete("b") != -1 {
		t.Error("second Delete should report -1")
	}
	c.Insert(1, DeviceType{Slug: "b", Height: 2})
	if !slices.Equal(slugs(c), []string{"a", "b", "c"}) {
		t.Errorf("Insert did not restore order: %v", slugs(c))
	}
	c.Insert(99, DeviceType{Slug: "z", Height: 1})
	if !slices.Equal(slugs(c), []string{"a", "b", "c", "z"}) {
		t.Errorf("Insert past end: %v", slugs(c))
	}

	clone := c.Clone()
	clone.Delete("a")
	if !c.Has("a") {
		t.Error("clone shares storage with original")
	}
}

func TestCatalogZeroValue(t *testing.T) {
	var c Catalog
	if c.Has("x") || c.Len() != 0 {
		t.Error("zero catalog should be empty")
	}
	c.Put(DeviceType{Slug: "x", Height: 1})
	if !c.Has("x") {
		t.Error("zero catalog not usable")
	}

	var nilCat *Catalog
	if _, ok := nilCat.DeviceType("x"); ok {
		t.Error("nil catalog lookup should miss")
	}
}
