package rack

import "slices"

// DeviceType is a reusable catalog entry that placed devices reference by slug.
// Only Slug, Height and IsFullDepth matter for placement; the rest is
// descriptive metadata.
type DeviceType struct {
	Slug         string  `json:"slug" yaml:"slug" toml:"slug" validate:"required,max=128"`
	Height       float64 `json:"u_height" yaml:"u_height" toml:"u_height" validate:"gt=0,lte=100"`
	IsFullDepth  *bool   `json:"is_full_depth,omitempty" yaml:"is_full_depth,omitempty" toml:"is_full_depth,omitempty"`
	Manufacturer string  `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty" toml:"manufacturer,omitempty"`
	Model        string  `json:"model,omitempty" yaml:"model,omitempty" toml:"model,omitempty"`
	Category     string  `json:"category,omitempty" yaml:"category,omitempty" toml:"category,omitempty"`
	Colour       string  `json:"colour,omitempty" yaml:"colour,omitempty" toml:"colour,omitempty" validate:"omitempty,hexcolor"`
	Notes        string  `json:"notes,omitempty" yaml:"notes,omitempty" toml:"notes,omitempty"`
}

// FullDepth reports whether the type spans the whole rack depth. Types that
// do not say default to full depth.
func (t DeviceType) FullDepth() bool {
	return t.IsFullDepth == nil || *t.IsFullDepth
}

// Span returns the number of whole slots the type occupies.
func (t DeviceType) Span() int { return SlotSpan(t.Height) }

// DisplayName returns "Manufacturer Model" when known, otherwise the slug.
func (t DeviceType) DisplayName() string {
	switch {
	case t.Manufacturer != "" && t.Model != "":
		return t.Manufacturer + " " + t.Model
	case t.Model != "":
		return t.Model
	default:
		return t.Slug
	}
}

// Bool returns a pointer to b, for literal IsFullDepth values.
func Bool(b bool) *bool { return &b }

// TypeLookup resolves device types by slug. A miss is reported with ok=false
// and is never an error.
type TypeLookup interface {
	DeviceType(slug string) (DeviceType, bool)
}

// Catalog is a slug-keyed collection of device types that remembers insertion
// order. It implements [TypeLookup].
//
// The zero value is an empty catalog ready to use.
type Catalog struct {
	types map[string]DeviceType
	order []string
}

// NewCatalog creates a catalog holding types. Later duplicates replace
// earlier entries in place.
func NewCatalog(types ...DeviceType) *Catalog {
	c := &Catalog{}
	for _, t := range types {
		c.Put(t)
	}
	return c
}

// DeviceType implements [TypeLookup].
func (c *Catalog) DeviceType(slug string) (DeviceType, bool) {
	if c == nil || c.types == nil {
		return DeviceType{}, false
	}
	t, ok := c.types[slug]
	return t, ok
}

// Has reports whether a type with the given slug exists.
func (c *Catalog) Has(slug string) bool {
	_, ok := c.DeviceType(slug)
	return ok
}

// Index returns the position of slug in the order, or -1.
func (c *Catalog) Index(slug string) int {
	if c == nil {
		return -1
	}
	return slices.Index(c.order, slug)
}

// Put inserts or replaces a type. New slugs are appended to the order.
func (c *Catalog) Put(t DeviceType) {
	if c.types == nil {
		c.types = make(map[string]DeviceType)
	}
	if _, exists := c.types[t.Slug]; !exists {
		c.order = append(c.order, t.Slug)
	}
	c.types[t.Slug] = t
}

// Insert places a new type at position i in the order, clamped to the
// valid range. It replaces an existing entry in place instead.
func (c *Catalog) Insert(i int, t DeviceType) {
	if c.Has(t.Slug) {
		c.Put(t)
		return
	}
	if c.types == nil {
		c.types = make(map[string]DeviceType)
	}
	i = max(0, min(i, len(c.order)))
	c.order = slices.Insert(c.order, i, t.Slug)
	c.types[t.Slug] = t
}

// Delete removes a type and returns its former position, or -1 when the slug
// was not present.
func (c *Catalog) Delete(slug string) int {
	if !c.Has(slug) {
		return -1
	}
	delete(c.types, slug)
	i := slices.Index(c.order, slug)
	c.order = slices.Delete(c.order, i, i+1)
	return i
}

// Types returns all types in insertion order.
func (c *Catalog) Types() []DeviceType {
	if c == nil {
		return nil
	}
	out := make([]DeviceType, 0, len(c.order))
	for _, slug := range c.order {
		out = append(out, c.types[slug])
	}
	return out
}

// Len returns the number of types.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Clone returns an independent copy of the catalog.
func (c *Catalog) Clone() *Catalog {
	return NewCatalog(c.Types()...)
}

var _ TypeLookup = (*Catalog)(nil)
