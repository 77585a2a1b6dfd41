package entity

import "sort"

// SectionValues maps field keys to their stored values.
type SectionValues map[string]Value

// TabValues maps section names to their stored values.
type TabValues map[string]SectionValues

// OptionsDocument is the persisted settings state of an installation,
// nested tab → section → key. It stays sparse: defaults are resolved at read
// time and never written into the document.
type OptionsDocument struct {
	// Version is the storage revision the document was loaded at (0 when new).
	Version int64

	values   map[Tab]TabValues
	readOnly bool
}

// NewOptionsDocument returns an empty document at version 0.
func NewOptionsDocument() *OptionsDocument {
	return &OptionsDocument{values: make(map[Tab]TabValues)}
}

// Lookup returns the explicitly stored value for a leaf.
func (d *OptionsDocument) Lookup(tab Tab, section, key string) (Value, bool) {
	if d == nil {
		return Value{}, false
	}
	v, ok := d.values[tab][section][key]
	return v, ok
}

// Set stores a leaf. Unset values remove the leaf instead.
func (d *OptionsDocument) Set(tab Tab, section, key string, v Value) {
	if !v.IsSet() {
		d.Delete(tab, section, key)
		return
	}
	if d.values == nil {
		d.values = make(map[Tab]TabValues)
	}
	sections, ok := d.values[tab]
	if !ok {
		sections = make(TabValues)
		d.values[tab] = sections
	}
	fields, ok := sections[section]
	if !ok {
		fields = make(SectionValues)
		sections[section] = fields
	}
	fields[key] = v
}

// Delete removes a leaf and prunes empty parents.
func (d *OptionsDocument) Delete(tab Tab, section, key string) {
	if d == nil || d.values == nil {
		return
	}
	fields := d.values[tab][section]
	if fields == nil {
		return
	}
	delete(fields, key)
	if len(fields) == 0 {
		delete(d.values[tab], section)
	}
	if len(d.values[tab]) == 0 {
		delete(d.values, tab)
	}
}

// Tab returns a copy of the values stored for one tab.
func (d *OptionsDocument) Tab(tab Tab) TabValues {
	out := make(TabValues)
	if d == nil {
		return out
	}
	for section, fields := range d.values[tab] {
		cp := make(SectionValues, len(fields))
		for k, v := range fields {
			cp[k] = v
		}
		out[section] = cp
	}
	return out
}

// Tabs returns the tabs that hold at least one leaf, sorted by name.
func (d *OptionsDocument) Tabs() []Tab {
	if d == nil {
		return nil
	}
	tabs := make([]Tab, 0, len(d.values))
	for t := range d.values {
		tabs = append(tabs, t)
	}
	sort.Slice(tabs, func(i, j int) bool { return tabs[i] < tabs[j] })
	return tabs
}

// Len returns the number of stored leaves.
func (d *OptionsDocument) Len() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, sections := range d.values {
		for _, fields := range sections {
			n += len(fields)
		}
	}
	return n
}

// MarkReadOnly flags a document that was loaded from storage it cannot
// represent. Saving it would discard the stored values.
func (d *OptionsDocument) MarkReadOnly() {
	d.readOnly = true
}

// ReadOnly reports whether the document must not be written back.
func (d *OptionsDocument) ReadOnly() bool {
	return d != nil && d.readOnly
}

// Clone returns a deep copy of the document.
func (d *OptionsDocument) Clone() *OptionsDocument {
	out := NewOptionsDocument()
	if d == nil {
		return out
	}
	out.Version = d.Version
	out.readOnly = d.readOnly
	for tab := range d.values {
		out.values[tab] = d.Tab(tab)
	}
	return out
}

// Merge overlays the leaves of a partial document onto d.
// Leaves absent from partial keep their current value.
// It reports whether any leaf changed.
func (d *OptionsDocument) Merge(partial *PartialDocument) bool {
	if partial == nil {
		return false
	}
	changed := false
	for section, fields := range partial.Values {
		for key, v := range fields {
			if current, ok := d.Lookup(partial.Tab, section, key); ok && current.Equal(v) {
				continue
			}
			d.Set(partial.Tab, section, key, v)
			changed = true
		}
	}
	return changed
}

// EqualValues reports whether both documents hold the same leaves,
// ignoring Version.
func (d *OptionsDocument) EqualValues(other *OptionsDocument) bool {
	if d.Len() != other.Len() {
		return false
	}
	for tab, sections := range d.values {
		for section, fields := range sections {
			for key, v := range fields {
				ov, ok := other.Lookup(tab, section, key)
				if !ok || !ov.Equal(v) {
					return false
				}
			}
		}
	}
	return true
}

// PartialDocument holds the sanitized values produced by validating one tab.
type PartialDocument struct {
	Tab    Tab
	Values TabValues
}

// NewPartialDocument returns an empty partial document for tab.
func NewPartialDocument(tab Tab) *PartialDocument {
	return &PartialDocument{Tab: tab, Values: make(TabValues)}
}

// Set records a sanitized value.
func (p *PartialDocument) Set(section, key string, v Value) {
	fields, ok := p.Values[section]
	if !ok {
		fields = make(SectionValues)
		p.Values[section] = fields
	}
	fields[key] = v
}

// Lookup returns a sanitized value, if present.
func (p *PartialDocument) Lookup(section, key string) (Value, bool) {
	v, ok := p.Values[section][key]
	return v, ok
}

// Len returns the number of sanitized values.
func (p *PartialDocument) Len() int {
	n := 0
	for _, fields := range p.Values {
		n += len(fields)
	}
	return n
}
