// Package schema declares the settings fields and groups them into sections
// and tabs.
package schema

import (
	"fmt"
	"sync"

	"github.com/bnema/cookiemsg/internal/domain/entity"
	"github.com/bnema/cookiemsg/internal/domain/validation"
)

// Registry holds every declared section and field. It is built once at
// startup and read concurrently afterwards.
type Registry struct {
	mu       sync.RWMutex
	access   map[entity.Tab]entity.Capability
	tabOrder []entity.Tab
	sections map[string]*entity.Section
	byTab    map[entity.Tab][]string
	// positions names the stops of some sliders, keyed by field path.
	positions map[string]map[int64]string
}

// New creates an empty registry. Tabs must be declared with AddTab before
// sections can be registered under them.
func New() *Registry {
	return &Registry{
		access:   make(map[entity.Tab]entity.Capability),
		sections:  make(map[string]*entity.Section),
		byTab:     make(map[entity.Tab][]string),
		positions: make(map[string]map[int64]string),
	}
}

// AddTab declares a tab and the capability required to see it.
func (r *Registry) AddTab(tab entity.Tab, requires entity.Capability) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := entity.ParseTab(string(tab)); err != nil || tab == "" {
		return &entity.SchemaError{Section: string(tab), Reason: "unknown tab"}
	}
	if _, exists := r.access[tab]; exists {
		return &entity.SchemaError{Section: string(tab), Reason: "tab already declared"}
	}
	r.access[tab] = requires
	r.tabOrder = append(r.tabOrder, tab)
	return nil
}

// Register adds an empty section to tab.
func (r *Registry) Register(tab entity.Tab, section string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if section == "" {
		return &entity.SchemaError{Section: section, Reason: "section name cannot be empty"}
	}
	if _, ok := r.access[tab]; !ok {
		return &entity.SchemaError{Section: section, Reason: fmt.Sprintf("tab %q not declared", tab)}
	}
	if existing, ok := r.sections[section]; ok {
		return &entity.SchemaError{
			Section: section,
			Reason:  fmt.Sprintf("already registered under tab %q", existing.Tab),
		}
	}

	r.sections[section] = &entity.Section{Name: section, Tab: tab}
	r.byTab[tab] = append(r.byTab[tab], section)
	return nil
}

// Define declares a field in an already registered section.
// The default, when set, must satisfy the field's own kind.
func (r *Registry) Define(section, key string, kind entity.Kind, def entity.Value) (entity.Field, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sec, ok := r.sections[section]
	if !ok {
		return entity.Field{}, &entity.SchemaError{Section: section, Key: key, Reason: "section not registered"}
	}
	if key == "" {
		return entity.Field{}, &entity.SchemaError{Section: section, Reason: "field key cannot be empty"}
	}
	for _, f := range sec.Fields {
		if f.Key == key {
			return entity.Field{}, &entity.DuplicateFieldError{Section: section, Key: key}
		}
	}
	if kind.Type == entity.KindSlider && kind.Min > kind.Max {
		return entity.Field{}, &entity.SchemaError{Section: section, Key: key, Reason: "slider min exceeds max"}
	}
	if def.IsSet() {
		sanitized, err := validation.SanitizeValue(kind, def)
		if err != nil {
			return entity.Field{}, &entity.SchemaError{Section: section, Key: key, Reason: "invalid default: " + err.Error()}
		}
		if !sanitized.Equal(def) {
			return entity.Field{}, &entity.SchemaError{Section: section, Key: key, Reason: "default is not in canonical form"}
		}
	}

	field := entity.Field{Key: key, Section: section, Kind: kind, Default: def}
	sec.Fields = append(sec.Fields, field)
	return field, nil
}

// MustDefine is Define for built-in catalogs; it panics on schema errors.
func (r *Registry) MustDefine(section, key string, kind entity.Kind, def entity.Value) entity.Field {
	f, err := r.Define(section, key, kind, def)
	if err != nil {
		panic(err)
	}
	return f
}

// NamePositions attaches labels to the stops of a slider field. Every label
// must sit within the slider bounds.
func (r *Registry) NamePositions(section, key string, labels map[int64]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sec, ok := r.sections[section]
	if !ok {
		return &entity.SchemaError{Section: section, Key: key, Reason: "section not registered"}
	}
	var field *entity.Field
	for i := range sec.Fields {
		if sec.Fields[i].Key == key {
			field = &sec.Fields[i]
			break
		}
	}
	if field == nil {
		return &entity.SchemaError{Section: section, Key: key, Reason: "field not defined"}
	}
	if field.Kind.Type != entity.KindSlider {
		return &entity.SchemaError{Section: section, Key: key, Reason: "only slider positions can be named"}
	}

	named := make(map[int64]string, len(labels))
	for pos, label := range labels {
		if pos < field.Kind.Min || pos > field.Kind.Max {
			return &entity.SchemaError{Section: section, Key: key, Reason: fmt.Sprintf("position %d is outside the slider bounds", pos)}
		}
		named[pos] = label
	}
	r.positions[field.Path()] = named
	return nil
}

// Positions returns a copy of the labels of a slider field, or nil when its
// positions are not named.
func (r *Registry) Positions(section, key string) map[int64]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	named, ok := r.positions[section+"."+key]
	if !ok {
		return nil
	}
	out := make(map[int64]string, len(named))
	for pos, label := range named {
		out[pos] = label
	}
	return out
}

// Tabs returns the declared tabs, in declaration order, with their required capability.
func (r *Registry) Tabs() []entity.TabAccess {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.TabAccess, 0, len(r.tabOrder))
	for _, t := range r.tabOrder {
		out = append(out, entity.TabAccess{Tab: t, Requires: r.access[t]})
	}
	return out
}

// VisibleTabs returns the tabs caps is allowed to see.
func (r *Registry) VisibleTabs(caps entity.CapabilitySet) []entity.Tab {
	var out []entity.Tab
	for _, a := range r.Tabs() {
		if a.Allows(caps) {
			out = append(out, a.Tab)
		}
	}
	return out
}

// Authorize returns ErrUnknownTab for undeclared tabs and ErrTabForbidden
// when caps lacks the tab's capability.
func (r *Registry) Authorize(tab entity.Tab, caps entity.CapabilitySet) error {
	r.mu.RLock()
	requires, ok := r.access[tab]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %q", entity.ErrUnknownTab, tab)
	}
	if !caps.Has(requires) {
		return fmt.Errorf("%w: %q requires %s", entity.ErrTabForbidden, tab, requires)
	}
	return nil
}

// HasTab reports whether tab is declared.
func (r *Registry) HasTab(tab entity.Tab) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.access[tab]
	return ok
}

// Sections returns copies of the sections of tab in registration order.
func (r *Registry) Sections(tab entity.Tab) []entity.Section {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := r.byTab[tab]
	out := make([]entity.Section, 0, len(names))
	for _, name := range names {
		sec := r.sections[name]
		fields := make([]entity.Field, len(sec.Fields))
		copy(fields, sec.Fields)
		out = append(out, entity.Section{Name: sec.Name, Tab: sec.Tab, Fields: fields})
	}
	return out
}

// FieldsFor flattens the fields of every section of tab, keeping section
// order and field order within each section.
func (r *Registry) FieldsFor(tab entity.Tab) []entity.Field {
	var out []entity.Field
	for _, sec := range r.Sections(tab) {
		out = append(out, sec.Fields...)
	}
	return out
}

// Lookup finds the field stored at tab/section/key.
func (r *Registry) Lookup(tab entity.Tab, section, key string) (entity.Field, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sec, ok := r.sections[section]
	if !ok || sec.Tab != tab {
		return entity.Field{}, false
	}
	for _, f := range sec.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return entity.Field{}, false
}

// TabOf returns the tab a section belongs to.
func (r *Registry) TabOf(section string) (entity.Tab, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sec, ok := r.sections[section]
	if !ok {
		return "", false
	}
	return sec.Tab, true
}
