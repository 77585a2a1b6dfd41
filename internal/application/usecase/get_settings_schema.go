package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/bnema/cookiemsg/internal/domain/entity"
	"github.com/bnema/cookiemsg/internal/domain/schema"
)

const (
	settingsSchemaID    = "https://github.com/bnema/cookiemsg/options.schema.json"
	storedColorPattern  = `^(#[0-9A-Fa-f]{6})?$`
	storedFontPattern   = `^[A-Za-z0-9 ,\-]*$`
	storedClassPattern  = `^(-?[_a-zA-Z][_a-zA-Z0-9-]*( -?[_a-zA-Z][_a-zA-Z0-9-]*)*)?$`
	maxStoredFontLength = 200
)

// FieldInfo describes one declared field for front-ends and the CLI.
type FieldInfo struct {
	Path      string     `json:"path"`
	Tab       entity.Tab `json:"tab"`
	Section   string     `json:"section"`
	Key       string     `json:"key"`
	Kind      string     `json:"kind"`
	Min       *int64     `json:"min,omitempty"`
	Max       *int64     `json:"max,omitempty"`
	MaxLength int        `json:"max_length,omitempty"`
	Default   any        `json:"default,omitempty"`
	Required  bool       `json:"required"`
	// Positions names the stops of sliders such as the cookie life time.
	Positions map[int64]string `json:"positions,omitempty"`
}

// DescribePositions lists named slider stops in ascending order, for example
// "0 session, 1 week".
func DescribePositions(positions map[int64]string) string {
	parts := make([]string, 0, len(positions))
	for _, pos := range slices.Sorted(maps.Keys(positions)) {
		parts = append(parts, fmt.Sprintf("%d %s", pos, positions[pos]))
	}
	return strings.Join(parts, ", ")
}

// GetSettingsSchemaUseCase exports the registered field catalog.
type GetSettingsSchemaUseCase struct {
	registry *schema.Registry
}

// NewGetSettingsSchemaUseCase creates a new GetSettingsSchemaUseCase.
func NewGetSettingsSchemaUseCase(registry *schema.Registry) *GetSettingsSchemaUseCase {
	return &GetSettingsSchemaUseCase{registry: registry}
}

// GetSettingsSchemaInput filters the exported fields.
type GetSettingsSchemaInput struct {
	// Tab restricts the output to one tab when set.
	Tab entity.Tab
}

// GetSettingsSchemaOutput contains the field list and the JSON schema of the
// stored options document.
type GetSettingsSchemaOutput struct {
	Fields []FieldInfo         `json:"fields"`
	Schema *jsonschema.Schema `json:"schema"`
}

// Execute lists the fields in registration order.
func (uc *GetSettingsSchemaUseCase) Execute(_ context.Context, input GetSettingsSchemaInput) (*GetSettingsSchemaOutput, error) {
	var tabs []entity.Tab
	if input.Tab != "" {
		if !uc.registry.HasTab(input.Tab) {
			return nil, entity.ErrUnknownTab
		}
		tabs = []entity.Tab{input.Tab}
	} else {
		for _, a := range uc.registry.Tabs() {
			tabs = append(tabs, a.Tab)
		}
	}

	var fields []FieldInfo
	for _, tab := range tabs {
		for _, f := range uc.registry.FieldsFor(tab) {
			fields = append(fields, fieldInfo(tab, f, uc.registry.Positions(f.Section, f.Key)))
		}
	}

	return &GetSettingsSchemaOutput{
		Fields: fields,
		Schema: uc.documentSchema(tabs),
	}, nil
}

func fieldInfo(tab entity.Tab, f entity.Field, positions map[int64]string) FieldInfo {
	info := FieldInfo{
		Path:      f.Path(),
		Tab:       tab,
		Section:   f.Section,
		Key:       f.Key,
		Kind:      string(f.Kind.Type),
		Default:   f.Default.Interface(),
		Required:  f.Required(),
		Positions: positions,
	}
	switch f.Kind.Type {
	case entity.KindSlider:
		lo, hi := f.Kind.Min, f.Kind.Max
		info.Min, info.Max = &lo, &hi
	case entity.KindText:
		info.MaxLength = f.Kind.MaxLength
	case entity.KindFontName:
		info.MaxLength = maxStoredFontLength
	}
	return info
}

// documentSchema mirrors the TOML codec layout:
// {schema, version, options: {tab: {section: {key: value}}}}.
func (uc *GetSettingsSchemaUseCase) documentSchema(tabs []entity.Tab) *jsonschema.Schema {
	options := newObjectSchema()
	for _, tab := range tabs {
		tabSchema := newObjectSchema()
		for _, sec := range uc.registry.Sections(tab) {
			secSchema := newObjectSchema()
			for _, f := range sec.Fields {
				secSchema.Properties.Set(f.Key, leafSchema(f, uc.registry.Positions(f.Section, f.Key)))
			}
			tabSchema.Properties.Set(sec.Name, secSchema)
		}
		options.Properties.Set(string(tab), tabSchema)
	}

	root := newObjectSchema()
	root.Version = jsonschema.Version
	root.ID = settingsSchemaID
	root.Title = "Cookie notice options"
	root.Description = "Stored options document of the cookie notice settings screen"
	root.Properties.Set("schema", &jsonschema.Schema{Type: "integer", Description: "Options document format version"})
	root.Properties.Set("version", &jsonschema.Schema{Type: "integer", Description: "Storage revision the document was written at"})
	root.Properties.Set("options", options)
	return root
}

func newObjectSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:                 "object",
		Properties:           jsonschema.NewProperties(),
		AdditionalProperties: jsonschema.FalseSchema,
	}
}

func leafSchema(f entity.Field, positions map[int64]string) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Title:   f.Path(),
		Default: f.Default.Interface(),
	}
	if len(positions) > 0 {
		s.Description = "Positions: " + DescribePositions(positions)
	}
	switch f.Kind.Type {
	case entity.KindSlider:
		s.Type = "integer"
		s.Minimum = json.Number(strconv.FormatInt(f.Kind.Min, 10))
		s.Maximum = json.Number(strconv.FormatInt(f.Kind.Max, 10))
	case entity.KindToggle:
		s.Type = "boolean"
	case entity.KindColor:
		s.Type = "string"
		s.Pattern = storedColorPattern
	case entity.KindFontName:
		s.Type = "string"
		s.Pattern = storedFontPattern
		s.MaxLength = uint64Ptr(maxStoredFontLength)
	case entity.KindClassList:
		s.Type = "string"
		s.Pattern = storedClassPattern
	default:
		s.Type = "string"
		if f.Kind.MaxLength > 0 {
			s.MaxLength = uint64Ptr(uint64(f.Kind.MaxLength))
		}
	}
	return s
}

func uint64Ptr(v uint64) *uint64 { return &v }
