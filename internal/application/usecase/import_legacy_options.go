package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/bnema/cookiemsg/internal/application/store"
	"github.com/bnema/cookiemsg/internal/application/validator"
	"github.com/bnema/cookiemsg/internal/domain/entity"
	"github.com/bnema/cookiemsg/internal/domain/schema"
	"github.com/bnema/cookiemsg/internal/logging"
)

// ImportLegacyOptionsUseCase imports the host's nested option array, exported
// as JSON ({"section": {"key": value}}), into the options document.
type ImportLegacyOptionsUseCase struct {
	store     *store.Store
	validator *validator.Validator
	registry  *schema.Registry
}

// NewImportLegacyOptionsUseCase creates a new ImportLegacyOptionsUseCase.
func NewImportLegacyOptionsUseCase(
	optionsStore *store.Store,
	v *validator.Validator,
	registry *schema.Registry,
) *ImportLegacyOptionsUseCase {
	return &ImportLegacyOptionsUseCase{
		store:     optionsStore,
		validator: v,
		registry:  registry,
	}
}

// ImportLegacyOptionsInput contains the raw JSON export.
type ImportLegacyOptionsInput struct {
	Data []byte
	// DryRun validates and reports without writing.
	DryRun bool
}

// ImportLegacyOptionsOutput reports what was imported.
type ImportLegacyOptionsOutput struct {
	Imported []entity.Tab
	Rejected map[entity.Tab]entity.FieldErrors
	// Skipped lists input paths that match no declared section or hold
	// values that cannot be expressed as a field input.
	Skipped []string
	Changed bool
	Version int64
}

// Execute validates every tab present in the export with the same rules as
// a form submission. Accepted tabs are merged and saved in one write;
// rejected tabs are reported and leave their stored values untouched.
func (uc *ImportLegacyOptionsUseCase) Execute(ctx context.Context, input ImportLegacyOptionsInput) (*ImportLegacyOptionsOutput, error) {
	log := logging.FromContext(ctx).With().Str("component", "legacy-import").Logger()

	var raw map[string]map[string]any
	dec := json.NewDecoder(bytes.NewReader(input.Data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse legacy options: %w", err)
	}

	out := &ImportLegacyOptionsOutput{Rejected: make(map[entity.Tab]entity.FieldErrors)}
	perTab := make(map[entity.Tab]map[string]string)

	for _, section := range sortedKeys(raw) {
		tab, ok := uc.registry.TabOf(section)
		if !ok {
			out.Skipped = append(out.Skipped, section)
			continue
		}
		if perTab[tab] == nil {
			perTab[tab] = make(map[string]string)
		}
		values := raw[section]
		for _, key := range sortedKeys(values) {
			path := section + "." + key
			s, ok := legacyInput(values[key])
			if !ok {
				out.Skipped = append(out.Skipped, path)
				continue
			}
			perTab[tab][path] = s
		}
	}

	doc := uc.store.Load(ctx)
	for _, access := range uc.registry.Tabs() {
		inputs, present := perTab[access.Tab]
		if !present {
			continue
		}
		partial, errs := uc.validator.Validate(ctx, access.Tab, inputs)
		if len(errs) > 0 {
			out.Rejected[access.Tab] = errs
			log.Warn().Str("tab", string(access.Tab)).Int("errors", len(errs)).Msg("legacy tab rejected")
			continue
		}
		if doc.Merge(partial) {
			out.Changed = true
		}
		out.Imported = append(out.Imported, access.Tab)
	}
	out.Version = doc.Version

	if !out.Changed || input.DryRun {
		log.Info().
			Bool("dry_run", input.DryRun).
			Bool("changed", out.Changed).
			Int("imported", len(out.Imported)).
			Msg("legacy import finished without writing")
		return out, nil
	}

	if err := uc.store.Save(ctx, doc); err != nil {
		return out, fmt.Errorf("failed to save imported options: %w", err)
	}
	out.Version = doc.Version
	log.Info().Int("imported", len(out.Imported)).Int64("version", doc.Version).Msg("legacy options imported")
	return out, nil
}

// legacyInput renders a decoded JSON leaf the way a form would submit it.
func legacyInput(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		if t {
			return "1", true
		}
		return "0", true
	default:
		return "", false
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
