package usecase

import (
	"context"

	"github.com/bnema/cookiemsg/internal/application/store"
	"github.com/bnema/cookiemsg/internal/domain/entity"
	"github.com/bnema/cookiemsg/internal/domain/schema"
)

// ResolvedOption is the effective value of one field.
type ResolvedOption struct {
	Path  string       `json:"path"`
	Tab   entity.Tab   `json:"tab"`
	Value entity.Value `json:"-"`
	// Stored is false when Value comes from the field default.
	Stored bool `json:"stored"`
}

// ShowOptionsUseCase lists the effective options of every field.
type ShowOptionsUseCase struct {
	store    *store.Store
	registry *schema.Registry
}

// NewShowOptionsUseCase creates a new ShowOptionsUseCase.
func NewShowOptionsUseCase(optionsStore *store.Store, registry *schema.Registry) *ShowOptionsUseCase {
	return &ShowOptionsUseCase{store: optionsStore, registry: registry}
}

// ShowOptionsInput filters the listing.
type ShowOptionsInput struct {
	Tab        entity.Tab
	StoredOnly bool
}

// ShowOptionsOutput contains the resolved values in field order.
type ShowOptionsOutput struct {
	Version int64
	Options []ResolvedOption
}

func (uc *ShowOptionsUseCase) Execute(ctx context.Context, input ShowOptionsInput) (*ShowOptionsOutput, error) {
	if input.Tab != "" && !uc.registry.HasTab(input.Tab) {
		return nil, entity.ErrUnknownTab
	}

	doc := uc.store.Load(ctx)
	out := &ShowOptionsOutput{Version: doc.Version}

	for _, access := range uc.registry.Tabs() {
		if input.Tab != "" && access.Tab != input.Tab {
			continue
		}
		for _, f := range uc.registry.FieldsFor(access.Tab) {
			_, stored := doc.Lookup(access.Tab, f.Section, f.Key)
			if input.StoredOnly && !stored {
				continue
			}
			out.Options = append(out.Options, ResolvedOption{
				Path:   f.Path(),
				Tab:    access.Tab,
				Value:  store.Resolve(doc, access.Tab, f),
				Stored: stored,
			})
		}
	}

	return out, nil
}
