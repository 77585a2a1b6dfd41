package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/cookiemsg/internal/application/port"
	"github.com/bnema/cookiemsg/internal/application/store"
	"github.com/bnema/cookiemsg/internal/application/tabs"
	"github.com/bnema/cookiemsg/internal/domain/entity"
	"github.com/bnema/cookiemsg/internal/logging"
)

// RenderSettingsPageUseCase builds the page model of one settings tab.
type RenderSettingsPageUseCase struct {
	store      *store.Store
	controller *tabs.Controller
	caps       port.CapabilityProvider
}

// NewRenderSettingsPageUseCase creates a new RenderSettingsPageUseCase.
func NewRenderSettingsPageUseCase(
	optionsStore *store.Store,
	controller *tabs.Controller,
	caps port.CapabilityProvider,
) *RenderSettingsPageUseCase {
	return &RenderSettingsPageUseCase{
		store:      optionsStore,
		controller: controller,
		caps:       caps,
	}
}

// RenderSettingsPageInput contains the requested tab and, after a rejected
// submit, the raw values and errors to redisplay.
type RenderSettingsPageInput struct {
	Tab       string
	Submitted map[string]string
	Errors    entity.FieldErrors
}

// RenderSettingsPageOutput is the page model handed to the presentation layer.
type RenderSettingsPageOutput struct {
	Tab        entity.Tab         `json:"tab"`
	Version    int64              `json:"version"`
	Navigation []tabs.TabLink     `json:"navigation"`
	Sections   []tabs.SectionView `json:"sections"`
	Errors     entity.FieldErrors `json:"errors,omitempty"`
}

// Execute selects the tab for the current caller, loads the document and
// renders the tab's sections.
func (uc *RenderSettingsPageUseCase) Execute(ctx context.Context, input RenderSettingsPageInput) (*RenderSettingsPageOutput, error) {
	caps, err := currentCapabilities(ctx, uc.caps)
	if err != nil {
		return nil, err
	}

	tab, err := uc.controller.Select(input.Tab, caps)
	if err != nil {
		return nil, err
	}
	ctx = logging.WithTab(ctx, string(tab))

	doc := uc.store.Load(ctx)
	sections, err := uc.controller.Dispatch(ctx, tab, tabs.RenderInput{
		Document:  doc,
		Submitted: input.Submitted,
		Errors:    input.Errors,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render tab %s: %w", tab, err)
	}

	logging.FromContext(ctx).Debug().Int("sections", len(sections)).Msg("settings page rendered")

	return &RenderSettingsPageOutput{
		Tab:        tab,
		Version:    doc.Version,
		Navigation: uc.controller.Navigation(tab, caps),
		Sections:   sections,
		Errors:     input.Errors,
	}, nil
}

func currentCapabilities(ctx context.Context, provider port.CapabilityProvider) (entity.CapabilitySet, error) {
	if provider == nil {
		return entity.NewCapabilitySet(), nil
	}
	caps, err := provider.CurrentCapabilities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve capabilities: %w", err)
	}
	return caps, nil
}
