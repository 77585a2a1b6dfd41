// Package tabs selects the active settings tab for a caller and dispatches
// rendering of its sections.
package tabs

import (
	"context"
	"fmt"

	"github.com/bnema/cookiemsg/internal/application/port"
	"github.com/bnema/cookiemsg/internal/application/store"
	"github.com/bnema/cookiemsg/internal/domain/entity"
	"github.com/bnema/cookiemsg/internal/domain/schema"
)

// FieldView is one field as handed to the presentation layer.
type FieldView struct {
	Field entity.Field       `json:"-"`
	Path  string             `json:"path"`
	Kind  string             `json:"kind"`
	Value entity.Value       `json:"-"`
	Input string             `json:"value"`
	Error *entity.FieldError `json:"error,omitempty"`
	// Markup is set when a FieldRenderer is configured.
	Markup string `json:"markup,omitempty"`
}

// SectionView groups the field views of one section.
type SectionView struct {
	Name   string      `json:"name"`
	Fields []FieldView `json:"fields"`
}

// TabLink is one entry of the tab navigation.
type TabLink struct {
	Tab    entity.Tab `json:"tab"`
	Active bool       `json:"active"`
}

// RenderInput carries what a handler needs to draw a tab.
type RenderInput struct {
	Document *entity.OptionsDocument
	// Submitted holds raw inputs to redisplay after a rejected submit.
	Submitted map[string]string
	Errors    entity.FieldErrors
}

// Handler draws the sections of one tab.
type Handler interface {
	Render(ctx context.Context, tab entity.Tab, in RenderInput) ([]SectionView, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, tab entity.Tab, in RenderInput) ([]SectionView, error)

func (f HandlerFunc) Render(ctx context.Context, tab entity.Tab, in RenderInput) ([]SectionView, error) {
	return f(ctx, tab, in)
}

// Controller maps every known tab to its handler.
type Controller struct {
	registry *schema.Registry
	handlers map[entity.Tab]Handler
}

// NewController creates a controller with an explicit handler table.
func NewController(registry *schema.Registry, handlers map[entity.Tab]Handler) *Controller {
	cp := make(map[entity.Tab]Handler, len(handlers))
	for t, h := range handlers {
		cp[t] = h
	}
	return &Controller{registry: registry, handlers: cp}
}

// NewDefaultController routes every declared tab to a SectionHandler.
func NewDefaultController(registry *schema.Registry, renderer port.FieldRenderer) *Controller {
	h := NewSectionHandler(registry, renderer)
	handlers := make(map[entity.Tab]Handler)
	for _, a := range registry.Tabs() {
		handlers[a.Tab] = h
	}
	return NewController(registry, handlers)
}

// Select parses the requested tab ("" meaning the default tab) and checks the
// caller may see it.
func (c *Controller) Select(requested string, caps entity.CapabilitySet) (entity.Tab, error) {
	tab, err := entity.ParseTab(requested)
	if err != nil {
		return "", err
	}
	if err := c.registry.Authorize(tab, caps); err != nil {
		return "", err
	}
	return tab, nil
}

// Navigation lists the tabs visible to caps, marking the active one.
func (c *Controller) Navigation(active entity.Tab, caps entity.CapabilitySet) []TabLink {
	visible := c.registry.VisibleTabs(caps)
	links := make([]TabLink, 0, len(visible))
	for _, t := range visible {
		links = append(links, TabLink{Tab: t, Active: t == active})
	}
	return links
}

// Dispatch renders tab through its registered handler.
func (c *Controller) Dispatch(ctx context.Context, tab entity.Tab, in RenderInput) ([]SectionView, error) {
	h, ok := c.handlers[tab]
	if !ok {
		return nil, fmt.Errorf("%w: no handler for %q", entity.ErrUnknownTab, tab)
	}
	return h.Render(ctx, tab, in)
}

// SectionHandler renders a tab by walking its registered sections.
type SectionHandler struct {
	registry *schema.Registry
	renderer port.FieldRenderer
}

// NewSectionHandler creates a SectionHandler; renderer may be nil.
func NewSectionHandler(registry *schema.Registry, renderer port.FieldRenderer) *SectionHandler {
	return &SectionHandler{registry: registry, renderer: renderer}
}

func (h *SectionHandler) Render(ctx context.Context, tab entity.Tab, in RenderInput) ([]SectionView, error) {
	errsByField := in.Errors.ByField()
	sections := h.registry.Sections(tab)
	out := make([]SectionView, 0, len(sections))

	for _, sec := range sections {
		view := SectionView{Name: sec.Name, Fields: make([]FieldView, 0, len(sec.Fields))}
		for _, field := range sec.Fields {
			value := store.Resolve(in.Document, tab, field)
			fv := FieldView{
				Field: field,
				Path:  field.Path(),
				Kind:  field.Kind.String(),
				Value: value,
				Input: value.String(),
			}
			if raw, ok := in.Submitted[field.Path()]; ok {
				fv.Input = raw
			}
			if fe, ok := errsByField[field.Path()]; ok {
				fe := fe
				fv.Error = &fe
			}
			if h.renderer != nil {
				markup, err := h.renderer.RenderField(ctx, field, value)
				if err != nil {
					return nil, fmt.Errorf("failed to render field %s: %w", field.Path(), err)
				}
				fv.Markup = markup
			}
			view.Fields = append(view.Fields, fv)
		}
		out = append(out, view)
	}

	return out, nil
}
