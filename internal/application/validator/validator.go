// Package validator turns a raw form submission for one tab into sanitized
// option values, all or nothing.
package validator

import (
	"context"
	"fmt"

	"github.com/bnema/cookiemsg/internal/domain/entity"
	"github.com/bnema/cookiemsg/internal/domain/schema"
	"github.com/bnema/cookiemsg/internal/domain/validation"
	"github.com/bnema/cookiemsg/internal/logging"
)

// Validator checks submissions against the registry.
type Validator struct {
	registry *schema.Registry
}

// New creates a Validator for registry.
func New(registry *schema.Registry) *Validator {
	return &Validator{registry: registry}
}

// Validate sanitizes raw inputs (keyed by field path, "section.key") for every
// field declared on tab. Inputs for undeclared paths are ignored. When any
// field fails, no partial document is returned and every failure is reported
// in field order.
//
// An absent input is skipped for fields with a default, so the stored value is
// kept on merge; it is a Missing error for fields without one.
func (v *Validator) Validate(ctx context.Context, tab entity.Tab, raw map[string]string) (*entity.PartialDocument, entity.FieldErrors) {
	log := logging.FromContext(ctx)

	if !v.registry.HasTab(tab) {
		return nil, entity.FieldErrors{{
			Field:   string(tab),
			Reason:  entity.ReasonInvalidFormat,
			Message: fmt.Sprintf("unknown tab %q", tab),
		}}
	}

	partial := entity.NewPartialDocument(tab)
	var errs entity.FieldErrors

	for _, field := range v.registry.FieldsFor(tab) {
		input, present := raw[field.Path()]
		if !present || (input == "" && field.Kind.Type == entity.KindSlider) {
			if field.Required() {
				errs = append(errs, entity.FieldError{
					Field:   field.Path(),
					Reason:  entity.ReasonMissing,
					Message: "is required",
				})
			}
			continue
		}

		value, err := validation.Sanitize(field.Kind, input)
		if err != nil {
			viol := validation.AsViolation(err)
			errs = append(errs, entity.FieldError{
				Field:   field.Path(),
				Reason:  viol.Reason,
				Message: viol.Message,
			})
			continue
		}
		if field.Required() && value.Type() == entity.ValueString && value.Str() == "" {
			errs = append(errs, entity.FieldError{
				Field:   field.Path(),
				Reason:  entity.ReasonMissing,
				Message: "is required",
			})
			continue
		}

		partial.Set(field.Section, field.Key, value)
	}

	if len(errs) > 0 {
		log.Debug().Str("tab", string(tab)).Int("errors", len(errs)).Msg("submission rejected")
		return nil, errs
	}

	log.Debug().Str("tab", string(tab)).Int("values", partial.Len()).Msg("submission accepted")
	return partial, nil
}
