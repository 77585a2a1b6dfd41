// Package validation holds the per-kind rules that turn raw form input into
// stored setting values.
package validation

import (
	"errors"

	"github.com/bnema/cookiemsg/internal/domain/entity"
)

// Violation describes why a raw input was refused.
type Violation struct {
	Reason  entity.FieldErrorReason
	Message string
}

func (v *Violation) Error() string {
	return v.Message
}

func violation(reason entity.FieldErrorReason, msg string) error {
	return &Violation{Reason: reason, Message: msg}
}

// AsViolation extracts the Violation from err, defaulting to InvalidFormat.
func AsViolation(err error) *Violation {
	var v *Violation
	if errors.As(err, &v) {
		return v
	}
	return &Violation{Reason: entity.ReasonInvalidFormat, Message: err.Error()}
}

// Sanitize applies the rule of kind to raw and returns the value to store.
func Sanitize(kind entity.Kind, raw string) (entity.Value, error) {
	switch kind.Type {
	case entity.KindText:
		s, err := SanitizeText(raw, kind.MaxLength)
		if err != nil {
			return entity.Value{}, err
		}
		return entity.StringValue(s), nil
	case entity.KindColor:
		s, err := SanitizeColor(raw)
		if err != nil {
			return entity.Value{}, err
		}
		return entity.StringValue(s), nil
	case entity.KindSlider:
		n, err := SanitizeSlider(raw, kind.Min, kind.Max)
		if err != nil {
			return entity.Value{}, err
		}
		return entity.IntValue(n), nil
	case entity.KindFontName:
		s, err := SanitizeFontName(raw)
		if err != nil {
			return entity.Value{}, err
		}
		return entity.StringValue(s), nil
	case entity.KindClassList:
		s, err := SanitizeClassList(raw)
		if err != nil {
			return entity.Value{}, err
		}
		return entity.StringValue(s), nil
	case entity.KindToggle:
		b, err := SanitizeToggle(raw)
		if err != nil {
			return entity.Value{}, err
		}
		return entity.BoolValue(b), nil
	default:
		return entity.Value{}, violation(entity.ReasonInvalidFormat, "unsupported field kind "+string(kind.Type))
	}
}

// SanitizeValue re-checks an already typed value against kind, e.g. one read
// back from storage. Sliders are clamped; mismatched types are refused.
func SanitizeValue(kind entity.Kind, v entity.Value) (entity.Value, error) {
	if v.Type() != kind.ValueType() {
		return entity.Value{}, violation(entity.ReasonInvalidFormat,
			"expected "+kind.ValueType().String()+", got "+v.Type().String())
	}
	switch kind.Type {
	case entity.KindSlider:
		return entity.IntValue(ClampInt(v.Int(), kind.Min, kind.Max)), nil
	case entity.KindToggle:
		return v, nil
	default:
		return Sanitize(kind, v.Str())
	}
}
