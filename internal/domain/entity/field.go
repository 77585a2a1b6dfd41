package entity

import "fmt"

// KindType enumerates the supported field kinds.
type KindType string

const (
	KindText      KindType = "text"
	KindColor     KindType = "color"
	KindSlider    KindType = "slider"
	KindFontName  KindType = "font_name"
	KindClassList KindType = "class_list"
	KindToggle    KindType = "toggle"
)

// Kind carries a field's type together with its validation parameters.
type Kind struct {
	Type KindType

	// Min and Max bound Slider values (inclusive).
	Min int64
	Max int64

	// MaxLength caps Text values when positive.
	MaxLength int
}

// TextKind returns a Text kind; maxLength <= 0 means uncapped.
func TextKind(maxLength int) Kind {
	return Kind{Type: KindText, MaxLength: maxLength}
}

func ColorKind() Kind { return Kind{Type: KindColor} }

// SliderKind returns a Slider kind bounded to [minValue, maxValue].
func SliderKind(minValue, maxValue int64) Kind {
	return Kind{Type: KindSlider, Min: minValue, Max: maxValue}
}

func FontNameKind() Kind { return Kind{Type: KindFontName} }

func ClassListKind() Kind { return Kind{Type: KindClassList} }

func ToggleKind() Kind { return Kind{Type: KindToggle} }

// ValueType returns the leaf type stored for this kind.
func (k Kind) ValueType() ValueType {
	switch k.Type {
	case KindSlider:
		return ValueInt
	case KindToggle:
		return ValueBool
	default:
		return ValueString
	}
}

// Zero returns the kind-specific zero value used when neither the document
// nor the field default provide one.
func (k Kind) Zero() Value {
	switch k.Type {
	case KindSlider:
		return IntValue(k.Min)
	case KindToggle:
		return BoolValue(false)
	default:
		return StringValue("")
	}
}

func (k Kind) String() string {
	switch k.Type {
	case KindSlider:
		return fmt.Sprintf("slider(%d,%d)", k.Min, k.Max)
	case KindText:
		if k.MaxLength > 0 {
			return fmt.Sprintf("text(%d)", k.MaxLength)
		}
		return string(KindText)
	default:
		return string(k.Type)
	}
}

// Field is one configurable setting.
type Field struct {
	Key     string
	Section string
	Kind    Kind
	Default Value
}

// Path returns the stable "section.key" path used for raw inputs and errors.
func (f Field) Path() string {
	return f.Section + "." + f.Key
}

// Required reports whether the field has no default, making input mandatory.
func (f Field) Required() bool {
	return !f.Default.IsSet()
}

// Section is a named, ordered group of fields belonging to exactly one tab.
type Section struct {
	Name   string
	Tab    Tab
	Fields []Field
}
