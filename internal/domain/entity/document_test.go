package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsDocument_SetDeletePrunes(t *testing.T) {
	doc := NewOptionsDocument()
	doc.Set(TabStyling, "styling", "opacity_slider_amount", IntValue(80))
	doc.Set(TabStyling, "styling", "text_font", StringValue("Roboto"))
	assert.Equal(t, 2, doc.Len())

	doc.Delete(TabStyling, "styling", "opacity_slider_amount")
	doc.Delete(TabStyling, "styling", "text_font")
	assert.Equal(t, 0, doc.Len())
	assert.Empty(t, doc.Tabs())

	doc.Set(TabGeneral, "general", "x", Value{})
	assert.Equal(t, 0, doc.Len(), "unset values are not stored")
}

func TestOptionsDocument_MergeKeepsAbsentLeaves(t *testing.T) {
	doc := NewOptionsDocument()
	doc.Set(TabStyling, "styling", "opacity_slider_amount", IntValue(80))
	doc.Set(TabStyling, "styling", "text_font", StringValue("Roboto"))
	doc.Set(TabGeneral, "general", "location_options", StringValue("bottom"))

	partial := NewPartialDocument(TabStyling)
	partial.Set("styling", "opacity_slider_amount", IntValue(50))

	assert.True(t, doc.Merge(partial))

	v, ok := doc.Lookup(TabStyling, "styling", "opacity_slider_amount")
	require.True(t, ok)
	assert.Equal(t, int64(50), v.Int())

	v, ok = doc.Lookup(TabStyling, "styling", "text_font")
	require.True(t, ok)
	assert.Equal(t, "Roboto", v.Str())

	v, ok = doc.Lookup(TabGeneral, "general", "location_options")
	require.True(t, ok)
	assert.Equal(t, "bottom", v.Str())

	assert.False(t, doc.Merge(partial), "merging the same values twice changes nothing")
}

func TestOptionsDocument_CloneIsDeep(t *testing.T) {
	doc := NewOptionsDocument()
	doc.Version = 3
	doc.Set(TabStyling, "styling", "text_font", StringValue("Roboto"))

	cp := doc.Clone()
	cp.Set(TabStyling, "styling", "text_font", StringValue("Arial"))

	v, _ := doc.Lookup(TabStyling, "styling", "text_font")
	assert.Equal(t, "Roboto", v.Str())
	assert.Equal(t, int64(3), cp.Version)
	assert.False(t, doc.EqualValues(cp))

	cp.Set(TabStyling, "styling", "text_font", StringValue("Roboto"))
	assert.True(t, doc.EqualValues(cp))
}

func TestOptionsDocument_ReadOnlySurvivesClone(t *testing.T) {
	doc := NewOptionsDocument()
	assert.False(t, doc.ReadOnly())

	doc.MarkReadOnly()
	assert.True(t, doc.ReadOnly())
	assert.True(t, doc.Clone().ReadOnly())

	var missing *OptionsDocument
	assert.False(t, missing.ReadOnly())
}

func TestValue(t *testing.T) {
	assert.False(t, Value{}.IsSet())
	assert.Equal(t, "", Value{}.String())
	assert.Equal(t, "42", IntValue(42).String())
	assert.Equal(t, "1", BoolValue(true).String())
	assert.Equal(t, "0", BoolValue(false).String())
	assert.False(t, IntValue(1).Equal(StringValue("1")))

	v, err := ValueFromInterface(int64(7))
	require.NoError(t, err)
	assert.Equal(t, IntValue(7), v)

	v, err = ValueFromInterface(float64(12))
	require.NoError(t, err)
	assert.Equal(t, IntValue(12), v)

	_, err = ValueFromInterface(1.5)
	require.Error(t, err)

	_, err = ValueFromInterface([]any{"x"})
	require.Error(t, err)
}

func TestParseTab(t *testing.T) {
	tab, err := ParseTab("")
	require.NoError(t, err)
	assert.Equal(t, TabGeneral, tab)

	tab, err = ParseTab("styling_options")
	require.NoError(t, err)
	assert.Equal(t, TabStyling, tab)

	_, err = ParseTab("cookies_options_display")
	assert.True(t, errors.Is(err, ErrUnknownTab))
}

func TestStoreError_Is(t *testing.T) {
	conflict := &StoreError{Kind: StoreWriteConflict}
	wrapped := fmt.Errorf("save: %w", conflict)
	assert.True(t, errors.Is(wrapped, ErrWriteConflict))
	assert.False(t, errors.Is(wrapped, ErrStoreUnavailable))

	cause := errors.New("disk full")
	unavailable := &StoreError{Kind: StoreUnavailable, Err: cause}
	assert.True(t, errors.Is(unavailable, ErrStoreUnavailable))
	assert.True(t, errors.Is(unavailable, cause))
}

func TestFieldErrors(t *testing.T) {
	errs := FieldErrors{
		{Field: "styling.message_color_picker", Reason: ReasonInvalidFormat},
		{Field: "content.textarea_warning_text", Reason: ReasonMissing, Message: "is required"},
	}
	assert.Contains(t, errs.Error(), "styling.message_color_picker: invalid_format")
	assert.Contains(t, errs.Error(), "content.textarea_warning_text: is required")
	assert.Len(t, errs.ByField(), 2)
}
