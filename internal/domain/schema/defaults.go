package schema

import "github.com/bnema/cookiemsg/internal/domain/entity"

// Section names of the built-in catalog.
const (
	SectionGeneral    = "general"
	SectionContent    = "content"
	SectionStyling    = "styling"
	SectionCookieList = "cookie_list"
)

// Life-time slider positions of the general tab.
const (
	LifeTimeSession int64 = iota
	LifeTimeWeek
	LifeTimeMonth
	LifeTimeYear
	LifeTimeForever
)

// LifeTimeLabels names the life-time slider positions.
var LifeTimeLabels = map[int64]string{
	LifeTimeSession: "session",
	LifeTimeWeek:    "week",
	LifeTimeMonth:   "month",
	LifeTimeYear:    "year",
	LifeTimeForever: "forever",
}

const (
	defaultMessageHeight = 10
	defaultOpacity       = 100
	defaultButtonHeight  = 5
	defaultButtonWidth   = 10

	defaultLocation         = "top-fixed"
	defaultButtonText       = "I understand"
	defaultLinkText         = "Read more"
	defaultCookieListHeader = "Cookie settings"

	maxShortText = 100
	maxLongText  = 2000
	maxURLLength = 2048
)

// NewDefaultRegistry returns the cookie-notice catalog: four tabs, where
// styling and cookie settings require the elevated capability.
func NewDefaultRegistry() *Registry {
	r := New()

	mustAddTab(r, entity.TabGeneral, entity.CapabilityManageOptions)
	mustAddTab(r, entity.TabContent, entity.CapabilityManageOptions)
	mustAddTab(r, entity.TabStyling, entity.CapabilityEditAppearance)
	mustAddTab(r, entity.TabCookieSettings, entity.CapabilityEditAppearance)

	registerGeneral(r)
	registerContent(r)
	registerStyling(r)
	registerCookieList(r)

	return r
}

func mustAddTab(r *Registry, tab entity.Tab, requires entity.Capability) {
	if err := r.AddTab(tab, requires); err != nil {
		panic(err)
	}
}

func mustRegister(r *Registry, tab entity.Tab, section string) {
	if err := r.Register(tab, section); err != nil {
		panic(err)
	}
}

func registerGeneral(r *Registry) {
	mustRegister(r, entity.TabGeneral, SectionGeneral)

	r.MustDefine(SectionGeneral, "location_options", entity.TextKind(32), entity.StringValue(defaultLocation))
	r.MustDefine(SectionGeneral, "cookies_page_link", entity.TextKind(maxURLLength), entity.StringValue(""))
	r.MustDefine(SectionGeneral, "life_time_slider_amount",
		entity.SliderKind(LifeTimeSession, LifeTimeForever), entity.IntValue(LifeTimeSession))
	if err := r.NamePositions(SectionGeneral, "life_time_slider_amount", LifeTimeLabels); err != nil {
		panic(err)
	}
	r.MustDefine(SectionGeneral, "no_cookies_hide", entity.ToggleKind(), entity.BoolValue(false))
}

func registerContent(r *Registry) {
	mustRegister(r, entity.TabContent, SectionContent)

	// The notice text has no sensible default and must be provided.
	r.MustDefine(SectionContent, "textarea_warning_text", entity.TextKind(maxLongText), entity.Value{})
	r.MustDefine(SectionContent, "input_button_text", entity.TextKind(maxShortText), entity.StringValue(defaultButtonText))
	r.MustDefine(SectionContent, "input_link_text", entity.TextKind(maxShortText), entity.StringValue(defaultLinkText))
}

func registerStyling(r *Registry) {
	mustRegister(r, entity.TabStyling, SectionStyling)

	unset := entity.StringValue("")

	r.MustDefine(SectionStyling, "message_color_picker", entity.ColorKind(), unset)
	r.MustDefine(SectionStyling, "message_height_slider_amount", entity.SliderKind(0, 50), entity.IntValue(defaultMessageHeight))
	r.MustDefine(SectionStyling, "opacity_slider_amount", entity.SliderKind(0, 100), entity.IntValue(defaultOpacity))
	r.MustDefine(SectionStyling, "text_font", entity.FontNameKind(), unset)
	r.MustDefine(SectionStyling, "text_color_picker", entity.ColorKind(), unset)
	r.MustDefine(SectionStyling, "link_color_picker", entity.ColorKind(), unset)
	r.MustDefine(SectionStyling, "add_button_class", entity.ClassListKind(), unset)
	r.MustDefine(SectionStyling, "button_color_picker", entity.ColorKind(), unset)
	r.MustDefine(SectionStyling, "button_hover_color_picker", entity.ColorKind(), unset)
	r.MustDefine(SectionStyling, "button_text_color_picker", entity.ColorKind(), unset)
	r.MustDefine(SectionStyling, "button_height_slider_amount", entity.SliderKind(0, 20), entity.IntValue(defaultButtonHeight))
	r.MustDefine(SectionStyling, "button_width_slider_amount", entity.SliderKind(0, 40), entity.IntValue(defaultButtonWidth))
}

func registerCookieList(r *Registry) {
	mustRegister(r, entity.TabCookieSettings, SectionCookieList)

	r.MustDefine(SectionCookieList, "cookie_list_heading", entity.TextKind(200), entity.StringValue(defaultCookieListHeader))
	r.MustDefine(SectionCookieList, "necessary_cookies", entity.TextKind(maxLongText), entity.StringValue(""))
	r.MustDefine(SectionCookieList, "functional_cookies_enabled", entity.ToggleKind(), entity.BoolValue(true))
	r.MustDefine(SectionCookieList, "advertising_cookies_enabled", entity.ToggleKind(), entity.BoolValue(false))
}
