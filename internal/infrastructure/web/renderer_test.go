package web

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/cookiemsg/internal/domain/entity"
)

func TestTemplateRenderer(t *testing.T) {
	r := NewTemplateRenderer("custom_cookie_message")

	tests := []struct {
		name  string
		field entity.Field
		value entity.Value
		want  []string
	}{
		{
			name:  "text escapes value",
			field: entity.Field{Section: "content", Key: "input_button_text", Kind: entity.TextKind(100)},
			value: entity.StringValue(`Say "ok" <now>`),
			want: []string{
				`name="custom_cookie_message[content][input_button_text]"`,
				`value="Say &#34;ok&#34; &lt;now&gt;"`,
				`maxlength="100"`,
			},
		},
		{
			name:  "slider carries bounds",
			field: entity.Field{Section: "styling", Key: "opacity_slider_amount", Kind: entity.SliderKind(0, 100)},
			value: entity.IntValue(40),
			want:  []string{`type="range"`, `min="0"`, `max="100"`, `value="40"`},
		},
		{
			name:  "toggle checked",
			field: entity.Field{Section: "general", Key: "no_cookies_hide", Kind: entity.ToggleKind()},
			value: entity.BoolValue(true),
			want:  []string{`type="hidden"`, `value="0"`, `type="checkbox"`, ` checked`},
		},
		{
			name:  "color",
			field: entity.Field{Section: "styling", Key: "text_color_picker", Kind: entity.ColorKind()},
			value: entity.StringValue("#112233"),
			want:  []string{`class="color-picker"`, `value="#112233"`, `id="styling_text_color_picker"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			markup, err := r.RenderField(context.Background(), tt.field, tt.value)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, markup, want)
			}
		})
	}
}

func TestTemplateRenderer_ToggleUnchecked(t *testing.T) {
	r := NewTemplateRenderer("")
	markup, err := r.RenderField(context.Background(),
		entity.Field{Section: "general", Key: "no_cookies_hide", Kind: entity.ToggleKind()},
		entity.BoolValue(false))
	require.NoError(t, err)
	assert.NotContains(t, markup, "checked")
	assert.Contains(t, markup, `name="general.no_cookies_hide"`)
}

func TestTemplateRenderer_UnknownKind(t *testing.T) {
	r := NewTemplateRenderer("")
	_, err := r.RenderField(context.Background(),
		entity.Field{Section: "s", Key: "k", Kind: entity.Kind{Type: "matrix"}}, entity.Value{})
	require.Error(t, err)
}
