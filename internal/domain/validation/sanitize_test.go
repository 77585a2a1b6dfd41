package validation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/cookiemsg/internal/domain/entity"
)

func TestSanitizeColor_ValidHexUnchanged(t *testing.T) {
	for _, c := range []string{"#000000", "#ffffff", "#FFFFFF", "#1a2B3c", "#abcdef", "#09AF10"} {
		got, err := SanitizeColor(c)
		require.NoError(t, err, c)
		assert.Equal(t, c, got)
	}
}

func TestSanitizeColor_AllSixDigitPatterns(t *testing.T) {
	digits := "0123456789abcdefABCDEF"
	for i := 0; i < len(digits); i++ {
		c := "#" + strings.Repeat(string(digits[i]), 3) + strings.Repeat(string(digits[len(digits)-1-i]), 3)
		got, err := SanitizeColor(c)
		require.NoError(t, err, c)
		assert.Equal(t, c, got)
	}
}

func TestSanitizeColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "empty means unset", in: "", want: ""},
		{name: "whitespace only", in: "   ", want: ""},
		{name: "missing hash is prefixed", in: "112233", want: "#112233"},
		{name: "trimmed", in: " #112233 ", want: "#112233"},
		{name: "not hex", in: "zzzzzz", wantErr: true},
		{name: "too short", in: "#fff", wantErr: true},
		{name: "too long", in: "#1122334", wantErr: true},
		{name: "css injection", in: "#112233;}", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeColor(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, entity.ReasonInvalidFormat, AsViolation(err).Reason)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeSlider_Clamps(t *testing.T) {
	bounds := [][2]int64{{0, 100}, {0, 50}, {0, 20}, {-10, 10}, {5, 5}}
	for _, b := range bounds {
		for n := b[0] - 25; n <= b[1]+25; n++ {
			got, err := SanitizeSlider(fmt.Sprintf("%d", n), b[0], b[1])
			require.NoError(t, err)

			want := n
			if want < b[0] {
				want = b[0]
			}
			if want > b[1] {
				want = b[1]
			}
			assert.Equal(t, want, got, "n=%d bounds=%v", n, b)
		}
	}
}

func TestSanitizeSlider(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int64
		wantErr bool
	}{
		{name: "above max", in: "150", want: 100},
		{name: "below min", in: "-3", want: 0},
		{name: "decimal rounds", in: "49.6", want: 50},
		{name: "spaces", in: " 42 ", want: 42},
		{name: "huge", in: "1e300", want: 100},
		{name: "empty", in: "", wantErr: true},
		{name: "text", in: "abc", wantErr: true},
		{name: "nan", in: "NaN", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeSlider(tt.in, 0, 100)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, entity.ReasonInvalidFormat, AsViolation(err).Reason)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeFontName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		reason  entity.FieldErrorReason
		wantErr bool
	}{
		{name: "empty keeps theme font", in: "", want: ""},
		{name: "font stack", in: "Open Sans, Helvetica, sans-serif", want: "Open Sans, Helvetica, sans-serif"},
		{name: "trimmed", in: "  Roboto ", want: "Roboto"},
		{name: "semicolon", in: "Arial; color: red", wantErr: true, reason: entity.ReasonInvalidFormat},
		{name: "quotes", in: `"Times New Roman"`, wantErr: true, reason: entity.ReasonInvalidFormat},
		{name: "braces", in: "x}body{", wantErr: true, reason: entity.ReasonInvalidFormat},
		{name: "too long", in: strings.Repeat("a", 201), wantErr: true, reason: entity.ReasonOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeFontName(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.reason, AsViolation(err).Reason)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeClassList(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "empty", in: "", want: ""},
		{name: "single", in: "btn", want: "btn"},
		{name: "normalizes whitespace", in: "  btn\tbtn-primary \n x_1 ", want: "btn btn-primary x_1"},
		{name: "leading hyphen", in: "-moz-thing", want: "-moz-thing"},
		{name: "digit first", in: "1col", wantErr: true},
		{name: "quote", in: `btn" onclick="x`, wantErr: true},
		{name: "dot", in: ".btn", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeClassList(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeText(t *testing.T) {
	got, err := SanitizeText("  We use cookies.\nRead more.  ", 0)
	require.NoError(t, err)
	assert.Equal(t, "We use cookies.\nRead more.", got)

	_, err = SanitizeText("abcdef", 5)
	require.Error(t, err)
	assert.Equal(t, entity.ReasonOutOfRange, AsViolation(err).Reason)

	got, err = SanitizeText("ééééé", 5)
	require.NoError(t, err)
	assert.Equal(t, "ééééé", got)

	_, err = SanitizeText("a\x00b", 0)
	require.Error(t, err)
}

func TestSanitizeToggle(t *testing.T) {
	for _, in := range []string{"1", "true", "ON", "yes"} {
		got, err := SanitizeToggle(in)
		require.NoError(t, err)
		assert.True(t, got, in)
	}
	for _, in := range []string{"", "0", "false", "Off", "no"} {
		got, err := SanitizeToggle(in)
		require.NoError(t, err)
		assert.False(t, got, in)
	}
	_, err := SanitizeToggle("maybe")
	require.Error(t, err)
}

func TestSanitize_DispatchesOnKind(t *testing.T) {
	v, err := Sanitize(entity.SliderKind(0, 100), "150")
	require.NoError(t, err)
	assert.Equal(t, entity.IntValue(100), v)

	v, err = Sanitize(entity.ToggleKind(), "on")
	require.NoError(t, err)
	assert.Equal(t, entity.BoolValue(true), v)

	v, err = Sanitize(entity.ColorKind(), "#aabbcc")
	require.NoError(t, err)
	assert.Equal(t, entity.StringValue("#aabbcc"), v)

	_, err = Sanitize(entity.Kind{Type: "bogus"}, "x")
	require.Error(t, err)
}

func TestSanitizeValue(t *testing.T) {
	v, err := SanitizeValue(entity.SliderKind(0, 100), entity.IntValue(400))
	require.NoError(t, err)
	assert.Equal(t, entity.IntValue(100), v)

	_, err = SanitizeValue(entity.SliderKind(0, 100), entity.StringValue("50"))
	require.Error(t, err)

	_, err = SanitizeValue(entity.ColorKind(), entity.StringValue("red"))
	require.Error(t, err)

	v, err = SanitizeValue(entity.ToggleKind(), entity.BoolValue(true))
	require.NoError(t, err)
	assert.True(t, v.Bool())
}
