package settings

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#007AFF", Color{0x00, 0x7A, 0xFF, 0xFF}, false},
		{"#007AFF80", Color{0x00, 0x7A, 0xFF, 0x80}, false},
		{"ff0000", Color{0xFF, 0x00, 0x00, 0xFF}, false},
		{"#12345", Color{}, true},
		{"#GGGGGG", Color{}, true},
		{"", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColorHexRoundTrip(t *testing.T) {
	c := Color{R: 1, G: 2, B: 3, A: 4}
	assert.Equal(t, "#01020304", c.Hex())
	back, err := ParseColor(c.Hex())
	require.NoError(t, err)
	assert.Equal(t, c, back)
}

func TestTheme(t *testing.T) {
	assert.Equal(t, ThemeDark, ThemeLight.Next())
	assert.Equal(t, ThemeSystem, ThemeDark.Next())
	assert.Equal(t, ThemeLight, ThemeSystem.Next())
	assert.Equal(t, ThemeSystem, Theme("bogus").Next())

	th, err := ParseTheme(" dark ")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, th)
	_, err = ParseTheme("sepia")
	assert.Error(t, err)
}

func TestNormalizeNaNWidth(t *testing.T) {
	v := Defaults()
	v.SidebarWidth = math.NaN()
	assert.Equal(t, Defaults().SidebarWidth, v.normalize().SidebarWidth)
}

func TestKeysAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, k := range Keys() {
		assert.False(t, seen[k], "duplicate key %s", k)
		seen[k] = true
	}
	assert.Len(t, seen, 12)
}

func TestGroupString(t *testing.T) {
	assert.Equal(t, "general", General.String())
	assert.Equal(t, "appearance", Appearance.String())
	assert.Equal(t, "advanced", Advanced.String())
	assert.Equal(t, "group(9)", Group(9).String())
}
