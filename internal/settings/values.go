package settings

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Group is a set of fields that are debounced and persisted together.
type Group int

const (
	General Group = iota
	Appearance
	Advanced

	numGroups
)

// Groups lists every group in persistence order.
func Groups() []Group {
	return []Group{General, Appearance, Advanced}
}

func (g Group) String() string {
	switch g {
	case General:
		return "general"
	case Appearance:
		return "appearance"
	case Advanced:
		return "advanced"
	default:
		return fmt.Sprintf("group(%d)", int(g))
	}
}

// Theme is the selected color scheme. The value is its persisted raw tag.
type Theme string

const (
	ThemeLight  Theme = "Light"
	ThemeDark   Theme = "Dark"
	ThemeSystem Theme = "System"
)

// Themes lists the selectable themes in display order.
func Themes() []Theme {
	return []Theme{ThemeLight, ThemeDark, ThemeSystem}
}

// Valid reports whether t is one of the known tags.
func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

// Next cycles Light → Dark → System → Light.
func (t Theme) Next() Theme {
	themes := Themes()
	for i, th := range themes {
		if th == t {
			return themes[(i+1)%len(themes)]
		}
	}
	return ThemeSystem
}

// ParseTheme accepts a raw tag case-insensitively.
func ParseTheme(s string) (Theme, error) {
	for _, th := range Themes() {
		if strings.EqualFold(string(th), strings.TrimSpace(s)) {
			return th, nil
		}
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

// Color is an sRGB color with alpha.
type Color struct {
	R, G, B, A uint8
}

// Hex renders the color as #RRGGBBAA.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// ParseColor accepts #RRGGBB or #RRGGBBAA, with or without the leading #.
func ParseColor(s string) (Color, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(raw) != 6 && len(raw) != 8 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	c := Color{R: b[0], G: b[1], B: b[2], A: 0xFF}
	if len(b) == 4 {
		c.A = b[3]
	}
	return c, nil
}

// Values is a full copy of every setting.
type Values struct {
	EnableNotifications bool
	AutoSave            bool
	MaxRecentItems      int
	SelectedTheme       Theme

	UseSystemAccentColor bool
	CustomAccentColor    Color
	ShowSidebar          bool
	SidebarWidth         float64

	EnableDebugMode   bool
	MaxCacheSize      int
	EnableAnalytics   bool
	DataRetentionDays int
}

// Bounds for numeric fields.
const (
	MinRecentItems = 5
	MaxRecentItems = 50

	MinSidebarWidth = 150.0
	MaxSidebarWidth = 400.0

	MinCacheSize = 10
	MaxCacheSize = 1000

	MinRetentionDays = 1
	MaxRetentionDays = 365
)

// Defaults returns the value of every field when nothing is persisted.
func Defaults() Values {
	return Values{
		EnableNotifications: true,
		AutoSave:            false,
		MaxRecentItems:      10,
		SelectedTheme:       ThemeSystem,

		UseSystemAccentColor: true,
		CustomAccentColor:    Color{R: 0x00, G: 0x7A, B: 0xFF, A: 0xFF},
		ShowSidebar:          true,
		SidebarWidth:         250,

		EnableDebugMode:   false,
		MaxCacheSize:      100,
		EnableAnalytics:   true,
		DataRetentionDays: 30,
	}
}

// normalize clamps bounded fields and replaces invalid values with defaults.
func (v Values) normalize() Values {
	d := Defaults()
	v.MaxRecentItems = clampInt(v.MaxRecentItems, MinRecentItems, MaxRecentItems)
	v.SidebarWidth = clampFloat(v.SidebarWidth, MinSidebarWidth, MaxSidebarWidth, d.SidebarWidth)
	v.MaxCacheSize = clampInt(v.MaxCacheSize, MinCacheSize, MaxCacheSize)
	v.DataRetentionDays = clampInt(v.DataRetentionDays, MinRetentionDays, MaxRetentionDays)
	if !v.SelectedTheme.Valid() {
		v.SelectedTheme = d.SelectedTheme
	}
	return v
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func clampFloat(v, lo, hi, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return math.Min(math.Max(v, lo), hi)
}

// field binds one setting to its persisted key.
type field struct {
	name   string
	group  Group
	encode func(Values) []byte
	decode func(*Values, []byte) error
	export func(Values) any
}

// key is the flat persistence key, e.g. "appearance.sidebarWidth".
func (f field) key() string {
	return f.group.String() + "." + f.name
}

func boolField(g Group, name string, ptr func(*Values) *bool) field {
	return field{
		name:   name,
		group:  g,
		encode: func(v Values) []byte { return strconv.AppendBool(nil, *ptr(&v)) },
		decode: func(v *Values, b []byte) error {
			parsed, err := strconv.ParseBool(string(b))
			if err != nil {
				return err
			}
			*ptr(v) = parsed
			return nil
		},
		export: func(v Values) any { return *ptr(&v) },
	}
}

func intField(g Group, name string, ptr func(*Values) *int) field {
	return field{
		name:   name,
		group:  g,
		encode: func(v Values) []byte { return strconv.AppendInt(nil, int64(*ptr(&v)), 10) },
		decode: func(v *Values, b []byte) error {
			parsed, err := strconv.Atoi(string(b))
			if err != nil {
				return err
			}
			*ptr(v) = parsed
			return nil
		},
		export: func(v Values) any { return *ptr(&v) },
	}
}

func floatField(g Group, name string, ptr func(*Values) *float64) field {
	return field{
		name:   name,
		group:  g,
		encode: func(v Values) []byte { return strconv.AppendFloat(nil, *ptr(&v), 'g', -1, 64) },
		decode: func(v *Values, b []byte) error {
			parsed, err := strconv.ParseFloat(string(b), 64)
			if err != nil {
				return err
			}
			*ptr(v) = parsed
			return nil
		},
		export: func(v Values) any { return *ptr(&v) },
	}
}

// fields is the persistence table. Order within a group is export order.
var fields = []field{
	boolField(General, "enableNotifications", func(v *Values) *bool { return &v.EnableNotifications }),
	boolField(General, "autoSave", func(v *Values) *bool { return &v.AutoSave }),
	intField(General, "maxRecentItems", func(v *Values) *int { return &v.MaxRecentItems }),
	{
		name:   "selectedTheme",
		group:  General,
		encode: func(v Values) []byte { return []byte(v.SelectedTheme) },
		decode: func(v *Values, b []byte) error {
			th := Theme(b)
			if !th.Valid() {
				return fmt.Errorf("unknown theme %q", b)
			}
			v.SelectedTheme = th
			return nil
		},
		export: func(v Values) any { return v.SelectedTheme },
	},

	boolField(Appearance, "useSystemAccentColor", func(v *Values) *bool { return &v.UseSystemAccentColor }),
	{
		name:   "customAccentColor",
		group:  Appearance,
		encode: func(v Values) []byte { return []byte(v.CustomAccentColor.Hex()) },
		decode: func(v *Values, b []byte) error {
			c, err := ParseColor(string(b))
			if err != nil {
				return err
			}
			v.CustomAccentColor = c
			return nil
		},
		export: func(v Values) any { return v.CustomAccentColor.Hex() },
	},
	boolField(Appearance, "showSidebar", func(v *Values) *bool { return &v.ShowSidebar }),
	floatField(Appearance, "sidebarWidth", func(v *Values) *float64 { return &v.SidebarWidth }),

	boolField(Advanced, "enableDebugMode", func(v *Values) *bool { return &v.EnableDebugMode }),
	intField(Advanced, "maxCacheSize", func(v *Values) *int { return &v.MaxCacheSize }),
	boolField(Advanced, "enableAnalytics", func(v *Values) *bool { return &v.EnableAnalytics }),
	intField(Advanced, "dataRetentionDays", func(v *Values) *int { return &v.DataRetentionDays }),
}

// Keys returns every persisted key.
func Keys() []string {
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.key()
	}
	return keys
}

// encodeGroup returns one entry per field in g.
func encodeGroup(v Values, g Group) map[string][]byte {
	entries := make(map[string][]byte)
	for _, f := range fields {
		if f.group == g {
			entries[f.key()] = f.encode(v)
		}
	}
	return entries
}
