package settings

// General.

func (s *Store) EnableNotifications() bool { return s.Values().EnableNotifications }

func (s *Store) SetEnableNotifications(on bool) {
	s.mutate(General, func(v *Values) { v.EnableNotifications = on })
}

func (s *Store) AutoSave() bool { return s.Values().AutoSave }

func (s *Store) SetAutoSave(on bool) {
	s.mutate(General, func(v *Values) { v.AutoSave = on })
}

func (s *Store) MaxRecentItems() int { return s.Values().MaxRecentItems }

// SetMaxRecentItems clamps n to [MinRecentItems, MaxRecentItems].
func (s *Store) SetMaxRecentItems(n int) {
	s.mutate(General, func(v *Values) { v.MaxRecentItems = n })
}

// Appearance.

func (s *Store) SelectedTheme() Theme { return s.Values().SelectedTheme }

// SetSelectedTheme stores t; an unknown tag becomes ThemeSystem.
func (s *Store) SetSelectedTheme(t Theme) {
	s.mutate(General, func(v *Values) { v.SelectedTheme = t })
}

func (s *Store) UseSystemAccentColor() bool { return s.Values().UseSystemAccentColor }

func (s *Store) SetUseSystemAccentColor(on bool) {
	s.mutate(Appearance, func(v *Values) { v.UseSystemAccentColor = on })
}

func (s *Store) CustomAccentColor() Color { return s.Values().CustomAccentColor }

func (s *Store) SetCustomAccentColor(c Color) {
	s.mutate(Appearance, func(v *Values) { v.CustomAccentColor = c })
}

func (s *Store) ShowSidebar() bool { return s.Values().ShowSidebar }

func (s *Store) SetShowSidebar(on bool) {
	s.mutate(Appearance, func(v *Values) { v.ShowSidebar = on })
}

func (s *Store) SidebarWidth() float64 { return s.Values().SidebarWidth }

// SetSidebarWidth clamps w to [MinSidebarWidth, MaxSidebarWidth]; NaN
// restores the default.
func (s *Store) SetSidebarWidth(w float64) {
	s.mutate(Appearance, func(v *Values) { v.SidebarWidth = w })
}

// Advanced.

func (s *Store) EnableDebugMode() bool { return s.Values().EnableDebugMode }

func (s *Store) SetEnableDebugMode(on bool) {
	s.mutate(Advanced, func(v *Values) { v.EnableDebugMode = on })
}

func (s *Store) MaxCacheSize() int { return s.Values().MaxCacheSize }

// SetMaxCacheSize clamps n to [MinCacheSize, MaxCacheSize].
func (s *Store) SetMaxCacheSize(n int) {
	s.mutate(Advanced, func(v *Values) { v.MaxCacheSize = n })
}

func (s *Store) EnableAnalytics() bool { return s.Values().EnableAnalytics }

func (s *Store) SetEnableAnalytics(on bool) {
	s.mutate(Advanced, func(v *Values) { v.EnableAnalytics = on })
}

func (s *Store) DataRetentionDays() int { return s.Values().DataRetentionDays }

// SetDataRetentionDays clamps n to [MinRetentionDays, MaxRetentionDays].
func (s *Store) SetDataRetentionDays(n int) {
	s.mutate(Advanced, func(v *Values) { v.DataRetentionDays = n })
}
