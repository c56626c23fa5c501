package sitegen

import "context"

// Setting keys and hardcoded defaults consumed by the materializers. Other
// keys may exist in the table but are not embedded into generated files.
const (
	settingSiteName        = "site_name"
	settingSiteDescription = "site_description"
	settingPrimaryColor    = "primary_color"
	settingSecondaryColor  = "secondary_color"

	defaultSiteName       = "كسرة - Kasrah"
	defaultAuthor         = "كسرة - Kasrah"
	defaultArticleTitle   = "مقال جديد"
	defaultPrimaryColor   = "#1e3a8a"
	defaultSecondaryColor = "#3b82f6"
)

// siteSettings reads the full settings table into a flat map. There is no
// cache: every materialization sees the latest values. On a storage error it
// logs and returns an empty map; callers fall back to the documented default
// for any missing key.
func (g *Generator) siteSettings(ctx context.Context) map[string]string {
	settings := map[string]string{}
	rows, err := g.settings.GetAllSettings(ctx)
	if err != nil {
		g.log.Error(err, "failed to load site settings, using defaults")
		return settings
	}
	for _, row := range rows {
		// Key is unique by storage constraint; last-read-wins if that is
		// ever violated upstream.
		settings[row.Key] = row.Value
	}
	return settings
}

// settingOr returns settings[key] or the given default when the key is
// missing or empty.
func settingOr(settings map[string]string, key, def string) string {
	if v := settings[key]; v != "" {
		return v
	}
	return def
}

// settingsReplacements maps the settings-derived placeholders shared by the
// article and homepage templates.
func (g *Generator) settingsReplacements(settings map[string]string) map[string]string {
	return map[string]string{
		"SITE_URL":         g.siteURL,
		"SITE_NAME":        settingOr(settings, settingSiteName, defaultSiteName),
		"SITE_DESCRIPTION": settingOr(settings, settingSiteDescription, ""),
		"PRIMARY_COLOR":    settingOr(settings, settingPrimaryColor, defaultPrimaryColor),
		"SECONDARY_COLOR":  settingOr(settings, settingSecondaryColor, defaultSecondaryColor),
	}
}
