// Package theme persists the display theme preference.
package theme

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/sumith1510/commodities-manager/internal/models"
	"github.com/sumith1510/commodities-manager/internal/storage"
)

// themeKey names the persisted theme record.
const themeKey = "cm_theme_v1"

// Manager owns the theme preference, defaulting to light when no usable
// record exists.
type Manager struct {
	store   *storage.Store
	log     *zap.Logger
	current models.Theme
}

// NewManager loads the persisted theme, falling back to light when the
// record is absent or unrecognized.
func NewManager(store *storage.Store, log *zap.Logger) *Manager {
	m := &Manager{store: store, log: log, current: models.ThemeLight}

	if data, ok := store.Read(themeKey); ok {
		var stored models.Theme
		if err := json.Unmarshal(data, &stored); err == nil &&
			(stored == models.ThemeLight || stored == models.ThemeDark) {
			m.current = stored
		} else {
			log.Warn("theme record unrecognized, defaulting to light")
		}
	}
	return m
}

// Current returns the active theme.
func (m *Manager) Current() models.Theme {
	return m.current
}

// Toggle switches between light and dark, persists the choice, and
// returns the new theme.
func (m *Manager) Toggle() models.Theme {
	if m.current == models.ThemeDark {
		m.current = models.ThemeLight
	} else {
		m.current = models.ThemeDark
	}

	data, _ := json.Marshal(m.current)
	if err := m.store.Write(themeKey, data); err != nil {
		m.log.Warn("failed to persist theme", zap.Error(err))
	}
	return m.current
}
