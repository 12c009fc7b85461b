package config

import (
	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyWindowWidth  = "window_width"
	KeyWindowHeight = "window_height"
)

const (
	DefaultWindowWidth  = 800
	DefaultWindowHeight = 600
	MinWindowWidth      = 400
	MinWindowHeight     = 300
)

// Settings stores per-user UI state in Fyne preferences.
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// WindowSize returns the last saved window size.
func (s *Settings) WindowSize() fyne.Size {
	prefs := s.app.Preferences()
	w := prefs.FloatWithFallback(KeyWindowWidth, DefaultWindowWidth)
	h := prefs.FloatWithFallback(KeyWindowHeight, DefaultWindowHeight)
	return fyne.NewSize(float32(w), float32(h))
}

// SetWindowSize stores size, clamped to the minimum usable window.
func (s *Settings) SetWindowSize(size fyne.Size) {
	w, h := size.Width, size.Height
	if w < MinWindowWidth {
		w = MinWindowWidth
	}
	if h < MinWindowHeight {
		h = MinWindowHeight
	}
	s.app.Preferences().SetFloat(KeyWindowWidth, float64(w))
	s.app.Preferences().SetFloat(KeyWindowHeight, float64(h))
}
