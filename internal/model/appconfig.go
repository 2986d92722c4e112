package model

// AppConfig holds application-wide preferences and editor defaults.
type AppConfig struct {
	// History and interaction
	MaxHistory      int     `json:"max_history"`        // retained undo steps
	AutoSaveDelayMs int     `json:"auto_save_delay_ms"` // debounce after object changes
	PaintDelayMs    int     `json:"paint_delay_ms"`     // hold time before drag-to-paint starts
	ZoomMin         float64 `json:"zoom_min"`
	ZoomMax         float64 `json:"zoom_max"`
	ZoomSensitivity float64 `json:"zoom_sensitivity"` // zoom *= 1 - deltaY*sensitivity

	// Defaults for new scenes
	ShowGrid     bool   `json:"show_grid"`
	DefaultColor string `json:"default_color"`

	// Application preferences
	RecentProjects []string `json:"recent_projects"`
	Theme          string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with the editor defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		MaxHistory:      30,
		AutoSaveDelayMs: 1000,
		PaintDelayMs:    500,
		ZoomMin:         0.1,
		ZoomMax:         5,
		ZoomSensitivity: 0.001,
		ShowGrid:        true,
		DefaultColor:    "#8b5cf6",
		RecentProjects:  []string{},
		Theme:           "system",
	}
}

// Normalize replaces out-of-range values with their defaults.
func (c AppConfig) Normalize() AppConfig {
	d := DefaultAppConfig()
	if c.MaxHistory <= 0 {
		c.MaxHistory = d.MaxHistory
	}
	if c.AutoSaveDelayMs < 0 {
		c.AutoSaveDelayMs = d.AutoSaveDelayMs
	}
	if c.PaintDelayMs < 0 {
		c.PaintDelayMs = d.PaintDelayMs
	}
	if c.ZoomMin <= 0 {
		c.ZoomMin = d.ZoomMin
	}
	if c.ZoomMax < c.ZoomMin {
		c.ZoomMax = d.ZoomMax
		if c.ZoomMax < c.ZoomMin {
			c.ZoomMax = c.ZoomMin
		}
	}
	if c.ZoomSensitivity <= 0 {
		c.ZoomSensitivity = d.ZoomSensitivity
	}
	if !ValidHexColor(c.DefaultColor) {
		c.DefaultColor = d.DefaultColor
	}
	if c.RecentProjects == nil {
		c.RecentProjects = []string{}
	}
	if c.Theme == "" {
		c.Theme = d.Theme
	}
	return c
}

// AddRecent moves id to the front of RecentProjects, keeping at most max entries.
func (c *AppConfig) AddRecent(id string, max int) {
	out := []string{id}
	for _, r := range c.RecentProjects {
		if r != id {
			out = append(out, r)
		}
	}
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	c.RecentProjects = out
}
