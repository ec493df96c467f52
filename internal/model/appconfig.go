package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new projects
	DefaultStock          StockSize `json:"default_stock"`
	DefaultWoodThickness  float64   `json:"default_wood_thickness"`
	DefaultSteelThickness float64   `json:"default_steel_thickness"`
	DefaultHoleDiameter   float64   `json:"default_hole_diameter"`
	DefaultEdgeOffset     float64   `json:"default_edge_offset"`
	DefaultMargin         float64   `json:"default_margin"`
	DefaultPricePerSheet  float64   `json:"default_price_per_sheet"`
	DefaultCutterProfile  string    `json:"default_cutter_profile"`

	// Application preferences
	RecentProjects []string `json:"recent_projects"`
	ExportFormats  []string `json:"export_formats"` // formats written by "export" when none are requested
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultStock:          DefaultStock(),
		DefaultWoodThickness:  defaults.WoodThickness,
		DefaultSteelThickness: defaults.SteelThickness,
		DefaultHoleDiameter:   defaults.HoleDiameter,
		DefaultEdgeOffset:     defaults.EdgeOffset,
		DefaultMargin:         defaults.Margin,
		DefaultPricePerSheet:  defaults.PricePerSheet,
		DefaultCutterProfile:  defaults.CutterProfile,
		RecentProjects:        []string{},
		ExportFormats:         []string{"dxf", "pdf", "xlsx"},
	}
}

// ApplyToProject copies the default values from AppConfig into a project.
// This is used when creating a new project so it inherits the user's saved defaults.
func (c AppConfig) ApplyToProject(p *Project) {
	p.Stock = c.DefaultStock
	p.Settings.WoodThickness = c.DefaultWoodThickness
	p.Settings.SteelThickness = c.DefaultSteelThickness
	p.Settings.HoleDiameter = c.DefaultHoleDiameter
	p.Settings.EdgeOffset = c.DefaultEdgeOffset
	p.Settings.Margin = c.DefaultMargin
	p.Settings.PricePerSheet = c.DefaultPricePerSheet
	p.Settings.CutterProfile = c.DefaultCutterProfile
}

// AddRecentProject moves path to the front of the recent list, keeping at
// most limit entries.
func (c *AppConfig) AddRecentProject(path string, limit int) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	c.RecentProjects = recent
}
