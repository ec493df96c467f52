package model

// CutterProfile defines a post-processor configuration for a plasma or
// laser cutting table controller.
type CutterProfile struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// Startup codes
	StartCode []string `json:"start_code"` // Commands at start of file
	TorchOn   string   `json:"torch_on"`   // Beam/torch on command
	TorchOff  string   `json:"torch_off"`  // Beam/torch off command
	Dwell     string   `json:"dwell"`      // Pierce dwell command, %s receives the delay

	// Motion
	RapidMove string `json:"rapid_move"` // G0 or equivalent
	FeedMove  string `json:"feed_move"`  // G1 or equivalent
	ArcCW     string `json:"arc_cw"`     // G2 or equivalent

	// End codes
	EndCode []string `json:"end_code"`

	// Comment style
	CommentPrefix string `json:"comment_prefix"`
	CommentSuffix string `json:"comment_suffix"`

	DecimalPlaces int `json:"decimal_places"`
}

// Built-in cutter profiles
var CutterProfiles = []CutterProfile{
	{
		Name:          "Grbl",
		Description:   "Grbl-based plasma tables (torch on spindle output)",
		StartCode:     []string{"G90", "G21", "G17"},
		TorchOn:       "M3 S1000",
		TorchOff:      "M5",
		Dwell:         "G4 P%s",
		RapidMove:     "G0",
		FeedMove:      "G1",
		ArcCW:         "G2",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
	{
		Name:          "LinuxCNC",
		Description:   "LinuxCNC with plasmac configuration",
		StartCode:     []string{"G90", "G21", "G17", "G64 P0.1"},
		TorchOn:       "M3 $0 S1",
		TorchOff:      "M5 $0",
		Dwell:         "G4 P%s",
		RapidMove:     "G0",
		FeedMove:      "G1",
		ArcCW:         "G2",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M2"},
		CommentPrefix: "(",
		CommentSuffix: ")",
		DecimalPlaces: 4,
	},
	{
		Name:          "Generic",
		Description:   "Generic standard GCode",
		StartCode:     []string{"G90", "G21"},
		TorchOn:       "M3",
		TorchOff:      "M5",
		Dwell:         "G4 P%s",
		RapidMove:     "G0",
		FeedMove:      "G1",
		ArcCW:         "G2",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
}

// GetProfile returns a cutter profile by name, or the Generic profile if not found.
func GetProfile(name string) CutterProfile {
	for _, p := range CutterProfiles {
		if p.Name == name {
			return p
		}
	}
	return CutterProfiles[len(CutterProfiles)-1] // Generic
}

// GetProfileNames returns a list of all available profile names.
func GetProfileNames() []string {
	var names []string
	for _, p := range CutterProfiles {
		names = append(names, p.Name)
	}
	return names
}

// ResolveProfile looks the name up among the custom profiles first, then
// the built-in ones.
func ResolveProfile(name string, custom []CutterProfile) CutterProfile {
	for _, p := range custom {
		if p.Name == name {
			return p
		}
	}
	return GetProfile(name)
}
