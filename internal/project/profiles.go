package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/ShelfCut/internal/model"
)

// DefaultProfilesPath returns the default file path for custom cutter profiles.
func DefaultProfilesPath() string {
	return filepath.Join(DefaultConfigDir(), "profiles.json")
}

// SaveCustomProfiles saves custom profiles to a JSON file.
func SaveCustomProfiles(path string, profiles []model.CutterProfile) error {
	return writeJSON(path, profiles)
}

// LoadCustomProfiles loads custom profiles from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadCustomProfiles(path string) ([]model.CutterProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.CutterProfile{}, nil
		}
		return nil, err
	}

	var profiles []model.CutterProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for i, p := range profiles {
		if err := checkProfile(p); err != nil {
			return nil, fmt.Errorf("profile %d: %w", i+1, err)
		}
	}
	return profiles, nil
}

// ImportProfile reads a single shared profile and adds it to the list,
// replacing a custom profile of the same name.
func ImportProfile(path string, profiles []model.CutterProfile) ([]model.CutterProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return profiles, err
	}

	var profile model.CutterProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return profiles, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := checkProfile(profile); err != nil {
		return profiles, err
	}

	for i := range profiles {
		if profiles[i].Name == profile.Name {
			profiles[i] = profile
			return profiles, nil
		}
	}
	return append(profiles, profile), nil
}

// checkProfile rejects profiles that would produce unusable programs.
func checkProfile(p model.CutterProfile) error {
	switch {
	case p.Name == "":
		return errors.New("profile has no name")
	case p.TorchOn == "" || p.TorchOff == "":
		return fmt.Errorf("profile %q: torch on/off commands are required", p.Name)
	case p.RapidMove == "" || p.FeedMove == "" || p.ArcCW == "":
		return fmt.Errorf("profile %q: motion commands are required", p.Name)
	}
	return nil
}
