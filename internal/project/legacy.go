package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/piwi3910/ShelfCut/internal/model"
)

// Values the web configurator assumes for keys missing from a column.
const (
	legacyWidth   = 60.0
	legacyHeight  = 200.0
	legacyDepth   = 30.0
	legacyShelves = 4
)

// legacyColumn is one module as written by the web configurator. Saved
// files use "man"/"mh" while hand-written ones often use the long names,
// so both are accepted.
type legacyColumn struct {
	W          *float64  `json:"w"`
	H          *float64  `json:"h"`
	D          *float64  `json:"d"`
	R          *float64  `json:"r"`
	Man        bool      `json:"man"`
	Manual     bool      `json:"manual"`
	MH         []float64 `json:"mh"`
	ManHeights []float64 `json:"man_heights"`
}

type legacyConfig struct {
	NumColonne *int           `json:"num_colonne"`
	Cols       []legacyColumn `json:"cols"`
}

// ImportLegacy reads a configurator JSON file into a new project using the
// default stock and settings.
func ImportLegacy(path string) (model.Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Project{}, err
	}
	defer f.Close()

	modules, err := ParseLegacy(f)
	if err != nil {
		return model.Project{}, fmt.Errorf("%s: %w", path, err)
	}
	p := model.NewProject()
	p.Name = NameFromPath(path)
	p.Modules = modules
	return p, nil
}

// ParseLegacy decodes configurator JSON. num_colonne decides how many
// modules there are: extra columns are ignored and missing ones take the
// configurator defaults.
func ParseLegacy(r io.Reader) ([]model.ShelvingModule, error) {
	var cfg legacyConfig
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse configurator JSON: %w", err)
	}

	n := len(cfg.Cols)
	if cfg.NumColonne != nil {
		n = *cfg.NumColonne
	}
	if n <= 0 {
		return nil, errors.New("configurator file defines no modules")
	}

	modules := make([]model.ShelvingModule, 0, n)
	for i := 0; i < n; i++ {
		var col legacyColumn
		if i < len(cfg.Cols) {
			col = cfg.Cols[i]
		}
		m, err := col.module()
		if err != nil {
			return nil, fmt.Errorf("module %d: %w", i+1, err)
		}
		if err := m.Validate(fmt.Sprintf("module %d", i+1)); err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	return modules, nil
}

func (c legacyColumn) module() (model.ShelvingModule, error) {
	shelves := legacyShelves
	if c.R != nil {
		if *c.R < 0 || *c.R != math.Trunc(*c.R) {
			return model.ShelvingModule{}, fmt.Errorf("invalid shelf count %v", *c.R)
		}
		shelves = int(*c.R)
	}
	m := model.NewShelvingModule(orDefault(c.W, legacyWidth), orDefault(c.D, legacyDepth), orDefault(c.H, legacyHeight), shelves)

	heights := c.ManHeights
	if heights == nil {
		heights = c.MH
	}
	// A manual column without heights falls back to even spacing
	if (c.Man || c.Manual) && len(heights) > 0 {
		m.Manual = true
		m.ShelfHeights = append([]float64{}, heights...)
		m.Shelves = len(heights)
	}
	return m, nil
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
