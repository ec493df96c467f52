package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/ShelfCut/internal/geometry"
	"github.com/piwi3910/ShelfCut/internal/model"
)

// ProjectExt is the file extension used for saved projects.
const ProjectExt = ".shelfcut"

// SaveProject writes the project to path as indented JSON.
func SaveProject(path string, p model.Project) error {
	if err := writeJSON(path, p); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return nil
}

// LoadProject reads a project file. Fields missing from the file keep the
// values of model.NewProject, and the loaded geometry is validated.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("load project: %w", err)
	}
	p := model.NewProject()
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if p.Modules == nil {
		p.Modules = []model.ShelvingModule{}
	}
	if err := ValidateProject(p); err != nil {
		return model.Project{}, err
	}
	return p, nil
}

// ValidateProject checks the stock, the settings and every module against
// the project's hole settings.
func ValidateProject(p model.Project) error {
	if err := p.Stock.Validate(); err != nil {
		return err
	}
	if err := p.Settings.Validate(); err != nil {
		return err
	}
	for i, m := range p.Modules {
		if err := geometry.ValidateModule(m, fmt.Sprintf("module %d", i+1), p.Settings); err != nil {
			return err
		}
	}
	return nil
}

// NameFromPath derives a project name from its file name.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
