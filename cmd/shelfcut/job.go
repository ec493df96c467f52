package main

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/ShelfCut/internal/engine"
	"github.com/piwi3910/ShelfCut/internal/geometry"
	"github.com/piwi3910/ShelfCut/internal/importer"
	"github.com/piwi3910/ShelfCut/internal/model"
	"github.com/piwi3910/ShelfCut/internal/project"
	"github.com/spf13/cobra"
)

// job is a loaded project together with the pieces to nest.
type job struct {
	Project model.Project
	Pieces  []model.Piece
	Preset  *model.StockPreset // set when --preset picked the stock
}

// jobFlags are the stock and process overrides shared by the commands that
// nest a job.
type jobFlags struct {
	stock  string
	preset string
	margin float64
}

func (f *jobFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.stock, "stock", "", "stock size as WIDTHxHEIGHT in cm")
	cmd.Flags().StringVar(&f.preset, "preset", "", "stock preset name from the inventory")
	cmd.Flags().Float64Var(&f.margin, "margin", 0, "clearance between pieces in cm")
}

// parseStock reads a size such as "300x150".
func parseStock(s string) (model.StockSize, error) {
	parts := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == 'x' || r == '*'
	})
	if len(parts) != 2 {
		return model.StockSize{}, fmt.Errorf("invalid stock size %q, want WIDTHxHEIGHT", s)
	}
	var dims [2]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return model.StockSize{}, fmt.Errorf("invalid stock size %q: %w", s, err)
		}
		dims[i] = v
	}
	stock := model.StockSize{Label: s, Width: dims[0], Height: dims[1]}
	if err := stock.Validate(); err != nil {
		return model.StockSize{}, err
	}
	return stock, nil
}

// importIssues logs import warnings and turns import errors into one error.
// A job is never built from a partially imported file.
func importIssues(path string, errs, warnings []string) error {
	for _, w := range warnings {
		log.Printf("%s: %s", filepath.Base(path), w)
	}
	if len(errs) > 0 {
		return fmt.Errorf("import %s: %s", path, strings.Join(errs, "; "))
	}
	return nil
}

// isLegacyJSON reports whether data looks like a configurator export
// rather than a saved project.
func isLegacyJSON(data []byte) bool {
	return bytes.Contains(data, []byte(`"cols"`)) || bytes.Contains(data, []byte(`"num_colonne"`))
}

// loadProject reads any supported input. DXF drawings yield pieces
// directly; every other format yields modules.
func loadProject(path string) (model.Project, []model.Piece, error) {
	p := model.NewProject()
	appConfig.ApplyToProject(&p)
	p.Name = project.NameFromPath(path)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case project.ProjectExt:
		loaded, err := project.LoadProject(path)
		return loaded, nil, err

	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return p, nil, err
		}
		if !isLegacyJSON(data) {
			loaded, err := project.LoadProject(path)
			return loaded, nil, err
		}
		legacy, err := project.ImportLegacy(path)
		if err != nil {
			return p, nil, err
		}
		p.Modules = legacy.Modules
		return p, nil, nil

	case ".csv":
		res := importer.ImportCSV(path)
		if err := importIssues(path, res.Errors, res.Warnings); err != nil {
			return p, nil, err
		}
		p.Modules = res.Modules
		return p, nil, nil

	case ".xlsx":
		res := importer.ImportExcel(path)
		if err := importIssues(path, res.Errors, res.Warnings); err != nil {
			return p, nil, err
		}
		p.Modules = res.Modules
		return p, nil, nil

	case ".dxf":
		res := importer.ImportDXF(path)
		if err := importIssues(path, res.Errors, res.Warnings); err != nil {
			return p, nil, err
		}
		return p, res.Pieces, nil

	default:
		return p, nil, fmt.Errorf("unsupported input %q (want %s, .json, .csv, .xlsx or .dxf)", ext, project.ProjectExt)
	}
}

// loadJob reads the input, applies the command-line overrides and derives
// the pieces.
func loadJob(cmd *cobra.Command, path string, f *jobFlags) (job, error) {
	p, pieces, err := loadProject(path)
	if err != nil {
		return job{}, err
	}
	j := job{Project: p}

	switch {
	case f.stock != "" && f.preset != "":
		return job{}, errors.New("--stock and --preset are mutually exclusive")
	case f.stock != "":
		stock, err := parseStock(f.stock)
		if err != nil {
			return job{}, err
		}
		j.Project.Stock = stock
	case f.preset != "":
		inv, _, err := project.LoadOrCreateInventory()
		if err != nil {
			return job{}, fmt.Errorf("load inventory: %w", err)
		}
		preset := inv.FindStockByName(f.preset)
		if preset == nil {
			return job{}, fmt.Errorf("no stock preset named %q (have: %s)", f.preset, strings.Join(inv.StockNames(), ", "))
		}
		j.Project.Stock = preset.ToStockSize()
		j.Preset = preset
		if preset.Thickness > 0 {
			j.Project.Settings.SteelThickness = preset.Thickness
		}
		if preset.PricePerSheet > 0 {
			j.Project.Settings.PricePerSheet = preset.PricePerSheet
		}
	}
	if cmd.Flags().Changed("margin") {
		j.Project.Settings.Margin = f.margin
	}
	if err := j.Project.Settings.Validate(); err != nil {
		return job{}, err
	}

	if pieces == nil {
		pieces, err = geometry.DeriveJob(j.Project.Modules, j.Project.Settings)
		if err != nil {
			return job{}, err
		}
	} else {
		// Drawings carry no material thickness
		for i := range pieces {
			pieces[i].Thickness = j.Project.Settings.SteelThickness
		}
	}
	j.Pieces = pieces
	log.Printf("%s: %d module(s), %d piece(s)", filepath.Base(path), len(j.Project.Modules), len(j.Pieces))
	return j, nil
}

// nest lays the job out on its stock.
func (j job) nest() (model.NestResult, error) {
	result, err := engine.New(j.Project.Settings).Nest(j.Pieces, j.Project.Stock)
	var tooLarge *model.PieceTooLargeError
	if errors.As(err, &tooLarge) {
		return result, fmt.Errorf("%w (try a larger --stock or shelfcut compare)", err)
	}
	return result, err
}
