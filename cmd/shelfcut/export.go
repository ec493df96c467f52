package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/piwi3910/ShelfCut/internal/export"
	"github.com/piwi3910/ShelfCut/internal/gcode"
	"github.com/piwi3910/ShelfCut/internal/model"
	"github.com/piwi3910/ShelfCut/internal/project"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var exportCmd = &cobra.Command{
	Use:   "export <input>",
	Short: "Nest a job and write its cut files",
	Long: `Nests the job and writes the requested formats into the output directory.

Formats:
  dxf     one drawing per sheet, one per piece and a strip of every piece
  pdf     technical sheets with a summary page
  labels  QR piece labels
  xlsx    cut list workbook
  svg     one preview per sheet
  gcode   one cutting program per sheet
  json    the layout itself

Without --formats the export_formats list of the config file is used.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var (
	exportFlags   jobFlags
	exportOut     string
	exportFormats []string
)

func init() {
	exportFlags.register(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", ".", "output directory")
	exportCmd.Flags().StringSliceVarP(&exportFormats, "formats", "f", nil, "formats to write (comma separated)")

	rootCmd.AddCommand(exportCmd)
}

// exportJob is what every format writer receives.
type exportJob struct {
	dir      string
	name     string
	result   model.NestResult
	settings model.Settings
}

func (e exportJob) path(suffix string) string {
	return filepath.Join(e.dir, e.name+suffix)
}

type exportFunc func(ctx context.Context, e exportJob) ([]string, error)

var exporters = map[string]exportFunc{
	"dxf":    exportDXF,
	"pdf":    exportPDF,
	"labels": exportLabels,
	"xlsx":   exportXLSX,
	"svg":    exportSVG,
	"gcode":  exportGCode,
	"json":   exportJSON,
}

func runExport(cmd *cobra.Command, args []string) error {
	formats := append([]string{}, exportFormats...)
	if len(formats) == 0 {
		formats = append(formats, appConfig.ExportFormats...)
	}
	for i, f := range formats {
		formats[i] = strings.ToLower(strings.TrimSpace(f))
		if _, ok := exporters[formats[i]]; !ok {
			return fmt.Errorf("unknown format %q", f)
		}
	}

	j, err := loadJob(cmd, args[0], &exportFlags)
	if err != nil {
		return err
	}
	result, err := j.nest()
	if err != nil {
		return err
	}
	if len(result.Sheets) == 0 {
		return fmt.Errorf("%s has no pieces to export", args[0])
	}

	if err := os.MkdirAll(exportOut, 0755); err != nil {
		return err
	}
	name := j.Project.Name
	if name == "" {
		name = project.NameFromPath(args[0])
	}
	e := exportJob{
		dir:      exportOut,
		name:     name,
		result:   result,
		settings: j.Project.Settings,
	}

	// Formats write disjoint files, so they run in parallel
	written := make([][]string, len(formats))
	g, ctx := errgroup.WithContext(cmd.Context())
	for i, f := range formats {
		write := exporters[f]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			files, err := write(ctx, e)
			if err != nil {
				return fmt.Errorf("%s: %w", f, err)
			}
			written[i] = files
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var files []string
	for _, w := range written {
		files = append(files, w...)
	}
	sort.Strings(files)
	for _, f := range files {
		fmt.Fprintln(cmd.OutOrStdout(), f)
	}
	return nil
}

func placedPieces(result model.NestResult) []model.Piece {
	var pieces []model.Piece
	for _, s := range result.Sheets {
		for _, pl := range s.Placements {
			pieces = append(pieces, pl.Piece)
		}
	}
	return pieces
}

func exportDXF(ctx context.Context, e exportJob) ([]string, error) {
	var files []string
	for _, s := range e.result.Sheets {
		if err := ctx.Err(); err != nil {
			return files, err
		}
		path := e.path(fmt.Sprintf("_sheet_%d.dxf", s.Sequence))
		if err := export.ExportSheetDXF(path, s); err != nil {
			return files, err
		}
		files = append(files, path)
	}
	pieces := placedPieces(e.result)
	for _, p := range pieces {
		if err := ctx.Err(); err != nil {
			return files, err
		}
		path := e.path("_" + fileSafe(p.Label) + ".dxf")
		if err := export.ExportPieceDXF(path, p); err != nil {
			return files, err
		}
		files = append(files, path)
	}
	path := e.path("_pieces.dxf")
	if err := export.ExportStripDXF(path, pieces); err != nil {
		return files, err
	}
	return append(files, path), nil
}

// fileSafe maps a piece label onto characters that are safe in a file name.
func fileSafe(label string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, label)
}

func exportPDF(_ context.Context, e exportJob) ([]string, error) {
	path := e.path(".pdf")
	return []string{path}, export.ExportPDF(path, e.result, e.settings)
}

func exportLabels(_ context.Context, e exportJob) ([]string, error) {
	path := e.path("_labels.pdf")
	return []string{path}, export.ExportLabels(path, e.result)
}

func exportXLSX(_ context.Context, e exportJob) ([]string, error) {
	path := e.path(".xlsx")
	return []string{path}, export.ExportXLSX(path, e.result, e.settings)
}

func exportSVG(_ context.Context, e exportJob) ([]string, error) {
	return export.ExportSVG(e.dir, e.name, e.result)
}

func exportGCode(ctx context.Context, e exportJob) ([]string, error) {
	custom, err := project.LoadCustomProfiles(project.DefaultProfilesPath())
	if err != nil {
		return nil, fmt.Errorf("load cutter profiles: %w", err)
	}
	profile := model.ResolveProfile(e.settings.CutterProfile, custom)
	gen := gcode.NewWithProfile(e.settings, profile)

	var files []string
	for i, code := range gen.GenerateAll(e.result) {
		if err := ctx.Err(); err != nil {
			return files, err
		}
		seq := e.result.Sheets[i].Sequence
		path := e.path(fmt.Sprintf("_sheet_%d.nc", seq))
		if err := os.WriteFile(path, []byte(code), 0644); err != nil {
			return files, err
		}
		sum := gcode.Summarize(code)
		log.Printf("sheet %d: %d pierces, %.0f mm cut, about %.1f min (%s)",
			seq, sum.Pierces, sum.CutLength, sum.EstimatedMinutes, profile.Name)
		files = append(files, path)
	}
	return files, nil
}

func exportJSON(_ context.Context, e exportJob) ([]string, error) {
	path := e.path("_layout.json")
	data, err := json.MarshalIndent(e.result, "", "  ")
	if err != nil {
		return nil, err
	}
	return []string{path}, os.WriteFile(path, data, 0644)
}
