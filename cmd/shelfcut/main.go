// Command shelfcut derives the sheet-metal uprights of a shelving unit,
// nests them on stock sheets and writes the files the shop needs: DXF cut
// drawings, PDF sheets, QR labels, an XLSX cut list, SVG previews and
// cutting programs.
//
// Build:
//
//	go build -o shelfcut ./cmd/shelfcut
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/piwi3910/ShelfCut/internal/model"
	"github.com/piwi3910/ShelfCut/internal/project"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// appConfig is loaded before every command runs
	appConfig model.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "shelfcut",
	Short: "Shelving upright nesting and cut file generator",
	Long: `ShelfCut turns shelving module descriptions into the sheet-metal uprights
that hold the shelves, lays them out on stock sheets and writes cut files.

Jobs are read from a saved project (.shelfcut), a configurator export (.json),
a module list (.csv, .xlsx) or a previously exported drawing (.dxf).

Examples:
  shelfcut nest kitchen.shelfcut                       # Lay out and list sheets
  shelfcut export moby.json --out cut --formats dxf,gcode
  shelfcut compare modules.csv                         # Try every stock preset
  shelfcut quote kitchen.shelfcut --price 38.50
  shelfcut import modules.xlsx --out kitchen.shelfcut`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		log.SetPrefix("shelfcut: ")
		log.SetFlags(0)
		if verbose {
			log.SetOutput(os.Stderr)
		} else {
			log.SetOutput(io.Discard)
		}

		if configPath == "" {
			configPath = project.DefaultConfigPath()
		}
		cfg, err := project.LoadAppConfig(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		appConfig = cfg
		log.Printf("config %s", configPath)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $"+project.HomeEnv+"/config.json or ~/.shelfcut/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
