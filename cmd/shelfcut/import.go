package main

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/piwi3910/ShelfCut/internal/project"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Create a project from a module list or configurator export",
	Long:  "Reads modules from a CSV or Excel list or from a configurator JSON export and saves them as a project with the configured defaults.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var importOut string

func init() {
	importCmd.Flags().StringVarP(&importOut, "out", "o", "", "project file to write (default: input name with "+project.ProjectExt+")")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	in := args[0]
	if strings.EqualFold(filepath.Ext(in), ".dxf") {
		return errors.New("DXF drawings hold pieces, not modules; pass them to nest or export directly")
	}
	if strings.EqualFold(filepath.Ext(in), project.ProjectExt) {
		return fmt.Errorf("%s is already a project", in)
	}

	p, _, err := loadProject(in)
	if err != nil {
		return err
	}
	if err := project.ValidateProject(p); err != nil {
		return err
	}

	out := importOut
	if out == "" {
		out = strings.TrimSuffix(in, filepath.Ext(in)) + project.ProjectExt
	}
	if err := project.SaveProject(out, p); err != nil {
		return err
	}

	appConfig.AddRecentProject(out, 10)
	if err := project.SaveAppConfig(configPath, appConfig); err != nil {
		log.Printf("could not update recent projects: %v", err)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d module(s)\n", out, len(p.Modules))
	return err
}
