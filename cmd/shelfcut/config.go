package main

import (
	"encoding/json"
	"fmt"

	"github.com/piwi3910/ShelfCut/internal/model"
	"github.com/piwi3910/ShelfCut/internal/project"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change defaults, stock presets and cutter profiles",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the configuration, inventory and custom profiles",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the defaults applied to new projects",
	Args:  cobra.NoArgs,
	RunE:  runConfigSet,
}

var configAddStockCmd = &cobra.Command{
	Use:   "add-stock <name> <WIDTHxHEIGHT>",
	Short: "Add a stock preset to the inventory",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigAddStock,
}

var configAddProfileCmd = &cobra.Command{
	Use:   "add-profile <file>",
	Short: "Import a cutter profile from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigAddProfile,
}

var configBackupCmd = &cobra.Command{
	Use:   "backup <file>",
	Short: "Write config, inventory and profiles to one file",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigBackup,
}

var configRestoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Replace config, inventory and profiles from a backup",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigRestore,
}

var (
	setStock        string
	setMargin       float64
	setHoleDiameter float64
	setEdgeOffset   float64
	setWood         float64
	setSteel        float64
	setPrice        float64
	setProfile      string
	setFormats      []string

	addStockThickness float64
	addStockPrice     float64
)

func init() {
	f := configSetCmd.Flags()
	f.StringVar(&setStock, "stock", "", "default stock size as WIDTHxHEIGHT in cm")
	f.Float64Var(&setMargin, "margin", 0, "clearance between pieces in cm")
	f.Float64Var(&setHoleDiameter, "hole-diameter", 0, "fastener hole diameter in cm")
	f.Float64Var(&setEdgeOffset, "edge-offset", 0, "distance from piece edge to outer holes in cm")
	f.Float64Var(&setWood, "wood-thickness", 0, "shelf board thickness in cm")
	f.Float64Var(&setSteel, "steel-thickness", 0, "upright sheet thickness in cm")
	f.Float64Var(&setPrice, "price", 0, "price per stock sheet")
	f.StringVar(&setProfile, "profile", "", "cutter profile name")
	f.StringSliceVar(&setFormats, "formats", nil, "default export formats")

	configAddStockCmd.Flags().Float64Var(&addStockThickness, "thickness", 0.3, "sheet thickness in cm")
	configAddStockCmd.Flags().Float64Var(&addStockPrice, "price", 0, "price per sheet")

	configCmd.AddCommand(configShowCmd, configSetCmd, configAddStockCmd, configAddProfileCmd, configBackupCmd, configRestoreCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	inv, invPath, err := project.LoadOrCreateInventory()
	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}
	profiles, err := project.LoadCustomProfiles(project.DefaultProfilesPath())
	if err != nil {
		return fmt.Errorf("load cutter profiles: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		ConfigPath    string                `json:"config_path"`
		InventoryPath string                `json:"inventory_path"`
		Config        model.AppConfig       `json:"config"`
		Inventory     model.Inventory       `json:"inventory"`
		Profiles      []string              `json:"profiles"`
		Custom        []model.CutterProfile `json:"custom_profiles"`
	}{configPath, invPath, appConfig, inv, model.GetProfileNames(), profiles})
}

func runConfigSet(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	cfg := appConfig
	if f.Changed("stock") {
		stock, err := parseStock(setStock)
		if err != nil {
			return err
		}
		cfg.DefaultStock = stock
	}
	if f.Changed("margin") {
		cfg.DefaultMargin = setMargin
	}
	if f.Changed("hole-diameter") {
		cfg.DefaultHoleDiameter = setHoleDiameter
	}
	if f.Changed("edge-offset") {
		cfg.DefaultEdgeOffset = setEdgeOffset
	}
	if f.Changed("wood-thickness") {
		cfg.DefaultWoodThickness = setWood
	}
	if f.Changed("steel-thickness") {
		cfg.DefaultSteelThickness = setSteel
	}
	if f.Changed("price") {
		cfg.DefaultPricePerSheet = setPrice
	}
	if f.Changed("profile") {
		cfg.DefaultCutterProfile = setProfile
	}
	if f.Changed("formats") {
		for _, name := range setFormats {
			if _, ok := exporters[name]; !ok {
				return fmt.Errorf("unknown format %q", name)
			}
		}
		cfg.ExportFormats = setFormats
	}

	// Check the defaults the way a new project would see them
	p := model.NewProject()
	cfg.ApplyToProject(&p)
	if err := project.ValidateProject(p); err != nil {
		return err
	}

	if err := project.SaveAppConfig(configPath, cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	appConfig = cfg
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", configPath)
	return err
}

func runConfigAddStock(cmd *cobra.Command, args []string) error {
	size, err := parseStock(args[1])
	if err != nil {
		return err
	}
	inv, path, err := project.LoadOrCreateInventory()
	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}
	if inv.FindStockByName(args[0]) != nil {
		return fmt.Errorf("stock preset %q already exists", args[0])
	}
	inv.Stocks = append(inv.Stocks, model.NewStockPreset(args[0], size.Width, size.Height, addStockThickness, addStockPrice))
	if err := project.SaveInventory(path, inv); err != nil {
		return fmt.Errorf("save inventory: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "added %s to %s\n", args[0], path)
	return err
}

func runConfigAddProfile(cmd *cobra.Command, args []string) error {
	path := project.DefaultProfilesPath()
	profiles, err := project.LoadCustomProfiles(path)
	if err != nil {
		return fmt.Errorf("load cutter profiles: %w", err)
	}
	profiles, err = project.ImportProfile(args[0], profiles)
	if err != nil {
		return err
	}
	if err := project.SaveCustomProfiles(path, profiles); err != nil {
		return fmt.Errorf("save cutter profiles: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d custom profile(s) in %s\n", len(profiles), path)
	return err
}

func runConfigBackup(cmd *cobra.Command, args []string) error {
	inv, _, err := project.LoadOrCreateInventory()
	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}
	profiles, err := project.LoadCustomProfiles(project.DefaultProfilesPath())
	if err != nil {
		return fmt.Errorf("load cutter profiles: %w", err)
	}
	if err := project.ExportAllData(args[0], appConfig, inv, profiles); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
	return err
}

func runConfigRestore(cmd *cobra.Command, args []string) error {
	backup, err := project.ImportAllData(args[0])
	if err != nil {
		return err
	}
	if err := project.SaveAppConfig(configPath, backup.Config); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	if err := project.SaveInventory(project.DefaultInventoryPath(), backup.Inventory); err != nil {
		return fmt.Errorf("save inventory: %w", err)
	}
	if err := project.SaveCustomProfiles(project.DefaultProfilesPath(), backup.Profiles); err != nil {
		return fmt.Errorf("save cutter profiles: %w", err)
	}
	appConfig = backup.Config
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "restored %s (backup from %s)\n", args[0], backup.CreatedAt)
	return err
}
