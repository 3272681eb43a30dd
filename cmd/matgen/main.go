// matgen creates material preset assets in a project's Assets folder.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/matgen/internal/assets"
	"github.com/Faultbox/matgen/internal/config"
	"github.com/Faultbox/matgen/internal/logger"
	"github.com/Faultbox/matgen/internal/preset"
	"github.com/Faultbox/matgen/pkg/material"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, os.Stderr, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := args[0]
	rest := args[1:]

	switch command {
	case "glass":
		err = cmdGlass(cfg)
	case "apply":
		err = cmdApply(cfg)
	case "list", "ls":
		err = cmdList(cfg)
	case "export":
		err = cmdExport(cfg)
	case "show":
		err = cmdShow(cfg, rest)
	case "init-config":
		err = cmdInitConfig(cfg, rest)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`matgen - material preset generator

Usage:
  matgen [flags] <command> [args]

Commands:
  glass                    Create the clear, tinted and frosted glass materials
  apply                    Create the materials listed in the -presets file
  list                     Print the preset table (glass, or -presets)
  export                   Print the preset table as a -presets file
  show <Assets/...mat>     Print a material asset's settings
  init-config [path]       Write the effective config (default: user config dir)

Flags:
  -config <file>           Config file (default: ./matgen.yaml)
  -root <dir>              Project directory containing Assets/
  -folder <asset path>     Output folder (default: Assets/Materials)
  -shader <name>           Shader to bind (default: Standard)
  -presets <file>          Preset table (YAML)
  -log-file <file>         Also write logs to this file
  -debug                   Enable debug logging

Examples:
  matgen glass
  matgen -root ~/game -folder Assets/Art/Glass glass
  matgen -presets windows.yaml apply
  matgen show Assets/Materials/Glass_Clear.mat`)
}

func cmdGlass(cfg *config.Config) error {
	if cfg.Project.PresetsFile != "" {
		logger.Warn("ignoring presets file for glass", zap.String("file", cfg.Project.PresetsFile))
	}
	if err := run(cfg, preset.Glass()); err != nil {
		return err
	}
	logger.Info("Glass materials created successfully!")
	return nil
}

func cmdApply(cfg *config.Config) error {
	if cfg.Project.PresetsFile == "" {
		return fmt.Errorf("apply needs a preset table: use -presets <file>")
	}
	presets, err := preset.LoadFile(cfg.Project.PresetsFile)
	if err != nil {
		return err
	}
	return run(cfg, presets)
}

func run(cfg *config.Config, presets []preset.Preset) error {
	store, err := assets.Open(cfg.Project.Root)
	if err != nil {
		return err
	}

	app := preset.NewApplicator(store, material.Builtins{}, cfg.Project.Shader)
	if _, err := app.Apply(cfg.Project.MaterialsFolder, presets); err != nil {
		return err
	}

	fmt.Println("Selected:")
	for _, p := range store.Selection() {
		fmt.Printf("  %s\n", p)
	}
	return nil
}

func loadPresets(cfg *config.Config) ([]preset.Preset, error) {
	if cfg.Project.PresetsFile == "" {
		return preset.Glass(), nil
	}
	return preset.LoadFile(cfg.Project.PresetsFile)
}

func cmdList(cfg *config.Config) error {
	presets, err := loadPresets(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("%-16s %-28s %-8s %-10s %-6s %s\n", "NAME", "COLOR", "METALLIC", "GLOSSINESS", "QUEUE", "BLEND")
	for _, p := range presets {
		color := fmt.Sprintf("(%g, %g, %g, %g)", p.Color[0], p.Color[1], p.Color[2], p.Color[3])
		fmt.Printf("%-16s %-28s %-8g %-10g %-6d %s\n", p.Name, color, p.Metallic, p.Glossiness, p.RenderQueue, p.BlendMode)
	}
	return nil
}

func cmdExport(cfg *config.Config) error {
	presets, err := loadPresets(cfg)
	if err != nil {
		return err
	}
	data, err := preset.Marshal(presets)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func cmdShow(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: matgen show <Assets/...mat>")
	}

	store, err := assets.Open(cfg.Project.Root)
	if err != nil {
		return err
	}
	m, err := store.LoadMaterial(args[0])
	if err != nil {
		return err
	}
	guid, err := store.GUID(args[0])
	if err != nil {
		guid = "(no meta)"
	}

	shader := m.Shader.Name
	if shader == "" {
		shader = fmt.Sprintf("fileID %d guid %s", m.Shader.FileID, m.Shader.GUID)
	}

	fmt.Printf("Material: %s\n", m.Name)
	fmt.Printf("GUID:     %s\n", guid)
	fmt.Printf("Shader:   %s\n", shader)
	fmt.Printf("Queue:    %d\n", m.RenderQueue)
	fmt.Printf("Blend:    %s\n", preset.BlendModeOf(m))
	fmt.Printf("Keywords: %s\n", strings.Join(m.Keywords(), " "))
	fmt.Println()
	fmt.Println("Floats:")
	for _, name := range m.FloatNames() {
		v, _ := m.Float(name)
		fmt.Printf("  %-20s %g\n", name, v)
	}
	fmt.Println("Colors:")
	for _, name := range m.ColorNames() {
		c, _ := m.Color(name)
		fmt.Printf("  %-20s (%g, %g, %g, %g)\n", name, c[0], c[1], c[2], c[3])
	}
	return nil
}

func cmdInitConfig(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", filepath.Join(config.ConfigDir(), config.FileName))
		return nil
	}
	if err := cfg.SaveTo(args[0]); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", args[0])
	return nil
}
