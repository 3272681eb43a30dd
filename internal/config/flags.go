package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagRoot    = flag.String("root", "", "Project directory")
	flagFolder  = flag.String("folder", "", "Materials folder (asset path)")
	flagShader  = flag.String("shader", "", "Shader name")
	flagPresets = flag.String("presets", "", "Preset table file (YAML)")
	flagLogFile = flag.String("log-file", "", "Write logs to this file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagRoot != "" {
		cfg.Project.Root = *flagRoot
	}
	if *flagFolder != "" {
		cfg.Project.MaterialsFolder = *flagFolder
	}
	if *flagShader != "" {
		cfg.Project.Shader = *flagShader
	}
	if *flagPresets != "" {
		cfg.Project.PresetsFile = *flagPresets
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
