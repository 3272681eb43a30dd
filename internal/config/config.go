// Package config handles generator configuration loading and management.
package config

// Config holds all generator settings.
type Config struct {
	Project ProjectConfig `yaml:"project"`
	Logging LoggingConfig `yaml:"logging"`
}

// ProjectConfig holds the target project and where materials go.
type ProjectConfig struct {
	Root            string `yaml:"root"`             // Project directory containing Assets/
	MaterialsFolder string `yaml:"materials_folder"` // Asset path of the output folder
	Shader          string `yaml:"shader"`           // Shader every preset binds to
	PresetsFile     string `yaml:"presets_file"`     // Optional preset table for "apply"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Project: ProjectConfig{
			Root:            ".",
			MaterialsFolder: "Assets/Materials",
			Shader:          "Standard",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
