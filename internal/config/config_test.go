package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Project.Root != "." {
		t.Errorf("expected root '.', got %s", cfg.Project.Root)
	}
	if cfg.Project.MaterialsFolder != "Assets/Materials" {
		t.Errorf("expected materials folder Assets/Materials, got %s", cfg.Project.MaterialsFolder)
	}
	if cfg.Project.Shader != "Standard" {
		t.Errorf("expected shader Standard, got %s", cfg.Project.Shader)
	}
	if cfg.Project.PresetsFile != "" {
		t.Errorf("expected no presets file, got %s", cfg.Project.PresetsFile)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
project:
  root: "/work/game"
  materials_folder: "Assets/Art/Glass"
  shader: "Standard (Specular setup)"
  presets_file: "presets.yaml"

logging:
  level: "debug"
  log_file: "matgen.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Project.Root != "/work/game" {
		t.Errorf("expected root /work/game, got %s", cfg.Project.Root)
	}
	if cfg.Project.MaterialsFolder != "Assets/Art/Glass" {
		t.Errorf("expected folder Assets/Art/Glass, got %s", cfg.Project.MaterialsFolder)
	}
	if cfg.Project.Shader != "Standard (Specular setup)" {
		t.Errorf("expected specular shader, got %s", cfg.Project.Shader)
	}
	if cfg.Project.PresetsFile != "presets.yaml" {
		t.Errorf("expected presets.yaml, got %s", cfg.Project.PresetsFile)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "matgen.log" {
		t.Errorf("expected log file 'matgen.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	if err := os.WriteFile(configPath, []byte("logging:\n  level: warn\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Unset keys keep their defaults.
	if cfg.Project.MaterialsFolder != "Assets/Materials" {
		t.Errorf("expected default folder, got %s", cfg.Project.MaterialsFolder)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level 'warn', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
project:
  root: [unclosed
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/matgen.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty root", func(c *Config) { c.Project.Root = "" }},
		{"empty folder", func(c *Config) { c.Project.MaterialsFolder = "" }},
		{"empty shader", func(c *Config) { c.Project.Shader = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if filepath.Base(dir) != "matgen" {
		t.Errorf("expected ConfigDir to end in matgen, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", filepath.Join(tmpDir, "home"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, FileName)
	if err := os.WriteFile(configPath, []byte("project:\n  root: game\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Errorf("expected to find %s in current directory", FileName)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "root flag",
			setup: func() { *flagRoot = "/projects/demo" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Project.Root != "/projects/demo" {
					t.Errorf("expected root /projects/demo, got %s", cfg.Project.Root)
				}
			},
			teardown: func() { *flagRoot = "" },
		},
		{
			name:  "folder flag",
			setup: func() { *flagFolder = "Assets/Glass" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Project.MaterialsFolder != "Assets/Glass" {
					t.Errorf("expected folder Assets/Glass, got %s", cfg.Project.MaterialsFolder)
				}
			},
			teardown: func() { *flagFolder = "" },
		},
		{
			name:  "shader and presets flags",
			setup: func() { *flagShader = "Standard (Specular setup)"; *flagPresets = "glass.yaml" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Project.Shader != "Standard (Specular setup)" {
					t.Errorf("expected specular shader, got %s", cfg.Project.Shader)
				}
				if cfg.Project.PresetsFile != "glass.yaml" {
					t.Errorf("expected presets glass.yaml, got %s", cfg.Project.PresetsFile)
				}
			},
			teardown: func() { *flagShader = ""; *flagPresets = "" },
		},
		{
			name:  "log file flag",
			setup: func() { *flagLogFile = "out.log" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.LogFile != "out.log" {
					t.Errorf("expected log file out.log, got %s", cfg.Logging.LogFile)
				}
			},
			teardown: func() { *flagLogFile = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
project:
  root: "/from/file"
  materials_folder: "Assets/FromFile"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagRoot = "/from/flag"
	defer func() {
		*flagConfig = ""
		*flagRoot = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Project.Root != "/from/flag" {
		t.Errorf("expected root /from/flag from flag, got %s", cfg.Project.Root)
	}
	if cfg.Project.MaterialsFolder != "Assets/FromFile" {
		t.Errorf("expected folder Assets/FromFile from file, got %s", cfg.Project.MaterialsFolder)
	}
	if cfg.Project.Shader != "Standard" {
		t.Errorf("expected default shader, got %s", cfg.Project.Shader)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default()
	cfg.Project.MaterialsFolder = "Assets/Saved"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Project.MaterialsFolder != "Assets/Saved" {
		t.Errorf("expected folder Assets/Saved, got %s", loaded.Project.MaterialsFolder)
	}
}
