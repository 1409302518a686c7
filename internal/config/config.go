// Package config handles offtool configuration loading and management.
package config

// Config holds all offtool settings.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Encode   EncodeConfig   `yaml:"encode"`
	Generate GenerateConfig `yaml:"generate"`
	Validate ValidateConfig `yaml:"validate"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// EncodeConfig holds OFF output settings.
type EncodeConfig struct {
	Comments []string `yaml:"comments"` // '#' lines written after the header
}

// GenerateConfig holds primitive mesh generation settings.
type GenerateConfig struct {
	Cells int     `yaml:"cells"` // marching cubes resolution
	Size  float64 `yaml:"size"`  // primitive size in model units
}

// ValidateConfig holds mesh validation settings.
type ValidateConfig struct {
	Strict bool `yaml:"strict"` // reject out-of-range face indices before writing
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Encode: EncodeConfig{
			Comments: nil,
		},
		Generate: GenerateConfig{
			Cells: 64,
			Size:  1,
		},
		Validate: ValidateConfig{
			Strict: true,
		},
	}
}
