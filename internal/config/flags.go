package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile = flag.String("log-file", "", "Write logs to this file as well")
	flagCells   = flag.Int("cells", 0, "Marching cubes cells for gen")
	flagSize    = flag.Float64("size", 0, "Primitive size for gen")
	flagLenient = flag.Bool("lenient", false, "Write meshes with out-of-range face indices")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments left after the global flags.
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
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagCells > 0 {
		cfg.Generate.Cells = *flagCells
	}
	if *flagSize > 0 {
		cfg.Generate.Size = *flagSize
	}
	if *flagLenient {
		cfg.Validate.Strict = false
	}
}
