package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging and frame stats")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagCatalog    = flag.String("catalog", "", "Path to a YAML body catalog")
	flagWatch      = flag.Bool("watch", false, "Rebuild bodies when the catalog file changes")
	flagAssets     = flag.String("assets", "", "Directory asset paths are resolved against")
	flagWriteCat   = flag.String("write-catalog", "", "Write the built-in catalog to this path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteCatalogPath returns the --write-catalog target, or "" when not set.
func WriteCatalogPath() string {
	return *flagWriteCat
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Debug.ShowStats = true
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagCatalog != "" {
		cfg.Scene.CatalogPath = *flagCatalog
	}
	if *flagWatch {
		cfg.Scene.WatchCatalog = true
	}
	if *flagAssets != "" {
		cfg.Assets.Root = *flagAssets
	}
}
