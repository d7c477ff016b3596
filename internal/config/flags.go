package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile  = flag.String("log", "", "Write logs to this file")
	flagMesh     = flag.String("mesh", "", "Mesh file (.obj or .glb); default is a generated sphere")
	flagShader   = flag.String("shader", "", "Planet shader: rocky, gasgiant, crystal, nebula, metallic")
	flagFPS      = flag.Int("fps", 0, "Target FPS")
	flagWorkers  = flag.Int("workers", -1, "Render bands drawn in parallel (0 = one per CPU)")
	flagBg       = flag.String("bg", "", "Background color (R,G,B)")
	flagWidth    = flag.Int("width", 0, "Snapshot width")
	flagHeight   = flag.Int("height", 0, "Snapshot height")
	flagSnapshot = flag.String("snapshot", "", "Render one frame to this PNG and exit")
	flagTime     = flag.Float64("time", 0, "Scene time in seconds for -snapshot")
	flagSave     = flag.Bool("save-config", false, "Write the effective config to the config directory and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// SnapshotPath returns the -snapshot output path, empty for the
// interactive viewer.
func SnapshotPath() string {
	return *flagSnapshot
}

// SnapshotTime returns the -time value.
func SnapshotTime() float64 {
	return *flagTime
}

// SaveRequested reports whether -save-config was given.
func SaveRequested() bool {
	return *flagSave
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagMesh != "" {
		cfg.Scene.Mesh = *flagMesh
	}
	if *flagShader != "" {
		cfg.Scene.Shader = *flagShader
	}
	if *flagFPS > 0 {
		cfg.Render.FPS = *flagFPS
	}
	if *flagWorkers >= 0 {
		cfg.Render.Workers = *flagWorkers
	}
	if *flagBg != "" {
		cfg.Render.Background = *flagBg
	}
	if *flagWidth > 0 {
		cfg.Render.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Render.Height = *flagHeight
	}
}
