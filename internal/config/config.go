// Package config handles viewer configuration loading and management.
package config

import "math"

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Controls ControlsConfig `yaml:"controls"`
	Scene    SceneConfig    `yaml:"scene"`
	Assets   AssetsConfig   `yaml:"assets"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	MSAA       int  `yaml:"msaa"` // Multisample count, 0 disables antialiasing
	HighDPI    bool `yaml:"high_dpi"`
}

// CameraConfig holds perspective camera settings.
type CameraConfig struct {
	FOV      float32 `yaml:"fov"` // Vertical field of view in degrees
	Near     float32 `yaml:"near"`
	Far      float32 `yaml:"far"`
	Distance float32 `yaml:"distance"` // Initial distance from the controls target
}

// ControlsConfig holds orbit controls settings.
// Angles are in radians.
type ControlsConfig struct {
	EnablePan     bool    `yaml:"enable_pan"`
	EnableZoom    bool    `yaml:"enable_zoom"`
	EnableDamping bool    `yaml:"enable_damping"`
	DampingFactor float32 `yaml:"damping_factor"`
	RotateSpeed   float32 `yaml:"rotate_speed"`
	ZoomSpeed     float32 `yaml:"zoom_speed"`
	MinDistance   float32 `yaml:"min_distance"`
	MaxDistance   float32 `yaml:"max_distance"`
	MinPolarAngle float32 `yaml:"min_polar_angle"`
	MaxPolarAngle float32 `yaml:"max_polar_angle"`
	MinAzimuth    float32 `yaml:"min_azimuth_angle"`
	MaxAzimuth    float32 `yaml:"max_azimuth_angle"`
	AzimuthStep   float32 `yaml:"azimuth_step"` // Bounds rotation applied when a body is clicked
}

// SceneConfig holds layout, body and interaction settings.
type SceneConfig struct {
	RingRadius      float32 `yaml:"ring_radius"`
	BaseSize        float64 `yaml:"base_size"`
	ScalePercentage float64 `yaml:"scale_percentage"`
	SphereSegments  int     `yaml:"sphere_segments"`
	Roughness       float32 `yaml:"roughness"`
	HighlightColor  uint32  `yaml:"highlight_color"`
	Picking         bool    `yaml:"picking"`
	Animate         bool    `yaml:"animate"`
	CatalogPath     string  `yaml:"catalog_path"`  // Empty uses the built-in catalog
	WatchCatalog    bool    `yaml:"watch_catalog"` // Rebuild bodies when the catalog file changes
	Seed            uint64  `yaml:"seed"`          // Zero seeds from the clock
}

// AssetsConfig holds asset lookup settings.
type AssetsConfig struct {
	Root          string `yaml:"root"`           // Directory asset paths are relative to
	SkyboxPrefix  string `yaml:"skybox_prefix"`  // Prefix of the six cube face paths
	SkyboxSuffix  string `yaml:"skybox_suffix"`  // Extension of the six cube face paths
	MaxTextureDim int    `yaml:"max_texture_dim"` // Larger textures are downscaled, 0 keeps size
	LoadWorkers   int    `yaml:"load_workers"`
}

// DebugConfig holds diagnostics settings.
type DebugConfig struct {
	ShowStats       bool   `yaml:"show_stats"`
	ScreenshotDir   string `yaml:"screenshot_dir"`
	ScreenshotScale int    `yaml:"screenshot_scale"` // Supersampling factor for F12 captures
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			MSAA:       4,
			HighDPI:    true,
		},
		Camera: CameraConfig{
			FOV:      50,
			Near:     0.1,
			Far:      1000,
			Distance: 70,
		},
		Controls: ControlsConfig{
			EnablePan:     false,
			EnableZoom:    false,
			EnableDamping: true,
			DampingFactor: 0.05,
			RotateSpeed:   0.6,
			ZoomSpeed:     1.0,
			MinDistance:   10,
			MaxDistance:   500,
			MinPolarAngle: 1.3,
			MaxPolarAngle: 1.3,
			MinAzimuth:    0,
			MaxAzimuth:    0,
			AzimuthStep:   math.Pi / 4,
		},
		Scene: SceneConfig{
			RingRadius:      30,
			BaseSize:        7,
			ScalePercentage: 50,
			SphereSegments:  30,
			Roughness:       0.6,
			HighlightColor:  0xff0000,
			Picking:         true,
			Animate:         true,
		},
		Assets: AssetsConfig{
			Root:          ".",
			SkyboxPrefix:  "assets/",
			SkyboxSuffix:  ".png",
			MaxTextureDim: 2048,
			LoadWorkers:   4,
		},
		Debug: DebugConfig{
			ShowStats:       true,
			ScreenshotDir:   "screenshots",
			ScreenshotScale: 1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
