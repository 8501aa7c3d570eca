// Package config handles viewer and controller configuration loading.
package config

import "time"

// Config holds all settings.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Camera     CameraConfig     `yaml:"camera"`
	Controller ControllerConfig `yaml:"controller"`
	Gesture    GestureConfig    `yaml:"gesture"`
	Data       DataConfig       `yaml:"data"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	FPSLimit   int    `yaml:"fps_limit"`
}

// CameraConfig holds the projection and the camera distance at zoom 1.
type CameraConfig struct {
	FOV          float32 `yaml:"fov"` // vertical, degrees
	Near         float32 `yaml:"near"`
	Far          float32 `yaml:"far"`
	BaseDistance float32 `yaml:"base_distance"` // in globe radii
	// SunLight lights the globe from the real sun position instead of a
	// fixed lamp.
	SunLight bool `yaml:"sun_light"`
}

// ControllerConfig holds orientation animation tuning.
type ControllerConfig struct {
	MinSpeed         float64       `yaml:"min_speed"`
	MaxSpeed         float64       `yaml:"max_speed"`
	ResetSpeed       float64       `yaml:"reset_speed"`
	ZoomRelax        float64       `yaml:"zoom_relax"`
	DefaultZoom      float64       `yaml:"default_zoom"`
	MinZoom          float64       `yaml:"min_zoom"`
	MaxZoom          float64       `yaml:"max_zoom"`
	AutoRotatePeriod time.Duration `yaml:"auto_rotate_period"`
}

// GestureConfig holds input thresholds.
type GestureConfig struct {
	Modality         string        `yaml:"modality"` // hybrid, pointer or touch
	DragThreshold    float32       `yaml:"drag_threshold"`
	TapMaxDuration   time.Duration `yaml:"tap_max_duration"`
	GhostClickWindow time.Duration `yaml:"ghost_click_window"`
	RotateScale      float64       `yaml:"rotate_scale"`
	WheelScale       float64       `yaml:"wheel_scale"`
	PinchScale       float64       `yaml:"pinch_scale"`
}

// DataConfig holds the entity table and scene naming.
type DataConfig struct {
	Entities   string        `yaml:"entities"`   // path to the entity table
	Background string        `yaml:"background"` // backdrop mesh name
	Language   string        `yaml:"language"`   // BCP 47 tag for sorted listings
	Watch      bool          `yaml:"watch"`      // reload completion state when the table changes
	Palette    PaletteConfig `yaml:"palette"`

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// PaletteConfig overrides highlight colours as "#RRGGBB". Empty keeps the
// stock colour.
type PaletteConfig struct {
	Selected  string `yaml:"selected"`
	Completed string `yaml:"completed"`
	Ocean     string `yaml:"ocean"`
	Land      string `yaml:"land"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Midgard Globe",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Camera: CameraConfig{
			FOV:          45,
			Near:         0.1,
			Far:          100,
			BaseDistance: 2.7,
			SunLight:     true,
		},
		Controller: ControllerConfig{
			MinSpeed:         0.025,
			MaxSpeed:         0.1,
			ResetSpeed:       0.15,
			ZoomRelax:        0.1,
			DefaultZoom:      1.5,
			MinZoom:          0.6,
			MaxZoom:          3.0,
			AutoRotatePeriod: 3 * time.Minute,
		},
		Gesture: GestureConfig{
			Modality:         "hybrid",
			DragThreshold:    5,
			TapMaxDuration:   200 * time.Millisecond,
			GhostClickWindow: 500 * time.Millisecond,
			RotateScale:      0.005,
			WheelScale:       0.1,
			PinchScale:       0.01,
		},
		Data: DataConfig{
			Entities:   "data/entities.yaml",
			Background: "Ocean",
			Language:   "en",
			Watch:      true,

			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}
