package config

import (
	"errors"
	"fmt"

	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"

	"github.com/Faultbox/midgard-globe/internal/globe"
	"github.com/Faultbox/midgard-globe/internal/globe/gesture"
	"github.com/Faultbox/midgard-globe/internal/globe/orientation"
	"github.com/Faultbox/midgard-globe/internal/palette"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate reports inconsistent settings. All problems are joined into one
// error.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		bad("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.FPSLimit < 0 {
		bad("fps_limit %d is negative", c.Window.FPSLimit)
	}

	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		bad("camera fov %v out of (0, 180)", c.Camera.FOV)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		bad("camera clip planes near=%v far=%v", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.BaseDistance <= 1 {
		bad("camera base_distance %v must be outside the globe", c.Camera.BaseDistance)
	}

	ctl := c.Controller
	if ctl.MinSpeed <= 0 || ctl.MaxSpeed > 1 || ctl.MinSpeed > ctl.MaxSpeed {
		bad("transition speeds min=%v max=%v", ctl.MinSpeed, ctl.MaxSpeed)
	}
	if ctl.ResetSpeed <= 0 || ctl.ResetSpeed > 1 {
		bad("reset_speed %v out of (0, 1]", ctl.ResetSpeed)
	}
	if ctl.ZoomRelax <= 0 || ctl.ZoomRelax > 1 {
		bad("zoom_relax %v out of (0, 1]", ctl.ZoomRelax)
	}
	if ctl.MinZoom <= 0 || ctl.MinZoom > ctl.MaxZoom {
		bad("zoom range min=%v max=%v", ctl.MinZoom, ctl.MaxZoom)
	}
	if ctl.DefaultZoom < ctl.MinZoom || ctl.DefaultZoom > ctl.MaxZoom {
		bad("default_zoom %v outside [%v, %v]", ctl.DefaultZoom, ctl.MinZoom, ctl.MaxZoom)
	}
	if ctl.AutoRotatePeriod <= 0 {
		bad("auto_rotate_period %v must be positive", ctl.AutoRotatePeriod)
	}

	g := c.Gesture
	if _, err := gesture.ParseModality(g.Modality); err != nil {
		bad("%v", err)
	}
	if g.DragThreshold < 0 {
		bad("drag_threshold %v is negative", g.DragThreshold)
	}
	if g.TapMaxDuration <= 0 {
		bad("tap_max_duration %v must be positive", g.TapMaxDuration)
	}
	if g.GhostClickWindow < 0 {
		bad("ghost_click_window %v is negative", g.GhostClickWindow)
	}

	if c.Data.Background == "" {
		bad("data background mesh name is empty")
	}
	if _, err := language.Parse(c.Data.Language); err != nil {
		bad("data language %q: %v", c.Data.Language, err)
	}
	p := c.Data.Palette
	if _, err := palette.FromHex(p.Selected, p.Completed, p.Ocean, p.Land); err != nil {
		bad("palette: %v", err)
	}

	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		bad("logging level %q", c.Logging.Level)
	}

	return errors.Join(errs...)
}

// Globe converts the controller, gesture and camera sections into the
// controller's tuning. It assumes the config is valid.
func (c *Config) Globe() globe.Config {
	modality, _ := gesture.ParseModality(c.Gesture.Modality)
	return globe.Config{
		Orientation: orientation.Params{
			MinSpeed:         c.Controller.MinSpeed,
			MaxSpeed:         c.Controller.MaxSpeed,
			ResetSpeed:       c.Controller.ResetSpeed,
			ZoomRelax:        c.Controller.ZoomRelax,
			DefaultZoom:      c.Controller.DefaultZoom,
			MinZoom:          c.Controller.MinZoom,
			MaxZoom:          c.Controller.MaxZoom,
			AutoRotatePeriod: c.Controller.AutoRotatePeriod,
		},
		Gesture: gesture.Config{
			Modality:         modality,
			DragThreshold:    c.Gesture.DragThreshold,
			TapMaxDuration:   c.Gesture.TapMaxDuration,
			GhostClickWindow: c.Gesture.GhostClickWindow,
			RotateScale:      c.Gesture.RotateScale,
			WheelScale:       c.Gesture.WheelScale,
			PinchScale:       c.Gesture.PinchScale,
		},
		Background:   c.Data.Background,
		BaseDistance: c.Camera.BaseDistance,
	}
}

// Palette returns the highlight palette with overrides applied.
func (c *Config) Palette() (palette.Palette, error) {
	p := c.Data.Palette
	return palette.FromHex(p.Selected, p.Completed, p.Ocean, p.Land)
}

// Language returns the collation language for sorted listings.
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.Data.Language)
	if err != nil {
		return language.English
	}
	return tag
}
