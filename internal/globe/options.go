package globe

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-globe/internal/globe/gesture"
	"github.com/Faultbox/midgard-globe/internal/globe/orientation"
)

// Config is the controller tuning.
type Config struct {
	Orientation orientation.Params
	Gesture     gesture.Config

	// Background is the name of the non-selectable backdrop mesh.
	Background string
	// BaseDistance is the camera distance at zoom 1.
	BaseDistance float32
}

// DefaultConfig returns the stock controller tuning.
func DefaultConfig() Config {
	return Config{
		Orientation:  orientation.DefaultParams(),
		Gesture:      gesture.DefaultConfig(),
		Background:   "Ocean",
		BaseDistance: 2.7,
	}
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// WithSelectionListener registers fn as if by OnSelectionChange.
func WithSelectionListener(fn func(id string)) Option {
	return func(c *Controller) {
		c.OnSelectionChange(fn)
	}
}
