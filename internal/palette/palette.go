// Package palette holds the globe's highlight colours and decides which
// one a mesh is drawn with.
package palette

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Stock colours.
const (
	Selected  = "#FF7F11"
	DarkState = "#140100" // window clear colour
	Completed = "#228B22"
	Ocean     = "#1E90FF"
	Land      = "#BC8F8F"
)

// ParseHex converts "#RRGGBB" (the leading '#' is optional) to RGB in [0,1].
func ParseHex(s string) (mgl32.Vec3, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return mgl32.Vec3{}, fmt.Errorf("colour %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return mgl32.Vec3{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return mgl32.Vec3{
		float32(v>>16&0xff) / 255,
		float32(v>>8&0xff) / 255,
		float32(v&0xff) / 255,
	}, nil
}

// MustHex is ParseHex for constants; it panics on malformed input.
func MustHex(s string) mgl32.Vec3 {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Role is how a mesh should be highlighted.
type Role int

const (
	RoleDefault Role = iota
	RoleSelected
	RoleCompleted
	RoleBackground
)

func (r Role) String() string {
	switch r {
	case RoleSelected:
		return "selected"
	case RoleCompleted:
		return "completed"
	case RoleBackground:
		return "background"
	default:
		return "default"
	}
}

// Classify picks the role of the mesh called name. Selection wins over
// completion.
func Classify(name, selected, background string, completed func(id string) bool) Role {
	switch {
	case name == background:
		return RoleBackground
	case name != "" && name == selected:
		return RoleSelected
	case completed != nil && completed(name):
		return RoleCompleted
	default:
		return RoleDefault
	}
}

// Palette maps roles to colours.
type Palette struct {
	Selected   mgl32.Vec3
	Completed  mgl32.Vec3
	Background mgl32.Vec3
	Default    mgl32.Vec3
}

// Default is the stock palette.
func Default() Palette {
	return Palette{
		Selected:   MustHex(Selected),
		Completed:  MustHex(Completed),
		Background: MustHex(Ocean),
		Default:    MustHex(Land),
	}
}

// Colour returns the colour for r.
func (p Palette) Colour(r Role) mgl32.Vec3 {
	switch r {
	case RoleSelected:
		return p.Selected
	case RoleCompleted:
		return p.Completed
	case RoleBackground:
		return p.Background
	default:
		return p.Default
	}
}

// FromHex builds a palette from hex strings, keeping the stock colour for
// any empty entry.
func FromHex(selected, completed, background, def string) (Palette, error) {
	p := Default()
	for _, f := range []struct {
		hex string
		dst *mgl32.Vec3
	}{
		{selected, &p.Selected},
		{completed, &p.Completed},
		{background, &p.Background},
		{def, &p.Default},
	} {
		if f.hex == "" {
			continue
		}
		c, err := ParseHex(f.hex)
		if err != nil {
			return Palette{}, err
		}
		*f.dst = c
	}
	return p, nil
}
