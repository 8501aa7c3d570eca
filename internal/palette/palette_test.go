package palette

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want mgl32.Vec3
		ok   bool
	}{
		{"#FFFFFF", mgl32.Vec3{1, 1, 1}, true},
		{"000000", mgl32.Vec3{0, 0, 0}, true},
		{"#FF0000", mgl32.Vec3{1, 0, 0}, true},
		{" #00ff00 ", mgl32.Vec3{0, 1, 0}, true},
		{"#FFF", mgl32.Vec3{}, false},
		{"#GG0000", mgl32.Vec3{}, false},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseHex(%q) err = %v", tt.in, err)
			continue
		}
		if tt.ok && !near(got, tt.want, 1e-6) {
			t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	ocean := MustHex(Ocean)
	if !near(ocean, mgl32.Vec3{30.0 / 255, 144.0 / 255, 1}, 1e-6) {
		t.Errorf("ocean = %v", ocean)
	}
}

func TestClassify(t *testing.T) {
	done := func(id string) bool { return id == "Japan" || id == "France" }
	tests := []struct {
		name, selected string
		want           Role
	}{
		{"Ocean", "", RoleBackground},
		{"Ocean", "Ocean", RoleBackground},
		{"France", "France", RoleSelected},
		{"France", "Chile", RoleCompleted},
		{"Chile", "", RoleDefault},
		{"", "", RoleDefault},
	}
	for _, tt := range tests {
		if got := Classify(tt.name, tt.selected, "Ocean", done); got != tt.want {
			t.Errorf("Classify(%q, sel=%q) = %v, want %v", tt.name, tt.selected, got, tt.want)
		}
	}
	if got := Classify("Chile", "", "Ocean", nil); got != RoleDefault {
		t.Errorf("nil completion func: got %v", got)
	}
}

func TestFromHex(t *testing.T) {
	p, err := FromHex("#000000", "", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if p.Colour(RoleSelected) != (mgl32.Vec3{}) {
		t.Errorf("selected = %v", p.Colour(RoleSelected))
	}
	if p.Colour(RoleBackground) != Default().Background {
		t.Error("empty entries keep the stock colour")
	}
	if _, err := FromHex("", "nope", "", ""); err == nil {
		t.Error("malformed colour should fail")
	}
}

func TestStockColours(t *testing.T) {
	for _, c := range []string{Selected, DarkState, Completed, Ocean, Land} {
		if _, err := ParseHex(c); err != nil {
			t.Errorf("stock colour %s: %v", c, err)
		}
	}

	// Every role the renderer asks for is distinct.
	p := Default()
	seen := map[mgl32.Vec3]Role{}
	for _, r := range []Role{RoleDefault, RoleSelected, RoleCompleted, RoleBackground} {
		c := p.Colour(r)
		if prev, dup := seen[c]; dup {
			t.Errorf("%v and %v share colour %v", prev, r, c)
		}
		seen[c] = r
	}
}

// near compares vectors by absolute distance.
func near(a, b mgl32.Vec3, eps float32) bool {
	return a.Sub(b).Len() < eps
}
