package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/language"
)

const sample = `
entities:
  - id: France
    target_lat: 0.5
    target_lon: -0.1
    zoom: 1.2
    completed: true
    region: {lat: 46, lon: 2, radius: 5}
  - id: United_Kingdom
    target_lat: 0.6
    target_lon: 0.05
    zoom: 1.1
  - id: Cote_dIvoire
    name: Côte d'Ivoire
    target_lat: 0.1
    target_lon: 0.2
    zoom: 1.3
  - id: Japan
    target_lat: 0.6
    target_lon: 2.4
    zoom: 1.0
    completed: true
`

func mustParse(t *testing.T, s string) *Catalog {
	t.Helper()
	c, err := Parse([]byte(s))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return c
}

func TestParse(t *testing.T) {
	c := mustParse(t, sample)
	if c.Len() != 4 {
		t.Fatalf("Len = %d, want 4", c.Len())
	}
	fr, ok := c.Get("France")
	if !ok {
		t.Fatal("France missing")
	}
	if fr.Target().X != 0.5 || fr.Target().Y != -0.1 || fr.Zoom != 1.2 || !fr.Completed {
		t.Errorf("unexpected France %+v", fr)
	}
	if fr.Region == nil || fr.Region.Lat != 46 || fr.Region.Radius != 5 {
		t.Errorf("unexpected region %+v", fr.Region)
	}
	if !c.Has("Japan") || c.Has("japan") || c.Has("") {
		t.Error("Has should be exact")
	}
	if _, ok := c.Get("Atlantis"); ok {
		t.Error("unknown id should miss")
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		in   []Entity
		want error
	}{
		{"empty id", []Entity{{Zoom: 1}}, ErrEmptyID},
		{"duplicate", []Entity{{ID: "A", Zoom: 1}, {ID: "A", Zoom: 1}}, ErrDuplicateID},
		{"zero zoom", []Entity{{ID: "A"}}, ErrInvalidEntity},
		{"bad region", []Entity{{ID: "A", Zoom: 1, Region: &Region{Lat: 100, Radius: 1}}}, ErrInvalidEntity},
		{"zero radius", []Entity{{ID: "A", Zoom: 1, Region: &Region{}}}, ErrInvalidEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.in)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entities.yaml")
	if err := os.WriteFile(path, []byte(sample), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	out, err := c.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	again := mustParse(t, string(out))
	if again.Len() != c.Len() {
		t.Errorf("re-parsed %d entities, want %d", again.Len(), c.Len())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
	if _, err := Parse([]byte("entities: [")); err == nil {
		t.Error("malformed yaml should fail")
	}
}

func TestDisplayName(t *testing.T) {
	c := mustParse(t, sample)
	tests := map[string]string{
		"United_Kingdom": "United Kingdom",
		"Cote_dIvoire":   "Côte d'Ivoire",
		"Japan":          "Japan",
	}
	for id, want := range tests {
		e, _ := c.Get(id)
		if got := e.DisplayName(); got != want {
			t.Errorf("DisplayName(%s) = %q, want %q", id, got, want)
		}
	}
}

func ids(es []Entity) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.ID
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSearch(t *testing.T) {
	c := mustParse(t, sample)
	tests := []struct {
		term string
		want []string
	}{
		{"", []string{"France", "United_Kingdom", "Cote_dIvoire", "Japan"}},
		{"  ", []string{"France", "United_Kingdom", "Cote_dIvoire", "Japan"}},
		{"FRA", []string{"France"}},
		{"united king", []string{"United_Kingdom"}},
		{"united_k", []string{"United_Kingdom"}},
		{"CÔTE", []string{"Cote_dIvoire"}},
		{"an", []string{"France", "Japan"}},
		{"xyz", nil},
	}
	for _, tt := range tests {
		if got := ids(c.Search(tt.term)); !equal(got, tt.want) {
			t.Errorf("Search(%q) = %v, want %v", tt.term, got, tt.want)
		}
	}
}

func TestSorted(t *testing.T) {
	c := mustParse(t, sample)
	got := ids(c.Sorted(language.English))
	want := []string{"Cote_dIvoire", "France", "Japan", "United_Kingdom"}
	if !equal(got, want) {
		t.Errorf("Sorted = %v, want %v", got, want)
	}
	if first := c.All()[0].ID; first != "France" {
		t.Errorf("sorting must not reorder the table, first is %s", first)
	}
}

func TestSortedKeepsTableOrderForTies(t *testing.T) {
	c := mustParse(t, `
entities:
  - {id: Georgia_US, name: Georgia, zoom: 1}
  - {id: Austria, zoom: 1}
  - {id: Georgia, zoom: 1}
  - {id: georgia_caucasus, name: GEORGIA, zoom: 1}
  - {id: Chile, zoom: 1}
`)
	got := ids(c.Sorted(language.English))
	want := []string{"Austria", "Chile", "Georgia_US", "Georgia", "georgia_caucasus"}
	if !equal(got, want) {
		t.Errorf("Sorted = %v, want %v", got, want)
	}
}

func TestProgress(t *testing.T) {
	c := mustParse(t, sample)
	p := c.Progress()
	if p.Completed != 2 || p.Total != 4 || p.Percent != 50 {
		t.Errorf("Progress = %+v", p)
	}

	empty, _ := New(nil)
	if p := empty.Progress(); p.Total != 0 || p.Percent != 0 {
		t.Errorf("empty Progress = %+v", p)
	}

	third, _ := New([]Entity{{ID: "a", Zoom: 1, Completed: true}, {ID: "b", Zoom: 1}, {ID: "c", Zoom: 1}})
	if p := third.Progress(); p.Percent != 33 {
		t.Errorf("1/3 should round to 33%%, got %d", p.Percent)
	}
}

func TestNext(t *testing.T) {
	c := mustParse(t, sample)
	for _, tt := range []struct{ from, want string }{
		{"", "France"},
		{"France", "United_Kingdom"},
		{"Japan", "France"},
		{"Atlantis", "France"},
	} {
		if e, _ := c.Next(tt.from); e.ID != tt.want {
			t.Errorf("Next(%q) = %s, want %s", tt.from, e.ID, tt.want)
		}
	}
	empty, _ := New(nil)
	if _, ok := empty.Next(""); ok {
		t.Error("empty catalog has no next")
	}
}
