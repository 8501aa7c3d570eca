package catalog

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Search returns the entities whose display name or id contains term,
// ignoring case. An empty term matches everything. Table order is kept.
func (c *Catalog) Search(term string) []Entity {
	term = strings.TrimSpace(term)
	if term == "" {
		return c.All()
	}
	fold := cases.Fold()
	needle := fold.String(term)

	var out []Entity
	for _, e := range c.entities {
		if strings.Contains(fold.String(e.DisplayName()), needle) ||
			strings.Contains(fold.String(e.ID), needle) {
			out = append(out, e)
		}
	}
	return out
}

// Sorted returns the entities ordered by display name using the collation
// rules of tag. Entities whose names collate equal keep table order.
func (c *Catalog) Sorted(tag language.Tag) []Entity {
	col := collate.New(tag, collate.IgnoreCase, collate.Loose)
	names := make([]string, len(c.entities))
	order := make([]int, len(c.entities))
	for i, e := range c.entities {
		names[i] = e.DisplayName()
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return col.CompareString(names[order[i]], names[order[j]]) < 0
	})

	out := make([]Entity, len(order))
	for i, k := range order {
		out[i] = c.entities[k]
	}
	return out
}

// Progress counts completed entities.
type Progress struct {
	Completed int
	Total     int
	Percent   int // rounded to the nearest whole percent
}

// Progress returns how many entities are marked completed.
func (c *Catalog) Progress() Progress {
	p := Progress{Total: len(c.entities)}
	for _, e := range c.entities {
		if e.Completed {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percent = int(math.Round(float64(p.Completed) * 100 / float64(p.Total)))
	}
	return p
}
