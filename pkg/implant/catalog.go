package implant

import "sort"

// Catalog resolves implant ids to their definitions.
type Catalog interface {
	Lookup(id int) (*Implant, bool)
}

// MapCatalog is a Catalog backed by a map. It is not safe to add implants
// while other goroutines perform lookups.
type MapCatalog struct {
	implants map[int]*Implant
}

func NewMapCatalog(implants ...*Implant) *MapCatalog {
	c := &MapCatalog{implants: make(map[int]*Implant, len(implants))}
	for _, imp := range implants {
		c.Add(imp)
	}

	return c
}

// Add registers imp, replacing any implant with the same id. The empty
// sentinel and implants for untracked slots are ignored.
func (c *MapCatalog) Add(imp *Implant) {
	if imp.IsNothing() || !IsValidSlot(imp.Slot) {
		return
	}

	c.implants[imp.ID] = imp
}

func (c *MapCatalog) Lookup(id int) (*Implant, bool) {
	imp, ok := c.implants[id]
	return imp, ok
}

func (c *MapCatalog) Len() int {
	return len(c.implants)
}

// All returns the catalog contents ordered by slot then id.
func (c *MapCatalog) All() []*Implant {
	all := make([]*Implant, 0, len(c.implants))
	for _, imp := range c.implants {
		all = append(all, imp)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Slot != all[j].Slot {
			return all[i].Slot < all[j].Slot
		}
		return all[i].ID < all[j].ID
	})

	return all
}

// ForSlot returns the implants that fit slot, ordered by id.
func (c *MapCatalog) ForSlot(slot int) []*Implant {
	var fits []*Implant
	for _, imp := range c.All() {
		if imp.Slot == slot {
			fits = append(fits, imp)
		}
	}

	return fits
}
