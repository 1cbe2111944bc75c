package implant

import "fmt"

// Slot tags the three implant slots the mining calculations care about.
const (
	Slot7  = 7
	Slot8  = 8
	Slot10 = 10
)

// Slots lists the slot tags in display order.
var Slots = [3]int{Slot7, Slot8, Slot10}

// Implant is a catalog definition of an implant. Implants are shared
// read-only values; pilots hold pointers into a catalog.
type Implant struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Slot  int     `json:"slot"`
	Bonus float64 `json:"bonus"`
}

// Nothing is the empty slot occupant. It fits every slot.
var Nothing = &Implant{Name: "<nothing>"}

// IsNothing reports whether imp is the empty slot sentinel. nil counts as empty.
func (imp *Implant) IsNothing() bool {
	return imp == nil || imp == Nothing
}

// Fits reports whether imp may be placed into slot.
func (imp *Implant) Fits(slot int) bool {
	if imp == nil {
		return false
	}

	return imp == Nothing || imp.Slot == slot
}

func (imp *Implant) String() string {
	if imp.IsNothing() {
		return Nothing.Name
	}

	return fmt.Sprintf("%s (slot %d)", imp.Name, imp.Slot)
}

// IsValidSlot reports whether slot is one of the tracked slot tags.
func IsValidSlot(slot int) bool {
	for _, s := range Slots {
		if s == slot {
			return true
		}
	}

	return false
}
