package implant

// Mining related implants known to the EVE static data export. Bonus is the
// percentage applied by the implant to its attribute.
var builtin = []*Implant{
	{ID: 22535, Name: "Michi's Excavation Augmentor", Slot: Slot7, Bonus: 5},
	{ID: 27102, Name: "Inherent Implants 'Highwall' Mining MX1001", Slot: Slot7, Bonus: 1},
	{ID: 22534, Name: "Inherent Implants 'Highwall' Mining MX1003", Slot: Slot7, Bonus: 3},
	{ID: 27103, Name: "Inherent Implants 'Highwall' Mining MX1005", Slot: Slot7, Bonus: 5},
	{ID: 27150, Name: "Inherent Implants 'Highwall' Mining Upgrades MU1001", Slot: Slot8, Bonus: 1},
	{ID: 22570, Name: "Inherent Implants 'Highwall' Mining Upgrades MU1003", Slot: Slot8, Bonus: 3},
	{ID: 27151, Name: "Inherent Implants 'Highwall' Mining Upgrades MU1005", Slot: Slot8, Bonus: 5},
	{ID: 27104, Name: "Inherent Implants 'Yeti' Ice Harvesting IH1001", Slot: Slot10, Bonus: 1},
	{ID: 22571, Name: "Inherent Implants 'Yeti' Ice Harvesting IH1003", Slot: Slot10, Bonus: 3},
	{ID: 27105, Name: "Inherent Implants 'Yeti' Ice Harvesting IH1005", Slot: Slot10, Bonus: 5},
}

// Builtin returns a catalog holding the built-in mining implants. Every call
// returns a new catalog; the implant values themselves are shared.
func Builtin() *MapCatalog {
	return NewMapCatalog(builtin...)
}
