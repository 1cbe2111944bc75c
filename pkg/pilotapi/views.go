package pilotapi

import (
	"github.com/minerguide/pilotd/pkg/implant"
	"github.com/minerguide/pilotd/pkg/pilot"
)

type PilotSummary struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	APIKeyID int    `json:"api_key_id"`
}

type SlotView struct {
	Slot    int              `json:"slot"`
	Implant *implant.Implant `json:"implant"`
}

type PilotView struct {
	ID       int         `json:"id"`
	Name     string      `json:"name"`
	Slug     string      `json:"slug"`
	APIKeyID int         `json:"api_key_id"`
	Skills   map[int]int `json:"skills"`
	Implants []SlotView  `json:"implants"`
}

func toSummary(p *pilot.Pilot) PilotSummary {
	s := PilotSummary{ID: p.ID(), Name: p.Name(), Slug: p.Slug()}
	if owner := p.Owner(); owner != nil {
		s.APIKeyID = owner.KeyID()
	}
	return s
}

// toView reads skills and implants from one snapshot so a concurrent
// refresh can't show up half applied.
func toView(p *pilot.Pilot) PilotView {
	snapshot := p.Clone()
	summary := toSummary(p)

	view := PilotView{
		ID:       summary.ID,
		Name:     summary.Name,
		Slug:     summary.Slug,
		APIKeyID: summary.APIKeyID,
		Skills:   snapshot.Skills(),
	}

	for i, imp := range snapshot.Implants() {
		view.Implants = append(view.Implants, SlotView{Slot: implant.Slots[i], Implant: imp})
	}

	return view
}
