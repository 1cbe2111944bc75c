// Package pilot holds the pilot record: a character's skill levels and the
// implants plugged into the three mining relevant slots.
//
// A Pilot is safe for concurrent use. One mutex guards the skills and the
// implant slots together; it is only held for a single access or for the
// final commit of a refresh, never while talking to the API.
package pilot

import (
	"sync"

	"github.com/gosimple/slug"
	"github.com/minerguide/pilotd/pkg/implant"
)

const (
	MinSkillLevel = 0
	MaxSkillLevel = 5
)

type Pilot struct {
	id    int
	name  string
	owner Credentials

	mu       sync.Mutex
	skills   map[int]int
	implants [3]*implant.Implant
}

// New creates a pilot with no skills and empty implant slots.
func New(id int, name string, owner Credentials) *Pilot {
	return &Pilot{
		id:       id,
		name:     name,
		owner:    owner,
		skills:   make(map[int]int),
		implants: emptySlots(),
	}
}

func emptySlots() [3]*implant.Implant {
	return [3]*implant.Implant{implant.Nothing, implant.Nothing, implant.Nothing}
}

func slotIndex(slot int) (int, bool) {
	switch slot {
	case implant.Slot7:
		return 0, true
	case implant.Slot8:
		return 1, true
	case implant.Slot10:
		return 2, true
	default:
		return 0, false
	}
}

func (p *Pilot) locked(f func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	f()
}

func (p *Pilot) ID() int {
	return p.id
}

func (p *Pilot) Name() string {
	return p.name
}

// Owner returns the API key the pilot was loaded through. It may be nil for
// pilots that were never attached to a key.
func (p *Pilot) Owner() Credentials {
	return p.owner
}

func (p *Pilot) Slug() string {
	return slug.Make(p.name)
}

func (p *Pilot) String() string {
	return p.name
}

// IsPreset is false for every pilot backed by an API key.
func (p *Pilot) IsPreset() bool {
	return false
}

// SkillLevel returns the trained level of skillID, 0 for unknown skills.
func (p *Pilot) SkillLevel(skillID int) int {
	var level int
	p.locked(func() {
		level = p.skills[skillID]
	})

	return level
}

// SetSkillLevel sets the level of skillID. Invalid skill ids and levels
// outside [MinSkillLevel, MaxSkillLevel] are ignored without any report.
func (p *Pilot) SetSkillLevel(skillID, level int) {
	if skillID <= 0 || level < MinSkillLevel || level > MaxSkillLevel {
		return
	}

	p.locked(func() {
		p.skills[skillID] = level
	})
}

// Skills returns a copy of the skill levels.
func (p *Pilot) Skills() map[int]int {
	var skills map[int]int
	p.locked(func() {
		skills = copySkills(p.skills)
	})

	return skills
}

func copySkills(skills map[int]int) map[int]int {
	out := make(map[int]int, len(skills))
	for id, level := range skills {
		out[id] = level
	}

	return out
}

// Implant returns the implant in slot, implant.Nothing when the slot is
// empty or isn't one of the tracked slots.
func (p *Pilot) Implant(slot int) *implant.Implant {
	idx, ok := slotIndex(slot)
	if !ok {
		return implant.Nothing
	}

	var imp *implant.Implant
	p.locked(func() {
		imp = p.implants[idx]
	})

	return imp
}

// SetImplant puts imp into slot. Nothing happens unless imp is
// implant.Nothing or an implant made for that slot.
func (p *Pilot) SetImplant(slot int, imp *implant.Implant) {
	idx, ok := slotIndex(slot)
	if !ok || !imp.Fits(slot) {
		return
	}

	p.locked(func() {
		p.implants[idx] = imp
	})
}

// Implants returns the occupants of slots 7, 8 and 10 in that order.
func (p *Pilot) Implants() [3]*implant.Implant {
	var imps [3]*implant.Implant
	p.locked(func() {
		imps = p.implants
	})

	return imps
}

// Clone returns an independent copy of the pilot with the same owner.
func (p *Pilot) Clone() *Pilot {
	out := New(p.id, p.name, p.owner)
	p.locked(func() {
		out.skills = copySkills(p.skills)
		out.implants = p.implants
	})

	return out
}

// CloneWithOwner returns a blank pilot with the same id and name attached to
// owner. Skills and implants are not carried over; they belong to the data
// loaded through the previous key.
func (p *Pilot) CloneWithOwner(owner Credentials) *Pilot {
	return New(p.id, p.name, owner)
}
