package model

import "github.com/minerguide/pilotd/pkg/implant"

// Implant is a catalog entry added on top of the built-in implants.
type Implant struct {
	ID    int     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name  string  `json:"name"`
	Slot  int     `json:"slot"`
	Bonus float64 `json:"bonus"`
}

func (Implant) TableName() string {
	return "implants"
}

func (i Implant) ToImplant() *implant.Implant {
	return &implant.Implant{ID: i.ID, Name: i.Name, Slot: i.Slot, Bonus: i.Bonus}
}
