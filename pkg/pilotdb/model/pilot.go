package model

import "time"

// Pilot is a stored pilot. Document holds the pilot's XML document; the
// other columns duplicate parts of it for lookups.
type Pilot struct {
	ID        int       `json:"id" gorm:"primaryKey;autoIncrement:false"`
	UUID      string    `json:"uuid"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug" gorm:"index"`
	APIKeyID  int       `json:"api_key_id" gorm:"index"`
	Document  string    `json:"-" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Pilot) TableName() string {
	return "pilots"
}
