package model

import "time"

// APIKey is an EVE API key. It satisfies pilot.Credentials, so a loaded key
// can be handed to pilots directly.
type APIKey struct {
	ID        int       `json:"id" gorm:"primaryKey;autoIncrement:false"`
	UUID      string    `json:"uuid"`
	VCode     string    `json:"-" gorm:"column:vcode"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (APIKey) TableName() string {
	return "api_keys"
}

func (k *APIKey) KeyID() int {
	return k.ID
}

func (k *APIKey) Verification() string {
	return k.VCode
}
