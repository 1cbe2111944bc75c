package stor

import (
	"github.com/minerguide/pilotd/pkg/pilotdb/model"
	"gorm.io/gorm"
)

// ErrNotFound is returned, possibly wrapped, by every stor when a lookup
// matches nothing.
var ErrNotFound = gorm.ErrRecordNotFound

type PilotStor interface {
	SavePilot(p *model.Pilot) (*model.Pilot, error)
	GetPilotByID(id int) (*model.Pilot, error)
	GetPilotBySlug(slug string) (*model.Pilot, error)
	ListPilots() ([]model.Pilot, error)
	ListPilotsForAPIKey(keyID int) ([]model.Pilot, error)
	DeletePilot(id int) error
}

type APIKeyStor interface {
	CreateAPIKey(key *model.APIKey) (*model.APIKey, error)
	GetAPIKeyByID(id int) (*model.APIKey, error)
	ListAPIKeys() ([]model.APIKey, error)
	UpdateVerification(id int, vcode string) (*model.APIKey, error)
}

type ImplantStor interface {
	CreateImplant(imp *model.Implant) (*model.Implant, error)
	ListImplants() ([]model.Implant, error)
}

type Stors struct {
	PilotStor   PilotStor
	APIKeyStor  APIKeyStor
	ImplantStor ImplantStor
}

func NewGormStors(db *gorm.DB) *Stors {
	return &Stors{
		PilotStor:   NewGormPilotStor(db),
		APIKeyStor:  NewGormAPIKeyStor(db),
		ImplantStor: NewGormImplantStor(db),
	}
}

func NewInMemoryStors() *Stors {
	return &Stors{
		PilotStor:   NewInMemoryPilotStor(),
		APIKeyStor:  NewInMemoryAPIKeyStor(),
		ImplantStor: NewInMemoryImplantStor(),
	}
}
