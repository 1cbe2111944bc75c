package stor

import (
	"github.com/hashicorp/go-uuid"
	"github.com/minerguide/pilotd/pkg/pilotdb/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormPilotStor struct {
	db *gorm.DB
}

func NewGormPilotStor(db *gorm.DB) *GormPilotStor {
	return &GormPilotStor{db: db}
}

// SavePilot inserts p or, when a pilot with the same id exists, replaces
// its columns.
func (s *GormPilotStor) SavePilot(p *model.Pilot) (*model.Pilot, error) {
	var err error

	if p.UUID == "" {
		if p.UUID, err = uuid.GenerateUUID(); err != nil {
			return nil, err
		}
	}

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "slug", "api_key_id", "document", "updated_at"}),
		}).Create(p).Error
	})

	if err != nil {
		return nil, errors.Wrapf(err, "saving pilot %d", p.ID)
	}

	return p, nil
}

func (s *GormPilotStor) GetPilotByID(id int) (*model.Pilot, error) {
	var p model.Pilot
	if err := s.db.First(&p, id).Error; err != nil {
		return nil, errors.Wrapf(err, "pilot %d", id)
	}

	return &p, nil
}

func (s *GormPilotStor) GetPilotBySlug(slug string) (*model.Pilot, error) {
	var p model.Pilot
	if err := s.db.Where("slug = ?", slug).First(&p).Error; err != nil {
		return nil, errors.Wrapf(err, "pilot '%s'", slug)
	}

	return &p, nil
}

func (s *GormPilotStor) ListPilots() ([]model.Pilot, error) {
	var pilots []model.Pilot
	err := s.db.Order("id").Find(&pilots).Error
	return pilots, err
}

func (s *GormPilotStor) ListPilotsForAPIKey(keyID int) ([]model.Pilot, error) {
	var pilots []model.Pilot
	err := s.db.Where("api_key_id = ?", keyID).Order("id").Find(&pilots).Error
	return pilots, err
}

func (s *GormPilotStor) DeletePilot(id int) error {
	var deleted int64
	err := WithTxRetry(s.db, func(tx *gorm.DB) error {
		result := tx.Delete(&model.Pilot{}, id)
		deleted = result.RowsAffected
		return result.Error
	})

	switch {
	case err != nil:
		return errors.Wrapf(err, "deleting pilot %d", id)
	case deleted == 0:
		return errors.Wrapf(ErrNotFound, "pilot %d", id)
	default:
		return nil
	}
}
