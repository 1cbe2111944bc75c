package stor

import (
	"github.com/minerguide/pilotd/pkg/pilotdb/model"
	"gorm.io/gorm"
)

type GormImplantStor struct {
	db *gorm.DB
}

func NewGormImplantStor(db *gorm.DB) *GormImplantStor {
	return &GormImplantStor{db: db}
}

func (s *GormImplantStor) CreateImplant(imp *model.Implant) (*model.Implant, error) {
	err := WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Create(imp).Error
	})

	if err != nil {
		return nil, err
	}

	return imp, nil
}

func (s *GormImplantStor) ListImplants() ([]model.Implant, error) {
	var implants []model.Implant
	err := s.db.Order("id").Find(&implants).Error
	return implants, err
}
