package stor

import (
	"github.com/hashicorp/go-uuid"
	"github.com/minerguide/pilotd/pkg/pilotdb/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type GormAPIKeyStor struct {
	db *gorm.DB
}

func NewGormAPIKeyStor(db *gorm.DB) *GormAPIKeyStor {
	return &GormAPIKeyStor{db: db}
}

func (s *GormAPIKeyStor) CreateAPIKey(key *model.APIKey) (*model.APIKey, error) {
	var err error

	if key.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Create(key).Error
	})

	if err != nil {
		return nil, errors.Wrapf(err, "creating api key %d", key.ID)
	}

	return key, nil
}

func (s *GormAPIKeyStor) GetAPIKeyByID(id int) (*model.APIKey, error) {
	var key model.APIKey
	if err := s.db.First(&key, id).Error; err != nil {
		return nil, errors.Wrapf(err, "api key %d", id)
	}

	return &key, nil
}

func (s *GormAPIKeyStor) ListAPIKeys() ([]model.APIKey, error) {
	var keys []model.APIKey
	err := s.db.Order("id").Find(&keys).Error
	return keys, err
}

func (s *GormAPIKeyStor) UpdateVerification(id int, vcode string) (*model.APIKey, error) {
	key, err := s.GetAPIKeyByID(id)
	if err != nil {
		return nil, err
	}

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Model(key).Update("vcode", vcode).Error
	})

	if err != nil {
		return nil, errors.Wrapf(err, "updating api key %d", id)
	}

	key.VCode = vcode

	return key, nil
}
