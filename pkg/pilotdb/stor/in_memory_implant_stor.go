package stor

import (
	"sync"

	"github.com/minerguide/pilotd/pkg/pilotdb/model"
)

type InMemoryImplantStor struct {
	mu       sync.Mutex
	implants []model.Implant
}

func NewInMemoryImplantStor(implants ...model.Implant) *InMemoryImplantStor {
	return &InMemoryImplantStor{implants: implants}
}

func (s *InMemoryImplantStor) CreateImplant(imp *model.Implant) (*model.Implant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.implants = append(s.implants, *imp)
	return imp, nil
}

func (s *InMemoryImplantStor) ListImplants() ([]model.Implant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Implant(nil), s.implants...), nil
}
