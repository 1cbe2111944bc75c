package roster

import (
	"github.com/minerguide/pilotd/pkg/implant"
	"github.com/minerguide/pilotd/pkg/pilotdb/stor"
)

// CatalogFromStor returns the built-in implants plus the ones stored in s.
// Stored implants override built-in ones with the same id.
func CatalogFromStor(s stor.ImplantStor) (*implant.MapCatalog, error) {
	implants, err := s.ListImplants()
	if err != nil {
		return nil, err
	}

	catalog := implant.Builtin()
	for _, imp := range implants {
		catalog.Add(imp.ToImplant())
	}

	return catalog, nil
}
