package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/apex/log"
	"github.com/minerguide/pilotd/pkg/implant"
	"github.com/minerguide/pilotd/pkg/pilotdb"
	"github.com/minerguide/pilotd/pkg/pilotdb/stor"
	"github.com/minerguide/pilotd/pkg/roster"
	"github.com/spf13/cobra"
)

var implantsCmd = &cobra.Command{
	Use:   "implants",
	Short: "List the known implants by slot",
	RunE: func(cmd *cobra.Command, args []string) error {
		db := pilotdb.MustConnectToDB(settings.DBDriver, settings.DBDSN)
		catalog, err := roster.CatalogFromStor(stor.NewGormImplantStor(db))
		if err != nil {
			log.Errorf("Unable to load implant catalog: %s", err)
			return err
		}

		writeImplants(os.Stdout, catalog)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(implantsCmd)
}

func writeImplants(w io.Writer, catalog *implant.MapCatalog) {
	var rows [][]string
	for _, slot := range implant.Slots {
		for _, imp := range catalog.ForSlot(slot) {
			rows = append(rows, []string{
				strconv.Itoa(slot),
				strconv.Itoa(imp.ID),
				imp.Name,
				fmt.Sprintf("%g%%", imp.Bonus),
			})
		}
	}

	writeTable(w, []string{"slot", "implant_id", "name", "bonus"}, rows)
}
