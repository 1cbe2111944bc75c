package cmd

import (
	"os"

	"github.com/apex/log"
	"github.com/minerguide/pilotd/pkg/clog"
	"github.com/minerguide/pilotd/pkg/config"
	"github.com/minerguide/pilotd/pkg/eveapi"
	"github.com/minerguide/pilotd/pkg/pilotdb"
	"github.com/minerguide/pilotd/pkg/pilotdb/stor"
	"github.com/minerguide/pilotd/pkg/roster"
	"github.com/spf13/cobra"
)

var (
	dotenvPath string
	settings   config.Settings
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pilotd",
	Short: "Keep mining pilots in sync with the EVE API",
	Long: `pilotd tracks mining characters: their skills and the implants in
slots 7, 8 and 10. Pilots are refreshed from the character sheet of the
API key that owns them and stored in a local database.`,
	Version: config.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c := config.MustLoadFromDotenv(dotenvPath)
		settings = config.LoadSettings(c)

		if _, err := clog.Setup(os.Stderr, settings.LogLevel); err != nil {
			return err
		}

		stor.SetTxRetry(settings.TxRetry)
		return nil
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	defaultDotenv := os.Getenv("PILOTD_DOTENV_PATH")
	if defaultDotenv == "" {
		defaultDotenv = ".env"
	}

	rootCmd.PersistentFlags().StringVar(&dotenvPath, "dotenv", defaultDotenv, "dotenv file to load settings from")
}

// mustOpenRoster connects to the configured database and loads the roster
// with the stored implants added to the built-in catalog.
func mustOpenRoster() *roster.Roster {
	db := pilotdb.MustConnectToDB(settings.DBDriver, settings.DBDSN)
	stors := stor.NewGormStors(db)

	catalog, err := roster.CatalogFromStor(stors.ImplantStor)
	if err != nil {
		log.Fatalf("Unable to load implant catalog: %s", err)
	}

	r := roster.New(roster.Options{
		Fetcher: eveapi.NewClient(eveapi.Options{
			BaseURL:   settings.APIBaseURL,
			UserAgent: settings.UserAgent,
			Timeout:   settings.APITimeout,
		}),
		Catalog:        catalog,
		Stors:          stors,
		RefreshWorkers: settings.RefreshWorkers,
	})

	if err := r.Load(); err != nil {
		log.Warnf("Some pilots could not be loaded: %s", err)
	}

	return r
}
