package cmd

import (
	"fmt"
	"strconv"

	"github.com/apex/log"
	"github.com/minerguide/pilotd/pkg/roster"
	"github.com/spf13/cobra"
)

var (
	pilotKeyID int
	pilotID    int
	pilotName  string
)

var addPilotCmd = &cobra.Command{
	Use:   "add-pilot",
	Short: "Add a blank pilot owned by an API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := mustOpenRoster()

		p, err := r.AddPilot(pilotKeyID, pilotID, pilotName)
		if err != nil {
			return err
		}

		log.Infof("Added pilot %d %s (%s)", p.ID(), p.Name(), p.Slug())
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <pilot-id>",
	Short: "Remove a pilot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid pilot id '%s'", args[0])
		}

		return mustOpenRoster().Remove(id)
	},
}

var rekeyCmd = &cobra.Command{
	Use:   "rekey <pilot-id>",
	Short: "Move a pilot to another API key",
	Long: `Move a pilot to another API key. The pilot's skills and implants are
cleared; refresh it to load them through the new key.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid pilot id '%s'", args[0])
		}

		return rekeyPilot(mustOpenRoster(), id, pilotKeyID)
	},
}

func rekeyPilot(r *roster.Roster, pilotID, keyID int) error {
	p, err := r.Rekey(pilotID, keyID)
	if err != nil {
		return err
	}

	log.Infof("Pilot %d %s now uses API key %d", p.ID(), p.Name(), keyID)
	return nil
}

func init() {
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(rekeyCmd)
	rekeyCmd.Flags().IntVar(&pilotKeyID, "key-id", 0, "API key to move the pilot to")
	_ = rekeyCmd.MarkFlagRequired("key-id")

	rootCmd.AddCommand(addPilotCmd)
	addPilotCmd.Flags().IntVar(&pilotKeyID, "key-id", 0, "API key owning the pilot")
	addPilotCmd.Flags().IntVar(&pilotID, "id", 0, "character id")
	addPilotCmd.Flags().StringVar(&pilotName, "name", "", "character name")
	_ = addPilotCmd.MarkFlagRequired("key-id")
	_ = addPilotCmd.MarkFlagRequired("id")
	_ = addPilotCmd.MarkFlagRequired("name")
}
