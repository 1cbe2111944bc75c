package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <pilot-id>",
	Short: "Write a pilot's XML document to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid pilot id '%s'", args[0])
		}

		p, ok := mustOpenRoster().Get(id)
		if !ok {
			return fmt.Errorf("no pilot %d", id)
		}

		_, err = p.Serialize().WriteTo(os.Stdout)
		return err
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
