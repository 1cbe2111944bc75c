package cmd

import (
	"context"

	"github.com/apex/log"
	"github.com/spf13/cobra"
)

var (
	keyID    int
	vcode    string
	discover bool
)

var addKeyCmd = &cobra.Command{
	Use:   "add-key",
	Short: "Store an API key, optionally adding the pilots it can see",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := mustOpenRoster()

		if _, err := r.AddAPIKey(keyID, vcode); err != nil {
			return err
		}
		log.Infof("Added API key %d", keyID)

		if !discover {
			return nil
		}

		added, err := r.DiscoverPilots(context.Background(), keyID)
		for _, p := range added {
			log.Infof("Added pilot %d %s", p.ID(), p.Name())
		}

		return err
	},
}

var updateKeyCmd = &cobra.Command{
	Use:   "update-key",
	Short: "Change the verification code of a stored API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		return mustOpenRoster().UpdateVerification(keyID, vcode)
	},
}

func init() {
	rootCmd.AddCommand(addKeyCmd)
	rootCmd.AddCommand(updateKeyCmd)
	updateKeyCmd.Flags().IntVar(&keyID, "key-id", 0, "API key id")
	updateKeyCmd.Flags().StringVar(&vcode, "vcode", "", "new verification code")
	_ = updateKeyCmd.MarkFlagRequired("key-id")
	_ = updateKeyCmd.MarkFlagRequired("vcode")

	addKeyCmd.Flags().IntVar(&keyID, "key-id", 0, "API key id")
	addKeyCmd.Flags().StringVar(&vcode, "vcode", "", "API key verification code")
	addKeyCmd.Flags().BoolVar(&discover, "discover", false, "add the characters visible through the key")
	_ = addKeyCmd.MarkFlagRequired("key-id")
	_ = addKeyCmd.MarkFlagRequired("vcode")
}
