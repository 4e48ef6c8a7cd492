// Root of command-line argument parsing.
// This file was based off the standard cobra template, see
// https://github.com/spf13/cobra
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/unicloudio/unicloud/pkg/ucmgr"
)

var cfgFile string

var ucManager *ucmgr.Manager

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "unicloud",
	Short: "Uniform cloud object storage",
	Long: `One command line for moving files in and out of AWS S3, Google Cloud
Storage, and local object stores through a single uniform interface.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// The key helpers are purely local and don't need a provider config.
		if cmd.HasParent() && cmd.Parent().Name() == "key" {
			return
		}

		mgrArgs := map[string]interface{}{}
		if cfgFile != "" {
			mgrArgs["config-file"] = cfgFile
		}

		var err error
		ucManager, err = ucmgr.NewManager(mgrArgs)
		if err != nil {
			fmt.Printf("Failed to initialize unicloud manager: %v\n", err)
			os.Exit(1)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if ucManager != nil {
			ucManager.Destroy()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if ucManager == nil || ucManager.Logger == nil {
			fmt.Printf("%v\n", err)
		} else {
			ucManager.Logger.Error(err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is configs/unicloud.yaml)")
}
