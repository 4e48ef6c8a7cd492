// Handles the "unicloud bucket" command

package cmd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// bucketCmd represents the bucket command
var bucketCmd = &cobra.Command{
	Use:   "bucket",
	Short: "Bucket interaction",
	Long:  `Commands for dealing with the buckets visible to your configured provider.`,
}

var bucketListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the buckets visible to the configured account",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := ucManager.Provider.ObjStore.ListBuckets(context.Background())
		if err != nil {
			return errors.Wrap(err, "Bucket list command failed")
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bucketCmd)
	bucketCmd.AddCommand(bucketListCmd)
}
