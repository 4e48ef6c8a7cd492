// Handles the "unicloud object delete" command

package cmd

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var deleteCmdConfig struct {
	bucket string
	key    string
}

var deleteCmd = &cobra.Command{
	Use:     "delete",
	Aliases: []string{"rm"},
	Short:   "Delete an object from a bucket",
	Long: `Deletes one object, or everything under a prefix when the key ends in
"/". Deleting a missing key is an error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		bucket, err := getBucket(ctx, deleteCmdConfig.bucket)
		if err != nil {
			return errors.Wrap(err, "Delete command failed")
		}

		if err := bucket.Delete(ctx, deleteCmdConfig.key); err != nil {
			return errors.Wrap(err, "Delete command failed")
		}
		ucManager.Logger.Info("Deleted " + deleteCmdConfig.bucket + "/" + deleteCmdConfig.key)
		return nil
	},
}

func init() {
	objectCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().StringVarP(&deleteCmdConfig.bucket, "bucket", "b", "", "bucket holding the object")
	deleteCmd.Flags().StringVarP(&deleteCmdConfig.key, "key", "k", "", "object key (end with / to delete a whole prefix)")
	deleteCmd.MarkFlagRequired("bucket")
	deleteCmd.MarkFlagRequired("key")
}
