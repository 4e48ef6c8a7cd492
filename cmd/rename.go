// Handles the "unicloud object rename" command

package cmd

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var renameCmdConfig struct {
	bucket string
	from   string
	to     string
}

var renameCmd = &cobra.Command{
	Use:     "rename",
	Aliases: []string{"mv"},
	Short:   "Rename an object within a bucket",
	Long: `Renames an object by copying it to the new key and deleting the old
one. This is not atomic: if the delete fails after the copy succeeded, both
keys will exist.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		bucket, err := getBucket(ctx, renameCmdConfig.bucket)
		if err != nil {
			return errors.Wrap(err, "Rename command failed")
		}

		if err := bucket.Rename(ctx, renameCmdConfig.from, renameCmdConfig.to); err != nil {
			return errors.Wrap(err, "Rename command failed")
		}
		ucManager.Logger.Info("Renamed " + renameCmdConfig.from + " to " + renameCmdConfig.to)
		return nil
	},
}

func init() {
	objectCmd.AddCommand(renameCmd)

	renameCmd.Flags().StringVarP(&renameCmdConfig.bucket, "bucket", "b", "", "bucket holding the object")
	renameCmd.Flags().StringVar(&renameCmdConfig.from, "from", "", "current object key")
	renameCmd.Flags().StringVar(&renameCmdConfig.to, "to", "", "new object key")
	renameCmd.MarkFlagRequired("bucket")
	renameCmd.MarkFlagRequired("from")
	renameCmd.MarkFlagRequired("to")
}
