// Handles the "unicloud object upload" command

package cmd

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/unicloudio/unicloud/pkg/unicloud"
)

var uploadCmdConfig struct {
	source    string
	dest      string
	overwrite bool
}

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a local file or directory to a bucket",
	Long: `Uploads a local file (or every file under a local directory) to the
destination "bucket-name/object/path" on the configured provider.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		bucketName, key, err := unicloud.SplitRemotePath(uploadCmdConfig.dest)
		if err != nil {
			return errors.Wrap(err, "Bad destination path")
		}

		bucket, err := getBucket(ctx, bucketName)
		if err != nil {
			return errors.Wrap(err, "Upload command failed")
		}

		if err := bucket.Upload(ctx, uploadCmdConfig.source, key, uploadCmdConfig.overwrite); err != nil {
			return errors.Wrap(err, "Upload command failed")
		}
		ucManager.Logger.Info("Uploaded " + uploadCmdConfig.source + " to " + uploadCmdConfig.dest)
		return nil
	},
}

func init() {
	objectCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().StringVarP(&uploadCmdConfig.source, "source", "s", "", "local file or directory to upload")
	uploadCmd.Flags().StringVarP(&uploadCmdConfig.dest, "dest", "d", "", "destination as bucket-name/object/path")
	uploadCmd.Flags().BoolVarP(&uploadCmdConfig.overwrite, "overwrite", "o", false, "replace the remote object if it already exists")
	uploadCmd.MarkFlagRequired("source")
	uploadCmd.MarkFlagRequired("dest")
}
