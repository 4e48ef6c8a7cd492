// Handles the "unicloud object download" command

package cmd

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/unicloudio/unicloud/pkg/unicloud"
)

var downloadCmdConfig struct {
	source string
	dest   string
}

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download an object to a local path",
	Long: `Downloads "bucket-name/object/path" to a local file, overwriting it if
it exists. A source ending in "/" downloads everything under that prefix.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		bucketName, key, err := unicloud.SplitRemotePath(downloadCmdConfig.source)
		if err != nil {
			return errors.Wrap(err, "Bad source path")
		}
		if key == "" {
			return errors.New("Source path names no object")
		}

		bucket, err := getBucket(ctx, bucketName)
		if err != nil {
			return errors.Wrap(err, "Download command failed")
		}

		if err := bucket.Download(ctx, key, downloadCmdConfig.dest); err != nil {
			return errors.Wrap(err, "Download command failed")
		}
		ucManager.Logger.Info("Downloaded " + downloadCmdConfig.source + " to " + downloadCmdConfig.dest)
		return nil
	},
}

func init() {
	objectCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringVarP(&downloadCmdConfig.source, "source", "s", "", "source as bucket-name/object/path")
	downloadCmd.Flags().StringVarP(&downloadCmdConfig.dest, "dest", "d", "", "local destination path")
	downloadCmd.MarkFlagRequired("source")
	downloadCmd.MarkFlagRequired("dest")
}
