// Handles the "unicloud object exists" command

package cmd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var existsCmdConfig struct {
	bucket string
	key    string
}

var existsCmd = &cobra.Command{
	Use:   "exists",
	Short: "Check whether an object exists",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		bucket, err := getBucket(ctx, existsCmdConfig.bucket)
		if err != nil {
			return errors.Wrap(err, "Exists command failed")
		}

		found, err := bucket.Exists(ctx, existsCmdConfig.key)
		if err != nil {
			return errors.Wrap(err, "Exists command failed")
		}
		fmt.Println(found)
		return nil
	},
}

func init() {
	objectCmd.AddCommand(existsCmd)

	existsCmd.Flags().StringVarP(&existsCmdConfig.bucket, "bucket", "b", "", "bucket holding the object")
	existsCmd.Flags().StringVarP(&existsCmdConfig.key, "key", "k", "", "object key")
	existsCmd.MarkFlagRequired("bucket")
	existsCmd.MarkFlagRequired("key")
}
