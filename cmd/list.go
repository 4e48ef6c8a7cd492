// Handles the "unicloud object list" command

package cmd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var listCmdConfig struct {
	bucket string
	prefix string
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List object keys in a bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		bucket, err := getBucket(ctx, listCmdConfig.bucket)
		if err != nil {
			return errors.Wrap(err, "List command failed")
		}

		keys, err := bucket.List(ctx, listCmdConfig.prefix)
		if err != nil {
			return errors.Wrap(err, "List command failed")
		}
		for _, key := range keys {
			fmt.Println(key)
		}
		return nil
	},
}

func init() {
	objectCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listCmdConfig.bucket, "bucket", "b", "", "bucket to list")
	listCmd.Flags().StringVarP(&listCmdConfig.prefix, "prefix", "p", "", "only list keys starting with this prefix")
	listCmd.MarkFlagRequired("bucket")
}
