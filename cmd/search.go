// Handles the "unicloud object search" command

package cmd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var searchCmdConfig struct {
	bucket  string
	pattern string
	dir     string
}

var searchCmd = &cobra.Command{
	Use:     "search",
	Aliases: []string{"find"},
	Short:   "Find objects matching a glob pattern",
	Long: `Lists the object keys matching a glob pattern, e.g.
"unicloud object search -b my-bucket -p '*.txt' --dir data/".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		bucket, err := getBucket(ctx, searchCmdConfig.bucket)
		if err != nil {
			return errors.Wrap(err, "Search command failed")
		}

		matches, err := bucket.Search(ctx, searchCmdConfig.pattern, searchCmdConfig.dir)
		if err != nil {
			return errors.Wrap(err, "Search command failed")
		}
		for _, key := range matches {
			fmt.Println(key)
		}
		return nil
	},
}

func init() {
	objectCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchCmdConfig.bucket, "bucket", "b", "", "bucket to search")
	searchCmd.Flags().StringVarP(&searchCmdConfig.pattern, "pattern", "p", "*", "glob pattern to match keys against")
	searchCmd.Flags().StringVar(&searchCmdConfig.dir, "dir", "", "restrict the search to this directory prefix")
	searchCmd.MarkFlagRequired("bucket")
}
