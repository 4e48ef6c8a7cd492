// Handles the "unicloud object" command. This command exists solely to
// contain the per-object subcommands (upload, download, list, etc..)

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/unicloudio/unicloud/pkg/unicloud"
)

// objectCmd represents the object command
var objectCmd = &cobra.Command{
	Use:   "object",
	Short: "Object storage interaction",
	Long:  `Commands for moving objects in and out of your configured storage provider.`,
}

func init() {
	rootCmd.AddCommand(objectCmd)
}

// getBucket resolves a bucket name into a handle on the configured provider.
func getBucket(ctx context.Context, name string) (unicloud.Bucket, error) {
	return ucManager.Provider.ObjStore.GetBucket(ctx, name)
}
