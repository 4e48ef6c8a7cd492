// Handles the "unicloud key" command: encoding a GCS service-account key for
// the SERVICE_KEY_CONTENT environment variable and decoding it back.

package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/unicloudio/unicloud/pkg/gcs"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Service key helpers",
	Long: `Helpers for shipping a service-account key through the environment
instead of a key file. "key encode" turns a key file into a base64 string
suitable for SERVICE_KEY_CONTENT; "key decode" reverses it.`,
}

var keyEncodeCmdConfig struct {
	keyFile string
}

var keyEncodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode a service-account key file for SERVICE_KEY_CONTENT",
	RunE: func(cmd *cobra.Command, args []string) error {
		encoded, err := gcs.EncodeServiceKeyFile(keyEncodeCmdConfig.keyFile)
		if err != nil {
			return errors.Wrap(err, "Key encode command failed")
		}
		fmt.Println(encoded)
		return nil
	},
}

var keyDecodeCmdConfig struct {
	content string
}

var keyDecodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode a SERVICE_KEY_CONTENT value back into key JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := gcs.DecodeServiceKey(keyDecodeCmdConfig.content)
		if err != nil {
			return errors.Wrap(err, "Key decode command failed")
		}
		fmt.Println(string(key))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keyCmd)
	keyCmd.AddCommand(keyEncodeCmd)
	keyCmd.AddCommand(keyDecodeCmd)

	keyEncodeCmd.Flags().StringVarP(&keyEncodeCmdConfig.keyFile, "key-file", "f", "", "path to the service-account key file")
	keyEncodeCmd.MarkFlagRequired("key-file")

	keyDecodeCmd.Flags().StringVarP(&keyDecodeCmdConfig.content, "content", "c", "", "base64 service key content")
	keyDecodeCmd.MarkFlagRequired("content")
}
