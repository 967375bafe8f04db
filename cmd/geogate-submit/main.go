package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"geogate/internal/client"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		url     string
		keyPath string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "geogate-submit <file.geojson>",
		Short: "Submit a GeoJSON feature collection to geogate",
		Long: `Submit a GeoJSON feature collection to geogate.

The API key is read from a JSON file of the form {"key": "..."} and sent
in the x-api-key header. Pass an empty --key-file to send no key.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			c := &client.Client{URL: url, Timeout: timeout}
			if keyPath != "" {
				if c.APIKey, err = client.LoadAPIKey(keyPath); err != nil {
					return err
				}
			}

			resp, err := c.Submit(payload)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", resp.StatusCode, resp.Body)
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("submission rejected with status %d", resp.StatusCode)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "http://localhost:8080/submissions", "submission endpoint")
	cmd.Flags().StringVar(&keyPath, "key-file", "aws-key.json", "JSON file holding the API key")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")
	return cmd
}
