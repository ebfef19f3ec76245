package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ptiller/driveorg/internal/scan"
	"github.com/ptiller/driveorg/internal/storage/gdrive"
)

var (
	scanDepth int
	scanJSON  bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Discover the Drive folder topology",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := gdrive.New(cmd.Context(), accessToken)
		if err != nil {
			return err
		}

		result, err := scan.NewScanner(client).Scan(cmd.Context(), scanDepth)
		if err != nil {
			return err
		}

		if scanJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		for _, path := range result.Paths {
			fmt.Println(path)
		}
		fmt.Printf("%d folders\n", len(result.Folders))
		return nil
	},
}

func init() {
	scanCmd.Flags().IntVar(&scanDepth, "depth", 2, "maximum folder depth to walk")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "print the full scan result as JSON")
	rootCmd.AddCommand(scanCmd)
}
