package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ptiller/driveorg/internal/domain"
	"github.com/ptiller/driveorg/internal/resolve"
	"github.com/ptiller/driveorg/internal/storage/gdrive"
)

var ensureCaseInsensitive bool

var ensureCmd = &cobra.Command{
	Use:   "ensure <path>",
	Short: "Create a folder path, reusing existing segments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := gdrive.New(cmd.Context(), accessToken)
		if err != nil {
			return err
		}

		match := domain.MatchExact
		if ensureCaseInsensitive {
			match = domain.MatchFold
		}

		folderID, created, err := resolve.New(client, match).EnsurePath(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if created {
			fmt.Printf("created %s (folder id %s)\n", args[0], folderID)
		} else {
			fmt.Printf("exists %s (folder id %s)\n", args[0], folderID)
		}
		return nil
	},
}

func init() {
	ensureCmd.Flags().BoolVar(&ensureCaseInsensitive, "case-insensitive", false, "match existing folder names case-insensitively")
	rootCmd.AddCommand(ensureCmd)
}
