package main

import (
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	configPath  string
	accessToken string
)

var rootCmd = &cobra.Command{
	Use:   "driveorg",
	Short: "Organize documents into a Google Drive folder hierarchy",
	Long: `driveorg discovers a Drive folder topology, classifies documents,
suggests a destination folder and files them there, creating missing
path segments on the way.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&accessToken, "access-token", "", "Google OAuth2 access token (default: application default credentials)")
}
