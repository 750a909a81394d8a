package main

import (
	"github.com/spf13/cobra"

	"goal-tracker/internal/delivery/http/handler"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("goal-tracker version %s\n", handler.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
