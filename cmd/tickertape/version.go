package main

import (
	"fmt"

	"github.com/aretw0/tickertape"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tickertape",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tickertape version %s\n", tickertape.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
