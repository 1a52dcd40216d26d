package main

import (
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print the version number",
	Annotations: map[string]string{annotationNoConfig: "true"},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("productsearch version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
