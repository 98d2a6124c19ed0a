package main

import "fmt"

import "github.com/spf13/cobra"

// Version should be in format vd.d.d where d is a decimal number
const Version = "v0.1.0"

var versionCmd = &cobra.Command{
	Use:           "version",
	Short:         "Print the version number of fashion_mnist",
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Version: %v\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
