package main

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tonic",
	Short: "Personal music player with a real signal chain and smart mixes",
}

func init() {
	rootCmd.AddCommand(serveCmd, playCmd, mixCmd, versionCmd)
}
