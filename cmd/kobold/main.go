// Package main is the entry point for the kobold server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kobold",
	Short: "Kobold creature simulation server",
	Long:  `Kobold runs the chat-driven creature simulation core: encounters, captures, growth, evolution, and trades over a websocket gateway.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
