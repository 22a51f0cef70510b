package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"viewstate/config"
	"viewstate/internal/tui"
	"viewstate/version"
)

var rootCmd = &cobra.Command{
	Use:   "viewstate",
	Short: "Dashboard demo for per-key busy/error view-model tracking",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadDemo()
		if err != nil {
			log.Fatalf("Failed to load demo config: %v", err)
		}

		cfgPath, err := config.GetDemoConfigFile()
		if err != nil {
			// No config dir; run without hot reload.
			cfgPath = ""
		}

		if err := tui.Start(cfg, cfgPath); err != nil {
			log.Fatal(err)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Get())
	},
}

func main() {
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
