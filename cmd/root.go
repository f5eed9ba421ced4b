package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Kshitijkb28/port-manager/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "port-manager",
	Short: "Port Manager - monitor and kill processes on network ports",
	Long: `Port Manager inventories the network sockets bound by local processes,
classifies each owner by application framework, resolves the controller
process tree behind it, and can terminate a process or its whole tree.

Run 'port-manager list' for a one-shot view, 'port-manager interactive'
for the TUI, or 'port-manager serve' for the HTTP API.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose output")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(killCmd)
	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(logsCmd)
}

func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if verbose {
		cfg.Notifications.Verbose = true
	}
	config.Global = cfg
}
