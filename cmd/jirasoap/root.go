package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile      string
	outputFormat string
	logLevel     string
	columns      []string
	noHeader     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jirasoap",
	Short: "Command-line client for the JIRA SOAP service",
	Long: `jirasoap talks to a JIRA server over its SOAP interface.

Log in once; the token is kept in the session store and reused by
later commands until you log out or it goes stale.

Quick start:
  jirasoap login alice          # Prompts for the password
  jirasoap projects             # List projects
  jirasoap versions list ABC    # List versions of project ABC

Configuration is read from --config, the per-user config file, or
JIRASOAP_* environment variables.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: per-user config)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table, json, yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringSliceVar(&columns, "columns", nil, "attributes to print, comma separated")
	rootCmd.PersistentFlags().BoolVar(&noHeader, "no-header", false, "omit the table header")
}
