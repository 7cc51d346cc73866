package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stonefield/jiraSOAP/adapters/sqlite"
	"github.com/stonefield/jiraSOAP/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration",
	Long: `Validate the jirasoap configuration.

Checks:
  - Config file (or JIRASOAP_* environment) loads
  - Required fields are present
  - Session store opens (optional)
  - Server accepts a login (optional, needs auth.username/password)

Examples:
  jirasoap validate
  jirasoap validate --check-login --config ./jirasoap.yaml`,
	RunE: runValidate,
}

var (
	validateCheckStore bool
	validateCheckLogin bool
)

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateCheckStore, "check-store", false, "check that the session store opens")
	validateCmd.Flags().BoolVar(&validateCheckLogin, "check-login", false, "log in with the configured credentials")
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	fmt.Fprintf(out, "Validating %s...\n\n", path)

	if _, err := os.Stat(path); err != nil {
		if !config.HasEnvConfig() {
			fmt.Fprintf(out, "  %s Config file exists\n", crossMark)
			return fmt.Errorf("config file not found: %s", path)
		}
		fmt.Fprintf(out, "  %s Using JIRASOAP_* environment\n", checkMark)
	} else {
		fmt.Fprintf(out, "  %s Config file exists\n", checkMark)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(out, "  %s Config valid\n", crossMark)
		return fmt.Errorf("config error: %w", err)
	}
	fmt.Fprintf(out, "  %s Config valid\n", checkMark)

	fmt.Fprintf(out, "  %s Endpoint: %s%s\n", checkMark, cfg.Endpoint.URL, cfg.Endpoint.Path)
	fmt.Fprintf(out, "  %s Timeout: %s\n", checkMark, cfg.Endpoint.Timeout)
	fmt.Fprintf(out, "  %s Session store: %s (%s)\n", checkMark, cfg.Session.Store, cfg.Session.DSN)

	if validateCheckStore && cfg.Session.Store == "sqlite" {
		db, err := sqlite.OpenMigrated(cfg.Session.DSN)
		if err != nil {
			fmt.Fprintf(out, "  %s Session store opens\n", crossMark)
			fmt.Fprintf(out, "      Error: %v\n", err)
		} else {
			db.Close()
			fmt.Fprintf(out, "  %s Session store opens\n", checkMark)
		}
	}

	if validateCheckLogin {
		rt, err := newRuntime(cfg, setupLogger(cfg.Logging), nil)
		if err != nil {
			return err
		}
		defer rt.Close()

		if _, err := rt.client.Login(cmd.Context(), cfg.Auth.Username, cfg.Auth.Password); err != nil {
			fmt.Fprintf(out, "  %s Login as %q\n", crossMark, cfg.Auth.Username)
			fmt.Fprintf(out, "      Error: %v\n", err)
		} else {
			fmt.Fprintf(out, "  %s Login as %q\n", checkMark, cfg.Auth.Username)
		}
	}

	fmt.Fprintln(out, "\nConfiguration is valid.")
	return nil
}
