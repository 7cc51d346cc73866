package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/stonefield/jiraSOAP/domain/jira"
)

var serverInfoCmd = &cobra.Command{
	Use:   "server-info",
	Short: "Show server version and build",
	RunE: withClient(func(ctx context.Context, rt *runtime, args []string) error {
		info, err := rt.client.ServerInfo(ctx)
		if err != nil {
			return err
		}
		return printRecord(rt, jira.ServerInfoSchema, info)
	}),
}

var configurationCmd = &cobra.Command{
	Use:   "configuration",
	Short: "Show which server features are switched on",
	RunE: withClient(func(ctx context.Context, rt *runtime, args []string) error {
		cfg, err := rt.client.ServerConfiguration(ctx)
		if err != nil {
			return err
		}
		return printRecord(rt, jira.ServerConfigurationSchema, cfg)
	}),
}

func init() {
	rootCmd.AddCommand(serverInfoCmd)
	rootCmd.AddCommand(configurationCmd)
}
