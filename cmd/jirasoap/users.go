package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stonefield/jiraSOAP/domain/jira"
)

var userCmd = &cobra.Command{
	Use:   "user <username>",
	Short: "Show a user",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, rt *runtime, args []string) error {
		u, err := rt.client.User(ctx, args[0])
		if err != nil {
			return err
		}
		if u == nil {
			return fmt.Errorf("user %q not found", args[0])
		}
		return printRecord(rt, jira.UserSchema, u)
	}),
}

var groupCmd = &cobra.Command{
	Use:   "group <name>",
	Short: "List the members of a group",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, rt *runtime, args []string) error {
		g, err := rt.client.Group(ctx, args[0])
		if err != nil {
			return err
		}
		if g == nil {
			return fmt.Errorf("group %q not found", args[0])
		}
		return printList(rt, jira.UserSchema, g.Users)
	}),
}

func init() {
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(groupCmd)
}
