package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stonefield/jiraSOAP/core/entity"
	"github.com/stonefield/jiraSOAP/domain/jira"
)

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "Manage project versions",
	Long: `Manage the versions of a project.

Examples:
  jirasoap versions list ABC
  jirasoap versions add ABC 2.0 --release-date 2024-06-30
  jirasoap versions release ABC 2.0
  jirasoap versions archive ABC 1.0`,
}

var versionsListCmd = &cobra.Command{
	Use:   "list <project-key>",
	Short: "List versions in server order",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, rt *runtime, args []string) error {
		versions, err := rt.client.Versions(ctx, args[0])
		if err != nil {
			return err
		}
		return printList(rt, jira.VersionSchema, versions)
	}),
}

var versionReleaseDate string

var versionsAddCmd = &cobra.Command{
	Use:   "add <project-key> <name>",
	Short: "Add a version",
	Args:  cobra.ExactArgs(2),
	RunE: withClient(func(ctx context.Context, rt *runtime, args []string) error {
		v := &jira.Version{}
		v.Name = jira.Ptr(args[1])
		if versionReleaseDate != "" {
			d, err := time.Parse(entity.DateLayout, versionReleaseDate)
			if err != nil {
				return fmt.Errorf("invalid --release-date: %w", err)
			}
			v.ReleaseDate = &d
		}

		created, err := rt.client.AddVersion(ctx, args[0], v)
		if err != nil {
			return err
		}
		return printRecord(rt, jira.VersionSchema, created)
	}),
}

var versionsReleaseCmd = &cobra.Command{
	Use:   "release <project-key> <name>",
	Short: "Mark a version released",
	Args:  cobra.ExactArgs(2),
	RunE: withClient(func(ctx context.Context, rt *runtime, args []string) error {
		v, err := findVersion(ctx, rt, args[0], args[1])
		if err != nil {
			return err
		}
		v.Released = jira.Ptr(true)
		if v.ReleaseDate == nil {
			today := rt.clock.Now()
			v.ReleaseDate = &today
		}
		if err := rt.client.ReleaseVersion(ctx, args[0], v); err != nil {
			return err
		}
		printDone(rt, "Released %s %s", args[0], args[1])
		return nil
	}),
}

var versionUnarchive bool

var versionsArchiveCmd = &cobra.Command{
	Use:   "archive <project-key> <name>",
	Short: "Archive (or with --undo, unarchive) a version",
	Args:  cobra.ExactArgs(2),
	RunE: withClient(func(ctx context.Context, rt *runtime, args []string) error {
		if err := rt.client.ArchiveVersion(ctx, args[0], args[1], !versionUnarchive); err != nil {
			return err
		}
		if versionUnarchive {
			printDone(rt, "Unarchived %s %s", args[0], args[1])
		} else {
			printDone(rt, "Archived %s %s", args[0], args[1])
		}
		return nil
	}),
}

func findVersion(ctx context.Context, rt *runtime, projectKey, name string) (*jira.Version, error) {
	versions, err := rt.client.Versions(ctx, projectKey)
	if err != nil {
		return nil, err
	}
	for _, v := range versions {
		if jira.Value(v.Name) == name {
			return v, nil
		}
	}
	return nil, fmt.Errorf("version %q not found in %s", name, projectKey)
}

func init() {
	rootCmd.AddCommand(versionsCmd)
	versionsCmd.AddCommand(versionsListCmd)
	versionsCmd.AddCommand(versionsAddCmd)
	versionsCmd.AddCommand(versionsReleaseCmd)
	versionsCmd.AddCommand(versionsArchiveCmd)

	versionsAddCmd.Flags().StringVar(&versionReleaseDate, "release-date", "", "planned release date (YYYY-MM-DD)")
	versionsArchiveCmd.Flags().BoolVar(&versionUnarchive, "undo", false, "unarchive instead")
}
