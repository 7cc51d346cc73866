package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stonefield/jiraSOAP/domain/jira"
)

var prioritiesCmd = &cobra.Command{
	Use:   "priorities",
	Short: "List issue priorities",
	RunE: withClient(func(ctx context.Context, rt *runtime, args []string) error {
		items, err := rt.client.Priorities(ctx)
		if err != nil {
			return err
		}
		return printList(rt, jira.PrioritySchema, items, "icon")
	}),
}

var statusesCmd = &cobra.Command{
	Use:   "statuses",
	Short: "List issue statuses",
	RunE: withClient(func(ctx context.Context, rt *runtime, args []string) error {
		items, err := rt.client.Statuses(ctx)
		if err != nil {
			return err
		}
		return printList(rt, jira.StatusSchema, items, "icon")
	}),
}

var resolutionsCmd = &cobra.Command{
	Use:   "resolutions",
	Short: "List issue resolutions",
	RunE: withClient(func(ctx context.Context, rt *runtime, args []string) error {
		items, err := rt.client.Resolutions(ctx)
		if err != nil {
			return err
		}
		return printList(rt, jira.ResolutionSchema, items, "icon")
	}),
}

var (
	issueTypesSubtasks bool
	issueTypesProject  string
)

var issueTypesCmd = &cobra.Command{
	Use:   "issue-types",
	Short: "List issue types",
	Long: `List issue types.

Examples:
  jirasoap issue-types
  jirasoap issue-types --subtasks
  jirasoap issue-types --project 10000`,
	RunE: withClient(func(ctx context.Context, rt *runtime, args []string) error {
		var (
			items []*jira.IssueType
			err   error
		)
		switch {
		case issueTypesProject != "":
			items, err = rt.client.IssueTypesForProject(ctx, issueTypesProject)
		case issueTypesSubtasks:
			items, err = rt.client.SubtaskIssueTypes(ctx)
		default:
			items, err = rt.client.IssueTypes(ctx)
		}
		if err != nil {
			return err
		}
		return printList(rt, jira.IssueTypeSchema, items, "icon")
	}),
}

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "List favourite filters",
	RunE: withClient(func(ctx context.Context, rt *runtime, args []string) error {
		items, err := rt.client.FavouriteFilters(ctx)
		if err != nil {
			return err
		}
		return printList(rt, jira.FilterSchema, items, "xml")
	}),
}

var filterCountCmd = &cobra.Command{
	Use:   "filter-count <filter-id>",
	Short: "Count the issues a saved filter matches",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, rt *runtime, args []string) error {
		n, err := rt.client.FilterIssueCount(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(rt.out, n)
		return nil
	}),
}

var commentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "Read and add issue comments",
	Long: `Read and add issue comments.

Examples:
  jirasoap comments list ABC-1
  jirasoap comments get 10200
  jirasoap comments add ABC-1 "Fixed in 2.0"`,
}

var commentsListCmd = &cobra.Command{
	Use:   "list <issue-key>",
	Short: "List the comments on an issue",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, rt *runtime, args []string) error {
		items, err := rt.client.Comments(ctx, args[0])
		if err != nil {
			return err
		}
		return printList(rt, jira.CommentSchema, items)
	}),
}

var commentsGetCmd = &cobra.Command{
	Use:   "get <comment-id>",
	Short: "Show one comment",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, rt *runtime, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid comment id %q", args[0])
		}
		c, err := rt.client.Comment(ctx, id)
		if err != nil {
			return err
		}
		return printRecord(rt, jira.CommentSchema, c)
	}),
}

var (
	commentGroup string
	commentRole  string
)

var commentsAddCmd = &cobra.Command{
	Use:   "add <issue-key> <body>",
	Short: "Add a comment to an issue",
	Args:  cobra.ExactArgs(2),
	RunE: withClient(func(ctx context.Context, rt *runtime, args []string) error {
		c := &jira.Comment{Body: jira.Ptr(args[1])}
		if commentGroup != "" {
			c.GroupLevel = jira.Ptr(commentGroup)
		}
		if commentRole != "" {
			c.RoleLevel = jira.Ptr(commentRole)
		}
		if err := rt.client.AddComment(ctx, args[0], c); err != nil {
			return err
		}
		printDone(rt, "Commented on %s", args[0])
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(prioritiesCmd)
	rootCmd.AddCommand(statusesCmd)
	rootCmd.AddCommand(resolutionsCmd)
	rootCmd.AddCommand(issueTypesCmd)
	rootCmd.AddCommand(filtersCmd)
	rootCmd.AddCommand(filterCountCmd)
	rootCmd.AddCommand(commentsCmd)

	commentsCmd.AddCommand(commentsListCmd)
	commentsCmd.AddCommand(commentsGetCmd)
	commentsCmd.AddCommand(commentsAddCmd)

	issueTypesCmd.Flags().BoolVar(&issueTypesSubtasks, "subtasks", false, "list sub-task types")
	issueTypesCmd.Flags().StringVar(&issueTypesProject, "project", "", "list types usable in this project id")
	commentsAddCmd.Flags().StringVar(&commentGroup, "group", "", "restrict visibility to a group")
	commentsAddCmd.Flags().StringVar(&commentRole, "role", "", "restrict visibility to a project role")
}
