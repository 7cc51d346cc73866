package main

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stonefield/jiraSOAP/domain/jira"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects",
	RunE: withClient(func(ctx context.Context, rt *runtime, args []string) error {
		projects, err := rt.client.Projects(ctx)
		if err != nil {
			return err
		}
		return printList(rt, jira.ProjectSchema, projects, "description", "issueSecurityScheme", "notificationScheme", "permissionScheme")
	}),
}

var projectSchemes bool

var projectCmd = &cobra.Command{
	Use:   "project <key-or-id>",
	Short: "Show one project",
	Long: `Show one project by key, or by numeric id.

With --schemes the project is fetched by id together with its
notification, permission and issue security schemes.

Examples:
  jirasoap project ABC
  jirasoap project 10000 --schemes`,
	Args: cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, rt *runtime, args []string) error {
		var (
			p   *jira.Project
			err error
		)
		id, idErr := strconv.ParseInt(args[0], 10, 64)
		switch {
		case idErr == nil && projectSchemes:
			p, err = rt.client.ProjectWithSchemes(ctx, id)
		case idErr == nil:
			p, err = rt.client.ProjectByID(ctx, id)
		default:
			p, err = rt.client.ProjectByKey(ctx, args[0])
		}
		if err != nil {
			return err
		}
		return printRecord(rt, jira.ProjectSchema, p)
	}),
}

var projectDeleteCmd = &cobra.Command{
	Use:   "project-delete <key>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, rt *runtime, args []string) error {
		if err := rt.client.DeleteProject(ctx, args[0]); err != nil {
			return err
		}
		printDone(rt, "Deleted project %s", args[0])
		return nil
	}),
}

var componentsCmd = &cobra.Command{
	Use:   "components <project-key>",
	Short: "List the components of a project",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, rt *runtime, args []string) error {
		components, err := rt.client.Components(ctx, args[0])
		if err != nil {
			return err
		}
		return printList(rt, jira.ComponentSchema, components)
	}),
}

var avatarsSystem bool

var avatarsCmd = &cobra.Command{
	Use:   "avatars <project-key>",
	Short: "List the avatars a project may use",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, rt *runtime, args []string) error {
		avatars, err := rt.client.ProjectAvatars(ctx, args[0], avatarsSystem)
		if err != nil {
			return err
		}
		return printList(rt, jira.AvatarSchema, avatars, "base64Data")
	}),
}

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List project roles",
	RunE: withClient(func(ctx context.Context, rt *runtime, args []string) error {
		roles, err := rt.client.ProjectRoles(ctx)
		if err != nil {
			return err
		}
		return printList(rt, jira.ProjectRoleSchema, roles)
	}),
}

var schemesCmd = &cobra.Command{
	Use:   "schemes",
	Short: "List notification or permission schemes",
}

var notificationSchemesCmd = &cobra.Command{
	Use:   "notification",
	Short: "List notification schemes",
	RunE: withClient(func(ctx context.Context, rt *runtime, args []string) error {
		schemes, err := rt.client.NotificationSchemes(ctx)
		if err != nil {
			return err
		}
		return printList(rt, jira.SchemeSchema, schemes)
	}),
}

var permissionSchemesCmd = &cobra.Command{
	Use:   "permission",
	Short: "List permission schemes",
	RunE: withClient(func(ctx context.Context, rt *runtime, args []string) error {
		schemes, err := rt.client.PermissionSchemes(ctx)
		if err != nil {
			return err
		}
		return printList(rt, jira.PermissionSchemeSchema, schemes)
	}),
}

func init() {
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(projectDeleteCmd)
	rootCmd.AddCommand(componentsCmd)
	rootCmd.AddCommand(avatarsCmd)
	rootCmd.AddCommand(rolesCmd)
	rootCmd.AddCommand(schemesCmd)

	schemesCmd.AddCommand(notificationSchemesCmd)
	schemesCmd.AddCommand(permissionSchemesCmd)

	projectCmd.Flags().BoolVar(&projectSchemes, "schemes", false, "include schemes (id lookup only)")
	avatarsCmd.Flags().BoolVar(&avatarsSystem, "system", false, "include system avatars")
}
