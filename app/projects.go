package app

import (
	"context"

	"github.com/stonefield/jiraSOAP/core/rpc"
	"github.com/stonefield/jiraSOAP/domain/jira"
)

// Projects lists every visible project without scheme details.
func (c *Client) Projects(ctx context.Context) ([]*jira.Project, error) {
	return rpc.ArrayCall(ctx, c.rpc, jira.ProjectSchema, "getProjectsNoSchemes")
}

// ProjectByKey fetches a project by key.
func (c *Client) ProjectByKey(ctx context.Context, key string) (*jira.Project, error) {
	return rpc.SingleEntity(ctx, c.rpc, jira.ProjectSchema, "getProjectByKey", rpc.String(key))
}

// ProjectByID fetches a project by numeric id.
func (c *Client) ProjectByID(ctx context.Context, id int64) (*jira.Project, error) {
	return rpc.SingleEntity(ctx, c.rpc, jira.ProjectSchema, "getProjectById", rpc.Int(id))
}

// ProjectWithSchemes fetches a project including its schemes.
func (c *Client) ProjectWithSchemes(ctx context.Context, id int64) (*jira.Project, error) {
	return rpc.SingleEntity(ctx, c.rpc, jira.ProjectSchema, "getProjectWithSchemesById", rpc.Int(id))
}

// CreateProject creates p on the server and returns the stored project.
func (c *Client) CreateProject(ctx context.Context, p *jira.Project) (*jira.Project, error) {
	return rpc.SingleEntity(ctx, c.rpc, jira.ProjectSchema, "createProjectFromObject", rpc.Entity(jira.ProjectSchema, p))
}

// UpdateProject saves changes to p and returns the stored project.
func (c *Client) UpdateProject(ctx context.Context, p *jira.Project) (*jira.Project, error) {
	return rpc.SingleEntity(ctx, c.rpc, jira.ProjectSchema, "updateProject", rpc.Entity(jira.ProjectSchema, p))
}

// DeleteProject removes a project by key.
func (c *Client) DeleteProject(ctx context.Context, key string) error {
	return c.void(ctx, "deleteProject", rpc.String(key))
}

// Components lists the components of a project.
func (c *Client) Components(ctx context.Context, projectKey string) ([]*jira.Component, error) {
	return rpc.ArrayCall(ctx, c.rpc, jira.ComponentSchema, "getComponents", rpc.String(projectKey))
}

// ProjectAvatars lists the avatars a project may use. System avatars are
// included only when includeSystem is set.
func (c *Client) ProjectAvatars(ctx context.Context, projectKey string, includeSystem bool) ([]*jira.Avatar, error) {
	return rpc.ArrayCall(ctx, c.rpc, jira.AvatarSchema, "getProjectAvatars", rpc.String(projectKey), rpc.Bool(includeSystem))
}

// ProjectAvatar returns the avatar currently set on a project.
func (c *Client) ProjectAvatar(ctx context.Context, projectKey string) (*jira.Avatar, error) {
	return rpc.SingleEntity(ctx, c.rpc, jira.AvatarSchema, "getProjectAvatar", rpc.String(projectKey))
}

// NotificationSchemes lists notification schemes.
func (c *Client) NotificationSchemes(ctx context.Context) ([]*jira.Scheme, error) {
	return rpc.ArrayCall(ctx, c.rpc, jira.SchemeSchema, "getNotificationSchemes")
}

// PermissionSchemes lists permission schemes.
func (c *Client) PermissionSchemes(ctx context.Context) ([]*jira.PermissionScheme, error) {
	return rpc.ArrayCall(ctx, c.rpc, jira.PermissionSchemeSchema, "getPermissionSchemes")
}
