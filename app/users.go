package app

import (
	"context"

	"github.com/stonefield/jiraSOAP/core/rpc"
	"github.com/stonefield/jiraSOAP/domain/jira"
)

// User looks up an account by login name. A missing user yields (nil, nil).
func (c *Client) User(ctx context.Context, username string) (*jira.User, error) {
	return rpc.OptionalEntity(ctx, c.rpc, jira.UserSchema, "getUser", rpc.String(username))
}

// Group looks up a group and its members. A missing group yields (nil, nil).
func (c *Client) Group(ctx context.Context, name string) (*jira.Group, error) {
	return rpc.OptionalEntity(ctx, c.rpc, jira.GroupSchema, "getGroup", rpc.String(name))
}

// ProjectRoles lists every project role.
func (c *Client) ProjectRoles(ctx context.Context) ([]*jira.ProjectRole, error) {
	return rpc.ArrayCall(ctx, c.rpc, jira.ProjectRoleSchema, "getProjectRoles")
}

// ProjectRole fetches one role by id.
func (c *Client) ProjectRole(ctx context.Context, id int64) (*jira.ProjectRole, error) {
	return rpc.SingleEntity(ctx, c.rpc, jira.ProjectRoleSchema, "getProjectRole", rpc.Int(id))
}
