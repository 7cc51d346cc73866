package app

import (
	"context"

	"github.com/stonefield/jiraSOAP/core/rpc"
	"github.com/stonefield/jiraSOAP/domain/jira"
)

// Priorities lists issue priorities.
func (c *Client) Priorities(ctx context.Context) ([]*jira.Priority, error) {
	return rpc.ArrayCall(ctx, c.rpc, jira.PrioritySchema, "getPriorities")
}

// Statuses lists issue statuses.
func (c *Client) Statuses(ctx context.Context) ([]*jira.Status, error) {
	return rpc.ArrayCall(ctx, c.rpc, jira.StatusSchema, "getStatuses")
}

// Resolutions lists issue resolutions.
func (c *Client) Resolutions(ctx context.Context) ([]*jira.Resolution, error) {
	return rpc.ArrayCall(ctx, c.rpc, jira.ResolutionSchema, "getResolutions")
}

// IssueTypes lists the standard issue types.
func (c *Client) IssueTypes(ctx context.Context) ([]*jira.IssueType, error) {
	return rpc.ArrayCall(ctx, c.rpc, jira.IssueTypeSchema, "getIssueTypes")
}

// SubtaskIssueTypes lists sub-task issue types.
func (c *Client) SubtaskIssueTypes(ctx context.Context) ([]*jira.IssueType, error) {
	return rpc.ArrayCall(ctx, c.rpc, jira.IssueTypeSchema, "getSubTaskIssueTypes")
}

// IssueTypesForProject lists the issue types usable in a project.
func (c *Client) IssueTypesForProject(ctx context.Context, projectID string) ([]*jira.IssueType, error) {
	return rpc.ArrayCall(ctx, c.rpc, jira.IssueTypeSchema, "getIssueTypesForProject", rpc.String(projectID))
}

// FavouriteFilters lists the caller's favourite filters.
func (c *Client) FavouriteFilters(ctx context.Context) ([]*jira.Filter, error) {
	return rpc.ArrayCall(ctx, c.rpc, jira.FilterSchema, "getFavouriteFilters")
}

// FilterIssueCount returns how many issues a saved filter matches.
func (c *Client) FilterIssueCount(ctx context.Context, filterID string) (int64, error) {
	node, err := c.rpc.SingleCall(ctx, "getIssueCountForFilter", rpc.String(filterID))
	if err != nil {
		return 0, err
	}
	return parseInt("getIssueCountForFilter", node)
}

// Comments lists the comments on an issue in server order.
func (c *Client) Comments(ctx context.Context, issueKey string) ([]*jira.Comment, error) {
	return rpc.ArrayCall(ctx, c.rpc, jira.CommentSchema, "getComments", rpc.String(issueKey))
}

// Comment fetches one comment by id.
func (c *Client) Comment(ctx context.Context, id int64) (*jira.Comment, error) {
	return rpc.SingleEntity(ctx, c.rpc, jira.CommentSchema, "getComment", rpc.Int(id))
}

// AddComment adds comment to an issue.
func (c *Client) AddComment(ctx context.Context, issueKey string, comment *jira.Comment) error {
	return c.void(ctx, "addComment", rpc.String(issueKey), rpc.Entity(jira.CommentSchema, comment))
}
