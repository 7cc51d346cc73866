package app

import (
	"context"

	"github.com/stonefield/jiraSOAP/core/rpc"
	"github.com/stonefield/jiraSOAP/domain/jira"
)

// Versions lists the versions of a project in server order.
func (c *Client) Versions(ctx context.Context, projectKey string) ([]*jira.Version, error) {
	return rpc.ArrayCall(ctx, c.rpc, jira.VersionSchema, "getVersions", rpc.String(projectKey))
}

// AddVersion creates v in a project and returns the stored version.
func (c *Client) AddVersion(ctx context.Context, projectKey string, v *jira.Version) (*jira.Version, error) {
	return rpc.SingleEntity(ctx, c.rpc, jira.VersionSchema, "addVersion", rpc.String(projectKey), rpc.Entity(jira.VersionSchema, v))
}

// ReleaseVersion saves the release state of v.
func (c *Client) ReleaseVersion(ctx context.Context, projectKey string, v *jira.Version) error {
	return c.void(ctx, "releaseVersion", rpc.String(projectKey), rpc.Entity(jira.VersionSchema, v))
}

// ArchiveVersion archives or unarchives a version by name.
func (c *Client) ArchiveVersion(ctx context.Context, projectKey, name string, archive bool) error {
	return c.void(ctx, "archiveVersion", rpc.String(projectKey), rpc.String(name), rpc.Bool(archive))
}
