package app

import (
	"context"

	"github.com/stonefield/jiraSOAP/core/rpc"
	"github.com/stonefield/jiraSOAP/domain/jira"
)

// ServerInfo returns version and build information. BuildDate has no time part.
func (c *Client) ServerInfo(ctx context.Context) (*jira.ServerInfo, error) {
	return rpc.SingleEntity(ctx, c.rpc, jira.ServerInfoSchema, "getServerInfo")
}

// ServerConfiguration returns the feature switches of the server.
func (c *Client) ServerConfiguration(ctx context.Context) (*jira.ServerConfiguration, error) {
	return rpc.SingleEntity(ctx, c.rpc, jira.ServerConfigurationSchema, "getConfiguration")
}

// HealthCheck reports whether the server answers an authenticated call.
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.ServerInfo(ctx)
	return err
}
