// Package app provides the remote API of a JIRA server on top of the call
// dispatcher: one method per remote operation.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"
	"github.com/stonefield/jiraSOAP/core/entity"
	"github.com/stonefield/jiraSOAP/core/rpc"
	"github.com/stonefield/jiraSOAP/domain/auth"
	"github.com/stonefield/jiraSOAP/domain/message"
	"github.com/stonefield/jiraSOAP/ports"
)

// Client is a logged-in (or not yet logged-in) connection to one server.
type Client struct {
	rpc      *rpc.Dispatcher
	sessions ports.SessionStore
	clock    ports.Clock
	endpoint string
	logger   zerolog.Logger
}

// ClientDeps contains dependencies for Client. Sessions is optional.
type ClientDeps struct {
	Dispatcher *rpc.Dispatcher
	Sessions   ports.SessionStore
	Clock      ports.Clock
	Logger     zerolog.Logger
}

// ClientConfig contains configuration for Client.
type ClientConfig struct {
	// Endpoint keys the persisted session; usually the server base URL.
	Endpoint string
}

// NewClient creates a new client.
func NewClient(deps ClientDeps, cfg ClientConfig) *Client {
	c := &Client{
		rpc:      deps.Dispatcher,
		sessions: deps.Sessions,
		clock:    deps.Clock,
		endpoint: auth.NormalizeEndpoint(cfg.Endpoint),
		logger:   deps.Logger.With().Str("component", "client").Logger(),
	}
	if c.clock == nil {
		c.clock = systemClock{}
	}
	return c
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// InvalidLoginError lists the missing login fields.
type InvalidLoginError struct {
	Fields map[string]string
}

func (e *InvalidLoginError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range []string{"username", "password"} {
		if m, ok := e.Fields[f]; ok {
			msgs = append(msgs, m)
		}
	}
	return "invalid login: " + strings.Join(msgs, ", ")
}

// Login authenticates and caches the returned token for every later call.
// The token is also saved to the session store when one is configured.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	if res := auth.ValidateLogin(auth.LoginRequest{Username: username, Password: password}); !res.Valid {
		return "", &InvalidLoginError{Fields: res.Errors}
	}

	ns, err := c.rpc.Invoke(ctx, "login", rpc.String(username), rpc.String(password))
	if err != nil {
		return "", err
	}
	if ns.Empty() {
		return "", &rpc.EmptyResponseError{Method: "login"}
	}
	token := strings.TrimSpace(ns.First().Text())
	if token == "" {
		return "", &rpc.EmptyResponseError{Method: "login"}
	}

	c.rpc.Session().Set(username, token, c.clock.Now())
	c.logger.Info().Str("username", username).Msg("logged in")

	if c.sessions != nil {
		if err := c.sessions.Save(ctx, c.rpc.Session().Snapshot(c.endpoint)); err != nil {
			c.logger.Warn().Err(err).Msg("failed to persist session")
		}
	}
	return token, nil
}

// Logout ends the session on the server. A fault is reported as false with
// no error. The cached token is kept; see Forget.
func (c *Client) Logout(ctx context.Context) (bool, error) {
	node, err := c.rpc.SingleCall(ctx, "logout")
	if message.IsFault(err) {
		c.logger.Debug().Err(err).Msg("logout refused")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return parseBool("logout", node)
}

// Resume restores the session saved for this endpoint. It reports false
// when nothing was saved.
func (c *Client) Resume(ctx context.Context) (bool, error) {
	if c.sessions == nil {
		return false, nil
	}
	sess, err := c.sessions.Load(ctx, c.endpoint)
	if errors.Is(err, ports.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load session: %w", err)
	}
	c.rpc.Session().Restore(sess)
	return true, nil
}

// Forget drops the cached token locally and from the session store.
func (c *Client) Forget(ctx context.Context) error {
	c.rpc.Session().Clear()
	if c.sessions == nil {
		return nil
	}
	if err := c.sessions.Delete(ctx, c.endpoint); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Token returns the cached token.
func (c *Client) Token() string {
	return c.rpc.Session().Token()
}

// Username returns the name the cached token belongs to.
func (c *Client) Username() string {
	return c.rpc.Session().Username()
}

// Session returns a copy of the cached session.
func (c *Client) Session() auth.Session {
	return c.rpc.Session().Snapshot(c.endpoint)
}

// void sends an authenticated call whose return value is ignored.
func (c *Client) void(ctx context.Context, method string, args ...rpc.Arg) error {
	_, err := c.rpc.OptionalCall(ctx, method, args...)
	return err
}

func parseBool(method string, node *etree.Element) (bool, error) {
	raw := node.Text()
	v, err := entity.ParseBool(raw)
	if err != nil {
		return false, &entity.ConversionError{Entity: method, Wire: node.Tag, Raw: raw, Err: err}
	}
	return v, nil
}

func parseInt(method string, node *etree.Element) (int64, error) {
	raw := node.Text()
	v, err := entity.IntConverter.Decode(raw)
	if err != nil {
		return 0, &entity.ConversionError{Entity: method, Wire: node.Tag, Raw: raw, Err: err}
	}
	return v, nil
}
