// Package soap provides the HTTP transport that delivers calls to a SOAP 1.1
// rpc-style service.
package soap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"
	"github.com/stonefield/jiraSOAP/domain/message"
	"github.com/stonefield/jiraSOAP/ports"
)

// Namespaces used in the envelope.
const (
	EnvelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"
	XSINS      = "http://www.w3.org/2001/XMLSchema-instance"
	XSDNS      = "http://www.w3.org/2001/XMLSchema"
)

// Defaults for a JIRA installation.
const (
	DefaultPath      = "/rpc/soap/jirasoapservice-v2"
	DefaultNamespace = "http://soap.rpc.jira.atlassian.com"
	DefaultTimeout   = 30 * time.Second

	// RequestIDHeader carries the call ID so server logs can be correlated.
	RequestIDHeader = "X-Request-ID"
)

const maxResponseBytes = 32 << 20

// Client sends calls over HTTP.
type Client struct {
	httpClient *http.Client
	endpoint   string
	namespace  string
	headers    map[string]string
	logger     zerolog.Logger
}

// ClientConfig configures the transport.
type ClientConfig struct {
	BaseURL   string
	Path      string // defaults to DefaultPath
	Namespace string // defaults to DefaultNamespace
	Timeout   time.Duration
	Headers   map[string]string
	Logger    zerolog.Logger
}

// NewClient creates a new SOAP transport.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}
	ns := cfg.Namespace
	if ns == "" {
		ns = DefaultNamespace
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   strings.TrimRight(cfg.BaseURL, "/") + "/" + strings.TrimLeft(path, "/"),
		namespace:  ns,
		headers:    cfg.Headers,
		logger:     cfg.Logger.With().Str("component", "soap").Logger(),
	}
}

// Endpoint returns the URL calls are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Call posts the envelope for call and returns the parsed response.
func (c *Client) Call(ctx context.Context, call *message.Call) (*etree.Document, error) {
	body, err := BuildEnvelope(c.namespace, call).WriteToBytes()
	if err != nil {
		return nil, &message.TransportError{Method: call.Method, Err: fmt.Errorf("encode envelope: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &message.TransportError{Method: call.Method, Err: fmt.Errorf("create request: %w", err)}
	}

	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("Accept", "text/xml")
	req.Header.Set("SOAPAction", `""`)
	if call.ID != "" {
		req.Header.Set(RequestIDHeader, call.ID)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &message.TransportError{Method: call.Method, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &message.TransportError{Method: call.Method, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.Debug().
		Str("request_id", call.ID).
		Str("method", call.Method).
		Int("status", resp.StatusCode).
		Int("bytes", len(data)).
		Msg("soap response")

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		if resp.StatusCode >= 400 {
			return nil, &message.TransportError{Method: call.Method, StatusCode: resp.StatusCode, Err: errors.New(snippet(data))}
		}
		return nil, &message.TransportError{Method: call.Method, StatusCode: resp.StatusCode, Err: fmt.Errorf("parse response: %w", err)}
	}

	if fault := ParseFault(doc); fault != nil {
		fault.Method = call.Method
		return nil, fault
	}

	if resp.StatusCode >= 400 {
		return nil, &message.TransportError{Method: call.Method, StatusCode: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
	}

	return doc, nil
}

// BuildEnvelope wraps the parameters of call in an rpc-style SOAP envelope.
// The parameters are copied; call is left untouched.
func BuildEnvelope(namespace string, call *message.Call) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	env := doc.CreateElement("soapenv:Envelope")
	env.CreateAttr("xmlns:soapenv", EnvelopeNS)
	env.CreateAttr("xmlns:xsd", XSDNS)
	env.CreateAttr("xmlns:xsi", XSINS)
	env.CreateAttr("xmlns:soap", namespace)

	op := env.CreateElement("soapenv:Body").CreateElement("soap:" + call.Method)
	for _, p := range call.Params {
		op.AddChild(p.Copy())
	}
	return doc
}

// ParseFault returns the fault carried by doc, or nil if the body holds none.
// The fault string is kept exactly as sent.
func ParseFault(doc *etree.Document) *message.ProviderFault {
	env := doc.Root()
	if env == nil {
		return nil
	}
	body := child(env, "Body")
	if body == nil {
		return nil
	}
	f := child(body, "Fault")
	if f == nil {
		return nil
	}

	fault := &message.ProviderFault{}
	if code := child(f, "faultcode"); code != nil {
		fault.Code = strings.TrimSpace(code.Text())
	}
	if msg := child(f, "faultstring"); msg != nil {
		fault.Message = msg.Text()
	}
	if detail := child(f, "detail"); detail != nil {
		if kids := detail.ChildElements(); len(kids) > 0 {
			fault.Detail = kids[0].Tag
		} else {
			fault.Detail = strings.TrimSpace(detail.Text())
		}
	}
	return fault
}

func child(e *etree.Element, tag string) *etree.Element {
	for _, c := range e.ChildElements() {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

func snippet(data []byte) string {
	s := strings.TrimSpace(string(data))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	if s == "" {
		return "empty response body"
	}
	return s
}

// Ensure interface compliance.
var _ ports.Transport = (*Client)(nil)
