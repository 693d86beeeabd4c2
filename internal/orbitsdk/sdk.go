package orbitsdk

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/imroc/req/v3"
)

// Client talks to the local Orbit service. Every operation is a single
// blocking round trip that returns the HTTP status and, on 200, the decoded
// JSON body. Transport failures never surface as errors; they are logged and
// reported as StatusServiceUnavailable.
//
// A Client holds no mutable state and is safe for concurrent use.
type Client struct {
	client  *req.Client
	baseURL string
	log     *slog.Logger
}

// New creates a new Client. A nil config uses DefaultConfig.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := newLevelLogger(cfg.logger(), cfg.LogLevel)

	client := req.C().
		SetBaseURL(cfg.baseURL()).
		SetUserAgent(cfg.userAgent()).
		SetLogger(&reqLogger{log: logger}).
		SetJsonMarshal(jsonMarshal).
		SetJsonUnmarshal(jsonUnmarshal)

	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &Client{
		client:  client,
		baseURL: cfg.baseURL(),
		log:     logger,
	}, nil
}

// BaseURL returns the endpoint this client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) request(ctx context.Context) *req.Request {
	return c.client.R().SetContext(ctx)
}

// groupRequest scopes the request to a group through the active-group header
func (c *Client) groupRequest(ctx context.Context, groupID string) *req.Request {
	return c.request(ctx).SetHeader(HeaderActiveGroup, groupID)
}

// send issues r once. The response is nil when the service could not be reached.
func (c *Client) send(r *req.Request, method, path string) (*req.Response, int) {
	resp, err := r.Send(method, path)
	if err != nil || resp == nil || resp.Response == nil {
		c.log.Warn("orbit: service unreachable", "method", method, "url", c.baseURL+path, "error", err)
		return nil, StatusServiceUnavailable
	}

	return resp, resp.StatusCode
}

// getJSON issues a GET and decodes the body of a 200 response. Any other
// status is passed through with a nil body.
func (c *Client) getJSON(r *req.Request, path string) (int, any) {
	resp, status := c.send(r, http.MethodGet, path)
	if status != http.StatusOK {
		return status, nil
	}

	var body any
	if err := jsonUnmarshal(resp.Bytes(), &body); err != nil {
		c.log.Warn("orbit: invalid json response", "url", c.baseURL+path, "error", err)
		return status, nil
	}

	return status, body
}
