package vestaboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the cloud API host for Read/Write installables.
	DefaultBaseURL = "https://platform.vestaboard.com"
	// DefaultLocalPort is the port the board's local API listens on.
	DefaultLocalPort = 7000
	// DefaultMinInterval is the spacing the cloud API allows between messages.
	DefaultMinInterval = 15 * time.Second

	messageEndpoint     = "/subscriptions/%s/message"
	localEndpoint       = "/local-api/message"
	userAgentProduct    = "vestaboard-go-sdk"
	userAgentVersion    = "1.0"
	defaultHTTPTimeout  = 30 * time.Second
	localMinInterval    = time.Second
	maxResponseBodySize = 1 << 20 // 1 MiB guard

	headerAPIKey    = "X-Vestaboard-Api-Key"
	headerAPISecret = "X-Vestaboard-Api-Secret"
	headerLocalKey  = "X-Vestaboard-Local-Api-Key"
	headerRequestID = "X-Request-Id"
)

// APIResponse describes a successful post.
type APIResponse struct {
	// MessageID is the id the cloud API assigns to the message. Empty for the local API.
	MessageID string
	// RequestID is the id sent in the X-Request-Id header, useful to correlate logs.
	RequestID string
	// StatusCode keeps the HTTP status code observed for the request.
	StatusCode int
	// RawBody contains the exact response bytes for troubleshooting or custom parsing.
	RawBody []byte
}

// cloudMessage is the body the cloud API expects.
type cloudMessage struct {
	Characters Grid `json:"characters"`
}

type cloudReply struct {
	Message struct {
		ID string `json:"id"`
	} `json:"message"`
}

// Client posts grids to one board, either through the cloud API or over the local network.
type Client struct {
	baseURL   string
	endpoint  string
	auth      http.Header
	local     bool
	http      *http.Client
	limiter   RateLimiter
	userAgent string
	logger    *zap.Logger
}

// ClientOption mutates the client during construction.
type ClientOption func(*Client)

// NewClient builds a client for the cloud API. All three credential fields are required.
func NewClient(creds Credentials, opts ...ClientOption) (*Client, error) {
	creds = creds.trimmed()
	if err := creds.validate(); err != nil {
		return nil, err
	}
	auth := http.Header{}
	auth.Set(headerAPIKey, creds.APIKey)
	auth.Set(headerAPISecret, creds.APISecret)
	c := newClient(DefaultBaseURL, fmt.Sprintf(messageEndpoint, creds.SubscriptionID), auth, DefaultMinInterval)
	return c.apply(opts), nil
}

// NewLocalClient builds a client for the board's local API.
func NewLocalClient(token LocalToken, opts ...ClientOption) (*Client, error) {
	token = token.trimmed()
	if err := token.validate(); err != nil {
		return nil, err
	}
	auth := http.Header{}
	auth.Set(headerLocalKey, token.APIKey)
	c := newClient(token.baseURL(), localEndpoint, auth, localMinInterval)
	c.local = true
	return c.apply(opts), nil
}

// NewClientFromSource loads cloud credentials from src and builds a client.
func NewClientFromSource(src CredentialSource, opts ...ClientOption) (*Client, error) {
	creds, err := src.LoadCredentials()
	if err != nil {
		return nil, err
	}
	return NewClient(creds, opts...)
}

// NewLocalClientFromSource loads the local token from src and builds a client.
func NewLocalClientFromSource(src CredentialSource, opts ...ClientOption) (*Client, error) {
	token, err := src.LoadLocalToken()
	if err != nil {
		return nil, err
	}
	return NewLocalClient(token, opts...)
}

func newClient(baseURL, endpoint string, auth http.Header, interval time.Duration) *Client {
	return &Client{
		baseURL:   baseURL,
		endpoint:  endpoint,
		auth:      auth,
		userAgent: buildDefaultUserAgent(),
		http:      &http.Client{Timeout: defaultHTTPTimeout},
		limiter:   NewFixedIntervalLimiter(interval),
		logger:    zap.NewNop(),
	}
}

func (c *Client) apply(opts []ClientOption) *Client {
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	c.baseURL = sanitizeBaseURL(c.baseURL)
	return c
}

// WithBaseURL overrides the API host (useful for staging/tests). No trailing slash required.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if strings.TrimSpace(baseURL) != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient installs a custom http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithRateLimiter replaces the default limiter. Pass nil to disable (not recommended).
func WithRateLimiter(l RateLimiter) ClientOption {
	return func(c *Client) { c.limiter = l }
}

// WithUserAgent sets a custom User-Agent string.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger sets the logger for requests and formatting warnings. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// Local reports whether the client talks to the board's local API.
func (c *Client) Local() bool {
	return c.local
}

// Send validates g and posts it to the board.
func (c *Client) Send(ctx context.Context, g Grid) (*APIResponse, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if c.local {
		return c.doJSON(ctx, g)
	}
	return c.doJSON(ctx, cloudMessage{Characters: g})
}

// warningHandler logs formatting advisories and forwards them to next when set.
func (c *Client) warningHandler(next WarningHandler) WarningHandler {
	return func(w Warning) {
		c.logger.Warn(w.Message, zap.Stringer("kind", w.Kind), zap.Int("dropped", w.Dropped))
		if next != nil {
			next(w)
		}
	}
}

func sanitizeBaseURL(baseURL string) string {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(baseURL, "/")
}

// doJSON encodes the payload, executes the POST, and normalizes the response.
func (c *Client) doJSON(ctx context.Context, payload interface{}) (*APIResponse, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("vestaboard: encode request: %w", err)
	}

	url := c.baseURL + c.endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("vestaboard: build request: %w", err)
	}
	for k, v := range c.auth {
		req.Header[k] = v
	}
	req.Header.Set("Content-Type", "application/json")
	if ua := strings.TrimSpace(c.userAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	}
	requestID := uuid.NewString()
	req.Header.Set(headerRequestID, requestID)

	log := c.logger.With(zap.String("request_id", requestID), zap.Bool("local", c.local))
	log.Debug("posting message", zap.String("url", url))

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("request failed", zap.Error(err))
		return nil, fmt.Errorf("vestaboard: execute request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, fmt.Errorf("vestaboard: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn("board rejected message", zap.Int("status", resp.StatusCode))
		return nil, buildAPIError(resp.StatusCode, requestID, raw)
	}

	out := &APIResponse{RequestID: requestID, StatusCode: resp.StatusCode, RawBody: raw}
	if strings.Contains(strings.ToLower(resp.Header.Get("Content-Type")), "application/json") {
		var reply cloudReply
		if err := json.Unmarshal(raw, &reply); err == nil {
			out.MessageID = reply.Message.ID
		}
	}
	log.Debug("message accepted", zap.Int("status", resp.StatusCode), zap.String("message_id", out.MessageID))
	return out, nil
}

func buildDefaultUserAgent() string {
	goVer := strings.TrimPrefix(runtime.Version(), "go")
	if goVer == "" {
		goVer = runtime.Version()
	}
	return fmt.Sprintf("%s/%s (+https://github.com/1set/vestaboard; Go%s; %s/%s)",
		userAgentProduct, userAgentVersion, goVer, runtime.GOOS, runtime.GOARCH)
}
