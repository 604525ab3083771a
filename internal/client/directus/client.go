package directus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/common"
	"github.com/dmitrijs2005/rentkeeper/internal/logging"
	"github.com/google/uuid"
)

const (
	DefaultContractsCollection = "Contratos"
	DefaultBrandingCollection  = "Usuarios"

	maxErrorBody = 64 << 10
)

// Options configures a Client. Zero values fall back to sensible defaults.
type Options struct {
	BaseURL             string
	Timeout             time.Duration
	ContractsCollection string
	BrandingCollection  string
	HTTPClient          *http.Client
	Logger              logging.Logger
}

// Client talks to the backend's REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logging.Logger

	contracts string
	branding  string

	mu    sync.RWMutex
	token string
}

// New builds a Client from opts.
func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	lg := opts.Logger
	if lg == nil {
		lg = logging.Discard()
	}
	c := &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: hc,
		log:        lg.With("component", "directus"),
		contracts:  opts.ContractsCollection,
		branding:   opts.BrandingCollection,
	}
	if c.contracts == "" {
		c.contracts = DefaultContractsCollection
	}
	if c.branding == "" {
		c.branding = DefaultBrandingCollection
	}
	return c
}

// BaseURL returns the backend root without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// SetToken replaces the bearer token. An empty token makes requests anonymous.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// request describes one API call.
type request struct {
	method string
	path   string
	query  url.Values

	body        io.Reader
	contentType string

	// bearer overrides the session token when set.
	bearer string
}

func (c *Client) doRequest(ctx context.Context, r request) (*http.Response, error) {
	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, r.body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	reqID := uuid.NewString()
	req.Header.Set(common.RequestIDHeader, reqID)
	req.Header.Set(common.AcceptHeader, common.ContentTypeJSON)
	if r.contentType != "" {
		req.Header.Set(common.ContentTypeHeader, r.contentType)
	}

	token := r.bearer
	if token == "" {
		token = c.Token()
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		c.log.Debug(ctx, "request failed", "method", r.method, "path", r.path, "request_id", reqID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c.log.Debug(ctx, "request done",
		"method", r.method,
		"path", r.path,
		"status", resp.StatusCode,
		"request_id", reqID,
		"elapsed", time.Since(start),
	)
	return resp, nil
}

// do sends in as JSON (when non-nil) and decodes the "data" member of the
// response into out (when non-nil).
func (c *Client) do(ctx context.Context, r request, in, out any) error {
	if in != nil {
		body, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		r.body = bytes.NewReader(body)
		r.contentType = common.ContentTypeJSON
	}

	resp, err := c.doRequest(ctx, r)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return err
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return decodeData(resp.Body, out)
}

func checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	apiErr := &APIError{Status: resp.StatusCode}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var env errorEnvelope
	if json.Unmarshal(body, &env) == nil && len(env.Errors) > 0 {
		apiErr.Message = env.Errors[0].Message
	}
	return apiErr
}

func decodeData(r io.Reader, out any) error {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(env.Data) == 0 {
		return fmt.Errorf("decode response: missing data")
	}

	dec := json.NewDecoder(bytes.NewReader(env.Data))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

// ID is an item primary key; the backend may send it as a string or a number.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("item id: %w", err)
	}
	*id = ID(n.String())
	return nil
}
