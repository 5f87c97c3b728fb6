package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
	"stonepay_admin/internal/models"
	"stonepay_admin/pkg/logger"
	"stonepay_admin/pkg/middleware"
)

// envelope is the backend's reply wrapper: {success, message, data}.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type Options struct {
	BaseURL string
	// HTTPClient has no timeout by default; callers bound requests with ctx.
	HTTPClient  *http.Client
	Auth        AuthEngine
	Session     *Session
	Limiter     *rate.Limiter
	Logger      logger.Logger
	Middlewares []middleware.Middleware
}

// Optional wraps a response target whose data the backend may omit. Present
// reports whether data was decoded.
type Optional struct {
	Target  interface{}
	Present bool
}

// Client is the single gateway to the StonePay backend. Every request gets the
// bearer credential, a request id and the rate limiter; every 401 expires the
// session no matter which call site triggered it.
type Client struct {
	ApiURL  string
	log     logger.Logger
	client  *http.Client
	auth    AuthEngine
	session *Session
	limiter *rate.Limiter
	call    middleware.Handler
}

func NewClient(opts Options) *Client {
	c := &Client{
		ApiURL:  strings.TrimRight(opts.BaseURL, "/"),
		log:     opts.Logger,
		client:  opts.HTTPClient,
		auth:    opts.Auth,
		session: opts.Session,
		limiter: opts.Limiter,
	}
	if c.log == nil {
		c.log = logger.Discard
	}
	if c.client == nil {
		c.client = &http.Client{}
	}
	if c.auth == nil && opts.Session != nil {
		c.auth = opts.Session
	}
	c.call = middleware.Chain(c.doRequest, opts.Middlewares...)
	return c
}

// Do sends requestBody as JSON and decodes the envelope's data into response.
// response may be nil when the caller does not need the data. When response
// implements models.Validator it is validated after decoding.
func (c *Client) Do(ctx context.Context, method, endpoint string, requestBody, response interface{}) error {
	if c.session != nil && c.session.LocallyExpired() {
		c.session.Expire(ctx)
		return &StatusError{Method: method, Endpoint: endpoint, Status: http.StatusUnauthorized, Message: "Your session has expired. Please log in again."}
	}
	return c.call(ctx, method, endpoint, requestBody, response)
}

func (c *Client) doRequest(ctx context.Context, method, endpoint string, requestBody interface{}, response interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	var body io.Reader
	if requestBody != nil {
		bodyBytes, err := json.Marshal(requestBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.ApiURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.auth != nil {
		c.auth.Authorize(req)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		select {
		case <-ctx.Done():
			return fmt.Errorf("request was cancelled: %w", ctx.Err())
		default:
			return fmt.Errorf("failed to execute request: %w", err)
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode == http.StatusUnauthorized {
		if c.session != nil {
			c.session.Expire(ctx)
		}
		return &StatusError{Method: method, Endpoint: endpoint, Status: resp.StatusCode, Message: env.Message}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, Endpoint: endpoint, Status: resp.StatusCode, Message: env.Message}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		if response != nil {
			return &DecodeError{Endpoint: endpoint, Err: fmt.Errorf("%w: empty body", models.ErrShape)}
		}
		return nil
	}
	if decodeErr != nil {
		return &DecodeError{Endpoint: endpoint, Err: decodeErr}
	}
	if env.Success != nil && !*env.Success {
		return &StatusError{Method: method, Endpoint: endpoint, Status: resp.StatusCode, Message: env.Message}
	}
	if response == nil {
		return nil
	}
	missing := len(env.Data) == 0 || string(env.Data) == "null"
	if opt, ok := response.(*Optional); ok {
		if missing {
			return nil
		}
		opt.Present = true
		response = opt.Target
	} else if missing {
		return &DecodeError{Endpoint: endpoint, Err: fmt.Errorf("%w: missing data", models.ErrShape)}
	}
	if err := json.Unmarshal(env.Data, response); err != nil {
		return &DecodeError{Endpoint: endpoint, Err: err}
	}
	if v, ok := response.(models.Validator); ok {
		if err := v.Validate(); err != nil {
			return &DecodeError{Endpoint: endpoint, Err: err}
		}
	}
	return nil
}

// EndpointLabel trims identifiers and query strings so metrics stay low-cardinality:
// /order/get_order/abc?x=1 becomes /order/get_order.
func EndpointLabel(endpoint string) string {
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		endpoint = endpoint[:i]
	}
	parts := strings.Split(strings.Trim(endpoint, "/"), "/")
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return "/" + strings.Join(parts, "/")
}
