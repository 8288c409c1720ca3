package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hupe1980/qconnect/core"
	"github.com/hupe1980/qconnect/logging"
	"github.com/tidwall/gjson"
)

// DefaultRegion is used when no region is configured.
const DefaultRegion = "us-east-1"

// DefaultEndpoint returns the public service endpoint for region.
func DefaultEndpoint(region string) string {
	if region == "" {
		region = DefaultRegion
	}
	return "https://wisdom." + region + ".amazonaws.com"
}

// Options configure the HTTP transport.
type Options struct {
	// Region selects the default endpoint when Endpoint is empty.
	Region string

	// Endpoint overrides the region derived endpoint (e.g. a local fake).
	Endpoint string

	// HTTPClient performs the requests. Defaults to NewDefaultHTTPClient(0).
	HTTPClient *http.Client

	// Headers are added to every request.
	Headers map[string]string

	UserAgent string

	// RequestEditors run in order right before a request is sent, e.g. to
	// sign it. An editor error aborts the call.
	RequestEditors []func(*http.Request) error

	Logger logging.Logger
}

// HTTPClient implements core.Invoker over REST-JSON.
type HTTPClient struct {
	opts     Options
	endpoint string
}

var _ core.Invoker = (*HTTPClient)(nil)

// NewDefaultHTTPClient creates an http.Client with conservative transport
// timeouts. A zero timeout leaves the overall deadline to the caller's context.
func NewDefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 60 * time.Second, // long polls on recommendations
			IdleConnTimeout:       30 * time.Second,
			MaxIdleConns:          10,
			MaxIdleConnsPerHost:   2,
		},
	}
}

// NewHTTPClient creates a new REST-JSON transport.
func NewHTTPClient(optFns ...func(o *Options)) *HTTPClient {
	opts := Options{
		Region:    DefaultRegion,
		UserAgent: "qconnect-go",
		Logger:    logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = NewDefaultHTTPClient(0)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint(opts.Region)
	}
	return &HTTPClient{opts: opts, endpoint: strings.TrimRight(endpoint, "/")}
}

// Endpoint returns the base URL requests are sent to.
func (c *HTTPClient) Endpoint() string { return c.endpoint }

// Invoke sends req and waits for the response or ctx cancellation.
// Non-2xx responses become *core.ServiceError; transport failures are
// returned wrapped with %w so callers can classify them.
func (c *HTTPClient) Invoke(ctx context.Context, req *core.Request) core.Envelope {
	target := c.endpoint + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	hreq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return core.Failure(fmt.Errorf("%s: build request: %w", req.Operation, err))
	}

	hreq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		hreq.Header.Set("Content-Type", "application/json")
	}
	if c.opts.UserAgent != "" {
		hreq.Header.Set("User-Agent", c.opts.UserAgent)
	}
	for k, v := range c.opts.Headers {
		hreq.Header.Set(k, v)
	}
	for k, vs := range req.Headers {
		for _, v := range vs {
			hreq.Header.Add(k, v)
		}
	}
	for _, edit := range c.opts.RequestEditors {
		if err := edit(hreq); err != nil {
			return core.Failure(fmt.Errorf("%s: edit request: %w", req.Operation, err))
		}
	}

	c.opts.Logger.Debug("client.request", "operation", req.Operation, "method", req.Method, "url", target)

	resp, err := c.opts.HTTPClient.Do(hreq)
	if err != nil {
		return core.Failure(fmt.Errorf("%s: %w", req.Operation, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return core.Failure(fmt.Errorf("%s: read response: %w", req.Operation, err))
	}

	requestID := resp.Header.Get("X-Amzn-Requestid")
	c.opts.Logger.Debug("client.response", "operation", req.Operation, "status", resp.StatusCode, "request_id", requestID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		env := core.Failure(decodeServiceError(req.Operation, resp, data, requestID))
		env.StatusCode = resp.StatusCode
		env.RequestID = requestID
		return env
	}

	return core.Envelope{Body: data, StatusCode: resp.StatusCode, RequestID: requestID}
}

// decodeServiceError extracts the error code and message from a REST-JSON
// error response. The code comes from the X-Amzn-ErrorType header or the
// body's __type / code member, with any namespace prefix stripped.
func decodeServiceError(op string, resp *http.Response, data []byte, requestID string) *core.ServiceError {
	code := resp.Header.Get("X-Amzn-Errortype")
	if code == "" && gjson.ValidBytes(data) {
		code = gjson.GetBytes(data, "__type").String()
		if code == "" {
			code = gjson.GetBytes(data, "code").String()
		}
	}
	code = sanitizeErrorCode(code)

	var message string
	if gjson.ValidBytes(data) {
		message = gjson.GetBytes(data, "message").String()
		if message == "" {
			message = gjson.GetBytes(data, "Message").String()
		}
	} else {
		message = strings.TrimSpace(string(data))
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	return &core.ServiceError{
		Operation:  op,
		StatusCode: resp.StatusCode,
		Code:       code,
		Message:    message,
		RequestID:  requestID,
	}
}

func sanitizeErrorCode(code string) string {
	if i := strings.Index(code, ":"); i >= 0 {
		code = code[:i]
	}
	if i := strings.LastIndex(code, "#"); i >= 0 {
		code = code[i+1:]
	}
	return strings.TrimSpace(code)
}
