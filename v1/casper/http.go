package casper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	headerRequestID = "X-Request-ID"
	contentTypeJSON = "application/json"
)

// httpExecutor performs one HTTP round trip per operation. It never retries.
type httpExecutor struct {
	baseURL   string
	client    *http.Client
	userAgent string
	maxBody   int64
	logger    Logger
}

// httpCall describes a single request. Path must already be escaped.
type httpCall struct {
	op       string
	resource string
	method   string
	path     string
	query    url.Values
	body     interface{}
}

// httpResponse is a fully read 2xx response.
type httpResponse struct {
	statusCode  int
	contentType string
	body        []byte
}

func newHTTPExecutor(cfg *Config, logger Logger) *httpExecutor {
	client := cfg.HTTPClient
	if client == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		var rt http.RoundTripper = transport
		if cfg.EnableTracing {
			rt = otelhttp.NewTransport(transport)
		}
		client = &http.Client{Transport: rt, Timeout: cfg.Timeout}
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}

	maxBody := cfg.MaxResponseBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxResponseBytes
	}

	return &httpExecutor{
		baseURL:   strings.TrimRight(cfg.Endpoint, "/"),
		client:    client,
		userAgent: ua,
		maxBody:   maxBody,
		logger:    logger,
	}
}

func (e *httpExecutor) do(ctx context.Context, call httpCall) (*httpResponse, error) {
	var reader io.Reader
	if call.body != nil {
		data, err := json.Marshal(call.body)
		if err != nil {
			return nil, &RequestError{Op: call.op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	target := e.baseURL + "/" + call.path
	if len(call.query) > 0 {
		target += "?" + call.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, call.method, target, reader)
	if err != nil {
		return nil, &RequestError{Op: call.op, Err: fmt.Errorf("build request: %w", err)}
	}

	requestID := uuid.NewString()
	req.Header.Set(headerRequestID, requestID)
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "application/json, application/octet-stream")
	if reader != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		e.logger.Debug("casper request failed", err, map[string]interface{}{
			"method":     call.method,
			"path":       call.path,
			"request_id": requestID,
		})
		return nil, &RequestError{Op: call.op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBody+1))
	if err != nil {
		return nil, &RequestError{Op: call.op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	if int64(len(body)) > e.maxBody {
		return nil, &RequestError{Op: call.op, StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, e.maxBody)}
	}

	e.logger.Debug("casper request", nil, map[string]interface{}{
		"method":     call.method,
		"path":       call.path,
		"status":     resp.StatusCode,
		"request_id": requestID,
	})

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, translateStatus(call.op, call.resource, resp.StatusCode, body)
	}

	return &httpResponse{
		statusCode:  resp.StatusCode,
		contentType: resp.Header.Get("Content-Type"),
		body:        body,
	}, nil
}

// doJSON performs call and decodes a JSON success body into out. A nil out
// discards the body. It returns the size of the response body.
func (e *httpExecutor) doJSON(ctx context.Context, call httpCall, out interface{}) (int64, error) {
	resp, err := e.do(ctx, call)
	if err != nil {
		return 0, err
	}
	size := int64(len(resp.body))
	if out == nil {
		return size, nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return size, &DecodeError{Op: call.op, Body: resp.body, Err: err}
	}
	return size, nil
}

// isJSON reports whether a Content-Type header names JSON.
func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == contentTypeJSON || strings.HasSuffix(mediaType, "+json")
}

// pathSegment escapes one path parameter using simple style.
func pathSegment(name string, value interface{}) (string, error) {
	return runtime.StyleParamWithLocation("simple", false, name, runtime.ParamLocationPath, value)
}

// buildPath escapes params and interleaves them with the literal parts:
// buildPath("collection", name, "insert") -> "collection/<name>/insert".
// Arguments at odd positions are parameters.
func buildPath(op string, parts ...interface{}) (string, error) {
	segments := make([]string, 0, len(parts))
	for i, part := range parts {
		if i%2 == 0 {
			segments = append(segments, part.(string))
			continue
		}
		seg, err := pathSegment("param", part)
		if err != nil {
			return "", &RequestError{Op: op, Err: fmt.Errorf("encode path parameter: %w", err)}
		}
		segments = append(segments, seg)
	}
	return strings.Join(segments, "/"), nil
}

// addQuery appends a form-style query parameter to values.
func addQuery(op string, values url.Values, name string, value interface{}) error {
	frag, err := runtime.StyleParamWithLocation("form", true, name, runtime.ParamLocationQuery, value)
	if err != nil {
		return &RequestError{Op: op, Err: fmt.Errorf("encode query parameter %s: %w", name, err)}
	}
	parsed, err := url.ParseQuery(frag)
	if err != nil {
		return &RequestError{Op: op, Err: fmt.Errorf("encode query parameter %s: %w", name, err)}
	}
	for k, vs := range parsed {
		for _, v := range vs {
			values.Add(k, v)
		}
	}
	return nil
}
