// Package jsonp calls the reservation backend the way a browser page does
// with script-tag JSONP: every request names a fresh callback and the
// response is a script invoking that callback with one JSON value.
package jsonp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/ludoteca-cli/internal/domain"
	"github.com/bnema/ludoteca-cli/internal/ports"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

const (
	maxScriptBytes        = 1 << 20
	defaultRequestTimeout = 30 * time.Second
	defaultRetryWaitMin   = 200 * time.Millisecond
	defaultRetryWaitMax   = 2 * time.Second
)

var (
	errScriptMalformed   = errors.New("response is not a callback invocation")
	errCallbackNotCalled = errors.New("expected callback was not invoked")
)

type Options struct {
	Endpoint       string
	HTTPClient     *http.Client
	RetryMax       int
	RetryWaitMin   time.Duration
	RetryWaitMax   time.Duration
	RequestTimeout time.Duration
	Logger         logrus.FieldLogger
	Clock          ports.Clock
}

type Client struct {
	endpoint       *url.URL
	http           *retryablehttp.Client
	requestTimeout time.Duration
	clock          ports.Clock
	callbacks      *registry
}

var _ ports.Transport = (*Client)(nil)

func NewClient(opts Options) (*Client, error) {
	endpoint, err := parseEndpoint(opts.Endpoint)
	if err != nil {
		return nil, err
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = max(opts.RetryMax, 0)
	retryClient.RetryWaitMin = durationOrDefault(opts.RetryWaitMin, defaultRetryWaitMin)
	retryClient.RetryWaitMax = durationOrDefault(opts.RetryWaitMax, defaultRetryWaitMax)
	retryClient.Logger = nil
	if opts.Logger != nil {
		retryClient.Logger = leveledLogger{log: opts.Logger}
	}
	if opts.HTTPClient != nil {
		retryClient.HTTPClient = opts.HTTPClient
	}

	clock := opts.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Client{
		endpoint:       endpoint,
		http:           retryClient,
		requestTimeout: durationOrDefault(opts.RequestTimeout, defaultRequestTimeout),
		clock:          clock,
		callbacks:      newRegistry(),
	}, nil
}

// Call performs one action. The callback binding and the response body
// are released exactly once whichever way the call ends.
func (c *Client) Call(ctx context.Context, action string, params map[string]string) (json.RawMessage, error) {
	if strings.TrimSpace(action) == "" {
		return nil, errors.New("action is required")
	}

	b := c.callbacks.register()
	defer b.cleanup()

	payload, err := c.load(ctx, b, action, params)
	if err != nil {
		return nil, &domain.TransportError{Action: action, Err: err}
	}

	return payload, nil
}

// Pending reports callbacks still registered. It is zero whenever no
// call is in flight.
func (c *Client) Pending() int {
	return c.callbacks.pending()
}

func (c *Client) load(ctx context.Context, b *binding, action string, params map[string]string) (json.RawMessage, error) {
	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := retryablehttp.NewRequestWithContext(requestCtx, http.MethodGet, c.buildURL(action, params, b.name), nil)
	if err != nil {
		return nil, fmt.Errorf("create script request: %w", err)
	}
	req.Header.Set("Accept", "application/javascript, text/javascript, */*;q=0.1")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("load script: %w", err)
	}
	b.own(func() { _ = resp.Body.Close() })

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("load script: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxScriptBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	if len(body) > maxScriptBytes {
		return nil, fmt.Errorf("read script: response exceeds %d bytes", maxScriptBytes)
	}

	invoked, argument, err := parseInvocation(string(body))
	if err != nil {
		return nil, err
	}
	if invoked != b.name {
		return nil, fmt.Errorf("%w: script invoked %q, expected %q", errCallbackNotCalled, invoked, b.name)
	}
	if !c.callbacks.dispatch(invoked, argument) {
		return nil, fmt.Errorf("%w: callback %q is no longer registered", errCallbackNotCalled, invoked)
	}

	return <-b.result, nil
}

// buildURL keeps the endpoint's own query (the deployment id of a hosted
// script, for instance) and appends the call fields, the callback name and
// a cache-busting timestamp. The reserved fields are set last so params
// can never override them.
func (c *Client) buildURL(action string, params map[string]string, callback string) string {
	u := *c.endpoint
	query := u.Query()
	for key, value := range params {
		query.Set(key, value)
	}
	query.Set("action", action)
	query.Set("callback", callback)
	query.Set("_", strconv.FormatInt(c.clock.Now().UnixMilli(), 10))
	u.RawQuery = query.Encode()

	return u.String()
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if deadline, hasDeadline := ctx.Deadline(); hasDeadline && time.Until(deadline) <= c.requestTimeout {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, c.requestTimeout)
}

// parseInvocation splits `name(<json>)` with an optional `/**/` prefix and
// trailing semicolon.
func parseInvocation(script string) (string, json.RawMessage, error) {
	s := strings.TrimSpace(script)
	s = strings.TrimSpace(strings.TrimPrefix(s, "/**/"))
	s = strings.TrimSpace(strings.TrimSuffix(s, ";"))

	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return "", nil, errScriptMalformed
	}

	name := strings.TrimSpace(s[:open])
	if !isIdentifier(name) {
		return "", nil, fmt.Errorf("%w: invalid callback name %q", errScriptMalformed, name)
	}

	argument := strings.TrimSpace(s[open+1 : len(s)-1])
	if argument == "" {
		return "", nil, fmt.Errorf("%w: callback %q invoked without a value", errScriptMalformed, name)
	}
	if !gjson.Valid(argument) {
		return "", nil, fmt.Errorf("%w: callback %q argument is not valid JSON", errScriptMalformed, name)
	}

	return name, json.RawMessage(argument), nil
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func parseEndpoint(raw string) (*url.URL, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("endpoint is required")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.New("endpoint must use http or https")
	}
	if parsed.Host == "" {
		return nil, errors.New("endpoint host is required")
	}

	return parsed, nil
}

func durationOrDefault(value, fallback time.Duration) time.Duration {
	if value <= 0 {
		return fallback
	}
	return value
}
