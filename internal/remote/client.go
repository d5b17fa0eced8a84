package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"audimew-storefront/config"
)

const maxErrorBody = 512

// Client talks to the storefront HTTP API. Every exported method issues
// exactly one request; there are no retries.
type Client struct {
	baseURL  string
	imageURL string
	headers  map[string]string
	http     *http.Client
	validate *validator.Validate
	log      *zap.Logger
}

// NewClient creates a client for the configured backend.
func NewClient(cfg config.RemoteConfig, log *zap.Logger) *Client {
	var transport http.RoundTripper = &http.Transport{}
	if cfg.HTTPProxy != "" {
		proxyURL, err := url.Parse(cfg.HTTPProxy)
		if err != nil {
			log.Warn("invalid proxy URL, requests will not use a proxy",
				zap.String("proxy", cfg.HTTPProxy), zap.Error(err))
		} else {
			transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	return newClient(&http.Client{Transport: transport, Timeout: cfg.Timeout}, cfg, log)
}

// newClient lets tests inject an http.Client.
func newClient(hc *http.Client, cfg config.RemoteConfig, log *zap.Logger) *Client {
	imageURL := cfg.ImageBaseURL
	if imageURL == "" {
		imageURL = cfg.BaseURL
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		imageURL: strings.TrimRight(imageURL, "/"),
		headers:  cfg.Headers,
		http:     hc,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do sends the request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, method, target string, body io.Reader, contentType, token string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, target, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(data) > maxErrorBody {
			data = data[:maxErrorBody]
		}
		return nil, &StatusError{Method: method, URL: target, Code: resp.StatusCode, Body: string(data)}
	}

	c.log.Debug("remote call",
		zap.String("method", method), zap.String("url", target), zap.Int("status", resp.StatusCode))
	return data, nil
}

// check validates a decoded payload against its struct tags.
func (c *Client) check(v any) error {
	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return nil
	}
	if err := c.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return nil
}

func decode[T any](c *Client, data []byte) (*T, error) {
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if err := c.check(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func getJSON[T any](ctx context.Context, c *Client, path string, query url.Values, token string) (*T, error) {
	data, err := c.do(ctx, http.MethodGet, c.endpoint(path, query), nil, "", token)
	if err != nil {
		return nil, err
	}
	return decode[T](c, data)
}

func sendJSON[T any](ctx context.Context, c *Client, method, path string, payload any, token string) (*T, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}
	data, err := c.do(ctx, method, c.endpoint(path, nil), bytes.NewReader(body), "application/json", token)
	if err != nil {
		return nil, err
	}
	return decode[T](c, data)
}

// message interprets a body that is either a JSON string or plain text.
func message(data []byte) string {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(data))
}
