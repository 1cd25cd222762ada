package forwarder

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"golang.org/x/net/http2"
)

// Client posts payloads to the single configured destination.
type Client struct {
	config     Config
	httpClient *http.Client
}

func NewClient(config Config) (*Client, error) {
	if config.URL == "" {
		return nil, errors.New("forward url is empty")
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.ConnectTimeout <= 0 {
		config.ConnectTimeout = DefaultConnectTimeout
	}
	if config.MaxRedirects < 0 {
		config.MaxRedirects = 0
	}

	dialer := &net.Dialer{Timeout: config.ConnectTimeout}
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: config.ConnectTimeout,
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: config.InsecureSkipVerify}, //nolint:gosec // opt-in via FORWARD_TLS_INSECURE
		MaxIdleConns:        10,
	}
	if err := http2.ConfigureTransport(transport); err != nil {
		return nil, fmt.Errorf("configure http2 transport: %w", err)
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Transport:     transport,
			Timeout:       config.Timeout,
			CheckRedirect: config.checkRedirect,
		},
	}, nil
}

func (c Config) checkRedirect(_ *http.Request, via []*http.Request) error {
	if !c.FollowRedirects {
		return http.ErrUseLastResponse
	}
	if len(via) > c.MaxRedirects {
		return fmt.Errorf("stopped after %d redirects", c.MaxRedirects)
	}
	return nil
}

func (c *Client) Config() Config {
	return c.config
}

// Forward performs one POST of payload as JSON. It is never retried.
func (c *Client) Forward(ctx context.Context, payload any) (Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Response{}, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL, bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return Response{}, fmt.Errorf("read response: %w", err)
	}

	return Response{StatusCode: resp.StatusCode, Body: respBody}, nil
}
