package peers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultTimeout = 10 * time.Second

// jsonClient issues one bounded JSON request per call. It never retries.
type jsonClient struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

func newJSONClient(baseURL string, timeout time.Duration, httpClient *http.Client) *jsonClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &jsonClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		timeout: timeout,
	}
}

func (c *jsonClient) do(ctx context.Context, op, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &CallError{Op: op, Kind: KindRejected, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &CallError{Op: op, Kind: KindRejected, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &CallError{Op: op, Kind: KindUnavailable, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &CallError{Op: op, Kind: KindNotFound, Status: resp.StatusCode, Err: errors.New(readSnippet(resp.Body))}
	case resp.StatusCode >= 500:
		return &CallError{Op: op, Kind: KindUnavailable, Status: resp.StatusCode, Err: errors.New(readSnippet(resp.Body))}
	case resp.StatusCode >= 300:
		return &CallError{Op: op, Kind: KindRejected, Status: resp.StatusCode, Err: errors.New(readSnippet(resp.Body))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &CallError{Op: op, Kind: KindMalformed, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func readSnippet(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 512))
	if len(b) == 0 {
		return "empty response body"
	}
	return strings.TrimSpace(string(b))
}
