// Package client talks JSON to the document service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"yogaslot/internal/apperr"
)

const DefaultTimeout = 10 * time.Second

// TokenSource returns the bearer token to attach, or "" for none.
type TokenSource func() string

type Client struct {
	baseURL string
	http    *http.Client

	mu             sync.RWMutex
	token          TokenSource
	onUnauthorized func()
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetAuth wires the session into the client: token is read before every
// request and onUnauthorized runs whenever the service answers 401.
func (c *Client) SetAuth(token TokenSource, onUnauthorized func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.onUnauthorized = onUnauthorized
}

func (c *Client) List(ctx context.Context, resource string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, c.path(resource, 0, params), nil, out)
}

func (c *Client) Get(ctx context.Context, resource string, id int64, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, c.path(resource, id, params), nil, out)
}

func (c *Client) Create(ctx context.Context, resource string, body, out any) error {
	return c.do(ctx, http.MethodPost, c.path(resource, 0, nil), body, out)
}

func (c *Client) Patch(ctx context.Context, resource string, id int64, body, out any) error {
	return c.do(ctx, http.MethodPatch, c.path(resource, id, nil), body, out)
}

func (c *Client) Put(ctx context.Context, resource string, id int64, body, out any) error {
	return c.do(ctx, http.MethodPut, c.path(resource, id, nil), body, out)
}

func (c *Client) Delete(ctx context.Context, resource string, id int64) error {
	return c.do(ctx, http.MethodDelete, c.path(resource, id, nil), nil, nil)
}

func (c *Client) path(resource string, id int64, params url.Values) string {
	p := c.baseURL + "/" + resource
	if id != 0 {
		p += "/" + strconv.FormatInt(id, 10)
	}
	if len(params) > 0 {
		p += "?" + params.Encode()
	}
	return p
}

func (c *Client) do(ctx context.Context, method, target string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return apperr.Wrap(apperr.KindInvalid, "failed to encode request", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return apperr.Wrap(apperr.KindRequestFailed, "failed to build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.RLock()
	token, onUnauthorized := c.token, c.onUnauthorized
	c.mu.RUnlock()
	if token != nil {
		if t := token(); t != "" {
			req.Header.Set("Authorization", "Bearer "+t)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperr.Wrap(apperr.KindRequestFailed, "document service unreachable", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperr.Wrap(apperr.KindRequestFailed, "failed to read response", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if onUnauthorized != nil {
			onUnauthorized()
		}
		return apperr.New(apperr.KindUnauthorized, "session expired, please log in again")
	case resp.StatusCode == http.StatusNotFound:
		return apperr.New(apperr.KindNotFound, "resource not found")
	case resp.StatusCode == http.StatusConflict:
		return apperr.New(apperr.KindConflict, "resource already exists")
	case resp.StatusCode >= http.StatusBadRequest:
		return apperr.New(apperr.KindRequestFailed, fmt.Sprintf("%s %s: unexpected status %d", method, req.URL.Path, resp.StatusCode))
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return apperr.Wrap(apperr.KindRequestFailed, "failed to decode response", err)
	}
	return nil
}
