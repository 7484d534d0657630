// Package rest is the outgoing-request layer shared by the remote service
// clients. It centralizes base URLs, timeouts, bearer authorization from the
// injected credential cell, and mapping of remote failures onto coded errors.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/legacyframe/storefront/pkg/creds"
	pkgerrors "github.com/legacyframe/storefront/pkg/errors"
	"github.com/legacyframe/storefront/pkg/logger"
)

// Client issues JSON requests against one remote service.
type Client struct {
	baseURL string
	http    *http.Client
	creds   *creds.Cell
	logger  *logger.Logger
}

// Request describes one remote call. Unauthenticated requests (login,
// register) skip the bearer header even when a token is held.
type Request struct {
	Method          string
	Path            string
	Query           url.Values
	Body            any
	Unauthenticated bool
}

// NewClient builds a client rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, cell *creds.Cell, logg *logger.Logger) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, fmt.Errorf("base url is required")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: trimmed,
		http:    &http.Client{Timeout: timeout},
		creds:   cell,
		logger:  logg,
	}, nil
}

// BaseURL returns the configured root of the remote service.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs the request and decodes a JSON response into out when out is
// non-nil. Transport failures map to DEPENDENCY_ERROR; non-2xx statuses map to
// coded errors carrying the remote error body message when parseable.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	endpoint := c.baseURL + req.Path
	if len(req.Query) > 0 {
		endpoint += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding request body")
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, endpoint, body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building request")
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if !req.Unauthenticated {
		if token := c.creds.Get(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remote call failed")
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(ctx, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding remote response")
	}
	return nil
}

// remoteError is the error body shape shared by the storefront microservices.
type remoteError struct {
	Message string `json:"message"`
	Field   string `json:"field"`
}

func (c *Client) statusError(ctx context.Context, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	message := ""
	var parsed remoteError
	if len(raw) > 0 && json.Unmarshal(raw, &parsed) == nil {
		message = strings.TrimSpace(parsed.Message)
	}
	if message == "" {
		message = fmt.Sprintf("remote returned status %d", resp.StatusCode)
	}

	if c.logger != nil {
		logCtx := c.logger.WithFields(ctx, map[string]any{
			"status": resp.StatusCode,
			"url":    resp.Request.URL.String(),
		})
		c.logger.Warn(logCtx, "remote call rejected")
	}

	return pkgerrors.New(codeForStatus(resp.StatusCode), message)
}

func codeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return pkgerrors.CodeValidation
	case http.StatusUnauthorized:
		return pkgerrors.CodeUnauthorized
	case http.StatusForbidden:
		return pkgerrors.CodeForbidden
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case http.StatusConflict:
		return pkgerrors.CodeConflict
	}
	if status >= 500 {
		return pkgerrors.CodeDependency
	}
	return pkgerrors.CodeDependency
}
