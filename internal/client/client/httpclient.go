package client

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

	"github.com/theryangeary/gl/internal/client/models"
	"github.com/theryangeary/gl/internal/common"
)

// maxErrorBody caps how much of an error response body is read back.
const maxErrorBody = 4096

// HTTPClient talks to the server's REST endpoint.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// statusError maps an HTTP error response back onto the shared error
// taxonomy, keeping the server's plain-text message.
func statusError(code int, msg string) error {
	var kind error
	switch code {
	case http.StatusBadRequest:
		kind = common.ErrorValidation
	case http.StatusNotFound:
		kind = common.ErrorNotFound
	case http.StatusConflict:
		kind = common.ErrorConflictRetryable
	default:
		kind = common.ErrorInternal
	}
	if msg == "" {
		return kind
	}
	return fmt.Errorf("%w: %s", kind, msg)
}

// do performs one JSON request. A nil in skips the request body; a nil out
// skips decoding the response body.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return statusError(resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *HTTPClient) ListEntries(ctx context.Context) ([]models.Entry, error) {
	var result []models.Entry
	if err := c.do(ctx, http.MethodGet, "/api/entries", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTPClient) CreateEntry(ctx context.Context, req models.CreateEntry) (*models.Entry, error) {
	var entry models.Entry
	if err := c.do(ctx, http.MethodPost, "/api/entries", req, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *HTTPClient) UpdateEntry(ctx context.Context, id int64, req models.UpdateEntry) (*models.Entry, error) {
	var entry models.Entry
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/entries/%d", id), req, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *HTTPClient) DeleteEntry(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/entries/%d", id), nil, nil)
}

func (c *HTTPClient) Reorder(ctx context.Context, req models.Reorder) error {
	return c.do(ctx, http.MethodPut, "/api/entries/reorder", req, nil)
}

func (c *HTTPClient) EntrySuggestions(ctx context.Context, query string) ([]string, error) {
	var result []string
	path := "/api/entries/suggestions?query=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTPClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	var result []models.Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTPClient) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	req := struct {
		Name string `json:"name"`
	}{Name: name}
	if err := c.do(ctx, http.MethodPost, "/api/categories", req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *HTTPClient) UpdateCategory(ctx context.Context, id int64, name string) (*models.Category, error) {
	var category models.Category
	req := struct {
		Name string `json:"name"`
	}{Name: name}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/categories/%d", id), req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *HTTPClient) DeleteCategory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/categories/%d", id), nil, nil)
}

func (c *HTTPClient) CategorySuggestions(ctx context.Context, query string) ([]string, error) {
	var result []string
	path := "/api/categories/suggestions?query=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}
