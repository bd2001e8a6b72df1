package templates

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/kiranshivaraju/tenantportal/pkg/models"
)

// Sentinel errors for template API failures.
var (
	ErrTemplateAPIUnreachable = errors.New("template api unreachable")
	ErrTemplateAPIError       = errors.New("template api error")
)

// HTTPClient talks to a remote template API. It implements Fetcher.
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
	now     func() time.Time
}

// NewHTTPClient creates a new template API client.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithToken returns a copy of the client that sends a bearer token.
func (c *HTTPClient) WithToken(token string) *HTTPClient {
	cp := *c
	cp.token = token
	return &cp
}

// Fetch retrieves one template. A 404 yields ErrNotFound.
func (c *HTTPClient) Fetch(ctx context.Context, tenantID string, templateType models.TemplateType) (*models.TenantTemplate, error) {
	u := fmt.Sprintf("%s/api/templates/%s/%s", c.baseURL, url.PathEscape(tenantID), url.PathEscape(string(templateType)))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, classifyError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", ErrTemplateAPIError, resp.StatusCode)
	}

	var body struct {
		Data models.TenantTemplate `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding template response: %w", err)
	}
	return &body.Data, nil
}

// Save encodes markup and persists it, reporting success as a boolean.
// Failures are logged, never returned.
func (c *HTTPClient) Save(ctx context.Context, tenantID string, templateType models.TemplateType, markup string) bool {
	_, err := c.SaveTemplate(ctx, SaveRequest{
		TenantID:     tenantID,
		TemplateType: templateType,
		Template:     Encode(markup),
		Version:      c.now().Format(time.RFC3339Nano),
	})
	if err != nil {
		slog.Warn("template save failed", "tenant_id", tenantID, "template_type", templateType, "error", err)
		return false
	}
	return true
}

// SaveTemplate posts req and returns the stored template. A 422 response is
// returned as *ValidationError.
func (c *HTTPClient) SaveTemplate(ctx context.Context, req SaveRequest) (*models.TenantTemplate, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/templates", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.setHeaders(httpReq)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, classifyError(err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var body struct {
			Data models.TenantTemplate `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return nil, fmt.Errorf("decoding save response: %w", err)
		}
		return &body.Data, nil
	case http.StatusUnprocessableEntity:
		var body struct {
			Error struct {
				Details ValidationResult `json:"details"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return nil, fmt.Errorf("%w: status %d", ErrTemplateAPIError, resp.StatusCode)
		}
		return nil, &ValidationError{Result: body.Error.Details}
	default:
		return nil, fmt.Errorf("%w: status %d", ErrTemplateAPIError, resp.StatusCode)
	}
}

func (c *HTTPClient) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// classifyError wraps transport failures, including timeouts and
// cancellation, as ErrTemplateAPIUnreachable.
func classifyError(err error) error {
	return fmt.Errorf("%w: %w", ErrTemplateAPIUnreachable, err)
}

// Compile-time check that HTTPClient implements Fetcher.
var _ Fetcher = (*HTTPClient)(nil)
