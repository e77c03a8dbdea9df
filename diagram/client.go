// Package diagram adapts render requests onto the Eraser prompt-render API.
// The upstream response is passed through verbatim; this package does not
// reinterpret the returned diagram sources.
package diagram

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

	"course_content_generator/apierr"
)

const (
	DefaultBaseURL = "https://app.eraser.io"
	renderPath     = "/api/render/prompt"

	DefaultDiagramType = "cloud-architecture-diagram"
	DefaultTheme       = "light"
	DefaultMode        = "standard"
)

// Request describes one render call. Text is required; the remaining fields
// fall back to the defaults above.
type Request struct {
	Text        string `json:"text"`
	DiagramType string `json:"diagramType"`
	Theme       string `json:"theme"`
	Mode        string `json:"mode"`
}

// Response mirrors the Eraser render response. RawBody holds the upstream
// bytes so handlers can forward them unchanged.
type Response struct {
	ImageURL            string   `json:"imageUrl"`
	CreateEraserFileURL string   `json:"createEraserFileUrl"`
	Diagrams            []Source `json:"diagrams"`
	RawBody             []byte   `json:"-"`
}

// Source is one underlying diagram code/type pair.
type Source struct {
	DiagramType string `json:"diagramType"`
	Code        string `json:"code"`
}

// Client is a stateless adapter and safe for concurrent use; any in-flight
// limiting is the caller's policy.
type Client struct {
	apiToken string
	baseURL  string
	client   *http.Client
}

// New creates a Client. The token is not verified here; a missing token is
// reported per request by Render before any network call.
func New(apiToken, baseURL string, client *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		apiToken: apiToken,
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   client,
	}
}

// Render issues a single render attempt. Failure kinds: missing credential
// (config error, no network call made), non-2xx upstream status (propagated
// with the upstream code), transport failure.
func (c *Client) Render(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.Text) == "" {
		return Response{}, apierr.InvalidInput(errors.New("text content is required"))
	}
	if c.apiToken == "" {
		return Response{}, apierr.ConfigError(errors.New("eraser api token is not configured"))
	}
	if req.DiagramType == "" {
		req.DiagramType = DefaultDiagramType
	}
	if req.Theme == "" {
		req.Theme = DefaultTheme
	}
	if req.Mode == "" {
		req.Mode = DefaultMode
	}

	body, err := json.Marshal(req)
	if err != nil {
		return Response{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+renderPath, bytes.NewReader(body))
	if err != nil {
		return Response{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return Response{}, apierr.UpstreamFailure(0, fmt.Errorf("eraser request: %w", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, apierr.UpstreamFailure(0, fmt.Errorf("eraser response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Response{}, apierr.UpstreamFailure(resp.StatusCode,
			fmt.Errorf("eraser returned %d: %s", resp.StatusCode, truncate(string(raw), 500)))
	}

	var out Response
	if err := json.Unmarshal(raw, &out); err != nil {
		return Response{}, apierr.UpstreamFailure(0, fmt.Errorf("eraser body: %w", err))
	}
	out.RawBody = raw
	return out, nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
