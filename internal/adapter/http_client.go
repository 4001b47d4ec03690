package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fitkeeper/go-fit-keeper/models"
	"github.com/go-resty/resty/v2"
)

// HTTPClientConfig holds the settings for the HTTP remote store client.
type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpRemoteStore struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPRemoteStore builds a RemoteStore speaking the sync backend's
// document API over HTTP. BaseURL defaults to the local development server
// and Timeout to 15 s; the sync orchestrator layers its own per-attempt
// timeouts on top via context deadlines.
func NewHTTPRemoteStore(cfg HTTPClientConfig) RemoteStore {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpRemoteStore{client: cli}
}

func (h *httpRemoteStore) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpRemoteStore) bearer() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// GetDocument implements RemoteStore. A 404 from the backend is not an
// error: it means the user has never pushed from any device, so the caller
// receives (nil, nil) and treats the sync as a first sync.
func (h *httpRemoteStore) GetDocument(ctx context.Context, userID string) (*models.CloudDocument, error) {
	var doc models.CloudDocument

	req := h.client.R().
		SetContext(ctx).
		SetResult(&doc)
	if token := h.bearer(); token != "" {
		req.SetAuthToken(token)
	}

	resp, err := req.Get("/api/users/" + userID + "/document")
	if err != nil {
		return nil, fmt.Errorf("%w: get document: %w", ErrRemoteUnavailable, err)
	}

	if mapped := mapHTTPError(resp); mapped != nil {
		if errors.Is(mapped, ErrDocumentNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", mapped)
	}

	return doc.Normalize(), nil
}

// UpsertDocument implements RemoteStore via PATCH, which the backend applies
// with shallow-merge semantics over the existing document.
func (h *httpRemoteStore) UpsertDocument(ctx context.Context, userID string, doc models.CloudDocument) error {
	req := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(doc)
	if token := h.bearer(); token != "" {
		req.SetAuthToken(token)
	}

	resp, err := req.Patch("/api/users/" + userID + "/document")
	if err != nil {
		return fmt.Errorf("%w: upsert document: %w", ErrRemoteUnavailable, err)
	}

	if mapped := mapHTTPError(resp); mapped != nil {
		return fmt.Errorf("upsert document: %w", mapped)
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusNoContent {
		return fmt.Errorf("upsert document: unexpected status %d", resp.StatusCode())
	}

	return nil
}
