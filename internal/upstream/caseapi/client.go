// Package caseapi is the client for the case/document service. It satisfies
// document.Store, so deployments where the document service owns storage plug
// it in wherever a store is expected.
package caseapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"caseflow/internal/form/document"
	"caseflow/internal/upstream"
)

// AttachedFile describes a file already uploaded against the case.
type AttachedFile struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Category string `json:"category"`
}

// Client calls the case/document service.
type Client struct {
	baseURL string
	http    *http.Client
}

// New constructs a client for the service at baseURL.
func New(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, http: httpClient}
}

// Create persists a new document.
func (c *Client) Create(ctx context.Context, doc *document.Document) error {
	return upstream.Do(ctx, c.http, http.MethodPost,
		fmt.Sprintf("%s/documents", c.baseURL), doc, nil)
}

// Get loads a document by ID.
func (c *Client) Get(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	var out document.Document
	err := upstream.Do(ctx, c.http, http.MethodGet,
		fmt.Sprintf("%s/documents/%s", c.baseURL, id), nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveTaskPageData replaces one data[task][page] entry.
func (c *Client) SaveTaskPageData(ctx context.Context, id uuid.UUID, taskSlug, pageSlug string, body map[string]any) error {
	return upstream.Do(ctx, c.http, http.MethodPut,
		fmt.Sprintf("%s/documents/%s/tasks/%s/pages/%s", c.baseURL, id, taskSlug, pageSlug), body, nil)
}

// Submit marks the document submitted.
func (c *Client) Submit(ctx context.Context, id uuid.UUID, at time.Time) error {
	return upstream.Do(ctx, c.http, http.MethodPost,
		fmt.Sprintf("%s/documents/%s/submit", c.baseURL, id),
		map[string]any{"submittedAt": at}, nil)
}

// GetAttachedFiles lists the files uploaded against the case.
func (c *Client) GetAttachedFiles(ctx context.Context, id uuid.UUID) ([]AttachedFile, error) {
	var out []AttachedFile
	err := upstream.Do(ctx, c.http, http.MethodGet,
		fmt.Sprintf("%s/documents/%s/files", c.baseURL, id), nil, &out)
	return out, err
}
