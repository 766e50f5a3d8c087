// Package upstream holds the shared HTTP plumbing for the external service
// clients. All clients forward the caller's bearer token and translate
// transport failures into the coded upstream error taxonomy at this boundary.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	dErrors "caseflow/pkg/domain-errors"
	"caseflow/pkg/requestcontext"
)

// DefaultTimeout bounds a single upstream call.
const DefaultTimeout = 10 * time.Second

// NewHTTPClient builds the http.Client shared by the service clients.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
}

// Do issues one JSON request and decodes the response into out (when
// non-nil). Errors carry CodeUpstreamNotFound for 404 and CodeUpstreamFailure
// for transport faults and other non-2xx statuses, so hydration can branch on
// outcome without string matching.
func Do(ctx context.Context, client *http.Client, method, url string, reqBody, out any) error {
	var body io.Reader
	if reqBody != nil {
		payload, err := json.Marshal(reqBody)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "marshal upstream request")
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "build upstream request")
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := requestcontext.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUpstreamFailure, fmt.Sprintf("%s %s", method, url))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return dErrors.Newf(dErrors.CodeUpstreamNotFound, "%s %s: not found", method, url)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return dErrors.Newf(dErrors.CodeUpstreamFailure, "%s %s: status %d", method, url, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUpstreamFailure, fmt.Sprintf("decode %s %s response", method, url))
	}
	return nil
}
