// Package status fetches the per-account status resource from the
// upstream application backend. The fetch itself has no auth logic;
// access is gated by the caller before it runs.
package status

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/farstack/heimdall/core"
	"github.com/farstack/heimdall/ports"
)

// HTTPProvider implements the StatusProvider interface against an HTTP
// upstream exposing GET {base}/users/{fid}/status.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

// NewHTTPProvider creates a new HTTP status provider
func NewHTTPProvider(baseURL string) ports.StatusProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Status fetches the status resource for the given fid.
func (p *HTTPProvider) Status(ctx context.Context, fid int64) (core.UserStatus, error) {
	url := fmt.Sprintf("%s/users/%d/status", p.baseURL, fid)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return core.UserStatus{}, fmt.Errorf("failed to build status request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return core.UserStatus{}, fmt.Errorf("failed to fetch status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return core.UserStatus{}, fmt.Errorf("status upstream returned %d", resp.StatusCode)
	}

	var status core.UserStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return core.UserStatus{}, fmt.Errorf("failed to decode status response: %w", err)
	}

	return status, nil
}
