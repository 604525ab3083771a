package directus

import (
	"context"
	"io"
	"net/http"
)

// Ping checks that the backend answers. Any non-2xx answer counts as
// unavailable.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.doRequest(ctx, request{method: http.MethodGet, path: "/server/ping"})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: http.StatusServiceUnavailable, Message: "ping returned " + resp.Status}
	}
	return nil
}
