package directus

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/rentkeeper/internal/contracts"
)

func (c *Client) contractsPath() string {
	return "/items/" + url.PathEscape(c.contracts)
}

func (c *Client) contractPath(id string) string {
	return c.contractsPath() + "/" + url.PathEscape(id)
}

// ListContracts returns every contract owned by userID.
func (c *Client) ListContracts(ctx context.Context, userID string) ([]contracts.RawRecord, error) {
	q := url.Values{}
	q.Set("filter[usuario_id][_eq]", userID)
	q.Set("limit", "-1")

	var out []contracts.RawRecord
	err := c.do(ctx, request{method: http.MethodGet, path: c.contractsPath(), query: q}, nil, &out)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []contracts.RawRecord{}
	}
	return out, nil
}

// CreateContract posts rec and returns the stored record.
func (c *Client) CreateContract(ctx context.Context, rec contracts.RawRecord) (contracts.RawRecord, error) {
	var out contracts.RawRecord
	err := c.do(ctx, request{method: http.MethodPost, path: c.contractsPath()}, rec, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateContract patches contract id with rec and returns the stored record.
func (c *Client) UpdateContract(ctx context.Context, id string, rec contracts.RawRecord) (contracts.RawRecord, error) {
	var out contracts.RawRecord
	err := c.do(ctx, request{method: http.MethodPatch, path: c.contractPath(id)}, rec, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteContract removes contract id.
func (c *Client) DeleteContract(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: c.contractPath(id)}, nil, nil)
}
