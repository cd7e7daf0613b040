package api

import (
	"context"
	"fmt"

	"github.com/dkolesn/swapmart/internal/errs"
	"github.com/dkolesn/swapmart/internal/model"
)

type itemsResponse struct {
	Status string       `json:"status"`
	Items  []model.Item `json:"items"`
}

type itemResponse struct {
	Status string     `json:"status"`
	Item   model.Item `json:"item"`
}

// Items fetches the full listing collection. Ownership and approval filtering
// happen client-side; the endpoint returns everything visible to the session.
func (c *Client) Items(ctx context.Context) ([]model.Item, error) {
	var resp itemsResponse
	if err := c.get(ctx, "/items", &resp); err != nil {
		return nil, err
	}
	if err := checkStatus(resp.Status); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// ItemByID fetches a single listing.
func (c *Client) ItemByID(ctx context.Context, id int64) (*model.Item, error) {
	var resp itemResponse
	if err := c.get(ctx, fmt.Sprintf("/items/%d", id), &resp); err != nil {
		return nil, err
	}
	if err := checkStatus(resp.Status); err != nil {
		return nil, err
	}
	item := resp.Item
	return &item, nil
}

// checkStatus validates the optional {status:"OK"} envelope field some
// endpoints carry. Absent means fine; anything other than OK is a failure.
func checkStatus(status string) error {
	if status == "" || status == "OK" {
		return nil
	}
	return &model.APIError{
		Message: "unexpected response status " + status,
		Err:     errs.ErrUnavailable,
	}
}
