package api

import (
	"context"
	"fmt"

	"github.com/dkolesn/swapmart/internal/model"
)

type categoriesResponse struct {
	Categories []model.Category `json:"categories"`
}

type categoryResponse struct {
	Category model.Category `json:"category"`
}

// Categories fetches the full reference collection.
func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	var resp categoriesResponse
	if err := c.get(ctx, "/categories", &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// CategoryByID fetches a single category.
func (c *Client) CategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	var resp categoryResponse
	if err := c.get(ctx, fmt.Sprintf("/categories/%d", id), &resp); err != nil {
		return nil, err
	}
	cat := resp.Category
	return &cat, nil
}
