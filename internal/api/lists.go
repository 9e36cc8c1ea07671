package api

import (
	"context"
	"net/http"
	"net/url"

	"ticked/internal/model"
)

type ListDraft struct {
	Name  string  `json:"name"`
	Color *string `json:"color,omitempty"`
	Icon  *string `json:"icon,omitempty"`
}

func (c *Client) Lists(ctx context.Context) ([]model.List, error) {
	var out []model.List
	err := c.do(ctx, http.MethodGet, "/lists", nil, &out)
	return out, err
}

func (c *Client) CreateList(ctx context.Context, draft ListDraft) (model.List, error) {
	var out model.List
	err := c.do(ctx, http.MethodPost, "/lists", draft, &out)
	return out, err
}

func (c *Client) UpdateList(ctx context.Context, id string, patch model.ListPatch) error {
	return c.do(ctx, http.MethodPut, "/lists/"+url.PathEscape(id), patch, nil)
}

// DeleteList removes a list; the server reassigns its tasks to the
// default list.
func (c *Client) DeleteList(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/lists/"+url.PathEscape(id), nil, nil)
}
