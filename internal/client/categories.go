package client

import (
	"context"
	"fmt"

	"github.com/openshelf/openshelf/internal/gateway"
	"github.com/openshelf/openshelf/types"
)

// Categories wraps the category endpoints.
type Categories struct {
	gw *gateway.Gateway
}

func NewCategories(gw *gateway.Gateway) *Categories {
	return &Categories{gw: gw}
}

func (c *Categories) List(ctx context.Context) ([]types.Category, error) {
	raw, err := c.gw.Get(ctx, "/api/categories")
	if err != nil {
		return nil, err
	}
	return decodeList[types.Category](raw)
}

func (c *Categories) Get(ctx context.Context, id int) (types.Category, error) {
	raw, err := c.gw.Get(ctx, fmt.Sprintf("/api/categories/%d", id))
	if err != nil {
		return types.Category{}, err
	}
	return decodeOne[types.Category](raw)
}

func (c *Categories) Create(ctx context.Context, category types.Category) (types.Category, error) {
	raw, err := c.gw.Post(ctx, "/api/categories", category)
	if err != nil {
		return types.Category{}, err
	}
	return decodeOne[types.Category](raw)
}

func (c *Categories) Update(ctx context.Context, id int, category types.Category) (types.Category, error) {
	raw, err := c.gw.Put(ctx, fmt.Sprintf("/api/categories/%d", id), category)
	if err != nil {
		return types.Category{}, err
	}
	return decodeOne[types.Category](raw)
}

func (c *Categories) Delete(ctx context.Context, id int) error {
	_, err := c.gw.Delete(ctx, fmt.Sprintf("/api/categories/%d", id))
	return err
}
