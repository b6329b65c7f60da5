package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/openshelf/openshelf/internal/gateway"
	"github.com/openshelf/openshelf/types"
)

// Books wraps the book endpoints.
type Books struct {
	gw *gateway.Gateway
}

func NewBooks(gw *gateway.Gateway) *Books {
	return &Books{gw: gw}
}

func (c *Books) List(ctx context.Context, params url.Values) ([]types.Book, error) {
	raw, err := c.gw.Get(ctx, withQuery("/api/books", params))
	if err != nil {
		return nil, err
	}
	return decodeList[types.Book](raw)
}

func (c *Books) Get(ctx context.Context, id int) (types.Book, error) {
	raw, err := c.gw.Get(ctx, fmt.Sprintf("/api/books/%d", id))
	if err != nil {
		return types.Book{}, err
	}
	return decodeOne[types.Book](raw)
}

func (c *Books) Create(ctx context.Context, book types.Book) (types.Book, error) {
	raw, err := c.gw.Post(ctx, "/api/books", book)
	if err != nil {
		return types.Book{}, err
	}
	return decodeOne[types.Book](raw)
}

func (c *Books) Update(ctx context.Context, id int, book types.Book) (types.Book, error) {
	raw, err := c.gw.Put(ctx, fmt.Sprintf("/api/books/%d", id), book)
	if err != nil {
		return types.Book{}, err
	}
	return decodeOne[types.Book](raw)
}

func (c *Books) Delete(ctx context.Context, id int) error {
	_, err := c.gw.Delete(ctx, fmt.Sprintf("/api/books/%d", id))
	return err
}
