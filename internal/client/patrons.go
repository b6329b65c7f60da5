package client

import (
	"context"
	"fmt"

	"github.com/openshelf/openshelf/internal/gateway"
	"github.com/openshelf/openshelf/types"
)

// Patrons wraps the user-management endpoints. Admin only on the
// server side.
type Patrons struct {
	gw *gateway.Gateway
}

func NewPatrons(gw *gateway.Gateway) *Patrons {
	return &Patrons{gw: gw}
}

func (c *Patrons) List(ctx context.Context) ([]types.User, error) {
	raw, err := c.gw.Get(ctx, "/api/users")
	if err != nil {
		return nil, err
	}
	return decodeList[types.User](raw)
}

func (c *Patrons) Get(ctx context.Context, id int) (types.User, error) {
	raw, err := c.gw.Get(ctx, fmt.Sprintf("/api/users/%d", id))
	if err != nil {
		return types.User{}, err
	}
	return decodeOne[types.User](raw)
}

func (c *Patrons) Create(ctx context.Context, user types.User) (types.User, error) {
	raw, err := c.gw.Post(ctx, "/api/users", user)
	if err != nil {
		return types.User{}, err
	}
	return decodeOne[types.User](raw)
}

func (c *Patrons) Update(ctx context.Context, id int, user types.User) (types.User, error) {
	raw, err := c.gw.Put(ctx, fmt.Sprintf("/api/users/%d", id), user)
	if err != nil {
		return types.User{}, err
	}
	return decodeOne[types.User](raw)
}

func (c *Patrons) Delete(ctx context.Context, id int) error {
	_, err := c.gw.Delete(ctx, fmt.Sprintf("/api/users/%d", id))
	return err
}
