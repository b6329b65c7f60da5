package client

import (
	"context"

	"github.com/openshelf/openshelf/internal/gateway"
	"github.com/openshelf/openshelf/types"
)

// Stats wraps the dashboard stats endpoints.
type Stats struct {
	gw *gateway.Gateway
}

func NewStats(gw *gateway.Gateway) *Stats {
	return &Stats{gw: gw}
}

func (c *Stats) Admin(ctx context.Context) (types.AdminStats, error) {
	raw, err := c.gw.Get(ctx, "/api/admin/stats")
	if err != nil {
		return types.AdminStats{}, err
	}
	return decodeOne[types.AdminStats](raw)
}

func (c *Stats) User(ctx context.Context) (types.UserStats, error) {
	raw, err := c.gw.Get(ctx, "/api/user/stats")
	if err != nil {
		return types.UserStats{}, err
	}
	return decodeOne[types.UserStats](raw)
}
