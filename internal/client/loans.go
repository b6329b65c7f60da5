package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/openshelf/openshelf/internal/gateway"
	"github.com/openshelf/openshelf/types"
)

// Loans wraps the loan endpoints.
type Loans struct {
	gw *gateway.Gateway
}

func NewLoans(gw *gateway.Gateway) *Loans {
	return &Loans{gw: gw}
}

func (c *Loans) List(ctx context.Context, params url.Values) ([]types.Loan, error) {
	raw, err := c.gw.Get(ctx, withQuery("/api/loans", params))
	if err != nil {
		return nil, err
	}
	return decodeList[types.Loan](raw)
}

func (c *Loans) Get(ctx context.Context, id int) (types.Loan, error) {
	raw, err := c.gw.Get(ctx, fmt.Sprintf("/api/loans/%d", id))
	if err != nil {
		return types.Loan{}, err
	}
	return decodeOne[types.Loan](raw)
}

func (c *Loans) Create(ctx context.Context, loan types.Loan) (types.Loan, error) {
	raw, err := c.gw.Post(ctx, "/api/loans", loan)
	if err != nil {
		return types.Loan{}, err
	}
	return decodeOne[types.Loan](raw)
}

func (c *Loans) Update(ctx context.Context, id int, loan types.Loan) (types.Loan, error) {
	raw, err := c.gw.Put(ctx, fmt.Sprintf("/api/loans/%d", id), loan)
	if err != nil {
		return types.Loan{}, err
	}
	return decodeOne[types.Loan](raw)
}

// Return marks the loaned book as returned.
func (c *Loans) Return(ctx context.Context, id int) (types.Loan, error) {
	raw, err := c.gw.Post(ctx, fmt.Sprintf("/api/loans/%d/return", id), nil)
	if err != nil {
		return types.Loan{}, err
	}
	return decodeOne[types.Loan](raw)
}

// ForCurrentUser lists the authenticated patron's own loans.
func (c *Loans) ForCurrentUser(ctx context.Context) ([]types.Loan, error) {
	raw, err := c.gw.Get(ctx, "/api/user/loans")
	if err != nil {
		return nil, err
	}
	return decodeList[types.Loan](raw)
}
