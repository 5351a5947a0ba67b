package services

import (
	"context"

	"wheeladmin/internal/errorx"
	"wheeladmin/internal/models"
	"wheeladmin/internal/principal"
)

type TransferClient interface {
	TransferToken(ctx context.Context, req models.TransferTokenRequest) (uint64, error)
}

type Wallet struct {
	client TransferClient
}

func NewWallet(c TransferClient) *Wallet {
	return &Wallet{client: c}
}

// Transfer sends amount base units of the ledger's token from the service
// account to the principal to. It returns the ledger block index.
func (w *Wallet) Transfer(ctx context.Context, req models.TransferTokenRequest) (uint64, error) {
	if _, err := principal.Parse(req.LedgerCanisterID); err != nil {
		return 0, err
	}
	to, err := principal.Parse(req.To)
	if err != nil {
		return 0, err
	}
	if to.IsAnonymous() {
		return 0, errorx.NewInvalidArgument("Cannot transfer to the anonymous principal")
	}
	if req.Amount == 0 {
		return 0, errorx.NewInvalidArgument("Transfer amount must be greater than zero")
	}
	return w.client.TransferToken(ctx, req)
}
