package services

import (
	"context"
	"log"

	"merchstore/models"
	"merchstore/wallet"
)

type WalletService struct {
	provider wallet.Capability
}

func NewWalletService(provider wallet.Capability) WalletService {
	return WalletService{
		provider: provider,
	}
}

// Connect requests account access and reports the first returned address.
func (ws *WalletService) Connect(ctx context.Context) (address string, err error) {
	if ws.provider == nil {
		err = models.ErrWalletUnavailable
		return
	}
	accounts, e := wallet.RequestAccounts(ctx, ws.provider)
	if e != nil {
		log.Printf("Connect: %v", e)
		err = e
		return
	}
	if len(accounts) == 0 {
		log.Printf("Connect: empty account list")
		err = models.ErrWalletNotConnected
		return
	}
	address = accounts[0]
	return
}
