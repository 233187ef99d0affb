package models

import (
	"errors"

	"merchstore/entities"
)

var ErrBadRequest = errors.New("bad request")
var ErrUnautorized = errors.New("unautorized")
var ErrServerError = errors.New("server error")
var ErrNotFoundError = errors.New("not found")
var ErrNotAllowed = errors.New("not acceptable")
var ErrWalletUnavailable = errors.New("wallet extension not available")
var ErrWalletNotConnected = errors.New("wallet not connected")

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CartRequest struct {
	ProductId string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type PaymentMethodRequest struct {
	UseDiscountToken bool `json:"use_discount_token"`
}

type CartResponse struct {
	Lines            []entities.CartLine `json:"lines"`
	Subtotal         float64             `json:"subtotal"`
	Discount         float64             `json:"discount"`
	Total            float64             `json:"total"`
	UseDiscountToken bool                `json:"use_discount_token"`
}

type PaymentState struct {
	Status              string  `json:"status"`
	Asset               string  `json:"asset"`
	AmountUSD           float64 `json:"amount_usd"`
	MinorUnits          string  `json:"minor_units"`
	TokenAddress        string  `json:"token_address"`
	AllowanceSufficient bool    `json:"allowance_sufficient"`
	TxHash              string  `json:"tx_hash,omitempty"`
	Error               string  `json:"error,omitempty"`
}

type CheckoutState struct {
	Step          string                 `json:"step"`
	WalletAddress string                 `json:"wallet_address,omitempty"`
	Payment       *PaymentState          `json:"payment,omitempty"`
	Order         *entities.PendingOrder `json:"order,omitempty"`
}
