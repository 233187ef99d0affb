package services

import (
	"context"
	"log"
	"math"
	"math/big"

	"merchstore/entities"
	"merchstore/models"
	"merchstore/wallet"
)

// USDCTokenAddress is fixed; the discount token address comes from the caller.
const USDCTokenAddress = "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"

// TokenUSDRate is the fixed USD rate of the discount token.
const TokenUSDRate = 0.00019856045123770627

const (
	usdcDecimals  = 6
	tokenDecimals = 18
)

// PaymentAttempt drives one two-transaction ERC-20 payment: approve, then
// transfer. One instance lives exactly as long as the payment step of a
// checkout; nothing here is persisted.
type PaymentAttempt struct {
	provider     wallet.Capability
	amount       float64 // USD
	asset        entities.PaymentAsset
	recipient    string
	tokenAddress string
	payer        string

	status    entities.PaymentStatus
	txHash    string
	lastError string
	approved  bool
}

func NewPaymentAttempt(provider wallet.Capability, amount float64, asset entities.PaymentAsset, recipient, tokenAddress, payer string) *PaymentAttempt {
	return &PaymentAttempt{
		provider:     provider,
		amount:       amount,
		asset:        asset,
		recipient:    recipient,
		tokenAddress: tokenAddress,
		payer:        payer,
		status:       entities.StatusIdle,
	}
}

func (p *PaymentAttempt) TokenAddress() string {
	if p.asset == entities.AssetUSDC {
		return USDCTokenAddress
	}
	return p.tokenAddress
}

// MinorUnits converts the USD amount to the asset's smallest denomination,
// truncated toward zero. The discount token converts through the USD rate
// first and scales by 10^18 after; the order is observable in the truncation.
func (p *PaymentAttempt) MinorUnits() *big.Int {
	tokens := p.amount
	decimals := usdcDecimals
	if p.asset != entities.AssetUSDC {
		tokens = p.amount / TokenUSDRate
		decimals = tokenDecimals
	}
	scaled := math.Floor(tokens * math.Pow10(decimals))
	units, _ := new(big.Float).SetFloat64(scaled).Int(nil)
	return units
}

// CheckAllowance queries the asset contract and updates the sufficiency
// flag. A failure surfaces as a recoverable message and leaves the flag
// unchanged. No-op while the payer address is empty.
func (p *PaymentAttempt) CheckAllowance(ctx context.Context) (err error) {
	if p.payer == "" {
		return
	}
	if p.provider == nil {
		p.lastError = models.ErrWalletUnavailable.Error()
		err = models.ErrWalletUnavailable
		return
	}
	if chainId, e := wallet.ChainID(ctx, p.provider); e == nil {
		log.Printf("CheckAllowance: connected to chain %s", chainId)
	}
	res, e := wallet.Call(ctx, p.provider, p.TokenAddress(), wallet.AllowanceData(p.payer, p.recipient))
	if e != nil {
		log.Printf("CheckAllowance: %v", e)
		p.lastError = "failed to check token approval status"
		err = e
		return
	}
	allowance, e := wallet.ParseHexUint(res)
	if e != nil {
		log.Printf("CheckAllowance: %v", e)
		p.lastError = "failed to check token approval status"
		err = e
		return
	}
	p.approved = allowance.Cmp(p.MinorUnits()) >= 0
	p.lastError = ""
	return
}

// Approve grants the recipient an unlimited allowance. Only actionable while
// the allowance is insufficient.
func (p *PaymentAttempt) Approve(ctx context.Context) (err error) {
	if p.payer == "" {
		p.lastError = models.ErrWalletNotConnected.Error()
		err = models.ErrWalletNotConnected
		return
	}
	if p.approved || p.status == entities.StatusApproving {
		err = models.ErrNotAllowed
		return
	}
	if p.provider == nil {
		p.status = entities.StatusFailed
		p.lastError = models.ErrWalletUnavailable.Error()
		err = models.ErrWalletUnavailable
		return
	}
	p.status = entities.StatusApproving
	p.lastError = ""
	txHash, e := wallet.SendTransaction(ctx, p.provider, p.payer, p.TokenAddress(), wallet.ApproveData(p.recipient))
	if e != nil {
		log.Printf("Approve: %v", e)
		p.status = entities.StatusFailed
		p.lastError = "failed to approve token: " + e.Error()
		err = e
		return
	}
	log.Printf("Approve: transaction hash %s", txHash)
	p.status = entities.StatusIdle
	p.approved = true
	return
}

// Send submits the transfer for the exact minor-unit amount. Only actionable
// once the allowance is sufficient and no send is outstanding or done.
func (p *PaymentAttempt) Send(ctx context.Context) (txHash string, err error) {
	if p.payer == "" {
		p.lastError = models.ErrWalletNotConnected.Error()
		err = models.ErrWalletNotConnected
		return
	}
	if !p.approved || p.status == entities.StatusSending || p.status == entities.StatusCompleted {
		err = models.ErrNotAllowed
		return
	}
	if p.provider == nil {
		p.status = entities.StatusFailed
		p.lastError = models.ErrWalletUnavailable.Error()
		err = models.ErrWalletUnavailable
		return
	}
	p.status = entities.StatusSending
	p.lastError = ""
	txHash, e := wallet.SendTransaction(ctx, p.provider, p.payer, p.TokenAddress(), wallet.TransferData(p.recipient, p.MinorUnits()))
	if e != nil {
		log.Printf("Send: %v", e)
		p.status = entities.StatusFailed
		p.lastError = "payment failed: " + e.Error()
		err = e
		return
	}
	p.txHash = txHash
	p.status = entities.StatusCompleted
	return
}

func (p *PaymentAttempt) Status() entities.PaymentStatus { return p.status }
func (p *PaymentAttempt) TxHash() string                 { return p.txHash }
func (p *PaymentAttempt) LastError() string              { return p.lastError }
func (p *PaymentAttempt) AllowanceSufficient() bool      { return p.approved }
func (p *PaymentAttempt) Amount() float64                { return p.amount }
func (p *PaymentAttempt) Asset() entities.PaymentAsset   { return p.asset }

func (p *PaymentAttempt) Snapshot() *models.PaymentState {
	return &models.PaymentState{
		Status:              string(p.status),
		Asset:               string(p.asset),
		AmountUSD:           p.amount,
		MinorUnits:          p.MinorUnits().String(),
		TokenAddress:        p.TokenAddress(),
		AllowanceSufficient: p.approved,
		TxHash:              p.txHash,
		Error:               p.lastError,
	}
}
