package services

import (
	"context"
	"log"
	"math/rand"
	"net/url"
	"strconv"
	"sync"
	"time"

	"merchstore/entities"
	"merchstore/models"
	"merchstore/wallet"
)

type CheckoutStep string

const (
	StepAssetSelection CheckoutStep = "asset_selection"
	StepConnectWallet  CheckoutStep = "connect_wallet"
	StepPayment        CheckoutStep = "payment"
	StepCompleted      CheckoutStep = "completed"
)

// checkoutState is the wizard's view state, keyed by cart session. It lives
// in memory only; leaving the wizard or restarting the process discards it.
type checkoutState struct {
	step          CheckoutStep
	walletAddress string
	attempt       *PaymentAttempt
	order         *entities.PendingOrder
}

type CheckoutService struct {
	mu       sync.Mutex
	sessions map[string]*checkoutState

	cs       CartService
	ws       WalletService
	provider wallet.Capability

	recipient    string
	tokenAddress string
	onrampURL    string
}

func NewCheckoutService(cartService CartService, walletService WalletService, provider wallet.Capability, recipient, tokenAddress, onrampURL string) *CheckoutService {
	return &CheckoutService{
		sessions:     map[string]*checkoutState{},
		cs:           cartService,
		ws:           walletService,
		provider:     provider,
		recipient:    recipient,
		tokenAddress: tokenAddress,
		onrampURL:    onrampURL,
	}
}

func (c *CheckoutService) state(cartSessionId string) *checkoutState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessions[cartSessionId]
}

// Start resets the wizard to asset selection. Requires a non-empty cart.
func (c *CheckoutService) Start(cartSessionId string) (err error) {
	cart, e := c.cs.GetCart(cartSessionId)
	if e != nil {
		err = e
		return
	}
	if len(cart.Lines) == 0 {
		log.Printf("Start: cart is empty")
		err = models.ErrBadRequest
		return
	}
	c.mu.Lock()
	c.sessions[cartSessionId] = &checkoutState{step: StepAssetSelection}
	c.mu.Unlock()
	return
}

// SelectAsset stores the discount flag on the cart and advances to the
// wallet-connection step. Proceeding from asset selection is always allowed.
func (c *CheckoutService) SelectAsset(cartSessionId string, useDiscountToken bool) (err error) {
	st := c.state(cartSessionId)
	if st == nil || st.step != StepAssetSelection {
		err = models.ErrNotAllowed
		return
	}
	if err = c.cs.SetDiscountAssetSelected(cartSessionId, useDiscountToken); err != nil {
		return
	}
	st.step = StepConnectWallet
	return
}

// ConnectWallet drives the wallet connector. A failure leaves the step
// unchanged; the user re-triggers. Invoked again while already connected it
// just reports the held address.
func (c *CheckoutService) ConnectWallet(ctx context.Context, cartSessionId string) (address string, err error) {
	st := c.state(cartSessionId)
	if st == nil || st.step != StepConnectWallet {
		err = models.ErrNotAllowed
		return
	}
	if st.walletAddress != "" {
		address = st.walletAddress
		return
	}
	address, err = c.ws.Connect(ctx)
	if err != nil {
		return
	}
	st.walletAddress = address
	return
}

// EnterPayment builds a fresh payment attempt from the cart total and runs
// the automatic allowance check. Gated on a connected wallet.
func (c *CheckoutService) EnterPayment(ctx context.Context, cartSessionId string) (err error) {
	st := c.state(cartSessionId)
	if st == nil || (st.step != StepConnectWallet && st.step != StepPayment) {
		err = models.ErrNotAllowed
		return
	}
	if st.walletAddress == "" {
		err = models.ErrWalletNotConnected
		return
	}
	cart, e := c.cs.GetCart(cartSessionId)
	if e != nil {
		err = e
		return
	}
	asset := entities.AssetUSDC
	if cart.UseDiscountToken {
		asset = entities.AssetToken
	}
	st.attempt = NewPaymentAttempt(c.provider, cart.Total(), asset, c.recipient, c.tokenAddress, st.walletAddress)
	st.step = StepPayment
	// The allowance check failing is recoverable; the step is entered anyway.
	if e = st.attempt.CheckAllowance(ctx); e != nil {
		log.Printf("EnterPayment: %v", e)
	}
	return
}

func (c *CheckoutService) CheckAllowance(ctx context.Context, cartSessionId string) (err error) {
	st := c.state(cartSessionId)
	if st == nil || st.step != StepPayment {
		err = models.ErrNotAllowed
		return
	}
	err = st.attempt.CheckAllowance(ctx)
	return
}

func (c *CheckoutService) Approve(ctx context.Context, cartSessionId string) (err error) {
	st := c.state(cartSessionId)
	if st == nil || st.step != StepPayment {
		err = models.ErrNotAllowed
		return
	}
	err = st.attempt.Approve(ctx)
	return
}

// Pay submits the transfer. On acceptance the cart is cleared and the wizard
// enters its terminal state; there is no way back from completed.
func (c *CheckoutService) Pay(ctx context.Context, cartSessionId string) (order *entities.PendingOrder, err error) {
	st := c.state(cartSessionId)
	if st == nil || st.step != StepPayment {
		err = models.ErrNotAllowed
		return
	}
	if _, err = st.attempt.Send(ctx); err != nil {
		return
	}
	if e := c.cs.Clear(cartSessionId); e != nil {
		log.Printf("Pay: clear cart: %v", e)
	}
	order = &entities.PendingOrder{
		Id:        orderId(),
		Total:     st.attempt.Amount(),
		Timestamp: time.Now().UTC(),
	}
	st.order = order
	st.step = StepCompleted
	return
}

func (c *CheckoutService) State(cartSessionId string) (state models.CheckoutState, err error) {
	st := c.state(cartSessionId)
	if st == nil {
		err = models.ErrNotFoundError
		return
	}
	state = models.CheckoutState{
		Step:          string(st.step),
		WalletAddress: st.walletAddress,
		Order:         st.order,
	}
	if st.attempt != nil {
		state.Payment = st.attempt.Snapshot()
	}
	return
}

// OnrampURL hands out the hosted on/off-ramp link for the selected asset.
func (c *CheckoutService) OnrampURL(cartSessionId string) (ramp string, err error) {
	st := c.state(cartSessionId)
	if st == nil {
		err = models.ErrNotFoundError
		return
	}
	cart, e := c.cs.GetCart(cartSessionId)
	if e != nil {
		err = e
		return
	}
	asset := entities.AssetUSDC
	if cart.UseDiscountToken {
		asset = entities.AssetToken
	}
	ramp = c.onrampURL + "?asset=" + url.QueryEscape(string(asset))
	return
}

// OnrampClosed records the popup-closed signal. Closing the popup is the
// only completion signal the ramp flow has; nothing is verified against it.
func (c *CheckoutService) OnrampClosed(cartSessionId string) (err error) {
	st := c.state(cartSessionId)
	if st == nil {
		err = models.ErrNotFoundError
		return
	}
	log.Printf("OnrampClosed: session %s", cartSessionId)
	return
}

// orderId is cosmetic only: current time plus a random suffix.
func orderId() string {
	ms := strconv.FormatInt(time.Now().UnixMilli(), 10)
	return "ORD-" + ms[len(ms)-6:] + "-" + strconv.Itoa(rand.Intn(1000))
}
