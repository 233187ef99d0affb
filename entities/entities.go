package entities

import "time"

// DiscountPercent is taken off the subtotal when paying with the discount token.
const DiscountPercent = 10

const (
	CategoryMerchandise = "merchandise"
	CategoryFeatures    = "features"
	CategoryStudio      = "studio"
	CategoryConcerts    = "concerts"
)

func ValidCategory(id string) bool {
	switch id {
	case CategoryMerchandise, CategoryFeatures, CategoryStudio, CategoryConcerts:
		return true
	}
	return false
}

type Product struct {
	Id          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"` // USD
	Images      []string `json:"images"`
	CategoryId  string   `json:"category_id"`
	InStock     bool     `json:"in_stock"`
	Featured    bool     `json:"featured,omitempty"`
}

// CartLine owns its product by value, so later catalog edits never
// reach into an existing cart.
type CartLine struct {
	Product  Product `json:"item"`
	Quantity int     `json:"quantity"`
}

type Cart struct {
	Lines            []CartLine `json:"lines"`
	UseDiscountToken bool       `json:"use_discount_token"`
}

func (c Cart) Subtotal() float64 {
	var sum float64
	for _, l := range c.Lines {
		sum += l.Product.Price * float64(l.Quantity)
	}
	return sum
}

func (c Cart) Discount() float64 {
	if !c.UseDiscountToken {
		return 0
	}
	return c.Subtotal() * DiscountPercent / 100
}

func (c Cart) Total() float64 {
	return c.Subtotal() - c.Discount()
}

type PaymentAsset string

const (
	AssetUSDC  PaymentAsset = "USDC"
	AssetToken PaymentAsset = "STAR"
)

type PaymentStatus string

const (
	StatusIdle      PaymentStatus = "idle"
	StatusApproving PaymentStatus = "approving"
	StatusSending   PaymentStatus = "sending"
	StatusCompleted PaymentStatus = "completed"
	StatusFailed    PaymentStatus = "failed"
)

// PendingOrder is the confirmation-screen value; it is never stored.
type PendingOrder struct {
	Id        string    `json:"id"`
	Total     float64   `json:"total"`
	Timestamp time.Time `json:"timestamp"`
}
