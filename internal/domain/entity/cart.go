package entity

import (
	"time"

	"velora/pkg/errors"
)

// Cart is owned by exactly one identifier: a user ID for authenticated
// customers or a session ID for guests. Never both, never neither.
type Cart struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"user_id"`
	SessionID *string   `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CartItem struct {
	ID         string    `json:"id"`
	CartID     string    `json:"cart_id"`
	VariantID  string    `json:"variant_id"`
	Quantity   int       `json:"quantity"`
	PriceAtAdd float64   `json:"price_at_add"`
	CreatedAt  time.Time `json:"created_at"`
}

type CartWithItems struct {
	Cart  Cart       `json:"cart"`
	Items []CartItem `json:"items"`
}

// VariantSnapshot is the variant's live state fetched at cart read time.
// It is never persisted on the item.
type VariantSnapshot struct {
	VariantID     string   `json:"variant_id"`
	ProductID     string   `json:"product_id"`
	ProductName   string   `json:"product_name"`
	ProductStatus string   `json:"product_status"`
	SKU           string   `json:"sku"`
	Price         float64  `json:"price"`
	SalePrice     *float64 `json:"sale_price"`
	StockQuantity int      `json:"stock_quantity"`
}

// EffectivePrice returns the sale price when one is set.
func (v *VariantSnapshot) EffectivePrice() float64 {
	if v.SalePrice != nil {
		return *v.SalePrice
	}
	return v.Price
}

const (
	CartIssueStock  = "stock"
	CartIssuePrice  = "price"
	CartIssueStatus = "status"

	CartIssueSeverityWarning = "warning"
	CartIssueSeverityError   = "error"
)

// CartIssue is a discrepancy between a cart item and the variant's live
// state. Issues are surfaced to the caller; cart contents are never
// silently mutated.
type CartIssue struct {
	ItemID    string `json:"item_id"`
	VariantID string `json:"variant_id"`
	Kind      string `json:"kind"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
}

func NewCart(userID, sessionID string) (*Cart, error) {
	if (userID == "") == (sessionID == "") {
		return nil, errors.NewDomain("CART_OWNER_INVALID", "cart requires exactly one of user id or session id")
	}

	now := time.Now()
	cart := &Cart{
		CreatedAt: now,
		UpdatedAt: now,
	}
	if userID != "" {
		cart.UserID = &userID
	} else {
		cart.SessionID = &sessionID
	}
	return cart, nil
}

func NewCartItem(cartID, variantID string, quantity int, priceAtAdd float64) (*CartItem, error) {
	if quantity < 1 {
		return nil, errors.NewDomain("CART_QUANTITY_INVALID", "quantity must be a positive integer")
	}
	if priceAtAdd < 0 {
		return nil, errors.NewDomain("CART_PRICE_INVALID", "price snapshot must not be negative")
	}
	return &CartItem{
		CartID:     cartID,
		VariantID:  variantID,
		Quantity:   quantity,
		PriceAtAdd: priceAtAdd,
		CreatedAt:  time.Now(),
	}, nil
}

func (c *Cart) IsGuest() bool {
	return c.UserID == nil
}

// OwnerKey returns the identifier the cart is keyed by.
func (c *Cart) OwnerKey() string {
	if c.UserID != nil {
		return *c.UserID
	}
	if c.SessionID != nil {
		return *c.SessionID
	}
	return ""
}

// Validate classifies each item against its variant's live state. A price
// drift since add time is a warning; missing stock or an unpublished
// product blocks checkout and is an error.
func (cw *CartWithItems) Validate(snapshots map[string]*VariantSnapshot) []CartIssue {
	var issues []CartIssue
	for _, item := range cw.Items {
		snap, ok := snapshots[item.VariantID]
		if !ok {
			issues = append(issues, CartIssue{
				ItemID:    item.ID,
				VariantID: item.VariantID,
				Kind:      CartIssueStatus,
				Severity:  CartIssueSeverityError,
				Message:   "variant is no longer available",
			})
			continue
		}

		if item.Quantity > snap.StockQuantity {
			issues = append(issues, CartIssue{
				ItemID:    item.ID,
				VariantID: item.VariantID,
				Kind:      CartIssueStock,
				Severity:  CartIssueSeverityError,
				Message:   "requested quantity exceeds available stock",
			})
		}
		if item.PriceAtAdd != snap.EffectivePrice() {
			issues = append(issues, CartIssue{
				ItemID:    item.ID,
				VariantID: item.VariantID,
				Kind:      CartIssuePrice,
				Severity:  CartIssueSeverityWarning,
				Message:   "price has changed since the item was added",
			})
		}
		if snap.ProductStatus != ProductStatusPublished {
			issues = append(issues, CartIssue{
				ItemID:    item.ID,
				VariantID: item.VariantID,
				Kind:      CartIssueStatus,
				Severity:  CartIssueSeverityError,
				Message:   "product is not published",
			})
		}
	}
	return issues
}
