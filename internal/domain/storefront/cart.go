package storefront

import "github.com/shopspring/decimal"

// CartRef identifies a backend cart. Guest carts use the masked id issued by
// the backend; customer carts are addressed through the customer token and
// carry the numeric quote id for reference only.
type CartRef struct {
	ID            string
	CustomerToken string
}

// IsCustomer reports whether the ref addresses a customer cart.
func (r CartRef) IsCustomer() bool {
	return r.CustomerToken != ""
}

// CartItem is a line item of a cart.
type CartItem struct {
	ItemID      int             `json:"itemId"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Qty         decimal.Decimal `json:"qty"`
	Price       Money           `json:"price"`
	RowTotal    Money           `json:"rowTotal"`
	ProductType string          `json:"productType"`
}

// TotalSegmentCode identifies a totals segment. The bridge normalizes the
// backend's version-dependent segment order to the fixed sequence
// subtotal, shipping, discount, tax, grand_total.
type TotalSegmentCode string

const (
	SegmentSubtotal   TotalSegmentCode = "subtotal"
	SegmentShipping   TotalSegmentCode = "shipping"
	SegmentDiscount   TotalSegmentCode = "discount"
	SegmentTax        TotalSegmentCode = "tax"
	SegmentGrandTotal TotalSegmentCode = "grand_total"
)

// TotalSegment is a display row of the cart totals.
type TotalSegment struct {
	Code  TotalSegmentCode `json:"code"`
	Title string           `json:"title"`
	Value Money            `json:"value"`
}

// Totals is the computed cart totals.
type Totals struct {
	Subtotal        Money          `json:"subtotal"`
	SubtotalInclTax Money          `json:"subtotalInclTax"`
	Shipping        Money          `json:"shipping"`
	Discount        Money          `json:"discount"`
	Tax             Money          `json:"tax"`
	GrandTotal      Money          `json:"grandTotal"`
	CouponCode      string         `json:"couponCode,omitempty"`
	Segments        []TotalSegment `json:"segments"`
}

// Cart is a shopping cart merged with its totals.
type Cart struct {
	ID        string     `json:"id"`
	QuoteID   int        `json:"quoteId,omitempty"`
	Active    bool       `json:"active"`
	Virtual   bool       `json:"virtual"`
	ItemCount int        `json:"itemCount"`
	Currency  string     `json:"currency"`
	Items     []CartItem `json:"items"`
	Totals    Totals     `json:"totals"`
}

// CartItemInput adds or updates a cart line.
type CartItemInput struct {
	SKU string          `validate:"required"`
	Qty decimal.Decimal `validate:"required"`
}

// ShippingMethod is a quoted delivery option for a cart.
type ShippingMethod struct {
	CarrierCode  string `json:"carrierCode"`
	CarrierTitle string `json:"carrierTitle"`
	MethodCode   string `json:"methodCode"`
	MethodTitle  string `json:"methodTitle"`
	Amount       Money  `json:"amount"`
	Available    bool   `json:"available"`
}

// PaymentMethod is a payment option offered for a cart.
type PaymentMethod struct {
	Code  string `json:"code"`
	Title string `json:"title"`
}

// ShippingInformation sets the delivery address and method on a cart.
type ShippingInformation struct {
	ShippingAddress Address
	BillingAddress  Address
	CarrierCode     string `validate:"required"`
	MethodCode      string `validate:"required"`
}

// PaymentInput selects the payment method when placing an order. Email is
// required for guest checkouts only.
type PaymentInput struct {
	Method              string `validate:"required"`
	PurchaseOrderNumber string
	Email               string `validate:"omitempty,email"`
}
