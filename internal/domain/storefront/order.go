package storefront

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a line item of a placed order.
type OrderItem struct {
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	QtyOrdered decimal.Decimal `json:"qtyOrdered"`
	Price      Money           `json:"price"`
	RowTotal   Money           `json:"rowTotal"`
}

// Order is a placed order as reported by the backend. Status carries the
// backend status code verbatim; the backend owns the order lifecycle.
type Order struct {
	EntityID        int         `json:"entityId"`
	IncrementID     string      `json:"incrementId"`
	Status          string      `json:"status"`
	State           string      `json:"state"`
	CustomerID      int         `json:"customerId,omitempty"`
	CustomerEmail   string      `json:"customerEmail"`
	Currency        string      `json:"currency"`
	Subtotal        Money       `json:"subtotal"`
	ShippingAmount  Money       `json:"shippingAmount"`
	DiscountAmount  Money       `json:"discountAmount"`
	TaxAmount       Money       `json:"taxAmount"`
	GrandTotal      Money       `json:"grandTotal"`
	ShippingAddress *Address    `json:"shippingAddress,omitempty"`
	BillingAddress  *Address    `json:"billingAddress,omitempty"`
	Items           []OrderItem `json:"items"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// OrderList is a page of orders plus pagination info.
type OrderList struct {
	Items      []Order  `json:"items"`
	TotalCount int      `json:"totalCount"`
	PageInfo   PageInfo `json:"pageInfo"`
}
