package storefront

import (
	"time"

	"github.com/shopspring/decimal"
)

// Money is an amount in a specific currency. Formatted carries the
// locale-aware rendering filled in at the API boundary.
type Money struct {
	Value     decimal.Decimal `json:"value"`
	Currency  string          `json:"currency"`
	Formatted string          `json:"formatted,omitempty"`
}

// NewMoney builds a Money value.
func NewMoney(value decimal.Decimal, currency string) Money {
	return Money{Value: value, Currency: currency}
}

// Category is a node of the catalog category tree.
type Category struct {
	ID           int        `json:"id"`
	ParentID     int        `json:"parentId"`
	Name         string     `json:"name"`
	URLKey       string     `json:"urlKey"`
	URLPath      string     `json:"urlPath"`
	Description  string     `json:"description"`
	Level        int        `json:"level"`
	Position     int        `json:"position"`
	IsActive     bool       `json:"isActive"`
	ProductCount int        `json:"productCount"`
	Children     []Category `json:"children"`
}

// StockInfo describes product availability as reported by the backend.
type StockInfo struct {
	Qty        decimal.Decimal `json:"qty"`
	InStock    bool            `json:"inStock"`
	MinSaleQty decimal.Decimal `json:"minSaleQty"`
	MaxSaleQty decimal.Decimal `json:"maxSaleQty"`
}

// ProductPrice carries the regular and the effective price of a product.
// FinalPrice already has the special-price fallback applied.
type ProductPrice struct {
	Regular   Money      `json:"regular"`
	Final     Money      `json:"final"`
	SpecialTo *time.Time `json:"specialTo,omitempty"`
	OnSale    bool       `json:"onSale"`
}

// Product is a catalog product in the bridge's own shape. Attributes holds
// the backend's custom attributes flattened into a camelCase keyed map.
type Product struct {
	ID               int               `json:"id"`
	SKU              string            `json:"sku"`
	Name             string            `json:"name"`
	TypeID           string            `json:"typeId"`
	URLKey           string            `json:"urlKey"`
	Description      string            `json:"description"`
	ShortDescription string            `json:"shortDescription"`
	Image            string            `json:"image"`
	Thumbnail        string            `json:"thumbnail"`
	Price            ProductPrice      `json:"price"`
	Stock            StockInfo         `json:"stock"`
	CategoryIDs      []int             `json:"categoryIds"`
	Attributes       map[string]string `json:"attributes"`
	Visible          bool              `json:"visible"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// SortDirection is an ascending/descending marker for product sorting.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// ProductFilter is a single field filter in a product query. Condition uses
// the backend grammar (eq, like, in, gteq, lteq, finset).
type ProductFilter struct {
	Field     string
	Value     string
	Condition string
}

// ProductSort orders a product query result.
type ProductSort struct {
	Field     string
	Direction SortDirection
}

// ProductQuery describes a paginated product search.
type ProductQuery struct {
	Search      string
	Filters     []ProductFilter
	Sort        []ProductSort
	CurrentPage int
	PageSize    int
}

// Normalize clamps pagination to sane bounds.
func (q *ProductQuery) Normalize() {
	if q.CurrentPage < 1 {
		q.CurrentPage = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}
}

// PageInfo describes the pagination of a list result.
type PageInfo struct {
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalPages  int `json:"totalPages"`
}

// ProductList is a page of products plus pagination info.
type ProductList struct {
	Items      []Product `json:"items"`
	TotalCount int       `json:"totalCount"`
	PageInfo   PageInfo  `json:"pageInfo"`
}
