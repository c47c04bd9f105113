package magento

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/storefront/bridge/internal/domain/storefront"
)

// Magento product status/visibility values.
const (
	productStatusEnabled    = 1
	productVisibilityHidden = 1
)

// ---------------------------------------------------------------------------
// Categories
// ---------------------------------------------------------------------------

// CategoryTree returns the category tree rooted at rootID. Magento's
// /categories endpoint returns the tree under the store root when no root is
// given.
func (c *Client) CategoryTree(ctx context.Context, rootID int) (*storefront.Category, error) {
	path := "/categories"
	if rootID > 0 {
		path += "?rootCategoryId=" + strconv.Itoa(rootID)
	}
	var tree restCategory
	if err := c.doAdmin(ctx, http.MethodGet, path, nil, &tree); err != nil {
		return nil, err
	}
	cat := convertCategory(tree)
	return &cat, nil
}

// Category returns a single category. The per-id endpoint, unlike the tree
// endpoint, carries the category's custom attributes (url_key, description).
func (c *Client) Category(ctx context.Context, id int) (*storefront.Category, error) {
	var rc restCategory
	if err := c.doAdmin(ctx, http.MethodGet, "/categories/"+strconv.Itoa(id), nil, &rc); err != nil {
		return nil, err
	}
	cat := convertCategory(rc)
	return &cat, nil
}

// convertCategory maps a REST category (and its children_data) onto the
// domain shape, flattening custom attributes.
func convertCategory(rc restCategory) storefront.Category {
	attrs := attributeMap(rc.CustomAttributes)
	cat := storefront.Category{
		ID:           rc.ID,
		ParentID:     rc.ParentID,
		Name:         rc.Name,
		URLKey:       attrs["urlKey"],
		URLPath:      attrs["urlPath"],
		Description:  attrs["description"],
		Level:        rc.Level,
		Position:     rc.Position,
		IsActive:     rc.IsActive,
		ProductCount: rc.ProductCount,
		Children:     make([]storefront.Category, 0, len(rc.ChildrenData)),
	}
	for _, child := range rc.ChildrenData {
		cat.Children = append(cat.Children, convertCategory(child))
	}
	return cat
}

// ---------------------------------------------------------------------------
// Products
// ---------------------------------------------------------------------------

// SearchProducts runs a paginated product search through Magento's
// searchCriteria grammar.
func (c *Client) SearchProducts(ctx context.Context, q storefront.ProductQuery) (*storefront.ProductList, error) {
	q.Normalize()

	sc := newSearchCriteria()
	if q.Search != "" {
		sc.Filter("name", "%"+q.Search+"%", "like")
	}
	for _, f := range q.Filters {
		condition := f.Condition
		if condition == "" {
			condition = "eq"
		}
		sc.Filter(f.Field, f.Value, condition)
	}
	for i, s := range q.Sort {
		sc.Sort(i, s.Field, string(s.Direction))
	}
	sc.Page(q.CurrentPage, q.PageSize)

	var result restProductSearchResult
	if err := c.doAdmin(ctx, http.MethodGet, "/products?"+sc.Encode(), nil, &result); err != nil {
		return nil, err
	}

	currency := c.displayCurrency(ctx)
	list := &storefront.ProductList{
		Items:      make([]storefront.Product, 0, len(result.Items)),
		TotalCount: result.TotalCount,
		PageInfo: storefront.PageInfo{
			CurrentPage: q.CurrentPage,
			PageSize:    q.PageSize,
			TotalPages:  totalPages(result.TotalCount, q.PageSize),
		},
	}
	for _, rp := range result.Items {
		list.Items = append(list.Items, convertProduct(rp, currency))
	}
	return list, nil
}

// ProductBySKU returns a single product by SKU.
func (c *Client) ProductBySKU(ctx context.Context, sku string) (*storefront.Product, error) {
	var rp restProduct
	if err := c.doAdmin(ctx, http.MethodGet, "/products/"+escapePathSegment(sku), nil, &rp); err != nil {
		return nil, err
	}
	p := convertProduct(rp, c.displayCurrency(ctx))
	return &p, nil
}

// ProductByURLKey resolves a product through its url_key attribute. Magento
// has no dedicated endpoint for this, so it is a single-filter search.
func (c *Client) ProductByURLKey(ctx context.Context, urlKey string) (*storefront.Product, error) {
	sc := newSearchCriteria().Filter("url_key", urlKey, "eq").Page(1, 1)
	var result restProductSearchResult
	if err := c.doAdmin(ctx, http.MethodGet, "/products?"+sc.Encode(), nil, &result); err != nil {
		return nil, err
	}
	if len(result.Items) == 0 {
		return nil, fmt.Errorf("%w: product url_key %q", storefront.ErrNotFound, urlKey)
	}
	p := convertProduct(result.Items[0], c.displayCurrency(ctx))
	return &p, nil
}

// convertProduct maps a REST product onto the domain shape: custom attributes
// flattened to camelCase, stock lifted out of extension_attributes, and the
// price fallback applied.
func convertProduct(rp restProduct, currency string) storefront.Product {
	attrs := attributeMap(rp.CustomAttributes)

	regular := dec(rp.Price)
	final, specialTo, onSale := effectivePrice(regular, attrs, time.Now().UTC())

	p := storefront.Product{
		ID:               rp.ID,
		SKU:              rp.SKU,
		Name:             rp.Name,
		TypeID:           rp.TypeID,
		URLKey:           attrs["urlKey"],
		Description:      attrs["description"],
		ShortDescription: attrs["shortDescription"],
		Image:            attrs["image"],
		Thumbnail:        attrs["thumbnail"],
		Price: storefront.ProductPrice{
			Regular:   storefront.NewMoney(regular, currency),
			Final:     storefront.NewMoney(final, currency),
			SpecialTo: specialTo,
			OnSale:    onSale,
		},
		Attributes: attrs,
		Visible:    rp.Status == productStatusEnabled && rp.Visibility != productVisibilityHidden,
		CreatedAt:  parseBackendTime(rp.CreatedAt),
		UpdatedAt:  parseBackendTime(rp.UpdatedAt),
	}

	if ext := rp.ExtensionAttributes; ext != nil {
		if ext.StockItem != nil {
			p.Stock = storefront.StockInfo{
				Qty:        dec(ext.StockItem.Qty),
				InStock:    ext.StockItem.IsInStock,
				MinSaleQty: dec(ext.StockItem.MinSaleQty),
				MaxSaleQty: dec(ext.StockItem.MaxSaleQty),
			}
		}
		for _, link := range ext.CategoryLinks {
			if id, err := strconv.Atoi(link.CategoryID); err == nil {
				p.CategoryIDs = append(p.CategoryIDs, id)
			}
		}
	}
	return p
}

// effectivePrice applies the special-price fallback: the special price wins
// only when it is positive, lower than the regular price and inside its
// date window. A missing or non-positive result falls back to the regular
// price, so the final price is never negative while the regular price isn't.
func effectivePrice(regular decimal.Decimal, attrs map[string]string, now time.Time) (decimal.Decimal, *time.Time, bool) {
	special, err := decimal.NewFromString(attrs["specialPrice"])
	if err != nil || !special.IsPositive() || special.GreaterThanOrEqual(regular) {
		return regular, nil, false
	}

	if from := parseBackendTime(attrs["specialFromDate"]); !from.IsZero() && now.Before(from) {
		return regular, nil, false
	}
	if to := parseBackendTime(attrs["specialToDate"]); !to.IsZero() {
		if now.After(to) {
			return regular, nil, false
		}
		return special, &to, true
	}
	return special, nil, true
}

func totalPages(totalCount, pageSize int) int {
	pages := (totalCount + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}
