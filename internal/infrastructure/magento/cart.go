package magento

import (
	"context"
	"net/http"
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/storefront/bridge/internal/domain/storefront"
)

// ---------------------------------------------------------------------------
// Cart creation
// ---------------------------------------------------------------------------

// CreateGuestCart creates an anonymous cart. Magento answers with the masked
// quote id as a bare JSON string.
func (c *Client) CreateGuestCart(ctx context.Context) (string, error) {
	var maskedID string
	if err := c.doGuest(ctx, http.MethodPost, "/guest-carts", nil, &maskedID); err != nil {
		return "", err
	}
	return maskedID, nil
}

// CreateCustomerCart creates or returns the active cart of the customer. The
// backend answers with the numeric quote id.
func (c *Client) CreateCustomerCart(ctx context.Context, token string) (string, error) {
	var quoteID int
	if err := c.doCustomer(ctx, token, http.MethodPost, "/carts/mine", nil, &quoteID); err != nil {
		return "", err
	}
	return strconv.Itoa(quoteID), nil
}

// MergeGuestCart assigns a guest cart to the customer owning the token. The
// assignment endpoint is admin-scoped; afterwards the customer's active cart
// is the merged one.
func (c *Client) MergeGuestCart(ctx context.Context, maskedID, token string) (string, error) {
	customer, err := c.Customer(ctx, token)
	if err != nil {
		return "", err
	}

	body := map[string]any{
		"customerId": customer.ID,
		"storeId":    customer.StoreID,
	}
	if err := c.doAdmin(ctx, http.MethodPut, "/guest-carts/"+maskedID, body, nil); err != nil {
		return "", err
	}
	return c.CreateCustomerCart(ctx, token)
}

// ---------------------------------------------------------------------------
// Cart retrieval
// ---------------------------------------------------------------------------

// Cart fetches the cart body and its totals concurrently and merges them
// once both complete. The first failure cancels the sibling fetch; no
// partial merge is ever returned.
func (c *Client) Cart(ctx context.Context, ref storefront.CartRef) (*storefront.Cart, error) {
	var (
		body   restCart
		totals restTotals
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.doCart(gctx, ref, http.MethodGet, "", nil, &body)
	})
	g.Go(func() error {
		return c.doCart(gctx, ref, http.MethodGet, "/totals", nil, &totals)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return mergeCart(ref, body, totals), nil
}

// refreshCart re-reads the cart after a mutation.
func (c *Client) refreshCart(ctx context.Context, ref storefront.CartRef) (*storefront.Cart, error) {
	return c.Cart(ctx, ref)
}

// mergeCart combines the cart body and totals payloads into the domain cart.
func mergeCart(ref storefront.CartRef, body restCart, totals restTotals) *storefront.Cart {
	currency := totals.QuoteCurrencyCode
	if currency == "" && body.Currency != nil {
		currency = body.Currency.QuoteCurrencyCode
	}

	cart := &storefront.Cart{
		ID:        ref.ID,
		QuoteID:   body.ID,
		Active:    body.IsActive,
		Virtual:   body.IsVirtual,
		ItemCount: body.ItemsCount,
		Currency:  currency,
		Items:     make([]storefront.CartItem, 0, len(body.Items)),
		Totals:    convertTotals(totals, currency),
	}
	for _, item := range body.Items {
		cart.Items = append(cart.Items, storefront.CartItem{
			ItemID:      item.ItemID,
			SKU:         item.SKU,
			Name:        item.Name,
			Qty:         dec(item.Qty),
			Price:       storefront.NewMoney(dec(item.Price), currency),
			RowTotal:    storefront.NewMoney(dec(item.Price*item.Qty), currency),
			ProductType: item.ProductType,
		})
	}
	return cart
}

// convertTotals maps the totals payload, normalizing the segment order.
func convertTotals(rt restTotals, currency string) storefront.Totals {
	return storefront.Totals{
		Subtotal:        storefront.NewMoney(dec(rt.Subtotal), currency),
		SubtotalInclTax: storefront.NewMoney(dec(rt.SubtotalInclTax), currency),
		Shipping:        storefront.NewMoney(dec(rt.ShippingAmount), currency),
		Discount:        storefront.NewMoney(dec(rt.DiscountAmount), currency),
		Tax:             storefront.NewMoney(dec(rt.TaxAmount), currency),
		GrandTotal:      storefront.NewMoney(dec(rt.GrandTotal), currency),
		CouponCode:      rt.CouponCode,
		Segments:        normalizeSegments(rt.TotalSegments, currency),
	}
}

// segmentRank fixes the display order of the known totals segments. Magento
// emits the discount segment in a version-dependent position; the bridge
// always renders subtotal, shipping, discount, tax, grand_total. Unknown
// segments keep their relative order and sort in before grand_total.
var segmentRank = map[string]int{
	string(storefront.SegmentSubtotal):   0,
	string(storefront.SegmentShipping):   1,
	string(storefront.SegmentDiscount):   2,
	string(storefront.SegmentTax):        3,
	string(storefront.SegmentGrandTotal): 5,
}

const unknownSegmentRank = 4

// normalizeSegments reorders total segments into the canonical sequence and
// drops segments the backend emitted with a null value.
func normalizeSegments(segments []restTotalSegment, currency string) []storefront.TotalSegment {
	out := make([]storefront.TotalSegment, 0, len(segments))
	for _, s := range segments {
		if s.Value == nil {
			continue
		}
		out = append(out, storefront.TotalSegment{
			Code:  storefront.TotalSegmentCode(s.Code),
			Title: s.Title,
			Value: storefront.NewMoney(dec(*s.Value), currency),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return rankOf(out[i].Code) < rankOf(out[j].Code)
	})
	return out
}

func rankOf(code storefront.TotalSegmentCode) int {
	if rank, ok := segmentRank[string(code)]; ok {
		return rank
	}
	return unknownSegmentRank
}

// ---------------------------------------------------------------------------
// Cart mutations
// ---------------------------------------------------------------------------

// AddItem adds a line to the cart and returns the refreshed cart.
func (c *Client) AddItem(ctx context.Context, ref storefront.CartRef, input storefront.CartItemInput) (*storefront.Cart, error) {
	body := restCartItemEnvelope{CartItem: restCartItemInput{
		SKU:     input.SKU,
		Qty:     input.Qty.InexactFloat64(),
		QuoteID: quoteIDFor(ref),
	}}
	if err := c.doCart(ctx, ref, http.MethodPost, "/items", body, nil); err != nil {
		return nil, err
	}
	return c.refreshCart(ctx, ref)
}

// UpdateItem changes the quantity of an existing cart line.
func (c *Client) UpdateItem(ctx context.Context, ref storefront.CartRef, itemID int, input storefront.CartItemInput) (*storefront.Cart, error) {
	body := restCartItemEnvelope{CartItem: restCartItemInput{
		ItemID:  itemID,
		SKU:     input.SKU,
		Qty:     input.Qty.InexactFloat64(),
		QuoteID: quoteIDFor(ref),
	}}
	if err := c.doCart(ctx, ref, http.MethodPut, "/items/"+strconv.Itoa(itemID), body, nil); err != nil {
		return nil, err
	}
	return c.refreshCart(ctx, ref)
}

// RemoveItem deletes a line from the cart.
func (c *Client) RemoveItem(ctx context.Context, ref storefront.CartRef, itemID int) (*storefront.Cart, error) {
	if err := c.doCart(ctx, ref, http.MethodDelete, "/items/"+strconv.Itoa(itemID), nil, nil); err != nil {
		return nil, err
	}
	return c.refreshCart(ctx, ref)
}

// ApplyCoupon applies a coupon code to the cart. Backend rejections
// translate to ErrInvalidCoupon through the error taxonomy.
func (c *Client) ApplyCoupon(ctx context.Context, ref storefront.CartRef, code string) (*storefront.Cart, error) {
	if err := c.doCart(ctx, ref, http.MethodPut, "/coupons/"+escapePathSegment(code), nil, nil); err != nil {
		return nil, err
	}
	return c.refreshCart(ctx, ref)
}

// RemoveCoupon removes the applied coupon from the cart.
func (c *Client) RemoveCoupon(ctx context.Context, ref storefront.CartRef) (*storefront.Cart, error) {
	if err := c.doCart(ctx, ref, http.MethodDelete, "/coupons", nil, nil); err != nil {
		return nil, err
	}
	return c.refreshCart(ctx, ref)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// doCart routes a cart call to the guest or customer endpoint family.
func (c *Client) doCart(ctx context.Context, ref storefront.CartRef, method, suffix string, body, out any) error {
	if ref.IsCustomer() {
		return c.doCustomer(ctx, ref.CustomerToken, method, "/carts/mine"+suffix, body, out)
	}
	return c.doGuest(ctx, method, "/guest-carts/"+ref.ID+suffix, body, out)
}

// quoteIDFor is the quote_id value item writes must carry: the masked id for
// guest carts, the numeric quote id for customer carts.
func quoteIDFor(ref storefront.CartRef) string {
	return ref.ID
}
