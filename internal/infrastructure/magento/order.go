package magento

import (
	"context"
	"net/http"
	"strconv"

	"github.com/storefront/bridge/internal/domain/storefront"
)

// CustomerOrders returns the customer's order history, newest first. Order
// search is admin-scoped; the customer id filter keeps it to the one account.
func (c *Client) CustomerOrders(ctx context.Context, customerID, currentPage, pageSize int) (*storefront.OrderList, error) {
	if currentPage < 1 {
		currentPage = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	sc := newSearchCriteria().
		Filter("customer_id", strconv.Itoa(customerID), "eq").
		Sort(0, "created_at", "DESC").
		Page(currentPage, pageSize)

	var result restOrderSearchResult
	if err := c.doAdmin(ctx, http.MethodGet, "/orders?"+sc.Encode(), nil, &result); err != nil {
		return nil, err
	}

	list := &storefront.OrderList{
		Items:      make([]storefront.Order, 0, len(result.Items)),
		TotalCount: result.TotalCount,
		PageInfo: storefront.PageInfo{
			CurrentPage: currentPage,
			PageSize:    pageSize,
			TotalPages:  totalPages(result.TotalCount, pageSize),
		},
	}
	for _, ro := range result.Items {
		list.Items = append(list.Items, convertOrder(ro))
	}
	return list, nil
}

// Order returns a single order by its entity id.
func (c *Client) Order(ctx context.Context, entityID int) (*storefront.Order, error) {
	var ro restOrder
	if err := c.doAdmin(ctx, http.MethodGet, "/orders/"+strconv.Itoa(entityID), nil, &ro); err != nil {
		return nil, err
	}
	order := convertOrder(ro)
	return &order, nil
}

// convertOrder maps a REST order onto the domain shape. Child items of
// configurable products carry a parent_item_id and duplicate the parent line,
// so they are skipped.
func convertOrder(ro restOrder) storefront.Order {
	currency := ro.OrderCurrencyCode

	order := storefront.Order{
		EntityID:       ro.EntityID,
		IncrementID:    ro.IncrementID,
		Status:         ro.Status,
		State:          ro.State,
		CustomerID:     ro.CustomerID,
		CustomerEmail:  ro.CustomerEmail,
		Currency:       currency,
		Subtotal:       storefront.NewMoney(dec(ro.Subtotal), currency),
		ShippingAmount: storefront.NewMoney(dec(ro.ShippingAmount), currency),
		DiscountAmount: storefront.NewMoney(dec(ro.DiscountAmount), currency),
		TaxAmount:      storefront.NewMoney(dec(ro.TaxAmount), currency),
		GrandTotal:     storefront.NewMoney(dec(ro.GrandTotal), currency),
		Items:          make([]storefront.OrderItem, 0, len(ro.Items)),
		CreatedAt:      parseBackendTime(ro.CreatedAt),
	}

	for _, ri := range ro.Items {
		if ri.ParentItemID != nil {
			continue
		}
		order.Items = append(order.Items, storefront.OrderItem{
			SKU:        ri.SKU,
			Name:       ri.Name,
			QtyOrdered: dec(ri.QtyOrdered),
			Price:      storefront.NewMoney(dec(ri.Price), currency),
			RowTotal:   storefront.NewMoney(dec(ri.RowTotal), currency),
		})
	}

	if ro.BillingAddress != nil {
		addr := convertRestAddress(*ro.BillingAddress)
		order.BillingAddress = &addr
	}
	if ext := ro.ExtensionAttributes; ext != nil && len(ext.ShippingAssignments) > 0 {
		addr := convertRestAddress(ext.ShippingAssignments[0].Shipping.Address)
		order.ShippingAddress = &addr
	}
	return order
}
