package magento

import (
	"context"
	"net/http"

	"github.com/storefront/bridge/internal/domain/storefront"
)

// EstimateShippingMethods quotes delivery options for the given address.
func (c *Client) EstimateShippingMethods(ctx context.Context, ref storefront.CartRef, addr storefront.Address) ([]storefront.ShippingMethod, error) {
	body := map[string]restAddress{"address": convertAddressToRest(addr)}
	var rest []restShippingMethod
	if err := c.doCart(ctx, ref, http.MethodPost, "/estimate-shipping-methods", body, &rest); err != nil {
		return nil, err
	}

	methods := make([]storefront.ShippingMethod, 0, len(rest))
	for _, rm := range rest {
		methods = append(methods, storefront.ShippingMethod{
			CarrierCode:  rm.CarrierCode,
			CarrierTitle: rm.CarrierTitle,
			MethodCode:   rm.MethodCode,
			MethodTitle:  rm.MethodTitle,
			Amount:       storefront.NewMoney(dec(rm.Amount), ""),
			Available:    rm.Available,
		})
	}
	return methods, nil
}

// SetShippingInformation stores the addresses and shipping method on the
// cart. The backend answers with the payment methods available afterwards.
func (c *Client) SetShippingInformation(ctx context.Context, ref storefront.CartRef, info storefront.ShippingInformation) ([]storefront.PaymentMethod, error) {
	body := restShippingInformationEnvelope{
		AddressInformation: restAddressInformation{
			ShippingAddress:     convertAddressToRest(info.ShippingAddress),
			BillingAddress:      convertAddressToRest(info.BillingAddress),
			ShippingCarrierCode: info.CarrierCode,
			ShippingMethodCode:  info.MethodCode,
		},
	}
	var result restShippingInformationResult
	if err := c.doCart(ctx, ref, http.MethodPost, "/shipping-information", body, &result); err != nil {
		return nil, err
	}
	return convertPaymentMethods(result.PaymentMethods), nil
}

// PaymentMethods lists the payment options for the cart.
func (c *Client) PaymentMethods(ctx context.Context, ref storefront.CartRef) ([]storefront.PaymentMethod, error) {
	var rest []restPaymentMethod
	if err := c.doCart(ctx, ref, http.MethodGet, "/payment-methods", nil, &rest); err != nil {
		return nil, err
	}
	return convertPaymentMethods(rest), nil
}

// PlaceOrder converts the cart into an order. Guest checkouts carry the
// shopper email set during shipping; the backend answers with the order id.
func (c *Client) PlaceOrder(ctx context.Context, ref storefront.CartRef, payment storefront.PaymentInput) (string, error) {
	body := restPaymentInformationEnvelope{
		Email: payment.Email,
		PaymentMethod: restPaymentMethodInput{
			Method:   payment.Method,
			PONumber: payment.PurchaseOrderNumber,
		},
	}
	// Magento answers with the order id, as a string or a bare number
	// depending on version.
	var orderID any
	if err := c.doCart(ctx, ref, http.MethodPost, "/payment-information", body, &orderID); err != nil {
		return "", err
	}
	return paramString(orderID), nil
}

// ---------------------------------------------------------------------------
// Conversion helpers
// ---------------------------------------------------------------------------

func convertPaymentMethods(rest []restPaymentMethod) []storefront.PaymentMethod {
	methods := make([]storefront.PaymentMethod, 0, len(rest))
	for _, rm := range rest {
		methods = append(methods, storefront.PaymentMethod{Code: rm.Code, Title: rm.Title})
	}
	return methods
}

// convertAddressToRest maps a domain address to Magento's checkout shape.
func convertAddressToRest(addr storefront.Address) restAddress {
	return restAddress{
		ID:        addr.ID,
		CountryID: addr.CountryID,
		RegionID:  addr.RegionID,
		Street:    addr.Street,
		Telephone: addr.Telephone,
		Postcode:  addr.Postcode,
		City:      addr.City,
		Firstname: addr.Firstname,
		Lastname:  addr.Lastname,
		Company:   addr.Company,
		Email:     addr.Email,
	}
}
