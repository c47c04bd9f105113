package magento

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/storefront/bridge/internal/domain/storefront"
)

// ---------------------------------------------------------------------------
// Accounts
// ---------------------------------------------------------------------------

// CreateCustomer registers a new account through the anonymous registration
// endpoint.
func (c *Client) CreateCustomer(ctx context.Context, input storefront.NewCustomer) (*storefront.Customer, error) {
	body := restCustomerEnvelope{
		Customer: restCustomer{
			Email:     input.Email,
			Firstname: input.Firstname,
			Lastname:  input.Lastname,
		},
		Password: input.Password,
	}
	var rest restCustomer
	if err := c.doGuest(ctx, http.MethodPost, "/customers", body, &rest); err != nil {
		return nil, err
	}
	return convertCustomer(rest), nil
}

// CustomerToken exchanges credentials for a customer token. The backend
// answers 401 for bad credentials, which is presented as a sign-in failure
// rather than a session problem.
func (c *Client) CustomerToken(ctx context.Context, email, password string) (string, error) {
	var token string
	err := c.doGuest(ctx, http.MethodPost, "/integration/customer/token", map[string]string{
		"username": email,
		"password": password,
	}, &token)
	if errors.Is(err, storefront.ErrUnauthorized) {
		return "", storefront.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// Customer returns the account owning the token.
func (c *Client) Customer(ctx context.Context, token string) (*storefront.Customer, error) {
	var rest restCustomer
	if err := c.doCustomer(ctx, token, http.MethodGet, "/customers/me", nil, &rest); err != nil {
		return nil, err
	}
	return convertCustomer(rest), nil
}

// UpdateCustomer updates profile fields of the token's account. Magento's
// PUT /customers/me replaces the entity, so the current state is read first
// and the changed fields applied on top.
func (c *Client) UpdateCustomer(ctx context.Context, token string, update storefront.CustomerUpdate) (*storefront.Customer, error) {
	current, err := c.fetchRestCustomer(ctx, token)
	if err != nil {
		return nil, err
	}

	if update.Email != nil {
		current.Email = *update.Email
	}
	if update.Firstname != nil {
		current.Firstname = *update.Firstname
	}
	if update.Lastname != nil {
		current.Lastname = *update.Lastname
	}
	return c.putCustomer(ctx, token, current)
}

// ChangePassword changes the account password.
func (c *Client) ChangePassword(ctx context.Context, token, current, next string) error {
	return c.doCustomer(ctx, token, http.MethodPut, "/customers/me/password", map[string]string{
		"currentPassword": current,
		"newPassword":     next,
	}, nil)
}

// RequestPasswordReset triggers the backend's reset email flow. Whether the
// email exists is deliberately not revealed to the caller: Magento answers
// 404 for unknown accounts, which is swallowed here.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	err := c.doGuest(ctx, http.MethodPut, "/customers/password", map[string]any{
		"email":    email,
		"template": "email_reset",
	}, nil)
	if errors.Is(err, storefront.ErrNotFound) {
		return nil
	}
	return err
}

// ---------------------------------------------------------------------------
// Address book
// ---------------------------------------------------------------------------

// CreateAddress adds an address to the token's address book. Magento has no
// per-address customer endpoint; the address book travels inside the
// customer entity.
func (c *Client) CreateAddress(ctx context.Context, token string, addr storefront.Address) (*storefront.Customer, error) {
	current, err := c.fetchRestCustomer(ctx, token)
	if err != nil {
		return nil, err
	}
	current.Addresses = append(current.Addresses, customerAddressToRest(addr))
	return c.putCustomer(ctx, token, current)
}

// UpdateAddress replaces an address in the token's address book.
func (c *Client) UpdateAddress(ctx context.Context, token string, addr storefront.Address) (*storefront.Customer, error) {
	current, err := c.fetchRestCustomer(ctx, token)
	if err != nil {
		return nil, err
	}
	replaced := false
	for i := range current.Addresses {
		if current.Addresses[i].ID == addr.ID {
			current.Addresses[i] = customerAddressToRest(addr)
			replaced = true
			break
		}
	}
	if !replaced {
		return nil, fmt.Errorf("%w: address %d", storefront.ErrNotFound, addr.ID)
	}
	return c.putCustomer(ctx, token, current)
}

// DeleteAddress removes an address from the token's address book.
func (c *Client) DeleteAddress(ctx context.Context, token string, addressID int) (*storefront.Customer, error) {
	current, err := c.fetchRestCustomer(ctx, token)
	if err != nil {
		return nil, err
	}
	kept := current.Addresses[:0]
	found := false
	for _, a := range current.Addresses {
		if a.ID == addressID {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return nil, fmt.Errorf("%w: address %d", storefront.ErrNotFound, addressID)
	}
	current.Addresses = kept
	return c.putCustomer(ctx, token, current)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (c *Client) fetchRestCustomer(ctx context.Context, token string) (restCustomer, error) {
	var rest restCustomer
	err := c.doCustomer(ctx, token, http.MethodGet, "/customers/me", nil, &rest)
	return rest, err
}

func (c *Client) putCustomer(ctx context.Context, token string, customer restCustomer) (*storefront.Customer, error) {
	body := restCustomerEnvelope{Customer: customer}
	var updated restCustomer
	if err := c.doCustomer(ctx, token, http.MethodPut, "/customers/me", body, &updated); err != nil {
		return nil, err
	}
	return convertCustomer(updated), nil
}

// convertCustomer maps the REST customer onto the domain shape. Magento
// reports the default address ids as strings on the customer entity and as
// booleans on the addresses; both are normalized here.
func convertCustomer(rest restCustomer) *storefront.Customer {
	defaultBilling, _ := strconv.Atoi(rest.DefaultBilling)
	defaultShipping, _ := strconv.Atoi(rest.DefaultShipping)

	customer := &storefront.Customer{
		ID:                rest.ID,
		Email:             rest.Email,
		Firstname:         rest.Firstname,
		Lastname:          rest.Lastname,
		GroupID:           rest.GroupID,
		StoreID:           rest.StoreID,
		DefaultBillingID:  defaultBilling,
		DefaultShippingID: defaultShipping,
		CreatedAt:         parseBackendTime(rest.CreatedAt),
		Addresses:         make([]storefront.Address, 0, len(rest.Addresses)),
	}
	for _, ra := range rest.Addresses {
		addr := convertRestAddress(ra)
		addr.DefaultBilling = addr.DefaultBilling || ra.ID == defaultBilling
		addr.DefaultShipping = addr.DefaultShipping || ra.ID == defaultShipping
		customer.Addresses = append(customer.Addresses, addr)
	}
	return customer
}

// convertRestAddress maps a REST address. The region field is an object on
// customer addresses but a bare string on some order payloads.
func convertRestAddress(ra restAddress) storefront.Address {
	addr := storefront.Address{
		ID:              ra.ID,
		Firstname:       ra.Firstname,
		Lastname:        ra.Lastname,
		Company:         ra.Company,
		Street:          ra.Street,
		City:            ra.City,
		RegionID:        ra.RegionID,
		Postcode:        ra.Postcode,
		CountryID:       ra.CountryID,
		Telephone:       ra.Telephone,
		Email:           ra.Email,
		DefaultBilling:  ra.DefaultBilling,
		DefaultShipping: ra.DefaultShipping,
	}
	if len(ra.Region) > 0 {
		var region restRegion
		if err := json.Unmarshal(ra.Region, &region); err == nil {
			addr.Region = region.Region
			addr.RegionCode = region.RegionCode
			if region.RegionID != 0 {
				addr.RegionID = region.RegionID
			}
		} else {
			var name string
			if err := json.Unmarshal(ra.Region, &name); err == nil {
				addr.Region = name
			}
		}
	}
	return addr
}

// customerAddressToRest maps a domain address to the customer address book
// shape, with the region as an object.
func customerAddressToRest(addr storefront.Address) restAddress {
	rest := restAddress{
		ID:              addr.ID,
		CountryID:       addr.CountryID,
		RegionID:        addr.RegionID,
		Street:          addr.Street,
		Telephone:       addr.Telephone,
		Postcode:        addr.Postcode,
		City:            addr.City,
		Firstname:       addr.Firstname,
		Lastname:        addr.Lastname,
		Company:         addr.Company,
		DefaultBilling:  addr.DefaultBilling,
		DefaultShipping: addr.DefaultShipping,
	}
	if addr.Region != "" || addr.RegionID != 0 {
		if raw, err := json.Marshal(restRegion{
			Region:     addr.Region,
			RegionCode: addr.RegionCode,
			RegionID:   addr.RegionID,
		}); err == nil {
			rest.Region = raw
		}
	}
	return rest
}
