package magento

import (
	"context"
	"net/http"
	"strconv"

	"github.com/storefront/bridge/internal/domain/storefront"
)

// Countries lists shippable countries with their regions.
func (c *Client) Countries(ctx context.Context) ([]storefront.Country, error) {
	var rest []restCountry
	if err := c.doGuest(ctx, http.MethodGet, "/directory/countries", nil, &rest); err != nil {
		return nil, err
	}
	countries := make([]storefront.Country, 0, len(rest))
	for _, rc := range rest {
		country := storefront.Country{
			ID:              rc.ID,
			TwoLetterCode:   rc.TwoLetterAbbreviation,
			ThreeLetterCode: rc.ThreeLetterAbbreviation,
			Name:            rc.FullNameLocale,
		}
		if country.Name == "" {
			country.Name = rc.FullNameEnglish
		}
		for _, rr := range rc.AvailableRegions {
			id, _ := strconv.Atoi(rr.ID)
			country.Regions = append(country.Regions, storefront.Region{
				ID:   id,
				Code: rr.Code,
				Name: rr.Name,
			})
		}
		countries = append(countries, country)
	}
	return countries, nil
}

// StoreConfig returns the configuration of the store view this client is
// bound to.
func (c *Client) StoreConfig(ctx context.Context) (*storefront.StoreConfig, error) {
	var rest []restStoreConfig
	if err := c.doAdmin(ctx, http.MethodGet, "/store/storeConfigs", nil, &rest); err != nil {
		return nil, err
	}

	var match *restStoreConfig
	for i := range rest {
		if rest[i].Code == c.cfg.StoreCode {
			match = &rest[i]
			break
		}
	}
	if match == nil {
		if len(rest) == 0 {
			return nil, storefront.ErrBackendInvalidResponse
		}
		match = &rest[0]
	}

	cfg := &storefront.StoreConfig{
		StoreCode:              match.Code,
		Locale:                 match.Locale,
		BaseCurrency:           match.BaseCurrencyCode,
		DefaultDisplayCurrency: match.DefaultDisplayCurrencyCode,
		Timezone:               match.Timezone,
		WeightUnit:             match.WeightUnit,
		BaseMediaURL:           match.BaseMediaURL,
		SecureBaseURL:          match.SecureBaseURL,
	}

	c.mu.Lock()
	c.displayCurrencyCache = cfg.DefaultDisplayCurrency
	c.mu.Unlock()
	return cfg, nil
}

// displayCurrency returns the store's display currency, fetching the store
// config on first use. Catalog prices are reported by Magento without a
// currency, so the store default is attached here.
func (c *Client) displayCurrency(ctx context.Context) string {
	c.mu.Lock()
	cached := c.displayCurrencyCache
	c.mu.Unlock()
	if cached != "" {
		return cached
	}
	cfg, err := c.StoreConfig(ctx)
	if err != nil {
		return ""
	}
	return cfg.DefaultDisplayCurrency
}
