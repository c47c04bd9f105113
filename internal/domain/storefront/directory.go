package storefront

// Region is an administrative region of a country.
type Region struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Country is a shippable country with its regions.
type Country struct {
	ID              string   `json:"id"`
	TwoLetterCode   string   `json:"twoLetterCode"`
	ThreeLetterCode string   `json:"threeLetterCode"`
	Name            string   `json:"name"`
	Regions         []Region `json:"regions"`
}

// StoreConfig is the subset of the backend store configuration the UI needs.
type StoreConfig struct {
	StoreCode              string `json:"storeCode"`
	Locale                 string `json:"locale"`
	BaseCurrency           string `json:"baseCurrency"`
	DefaultDisplayCurrency string `json:"defaultDisplayCurrency"`
	Timezone               string `json:"timezone"`
	WeightUnit             string `json:"weightUnit"`
	BaseMediaURL           string `json:"baseMediaUrl"`
	SecureBaseURL          string `json:"secureBaseUrl"`
}
