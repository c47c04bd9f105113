package magento

import (
	"encoding/json"
	"net/url"
	"strconv"
)

// ---------------------------------------------------------------------------
// Catalog payloads
// ---------------------------------------------------------------------------

// restAttribute is one entry of Magento's custom_attributes bag. Value can be
// a string, number, bool or array depending on the attribute type.
type restAttribute struct {
	AttributeCode string          `json:"attribute_code"`
	Value         json.RawMessage `json:"value"`
}

type restCategory struct {
	ID               int             `json:"id"`
	ParentID         int             `json:"parent_id"`
	Name             string          `json:"name"`
	IsActive         bool            `json:"is_active"`
	Position         int             `json:"position"`
	Level            int             `json:"level"`
	ProductCount     int             `json:"product_count"`
	ChildrenData     []restCategory  `json:"children_data"`
	CustomAttributes []restAttribute `json:"custom_attributes"`
}

type restStockItem struct {
	Qty        float64 `json:"qty"`
	IsInStock  bool    `json:"is_in_stock"`
	MinSaleQty float64 `json:"min_sale_qty"`
	MaxSaleQty float64 `json:"max_sale_qty"`
}

type restCategoryLink struct {
	Position   int    `json:"position"`
	CategoryID string `json:"category_id"`
}

type restProductExtension struct {
	StockItem     *restStockItem     `json:"stock_item"`
	CategoryLinks []restCategoryLink `json:"category_links"`
}

type restProduct struct {
	ID                  int                   `json:"id"`
	SKU                 string                `json:"sku"`
	Name                string                `json:"name"`
	Price               float64               `json:"price"`
	Status              int                   `json:"status"`
	Visibility          int                   `json:"visibility"`
	TypeID              string                `json:"type_id"`
	CreatedAt           string                `json:"created_at"`
	UpdatedAt           string                `json:"updated_at"`
	ExtensionAttributes *restProductExtension `json:"extension_attributes"`
	CustomAttributes    []restAttribute       `json:"custom_attributes"`
}

type restProductSearchResult struct {
	Items      []restProduct `json:"items"`
	TotalCount int           `json:"total_count"`
}

// ---------------------------------------------------------------------------
// Cart payloads
// ---------------------------------------------------------------------------

type restCartCurrency struct {
	QuoteCurrencyCode string `json:"quote_currency_code"`
}

type restCartCustomer struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

type restCart struct {
	ID         int               `json:"id"`
	IsActive   bool              `json:"is_active"`
	IsVirtual  bool              `json:"is_virtual"`
	ItemsCount int               `json:"items_count"`
	ItemsQty   float64           `json:"items_qty"`
	Items      []restCartItem    `json:"items"`
	Currency   *restCartCurrency `json:"currency"`
	Customer   *restCartCustomer `json:"customer"`
}

type restCartItem struct {
	ItemID      int     `json:"item_id"`
	SKU         string  `json:"sku"`
	Qty         float64 `json:"qty"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	ProductType string  `json:"product_type"`
	QuoteID     string  `json:"quote_id"`
}

// restCartItemEnvelope wraps cart item writes ({"cartItem": {...}}).
type restCartItemEnvelope struct {
	CartItem restCartItemInput `json:"cartItem"`
}

type restCartItemInput struct {
	ItemID  int     `json:"item_id,omitempty"`
	SKU     string  `json:"sku,omitempty"`
	Qty     float64 `json:"qty"`
	QuoteID string  `json:"quote_id"`
}

// restTotalSegment is one display row of the totals. Value is a pointer
// because Magento emits null for some segments (e.g. tax before estimation).
type restTotalSegment struct {
	Code  string   `json:"code"`
	Title string   `json:"title"`
	Value *float64 `json:"value"`
}

type restTotals struct {
	GrandTotal        float64            `json:"grand_total"`
	Subtotal          float64            `json:"subtotal"`
	SubtotalInclTax   float64            `json:"subtotal_incl_tax"`
	DiscountAmount    float64            `json:"discount_amount"`
	ShippingAmount    float64            `json:"shipping_amount"`
	ShippingInclTax   float64            `json:"shipping_incl_tax"`
	TaxAmount         float64            `json:"tax_amount"`
	CouponCode        string             `json:"coupon_code"`
	QuoteCurrencyCode string             `json:"quote_currency_code"`
	TotalSegments     []restTotalSegment `json:"total_segments"`
}

// ---------------------------------------------------------------------------
// Checkout payloads
// ---------------------------------------------------------------------------

type restRegion struct {
	RegionCode string `json:"region_code"`
	Region     string `json:"region"`
	RegionID   int    `json:"region_id"`
}

type restAddress struct {
	ID              int             `json:"id,omitempty"`
	CustomerID      int             `json:"customer_id,omitempty"`
	Region          json.RawMessage `json:"region,omitempty"`
	RegionID        int             `json:"region_id,omitempty"`
	CountryID       string          `json:"country_id"`
	Street          []string        `json:"street"`
	Telephone       string          `json:"telephone"`
	Postcode        string          `json:"postcode"`
	City            string          `json:"city"`
	Firstname       string          `json:"firstname"`
	Lastname        string          `json:"lastname"`
	Company         string          `json:"company,omitempty"`
	Email           string          `json:"email,omitempty"`
	DefaultBilling  bool            `json:"default_billing,omitempty"`
	DefaultShipping bool            `json:"default_shipping,omitempty"`
}

type restShippingMethod struct {
	CarrierCode  string  `json:"carrier_code"`
	CarrierTitle string  `json:"carrier_title"`
	MethodCode   string  `json:"method_code"`
	MethodTitle  string  `json:"method_title"`
	Amount       float64 `json:"amount"`
	PriceInclTax float64 `json:"price_incl_tax"`
	Available    bool    `json:"available"`
}

type restPaymentMethod struct {
	Code  string `json:"code"`
	Title string `json:"title"`
}

type restAddressInformation struct {
	ShippingAddress     restAddress `json:"shipping_address"`
	BillingAddress      restAddress `json:"billing_address"`
	ShippingCarrierCode string      `json:"shipping_carrier_code"`
	ShippingMethodCode  string      `json:"shipping_method_code"`
}

type restShippingInformationEnvelope struct {
	AddressInformation restAddressInformation `json:"addressInformation"`
}

type restShippingInformationResult struct {
	PaymentMethods []restPaymentMethod `json:"payment_methods"`
	Totals         restTotals          `json:"totals"`
}

type restPaymentMethodInput struct {
	Method   string `json:"method"`
	PONumber string `json:"po_number,omitempty"`
}

type restPaymentInformationEnvelope struct {
	Email         string                 `json:"email,omitempty"`
	PaymentMethod restPaymentMethodInput `json:"paymentMethod"`
}

// ---------------------------------------------------------------------------
// Customer payloads
// ---------------------------------------------------------------------------

type restCustomer struct {
	ID              int           `json:"id,omitempty"`
	Email           string        `json:"email"`
	Firstname       string        `json:"firstname"`
	Lastname        string        `json:"lastname"`
	GroupID         int           `json:"group_id,omitempty"`
	StoreID         int           `json:"store_id,omitempty"`
	WebsiteID       int           `json:"website_id,omitempty"`
	CreatedAt       string        `json:"created_at,omitempty"`
	Addresses       []restAddress `json:"addresses,omitempty"`
	DefaultBilling  string        `json:"default_billing,omitempty"`
	DefaultShipping string        `json:"default_shipping,omitempty"`
}

type restCustomerEnvelope struct {
	Customer restCustomer `json:"customer"`
	Password string       `json:"password,omitempty"`
}

// ---------------------------------------------------------------------------
// Order payloads
// ---------------------------------------------------------------------------

type restOrderItem struct {
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	QtyOrdered   float64 `json:"qty_ordered"`
	Price        float64 `json:"price"`
	RowTotal     float64 `json:"row_total"`
	ParentItemID *int    `json:"parent_item_id"`
}

type restShippingAssignment struct {
	Shipping struct {
		Address restAddress `json:"address"`
	} `json:"shipping"`
}

type restOrderExtension struct {
	ShippingAssignments []restShippingAssignment `json:"shipping_assignments"`
}

type restOrder struct {
	EntityID            int                 `json:"entity_id"`
	IncrementID         string              `json:"increment_id"`
	Status              string              `json:"status"`
	State               string              `json:"state"`
	CustomerID          int                 `json:"customer_id"`
	CustomerEmail       string              `json:"customer_email"`
	OrderCurrencyCode   string              `json:"order_currency_code"`
	Subtotal            float64             `json:"subtotal"`
	ShippingAmount      float64             `json:"shipping_amount"`
	DiscountAmount      float64             `json:"discount_amount"`
	TaxAmount           float64             `json:"tax_amount"`
	GrandTotal          float64             `json:"grand_total"`
	CreatedAt           string              `json:"created_at"`
	Items               []restOrderItem     `json:"items"`
	BillingAddress      *restAddress        `json:"billing_address"`
	ExtensionAttributes *restOrderExtension `json:"extension_attributes"`
}

type restOrderSearchResult struct {
	Items      []restOrder `json:"items"`
	TotalCount int         `json:"total_count"`
}

// ---------------------------------------------------------------------------
// Directory payloads
// ---------------------------------------------------------------------------

type restAvailableRegion struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type restCountry struct {
	ID                      string                `json:"id"`
	TwoLetterAbbreviation   string                `json:"two_letter_abbreviation"`
	ThreeLetterAbbreviation string                `json:"three_letter_abbreviation"`
	FullNameLocale          string                `json:"full_name_locale"`
	FullNameEnglish         string                `json:"full_name_english"`
	AvailableRegions        []restAvailableRegion `json:"available_regions"`
}

type restStoreConfig struct {
	ID                         int    `json:"id"`
	Code                       string `json:"code"`
	Locale                     string `json:"locale"`
	BaseCurrencyCode           string `json:"base_currency_code"`
	DefaultDisplayCurrencyCode string `json:"default_display_currency_code"`
	Timezone                   string `json:"timezone"`
	WeightUnit                 string `json:"weight_unit"`
	BaseMediaURL               string `json:"base_media_url"`
	SecureBaseURL              string `json:"secure_base_url"`
}

// ---------------------------------------------------------------------------
// Search criteria
// ---------------------------------------------------------------------------

// searchCriteria builds Magento's searchCriteria query grammar: filters in
// the same group are ORed, groups are ANDed.
type searchCriteria struct {
	values url.Values
	group  int
}

func newSearchCriteria() *searchCriteria {
	return &searchCriteria{values: url.Values{}}
}

// Filter adds a single-filter group (ANDed with previous groups).
func (sc *searchCriteria) Filter(field, value, condition string) *searchCriteria {
	prefix := "searchCriteria[filter_groups][" + strconv.Itoa(sc.group) + "][filters][0]"
	sc.values.Set(prefix+"[field]", field)
	sc.values.Set(prefix+"[value]", value)
	if condition != "" {
		sc.values.Set(prefix+"[condition_type]", condition)
	}
	sc.group++
	return sc
}

// Sort appends a sort order.
func (sc *searchCriteria) Sort(index int, field, direction string) *searchCriteria {
	prefix := "searchCriteria[sortOrders][" + strconv.Itoa(index) + "]"
	sc.values.Set(prefix+"[field]", field)
	sc.values.Set(prefix+"[direction]", direction)
	return sc
}

// Page sets pagination.
func (sc *searchCriteria) Page(currentPage, pageSize int) *searchCriteria {
	sc.values.Set("searchCriteria[currentPage]", strconv.Itoa(currentPage))
	sc.values.Set("searchCriteria[pageSize]", strconv.Itoa(pageSize))
	return sc
}

// Encode renders the criteria as a query string.
func (sc *searchCriteria) Encode() string {
	if len(sc.values) == 0 {
		// Magento rejects an entirely absent searchCriteria on search endpoints.
		return "searchCriteria="
	}
	return sc.values.Encode()
}
