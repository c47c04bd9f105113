package storefront

import "time"

// Address is a customer or checkout address.
type Address struct {
	ID              int      `json:"id,omitempty"`
	Firstname       string   `json:"firstname" validate:"required"`
	Lastname        string   `json:"lastname" validate:"required"`
	Company         string   `json:"company,omitempty"`
	Street          []string `json:"street" validate:"required,min=1,dive,required"`
	City            string   `json:"city" validate:"required"`
	Region          string   `json:"region,omitempty"`
	RegionID        int      `json:"regionId,omitempty"`
	RegionCode      string   `json:"regionCode,omitempty"`
	Postcode        string   `json:"postcode" validate:"required"`
	CountryID       string   `json:"countryId" validate:"required,len=2"`
	Telephone       string   `json:"telephone" validate:"required"`
	Email           string   `json:"email,omitempty" validate:"omitempty,email"`
	DefaultBilling  bool     `json:"defaultBilling"`
	DefaultShipping bool     `json:"defaultShipping"`
}

// Customer is a registered shopper account.
type Customer struct {
	ID                int       `json:"id"`
	Email             string    `json:"email"`
	Firstname         string    `json:"firstname"`
	Lastname          string    `json:"lastname"`
	GroupID           int       `json:"groupId"`
	StoreID           int       `json:"storeId"`
	Addresses         []Address `json:"addresses"`
	DefaultBillingID  int       `json:"defaultBillingId,omitempty"`
	DefaultShippingID int       `json:"defaultShippingId,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// NewCustomer is a registration request.
type NewCustomer struct {
	Email     string `validate:"required,email"`
	Firstname string `validate:"required"`
	Lastname  string `validate:"required"`
	Password  string `validate:"required,min=8"`
}

// CustomerUpdate changes profile fields of the signed-in customer. Nil fields
// are left untouched.
type CustomerUpdate struct {
	Email     *string `validate:"omitempty,email"`
	Firstname *string
	Lastname  *string
}
