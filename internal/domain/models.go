package domain

import (
	"time"

	"github.com/google/uuid"
)

// Coordinate is a WGS84 latitude/longitude pair
type Coordinate struct {
	Lat float64
	Lng float64
}

// Experience represents a bookable activity in the catalog
type Experience struct {
	ID              int
	Title           string
	Location        string
	Category        string
	Region          string
	County          string
	City            string
	Price           float64 // VAT-inclusive, RON
	Rating          float64 // [0, 5]
	Reviews         int
	DurationMinutes int
	Image           string
}

// ServiceLine is an add-on service attached to a cart item
type ServiceLine struct {
	ServiceID string  `json:"service_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// CartItem is one entry in the cart. Adding the same experience twice
// creates two distinct entries; entries are never quantity-merged.
type CartItem struct {
	ID           string        `json:"id"`
	ExperienceID int           `json:"experience_id"`
	Title        string        `json:"title"`
	Location     string        `json:"location"`
	Image        string        `json:"image"`
	Price        float64       `json:"price"` // per unit, VAT-inclusive
	Quantity     int           `json:"quantity"`
	IsGift       bool          `json:"is_gift"`
	Services     []ServiceLine `json:"services,omitempty"`
}

// PersonalDetails holds the buyer's contact information
type PersonalDetails struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// DeliveryAddress is the shipping address for physical voucher delivery
type DeliveryAddress struct {
	Country  string `json:"country"`
	County   string `json:"county"`
	City     string `json:"city"`
	Address  string `json:"address"`
	Postcode string `json:"postcode"`
}

// DefaultDeliveryAddress returns the initial address state
func DefaultDeliveryAddress() DeliveryAddress {
	return DeliveryAddress{Country: "România"}
}

// CartSession is the full in-progress purchase state. Only Items is
// persisted across restarts; everything else is session-transient.
type CartSession struct {
	Items           []CartItem
	DeliveryType    DeliveryType
	PersonalDetails PersonalDetails
	DeliveryAddress DeliveryAddress
	CheckoutStep    int
}

// NewCartSession returns a session with every field at its default
func NewCartSession() CartSession {
	return CartSession{
		Items:           []CartItem{},
		DeliveryType:    DeliveryTypeUnset,
		DeliveryAddress: DefaultDeliveryAddress(),
	}
}

// Voucher is a redeemable code for one purchased unit of an experience
type Voucher struct {
	ID            uuid.UUID
	Code          string
	AccountID     uuid.UUID
	ExperienceID  int
	PurchasePrice float64
	Notes         *string
	Status        VoucherStatus
	ValidUntil    time.Time
	RedeemedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Account represents an API consumer (storefront integration)
type Account struct {
	ID         uuid.UUID
	Name       string
	Email      string
	APIKeyHash string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
