package domain

// DeliveryType is how purchased vouchers are delivered
type DeliveryType string

const (
	DeliveryTypeUnset    DeliveryType = ""
	DeliveryTypePhysical DeliveryType = "physical"
	DeliveryTypeDigital  DeliveryType = "digital"
)

// IsValid checks if the delivery type is a selectable value
func (d DeliveryType) IsValid() bool {
	return d == DeliveryTypePhysical || d == DeliveryTypeDigital
}

// VoucherStatus represents the lifecycle state of a voucher
type VoucherStatus string

const (
	VoucherStatusActive    VoucherStatus = "ACTIVE"
	VoucherStatusRedeemed  VoucherStatus = "REDEEMED"
	VoucherStatusExpired   VoucherStatus = "EXPIRED"
	VoucherStatusCancelled VoucherStatus = "CANCELLED"
)

// IsValid checks if the voucher status is valid
func (s VoucherStatus) IsValid() bool {
	switch s {
	case VoucherStatusActive,
		VoucherStatusRedeemed,
		VoucherStatusExpired,
		VoucherStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a status transition is valid
func (s VoucherStatus) CanTransitionTo(newStatus VoucherStatus) bool {
	switch s {
	case VoucherStatusActive:
		return newStatus == VoucherStatusRedeemed ||
			newStatus == VoucherStatusExpired ||
			newStatus == VoucherStatusCancelled
	case VoucherStatusRedeemed, VoucherStatusExpired, VoucherStatusCancelled:
		return false // Terminal states
	default:
		return false
	}
}
