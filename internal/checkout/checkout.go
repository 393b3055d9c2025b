package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/experium/bookingapi/internal/domain"
	"github.com/experium/bookingapi/pkg/errors"
)

// VoucherRequest is one voucher-creation call, covering exactly one
// purchased unit of an experience
type VoucherRequest struct {
	ExperienceID   int
	PurchasePrice  float64
	Notes          *string
	ValidityMonths *int
}

// VoucherBackend creates and persists a single voucher per call
type VoucherBackend interface {
	CreateVoucher(ctx context.Context, accountID uuid.UUID, req VoucherRequest) (*domain.Voucher, error)
}

// Request is the checkout input assembled from the cart session
type Request struct {
	Items        []domain.CartItem
	DeliveryType domain.DeliveryType
	Details      domain.PersonalDetails
	Address      domain.DeliveryAddress
}

// Result aggregates the vouchers created by a successful checkout
type Result struct {
	Vouchers []*domain.Voucher
	Total    float64
}

type checkoutService struct {
	backend VoucherBackend
	logger  *zap.Logger
}

// NewService creates a new checkout service
func NewService(backend VoucherBackend, logger *zap.Logger) *checkoutService {
	return &checkoutService{
		backend: backend,
		logger:  logger,
	}
}

// Checkout creates one voucher per unit of every cart item, strictly
// in cart order, one call at a time. The first failure aborts before
// any later unit is attempted; vouchers already created are kept, not
// rolled back. Returns either the full voucher list or a single error.
func (s *checkoutService) Checkout(ctx context.Context, accountID uuid.UUID, req Request) (*Result, error) {
	if len(req.Items) == 0 {
		return nil, &errors.ErrValidation{Message: "cart is empty"}
	}
	if !req.DeliveryType.IsValid() {
		return nil, &errors.ErrValidation{Message: "delivery type must be physical or digital"}
	}
	if req.Details.Email == "" || req.Details.FullName == "" {
		return nil, &errors.ErrValidation{Message: "full name and email are required"}
	}
	if req.DeliveryType == domain.DeliveryTypePhysical && req.Address.Address == "" {
		return nil, &errors.ErrValidation{Message: "delivery address is required for physical delivery"}
	}

	totalUnits := 0
	for _, item := range req.Items {
		totalUnits += item.Quantity
	}

	result := &Result{Vouchers: make([]*domain.Voucher, 0, totalUnits)}
	unit := 0

	for _, item := range req.Items {
		var notes *string
		if item.IsGift {
			note := fmt.Sprintf("Cadou: %s", item.Title)
			notes = &note
		}

		for i := 0; i < item.Quantity; i++ {
			unit++
			voucher, err := s.backend.CreateVoucher(ctx, accountID, VoucherRequest{
				ExperienceID:  item.ExperienceID,
				PurchasePrice: item.Price,
				Notes:         notes,
			})
			if err != nil {
				// Vouchers from earlier units stay created; the caller
				// only sees a single checkout-level error.
				s.logger.Error("Checkout aborted on voucher creation failure",
					zap.Int("failed_unit", unit),
					zap.Int("total_units", totalUnits),
					zap.Int("created", len(result.Vouchers)),
					zap.Error(err),
				)
				return nil, fmt.Errorf("voucher creation failed on unit %d of %d: %w", unit, totalUnits, err)
			}
			result.Vouchers = append(result.Vouchers, voucher)
			result.Total += voucher.PurchasePrice
		}
	}

	s.logger.Info("Checkout completed",
		zap.Int("vouchers", len(result.Vouchers)),
		zap.Float64("total", result.Total),
	)
	return result, nil
}
