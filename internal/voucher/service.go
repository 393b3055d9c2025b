package voucher

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/experium/bookingapi/internal/checkout"
	"github.com/experium/bookingapi/internal/domain"
	"github.com/experium/bookingapi/internal/repository"
	"github.com/experium/bookingapi/pkg/errors"
)

// DefaultValidityMonths is how long a voucher stays redeemable when
// the request does not specify otherwise
const DefaultValidityMonths = 12

type voucherService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewService creates a new voucher service. It satisfies
// checkout.VoucherBackend.
func NewService(repos *repository.Repositories, logger *zap.Logger) *voucherService {
	return &voucherService{
		repos:  repos,
		logger: logger,
	}
}

// CreateVoucher generates a redemption code and persists one voucher
// for one purchased unit
func (s *voucherService) CreateVoucher(ctx context.Context, accountID uuid.UUID, req checkout.VoucherRequest) (*domain.Voucher, error) {
	months := DefaultValidityMonths
	if req.ValidityMonths != nil && *req.ValidityMonths > 0 {
		months = *req.ValidityMonths
	}

	voucher := &domain.Voucher{
		ID:            uuid.New(),
		Code:          generateCode(),
		AccountID:     accountID,
		ExperienceID:  req.ExperienceID,
		PurchasePrice: req.PurchasePrice,
		Notes:         req.Notes,
		Status:        domain.VoucherStatusActive,
		ValidUntil:    time.Now().AddDate(0, months, 0),
	}

	if err := s.repos.Voucher.Create(ctx, voucher); err != nil {
		return nil, err
	}

	s.logger.Info("Voucher created",
		zap.String("code", voucher.Code),
		zap.Int("experience_id", voucher.ExperienceID),
	)
	return voucher, nil
}

// ListForAccount returns the account's vouchers, newest first
func (s *voucherService) ListForAccount(ctx context.Context, accountID uuid.UUID) ([]*domain.Voucher, error) {
	return s.repos.Voucher.ListByAccount(ctx, accountID)
}

// Get returns the voucher with the given redemption code
func (s *voucherService) Get(ctx context.Context, code string) (*domain.Voucher, error) {
	return s.repos.Voucher.GetByCode(ctx, code)
}

// Redeem marks an active voucher as redeemed. Expired and already
// redeemed vouchers are rejected with a state transition error.
func (s *voucherService) Redeem(ctx context.Context, code string) (*domain.Voucher, error) {
	voucher, err := s.repos.Voucher.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if voucher.Status == domain.VoucherStatusActive && time.Now().After(voucher.ValidUntil) {
		// Lazy expiry: flip the status on first touch past the deadline
		if err := s.repos.Voucher.UpdateStatus(ctx, voucher.ID, domain.VoucherStatusExpired); err != nil {
			return nil, err
		}
		voucher.Status = domain.VoucherStatusExpired
	}

	if !voucher.Status.CanTransitionTo(domain.VoucherStatusRedeemed) {
		return nil, &errors.ErrInvalidStateTransition{
			From: string(voucher.Status),
			To:   string(domain.VoucherStatusRedeemed),
		}
	}

	now := time.Now()
	if err := s.repos.Voucher.MarkRedeemed(ctx, voucher.ID, now); err != nil {
		return nil, err
	}
	voucher.Status = domain.VoucherStatusRedeemed
	voucher.RedeemedAt = &now

	s.logger.Info("Voucher redeemed", zap.String("code", voucher.Code))
	return voucher, nil
}

// generateCode derives a short human-readable redemption code
func generateCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "EXP-" + raw[:10]
}
