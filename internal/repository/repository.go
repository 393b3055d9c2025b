package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/experium/bookingapi/internal/domain"
)

// VoucherRepository defines voucher persistence operations
type VoucherRepository interface {
	Create(ctx context.Context, voucher *domain.Voucher) error
	GetByCode(ctx context.Context, code string) (*domain.Voucher, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.VoucherStatus) error
	MarkRedeemed(ctx context.Context, id uuid.UUID, redeemedAt time.Time) error
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domain.Voucher, error)
}

// AccountRepository defines account persistence and lookup operations
type AccountRepository interface {
	GetByAPIKey(ctx context.Context, apiKey string) (*domain.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account) error
}

// Repositories bundles all repository implementations
type Repositories struct {
	Voucher VoucherRepository
	Account AccountRepository
}
