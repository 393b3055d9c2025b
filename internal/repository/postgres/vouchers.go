package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/experium/bookingapi/internal/domain"
	"github.com/experium/bookingapi/pkg/errors"
)

type voucherRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewVoucherRepository creates a new voucher repository
func NewVoucherRepository(db *sql.DB, logger *zap.Logger) *voucherRepository {
	return &voucherRepository{
		db:     db,
		logger: logger,
	}
}

func (r *voucherRepository) Create(ctx context.Context, voucher *domain.Voucher) error {
	query := `
		INSERT INTO vouchers (id, code, account_id, experience_id, purchase_price, notes, status, valid_until, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	now := time.Now()
	if voucher.ID == uuid.Nil {
		voucher.ID = uuid.New()
	}
	if voucher.CreatedAt.IsZero() {
		voucher.CreatedAt = now
	}
	if voucher.UpdatedAt.IsZero() {
		voucher.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		voucher.ID,
		voucher.Code,
		voucher.AccountID,
		voucher.ExperienceID,
		voucher.PurchasePrice,
		voucher.Notes,
		voucher.Status,
		voucher.ValidUntil,
		voucher.CreatedAt,
		voucher.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create voucher", zap.Error(err))
		return err
	}

	return nil
}

func (r *voucherRepository) GetByCode(ctx context.Context, code string) (*domain.Voucher, error) {
	query := `
		SELECT id, code, account_id, experience_id, purchase_price, notes, status, valid_until, redeemed_at, created_at, updated_at
		FROM vouchers
		WHERE code = $1
	`

	var voucher domain.Voucher
	var notes sql.NullString
	var redeemedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, code).Scan(
		&voucher.ID,
		&voucher.Code,
		&voucher.AccountID,
		&voucher.ExperienceID,
		&voucher.PurchasePrice,
		&notes,
		&voucher.Status,
		&voucher.ValidUntil,
		&redeemedAt,
		&voucher.CreatedAt,
		&voucher.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "voucher", ID: code}
	}
	if err != nil {
		r.logger.Error("Failed to get voucher by code", zap.Error(err))
		return nil, err
	}

	if notes.Valid {
		voucher.Notes = &notes.String
	}
	if redeemedAt.Valid {
		voucher.RedeemedAt = &redeemedAt.Time
	}

	return &voucher, nil
}

func (r *voucherRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.VoucherStatus) error {
	query := `
		UPDATE vouchers
		SET status = $2, updated_at = $3
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, status, time.Now())
	if err != nil {
		r.logger.Error("Failed to update voucher status", zap.Error(err))
		return err
	}

	return nil
}

func (r *voucherRepository) MarkRedeemed(ctx context.Context, id uuid.UUID, redeemedAt time.Time) error {
	query := `
		UPDATE vouchers
		SET status = $2, redeemed_at = $3, updated_at = $4
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, domain.VoucherStatusRedeemed, redeemedAt, time.Now())
	if err != nil {
		r.logger.Error("Failed to mark voucher redeemed", zap.Error(err))
		return err
	}

	return nil
}

func (r *voucherRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domain.Voucher, error) {
	query := `
		SELECT id, code, account_id, experience_id, purchase_price, notes, status, valid_until, redeemed_at, created_at, updated_at
		FROM vouchers
		WHERE account_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		r.logger.Error("Failed to list vouchers", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var vouchers []*domain.Voucher
	for rows.Next() {
		var voucher domain.Voucher
		var notes sql.NullString
		var redeemedAt sql.NullTime

		err := rows.Scan(
			&voucher.ID,
			&voucher.Code,
			&voucher.AccountID,
			&voucher.ExperienceID,
			&voucher.PurchasePrice,
			&notes,
			&voucher.Status,
			&voucher.ValidUntil,
			&redeemedAt,
			&voucher.CreatedAt,
			&voucher.UpdatedAt,
		)
		if err != nil {
			continue
		}

		if notes.Valid {
			voucher.Notes = &notes.String
		}
		if redeemedAt.Valid {
			voucher.RedeemedAt = &redeemedAt.Time
		}
		vouchers = append(vouchers, &voucher)
	}

	return vouchers, rows.Err()
}
