package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/experium/bookingapi/internal/domain"
	"github.com/experium/bookingapi/pkg/errors"
)

type accountRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *sql.DB, logger *zap.Logger) *accountRepository {
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

func (r *accountRepository) GetByAPIKey(ctx context.Context, apiKey string) (*domain.Account, error) {
	// bcrypt hashes are salted, so there is no direct hash lookup.
	// Iterate active accounts and verify the key against each hash.
	query := `
		SELECT id, name, email, api_key_hash, is_active, created_at, updated_at
		FROM accounts
		WHERE is_active = true
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query accounts", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var account domain.Account

		err := rows.Scan(
			&account.ID,
			&account.Name,
			&account.Email,
			&account.APIKeyHash,
			&account.IsActive,
			&account.CreatedAt,
			&account.UpdatedAt,
		)
		if err != nil {
			continue
		}

		if err := bcrypt.CompareHashAndPassword([]byte(account.APIKeyHash), []byte(apiKey)); err == nil {
			return &account, nil
		}
	}

	return nil, &errors.ErrUnauthorized{Message: "invalid API key"}
}

func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `
		SELECT id, name, email, api_key_hash, is_active, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`

	var account domain.Account

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.APIKeyHash,
		&account.IsActive,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "account", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get account by ID", zap.Error(err))
		return nil, err
	}

	return &account, nil
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, name, email, api_key_hash, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	now := time.Now()
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	if account.UpdatedAt.IsZero() {
		account.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.Name,
		account.Email,
		account.APIKeyHash,
		account.IsActive,
		account.CreatedAt,
		account.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create account", zap.Error(err))
		return err
	}

	return nil
}

func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $2, email = $3, api_key_hash = $4, is_active = $5, updated_at = $6
		WHERE id = $1
	`

	account.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.Name,
		account.Email,
		account.APIKeyHash,
		account.IsActive,
		account.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to update account", zap.Error(err))
		return err
	}

	return nil
}
