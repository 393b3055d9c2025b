package checkout

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/experium/bookingapi/internal/domain"
	"github.com/experium/bookingapi/pkg/errors"
)

type mockBackend struct {
	calls   int
	failAt  int // fail on the n-th call, 0 = never
	created []VoucherRequest
}

func (m *mockBackend) CreateVoucher(_ context.Context, accountID uuid.UUID, req VoucherRequest) (*domain.Voucher, error) {
	m.calls++
	if m.failAt > 0 && m.calls == m.failAt {
		return nil, fmt.Errorf("backend unavailable")
	}
	m.created = append(m.created, req)
	return &domain.Voucher{
		ID:            uuid.New(),
		Code:          fmt.Sprintf("EXP-%08d", m.calls),
		AccountID:     accountID,
		ExperienceID:  req.ExperienceID,
		PurchasePrice: req.PurchasePrice,
		Notes:         req.Notes,
		Status:        domain.VoucherStatusActive,
	}, nil
}

func validRequest(items []domain.CartItem) Request {
	return Request{
		Items:        items,
		DeliveryType: domain.DeliveryTypeDigital,
		Details:      domain.PersonalDetails{FullName: "Ana Pop", Email: "ana@example.ro", Phone: "0722000000"},
		Address:      domain.DefaultDeliveryAddress(),
	}
}

func TestCheckoutCreatesOneVoucherPerUnit(t *testing.T) {
	backend := &mockBackend{}
	svc := NewService(backend, zap.NewNop())

	items := []domain.CartItem{
		{ID: "a", ExperienceID: 1, Title: "Balloon flight", Price: 850, Quantity: 2},
		{ID: "b", ExperienceID: 3, Title: "Via ferrata", Price: 190, Quantity: 1},
	}

	result, err := svc.Checkout(context.Background(), uuid.New(), validRequest(items))
	require.NoError(t, err)
	require.Len(t, result.Vouchers, 3)
	assert.Equal(t, 3, backend.calls)
	assert.Equal(t, 850.0+850.0+190.0, result.Total)

	// Units are created strictly in cart order
	assert.Equal(t, 1, backend.created[0].ExperienceID)
	assert.Equal(t, 1, backend.created[1].ExperienceID)
	assert.Equal(t, 3, backend.created[2].ExperienceID)
}

func TestCheckoutAbortsOnFirstFailure(t *testing.T) {
	backend := &mockBackend{failAt: 3}
	svc := NewService(backend, zap.NewNop())

	items := []domain.CartItem{
		{ID: "a", ExperienceID: 1, Price: 100, Quantity: 2},
		{ID: "b", ExperienceID: 2, Price: 200, Quantity: 3},
	}

	result, err := svc.Checkout(context.Background(), uuid.New(), validRequest(items))
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorContains(t, err, "unit 3 of 5")

	// Units after the failed one are never attempted; earlier vouchers
	// stay created and are not rolled back
	assert.Equal(t, 3, backend.calls)
	assert.Len(t, backend.created, 2)
}

func TestCheckoutEmptyCart(t *testing.T) {
	backend := &mockBackend{}
	svc := NewService(backend, zap.NewNop())

	_, err := svc.Checkout(context.Background(), uuid.New(), validRequest(nil))
	var verr *errors.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, backend.calls)
}

func TestCheckoutRequiresDeliveryType(t *testing.T) {
	backend := &mockBackend{}
	svc := NewService(backend, zap.NewNop())

	req := validRequest([]domain.CartItem{{ID: "a", ExperienceID: 1, Price: 100, Quantity: 1}})
	req.DeliveryType = domain.DeliveryTypeUnset

	_, err := svc.Checkout(context.Background(), uuid.New(), req)
	var verr *errors.ErrValidation
	require.ErrorAs(t, err, &verr)
}

func TestCheckoutRequiresContactDetails(t *testing.T) {
	backend := &mockBackend{}
	svc := NewService(backend, zap.NewNop())

	req := validRequest([]domain.CartItem{{ID: "a", ExperienceID: 1, Price: 100, Quantity: 1}})
	req.Details.Email = ""

	_, err := svc.Checkout(context.Background(), uuid.New(), req)
	var verr *errors.ErrValidation
	require.ErrorAs(t, err, &verr)
}

func TestCheckoutPhysicalDeliveryRequiresAddress(t *testing.T) {
	backend := &mockBackend{}
	svc := NewService(backend, zap.NewNop())

	req := validRequest([]domain.CartItem{{ID: "a", ExperienceID: 1, Price: 100, Quantity: 1}})
	req.DeliveryType = domain.DeliveryTypePhysical

	_, err := svc.Checkout(context.Background(), uuid.New(), req)
	var verr *errors.ErrValidation
	require.ErrorAs(t, err, &verr)

	req.Address.Address = "Str. Republicii 10"
	_, err = svc.Checkout(context.Background(), uuid.New(), req)
	require.NoError(t, err)
}

func TestCheckoutGiftItemsCarryNotes(t *testing.T) {
	backend := &mockBackend{}
	svc := NewService(backend, zap.NewNop())

	items := []domain.CartItem{
		{ID: "a", ExperienceID: 1, Title: "Spa day", Price: 450, Quantity: 1, IsGift: true},
		{ID: "b", ExperienceID: 2, Title: "Track day", Price: 990, Quantity: 1},
	}

	result, err := svc.Checkout(context.Background(), uuid.New(), validRequest(items))
	require.NoError(t, err)
	require.Len(t, result.Vouchers, 2)

	require.NotNil(t, backend.created[0].Notes)
	assert.Contains(t, *backend.created[0].Notes, "Spa day")
	assert.Nil(t, backend.created[1].Notes)
}
