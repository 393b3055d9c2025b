package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/experium/bookingapi/internal/api/middleware"
	"github.com/experium/bookingapi/internal/cart"
	"github.com/experium/bookingapi/internal/checkout"
	"github.com/experium/bookingapi/internal/domain"
	"github.com/experium/bookingapi/internal/repository"
	"github.com/experium/bookingapi/internal/voucher"
	"github.com/experium/bookingapi/pkg/errors"
)

// VoucherResponse represents one created or looked-up voucher
type VoucherResponse struct {
	ID            string  `json:"id"`
	Code          string  `json:"code"`
	ExperienceID  int     `json:"experience_id"`
	PurchasePrice float64 `json:"purchase_price"`
	Notes         *string `json:"notes,omitempty"`
	Status        string  `json:"status"`
	ValidUntil    string  `json:"valid_until"`
	RedeemedAt    *string `json:"redeemed_at,omitempty"`
}

// CheckoutResponse is the aggregated checkout result
type CheckoutResponse struct {
	Vouchers []VoucherResponse `json:"vouchers"`
	Total    float64           `json:"total"`
}

// HandleCheckout handles POST /v1/checkout. Requires authentication;
// creates one voucher per unit of every cart item and clears the cart
// on success.
func HandleCheckout(store *cart.Store, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := middleware.GetAccountFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		session := store.Session()

		backend := voucher.NewService(repos, logger)
		checkoutService := checkout.NewService(backend, logger)
		result, err := checkoutService.Checkout(c.Request.Context(), account.ID, checkout.Request{
			Items:        session.Items,
			DeliveryType: session.DeliveryType,
			Details:      session.PersonalDetails,
			Address:      session.DeliveryAddress,
		})
		if err != nil {
			if verr, ok := err.(*errors.ErrValidation); ok {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Message})
				return
			}
			logger.Error("Checkout failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout failed"})
			return
		}

		store.Clear(c.Request.Context())

		responses := make([]VoucherResponse, len(result.Vouchers))
		for i, v := range result.Vouchers {
			responses[i] = toVoucherResponse(v)
		}
		c.JSON(http.StatusOK, CheckoutResponse{Vouchers: responses, Total: result.Total})
	}
}

// HandleListVouchers handles GET /v1/vouchers, returning the
// authenticated account's vouchers
func HandleListVouchers(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := middleware.GetAccountFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		voucherService := voucher.NewService(repos, logger)
		vouchers, err := voucherService.ListForAccount(c.Request.Context(), account.ID)
		if err != nil {
			logger.Error("Failed to list vouchers", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		responses := make([]VoucherResponse, len(vouchers))
		for i, v := range vouchers {
			responses[i] = toVoucherResponse(v)
		}
		c.JSON(http.StatusOK, gin.H{"vouchers": responses, "total": len(responses)})
	}
}

// HandleGetVoucher handles GET /v1/vouchers/:code
func HandleGetVoucher(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		voucherService := voucher.NewService(repos, logger)
		v, err := voucherService.Get(c.Request.Context(), c.Param("code"))
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "voucher not found"})
				return
			}
			logger.Error("Failed to get voucher", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, toVoucherResponse(v))
	}
}

// HandleRedeemVoucher handles POST /v1/vouchers/:code/redeem
func HandleRedeemVoucher(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		voucherService := voucher.NewService(repos, logger)
		v, err := voucherService.Redeem(c.Request.Context(), c.Param("code"))
		if err != nil {
			switch err.(type) {
			case *errors.ErrNotFound:
				c.JSON(http.StatusNotFound, gin.H{"error": "voucher not found"})
			case *errors.ErrInvalidStateTransition:
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			default:
				logger.Error("Failed to redeem voucher", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		c.JSON(http.StatusOK, toVoucherResponse(v))
	}
}

func toVoucherResponse(v *domain.Voucher) VoucherResponse {
	resp := VoucherResponse{
		ID:            v.ID.String(),
		Code:          v.Code,
		ExperienceID:  v.ExperienceID,
		PurchasePrice: v.PurchasePrice,
		Notes:         v.Notes,
		Status:        string(v.Status),
		ValidUntil:    v.ValidUntil.Format(time.RFC3339),
	}
	if v.RedeemedAt != nil {
		redeemed := v.RedeemedAt.Format(time.RFC3339)
		resp.RedeemedAt = &redeemed
	}
	return resp
}
