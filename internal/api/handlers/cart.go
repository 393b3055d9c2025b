package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/experium/bookingapi/internal/cart"
	"github.com/experium/bookingapi/internal/catalog"
	"github.com/experium/bookingapi/internal/domain"
)

// AddItemRequest adds one experience to the cart
type AddItemRequest struct {
	ExperienceID int                  `json:"experience_id" binding:"required"`
	Services     []ServiceLineRequest `json:"services,omitempty"`
}

type ServiceLineRequest struct {
	ServiceID string  `json:"service_id" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Price     float64 `json:"price" binding:"min=0"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
}

// UpdateItemRequest patches a single cart entry
type UpdateItemRequest struct {
	Quantity *int  `json:"quantity,omitempty"`
	IsGift   *bool `json:"is_gift,omitempty"`
}

// DeliveryRequest updates the delivery and checkout progress fields
type DeliveryRequest struct {
	DeliveryType    string                  `json:"delivery_type" binding:"required"`
	PersonalDetails *domain.PersonalDetails `json:"personal_details,omitempty"`
	DeliveryAddress *domain.DeliveryAddress `json:"delivery_address,omitempty"`
	CheckoutStep    *int                    `json:"checkout_step,omitempty"`
}

// CartResponse is the full session view with derived totals
type CartResponse struct {
	Items        []domain.CartItem `json:"items"`
	DeliveryType string            `json:"delivery_type,omitempty"`
	CheckoutStep int               `json:"checkout_step"`
	TotalItems   int               `json:"total_items"`
	Subtotal     float64           `json:"subtotal"`
	TotalWithVAT float64           `json:"total_with_vat"`
}

// HandleGetCart handles GET /v1/cart
func HandleGetCart(store *cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, toCartResponse(store))
	}
}

// HandleAddCartItem handles POST /v1/cart/items
func HandleAddCartItem(store *cart.Store, cat *catalog.Catalog, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		experience, ok := cat.Get(req.ExperienceID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "experience not found"})
			return
		}

		services := make([]domain.ServiceLine, len(req.Services))
		for i, svc := range req.Services {
			services[i] = domain.ServiceLine{
				ServiceID: svc.ServiceID,
				Name:      svc.Name,
				Price:     svc.Price,
				Quantity:  svc.Quantity,
			}
		}

		id := store.AddItem(c.Request.Context(), domain.CartItem{
			ExperienceID: experience.ID,
			Title:        experience.Title,
			Location:     experience.Location,
			Image:        experience.Image,
			Price:        experience.Price,
		}, services)

		logger.Info("Cart item added", zap.String("item_id", id), zap.Int("experience_id", experience.ID))
		c.JSON(http.StatusCreated, gin.H{"item_id": id, "cart": toCartResponse(store)})
	}
}

// HandleUpdateCartItem handles PATCH /v1/cart/items/:id. Out-of-range
// quantities and unknown IDs are silent no-ops, mirroring the store.
func HandleUpdateCartItem(store *cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		id := c.Param("id")
		if req.Quantity != nil {
			store.UpdateQuantity(c.Request.Context(), id, *req.Quantity)
		}
		if req.IsGift != nil {
			store.ToggleGift(c.Request.Context(), id, *req.IsGift)
		}

		c.JSON(http.StatusOK, toCartResponse(store))
	}
}

// HandleRemoveCartItem handles DELETE /v1/cart/items/:id
func HandleRemoveCartItem(store *cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store.RemoveItem(c.Request.Context(), c.Param("id"))
		c.JSON(http.StatusOK, toCartResponse(store))
	}
}

// HandleClearCart handles POST /v1/cart/clear
func HandleClearCart(store *cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store.Clear(c.Request.Context())
		c.JSON(http.StatusOK, toCartResponse(store))
	}
}

// HandleSetDelivery handles PUT /v1/cart/delivery
func HandleSetDelivery(store *cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DeliveryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		dt := domain.DeliveryType(req.DeliveryType)
		if !dt.IsValid() {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "delivery_type must be physical or digital"})
			return
		}

		store.SetDeliveryType(dt)
		if req.PersonalDetails != nil {
			store.SetPersonalDetails(*req.PersonalDetails)
		}
		if req.DeliveryAddress != nil {
			store.SetDeliveryAddress(*req.DeliveryAddress)
		}
		if req.CheckoutStep != nil {
			store.SetCheckoutStep(*req.CheckoutStep)
		}

		c.JSON(http.StatusOK, toCartResponse(store))
	}
}

func toCartResponse(store *cart.Store) CartResponse {
	session := store.Session()
	return CartResponse{
		Items:        session.Items,
		DeliveryType: string(session.DeliveryType),
		CheckoutStep: session.CheckoutStep,
		TotalItems:   store.TotalItems(),
		Subtotal:     store.Subtotal(),
		TotalWithVAT: store.TotalWithVAT(),
	}
}
