package orders

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dkurganov/gift-marketplace/pkg/common"
	"github.com/dkurganov/gift-marketplace/pkg/pagination"
)

// Handler handles HTTP requests for orders
type Handler struct {
	service *Service
}

// NewHandler creates a new order handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// MakeOrder creates a purchase order
// POST /api/v1/orders
func (h *Handler) MakeOrder(c *gin.Context) {
	var req MakeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	order, err := h.service.MakeOrder(c.Request.Context(), req.UserID, req.CertificateID)
	if err != nil {
		if appErr, ok := common.AsAppError(err); ok {
			common.AppErrorResponse(c, appErr)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to create order")
		return
	}

	common.SuccessResponse(c, order)
}

// ListUserOrders returns a page of a user's orders
// GET /api/v1/users/:id/orders?page=0&size=20
func (h *Handler) ListUserOrders(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid user id")
		return
	}

	params := pagination.ParseParams(c)

	result, total, err := h.service.GetUserOrders(c.Request.Context(), userID, params.Size, params.Offset())
	if err != nil {
		if appErr, ok := common.AsAppError(err); ok {
			common.AppErrorResponse(c, appErr)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list orders")
		return
	}

	meta := pagination.BuildMeta(params.Page, params.Size, total)
	common.SuccessResponseWithMeta(c, gin.H{"orders": result}, meta)
}

// RegisterRoutes registers order routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/v1/orders", h.MakeOrder)
	r.GET("/api/v1/users/:id/orders", h.ListUserOrders)
}
