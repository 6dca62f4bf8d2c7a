package users

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dkurganov/gift-marketplace/pkg/common"
	"github.com/dkurganov/gift-marketplace/pkg/pagination"
)

// Handler handles HTTP requests for users
type Handler struct {
	service *Service
}

// NewHandler creates a new user handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListUsers returns a page of users
// GET /api/v1/users?page=0&size=20
func (h *Handler) ListUsers(c *gin.Context) {
	params := pagination.ParseParams(c)

	result, total, err := h.service.FindAll(c.Request.Context(), params.Size, params.Offset())
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list users")
		return
	}

	meta := pagination.BuildMeta(params.Page, params.Size, total)
	common.SuccessResponseWithMeta(c, gin.H{"users": result}, meta)
}

// GetUser returns a single user by id
// GET /api/v1/users/:id
func (h *Handler) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.service.Find(c.Request.Context(), id)
	if err != nil {
		if appErr, ok := common.AsAppError(err); ok {
			common.AppErrorResponse(c, appErr)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to get user")
		return
	}

	common.SuccessResponse(c, user)
}

// RegisterRoutes registers user routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	group := r.Group("/api/v1/users")
	{
		group.GET("", h.ListUsers)
		group.GET("/:id", h.GetUser)
	}
}
