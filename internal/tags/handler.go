package tags

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dkurganov/gift-marketplace/pkg/common"
	"github.com/dkurganov/gift-marketplace/pkg/pagination"
)

// Handler handles HTTP requests for tags
type Handler struct {
	service *Service
}

// NewHandler creates a new tag handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListTags returns a page of tags
// GET /api/v1/tags?page=0&size=20
func (h *Handler) ListTags(c *gin.Context) {
	params := pagination.ParseParams(c)

	result, total, err := h.service.FindAll(c.Request.Context(), params.Size, params.Offset())
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list tags")
		return
	}

	meta := pagination.BuildMeta(params.Page, params.Size, total)
	common.SuccessResponseWithMeta(c, gin.H{"tags": result}, meta)
}

// GetTag returns a single tag by id
// GET /api/v1/tags/:id
func (h *Handler) GetTag(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid tag id")
		return
	}

	tag, err := h.service.Find(c.Request.Context(), id)
	if err != nil {
		if appErr, ok := common.AsAppError(err); ok {
			common.AppErrorResponse(c, appErr)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to get tag")
		return
	}

	common.SuccessResponse(c, tag)
}

// CreateTag creates a new tag
// POST /api/v1/tags
func (h *Handler) CreateTag(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		if appErr, ok := common.AsAppError(err); ok {
			common.AppErrorResponse(c, appErr)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to create tag")
		return
	}

	common.CreatedResponseWithLocation(c, fmt.Sprintf("/tags/%d", tag.ID), tag)
}

// UpdateTag renames a tag
// PUT /api/v1/tags/:id
func (h *Handler) UpdateTag(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid tag id")
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		if appErr, ok := common.AsAppError(err); ok {
			common.AppErrorResponse(c, appErr)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to update tag")
		return
	}

	common.SuccessResponse(c, tag)
}

// DeleteTag removes a tag
// DELETE /api/v1/tags/:id
func (h *Handler) DeleteTag(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid tag id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if appErr, ok := common.AsAppError(err); ok {
			common.AppErrorResponse(c, appErr)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to delete tag")
		return
	}

	common.NoContentResponse(c)
}

// RegisterRoutes registers tag routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	group := r.Group("/api/v1/tags")
	{
		group.GET("", h.ListTags)
		group.POST("", h.CreateTag)
		group.GET("/:id", h.GetTag)
		group.PUT("/:id", h.UpdateTag)
		group.DELETE("/:id", h.DeleteTag)
	}
}
