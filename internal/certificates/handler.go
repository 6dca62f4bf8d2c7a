package certificates

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dkurganov/gift-marketplace/pkg/common"
	"github.com/dkurganov/gift-marketplace/pkg/pagination"
)

// Handler handles HTTP requests for gift certificates
type Handler struct {
	service *Service
}

// NewHandler creates a new certificate handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListCertificates returns a filtered, sorted page of certificates
// GET /api/v1/gift-certificates?tag-name=beauty&description=nails&sort-by-date=desc&sort-by-name=asc&page=0&size=20
func (h *Handler) ListCertificates(c *gin.Context) {
	params := pagination.ParseParams(c)

	filters := ListFilters{}
	if v := c.Query("tag-name"); v != "" {
		filters.TagName = &v
	}
	if v := c.Query("description"); v != "" {
		filters.Description = &v
	}
	if v := c.Query("sort-by-date"); v != "" {
		filters.SortByDate = &v
	}
	if v := c.Query("sort-by-name"); v != "" {
		filters.SortByName = &v
	}

	result, total, err := h.service.FindAll(c.Request.Context(), filters, params)
	if err != nil {
		if appErr, ok := common.AsAppError(err); ok {
			common.AppErrorResponse(c, appErr)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list certificates")
		return
	}

	meta := pagination.BuildMeta(params.Page, params.Size, total)
	common.SuccessResponseWithMeta(c, gin.H{"certificates": result}, meta)
}

// GetCertificate returns a single certificate by id
// GET /api/v1/gift-certificates/:id
func (h *Handler) GetCertificate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid certificate id")
		return
	}

	cert, err := h.service.Find(c.Request.Context(), id)
	if err != nil {
		if appErr, ok := common.AsAppError(err); ok {
			common.AppErrorResponse(c, appErr)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to get certificate")
		return
	}

	common.SuccessResponse(c, cert)
}

// CreateCertificate creates a new certificate with its tag set
// POST /api/v1/gift-certificates
func (h *Handler) CreateCertificate(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cert, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		if appErr, ok := common.AsAppError(err); ok {
			common.AppErrorResponse(c, appErr)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to create certificate")
		return
	}

	common.CreatedResponseWithLocation(c, fmt.Sprintf("/gift-certificates/%d", cert.ID), cert)
}

// UpdateCertificate applies a partial update
// PATCH /api/v1/gift-certificates/:id
func (h *Handler) UpdateCertificate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid certificate id")
		return
	}

	var patch UpdateRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cert, err := h.service.Update(c.Request.Context(), id, &patch)
	if err != nil {
		if appErr, ok := common.AsAppError(err); ok {
			common.AppErrorResponse(c, appErr)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to update certificate")
		return
	}

	common.SuccessResponse(c, cert)
}

// DeleteCertificate removes a certificate
// DELETE /api/v1/gift-certificates/:id
func (h *Handler) DeleteCertificate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid certificate id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if appErr, ok := common.AsAppError(err); ok {
			common.AppErrorResponse(c, appErr)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to delete certificate")
		return
	}

	common.NoContentResponse(c)
}

// RegisterRoutes registers certificate routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	group := r.Group("/api/v1/gift-certificates")
	{
		group.GET("", h.ListCertificates)
		group.POST("", h.CreateCertificate)
		group.GET("/:id", h.GetCertificate)
		group.PATCH("/:id", h.UpdateCertificate)
		group.DELETE("/:id", h.DeleteCertificate)
	}
}
