package handler

import (
	"log/slog"
	"net/http"

	"watchmate/internal/microservices/http-api/dto"
	"watchmate/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type PlatformHandler struct {
	svc  service.PlatformService
	errs errorResponder
}

func NewPlatformHandler(svc service.PlatformService, logger *slog.Logger) *PlatformHandler {
	return &PlatformHandler{svc: svc, errs: errorResponder{logger: logger}}
}

func (h *PlatformHandler) List(c *gin.Context) {
	page, err := pageParam(c)
	if err != nil {
		h.errs.respond(c, err)
		return
	}

	result, err := h.svc.List(c.Request.Context(), page)
	if err != nil {
		h.errs.respond(c, err)
		return
	}

	items := make([]dto.PlatformResponse, 0, len(result.Platforms))
	for _, p := range result.Platforms {
		items = append(items, dto.FromModelToPlatformResponse(p))
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(items, result.Total, result.Page, result.PageSize, pageURL(c)))
}

func (h *PlatformHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.errs.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToPlatformResponse(*p))
}

func (h *PlatformHandler) Create(c *gin.Context) {
	var in dto.PlatformRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		bindingError(c, err)
		return
	}
	p, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		h.errs.respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToPlatformResponse(*p))
}

func (h *PlatformHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in dto.PlatformRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		bindingError(c, err)
		return
	}
	p, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		h.errs.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToPlatformResponse(*p))
}

func (h *PlatformHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.errs.respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
