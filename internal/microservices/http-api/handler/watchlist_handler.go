package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"watchmate/internal/microservices/http-api/dto"
	"watchmate/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type WatchListHandler struct {
	svc  service.WatchListService
	errs errorResponder
}

func NewWatchListHandler(svc service.WatchListService, logger *slog.Logger) *WatchListHandler {
	return &WatchListHandler{svc: svc, errs: errorResponder{logger: logger}}
}

// watchNotFound is the body /watch/:pk/ answers with, kept for existing clients.
var watchNotFound = gin.H{"error": "Not found"}

func (h *WatchListHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.errs.respond(c, err)
		return
	}
	resp := make([]dto.WatchListResponse, 0, len(list))
	for _, w := range list {
		resp = append(resp, dto.FromModelToWatchListResponse(w))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WatchListHandler) Get(c *gin.Context) {
	id, ok := watchListID(c)
	if !ok {
		return
	}
	w, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToWatchListResponse(*w))
}

func (h *WatchListHandler) Create(c *gin.Context) {
	var in dto.WatchListRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		bindingError(c, err)
		return
	}
	w, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		h.errs.respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToWatchListResponse(*w))
}

func (h *WatchListHandler) Update(c *gin.Context) {
	id, ok := watchListID(c)
	if !ok {
		return
	}
	var in dto.WatchListRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		bindingError(c, err)
		return
	}
	w, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToWatchListResponse(*w))
}

func (h *WatchListHandler) Delete(c *gin.Context) {
	id, ok := watchListID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WatchListHandler) respond(c *gin.Context, err error) {
	if errors.Is(err, service.ErrWatchListNotFound) {
		c.JSON(http.StatusNotFound, watchNotFound)
		return
	}
	h.errs.respond(c, err)
}

func watchListID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("pk"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusNotFound, watchNotFound)
		return 0, false
	}
	return id, true
}
