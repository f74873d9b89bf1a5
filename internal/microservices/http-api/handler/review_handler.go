package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"watchmate/internal/microservices/http-api/dto"
	"watchmate/internal/microservices/http-api/middleware"
	"watchmate/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	svc  service.ReviewService
	errs errorResponder
}

func NewReviewHandler(svc service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{svc: svc, errs: errorResponder{logger: logger}}
}

// Create handles POST /watch/:pk/review-create/.
func (h *ReviewHandler) Create(c *gin.Context) {
	watchListID, ok := pathID(c)
	if !ok {
		return
	}
	var in dto.ReviewRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		bindingError(c, err)
		return
	}

	review, err := h.svc.SubmitReview(c.Request.Context(), watchListID, middleware.CurrentUser(c), in)
	if err != nil {
		h.errs.respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToReviewResponse(*review))
}

// ListForTitle handles GET /watch/:pk/reviews/.
func (h *ReviewHandler) ListForTitle(c *gin.Context) {
	watchListID, ok := pathID(c)
	if !ok {
		return
	}
	var q dto.ReviewListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindingError(c, err)
		return
	}
	page, err := pageParam(c)
	if err != nil {
		h.errs.respond(c, err)
		return
	}

	result, err := h.svc.ListForTitle(c.Request.Context(), watchListID, service.ReviewQuery{
		Rating:   q.Rating,
		Username: q.Username,
		Search:   q.Search,
		Ordering: q.Ordering,
		Page:     page,
	})
	if err != nil {
		h.errs.respond(c, err)
		return
	}
	h.writePage(c, result)
}

// ListForUser handles GET /reviews/?username=.
func (h *ReviewHandler) ListForUser(c *gin.Context) {
	page, err := pageParam(c)
	if err != nil {
		h.errs.respond(c, err)
		return
	}
	result, err := h.svc.ListForUser(c.Request.Context(), c.Query("username"), page)
	if err != nil {
		h.errs.respond(c, err)
		return
	}
	h.writePage(c, result)
}

func (h *ReviewHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	review, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.errs.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToReviewResponse(*review))
}

func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in dto.ReviewRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		bindingError(c, err)
		return
	}
	review, err := h.svc.Update(c.Request.Context(), id, middleware.CurrentUser(c), in)
	if err != nil {
		h.errs.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToReviewResponse(*review))
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id, middleware.CurrentUser(c)); err != nil {
		h.errs.respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReviewHandler) writePage(c *gin.Context, result *service.ReviewPage) {
	items := make([]dto.ReviewResponse, 0, len(result.Reviews))
	for _, r := range result.Reviews {
		items = append(items, dto.FromModelToReviewResponse(r))
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(items, result.Total, result.Page, result.PageSize, pageURL(c)))
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("pk"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusNotFound, detail("Not found."))
		return 0, false
	}
	return id, true
}
