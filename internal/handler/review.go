package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"canela-backend/internal/dto"
	"canela-backend/internal/middleware"
	"canela-backend/internal/repository"
	"canela-backend/internal/service"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	var req dto.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	images, err := reviewImages(c)
	if err != nil {
		return err
	}

	review, err := h.reviewService.Create(ctx, userID, &req, images)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, review)
}

func reviewImages(c echo.Context) ([]service.ReviewImageUpload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}

	var images []service.ReviewImageUpload
	for _, fh := range form.File["images"] {
		data, name, err := readFile(fh)
		if err != nil {
			return nil, err
		}
		images = append(images, service.ReviewImageUpload{Data: data, Name: name})
	}
	return images, nil
}

func (h *ReviewHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	filter := reviewFilter(c)
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	skip, _ := strconv.Atoi(c.QueryParam("skip"))

	reviews, summary, err := h.reviewService.List(ctx, filter, limit, skip)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"reviews": reviews,
		"summary": summary,
	})
}

func (h *ReviewHandler) Summary(c echo.Context) error {
	ctx := c.Request().Context()

	summary, err := h.reviewService.Summary(ctx, reviewFilter(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, summary)
}

func reviewFilter(c echo.Context) repository.ReviewFilter {
	var filter repository.ReviewFilter
	if raw := c.QueryParam("productId"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			productID := uint(id)
			filter.ProductID = &productID
		}
	}
	if raw := c.QueryParam("rating"); raw != "" {
		if rating, err := strconv.Atoi(raw); err == nil {
			filter.Rating = &rating
		}
	}
	return filter
}

func (h *ReviewHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c)
	if err != nil {
		return err
	}

	review, err := h.reviewService.Get(ctx, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req dto.UpdateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	review, err := h.reviewService.Update(ctx, id, middleware.UserID(c), middleware.Role(c), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := h.reviewService.Delete(ctx, id, middleware.UserID(c), middleware.Role(c)); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Review deleted successfully"})
}

func (h *ReviewHandler) AddReply(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req dto.ReplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	review, err := h.reviewService.AddReply(ctx, id, middleware.UserID(c), middleware.Role(c), req.Message)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, review)
}
