package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"canela-backend/internal/dto"
	"canela-backend/internal/repository"
	"canela-backend/internal/service"
)

type ApplicationHandler struct {
	applicationService service.ApplicationService
}

func NewApplicationHandler(applicationService service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

func (h *ApplicationHandler) Submit(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SubmitApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	cv, cvName, err := formFile(c, "cv")
	if err != nil {
		return err
	}

	app, err := h.applicationService.Submit(ctx, &req, cv, cvName)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success":       true,
		"message":       "Application submitted successfully",
		"applicationId": app.ID,
	})
}

func (h *ApplicationHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	filter := repository.ApplicationFilter{
		Status:   c.QueryParam("status"),
		Position: c.QueryParam("position"),
	}
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	apps, pagination, err := h.applicationService.List(ctx, filter, page, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"applications": apps,
		"pagination":   pagination,
	})
}

func (h *ApplicationHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c)
	if err != nil {
		return err
	}

	app, err := h.applicationService.Get(ctx, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req dto.UpdateApplicationStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	app, err := h.applicationService.UpdateStatus(ctx, id, &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "Application status updated",
		"application": app,
	})
}

func (h *ApplicationHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := h.applicationService.Delete(ctx, id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Application deleted successfully"})
}
