package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"canela-backend/internal/client"
)

type UploadHandler struct {
	uploader client.Uploader
}

func NewUploadHandler(uploader client.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

func (h *UploadHandler) Upload(c echo.Context) error {
	ctx := c.Request().Context()

	data, name, err := formFile(c, "image")
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "No file uploaded")
	}

	url, err := h.uploader.Upload(ctx, data, name, "uploads")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Upload failed")
	}
	return c.JSON(http.StatusCreated, map[string]string{"url": url})
}
