package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"canela-backend/internal/repository"
	"canela-backend/internal/service"
)

// httpError maps service and repository errors onto the API's status
// taxonomy: validation 400, forbidden 403, not-found 404, conflicts 409,
// everything else 500.
func httpError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrUserExists):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrInsufficientStock):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrNoShippingAddress),
		errors.Is(err, service.ErrEmptyOrder),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrTooManyImages):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return err
	}
}

func idParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

// formFile reads one named multipart file; a missing file is not an error.
func formFile(c echo.Context, field string) ([]byte, string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, "", nil
	}
	return readFile(fh)
}

func readFile(fh *multipart.FileHeader) ([]byte, string, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "could not read upload")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "could not read upload")
	}
	return data, fh.Filename, nil
}
