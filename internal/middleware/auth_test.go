package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canela-backend/internal/dto"
	"canela-backend/internal/model"
	"canela-backend/internal/service"
)

type stubAuthService struct {
	claims *service.AuthClaims
	err    error
}

func (s *stubAuthService) Login(context.Context, *dto.LoginRequest) (*dto.LoginResponse, error) {
	return nil, nil
}

func (s *stubAuthService) RecoverPassword(context.Context, string) error { return nil }

func (s *stubAuthService) ResetPassword(context.Context, string, string) error { return nil }

func (s *stubAuthService) VerifyToken(string) (*service.AuthClaims, error) {
	return s.claims, s.err
}

func runAuth(t *testing.T, auth echo.MiddlewareFunc, header string, next echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	return rec, auth(next)(c)
}

func TestAuthRejectsMissingToken(t *testing.T) {
	auth := Auth(&stubAuthService{err: service.ErrInvalidToken})

	for _, header := range []string{"", "Bearer ", "Basic abc"} {
		_, err := runAuth(t, auth, header, func(c echo.Context) error {
			t.Fatal("handler must not run")
			return nil
		})
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	auth := Auth(&stubAuthService{err: service.ErrInvalidToken})

	_, err := runAuth(t, auth, "Bearer garbage", func(c echo.Context) error { return nil })
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestAuthStoresIdentityOnContext(t *testing.T) {
	auth := Auth(&stubAuthService{claims: &service.AuthClaims{UserID: 42, Role: model.RoleAdmin}})

	_, err := runAuth(t, auth, "Bearer valid", func(c echo.Context) error {
		assert.Equal(t, uint(42), UserID(c))
		assert.Equal(t, model.RoleAdmin, Role(c))
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, err)
}

func TestRequireAdmin(t *testing.T) {
	e := echo.New()

	guarded := RequireAdmin()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set(ContextRole, model.RoleCustomer)

	err := guarded(c)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)

	c = e.NewContext(req, httptest.NewRecorder())
	c.Set(ContextRole, model.RoleAdmin)
	require.NoError(t, guarded(c))
}
