package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canela-backend/internal/dto"
	"canela-backend/internal/repository"
)

func TestLoginAndTokenRoundtrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	userRepo := repository.NewUserRepository(db)
	users := NewUserService(userRepo)
	auth := NewAuthService(userRepo, &fakeMailer{}, "test-secret", "https://shop.test")

	created, err := users.Create(ctx, &dto.CreateUserRequest{
		FirstName: "Alice", LastName: "Perera",
		Email: "alice@example.com", UserName: "alice",
		Password: "hunter22",
	})
	require.NoError(t, err)

	resp, err := auth.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)
	assert.True(t, resp.Auth)
	assert.Equal(t, created.ID, resp.UserID)
	assert.Equal(t, 3600, resp.ExpiresIn)

	claims, err := auth.VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)
	assert.Equal(t, created.Role, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	userRepo := repository.NewUserRepository(db)
	users := NewUserService(userRepo)
	auth := NewAuthService(userRepo, &fakeMailer{}, "test-secret", "https://shop.test")

	_, err := users.Create(ctx, &dto.CreateUserRequest{
		FirstName: "Bob", LastName: "Silva",
		Email: "bob@example.com", UserName: "bob",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = auth.Login(ctx, &dto.LoginRequest{Username: "bob", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(ctx, &dto.LoginRequest{Username: "nobody", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyTokenRejectsForgedToken(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	auth := NewAuthService(userRepo, &fakeMailer{}, "test-secret", "https://shop.test")
	other := NewAuthService(userRepo, &fakeMailer{}, "other-secret", "https://shop.test")

	user := seedUser(t, db, "carol", "")
	forged, err := other.(*authServiceImpl).signToken(user.ID, "customer")
	require.NoError(t, err)

	_, err = auth.VerifyToken(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = auth.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRecoverAndResetPassword(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	userRepo := repository.NewUserRepository(db)
	users := NewUserService(userRepo)
	mailer := &fakeMailer{}
	auth := NewAuthService(userRepo, mailer, "test-secret", "https://shop.test")

	_, err := users.Create(ctx, &dto.CreateUserRequest{
		FirstName: "Dana", LastName: "Fernando",
		Email: "dana@example.com", UserName: "dana",
		Password: "old-password",
	})
	require.NoError(t, err)

	require.NoError(t, auth.RecoverPassword(ctx, "dana@example.com"))
	require.Equal(t, 1, mailer.sent())

	// Pull the token out of the reset link.
	body := mailer.messages[0].Text
	idx := strings.Index(body, "token=")
	require.Greater(t, idx, -1)
	token := body[idx+len("token="):]

	require.NoError(t, auth.ResetPassword(ctx, token, "new-password"))

	_, err = auth.Login(ctx, &dto.LoginRequest{Username: "dana", Password: "old-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	resp, err := auth.Login(ctx, &dto.LoginRequest{Username: "dana", Password: "new-password"})
	require.NoError(t, err)
	assert.True(t, resp.Auth)
}

func TestRecoverPasswordMailFailure(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	userRepo := repository.NewUserRepository(db)
	users := NewUserService(userRepo)
	auth := NewAuthService(userRepo, &fakeMailer{fail: true}, "test-secret", "https://shop.test")

	_, err := users.Create(ctx, &dto.CreateUserRequest{
		FirstName: "Eve", LastName: "Jay",
		Email: "eve@example.com", UserName: "eve",
		Password: "secret123",
	})
	require.NoError(t, err)

	err = auth.RecoverPassword(ctx, "eve@example.com")
	assert.ErrorIs(t, err, ErrRecoveryMailFailed)
}

func TestUserCreateRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := NewUserService(repository.NewUserRepository(db))

	req := &dto.CreateUserRequest{
		FirstName: "Finn", LastName: "Gomez",
		Email: "finn@example.com", UserName: "finn",
		Password: "secret123",
	}
	_, err := users.Create(ctx, req)
	require.NoError(t, err)

	_, err = users.Create(ctx, req)
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = users.Create(ctx, &dto.CreateUserRequest{FirstName: "x"})
	assert.ErrorIs(t, err, ErrMissingFields)
}
