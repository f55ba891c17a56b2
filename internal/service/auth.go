package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"canela-backend/internal/client"
	"canela-backend/internal/dto"
	"canela-backend/internal/repository"
)

const tokenTTL = time.Hour

// AuthClaims is the token payload attached to authenticated requests.
type AuthClaims struct {
	UserID uint   `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	// RecoverPassword emails a reset link; unlike other notifications a
	// send failure here surfaces to the caller.
	RecoverPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	VerifyToken(tokenString string) (*AuthClaims, error)
}

type authServiceImpl struct {
	userRepo  repository.UserRepository
	mailer    client.Mailer
	secret    []byte
	clientURL string
}

func NewAuthService(userRepo repository.UserRepository, mailer client.Mailer, secret, clientURL string) AuthService {
	return &authServiceImpl{
		userRepo:  userRepo,
		mailer:    mailer,
		secret:    []byte(secret),
		clientURL: clientURL,
	}
}

func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByUserName(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.signToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &dto.LoginResponse{
		Auth:      true,
		Token:     token,
		UserID:    user.ID,
		Role:      user.Role,
		ExpiresIn: int(tokenTTL.Seconds()),
		Email:     user.Email,
		Phone:     user.ContactNo,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		UserName:  user.UserName,
	}, nil
}

func (s *authServiceImpl) signToken(userID uint, role string) (string, error) {
	claims := &AuthClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *authServiceImpl) VerifyToken(tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *authServiceImpl) RecoverPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return gorm.ErrRecordNotFound
		}
		return fmt.Errorf("find user by email: %w", err)
	}

	token, err := s.signToken(user.ID, user.Role)
	if err != nil {
		return fmt.Errorf("sign recovery token: %w", err)
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.clientURL, token)

	mailCtx, cancel := context.WithTimeout(ctx, mailTimeout)
	defer cancel()

	err = s.mailer.Send(mailCtx, &client.Message{
		To:      user.Email,
		Subject: "Password Recovery",
		Text:    fmt.Sprintf("Click the following link to recover your password: %s", link),
	})
	if err != nil {
		log.Printf("recovery mail to %s failed: %v", user.Email, err)
		return ErrRecoveryMailFailed
	}
	return nil
}

func (s *authServiceImpl) ResetPassword(ctx context.Context, tokenString, password string) error {
	claims, err := s.VerifyToken(tokenString)
	if err != nil {
		return ErrInvalidToken
	}

	if _, err := s.userRepo.FindByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return gorm.ErrRecordNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, claims.UserID, string(hashed))
}
