package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"canela-backend/internal/dto"
	"canela-backend/internal/model"
	"canela-backend/internal/repository"
)

type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*model.User, error)
	Get(ctx context.Context, id uint) (*model.User, error)
	Update(ctx context.Context, id uint, req *dto.UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, id uint) error
}

type userServiceImpl struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

func (s *userServiceImpl) Create(ctx context.Context, req *dto.CreateUserRequest) (*model.User, error) {
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.UserName == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	exists, err := s.userRepo.ExistsByEmailOrUserName(ctx, req.Email, req.UserName)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		UserName:   req.UserName,
		Password:   string(hashed),
		Address:    req.Address,
		PostalCode: req.PostalCode,
		ContactNo:  req.ContactNo,
		Role:       model.RoleCustomer,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userServiceImpl) Get(ctx context.Context, id uint) (*model.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

func (s *userServiceImpl) Update(ctx context.Context, id uint, req *dto.UpdateUserRequest) (*model.User, error) {
	fields := map[string]interface{}{}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.PostalCode != nil {
		fields["postal_code"] = *req.PostalCode
	}
	if req.ContactNo != nil {
		fields["contact_no"] = *req.ContactNo
	}
	if len(fields) == 0 {
		return s.userRepo.FindByID(ctx, id)
	}
	return s.userRepo.Updates(ctx, id, fields)
}

func (s *userServiceImpl) Delete(ctx context.Context, id uint) error {
	return s.userRepo.Delete(ctx, id)
}
