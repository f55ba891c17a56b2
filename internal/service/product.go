package service

import (
	"context"
	"fmt"
	"time"

	"canela-backend/internal/client"
	"canela-backend/internal/dto"
	"canela-backend/internal/model"
	"canela-backend/internal/repository"
)

type ProductService interface {
	Create(ctx context.Context, req *dto.ProductRequest, image []byte, imageName string) (*model.Product, error)
	Get(ctx context.Context, id uint) (*model.Product, error)
	List(ctx context.Context) ([]*model.Product, error)
	Update(ctx context.Context, id uint, req *dto.ProductRequest, image []byte, imageName string) (*model.Product, error)
	Delete(ctx context.Context, id uint) error
}

type productServiceImpl struct {
	productRepo repository.ProductRepository
	uploader    client.Uploader
}

func NewProductService(productRepo repository.ProductRepository, uploader client.Uploader) ProductService {
	return &productServiceImpl{productRepo: productRepo, uploader: uploader}
}

func (s *productServiceImpl) Create(ctx context.Context, req *dto.ProductRequest, image []byte, imageName string) (*model.Product, error) {
	if req.ProductName == "" || req.ProductDescription == "" {
		return nil, ErrMissingFields
	}

	imageURL := ""
	if len(image) > 0 {
		url, err := s.uploader.Upload(ctx, image, imageName, "products")
		if err != nil {
			return nil, fmt.Errorf("upload product image: %w", err)
		}
		imageURL = url
	}

	productType := req.Type
	if productType == "" {
		productType = model.ProductTypeStandard
	}

	product := &model.Product{
		ProductName:        req.ProductName,
		ProductDescription: req.ProductDescription,
		ProductImage:       imageURL,
		Quantity:           req.Quantity,
		Price:              req.Price,
		Availability:       req.Availability,
		Type:               productType,
		Discount:           req.Discount,
		CreatedDate:        time.Now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

func (s *productServiceImpl) Get(ctx context.Context, id uint) (*model.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

func (s *productServiceImpl) List(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.FindAll(ctx)
}

func (s *productServiceImpl) Update(ctx context.Context, id uint, req *dto.ProductRequest, image []byte, imageName string) (*model.Product, error) {
	fields := map[string]interface{}{}
	if req.ProductName != "" {
		fields["product_name"] = req.ProductName
	}
	if req.ProductDescription != "" {
		fields["product_description"] = req.ProductDescription
	}
	if req.Availability != "" {
		fields["availability"] = req.Availability
	}
	if req.Type != "" {
		fields["type"] = req.Type
	}
	if req.Quantity != 0 {
		fields["quantity"] = req.Quantity
	}
	if req.Price != 0 {
		fields["price"] = req.Price
	}
	if req.Discount != 0 {
		fields["discount"] = req.Discount
	}

	if len(image) > 0 {
		url, err := s.uploader.Upload(ctx, image, imageName, "products")
		if err != nil {
			return nil, fmt.Errorf("upload product image: %w", err)
		}
		fields["product_image"] = url
	}

	if len(fields) == 0 {
		return s.productRepo.FindByID(ctx, id)
	}
	return s.productRepo.Updates(ctx, id, fields)
}

func (s *productServiceImpl) Delete(ctx context.Context, id uint) error {
	return s.productRepo.Delete(ctx, id)
}
