package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"canela-backend/internal/client"
	"canela-backend/internal/dto"
	"canela-backend/internal/model"
	"canela-backend/internal/repository"
)

const maxReviewImages = 5

// ReviewImageUpload is one multipart image accompanying a review.
type ReviewImageUpload struct {
	Data []byte
	Name string
}

type ReviewService interface {
	Create(ctx context.Context, userID uint, req *dto.CreateReviewRequest, images []ReviewImageUpload) (*model.Review, error)
	List(ctx context.Context, filter repository.ReviewFilter, limit, skip int) ([]*model.Review, *dto.ReviewSummary, error)
	Get(ctx context.Context, id uint) (*model.Review, error)
	Summary(ctx context.Context, filter repository.ReviewFilter) (*dto.ReviewSummary, error)
	Update(ctx context.Context, id, userID uint, role string, req *dto.UpdateReviewRequest) (*model.Review, error)
	Delete(ctx context.Context, id, userID uint, role string) error
	AddReply(ctx context.Context, reviewID, userID uint, role, message string) (*model.Review, error)
}

type reviewServiceImpl struct {
	reviewRepo repository.ReviewRepository
	userRepo   repository.UserRepository
	uploader   client.Uploader
}

func NewReviewService(reviewRepo repository.ReviewRepository, userRepo repository.UserRepository, uploader client.Uploader) ReviewService {
	return &reviewServiceImpl{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
		uploader:   uploader,
	}
}

func (s *reviewServiceImpl) Create(ctx context.Context, userID uint, req *dto.CreateReviewRequest, images []ReviewImageUpload) (*model.Review, error) {
	comment := strings.TrimSpace(req.Comment)
	if comment == "" || req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if len(images) > maxReviewImages {
		return nil, ErrTooManyImages
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	review := &model.Review{
		AuthorID:   user.ID,
		AuthorName: fmt.Sprintf("%s %s", user.FirstName, user.LastName),
		Rating:     req.Rating,
		Comment:    comment,
		Visible:    true,
	}
	if req.ProductID != 0 {
		productID := req.ProductID
		review.ProductID = &productID
	}

	for _, img := range images {
		url, err := s.uploader.Upload(ctx, img.Data, img.Name, "reviews")
		if err != nil {
			return nil, fmt.Errorf("upload review image: %w", err)
		}
		review.Images = append(review.Images, model.ReviewImage{URL: url, UploadedAt: time.Now()})
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return review, nil
}

func (s *reviewServiceImpl) List(ctx context.Context, filter repository.ReviewFilter, limit, skip int) ([]*model.Review, *dto.ReviewSummary, error) {
	if limit <= 0 {
		limit = 12
	}
	if limit > 50 {
		limit = 50
	}
	if skip < 0 {
		skip = 0
	}

	reviews, err := s.reviewRepo.Find(ctx, filter, limit, skip)
	if err != nil {
		return nil, nil, fmt.Errorf("list reviews: %w", err)
	}

	summary, err := s.Summary(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	return reviews, summary, nil
}

// Summary aggregates visible reviews for the filter: total count, average
// rating (0 when none) and a per-star breakdown with unseen stars zeroed.
func (s *reviewServiceImpl) Summary(ctx context.Context, filter repository.ReviewFilter) (*dto.ReviewSummary, error) {
	total, err := s.reviewRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	avg, err := s.reviewRepo.AverageRating(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("average rating: %w", err)
	}

	rows, err := s.reviewRepo.RatingBreakdown(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("rating breakdown: %w", err)
	}

	breakdown := map[int]int64{5: 0, 4: 0, 3: 0, 2: 0, 1: 0}
	for _, row := range rows {
		if row.Rating >= 1 && row.Rating <= 5 {
			breakdown[row.Rating] = row.Count
		}
	}

	return &dto.ReviewSummary{
		TotalReviews:  total,
		AverageRating: avg,
		Breakdown:     breakdown,
	}, nil
}

func (s *reviewServiceImpl) Get(ctx context.Context, id uint) (*model.Review, error) {
	return s.reviewRepo.FindByID(ctx, id)
}

func (s *reviewServiceImpl) Update(ctx context.Context, id, userID uint, role string, req *dto.UpdateReviewRequest) (*model.Review, error) {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if review.AuthorID != userID && role != model.RoleAdmin {
		return nil, ErrForbidden
	}

	if comment := strings.TrimSpace(req.Comment); comment != "" {
		review.Comment = comment
	}
	if req.Rating >= 1 && req.Rating <= 5 {
		review.Rating = req.Rating
	}

	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	return review, nil
}

func (s *reviewServiceImpl) Delete(ctx context.Context, id, userID uint, role string) error {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if review.AuthorID != userID && role != model.RoleAdmin {
		return ErrForbidden
	}

	return s.reviewRepo.Delete(ctx, id)
}

func (s *reviewServiceImpl) AddReply(ctx context.Context, reviewID, userID uint, role, message string) (*model.Review, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrMissingFields
	}
	// Replies are an admin-only surface.
	if role != model.RoleAdmin {
		return nil, ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	reply := &model.ReviewReply{
		ReviewID: review.ID,
		UserID:   user.ID,
		UserName: fmt.Sprintf("%s %s", user.FirstName, user.LastName),
		Message:  message,
	}
	if err := s.reviewRepo.AddReply(ctx, reply); err != nil {
		return nil, fmt.Errorf("add reply: %w", err)
	}

	return s.reviewRepo.FindByID(ctx, reviewID)
}
