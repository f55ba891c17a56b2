package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"canela-backend/internal/dto"
	"canela-backend/internal/model"
	"canela-backend/internal/repository"
)

func newReviewService(t *testing.T) (ReviewService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewReviewService(
		repository.NewReviewRepository(db),
		repository.NewUserRepository(db),
		&fakeUploader{},
	)
	return svc, db
}

func TestReviewSummaryAggregation(t *testing.T) {
	svc, db := newReviewService(t)
	ctx := context.Background()

	author := seedUser(t, db, "alice", "12 Spice Lane")
	for _, rating := range []int{5, 5, 4} {
		_, err := svc.Create(ctx, author.ID, &dto.CreateReviewRequest{
			Comment: "Lovely aroma",
			Rating:  rating,
		}, nil)
		require.NoError(t, err)
	}
	// Hidden reviews never count.
	require.NoError(t, db.Create(&model.Review{
		AuthorID: author.ID, AuthorName: "Test User",
		Rating: 1, Comment: "hidden", Visible: false,
	}).Error)

	summary, err := svc.Summary(ctx, repository.ReviewFilter{})
	require.NoError(t, err)

	assert.Equal(t, int64(3), summary.TotalReviews)
	assert.InDelta(t, 14.0/3.0, summary.AverageRating, 0.001)
	assert.Equal(t, map[int]int64{5: 2, 4: 1, 3: 0, 2: 0, 1: 0}, summary.Breakdown)

	var sum int64
	for _, count := range summary.Breakdown {
		sum += count
	}
	assert.Equal(t, summary.TotalReviews, sum)
}

func TestReviewSummaryEmpty(t *testing.T) {
	svc, _ := newReviewService(t)

	summary, err := svc.Summary(context.Background(), repository.ReviewFilter{})
	require.NoError(t, err)
	assert.Zero(t, summary.TotalReviews)
	assert.Zero(t, summary.AverageRating)
	assert.Equal(t, map[int]int64{5: 0, 4: 0, 3: 0, 2: 0, 1: 0}, summary.Breakdown)
}

func TestReviewCreateValidation(t *testing.T) {
	svc, db := newReviewService(t)
	ctx := context.Background()
	author := seedUser(t, db, "bob", "7 Bark Road")

	_, err := svc.Create(ctx, author.ID, &dto.CreateReviewRequest{Comment: "", Rating: 5}, nil)
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = svc.Create(ctx, author.ID, &dto.CreateReviewRequest{Comment: "ok", Rating: 6}, nil)
	assert.ErrorIs(t, err, ErrInvalidRating)

	images := make([]ReviewImageUpload, maxReviewImages+1)
	_, err = svc.Create(ctx, author.ID, &dto.CreateReviewRequest{Comment: "ok", Rating: 5}, images)
	assert.ErrorIs(t, err, ErrTooManyImages)
}

func TestReviewUpdateAuthorization(t *testing.T) {
	svc, db := newReviewService(t)
	ctx := context.Background()

	author := seedUser(t, db, "carol", "1 Main St")
	stranger := seedUser(t, db, "dave", "2 Side St")

	review, err := svc.Create(ctx, author.ID, &dto.CreateReviewRequest{Comment: "Great", Rating: 5}, nil)
	require.NoError(t, err)

	_, err = svc.Update(ctx, review.ID, stranger.ID, model.RoleCustomer, &dto.UpdateReviewRequest{Rating: 1})
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.Delete(ctx, review.ID, stranger.ID, model.RoleCustomer)
	assert.ErrorIs(t, err, ErrForbidden)

	// Admins may moderate any review.
	updated, err := svc.Update(ctx, review.ID, stranger.ID, model.RoleAdmin, &dto.UpdateReviewRequest{Rating: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Rating)
}

func TestReviewReplyAdminOnly(t *testing.T) {
	svc, db := newReviewService(t)
	ctx := context.Background()

	author := seedUser(t, db, "erin", "3 Cinnamon Gardens")
	admin := seedUser(t, db, "admin", "HQ")
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", admin.ID).Update("role", model.RoleAdmin).Error)

	review, err := svc.Create(ctx, author.ID, &dto.CreateReviewRequest{Comment: "Question", Rating: 4}, nil)
	require.NoError(t, err)

	_, err = svc.AddReply(ctx, review.ID, author.ID, model.RoleCustomer, "self reply")
	assert.ErrorIs(t, err, ErrForbidden)

	replied, err := svc.AddReply(ctx, review.ID, admin.ID, model.RoleAdmin, "Thanks for asking!")
	require.NoError(t, err)
	require.Len(t, replied.Replies, 1)
	assert.Equal(t, "Thanks for asking!", replied.Replies[0].Message)
}
