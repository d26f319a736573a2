package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/collegeportal/internal/client/client"
	"github.com/dmitrijs2005/collegeportal/internal/client/models"
	"github.com/dmitrijs2005/collegeportal/internal/common"
)

// FeaturedReviewsLimit is how many reviews the home view shows.
const FeaturedReviewsLimit = 6

// ErrNotAdmitted: reviews are accepted only from candidates whose admission
// to the college was approved.
var ErrNotAdmitted = fmt.Errorf("%w: no approved admission for this college", common.ErrValidation)

type ReviewService interface {
	Submit(ctx context.Context, req models.ReviewRequest) (models.Review, error)
	ForCollege(ctx context.Context, collegeID string) ([]models.Review, error)
	Featured(ctx context.Context) ([]models.Review, error)
}

type reviewService struct {
	reviews    client.ReviewAPI
	admissions client.AdmissionAPI
	auth       Authorizer
}

func NewReviewService(reviews client.ReviewAPI, admissions client.AdmissionAPI, auth Authorizer) ReviewService {
	return &reviewService{reviews: reviews, admissions: admissions, auth: auth}
}

func (s *reviewService) Submit(ctx context.Context, req models.ReviewRequest) (models.Review, error) {
	if err := req.Validate(); err != nil {
		return models.Review{}, err
	}

	var res models.Review
	err := s.auth.Authorized(ctx, func(ctx context.Context, credential string) error {
		mine, err := s.admissions.MyAdmissions(ctx, credential)
		if err != nil {
			return err
		}
		if !approvedFor(mine, req.College) {
			return ErrNotAdmitted
		}
		res, err = s.reviews.CreateReview(ctx, credential, req)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrNotAdmitted) {
			return models.Review{}, err
		}
		return models.Review{}, fmt.Errorf("submit review: %w", err)
	}
	return res, nil
}

func approvedFor(admissions []models.Admission, collegeID string) bool {
	for _, a := range admissions {
		if a.College.ID == collegeID && a.Status == models.AdmissionApproved {
			return true
		}
	}
	return false
}

func (s *reviewService) ForCollege(ctx context.Context, collegeID string) ([]models.Review, error) {
	collegeID = strings.TrimSpace(collegeID)
	if collegeID == "" {
		return nil, fmt.Errorf("%w: college id is required", common.ErrValidation)
	}
	res, err := s.reviews.CollegeReviews(ctx, collegeID)
	if err != nil {
		return nil, fmt.Errorf("college reviews: %w", err)
	}
	return res, nil
}

func (s *reviewService) Featured(ctx context.Context) ([]models.Review, error) {
	res, err := s.reviews.FeaturedReviews(ctx, FeaturedReviewsLimit)
	if err != nil {
		return nil, fmt.Errorf("featured reviews: %w", err)
	}
	return res, nil
}
