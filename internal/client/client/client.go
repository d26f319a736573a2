package client

import (
	"context"

	"github.com/dmitrijs2005/collegeportal/internal/client/models"
)

// AuthAPI is the auth collaborator of the session manager.
type AuthAPI interface {
	Register(ctx context.Context, r models.Registration) (models.AuthResult, error)
	Login(ctx context.Context, c models.Credentials) (models.AuthResult, error)
	GetProfile(ctx context.Context, credential string) (models.User, error)
	UpdateProfile(ctx context.Context, credential string, fields models.ProfileUpdate) (models.User, error)
}

// CollegeAPI serves the public catalogue.
type CollegeAPI interface {
	SearchColleges(ctx context.Context, term string, limit int) ([]models.CollegeSummary, error)
	ListColleges(ctx context.Context, q models.CollegeQuery) (models.CollegePage, error)
	FeaturedColleges(ctx context.Context, limit int) ([]models.College, error)
	GetCollege(ctx context.Context, id string) (models.College, error)
}

// AdmissionAPI needs the viewer's credential on every call.
type AdmissionAPI interface {
	CreateAdmission(ctx context.Context, credential string, req models.AdmissionRequest) (models.Admission, error)
	MyAdmissions(ctx context.Context, credential string) ([]models.Admission, error)
}

// ReviewAPI: creating needs a credential, reading is public.
type ReviewAPI interface {
	CreateReview(ctx context.Context, credential string, req models.ReviewRequest) (models.Review, error)
	CollegeReviews(ctx context.Context, collegeID string) ([]models.Review, error)
	FeaturedReviews(ctx context.Context, limit int) ([]models.Review, error)
}

// Client is the full portal API surface.
type Client interface {
	AuthAPI
	CollegeAPI
	AdmissionAPI
	ReviewAPI
}
