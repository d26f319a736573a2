package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/collegeportal/internal/client/client"
	"github.com/dmitrijs2005/collegeportal/internal/client/models"
	"github.com/dmitrijs2005/collegeportal/internal/common"
)

const (
	// DefaultPageSize is the catalogue page size.
	DefaultPageSize = 6
	// FeaturedLimit is how many colleges the home view features.
	FeaturedLimit = 3
	// optionsLimit bounds the college picker of the application form.
	optionsLimit = 100
)

// CollegeService reads the public catalogue. None of its calls need a
// credential.
type CollegeService interface {
	List(ctx context.Context, page int) (models.CollegePage, error)
	Featured(ctx context.Context) ([]models.College, error)
	Details(ctx context.Context, id string) (models.College, error)
	// Options lists the colleges an application can be made to.
	Options(ctx context.Context) ([]models.CollegeSummary, error)
}

type collegeService struct {
	api      client.CollegeAPI
	pageSize int
}

// NewCollegeService returns a CollegeService over api. A non-positive
// pageSize falls back to DefaultPageSize.
func NewCollegeService(api client.CollegeAPI, pageSize int) CollegeService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &collegeService{api: api, pageSize: pageSize}
}

func (s *collegeService) List(ctx context.Context, page int) (models.CollegePage, error) {
	if page < 1 {
		page = 1
	}
	res, err := s.api.ListColleges(ctx, models.CollegeQuery{Page: page, Limit: s.pageSize})
	if err != nil {
		return models.CollegePage{}, fmt.Errorf("list colleges: %w", err)
	}
	return res, nil
}

func (s *collegeService) Featured(ctx context.Context) ([]models.College, error) {
	res, err := s.api.FeaturedColleges(ctx, FeaturedLimit)
	if err != nil {
		return nil, fmt.Errorf("featured colleges: %w", err)
	}
	return res, nil
}

func (s *collegeService) Details(ctx context.Context, id string) (models.College, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.College{}, fmt.Errorf("%w: college id is required", common.ErrValidation)
	}
	res, err := s.api.GetCollege(ctx, id)
	if err != nil {
		return models.College{}, fmt.Errorf("college %s: %w", id, err)
	}
	return res, nil
}

func (s *collegeService) Options(ctx context.Context) ([]models.CollegeSummary, error) {
	res, err := s.api.ListColleges(ctx, models.CollegeQuery{Limit: optionsLimit})
	if err != nil {
		return nil, fmt.Errorf("list colleges: %w", err)
	}
	out := make([]models.CollegeSummary, 0, len(res.Colleges))
	for _, c := range res.Colleges {
		out = append(out, c.Summary())
	}
	return out, nil
}
