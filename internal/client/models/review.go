package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/collegeportal/internal/common"
)

const (
	MinRating = 1
	MaxRating = 5
)

type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	College string `json:"college"`
}

func (r ReviewRequest) Validate() error {
	if r.Rating < MinRating || r.Rating > MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", common.ErrValidation, MinRating, MaxRating)
	}
	if strings.TrimSpace(r.Comment) == "" {
		return fmt.Errorf("%w: comment is required", common.ErrValidation)
	}
	if strings.TrimSpace(r.College) == "" {
		return fmt.Errorf("%w: college is required", common.ErrValidation)
	}
	return nil
}

// ReviewAuthor is the public part of the reviewing user.
type ReviewAuthor struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// ReviewCollege is the college as embedded in a review listing.
type ReviewCollege struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type Review struct {
	ID        string        `json:"_id"`
	Rating    int           `json:"rating"`
	Comment   string        `json:"comment"`
	College   ReviewCollege `json:"college"`
	User      ReviewAuthor  `json:"user"`
	CreatedAt time.Time     `json:"createdAt"`
}
