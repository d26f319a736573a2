package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/collegeportal/internal/common"
)

type AdmissionStatus string

const (
	AdmissionPending  AdmissionStatus = "pending"
	AdmissionApproved AdmissionStatus = "approved"
	AdmissionRejected AdmissionStatus = "rejected"
)

// AdmissionRequest is the application form submitted for one college.
// DateOfBirth is YYYY-MM-DD.
type AdmissionRequest struct {
	CandidateName  string `json:"candidateName"`
	CandidateEmail string `json:"candidateEmail"`
	CandidatePhone string `json:"candidatePhone"`
	Address        string `json:"address"`
	DateOfBirth    string `json:"dateOfBirth"`
	Subject        string `json:"subject"`
	Image          string `json:"image,omitempty"`
	College        string `json:"college"`
}

func (r AdmissionRequest) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"candidate name", r.CandidateName},
		{"candidate email", r.CandidateEmail},
		{"candidate phone", r.CandidatePhone},
		{"address", r.Address},
		{"date of birth", r.DateOfBirth},
		{"subject", r.Subject},
		{"college", r.College},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", common.ErrValidation, f.name)
		}
	}
	if err := validateEmail(r.CandidateEmail); err != nil {
		return err
	}
	if _, err := time.Parse(time.DateOnly, r.DateOfBirth); err != nil {
		return fmt.Errorf("%w: date of birth must be YYYY-MM-DD", common.ErrValidation)
	}
	return nil
}

// AdmissionCollege is the college as embedded in an admission record.
type AdmissionCollege struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// Admission is a submitted application as listed under "my college".
type Admission struct {
	ID             string           `json:"_id"`
	CandidateName  string           `json:"candidateName"`
	CandidateEmail string           `json:"candidateEmail"`
	CandidatePhone string           `json:"candidatePhone"`
	Address        string           `json:"address"`
	DateOfBirth    string           `json:"dateOfBirth"`
	Subject        string           `json:"subject"`
	Image          string           `json:"image,omitempty"`
	College        AdmissionCollege `json:"college"`
	Status         AdmissionStatus  `json:"status"`
	CreatedAt      time.Time        `json:"createdAt"`
}
