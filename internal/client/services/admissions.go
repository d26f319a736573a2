package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/collegeportal/internal/client/client"
	"github.com/dmitrijs2005/collegeportal/internal/client/models"
)

type AdmissionService interface {
	// Draft returns an application prefilled from the signed-in user.
	Draft(collegeID string) models.AdmissionRequest
	Apply(ctx context.Context, req models.AdmissionRequest) (models.Admission, error)
	Mine(ctx context.Context) ([]models.Admission, error)
}

type admissionService struct {
	api  client.AdmissionAPI
	auth Authorizer
}

func NewAdmissionService(api client.AdmissionAPI, auth Authorizer) AdmissionService {
	return &admissionService{api: api, auth: auth}
}

func (s *admissionService) Draft(collegeID string) models.AdmissionRequest {
	req := models.AdmissionRequest{College: collegeID}
	if u := s.auth.Snapshot().User; u != nil {
		req.CandidateName = u.Name
		req.CandidateEmail = u.Email
		req.Address = u.Address
		req.Image = u.Avatar
	}
	return req
}

func (s *admissionService) Apply(ctx context.Context, req models.AdmissionRequest) (models.Admission, error) {
	if err := req.Validate(); err != nil {
		return models.Admission{}, err
	}
	var res models.Admission
	err := s.auth.Authorized(ctx, func(ctx context.Context, credential string) error {
		var err error
		res, err = s.api.CreateAdmission(ctx, credential, req)
		return err
	})
	if err != nil {
		return models.Admission{}, fmt.Errorf("apply: %w", err)
	}
	return res, nil
}

func (s *admissionService) Mine(ctx context.Context) ([]models.Admission, error) {
	var res []models.Admission
	err := s.auth.Authorized(ctx, func(ctx context.Context, credential string) error {
		var err error
		res, err = s.api.MyAdmissions(ctx, credential)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("my admissions: %w", err)
	}
	return res, nil
}
