package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/collegeportal/internal/client/models"
)

// Apply fills in an admission application: "apply [college id]". Without an
// id the user picks from the catalogue. Name, email, address and photo are
// prefilled from the profile.
func (a *App) Apply(ctx context.Context, args []string) error {
	target := "/admission"
	if len(args) > 0 {
		target += "/" + args[0]
	}
	return a.protected(ctx, target, func(ctx context.Context) error {
		collegeID := ""
		if len(args) > 0 {
			collegeID = args[0]
		} else {
			opts, err := a.colleges.Options(ctx)
			if err != nil {
				return err
			}
			if len(opts) == 0 {
				printlnFn("No colleges to apply to")
				return nil
			}
			for i, c := range opts {
				printlnFn(i+1, c.Name)
			}
			i, ok, err := pick(a.reader, "Pick a college (empty to cancel)", len(opts), a.out)
			if err != nil || !ok {
				return err
			}
			collegeID = opts[i].ID
		}

		req := a.admissions.Draft(collegeID)
		fields := []struct {
			prompt string
			dst    *string
		}{
			{"Full name", &req.CandidateName},
			{"Email", &req.CandidateEmail},
			{"Phone number", &req.CandidatePhone},
			{"Date of birth (YYYY-MM-DD)", &req.DateOfBirth},
			{"Subject", &req.Subject},
			{"Address", &req.Address},
			{"Photo URL (optional)", &req.Image},
		}
		for _, f := range fields {
			v, err := GetTextWithDefault(a.reader, f.prompt, *f.dst, a.out)
			if err != nil {
				return err
			}
			*f.dst = v
		}

		adm, err := a.admissions.Apply(ctx, req)
		if err != nil {
			return err
		}
		printlnFn(fmt.Sprintf("Application submitted (%s). Type 'mycollege' to follow it.", statusOrPending(adm.Status)))
		return nil
	})
}

// MyCollege lists the user's applications with their status.
func (a *App) MyCollege(ctx context.Context) error {
	return a.protected(ctx, "/my-college", func(ctx context.Context) error {
		mine, err := a.admissions.Mine(ctx)
		if err != nil {
			return err
		}
		if len(mine) == 0 {
			printlnFn("You have not applied anywhere yet. Type 'apply' to start.")
			return nil
		}
		for _, adm := range mine {
			printlnFn(fmt.Sprintf("[%s] %s: %s, %s", adm.College.ID, adm.College.Name, adm.Subject, statusOrPending(adm.Status)))
		}
		return nil
	})
}

// Review rates a college the user was admitted to: "review [college id]".
func (a *App) Review(ctx context.Context, args []string) error {
	return a.protected(ctx, "/my-college/review", func(ctx context.Context) error {
		collegeID := ""
		if len(args) > 0 {
			collegeID = args[0]
		} else {
			mine, err := a.admissions.Mine(ctx)
			if err != nil {
				return err
			}
			var approved []models.AdmissionCollege
			for _, adm := range mine {
				if adm.Status == models.AdmissionApproved {
					approved = append(approved, adm.College)
				}
			}
			if len(approved) == 0 {
				printlnFn("You can review a college once your admission is approved.")
				return nil
			}
			for i, c := range approved {
				printlnFn(i+1, c.Name)
			}
			i, ok, err := pick(a.reader, "Pick a college (empty to cancel)", len(approved), a.out)
			if err != nil || !ok {
				return err
			}
			collegeID = approved[i].ID
		}

		rating, ok, err := pick(a.reader, fmt.Sprintf("Rating (%d-%d)", models.MinRating, models.MaxRating), models.MaxRating, a.out)
		if err != nil || !ok {
			return err
		}
		comment, err := GetMultiline(a.reader, "Your review", a.out)
		if err != nil {
			return err
		}

		if _, err := a.reviews.Submit(ctx, models.ReviewRequest{Rating: rating + 1, Comment: comment, College: collegeID}); err != nil {
			return err
		}
		printlnFn("Thank you for your review!")
		return nil
	})
}

func statusOrPending(s models.AdmissionStatus) models.AdmissionStatus {
	if s == "" {
		return models.AdmissionPending
	}
	return s
}
