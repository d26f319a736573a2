package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/collegeportal/internal/client/models"
)

// Colleges lists one page of the catalogue: "colleges [page]".
func (a *App) Colleges(ctx context.Context, args []string) error {
	page := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			printlnFn("Usage: colleges [page]")
			return nil
		}
		page = n
	}

	res, err := a.colleges.List(ctx, page)
	if err != nil {
		return err
	}
	if len(res.Colleges) == 0 {
		printlnFn("No colleges found")
		return nil
	}
	for _, c := range res.Colleges {
		printCollegeLine(c)
	}
	p := res.Pagination
	if p.Pages > 0 {
		printlnFn(fmt.Sprintf("Page %d of %d (%d colleges)", p.Page, p.Pages, p.Total))
	}
	if p.HasMore() {
		printlnFn(fmt.Sprintf("Type 'colleges %d' for more", p.Page+1))
	}
	return nil
}

// Featured shows the featured colleges and reviews.
func (a *App) Featured(ctx context.Context) error {
	cs, err := a.colleges.Featured(ctx)
	if err != nil {
		return err
	}
	printlnFn("Featured colleges:")
	for _, c := range cs {
		printCollegeLine(c)
	}

	rs, err := a.reviews.Featured(ctx)
	if err != nil {
		return err
	}
	if len(rs) > 0 {
		printlnFn("What students say:")
		for _, r := range rs {
			printReview(r, true)
		}
	}
	return nil
}

// College shows the details of one college together with its reviews.
func (a *App) College(ctx context.Context, args []string) error {
	c, err := a.colleges.Details(ctx, args[0])
	if err != nil {
		return err
	}

	printlnFn(c.Name)
	if c.Rating > 0 {
		printlnFn(fmt.Sprintf("Rating:          %.1f", c.Rating))
	}
	if c.AdmissionDate != "" {
		printlnFn("Admission date: ", c.AdmissionDate)
	}
	if c.ResearchCount > 0 {
		printlnFn("Research papers:", c.ResearchCount)
	}
	printList("Events", c.Events)
	printList("Sports", c.Sports)
	printList("Research", c.ResearchHistory)

	rs, err := a.reviews.ForCollege(ctx, c.ID)
	if err != nil {
		return err
	}
	if len(rs) == 0 {
		printlnFn("No reviews yet")
		return nil
	}
	printlnFn("Reviews:")
	for _, r := range rs {
		printReview(r, false)
	}
	return nil
}

// Reviews prints the reviews of one college, or the featured ones.
func (a *App) Reviews(ctx context.Context, args []string) error {
	var (
		rs  []models.Review
		err error
	)
	if len(args) == 0 {
		rs, err = a.reviews.Featured(ctx)
	} else {
		rs, err = a.reviews.ForCollege(ctx, args[0])
	}
	if err != nil {
		return err
	}
	if len(rs) == 0 {
		printlnFn("No reviews yet")
		return nil
	}
	for _, r := range rs {
		printReview(r, len(args) == 0)
	}
	return nil
}

func printCollegeLine(c models.College) {
	line := fmt.Sprintf("[%s] %s", c.ID, c.Name)
	if c.Rating > 0 {
		line += fmt.Sprintf(" (%.1f★)", c.Rating)
	}
	if c.AdmissionDate != "" {
		line += ", admission " + c.AdmissionDate
	}
	printlnFn(line)
}

func printList(title string, items []string) {
	if len(items) == 0 {
		return
	}
	printlnFn(title + ":")
	for _, it := range items {
		printlnFn("  -", it)
	}
}

func printReview(r models.Review, withCollege bool) {
	n := min(max(r.Rating, 0), models.MaxRating)
	stars := strings.Repeat("★", n) + strings.Repeat("☆", models.MaxRating-n)
	head := fmt.Sprintf("%s %s", stars, r.User.Name)
	if withCollege && r.College.Name != "" {
		head += " on " + r.College.Name
	}
	printlnFn(head)
	printlnFn("  " + r.Comment)
}
