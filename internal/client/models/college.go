package models

// CollegeSummary is the narrow projection used by search suggestions.
type CollegeSummary struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// College is the full catalogue entry.
type College struct {
	ID              string   `json:"_id"`
	Name            string   `json:"name"`
	Image           string   `json:"image,omitempty"`
	Rating          float64  `json:"rating,omitempty"`
	AdmissionDate   string   `json:"admissionDate,omitempty"`
	ResearchCount   int      `json:"researchCount,omitempty"`
	Events          []string `json:"events,omitempty"`
	Sports          []string `json:"sports,omitempty"`
	ResearchHistory []string `json:"researchHistory,omitempty"`
}

func (c College) Summary() CollegeSummary {
	return CollegeSummary{ID: c.ID, Name: c.Name}
}

// Pagination is the paging block of list responses.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// HasMore reports whether pages after the current one exist.
func (p Pagination) HasMore() bool {
	return p.Page < p.Pages
}

// CollegePage is one page of the catalogue.
type CollegePage struct {
	Colleges   []College
	Pagination Pagination
}

// CollegeQuery selects a page of the catalogue. Zero values are omitted.
type CollegeQuery struct {
	Page   int
	Limit  int
	Search string
}
