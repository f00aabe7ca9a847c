// Package candidate implements candidate recruitment: validation, duplicate
// detection, offer assignment, transactional persistence, legacy sync and the
// paginated listing. It has no dependency on net/http; transports live in
// httpapi and grpcserver.
package candidate

import (
	"time"

	"jobmate/recruitment-service/internal/legacy"
)

// ─── External shape ───────────────────────────────────────────────────────────

// Candidate is the JSON shape accepted from and returned to clients.
type Candidate struct {
	FirstName                   string            `json:"firstName"`
	LastName                    string            `json:"lastName"`
	Email                       string            `json:"email"`
	Phone                       *string           `json:"phone"`
	YearsOfExperience           *int              `json:"yearsOfExperience"`
	AdditionalRecruiterNotes    *string           `json:"additionalRecruiterNotes"`
	RecruitmentStatus           RecruitmentStatus `json:"recruitmentStatus"`
	DateOfConsentForRecruitment *Date             `json:"dateOfConsentForRecruitment"`
	CreatedAt                   *time.Time        `json:"createdAt,omitempty"`
	JobOffers                   []JobOffer        `json:"jobOffers"`
}

// JobOffer is an open position as exposed to clients.
type JobOffer struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	SalaryRange string `json:"salaryRange"`
	Location    string `json:"location"`
}

// CreateResult is returned by Service.Create.
type CreateResult struct {
	Message   string     `json:"message"`
	Candidate *Candidate `json:"candidate"`
}

// Page is one page of the candidate listing.
type Page struct {
	Data []Candidate `json:"data"`
	Meta PageMeta    `json:"meta"`
}

// PageMeta describes the requested page and the overall result size.
type PageMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func (c *Candidate) legacyPayload() legacy.Payload {
	return legacy.Payload{FirstName: c.FirstName, LastName: c.LastName, Email: c.Email}
}

// ─── Storage shape ────────────────────────────────────────────────────────────

// candidateRow mirrors a row of the candidate table.
type candidateRow struct {
	FirstName                   string     `db:"first_name"`
	LastName                    string     `db:"last_name"`
	Email                       string     `db:"email"`
	Phone                       *string    `db:"phone"`
	YearsOfExperience           *int       `db:"years_of_experience"`
	AdditionalRecruiterNotes    *string    `db:"additional_recruiter_notes"`
	RecruitmentStatus           *string    `db:"recruitment_status"`
	DateOfConsentForRecruitment *time.Time `db:"date_of_consent_for_recruitment"`
	CreatedAt                   *time.Time `db:"created_at"`
}

// offerRow mirrors a row of the JobOffer table.
type offerRow struct {
	ID          int64   `db:"id"`
	Title       string  `db:"title"`
	Description *string `db:"description"`
	SalaryRange *string `db:"salary_range"`
	Location    *string `db:"location"`
}

func (r candidateRow) toCandidate() Candidate {
	c := Candidate{
		FirstName:                   r.FirstName,
		LastName:                    r.LastName,
		Email:                       r.Email,
		Phone:                       r.Phone,
		YearsOfExperience:           r.YearsOfExperience,
		AdditionalRecruiterNotes:    r.AdditionalRecruiterNotes,
		DateOfConsentForRecruitment: dateFromTime(r.DateOfConsentForRecruitment),
		CreatedAt:                   r.CreatedAt,
		JobOffers:                   []JobOffer{},
	}
	if r.RecruitmentStatus != nil {
		c.RecruitmentStatus = RecruitmentStatus(*r.RecruitmentStatus)
	}
	return c
}

func (r offerRow) toJobOffer() JobOffer {
	return JobOffer{
		ID:          r.ID,
		Title:       r.Title,
		Description: deref(r.Description),
		SalaryRange: deref(r.SalaryRange),
		Location:    deref(r.Location),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nullIfEmpty stores absent and empty optional text as NULL.
func nullIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
