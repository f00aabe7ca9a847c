package candidate

import (
	"regexp"

	"jobmate/recruitment-service/internal/apperr"
)

// emailPattern accepts any value containing x@y.z with no whitespace in x, y or z.
var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// Validate checks a creation payload and returns the first failure, checking
// first name, last name, email presence, email format and years of experience
// in that order.
func Validate(c *Candidate) error {
	if c.FirstName == "" {
		return apperr.Validation("First name is required")
	}
	if c.LastName == "" {
		return apperr.Validation("Last name is required")
	}
	if c.Email == "" {
		return apperr.Validation("Email is required")
	}
	if !emailPattern.MatchString(c.Email) {
		return apperr.Validation("Invalid email format")
	}
	if c.YearsOfExperience != nil && *c.YearsOfExperience < 0 {
		return apperr.Validation("Years of experience must be a non-negative number")
	}
	return nil
}

// normalizeStatus applies the default status and rejects unknown ones.
func normalizeStatus(c *Candidate) error {
	if c.RecruitmentStatus == "" {
		c.RecruitmentStatus = DefaultStatus
		return nil
	}
	if _, err := ParseStatus(string(c.RecruitmentStatus)); err != nil {
		return apperr.Validation("Invalid recruitment status")
	}
	return nil
}
