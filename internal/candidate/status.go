package candidate

import "fmt"

// RecruitmentStatus values mirror the recruitment_status column.
type RecruitmentStatus string

const (
	StatusNew          RecruitmentStatus = "new"
	StatusInInterviews RecruitmentStatus = "in interviews"
	StatusAccepted     RecruitmentStatus = "accepted"
	StatusRejected     RecruitmentStatus = "rejected"
)

// DefaultStatus is assigned when a payload carries no status.
const DefaultStatus = StatusNew

// AllStatuses lists every status in pipeline order.
var AllStatuses = []RecruitmentStatus{StatusNew, StatusInInterviews, StatusAccepted, StatusRejected}

// ParseStatus converts a raw string to a RecruitmentStatus, returning an error
// for unknown values. Matching is exact.
func ParseStatus(s string) (RecruitmentStatus, error) {
	st := RecruitmentStatus(s)
	switch st {
	case StatusNew, StatusInInterviews, StatusAccepted, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown recruitment status %q", s)
}

// IsFinal is true for statuses that close the recruitment.
func IsFinal(s RecruitmentStatus) bool { return s == StatusAccepted || s == StatusRejected }
