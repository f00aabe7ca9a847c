package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"jobmate/recruitment-service/internal/candidate"
)

func TestRenderCandidates(t *testing.T) {
	color.NoColor = true

	years := 5
	created := time.Date(2024, 3, 24, 10, 30, 0, 0, time.UTC)
	page := &candidate.Page{
		Data: []candidate.Candidate{{
			FirstName:         "John",
			LastName:          "Doe",
			Email:             "john@example.com",
			YearsOfExperience: &years,
			RecruitmentStatus: candidate.StatusAccepted,
			CreatedAt:         &created,
			JobOffers: []candidate.JobOffer{
				{ID: 1, Title: "Go Developer"},
				{ID: 2, Title: "SRE"},
			},
		}},
		Meta: candidate.PageMeta{Page: 1, Limit: 10, Total: 1, TotalPages: 1},
	}

	var buf bytes.Buffer
	renderCandidates(&buf, page)
	out := buf.String()

	assert.Contains(t, out, "john@example.com")
	assert.Contains(t, out, "John Doe")
	assert.Contains(t, out, "accepted")
	assert.Contains(t, out, "5y")
	assert.Contains(t, out, "Go Developer, SRE")
	assert.Contains(t, out, "2024-03-24 10:30:00")
	assert.Contains(t, out, "Page 1 of 1 (1 candidates, 1 of 1 shown closed)")
}

func TestRenderCandidates_CountsClosedStatuses(t *testing.T) {
	color.NoColor = true

	page := &candidate.Page{
		Data: []candidate.Candidate{
			{Email: "a@example.com", RecruitmentStatus: candidate.StatusNew},
			{Email: "b@example.com", RecruitmentStatus: candidate.StatusInInterviews},
			{Email: "c@example.com", RecruitmentStatus: candidate.StatusRejected},
			{Email: "d@example.com", RecruitmentStatus: candidate.StatusAccepted},
		},
		Meta: candidate.PageMeta{Page: 2, Limit: 4, Total: 9, TotalPages: 3},
	}

	var buf bytes.Buffer
	renderCandidates(&buf, page)

	assert.Contains(t, buf.String(), "Page 2 of 3 (9 candidates, 2 of 4 shown closed)")
}

func TestRenderCandidates_EmptyPage(t *testing.T) {
	var buf bytes.Buffer
	renderCandidates(&buf, &candidate.Page{Data: []candidate.Candidate{}, Meta: candidate.PageMeta{Page: 3, Limit: 10, Total: 12, TotalPages: 2}})

	assert.Equal(t, "No candidates on page 3 (total 12).\n", buf.String())
}

func TestLabels(t *testing.T) {
	color.NoColor = true

	assert.Equal(t, "-", experienceLabel(nil))
	assert.Equal(t, "-", createdLabel(nil))
	assert.Equal(t, "", offerTitles(nil))
	assert.Equal(t, "new", statusLabel(candidate.StatusNew))
	assert.Equal(t, "rejected", statusLabel(candidate.StatusRejected))
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)

	assert.Equal(t, "recruitment-service v"+version+"\n", buf.String())
}
