package usecase

import (
	"context"
	"testing"
	"time"

	"jobboard/internal/repository"
	"jobboard/internal/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_Recruiter(t *testing.T) {
	s := memory.New(10)
	require.NoError(t, s.Put(repository.CollectionRecruiters, "r1", map[string]any{
		"recruiterName": "Rita",
		"companyName":   "Acme",
	}))
	putJob(t, s, "j1", nil)
	putJob(t, s, "j2", map[string]any{repository.FieldValidUntil: testNow.Add(-time.Hour)})
	putJob(t, s, "j3", map[string]any{repository.FieldRecruiterID: "r2"})
	putApplication(t, s, "j1", "u1", "Pending", testNow)
	putApplication(t, s, "j2", "u2", "Accepted", testNow)

	d := NewDashboard(s)
	d.now = fixedNow

	got, err := d.Recruiter(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, RecruiterDashboard{RecruiterName: "Rita", CompanyName: "Acme", ActiveJobs: 1, TotalApplicants: 2}, got)

	got, err = d.Recruiter(context.Background(), "r9")
	require.NoError(t, err)
	assert.Equal(t, RecruiterDashboard{RecruiterName: DefaultRecruiterName}, got)
}

func TestDashboard_Seeker(t *testing.T) {
	s := memory.New(10)
	putSeeker(t, s, "u1", "Ana")
	putApplication(t, s, "j1", "u1", "Accepted", testNow)
	putApplication(t, s, "j2", "u1", "Rejected", testNow)
	putApplication(t, s, "j3", "u1", "Pending", testNow)
	putApplication(t, s, "j1", "u2", "Accepted", testNow)

	d := NewDashboard(s)
	got, err := d.Seeker(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, SeekerDashboard{Name: "Ana", ApplicationsSent: 3, Accepted: 1}, got)

	got, err = d.Seeker(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, SeekerDashboard{Name: DefaultSeekerTitle}, got)

	_, err = d.Seeker(context.Background(), " ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
