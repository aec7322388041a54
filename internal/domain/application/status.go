// Package application holds the job application record and its status
// machine.
//
//	Pending ──► Reviewed ──► Accepted
//	   │           │    ╲
//	   └───────────┴─────► Rejected
//
// Any known status may move to Reviewed, Accepted or Rejected, including a
// re-stamp of the current one. Nothing moves back to Pending.
package application

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusReviewed Status = "Reviewed"
	StatusAccepted Status = "Accepted"
	StatusRejected Status = "Rejected"
)

var knownStatuses = []Status{StatusPending, StatusReviewed, StatusAccepted, StatusRejected}

// ParseStatus matches s case-insensitively against the known statuses.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, st := range knownStatuses {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

func (s Status) Known() bool {
	for _, st := range knownStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// ValidTransition returns true when a recruiter may move an application from
// one status to another.
func ValidTransition(from, to Status) bool {
	if !from.Known() {
		return false
	}
	switch to {
	case StatusReviewed, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}

type Application struct {
	ID            string    `json:"id"`
	JobID         string    `json:"job_id"`
	SeekerID      string    `json:"seeker_id"`
	RecruiterID   string    `json:"recruiter_id"`
	Status        Status    `json:"status"`
	AppliedAt     time.Time `json:"applied_at"`
	ResumeLink    string    `json:"resume_link"`
	SeekerName    string    `json:"seeker_name"`
	RecruiterName string    `json:"recruiter_name"`
}

// CompositeID is the document id of the single application a seeker may
// hold for a job. It is unambiguous only for job ids accepted by
// ValidJobID.
func CompositeID(jobID, seekerID string) string {
	return jobID + "_" + seekerID
}

// ValidJobID reports whether jobID may be part of a composite id. A job id
// holding the separator would let ("a_b", "c") and ("a", "b_c") collide.
func ValidJobID(jobID string) bool {
	return jobID != "" && !strings.Contains(jobID, "_")
}
