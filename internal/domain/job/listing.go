package job

import (
	"time"

	"jobboard/internal/domain/skill"
)

type Listing struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Company       string    `json:"company"`
	Location      string    `json:"location"`
	Salary        string    `json:"salary"`
	Skills        skill.Set `json:"skills"`
	RecruiterID   string    `json:"recruiter_id"`
	RecruiterName string    `json:"recruiter_name"`
	Description   string    `json:"description"`
	PostedAt      time.Time `json:"posted_at"`
	ValidUntil    time.Time `json:"valid_until"`
}

// IsActive reports whether the listing still accepts applications at now.
// A listing without an expiry is never active.
func (l Listing) IsActive(now time.Time) bool {
	return l.ValidUntil.After(now)
}
