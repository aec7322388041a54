package savedjob

import "time"

// Ref is a seeker's bookmark of a job posting.
type Ref struct {
	ID      string    `json:"id"`
	UserID  string    `json:"user_id"`
	JobID   string    `json:"job_id"`
	SavedAt time.Time `json:"saved_at"`
}

// RefID is the document id of userID's single bookmark of jobID. Job ids
// never contain "_", so the pair can be read back unambiguously.
func RefID(userID, jobID string) string {
	return userID + "_" + jobID
}
