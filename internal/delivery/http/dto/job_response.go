package dto

type JobResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	Location      string   `json:"location"`
	Salary        string   `json:"salary,omitempty"`
	Description   string   `json:"description,omitempty"`
	Skills        []string `json:"skills"`
	RecruiterID   string   `json:"recruiter_id"`
	RecruiterName string   `json:"recruiter_name,omitempty"`
	PostedAt      string   `json:"posted_at,omitempty"`
	ValidUntil    string   `json:"valid_until,omitempty"`
}

type PostedJobResponse struct {
	JobResponse
	Status string `json:"status"`
}

type MatchResponse struct {
	MatchedCount  int      `json:"matched_count"`
	RequiredCount int      `json:"required_count"`
	ScorePercent  float64  `json:"score_percent"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
}

type RecommendedJobResponse struct {
	JobResponse
	Match MatchResponse `json:"match"`
}

type FilterOptionsResponse struct {
	Locations []string `json:"locations"`
	Skills    []string `json:"skills"`
}

type SavedJobResponse struct {
	JobResponse
	SavedID string `json:"saved_id"`
	SavedAt string `json:"saved_at"`
	Partial bool   `json:"partial,omitempty"`
}
