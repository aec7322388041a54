package dto

type ApplicationResponse struct {
	ID            string `json:"id"`
	JobID         string `json:"job_id"`
	SeekerID      string `json:"seeker_id"`
	RecruiterID   string `json:"recruiter_id"`
	Status        string `json:"status"`
	AppliedAt     string `json:"applied_at"`
	ResumeLink    string `json:"resume_link,omitempty"`
	SeekerName    string `json:"seeker_name,omitempty"`
	RecruiterName string `json:"recruiter_name,omitempty"`
}

type ApplicantResponse struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email,omitempty"`
	Phone  string   `json:"phone,omitempty"`
	Resume string   `json:"resume,omitempty"`
	Skills []string `json:"skills"`
}

type RankedApplicationResponse struct {
	ApplicationResponse
	JobTitle  string            `json:"job_title"`
	Applicant ApplicantResponse `json:"applicant"`
	Match     MatchResponse     `json:"match"`
	Partial   bool              `json:"partial,omitempty"`
}

type AppliedJobResponse struct {
	Application ApplicationResponse `json:"application"`
	Job         JobResponse         `json:"job"`
	Partial     bool                `json:"partial,omitempty"`
}
