package dto

type RecruiterDashboardResponse struct {
	RecruiterName   string `json:"recruiter_name"`
	CompanyName     string `json:"company_name,omitempty"`
	ActiveJobs      int    `json:"active_jobs"`
	TotalApplicants int    `json:"total_applicants"`
}

type SeekerDashboardResponse struct {
	Name             string `json:"name"`
	ApplicationsSent int    `json:"applications_sent"`
	Accepted         int    `json:"accepted"`
}
