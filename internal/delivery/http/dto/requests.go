package dto

type ApplyRequest struct {
	ResumeLink string `json:"resume_link" validate:"omitempty,url,max=2048"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,max=32"`
}

type ListJobsQuery struct {
	Text     string `query:"text" validate:"max=200"`
	Location string `query:"location" validate:"max=200"`
	Skills   string `query:"skills" validate:"max=1000"`
}

type RecommendationsQuery struct {
	Skills string `query:"skills" validate:"max=1000"`
}

type ListApplicationsQuery struct {
	Mode   string `query:"mode" validate:"omitempty,oneof=chronological relevance match_count"`
	Status string `query:"status" validate:"max=32"`
}
