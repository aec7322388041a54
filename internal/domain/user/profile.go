package user

import "jobboard/internal/domain/skill"

type Seeker struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	CountryName string    `json:"country_name"`
	Resume      string    `json:"resume"`
	Skills      skill.Set `json:"skills"`
}

type Recruiter struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	RecruiterName  string `json:"recruiter_name"`
	CompanyName    string `json:"company_name"`
	CompanyWebsite string `json:"company_website"`
	CompanyPlace   string `json:"company_place"`
	Phone          string `json:"phone"`
	CompanyLogo    string `json:"company_logo"`
}
