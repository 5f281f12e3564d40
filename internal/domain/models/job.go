package models

type Job struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	Location      string   `json:"location"`
	URL           string   `json:"url"`
	SalaryMin     *float64 `json:"salary_min,omitempty"`
	SalaryMax     *float64 `json:"salary_max,omitempty"`
	Skills        []string `json:"skills,omitempty"`
	MatchedSkills []string `json:"matched_skills,omitempty"`
	AllSkills     []string `json:"all_skills,omitempty"`
}
