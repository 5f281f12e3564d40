package models

type Role struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	MatchScore  *float64 `json:"match_score,omitempty"`
}

// MatchPercent rounds the 0..1 match score to a whole percent.
func (r Role) MatchPercent() (int, bool) {
	if r.MatchScore == nil {
		return 0, false
	}
	return ScoreToPercent(*r.MatchScore), true
}

type PrioritizedSkill struct {
	SkillID    string  `json:"skill_id"`
	SkillName  string  `json:"skill_name"`
	Importance float64 `json:"importance"`
}

type Course struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Provider      string   `json:"provider"`
	URL           string   `json:"url"`
	SkillsTaught  []string `json:"skills_taught,omitempty"`
	MatchedSkills []string `json:"matched_skills"`
}

type LearningPlan struct {
	MissingSkills []string `json:"missing_skills"`
	Courses       []Course `json:"courses"`
}
