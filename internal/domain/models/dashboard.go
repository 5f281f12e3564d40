package models

import (
	"bytes"
	"encoding/json"
	"math"
)

type SkillShare struct {
	Skill string `json:"skill"`
}

type RankedRole struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	MatchScore float64 `json:"match_score"`
}

type SkillGap struct {
	MissingSkills    []string           `json:"missing_skills"`
	CoveragePercent  float64            `json:"coverage_percent"`
	LearningPriority []PrioritizedSkill `json:"learning_priority,omitempty"`
}

// UnmarshalJSON accepts an empty array, which the API sends when there is no top role.
func (g *SkillGap) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || trimmed[0] == '[' || bytes.Equal(trimmed, []byte("null")) {
		*g = SkillGap{}
		return nil
	}

	type alias SkillGap
	var aux alias
	if err := json.Unmarshal(trimmed, &aux); err != nil {
		return err
	}
	*g = SkillGap(aux)
	return nil
}

type JobMatch struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	URL           string   `json:"url"`
	MatchedSkills []string `json:"matched_skills"`
}

type DashboardSummary struct {
	SkillDistribution []SkillShare `json:"skill_distribution"`
	MatchScore        float64      `json:"match_score"`
	TopRoles          []RankedRole `json:"top_roles"`
	SkillGaps         SkillGap     `json:"skill_gaps"`
	LearningPlan      []Course     `json:"learning_plan"`
	JobMatches        []JobMatch   `json:"job_matches"`
}

func (d DashboardSummary) MatchPercent() int {
	return ScoreToPercent(d.MatchScore)
}

func (d DashboardSummary) HasSkillGaps() bool {
	return len(d.SkillGaps.MissingSkills) > 0
}

func ScoreToPercent(score float64) int {
	return int(math.Round(score * 100))
}
