package models

import "time"

type SkillSource string

const (
	SkillSourceManual   SkillSource = "manual"
	SkillSourceDocument SkillSource = "document"
)

type UserSkill struct {
	ID        string      `json:"id"`
	SkillID   string      `json:"skill"`
	SkillName string      `json:"skill_name"`
	Source    SkillSource `json:"source"`
	CreatedAt time.Time   `json:"created_at"`
}

type SkillExtraction struct {
	Extracted  []string    `json:"extracted"`
	UserSkills []UserSkill `json:"user_skills"`
}
