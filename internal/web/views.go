package web

import (
	"github.com/maxaizer/career-dashboard/internal/domain/models"
	"github.com/maxaizer/career-dashboard/internal/pages"
)

type layoutView struct {
	Title  string
	Active pages.Route
	User   *models.User
}

type errorView struct {
	layoutView
	Code    int
	Message string
}

type loginView struct {
	layoutView
	Email string
	Error string
}

type registerView struct {
	layoutView
	Email string
	Role  models.UserRole
	Error string
}

type overviewView struct {
	layoutView
	Loading       bool
	Summary       models.DashboardSummary
	ShowSkillGaps bool
	LearningPlan  []models.Course
}

type documentsView struct {
	layoutView
	Documents []models.Document
	Notice    string
	Error     string
}

type skillsView struct {
	layoutView
	Skills []models.UserSkill
	Input  string
	Error  string
}

type rolesView struct {
	layoutView
	Roles    []models.Role
	Message  string
	Detail   pages.RoleDetail
	Selected bool
}

type jobsView struct {
	layoutView
	Matched []models.Job
	All     []models.Job
}

type chatView struct {
	layoutView
	Messages []models.ChatMessage
	Input    string
}
