package pages

import (
	"context"
	"io"

	"github.com/maxaizer/career-dashboard/internal/clients/api"
	"github.com/maxaizer/career-dashboard/internal/domain/models"
)

type authAPI interface {
	Login(ctx context.Context, credentials api.Credentials) (models.User, error)
	Register(ctx context.Context, registration api.Registration) (models.User, error)
}

type dashboardAPI interface {
	Dashboard(ctx context.Context) (models.DashboardSummary, error)
}

type documentsAPI interface {
	Documents(ctx context.Context) ([]models.Document, error)
	PresignUpload(ctx context.Context, fileName string) (models.PresignedUpload, error)
	ConfirmUpload(ctx context.Context, objectKey string) (models.Document, error)
	ExtractSkills(ctx context.Context, documentID string, useLLM bool) (models.SkillExtraction, error)
}

type fileUploader interface {
	Put(ctx context.Context, upload models.PresignedUpload, contentType string, body io.Reader, size int64) error
}

type skillsAPI interface {
	Skills(ctx context.Context) ([]models.UserSkill, error)
	AddSkill(ctx context.Context, name string) (models.UserSkill, error)
	RemoveSkill(ctx context.Context, id string) error
}

type rolesAPI interface {
	TopRoles(ctx context.Context) (api.RoleRecommendations, error)
	SkillGap(ctx context.Context, roleID string) (models.SkillGap, error)
	LearningPlan(ctx context.Context, roleID string) (models.LearningPlan, error)
}

type jobsAPI interface {
	MatchedJobs(ctx context.Context) ([]models.Job, error)
	Jobs(ctx context.Context, query api.JobsQuery) ([]models.Job, error)
}

type chatAPI interface {
	Chat(ctx context.Context, conversation []models.ChatMessage) (models.ChatMessage, error)
}
