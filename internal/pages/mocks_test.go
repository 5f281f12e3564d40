package pages

import (
	"context"
	"io"
	"sync/atomic"

	"github.com/maxaizer/career-dashboard/internal/clients/api"
	"github.com/maxaizer/career-dashboard/internal/domain/models"
	"github.com/stretchr/testify/mock"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) Login(ctx context.Context, credentials api.Credentials) (models.User, error) {
	args := m.Called(ctx, credentials)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *mockAPI) Register(ctx context.Context, registration api.Registration) (models.User, error) {
	args := m.Called(ctx, registration)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *mockAPI) Dashboard(ctx context.Context) (models.DashboardSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.DashboardSummary), args.Error(1)
}

func (m *mockAPI) Documents(ctx context.Context) ([]models.Document, error) {
	args := m.Called(ctx)
	documents, _ := args.Get(0).([]models.Document)
	return documents, args.Error(1)
}

func (m *mockAPI) PresignUpload(ctx context.Context, fileName string) (models.PresignedUpload, error) {
	args := m.Called(ctx, fileName)
	return args.Get(0).(models.PresignedUpload), args.Error(1)
}

func (m *mockAPI) ConfirmUpload(ctx context.Context, objectKey string) (models.Document, error) {
	args := m.Called(ctx, objectKey)
	return args.Get(0).(models.Document), args.Error(1)
}

func (m *mockAPI) ExtractSkills(ctx context.Context, documentID string, useLLM bool) (models.SkillExtraction, error) {
	args := m.Called(ctx, documentID, useLLM)
	return args.Get(0).(models.SkillExtraction), args.Error(1)
}

func (m *mockAPI) Put(ctx context.Context, upload models.PresignedUpload, contentType string, body io.Reader, size int64) error {
	args := m.Called(ctx, upload, contentType, body, size)
	return args.Error(0)
}

func (m *mockAPI) Skills(ctx context.Context) ([]models.UserSkill, error) {
	args := m.Called(ctx)
	skills, _ := args.Get(0).([]models.UserSkill)
	return skills, args.Error(1)
}

func (m *mockAPI) AddSkill(ctx context.Context, name string) (models.UserSkill, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(models.UserSkill), args.Error(1)
}

func (m *mockAPI) RemoveSkill(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockAPI) TopRoles(ctx context.Context) (api.RoleRecommendations, error) {
	args := m.Called(ctx)
	return args.Get(0).(api.RoleRecommendations), args.Error(1)
}

func (m *mockAPI) SkillGap(ctx context.Context, roleID string) (models.SkillGap, error) {
	args := m.Called(ctx, roleID)
	return args.Get(0).(models.SkillGap), args.Error(1)
}

func (m *mockAPI) LearningPlan(ctx context.Context, roleID string) (models.LearningPlan, error) {
	args := m.Called(ctx, roleID)
	return args.Get(0).(models.LearningPlan), args.Error(1)
}

func (m *mockAPI) MatchedJobs(ctx context.Context) ([]models.Job, error) {
	args := m.Called(ctx)
	jobs, _ := args.Get(0).([]models.Job)
	return jobs, args.Error(1)
}

func (m *mockAPI) Jobs(ctx context.Context, query api.JobsQuery) ([]models.Job, error) {
	args := m.Called(ctx, query)
	jobs, _ := args.Get(0).([]models.Job)
	return jobs, args.Error(1)
}

func (m *mockAPI) Chat(ctx context.Context, conversation []models.ChatMessage) (models.ChatMessage, error) {
	args := m.Called(ctx, conversation)
	return args.Get(0).(models.ChatMessage), args.Error(1)
}

func (m *mockAPI) calledMethods() []string {
	methods := make([]string, 0, len(m.Calls))
	for _, call := range m.Calls {
		methods = append(methods, call.Method)
	}
	return methods
}

// blockingAPI holds every write until release is closed.
type blockingAPI struct {
	started chan struct{}
	release chan struct{}
	writes  atomic.Int32
	skills  []models.UserSkill
}

func newBlockingAPI() *blockingAPI {
	return &blockingAPI{started: make(chan struct{}, 10), release: make(chan struct{})}
}

func (b *blockingAPI) block() {
	b.writes.Add(1)
	b.started <- struct{}{}
	<-b.release
}

func (b *blockingAPI) Skills(ctx context.Context) ([]models.UserSkill, error) {
	return b.skills, nil
}

func (b *blockingAPI) AddSkill(ctx context.Context, name string) (models.UserSkill, error) {
	b.block()
	return models.UserSkill{ID: "9", SkillName: name}, nil
}

func (b *blockingAPI) RemoveSkill(ctx context.Context, id string) error {
	b.block()
	return nil
}

func (b *blockingAPI) Chat(ctx context.Context, conversation []models.ChatMessage) (models.ChatMessage, error) {
	b.block()
	return models.NewAssistantMessage("Learn Docker next."), nil
}
