package pages

import (
	"context"
	"errors"
	"testing"

	"github.com/maxaizer/career-dashboard/internal/clients/api"
	"github.com/maxaizer/career-dashboard/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func Test_RolesPage_WhenNoSkills_ShouldShowServerMessage(t *testing.T) {

	m := &mockAPI{}
	m.On("TopRoles", mock.Anything).Return(api.RoleRecommendations{Roles: nil, Message: "Add skills first"}, nil)

	page := NewRolesPage(m)
	page.Load(context.Background())

	assert.Empty(t, page.Roles())
	assert.Equal(t, "Add skills first", page.Message())
	assert.False(t, page.Loading())
}

func Test_RolesPage_Select_ShouldReadGapAndPlan(t *testing.T) {

	assert := assert.New(t)

	score := 0.8
	m := &mockAPI{}
	m.On("TopRoles", mock.Anything).
		Return(api.RoleRecommendations{Roles: []models.Role{{ID: "r1", Title: "Data Analyst", MatchScore: &score}}}, nil)
	m.On("SkillGap", mock.Anything, "r1").
		Return(models.SkillGap{MissingSkills: []string{"Tableau"}, CoveragePercent: 75}, nil)
	m.On("LearningPlan", mock.Anything, "r1").Return(models.LearningPlan{}, errors.New("timeout"))

	page := NewRolesPage(m)
	page.Load(context.Background())

	detail, ok := page.Select(context.Background(), "r1")

	assert.True(ok)
	assert.Equal("Data Analyst", detail.Role.Title)
	assert.True(detail.GapLoaded)
	assert.Equal([]string{"Tableau"}, detail.Gap.MissingSkills)
	assert.False(detail.PlanLoaded)
	assert.Empty(detail.Plan.Courses)

	selected, ok := page.Selected()
	assert.True(ok)
	assert.Equal(detail, selected)
}

func Test_RolesPage_Select_WhenRoleUnknown_ShouldNotCallAPI(t *testing.T) {

	m := &mockAPI{}
	m.On("TopRoles", mock.Anything).Return(api.RoleRecommendations{Roles: []models.Role{{ID: "r1"}}}, nil)

	page := NewRolesPage(m)
	page.Load(context.Background())

	_, ok := page.Select(context.Background(), "r2")

	assert.False(t, ok)
	m.AssertNotCalled(t, "SkillGap", mock.Anything, mock.Anything)
}
