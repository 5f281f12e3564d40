package pages

import (
	"context"

	"github.com/maxaizer/career-dashboard/internal/domain/models"
)

const learningPlanPreviewSize = 5

type OverviewPage struct {
	summary *value[models.DashboardSummary]
}

func NewOverviewPage(dashboard dashboardAPI) *OverviewPage {
	return &OverviewPage{summary: newValue("overview", dashboard.Dashboard)}
}

func (p *OverviewPage) Load(ctx context.Context) Result[models.DashboardSummary] {
	return p.summary.Load(ctx)
}

func (p *OverviewPage) Summary() models.DashboardSummary {
	summary, _ := p.summary.Get()
	return summary
}

func (p *OverviewPage) State() LoadState {
	_, state := p.summary.Get()
	return state
}

func (p *OverviewPage) Loading() bool {
	return p.State() == StateLoading
}

// ShowSkillGaps is false when there is nothing missing, so the section is left out.
func (p *OverviewPage) ShowSkillGaps() bool {
	return p.Summary().HasSkillGaps()
}

func (p *OverviewPage) LearningPlan() []models.Course {
	plan := p.Summary().LearningPlan
	if len(plan) > learningPlanPreviewSize {
		plan = plan[:learningPlanPreviewSize]
	}
	return append([]models.Course{}, plan...)
}
