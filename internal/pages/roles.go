package pages

import (
	"context"
	"sync"

	"github.com/maxaizer/career-dashboard/internal/domain/models"
	"golang.org/x/sync/errgroup"
)

// RoleDetail is the skill gap and learning plan of one recommended role.
// Each half is read on its own and may be missing.
type RoleDetail struct {
	Role       models.Role
	Gap        models.SkillGap
	Plan       models.LearningPlan
	GapLoaded  bool
	PlanLoaded bool
}

type RolesPage struct {
	roles   rolesAPI
	list    *list[models.Role]
	mu      sync.RWMutex
	message string
	detail  *RoleDetail
}

func NewRolesPage(roles rolesAPI) *RolesPage {
	p := &RolesPage{roles: roles}
	p.list = newList("roles", p.readRoles)
	return p
}

func (p *RolesPage) readRoles(ctx context.Context) ([]models.Role, error) {
	recommendations, err := p.roles.TopRoles(ctx)

	p.mu.Lock()
	p.message = recommendations.Message
	p.mu.Unlock()

	return recommendations.Roles, err
}

func (p *RolesPage) Load(ctx context.Context) Result[[]models.Role] {
	return p.list.Load(ctx)
}

func (p *RolesPage) Roles() []models.Role {
	return p.list.Items()
}

func (p *RolesPage) Loading() bool {
	return p.list.Loading()
}

// Message is the server note shown when there are no roles, e.g. "Add skills first".
func (p *RolesPage) Message() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.message
}

// Select reads the gap and plan of a listed role in parallel.
func (p *RolesPage) Select(ctx context.Context, roleID string) (RoleDetail, bool) {
	var role models.Role
	found := false
	for _, r := range p.list.Items() {
		if r.ID == roleID {
			role, found = r, true
			break
		}
	}
	if !found {
		p.mu.Lock()
		p.detail = nil
		p.mu.Unlock()
		return RoleDetail{}, false
	}

	detail := RoleDetail{Role: role}

	var g errgroup.Group
	g.Go(func() error {
		gap := Fetch(ctx, "role_skill_gap", func(ctx context.Context) (models.SkillGap, error) {
			return p.roles.SkillGap(ctx, roleID)
		})
		detail.Gap, detail.GapLoaded = gap.OrDefault(models.SkillGap{}), gap.IsOk()
		return nil
	})
	g.Go(func() error {
		plan := Fetch(ctx, "role_learning_plan", func(ctx context.Context) (models.LearningPlan, error) {
			return p.roles.LearningPlan(ctx, roleID)
		})
		detail.Plan, detail.PlanLoaded = plan.OrDefault(models.LearningPlan{}), plan.IsOk()
		return nil
	})
	_ = g.Wait()

	p.mu.Lock()
	p.detail = &detail
	p.mu.Unlock()
	return detail, true
}

func (p *RolesPage) Selected() (RoleDetail, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.detail == nil {
		return RoleDetail{}, false
	}
	return *p.detail, true
}
